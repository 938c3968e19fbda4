package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler exports monthly records.
type ExportHandler struct {
	summary *service.SummaryService
}

// NewExportHandler creates the export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{summary: service.NewSummaryService()}
}

// parseMonthYear reads and validates the month/year query parameters.
func parseMonthYear(c *gin.Context) (int, int, bool) {
	monthStr := c.Query("month")
	yearStr := c.Query("year")
	if monthStr == "" || yearStr == "" {
		BadRequest(c, "month and year are required")
		return 0, 0, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		BadRequest(c, "month must be a number within 1-12")
		return 0, 0, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		BadRequest(c, "year must be a number")
		return 0, 0, false
	}
	return month, year, true
}

// ExportCSV exports a month's expenses as CSV
// @Summary Export expenses as CSV
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param month query int true "month (1-12)"
// @Param year query int true "year"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}

	var expenses []models.Expense
	if err := database.DB.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("id ASC").
		Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	buf := new(bytes.Buffer)
	// BOM so spreadsheet apps pick up UTF-8
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"ID", "Month", "Year", "Category", "Scope", "Amount", "Actual", "Note"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "CSV generation failed")
		return
	}

	for _, e := range expenses {
		actual := ""
		if e.ActualAmount != nil {
			actual = strconv.FormatInt(*e.ActualAmount, 10)
		}
		row := []string{
			strconv.FormatUint(uint64(e.ID), 10),
			strconv.Itoa(e.Month),
			strconv.Itoa(e.Year),
			e.Category,
			e.Scope,
			strconv.FormatInt(e.Amount, 10),
			actual,
			e.Note,
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "CSV generation failed")
			return
		}
	}
	writer.Flush()

	filename := fmt.Sprintf("expenses_%d_%02d.csv", year, month)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON exports a month's expenses and incomes as JSON
// @Summary Export a month as JSON
// @Tags export
// @Produce json
// @Security BearerAuth
// @Param month query int true "month (1-12)"
// @Param year query int true "year"
// @Success 200 {object} Response "ok"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}

	var expenses []models.Expense
	if err := database.DB.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("id ASC").Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	var incomes []models.Income
	if err := database.DB.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("id ASC").Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, gin.H{
		"month":    month,
		"year":     year,
		"expenses": expenses,
		"incomes":  incomes,
	})
}

// ExportExcel exports a month's report as an Excel workbook
// @Summary Export a month as Excel
// @Description One sheet with incomes, expenses and the monthly summary
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param month query int true "month (1-12)"
// @Param year query int true "year"
// @Success 200 {file} file "xlsx file"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}

	var expenses []models.Expense
	if err := database.DB.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("id ASC").Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	var incomes []models.Income
	if err := database.DB.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("id ASC").Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	summary, err := h.summary.Summary(userID, month, year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "summary failed"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%d-%02d", year, month)
	f.SetSheetName("Sheet1", sheet)

	// incomes block
	f.SetCellValue(sheet, "A1", "INCOMES")
	f.SetSheetRow(sheet, "A2", &[]interface{}{"Category", "Amount", "Note"})
	row := 3
	for _, in := range incomes {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetSheetRow(sheet, cell, &[]interface{}{in.Category, in.Amount, in.Note})
		row++
	}

	// expenses block
	row++
	cell, _ := excelize.CoordinatesToCellName(1, row)
	f.SetCellValue(sheet, cell, "EXPENSES")
	row++
	cell, _ = excelize.CoordinatesToCellName(1, row)
	f.SetSheetRow(sheet, cell, &[]interface{}{"Category", "Scope", "Amount", "Actual", "Note"})
	row++
	for _, e := range expenses {
		actual := interface{}(nil)
		if e.ActualAmount != nil {
			actual = *e.ActualAmount
		}
		cell, _ = excelize.CoordinatesToCellName(1, row)
		f.SetSheetRow(sheet, cell, &[]interface{}{e.Category, e.Scope, e.Amount, actual, e.Note})
		row++
	}

	// summary block
	row++
	for _, line := range [][]interface{}{
		{"Income this month", summary.CurrentMonthIncome},
		{"Carried over", summary.PreviousMonthAmount},
		{"Total income", summary.TotalIncome},
		{"Total expense", summary.TotalExpense},
		{"Remaining", summary.Remaining},
		{"Last month's net", summary.PreviousMonthRemaining},
	} {
		cell, _ = excelize.CoordinatesToCellName(1, row)
		f.SetSheetRow(sheet, cell, &line)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "Excel generation failed")
		return
	}

	filename := fmt.Sprintf("budget_%d_%02d.xlsx", year, month)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
