package api

import (
	"strconv"
	"strings"

	"budget/database"
	"budget/middleware"
	"budget/models"

	"github.com/gin-gonic/gin"
)

// IncomeHandler handles income records.
type IncomeHandler struct{}

// NewIncomeHandler creates the income handler.
func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{}
}

// CreateIncomeRequest is the income creation payload.
type CreateIncomeRequest struct {
	Month    int    `json:"month" binding:"required,min=1,max=12" example:"1"`
	Year     int    `json:"year" binding:"required" example:"2024"`
	Category string `json:"category" binding:"required" example:"salary"`
	Amount   int64  `json:"amount" binding:"required,gte=0" example:"20000000"`
	Note     string `json:"note" example:"january salary"`
}

// UpdateIncomeRequest is the partial income update payload.
type UpdateIncomeRequest struct {
	Month    *int    `json:"month" binding:"omitempty,min=1,max=12"`
	Year     *int    `json:"year"`
	Category *string `json:"category"`
	Amount   *int64  `json:"amount" binding:"omitempty,gte=0"`
	Note     *string `json:"note"`
}

// IncomeListRequest is the income list query.
type IncomeListRequest struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"10"`
	Month    int    `form:"month" example:"1"`
	Year     int    `form:"year" example:"2024"`
	Category string `form:"category" example:"salary"`
}

// checkCarryOverUnique rejects a second previousMonth row in one slot.
// The carry-over category must stay unique per (user, month, year) or the
// summary would count it twice.
func checkCarryOverUnique(userID uint, month, year int, excludeID uint) bool {
	var existing models.Income
	q := database.DB.Where("user_id = ? AND month = ? AND year = ? AND category = ?",
		userID, month, year, models.CategoryPreviousMonth)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return q.First(&existing).Error != nil
}

// Create creates an income record
// @Summary Create an income
// @Description At most one income with the reserved previousMonth category may exist per month
// @Tags incomes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "income info"
// @Success 201 {object} Response{data=models.Income} "created"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		BadRequest(c, "category is required")
		return
	}

	if req.Category == models.CategoryPreviousMonth &&
		!checkCarryOverUnique(userID, req.Month, req.Year, 0) {
		BadRequest(c, "a carry-over income already exists for this month")
		return
	}

	income := models.Income{
		UserID:   userID,
		Month:    req.Month,
		Year:     req.Year,
		Category: req.Category,
		Amount:   req.Amount,
		Note:     req.Note,
	}

	if err := database.DB.Create(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "create income failed"))
		return
	}

	Created(c, "created", income)
}

// List lists income records
// @Summary List incomes
// @Tags incomes
// @Produce json
// @Security BearerAuth
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Param month query int false "month filter (1-12)"
// @Param year query int false "year filter"
// @Param category query string false "category filter"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Income}} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req IncomeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Income{}).Where("user_id = ?", userID)
	if req.Month != 0 {
		query = query.Where("month = ?", req.Month)
	}
	if req.Year != 0 {
		query = query.Where("year = ?", req.Year)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	var total int64
	query.Count(&total)

	var incomes []models.Income
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("year DESC, month DESC, id DESC").Offset(offset).Limit(req.PageSize).Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     incomes,
	})
}

// Get returns a single income record
// @Summary Get an income
// @Tags incomes
// @Produce json
// @Security BearerAuth
// @Param id path int true "income ID"
// @Success 200 {object} Response{data=models.Income} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid ID")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		NotFound(c, "income not found")
		return
	}

	Success(c, income)
}

// Update updates an income record
// @Summary Update an income
// @Tags incomes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "income ID"
// @Param request body UpdateIncomeRequest true "fields to change"
// @Success 200 {object} Response{data=models.Income} "updated"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/incomes/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid ID")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		NotFound(c, "income not found")
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := make(map[string]interface{})
	month, year, category := income.Month, income.Year, income.Category
	if req.Month != nil {
		updates["month"] = *req.Month
		month = *req.Month
	}
	if req.Year != nil {
		updates["year"] = *req.Year
		year = *req.Year
	}
	if req.Category != nil {
		name := strings.TrimSpace(*req.Category)
		if name == "" {
			BadRequest(c, "category is required")
			return
		}
		updates["category"] = name
		category = name
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}

	if category == models.CategoryPreviousMonth &&
		!checkCarryOverUnique(userID, month, year, income.ID) {
		BadRequest(c, "a carry-over income already exists for this month")
		return
	}

	if len(updates) == 0 {
		SuccessWithMessage(c, "nothing to update", income)
		return
	}

	if err := database.DB.Model(&income).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "update failed"))
		return
	}

	database.DB.First(&income, income.ID)
	SuccessWithMessage(c, "updated", income)
}

// Delete deletes an income record
// @Summary Delete an income
// @Tags incomes
// @Produce json
// @Security BearerAuth
// @Param id path int true "income ID"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid ID")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		NotFound(c, "income not found")
		return
	}

	if err := database.DB.Delete(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "delete failed"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
