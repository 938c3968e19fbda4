package api

import (
	"errors"
	"strconv"

	"budget/middleware"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// SummaryHandler exposes the monthly summary aggregator.
type SummaryHandler struct {
	svc *service.SummaryService
}

// NewSummaryHandler creates the summary handler.
func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{svc: service.NewSummaryService()}
}

// GetSummary computes the monthly summary
// @Summary Monthly summary
// @Description Total income, total expense, remaining balance and the carry-over from the previous month for one (month, year)
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Param month query int true "month (1-12)"
// @Param year query int true "year"
// @Success 200 {object} Response{data=service.MonthlySummary} "ok"
// @Failure 400 {object} Response "month or year missing or invalid"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	monthStr := c.Query("month")
	yearStr := c.Query("year")
	if monthStr == "" || yearStr == "" {
		BadRequest(c, "month and year are required")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		BadRequest(c, "month must be a number")
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		BadRequest(c, "year must be a number")
		return
	}

	summary, err := h.svc.Summary(userID, month, year)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, SafeErrorMessage(err, "summary failed"))
		return
	}

	Success(c, summary)
}
