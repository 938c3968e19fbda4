package api

import (
	"budget/config"
	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler mails monthly reports.
type ReportHandler struct {
	summary *service.SummaryService
	email   *service.EmailService
}

// NewReportHandler creates the report handler.
func NewReportHandler(cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		summary: service.NewSummaryService(),
		email:   service.NewEmailService(&cfg.Email),
	}
}

// SendMonthlyReport emails the summary for one month to the current user
// @Summary Email the monthly report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param month query int true "month (1-12)"
// @Param year query int true "year"
// @Success 200 {object} Response "sent"
// @Failure 400 {object} Response "invalid request or no email on file"
// @Failure 401 {object} Response "unauthorized"
// @Failure 503 {object} Response "email service disabled"
// @Router /api/v1/reports/email [post]
func (h *ReportHandler) SendMonthlyReport(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	if !h.email.Enabled() {
		ServiceUnavailable(c, "email service is not configured")
		return
	}

	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "user not found")
		return
	}
	if user.Email == "" {
		BadRequest(c, "no email address on the account")
		return
	}

	summary, err := h.summary.Summary(userID, month, year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "summary failed"))
		return
	}

	if err := h.email.SendMonthlyReport(user.Email, user.Username, summary); err != nil {
		InternalError(c, SafeErrorMessage(err, "send report failed"))
		return
	}

	SuccessWithMessage(c, "report sent", nil)
}
