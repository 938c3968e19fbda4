package api

import (
	"errors"
	"strconv"
	"strings"

	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// DebtHandler exposes debt CRUD backed by the amortization projector.
type DebtHandler struct {
	svc *service.DebtService
}

// NewDebtHandler creates the debt handler.
func NewDebtHandler() *DebtHandler {
	return &DebtHandler{svc: service.NewDebtService()}
}

// CreateDebtRequest is the debt creation payload.
type CreateDebtRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100" example:"Laptop"`
	TotalAmount int64  `json:"total_amount" binding:"required,gt=0" example:"12000000"`
	Months      int    `json:"months" binding:"required,min=1" example:"3"`
	StartMonth  int    `json:"start_month" binding:"required,min=1,max=12" example:"1"`
	StartYear   int    `json:"start_year" binding:"required" example:"2024"`
	Note        string `json:"note" example:"installments"`
}

// UpdateDebtRequest is the partial debt update payload.
type UpdateDebtRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	TotalAmount *int64  `json:"total_amount" binding:"omitempty,gt=0"`
	Months      *int    `json:"months" binding:"omitempty,min=1"`
	StartMonth  *int    `json:"start_month" binding:"omitempty,min=1,max=12"`
	StartYear   *int    `json:"start_year"`
	Note        *string `json:"note"`
}

// List lists the current user's debts
// @Summary List debts
// @Description List debts in creation order ascending
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Debt} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/debts [get]
func (h *DebtHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var debts []models.Debt
	if err := database.DB.Where("user_id = ?", userID).Order("id ASC").Find(&debts).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, debts)
}

// Get returns a single debt
// @Summary Get a debt
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param id path int true "debt ID"
// @Success 200 {object} Response{data=models.Debt} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/debts/{id} [get]
func (h *DebtHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid ID")
		return
	}

	var debt models.Debt
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&debt).Error; err != nil {
		NotFound(c, "debt not found")
		return
	}

	Success(c, debt)
}

// Create creates a debt and projects its schedule
// @Summary Create a debt
// @Description Computes the monthly payment server-side and materializes one creditPayment expense per covered month
// @Tags debts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDebtRequest true "debt info"
// @Success 201 {object} Response{data=models.Debt} "created"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Failure 500 {object} Response "reconciliation failed"
// @Router /api/v1/debts [post]
func (h *DebtHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	debt := models.Debt{
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		TotalAmount: req.TotalAmount,
		Months:      req.Months,
		StartMonth:  req.StartMonth,
		StartYear:   req.StartYear,
		Note:        req.Note,
	}

	if err := h.svc.CreateDebt(&debt); err != nil {
		respondProjectorError(c, err)
		return
	}

	Created(c, "created", debt)
}

// Update partially updates a debt, re-projecting when needed
// @Summary Update a debt
// @Description When total amount, months or start date change, the old projected expenses are deleted and the schedule is rebuilt
// @Tags debts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "debt ID"
// @Param request body UpdateDebtRequest true "fields to change"
// @Success 200 {object} Response{data=models.Debt} "updated"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Failure 500 {object} Response "reconciliation failed"
// @Router /api/v1/debts/{id} [put]
func (h *DebtHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid ID")
		return
	}

	var debt models.Debt
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&debt).Error; err != nil {
		NotFound(c, "debt not found")
		return
	}

	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	oldDebt := debt
	if req.Name != nil {
		debt.Name = strings.TrimSpace(*req.Name)
	}
	if req.TotalAmount != nil {
		debt.TotalAmount = *req.TotalAmount
	}
	if req.Months != nil {
		debt.Months = *req.Months
	}
	if req.StartMonth != nil {
		debt.StartMonth = *req.StartMonth
	}
	if req.StartYear != nil {
		debt.StartYear = *req.StartYear
	}
	if req.Note != nil {
		debt.Note = *req.Note
	}

	if err := h.svc.UpdateDebt(&oldDebt, &debt); err != nil {
		respondProjectorError(c, err)
		return
	}

	SuccessWithMessage(c, "updated", debt)
}

// Delete removes a debt and its projected expenses
// @Summary Delete a debt
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param id path int true "debt ID"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/debts/{id} [delete]
func (h *DebtHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid ID")
		return
	}

	var debt models.Debt
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&debt).Error; err != nil {
		NotFound(c, "debt not found")
		return
	}

	if err := h.svc.DeleteDebt(&debt); err != nil {
		InternalError(c, SafeErrorMessage(err, "delete failed"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}

// respondProjectorError maps projector errors to HTTP responses. Partial
// reconciliation failures name the failed months so the client can retry the
// whole create/update to fill the gaps.
func respondProjectorError(c *gin.Context, err error) {
	var partial *service.PartialReconciliationError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		BadRequest(c, err.Error())
	case errors.As(err, &partial):
		InternalError(c, partial.Error())
	default:
		InternalError(c, SafeErrorMessage(err, "operation failed"))
	}
}
