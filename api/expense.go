package api

import (
	"strconv"
	"strings"

	"budget/database"
	"budget/middleware"
	"budget/models"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles expense records.
type ExpenseHandler struct{}

// NewExpenseHandler creates the expense handler.
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// CreateExpenseRequest is the expense creation payload.
type CreateExpenseRequest struct {
	Month        int    `json:"month" binding:"required,min=1,max=12" example:"1"`
	Year         int    `json:"year" binding:"required" example:"2024"`
	Category     string `json:"category" binding:"required" example:"lunch"`
	Scope        string `json:"scope" binding:"omitempty" example:"S"`
	Amount       int64  `json:"amount" binding:"required,gte=0" example:"150000"`
	ActualAmount *int64 `json:"actual_amount" binding:"omitempty,gte=0"`
	Note         string `json:"note" example:"lunch with colleagues"`
}

// UpdateExpenseRequest is the partial expense update payload.
type UpdateExpenseRequest struct {
	Month        *int    `json:"month" binding:"omitempty,min=1,max=12"`
	Year         *int    `json:"year"`
	Category     *string `json:"category"`
	Scope        *string `json:"scope"`
	Amount       *int64  `json:"amount" binding:"omitempty,gte=0"`
	ActualAmount *int64  `json:"actual_amount" binding:"omitempty,gte=0"`
	Note         *string `json:"note"`
}

// ExpenseListRequest is the expense list query.
type ExpenseListRequest struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"10"`
	Month    int    `form:"month" example:"1"`
	Year     int    `form:"year" example:"2024"`
	Category string `form:"category" example:"lunch"`
	Scope    string `form:"scope" example:"S"`
}

// Create creates an expense
// @Summary Create an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "expense info"
// @Success 201 {object} Response{data=models.Expense} "created"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		BadRequest(c, "category is required")
		return
	}
	// categories are maintained in the database, including user-defined ones
	var cat models.Category
	if err := database.DB.Where("name = ? AND kind = ?", req.Category, models.CategoryKindExpense).First(&cat).Error; err != nil {
		BadRequest(c, "unknown expense category")
		return
	}

	scope := req.Scope
	if scope == "" {
		scope = models.ScopeDaily
	}
	if !models.IsValidScope(scope) {
		BadRequest(c, "scope must be one of S, L, C, B, Đ")
		return
	}

	expense := models.Expense{
		UserID:       userID,
		Month:        req.Month,
		Year:         req.Year,
		Category:     req.Category,
		Scope:        scope,
		Amount:       req.Amount,
		ActualAmount: req.ActualAmount,
		Note:         req.Note,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "create expense failed"))
		return
	}

	Created(c, "created", expense)
}

// List lists expenses with filters
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Param month query int false "month filter (1-12)"
// @Param year query int false "year filter"
// @Param category query string false "category filter"
// @Param scope query string false "scope filter"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ExpenseListRequest
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

	query := database.DB.Model(&models.Expense{}).Where("user_id = ?", userID)

	if req.Month != 0 {
		query = query.Where("month = ?", req.Month)
	}
	if req.Year != 0 {
		query = query.Where("year = ?", req.Year)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Scope != "" {
		query = query.Where("scope = ?", req.Scope)
	}

	var total int64
	query.Count(&total)

	var expenses []models.Expense
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("year DESC, month DESC, id DESC").Offset(offset).Limit(req.PageSize).Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     expenses,
	})
}

// Get returns a single expense
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense ID"
// @Success 200 {object} Response{data=models.Expense} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid ID")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	Success(c, expense)
}

// Update updates an expense
// @Summary Update an expense
// @Description Rows projected from a debt schedule are owned by the projector and cannot be edited here
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense ID"
// @Param request body UpdateExpenseRequest true "fields to change"
// @Success 200 {object} Response{data=models.Expense} "updated"
// @Failure 400 {object} Response "invalid request or projected row"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid ID")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	if expense.IsProjected() {
		BadRequest(c, "expense is managed by a debt schedule, edit the debt instead")
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := make(map[string]interface{})
	if req.Month != nil {
		updates["month"] = *req.Month
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Category != nil {
		name := strings.TrimSpace(*req.Category)
		if name == "" {
			BadRequest(c, "category is required")
			return
		}
		var cat models.Category
		if err := database.DB.Where("name = ? AND kind = ?", name, models.CategoryKindExpense).First(&cat).Error; err != nil {
			BadRequest(c, "unknown expense category")
			return
		}
		updates["category"] = name
	}
	if req.Scope != nil {
		if !models.IsValidScope(*req.Scope) {
			BadRequest(c, "scope must be one of S, L, C, B, Đ")
			return
		}
		updates["scope"] = *req.Scope
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.ActualAmount != nil {
		updates["actual_amount"] = *req.ActualAmount
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}

	if len(updates) == 0 {
		SuccessWithMessage(c, "nothing to update", expense)
		return
	}

	if err := database.DB.Model(&expense).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "update failed"))
		return
	}

	database.DB.First(&expense, expense.ID)
	SuccessWithMessage(c, "updated", expense)
}

// Delete deletes an expense
// @Summary Delete an expense
// @Description Rows projected from a debt schedule are owned by the projector and cannot be deleted here
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense ID"
// @Success 200 {object} Response "deleted"
// @Failure 400 {object} Response "projected row"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid ID")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	if expense.IsProjected() {
		BadRequest(c, "expense is managed by a debt schedule, delete the debt instead")
		return
	}

	if err := database.DB.Delete(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "delete failed"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
