package api

import (
	"strconv"
	"strings"

	"budget/database"
	"budget/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler maintains the expense/income categories.
type CategoryHandler struct{}

// NewCategoryHandler creates the category handler.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryCreateRequest is the category creation payload.
type CategoryCreateRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Kind  string `json:"kind" binding:"omitempty,oneof=expense income"`
	Sort  int    `json:"sort"`
	Color string `json:"color" binding:"omitempty,max=20"` // hex color, e.g. #ef4444
}

// CategoryUpdateRequest is the category update payload.
type CategoryUpdateRequest struct {
	Name  string  `json:"name" binding:"omitempty,min=1,max=50"`
	Sort  *int    `json:"sort"`
	Color *string `json:"color" binding:"omitempty,max=20"`
}

// List lists categories
// @Summary List categories
// @Description Expense and income categories sorted by sort then ID; filter by kind
// @Tags categories
// @Produce json
// @Param kind query string false "expense or income"
// @Success 200 {object} Response{data=[]models.Category} "ok"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	query := database.DB.Model(&models.Category{})
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var list []models.Category
	if err := query.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}
	Success(c, list)
}

// Create creates a user-defined category
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "category info"
// @Success 201 {object} Response{data=models.Category} "created"
// @Failure 400 {object} Response "invalid request or duplicate name"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "name is required")
		return
	}
	kind := req.Kind
	if kind == "" {
		kind = models.CategoryKindExpense
	}

	var existing models.Category
	if err := database.DB.Where("name = ? AND kind = ?", req.Name, kind).First(&existing).Error; err == nil {
		BadRequest(c, "category name already exists")
		return
	}

	color := req.Color
	if color == "" {
		color = "#64748b"
	}
	cat := models.Category{Name: req.Name, Kind: kind, Sort: req.Sort, Color: color}
	if err := database.DB.Create(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "create failed"))
		return
	}
	Created(c, "created", cat)
}

// Update updates a category
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "category ID"
// @Param request body CategoryUpdateRequest true "fields to change"
// @Success 200 {object} Response{data=models.Category} "updated"
// @Failure 400 {object} Response "invalid request or duplicate name"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid ID")
		return
	}

	var cat models.Category
	if err := database.DB.First(&cat, uint(id64)).Error; err != nil {
		NotFound(c, "category not found")
		return
	}

	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			BadRequest(c, "name is required")
			return
		}
		var existing models.Category
		if err := database.DB.Where("name = ? AND kind = ? AND id != ?", name, cat.Kind, cat.ID).First(&existing).Error; err == nil {
			BadRequest(c, "category name already exists")
			return
		}
		updates["name"] = name
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if req.Color != nil {
		color := *req.Color
		if color == "" {
			color = "#64748b"
		}
		updates["color"] = color
	}
	if len(updates) == 0 {
		SuccessWithMessage(c, "nothing to update", cat)
		return
	}

	if err := database.DB.Model(&cat).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "update failed"))
		return
	}
	database.DB.First(&cat, cat.ID)
	SuccessWithMessage(c, "updated", cat)
}

// Delete soft-deletes a category
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "category ID"
// @Success 200 {object} Response "deleted"
// @Failure 400 {object} Response "invalid ID"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid ID")
		return
	}
	var cat models.Category
	if err := database.DB.First(&cat, uint(id64)).Error; err != nil {
		NotFound(c, "category not found")
		return
	}
	if err := database.DB.Delete(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "delete failed"))
		return
	}
	SuccessWithMessage(c, "deleted", nil)
}
