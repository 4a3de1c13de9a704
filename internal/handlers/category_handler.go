package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name string              `json:"name" binding:"required,max=100"`
	Icon string              `json:"icon" binding:"max=50"`
	Type models.CategoryType `json:"type" binding:"required,category_type"`
}

// DeleteCategoryRequest represents the request payload for deleting a category
type DeleteCategoryRequest struct {
	Name string              `json:"name" binding:"required,max=100"`
	Type models.CategoryType `json:"type" binding:"required,category_type"`
}

// CategoryResponse represents a category in the response
type CategoryResponse struct {
	ID     string              `json:"id"`
	UserID string              `json:"user_id"`
	Name   string              `json:"name"`
	Icon   string              `json:"icon"`
	Type   models.CategoryType `json:"type"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new transaction category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Category already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name, req.Icon, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetUserCategories handles the retrieval of all categories for a user
// @Summary     Get all categories
// @Description Get all transaction categories for the authenticated user, ordered by name
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Filter by category type (income/expense)"
// @Success     200 {array} CategoryResponse "List of categories"
// @Failure     400 {object} ErrorResponse "Invalid type filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetUserCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var typeFilter *models.CategoryType
	if v := c.Query("type"); v != "" {
		categoryType := models.CategoryType(v)
		switch categoryType {
		case models.CategoryTypeIncome, models.CategoryTypeExpense:
			typeFilter = &categoryType
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be income or expense"))
			return
		}
	}

	categories, err := h.categoryService.GetUserCategories(userID, typeFilter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// DeleteCategory handles deleting a category
// @Summary     Delete category
// @Description Delete a transaction category by name and type. Existing transactions keep their snapshot of the category.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DeleteCategoryRequest true "Category key"
// @Success     200 {object} CategoryResponse "Deleted category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DeleteCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.DeleteCategory(userID, req.Name, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}
