package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. A user cannot have two
// categories with the same name and type; the same name is fine across
// income and expense.
func (s *categoryService) CreateCategory(userID, name, icon string, categoryType models.CategoryType) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
		Icon:   icon,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// DeleteCategory deletes a category by its (name, type) key and returns
// the removed record. Existing transactions are untouched: they carry
// their own snapshot of the category name and icon.
func (s *categoryService) DeleteCategory(userID, name string, categoryType models.CategoryType) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// GetUserCategories retrieves the user's categories ordered by name,
// optionally filtered by type.
func (s *categoryService) GetUserCategories(userID string, categoryType *models.CategoryType) ([]models.Category, error) {
	query := s.db.Where("user_id = ?", userID)
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
