package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"moneta/internal/currency"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db       *gorm.DB
	rollup   RollupMaintainer
	settings SettingsServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, rollup RollupMaintainer, settings SettingsServicer) TransactionServicer {
	return &transactionService{
		db:       db,
		rollup:   rollup,
		settings: settings,
	}
}

// CreateTransaction records a new income or expense entry. The category
// name and icon are copied onto the transaction at this point and never
// updated again. The insert and the rollup increment run inside one
// database transaction so the aggregates cannot drift from the raw rows.
func (s *transactionService) CreateTransaction(
	userID string,
	amount float64,
	transactionType models.TransactionType,
	categoryName string,
	date time.Time,
	description string,
) (*models.Transaction, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a finite positive number")
	}
	if categoryName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	// Resolve the category for the snapshot fields
	var category models.Category
	if err := s.db.Where("user_id = ? AND name = ? AND type = ?", userID, categoryName, transactionType).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction := &models.Transaction{
		UserID:       userID,
		Amount:       amount,
		Description:  description,
		Date:         date.UTC(),
		Category:     category.Name,
		CategoryIcon: category.Icon,
		Type:         transactionType,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.rollup.ApplyDelta(tx, userID, transaction.Date, transactionType, amount)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// DeleteTransaction removes a transaction and reverses its contribution
// to the rollup tables, bucketed by the original date and type rather
// than anything current.
func (s *transactionService) DeleteTransaction(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.rollup.ApplyDelta(tx, userID, transaction.Date, transaction.Type, -transaction.Amount)
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// GetTransactionHistory retrieves the transactions in [from, to] newest
// first, each annotated with the amount formatted in the user's
// settings currency.
func (s *transactionService) GetTransactionHistory(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[TransactionWithFormattedAmount], error) {
	settings, err := s.settings.GetUserSettings(userID)
	if err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	annotated := make([]TransactionWithFormattedAmount, 0, len(transactions))
	for _, t := range transactions {
		annotated = append(annotated, TransactionWithFormattedAmount{
			Transaction:     t,
			FormattedAmount: currency.Format(settings.Currency, t.Amount),
		})
	}

	result := pagination.NewPageResponse(annotated, page.Page, page.PageSize, totalItems)
	return &result, nil
}
