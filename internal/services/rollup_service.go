package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// rollupService maintains the denormalized MonthHistory and YearHistory
// aggregates incrementally.
type rollupService struct{}

// NewRollupService creates a new RollupMaintainer.
func NewRollupService() RollupMaintainer {
	return &rollupService{}
}

// ApplyDelta adds amountDelta to the income or expense column of the
// rollup rows covering date's bucket, creating the rows with the other
// column at zero when absent. The increment is pushed down to the
// database as an ON CONFLICT column-add expression so concurrent
// writers for the same bucket can never lose an update. tx must be the
// open transaction of the triggering transaction write.
func (s *rollupService) ApplyDelta(tx *gorm.DB, userID string, date time.Time, transactionType models.TransactionType, amountDelta float64) error {
	date = date.UTC()
	year := date.Year()
	month := int(date.Month()) - 1 // history buckets are 0-based
	day := date.Day()

	var incomeDelta, expenseDelta float64
	switch transactionType {
	case models.TransactionTypeIncome:
		incomeDelta = amountDelta
	case models.TransactionTypeExpense:
		expenseDelta = amountDelta
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown transaction type")
	}

	monthRow := &models.MonthHistory{
		UserID:  userID,
		Year:    year,
		Month:   month,
		Day:     day,
		Income:  incomeDelta,
		Expense: expenseDelta,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"income":  gorm.Expr("month_histories.income + ?", incomeDelta),
			"expense": gorm.Expr("month_histories.expense + ?", expenseDelta),
		}),
	}).Create(monthRow).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	yearRow := &models.YearHistory{
		UserID:  userID,
		Year:    year,
		Month:   month,
		Income:  incomeDelta,
		Expense: expenseDelta,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"income":  gorm.Expr("year_histories.income + ?", incomeDelta),
			"expense": gorm.Expr("year_histories.expense + ?", expenseDelta),
		}),
	}).Create(yearRow).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return nil
}
