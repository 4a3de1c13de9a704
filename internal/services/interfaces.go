package services

import (
	"time"

	"gorm.io/gorm"

	"moneta/internal/models"
	"moneta/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name, icon string, categoryType models.CategoryType) (*models.Category, error)
	DeleteCategory(userID, name string, categoryType models.CategoryType) (*models.Category, error)
	GetUserCategories(userID string, categoryType *models.CategoryType) ([]models.Category, error)
}

// TransactionWithFormattedAmount is a transaction annotated with its
// amount rendered in the owner's settings currency.
type TransactionWithFormattedAmount struct {
	models.Transaction
	FormattedAmount string `json:"formatted_amount"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, amount float64, transactionType models.TransactionType, categoryName string, date time.Time, description string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) (*models.Transaction, error)
	GetTransactionHistory(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[TransactionWithFormattedAmount], error)
}

// RollupMaintainer keeps the MonthHistory and YearHistory tables
// consistent with the raw transactions. ApplyDelta must be called with
// the same open database transaction as the transaction write it
// mirrors, so that both either commit or roll back together.
type RollupMaintainer interface {
	ApplyDelta(tx *gorm.DB, userID string, date time.Time, transactionType models.TransactionType, amountDelta float64) error
}

// BalanceStats holds the per-type totals for a date range.
type BalanceStats struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryStats holds the total for one (type, category) group in a
// date range, using the snapshot fields stored on the transactions.
type CategoryStats struct {
	Type         models.TransactionType `json:"type"`
	Category     string                 `json:"category"`
	CategoryIcon string                 `json:"category_icon"`
	Sum          float64                `json:"sum"`
}

// TimeFrame selects the granularity of a history query.
type TimeFrame string

const (
	TimeFrameMonth TimeFrame = "month"
	TimeFrameYear  TimeFrame = "year"
)

// Period identifies the month or year a history query covers. Month is
// 0-based (January = 0) and ignored for year queries.
type Period struct {
	Month int
	Year  int
}

// HistoryPoint is one bucket of aggregated history. Day is present for
// month-granularity results only.
type HistoryPoint struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Day     int     `json:"day,omitempty"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// StatsServicer defines the contract for the read-only aggregation queries.
type StatsServicer interface {
	GetBalanceStats(userID string, from, to time.Time) (*BalanceStats, error)
	GetCategoriesStats(userID string, from, to time.Time) ([]CategoryStats, error)
	GetHistoryData(userID string, timeFrame TimeFrame, period Period) ([]HistoryPoint, error)
	GetHistoryPeriods(userID string) ([]int, error)
}

// SettingsServicer defines the contract for user settings.
type SettingsServicer interface {
	GetUserSettings(userID string) (*models.UserSettings, error)
	UpdateUserCurrency(userID, currencyCode string) (*models.UserSettings, error)
}
