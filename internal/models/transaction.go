package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense entry. Category and
// CategoryIcon are snapshots taken when the transaction is created;
// renaming or deleting the source category does not touch them.
type Transaction struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount       float64         `gorm:"not null" json:"amount"`
	Description  string          `json:"description"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	Category     string          `gorm:"not null" json:"category"`
	CategoryIcon string          `json:"category_icon"`
	Type         TransactionType `gorm:"not null" json:"type"`
}
