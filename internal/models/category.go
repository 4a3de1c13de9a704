package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category. A user may reuse the same
// name across the two types, so uniqueness is on (user, name, type).
// Transactions copy the name and icon at creation time and never follow
// the category afterwards, which is why deleting a category is allowed
// even when transactions still display it.
type Category struct {
	Base
	UserID string       `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name_type" json:"user_id"`
	Name   string       `gorm:"not null;uniqueIndex:idx_categories_user_name_type" json:"name"`
	Type   CategoryType `gorm:"not null;uniqueIndex:idx_categories_user_name_type" json:"type"`
	Icon   string       `json:"icon"`
}
