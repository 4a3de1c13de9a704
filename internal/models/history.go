package models

// MonthHistory is a per-day rollup of transaction amounts. One row
// exists for every (user, year, month, day) that has ever had a
// transaction; the income and expense columns are incremented and
// decremented in the same database transaction as the triggering
// write, so the row sums always match the raw transactions.
//
// Month is 0-based (January = 0) to match the history bucketing used
// by the API.
type MonthHistory struct {
	UserID  string  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Year    int     `gorm:"primaryKey" json:"year"`
	Month   int     `gorm:"primaryKey" json:"month"`
	Day     int     `gorm:"primaryKey" json:"day"`
	Income  float64 `gorm:"not null;default:0" json:"income"`
	Expense float64 `gorm:"not null;default:0" json:"expense"`
}

// YearHistory is the month-granularity counterpart of MonthHistory.
type YearHistory struct {
	UserID  string  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Year    int     `gorm:"primaryKey" json:"year"`
	Month   int     `gorm:"primaryKey" json:"month"`
	Income  float64 `gorm:"not null;default:0" json:"income"`
	Expense float64 `gorm:"not null;default:0" json:"expense"`
}
