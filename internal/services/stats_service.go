package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// statsService answers the read-only aggregation queries. Balance and
// category stats scan raw transactions; history reads the rollup
// tables so it never touches the transaction table.
type statsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB) StatsServicer {
	return &statsService{db: db}
}

// GetBalanceStats sums transaction amounts per type over [from, to].
// Types with no rows in range come back as zero.
func (s *statsService) GetBalanceStats(userID string, from, to time.Time) (*BalanceStats, error) {
	var rows []struct {
		Type models.TransactionType
		Sum  float64
	}
	if err := s.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS sum").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats := &BalanceStats{}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			stats.Income = row.Sum
		case models.TransactionTypeExpense:
			stats.Expense = row.Sum
		}
	}
	return stats, nil
}

// GetCategoriesStats sums transaction amounts per (type, category,
// icon) group over [from, to], largest totals first. Grouping is on the
// snapshot fields, so amounts stay attributed to the category name the
// transaction was created under.
func (s *statsService) GetCategoriesStats(userID string, from, to time.Time) ([]CategoryStats, error) {
	stats := []CategoryStats{}
	if err := s.db.Model(&models.Transaction{}).
		Select("type, category, category_icon, SUM(amount) AS sum").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Group("type, category, category_icon").
		Order("sum DESC").
		Scan(&stats).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return stats, nil
}

// GetHistoryData returns the bucketed history for one period. Month
// granularity yields one point per calendar day, year granularity one
// per month (0..11), with missing buckets zero-filled. A period with no
// rollup rows at all yields an empty slice.
func (s *statsService) GetHistoryData(userID string, timeFrame TimeFrame, period Period) ([]HistoryPoint, error) {
	switch timeFrame {
	case TimeFrameMonth:
		return s.getMonthHistoryData(userID, period.Month, period.Year)
	case TimeFrameYear:
		return s.getYearHistoryData(userID, period.Year)
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "timeFrame must be month or year")
	}
}

func (s *statsService) getMonthHistoryData(userID string, month, year int) ([]HistoryPoint, error) {
	var rows []models.MonthHistory
	if err := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("day ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(rows) == 0 {
		return []HistoryPoint{}, nil
	}

	byDay := make(map[int]models.MonthHistory, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}

	days := daysInMonth(year, month)
	history := make([]HistoryPoint, 0, days)
	for day := 1; day <= days; day++ {
		point := HistoryPoint{Year: year, Month: month, Day: day}
		if row, ok := byDay[day]; ok {
			point.Income = row.Income
			point.Expense = row.Expense
		}
		history = append(history, point)
	}
	return history, nil
}

func (s *statsService) getYearHistoryData(userID string, year int) ([]HistoryPoint, error) {
	var rows []models.YearHistory
	if err := s.db.Where("user_id = ? AND year = ?", userID, year).
		Order("month ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(rows) == 0 {
		return []HistoryPoint{}, nil
	}

	byMonth := make(map[int]models.YearHistory, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row
	}

	history := make([]HistoryPoint, 0, 12)
	for month := 0; month < 12; month++ {
		point := HistoryPoint{Year: year, Month: month}
		if row, ok := byMonth[month]; ok {
			point.Income = row.Income
			point.Expense = row.Expense
		}
		history = append(history, point)
	}
	return history, nil
}

// GetHistoryPeriods returns the distinct years the user has history
// for, ascending. Users with no history get the current year so a
// period picker always has something to show.
func (s *statsService) GetHistoryPeriods(userID string) ([]int, error) {
	var years []int
	if err := s.db.Model(&models.MonthHistory{}).
		Distinct("year").
		Where("user_id = ?", userID).
		Order("year ASC").
		Pluck("year", &years).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(years) == 0 {
		return []int{time.Now().UTC().Year()}, nil
	}
	return years, nil
}

// daysInMonth returns the number of calendar days in the 0-based month
// of the given year.
func daysInMonth(year, month int) int {
	// Day 0 of the following month normalizes to this month's last day.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
