package services

import (
	"testing"
	"time"

	"moneta/internal/models"
	"moneta/internal/testutil"
)

func TestApplyDelta(t *testing.T) {
	date := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	t.Run("creates_rows_on_first_delta", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRollupService()
		user := testutil.CreateTestUser(t, db)

		err := svc.ApplyDelta(db, user.ID, date, models.TransactionTypeExpense, 42.50)
		testutil.AssertNoError(t, err)

		var month models.MonthHistory
		err = db.Where("user_id = ? AND year = ? AND month = ? AND day = ?", user.ID, 2024, 2, 5).
			First(&month).Error
		testutil.AssertNoError(t, err)
		if month.Expense != 42.50 {
			t.Errorf("expected month expense 42.50, got %v", month.Expense)
		}
		if month.Income != 0 {
			t.Errorf("expected month income 0, got %v", month.Income)
		}

		var year models.YearHistory
		err = db.Where("user_id = ? AND year = ? AND month = ?", user.ID, 2024, 2).
			First(&year).Error
		testutil.AssertNoError(t, err)
		if year.Expense != 42.50 {
			t.Errorf("expected year expense 42.50, got %v", year.Expense)
		}
	})

	t.Run("increments_existing_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRollupService()
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.ApplyDelta(db, user.ID, date, models.TransactionTypeIncome, 100))
		testutil.AssertNoError(t, svc.ApplyDelta(db, user.ID, date, models.TransactionTypeIncome, 50))
		testutil.AssertNoError(t, svc.ApplyDelta(db, user.ID, date, models.TransactionTypeExpense, 30))

		var month models.MonthHistory
		err := db.Where("user_id = ? AND year = ? AND month = ? AND day = ?", user.ID, 2024, 2, 5).
			First(&month).Error
		testutil.AssertNoError(t, err)
		if month.Income != 150 {
			t.Errorf("expected month income 150, got %v", month.Income)
		}
		if month.Expense != 30 {
			t.Errorf("expected month expense 30, got %v", month.Expense)
		}

		var monthCount int64
		db.Model(&models.MonthHistory{}).Where("user_id = ?", user.ID).Count(&monthCount)
		if monthCount != 1 {
			t.Errorf("expected a single month row, got %d", monthCount)
		}
	})

	t.Run("negative_delta_reverses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRollupService()
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.ApplyDelta(db, user.ID, date, models.TransactionTypeExpense, 75))
		testutil.AssertNoError(t, svc.ApplyDelta(db, user.ID, date, models.TransactionTypeExpense, -75))

		var month models.MonthHistory
		err := db.Where("user_id = ? AND year = ? AND month = ? AND day = ?", user.ID, 2024, 2, 5).
			First(&month).Error
		testutil.AssertNoError(t, err)
		if month.Expense != 0 {
			t.Errorf("expected month expense 0 after reversal, got %v", month.Expense)
		}

		var year models.YearHistory
		err = db.Where("user_id = ? AND year = ? AND month = ?", user.ID, 2024, 2).
			First(&year).Error
		testutil.AssertNoError(t, err)
		if year.Expense != 0 {
			t.Errorf("expected year expense 0 after reversal, got %v", year.Expense)
		}
	})

	t.Run("separate_days_share_year_bucket", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRollupService()
		user := testutil.CreateTestUser(t, db)

		day5 := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
		day6 := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)
		testutil.AssertNoError(t, svc.ApplyDelta(db, user.ID, day5, models.TransactionTypeIncome, 10))
		testutil.AssertNoError(t, svc.ApplyDelta(db, user.ID, day6, models.TransactionTypeIncome, 20))

		var monthCount int64
		db.Model(&models.MonthHistory{}).Where("user_id = ?", user.ID).Count(&monthCount)
		if monthCount != 2 {
			t.Errorf("expected 2 month rows, got %d", monthCount)
		}

		var year models.YearHistory
		err := db.Where("user_id = ? AND year = ? AND month = ?", user.ID, 2024, 2).
			First(&year).Error
		testutil.AssertNoError(t, err)
		if year.Income != 30 {
			t.Errorf("expected year income 30, got %v", year.Income)
		}
	})

	t.Run("buckets_use_utc", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRollupService()
		user := testutil.CreateTestUser(t, db)

		// 2024-01-01 01:00 +0700 is still 2023-12-31 in UTC
		loc := time.FixedZone("UTC+7", 7*3600)
		local := time.Date(2024, time.January, 1, 1, 0, 0, 0, loc)
		testutil.AssertNoError(t, svc.ApplyDelta(db, user.ID, local, models.TransactionTypeExpense, 5))

		var month models.MonthHistory
		err := db.Where("user_id = ? AND year = ? AND month = ? AND day = ?", user.ID, 2023, 11, 31).
			First(&month).Error
		testutil.AssertNoError(t, err)
		if month.Expense != 5 {
			t.Errorf("expected expense 5 in the UTC bucket, got %v", month.Expense)
		}
	})

	t.Run("unknown_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRollupService()
		user := testutil.CreateTestUser(t, db)

		err := svc.ApplyDelta(db, user.ID, date, models.TransactionType("transfer"), 10)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("users_do_not_share_buckets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRollupService()
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.ApplyDelta(db, user1.ID, date, models.TransactionTypeIncome, 100))
		testutil.AssertNoError(t, svc.ApplyDelta(db, user2.ID, date, models.TransactionTypeIncome, 7))

		var month models.MonthHistory
		err := db.Where("user_id = ? AND year = ? AND month = ? AND day = ?", user2.ID, 2024, 2, 5).
			First(&month).Error
		testutil.AssertNoError(t, err)
		if month.Income != 7 {
			t.Errorf("expected user2 income 7, got %v", month.Income)
		}
	})
}
