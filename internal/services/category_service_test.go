package services

import (
	"testing"

	"moneta/internal/models"
	"moneta/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "Groceries", "🛒", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected non-empty category ID")
		}
		if cat.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", cat.Name)
		}
		if cat.Type != models.CategoryTypeExpense {
			t.Errorf("expected type expense, got %s", cat.Type)
		}
		if cat.Icon != "🛒" {
			t.Errorf("expected icon 🛒, got %s", cat.Icon)
		}
	})

	t.Run("duplicate_name_and_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Food", "", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Food", "", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same_name_different_type_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Freelance", "", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Freelance", "", models.CategoryTypeIncome)
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "", "", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("same_name_different_users_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user1.ID, "Salary", "", models.CategoryTypeIncome)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user2.ID, "Salary", "", models.CategoryTypeIncome)
		testutil.AssertNoError(t, err)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("deletes_and_returns_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		created, err := svc.CreateCategory(user.ID, "Rent", "🏠", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		deleted, err := svc.DeleteCategory(user.ID, "Rent", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		if deleted.ID != created.ID {
			t.Errorf("expected deleted ID %s, got %s", created.ID, deleted.ID)
		}

		var count int64
		db.Model(&models.Category{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected 0 categories after delete, got %d", count)
		}
	})

	t.Run("recreate_after_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Travel", "", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		_, err = svc.DeleteCategory(user.ID, "Travel", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Travel", "", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.DeleteCategory(user.ID, "Nonexistent", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("type_is_part_of_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Misc", "", models.CategoryTypeIncome)
		testutil.AssertNoError(t, err)

		_, err = svc.DeleteCategory(user.ID, "Misc", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("other_users_category_invisible", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(owner.ID, "Private", "", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		_, err = svc.DeleteCategory(other.ID, "Private", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetUserCategories(t *testing.T) {
	t.Run("returns_user_categories_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeExpense)
		testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeIncome)
		testutil.CreateTestCategory(t, db, user2.ID, models.CategoryTypeExpense)

		categories, err := svc.GetUserCategories(user1.ID, nil)
		testutil.AssertNoError(t, err)

		if len(categories) != 2 {
			t.Errorf("expected 2 categories for user1, got %d", len(categories))
		}
		for _, c := range categories {
			if c.UserID != user1.ID {
				t.Errorf("expected only user1 categories, got one for %s", c.UserID)
			}
		}
	})

	t.Run("filter_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)

		income := models.CategoryTypeIncome
		categories, err := svc.GetUserCategories(user.ID, &income)
		testutil.AssertNoError(t, err)

		if len(categories) != 1 {
			t.Fatalf("expected 1 income category, got %d", len(categories))
		}
		if categories[0].Type != models.CategoryTypeIncome {
			t.Errorf("expected income category, got %s", categories[0].Type)
		}
	})

	t.Run("ordered_by_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		for _, name := range []string{"Zoo", "Apples", "Monthly"} {
			_, err := svc.CreateCategory(user.ID, name, "", models.CategoryTypeExpense)
			testutil.AssertNoError(t, err)
		}

		categories, err := svc.GetUserCategories(user.ID, nil)
		testutil.AssertNoError(t, err)

		if len(categories) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(categories))
		}
		want := []string{"Apples", "Monthly", "Zoo"}
		for i, name := range want {
			if categories[i].Name != name {
				t.Errorf("expected category %d to be %s, got %s", i, name, categories[i].Name)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		categories, err := svc.GetUserCategories(user.ID, nil)
		testutil.AssertNoError(t, err)
		if len(categories) != 0 {
			t.Errorf("expected no categories, got %d", len(categories))
		}
	})
}
