package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wealthwise/internal/models"
	"wealthwise/internal/pagination"
	"wealthwise/internal/testutil"
)

func newTransactionService(t *testing.T, db *gorm.DB) TransactionServicer {
	t.Helper()
	notifier := &fakeNotifier{succeed: true}
	users := NewUserService(db, notifier)
	return NewTransactionService(db, users, NewAlertService(db, notifier))
}

func TestCreateTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := newTransactionService(t, db)
	user := testutil.CreateTestUser(t, db)
	category := testutil.CreateTestCategory(t, db, user.ID, "Food & Dining", models.CategoryTypeExpense)

	t.Run("valid", func(t *testing.T) {
		tx, err := svc.CreateTransaction(user.ID, &category.ID, models.TransactionTypeExpense,
			decimal.RequireFromString("42.50"), "Lunch", models.PaymentMethodUPI, "", day(2024, time.March, 15))
		testutil.AssertNoError(t, err)
		if tx.ID == 0 {
			t.Fatal("expected transaction to be persisted")
		}
		testutil.AssertDecimalEqual(t, tx.Amount, "42.5")
		if tx.Category == nil || tx.Category.Name != "Food & Dining" {
			t.Error("expected category to be preloaded")
		}
		if got := tx.Date.Format("2006-01-02"); got != "2024-03-15" {
			t.Errorf("expected normalized date 2024-03-15, got %s", got)
		}
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		_, err := svc.CreateTransaction(user.ID, nil, models.TransactionTypeExpense,
			decimal.Zero, "", models.PaymentMethodCash, "", day(2024, time.March, 15))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invisible_category", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db)
		theirs := testutil.CreateTestCategory(t, db, other.ID, "Their Category", models.CategoryTypeExpense)
		_, err := svc.CreateTransaction(user.ID, &theirs.ID, models.TransactionTypeExpense,
			decimal.NewFromInt(10), "", models.PaymentMethodCash, "", day(2024, time.March, 15))
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("payment_method_defaults_to_other", func(t *testing.T) {
		tx, err := svc.CreateTransaction(user.ID, nil, models.TransactionTypeIncome,
			decimal.NewFromInt(100), "", "", "", day(2024, time.March, 15))
		testutil.AssertNoError(t, err)
		if tx.PaymentMethod != models.PaymentMethodOther {
			t.Errorf("expected payment method other, got %s", tx.PaymentMethod)
		}
	})

	t.Run("expense_triggers_alert_check", func(t *testing.T) {
		now := time.Now()
		testutil.CreateTestOverallBudget(t, db, user.ID, "100", int(now.Month()), now.Year())
		_, err := svc.CreateTransaction(user.ID, nil, models.TransactionTypeExpense,
			decimal.NewFromInt(200), "", models.PaymentMethodCash, "", now)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Notification{}).
			Where("user_id = ? AND type = ?", user.ID, models.NotificationTypeBudgetExceeded).
			Count(&count)
		if count != 1 {
			t.Errorf("expected an exceeded notification, got %d", count)
		}
	})
}

func TestGetTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := newTransactionService(t, db)
	user := testutil.CreateTestUser(t, db)
	food := testutil.CreateTestCategory(t, db, user.ID, "Food & Dining", models.CategoryTypeExpense)

	testutil.CreateTestTransaction(t, db, user.ID, &food.ID, models.TransactionTypeExpense, "100", day(2024, time.March, 5))
	testutil.CreateTestTransaction(t, db, user.ID, nil, models.TransactionTypeExpense, "50", day(2024, time.March, 20))
	testutil.CreateTestTransaction(t, db, user.ID, nil, models.TransactionTypeIncome, "5000", day(2024, time.March, 1))
	testutil.CreateTestTransaction(t, db, user.ID, nil, models.TransactionTypeExpense, "75", day(2024, time.April, 2))

	t.Run("newest_first", func(t *testing.T) {
		resp, err := svc.GetTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 4 {
			t.Fatalf("expected 4 transactions, got %d", resp.TotalItems)
		}
		if got := resp.Items[0].Date.Format("2006-01-02"); got != "2024-04-02" {
			t.Errorf("expected newest first, got %s", got)
		}
	})

	t.Run("filter_by_type", func(t *testing.T) {
		income := models.TransactionTypeIncome
		resp, err := svc.GetTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Type: &income})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 1 {
			t.Errorf("expected 1 income transaction, got %d", resp.TotalItems)
		}
	})

	t.Run("filter_by_category", func(t *testing.T) {
		resp, err := svc.GetTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{CategoryID: &food.ID})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 1 {
			t.Errorf("expected 1 transaction in category, got %d", resp.TotalItems)
		}
	})

	t.Run("filter_by_month", func(t *testing.T) {
		month, year := 3, 2024
		resp, err := svc.GetTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Month: &month, Year: &year})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 3 {
			t.Errorf("expected 3 March transactions, got %d", resp.TotalItems)
		}
	})

	t.Run("filter_by_date_range", func(t *testing.T) {
		start := day(2024, time.March, 10)
		end := day(2024, time.April, 30)
		resp, err := svc.GetTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{StartDate: &start, EndDate: &end})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 2 {
			t.Errorf("expected 2 transactions in range, got %d", resp.TotalItems)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		resp, err := svc.GetTransactions(user.ID, pagination.PageRequest{Page: 2, PageSize: 3}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(resp.Items) != 1 {
			t.Errorf("expected 1 item on page 2, got %d", len(resp.Items))
		}
		if resp.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", resp.TotalPages)
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := newTransactionService(t, db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	tx := testutil.CreateTestTransaction(t, db, user.ID, nil, models.TransactionTypeExpense, "100", day(2024, time.March, 5))

	t.Run("partial_update", func(t *testing.T) {
		amount := decimal.NewFromInt(250)
		description := "Groceries"
		updated, err := svc.UpdateTransaction(user.ID, tx.ID, UpdateTransactionRequest{
			Amount:      &amount,
			Description: &description,
		})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, updated.Amount, "250")
		if updated.Description != "Groceries" {
			t.Errorf("expected updated description, got %q", updated.Description)
		}
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		amount := decimal.NewFromInt(-5)
		_, err := svc.UpdateTransaction(user.ID, tx.ID, UpdateTransactionRequest{Amount: &amount})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("wrong_user", func(t *testing.T) {
		_, err := svc.UpdateTransaction(other.ID, tx.ID, UpdateTransactionRequest{})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := newTransactionService(t, db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	tx := testutil.CreateTestTransaction(t, db, user.ID, nil, models.TransactionTypeExpense, "100", day(2024, time.March, 5))

	t.Run("wrong_user", func(t *testing.T) {
		err := svc.DeleteTransaction(other.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("own_transaction", func(t *testing.T) {
		err := svc.DeleteTransaction(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}
