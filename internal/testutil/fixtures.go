package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"wealthwise/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password, a profile with
// default preferences, and a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user (and profile) with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		Username:     fmt.Sprintf("user%d", nextID()),
		Password:     string(hash),
		AuthProvider: models.AuthProviderEmail,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	profile := &models.UserProfile{UserID: user.ID, Currency: "INR", EmailNotifications: true, BudgetAlerts: true}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	user.Profile = profile
	return user
}

// CreateTestCategory creates a user-owned category of the given kind.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, name string, kind models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: &userID,
		Name:   name,
		Type:   kind,
		Icon:   "FiTag",
		Color:  "#6366f1",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction records a transaction with the given amount and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, categoryID *uint, kind models.TransactionType, amount string, date time.Time) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		UserID:        userID,
		CategoryID:    categoryID,
		Type:          kind,
		Amount:        decimal.RequireFromString(amount),
		Description:   fmt.Sprintf("Test transaction %d", nextID()),
		PaymentMethod: models.PaymentMethodOther,
		Date:          time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestBudget creates a category budget for the given month.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, categoryID *uint, amount string, month, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:         userID,
		CategoryID:     categoryID,
		Amount:         decimal.RequireFromString(amount),
		Month:          month,
		Year:           year,
		AlertThreshold: 80,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestOverallBudget creates an overall budget for the given month.
func CreateTestOverallBudget(t *testing.T, db *gorm.DB, userID uint, amount string, month, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:         userID,
		Amount:         decimal.RequireFromString(amount),
		Month:          month,
		Year:           year,
		IsOverall:      true,
		AlertThreshold: 80,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
