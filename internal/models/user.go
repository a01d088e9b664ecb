package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuthProvider identifies how the user signed up.
type AuthProvider string

const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
)

// User represents the user model in the database.
type User struct {
	Base
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	Username     string       `gorm:"uniqueIndex;not null" json:"username"`
	Password     string       `json:"-"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	AuthProvider AuthProvider `gorm:"default:email" json:"auth_provider"`
	Avatar       string       `json:"avatar,omitempty"`
	PhoneNumber  string       `json:"phone_number,omitempty"`
	IsActive     bool         `gorm:"default:true" json:"is_active"`
	IsVerified   bool         `gorm:"default:false" json:"is_verified"`

	Profile       *UserProfile   `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Categories    []Category     `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions  []Transaction  `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Budgets       []Budget       `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Notifications []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}

// ShortName returns the user's first name, falling back to the username.
func (u *User) ShortName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// UserProfile holds financial and notification preferences for a user.
type UserProfile struct {
	Base
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Currency      string          `gorm:"default:INR" json:"currency"`
	MonthlyIncome decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"monthly_income"`
	MonthlyBudget decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"monthly_budget"`
	SavingsGoal   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"savings_goal"`

	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`
	BudgetAlerts       bool `gorm:"default:true" json:"budget_alerts"`
	WeeklySummary      bool `gorm:"default:false" json:"weekly_summary"`
	MonthlyReport      bool `gorm:"default:true" json:"monthly_report"`
}

// PasswordResetToken stores a single-use password reset token.
type PasswordResetToken struct {
	Base
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// IsValid reports whether the token can still be redeemed.
func (t *PasswordResetToken) IsValid() bool {
	return !t.IsUsed && time.Now().Before(t.ExpiresAt)
}
