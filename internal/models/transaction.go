package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// PaymentMethod represents how a transaction was paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodNetBanking   PaymentMethod = "net_banking"
	PaymentMethodWallet       PaymentMethod = "wallet"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOther        PaymentMethod = "other"
)

// Transaction represents a financial transaction in the system. Amount is an
// exact decimal; it never becomes a float before the serialization boundary.
// The category reference is weak: it is nulled when the category is deleted.
type Transaction struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	CategoryID    *uint           `gorm:"index" json:"category_id,omitempty"`
	Type          TransactionType `gorm:"not null;index" json:"type"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description   string          `gorm:"not null" json:"description"`
	PaymentMethod PaymentMethod   `gorm:"default:cash" json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	Date          time.Time       `gorm:"type:date;not null;index" json:"date"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}
