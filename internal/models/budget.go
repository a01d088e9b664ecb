package models

import "github.com/shopspring/decimal"

// Budget represents a spending limit for one calendar month. Overall budgets
// have no category and apply to total expenses. Budgets are immutable
// historical records: each month's budgets are stored and queried
// independently by (month, year), never rolled over or deleted when the
// month passes.
type Budget struct {
	Base
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	CategoryID     *uint           `gorm:"index" json:"category_id,omitempty"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Month          int             `gorm:"not null" json:"month"`
	Year           int             `gorm:"not null" json:"year"`
	IsOverall      bool            `gorm:"default:false" json:"is_overall"`
	AlertThreshold int             `gorm:"default:80" json:"alert_threshold"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Name returns the display name used in notifications and insights.
func (b *Budget) Name() string {
	if b.IsOverall {
		return "Overall Monthly Budget"
	}
	if b.Category != nil {
		return b.Category.Name + " Budget"
	}
	return "Budget"
}
