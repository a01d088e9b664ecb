package models

// CategoryType represents the type of category.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category. A nil UserID marks a shared
// system default visible to every user.
type Category struct {
	Base
	UserID    *uint        `gorm:"index" json:"user_id,omitempty"`
	Name      string       `gorm:"not null" json:"name"`
	Type      CategoryType `gorm:"not null" json:"type"`
	Icon      string       `gorm:"default:FiTag" json:"icon"`
	Color     string       `gorm:"default:#6366f1" json:"color"`
	IsDefault bool         `gorm:"default:false" json:"is_default"`
}
