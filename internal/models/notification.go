package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationTypeBudgetWarning  NotificationType = "budget_warning"
	NotificationTypeBudgetExceeded NotificationType = "budget_exceeded"
	NotificationTypeGoalAchieved   NotificationType = "goal_achieved"
	NotificationTypeReminder       NotificationType = "reminder"
	NotificationTypeSystem         NotificationType = "system"
)

// NotificationData is a free-form key/value payload stored as JSON. Budget
// alerts put the triggering budget id, category id, spent amount, budget
// amount, and percentage here.
type NotificationData map[string]interface{}

// Value implements driver.Valuer.
func (d NotificationData) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (d *NotificationData) Scan(value interface{}) error {
	if value == nil {
		*d = NotificationData{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return errors.New("unsupported notification data type")
	}
}

// Notification represents a user notification. Rows are created by the
// budget alert trigger (budget kinds) or system flows, mutated only by
// read-state toggles, and deleted by explicit user action.
type Notification struct {
	Base
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"not null" json:"type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"not null" json:"message"`
	Data      NotificationData `gorm:"type:text" json:"data"`
	IsRead    bool             `gorm:"default:false" json:"is_read"`
	EmailSent bool             `gorm:"default:false" json:"email_sent"`
}
