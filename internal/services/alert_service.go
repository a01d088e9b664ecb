package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wealthwise/internal/currency"
	apperrors "wealthwise/internal/errors"
	"wealthwise/internal/ledger"
	"wealthwise/internal/models"
	"wealthwise/internal/period"
)

// alertService evaluates the owner's current-month budgets after an
// expense write and creates threshold notifications, at most one per
// budget per notification type per day.
type alertService struct {
	db       *gorm.DB
	ledger   *ledger.Ledger
	notifier Notifier
}

// NewAlertService creates a new AlertServicer.
func NewAlertService(db *gorm.DB, notifier Notifier) AlertServicer {
	return &alertService{db: db, ledger: ledger.New(db), notifier: notifier}
}

// CheckBudgetAlerts runs the trigger for the owner. A disabled
// budget_alerts preference makes this a no-op. The dedup check reads
// before the batch write, so two concurrent expense writes can still
// produce a duplicate; that window is accepted.
func (s *alertService) CheckBudgetAlerts(owner OwnerContext) error {
	if !owner.BudgetAlerts {
		return nil
	}

	today := period.Date(time.Now())
	month, year := int(today.Month()), today.Year()
	window := period.MonthWindow(month, year)

	var budgets []models.Budget
	err := s.db.Preload("Category").
		Where("user_id = ? AND month = ? AND year = ?", owner.UserID, month, year).
		Find(&budgets).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(budgets) == 0 {
		return nil
	}

	sentToday, err := s.alertedToday(owner.UserID, today)
	if err != nil {
		return err
	}

	var created []models.Notification
	for _, budget := range budgets {
		if budget.Amount.LessThanOrEqual(decimal.Zero) {
			continue
		}

		var spent decimal.Decimal
		if budget.IsOverall {
			spent, err = s.ledger.Sum(owner.UserID, models.TransactionTypeExpense, &window)
		} else if budget.CategoryID != nil {
			spent, err = s.ledger.SumForCategory(owner.UserID, *budget.CategoryID, models.TransactionTypeExpense, &window)
		} else {
			continue
		}
		if err != nil {
			return err
		}

		status := Evaluate(budget, spent)
		var kind models.NotificationType
		switch status.Status {
		case BudgetStatusExceeded:
			kind = models.NotificationTypeBudgetExceeded
		case BudgetStatusWarning:
			kind = models.NotificationTypeBudgetWarning
		default:
			continue
		}
		if sentToday[alertKey{kind: kind, budgetID: budget.ID}] {
			continue
		}

		notification := s.buildNotification(owner, budget, status, kind)
		if owner.EmailNotifications {
			subject, body := alertEmail(owner, budget, status, kind)
			notification.EmailSent = s.notifier.Send(owner.Email, subject, body)
		}
		created = append(created, notification)
	}

	if len(created) == 0 {
		return nil
	}
	if err := s.db.Create(&created).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

type alertKey struct {
	kind     models.NotificationType
	budgetID uint
}

// alertedToday collects which (type, budget) pairs already got a
// notification today.
func (s *alertService) alertedToday(userID uint, today time.Time) (map[alertKey]bool, error) {
	var existing []models.Notification
	err := s.db.Where(
		"user_id = ? AND type IN ? AND created_at >= ? AND created_at < ?",
		userID,
		[]models.NotificationType{models.NotificationTypeBudgetWarning, models.NotificationTypeBudgetExceeded},
		today, today.AddDate(0, 0, 1),
	).Find(&existing).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sent := map[alertKey]bool{}
	for _, notification := range existing {
		if id, ok := numericID(notification.Data["budget_id"]); ok {
			sent[alertKey{kind: notification.Type, budgetID: id}] = true
		}
	}
	return sent, nil
}

// numericID reads a budget id back out of the JSON data payload, where
// numbers come back as float64.
func numericID(v interface{}) (uint, bool) {
	switch n := v.(type) {
	case float64:
		return uint(n), true
	case int:
		return uint(n), true
	case uint:
		return n, true
	}
	return 0, false
}

func (s *alertService) buildNotification(owner OwnerContext, budget models.Budget, status BudgetStatus, kind models.NotificationType) models.Notification {
	name := budget.Name()

	var title, message string
	if kind == models.NotificationTypeBudgetExceeded {
		title = fmt.Sprintf("%s Exceeded!", name)
		message = fmt.Sprintf("You have spent %s of your %s budget (%s).",
			currency.MoneyExact(owner.Symbol, status.Spent),
			currency.MoneyExact(owner.Symbol, budget.Amount),
			currency.Percent(status.Percentage),
		)
	} else {
		title = fmt.Sprintf("%s Near Limit", name)
		message = fmt.Sprintf("You have used %s of your %s. %s remaining.",
			currency.Percent(status.Percentage),
			name,
			currency.MoneyExact(owner.Symbol, status.Remaining),
		)
	}

	data := models.NotificationData{
		"budget_id":     budget.ID,
		"spent":         status.Spent.InexactFloat64(),
		"budget_amount": budget.Amount.InexactFloat64(),
		"percentage":    status.Percentage.Round(1).InexactFloat64(),
	}
	if budget.CategoryID != nil {
		data["category_id"] = *budget.CategoryID
	}

	return models.Notification{
		UserID:  owner.UserID,
		Type:    kind,
		Title:   title,
		Message: message,
		Data:    data,
	}
}

func alertEmail(owner OwnerContext, budget models.Budget, status BudgetStatus, kind models.NotificationType) (subject, body string) {
	name := budget.Name()

	if kind == models.NotificationTypeBudgetExceeded {
		subject = fmt.Sprintf("⚠️ Budget Alert: %s Exceeded!", name)
		body = fmt.Sprintf(
			"Hi %s,\n\nYour %s has been exceeded!\n\nBudget: %s\nSpent: %s\nOver by: %s\n\nTime to review your spending.",
			owner.Name, name,
			currency.MoneyExact(owner.Symbol, budget.Amount),
			currency.MoneyExact(owner.Symbol, status.Spent),
			currency.MoneyExact(owner.Symbol, status.Remaining.Neg()),
		)
		return subject, body
	}

	subject = fmt.Sprintf("⚡ Budget Warning: %s at %s", name, currency.Percent(status.Percentage))
	body = fmt.Sprintf(
		"Hi %s,\n\nYou are approaching your %s limit.\n\nBudget: %s\nSpent: %s (%s)\nRemaining: %s\n\nKeep an eye on your spending.",
		owner.Name, name,
		currency.MoneyExact(owner.Symbol, budget.Amount),
		currency.MoneyExact(owner.Symbol, status.Spent),
		currency.Percent(status.Percentage),
		currency.MoneyExact(owner.Symbol, status.Remaining),
	)
	return subject, body
}
