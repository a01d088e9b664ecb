// Package ledger provides read-only queries over transaction records,
// filtered by owner, type, category, and date predicates. The database does
// the filtering; all monetary summation happens here with exact decimals so
// no floating point enters aggregation before the serialization boundary.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "wealthwise/internal/errors"
	"wealthwise/internal/models"
	"wealthwise/internal/period"
)

// Ledger is a read-only view over the transactions table.
type Ledger struct {
	db *gorm.DB
}

// New creates a Ledger over the given database handle.
func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// scope builds the base query for an owner, optionally restricted by
// transaction type and window. Predicates are table-qualified so queries
// that join categories stay unambiguous.
func (l *Ledger) scope(userID uint, kind models.TransactionType, w *period.Window) *gorm.DB {
	q := l.db.Model(&models.Transaction{}).Where("transactions.user_id = ?", userID)
	if kind != "" {
		q = q.Where("transactions.type = ?", kind)
	}
	if w != nil {
		q = q.Where("transactions.date >= ? AND transactions.date <= ?", w.Start, w.End)
	}
	return q
}

// sum loads matching amounts and adds them exactly. Returns the additive
// identity when nothing matches.
func (l *Ledger) sum(q *gorm.DB) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := q.Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}

// Sum totals all transactions of the given type for the owner, optionally
// restricted to a window. A nil window means all time.
func (l *Ledger) Sum(userID uint, kind models.TransactionType, w *period.Window) (decimal.Decimal, error) {
	return l.sum(l.scope(userID, kind, w))
}

// SumOnDay totals transactions of the given type on a single calendar day.
func (l *Ledger) SumOnDay(userID uint, kind models.TransactionType, day time.Time) (decimal.Decimal, error) {
	w := period.Window{Start: period.Date(day), End: period.Date(day)}
	return l.Sum(userID, kind, &w)
}

// SumForCategory totals transactions of the given type in the window,
// restricted to one category.
func (l *Ledger) SumForCategory(userID uint, categoryID uint, kind models.TransactionType, w *period.Window) (decimal.Decimal, error) {
	return l.sum(l.scope(userID, kind, w).Where("category_id = ?", categoryID))
}

// SumForCategoryName totals transactions of the given type in the window
// whose category has the given name. Category comparisons across periods
// match by name, not id, so renamed duplicates fold together.
func (l *Ledger) SumForCategoryName(userID uint, name string, kind models.TransactionType, w *period.Window) (decimal.Decimal, error) {
	q := l.scope(userID, kind, w).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("categories.name = ?", name)
	return l.sum(q)
}

// Count returns the number of transactions for the owner, optionally
// restricted by type and window.
func (l *Ledger) Count(userID uint, kind models.TransactionType, w *period.Window) (int64, error) {
	var count int64
	if err := l.scope(userID, kind, w).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// CategoryTotal is one row of a grouped category aggregation. Name, color,
// and icon are empty when the transaction had no category; callers apply
// the "Uncategorized" fallback.
type CategoryTotal struct {
	Name  string
	Color string
	Icon  string
	Total decimal.Decimal
	Count int
}

// CategoryTotals groups transactions of the given type in the window by
// category, summing amounts and counting records, sorted descending by sum.
func (l *Ledger) CategoryTotals(userID uint, kind models.TransactionType, w *period.Window) ([]CategoryTotal, error) {
	var txs []models.Transaction
	if err := l.scope(userID, kind, w).Preload("Category").Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	index := make(map[string]int)
	var totals []CategoryTotal
	for _, tx := range txs {
		var name, color, icon string
		if tx.Category != nil {
			name, color, icon = tx.Category.Name, tx.Category.Color, tx.Category.Icon
		}
		i, ok := index[name]
		if !ok {
			i = len(totals)
			index[name] = i
			totals = append(totals, CategoryTotal{Name: name, Color: color, Icon: icon, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(tx.Amount)
		totals[i].Count++
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals, nil
}

// DailyTotals sums transactions of the given type per calendar day in the
// window, keyed by ISO date. Days without transactions are absent; callers
// treat them as zero.
func (l *Ledger) DailyTotals(userID uint, kind models.TransactionType, w period.Window) (map[string]decimal.Decimal, error) {
	var txs []models.Transaction
	if err := l.scope(userID, kind, &w).Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		key := period.Date(tx.Date).Format("2006-01-02")
		totals[key] = totals[key].Add(tx.Amount)
	}
	return totals, nil
}

// TopDay finds the single calendar day with the highest total for the given
// type in the window. The bool result is false when the window holds no
// matching transactions.
func (l *Ledger) TopDay(userID uint, kind models.TransactionType, w period.Window) (time.Time, decimal.Decimal, bool, error) {
	totals, err := l.DailyTotals(userID, kind, w)
	if err != nil {
		return time.Time{}, decimal.Zero, false, err
	}

	var bestKey string
	best := decimal.Zero
	for key, total := range totals {
		if bestKey == "" || total.GreaterThan(best) || (total.Equal(best) && key < bestKey) {
			bestKey, best = key, total
		}
	}
	if bestKey == "" {
		return time.Time{}, decimal.Zero, false, nil
	}

	day, err := time.ParseInLocation("2006-01-02", bestKey, time.UTC)
	if err != nil {
		return time.Time{}, decimal.Zero, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return day, best, true, nil
}

// Recent returns the most recent transactions in the window, newest first,
// with their categories preloaded.
func (l *Ledger) Recent(userID uint, w period.Window, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := l.scope(userID, "", &w).
		Preload("Category").
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}
