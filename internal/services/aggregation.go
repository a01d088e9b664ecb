package services

import (
	"time"

	"github.com/shopspring/decimal"

	"wealthwise/internal/insights"
	"wealthwise/internal/ledger"
	"wealthwise/internal/models"
	"wealthwise/internal/period"
)

// uncategorizedName labels transactions whose category was deleted or never
// set. They stay in every aggregate rather than disappearing.
const uncategorizedName = "Uncategorized"

func fallbackColor(kind models.TransactionType) string {
	if kind == models.TransactionTypeIncome {
		return "#10b981"
	}
	return "#6366f1"
}

// categoryAggregate is one category's share of a period, in exact decimals.
type categoryAggregate struct {
	Name    string
	Color   string
	Icon    string
	Total   decimal.Decimal
	Count   int
	Percent decimal.Decimal
}

// categoryBreakdown groups the period's transactions of one kind by
// category, sorted descending by total, with each entry's percentage of
// the period total. The sum of entry totals equals the period total.
func categoryBreakdown(l *ledger.Ledger, userID uint, kind models.TransactionType, w *period.Window) ([]categoryAggregate, decimal.Decimal, error) {
	rows, err := l.CategoryTotals(userID, kind, w)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Total)
	}

	aggregates := make([]categoryAggregate, 0, len(rows))
	for _, row := range rows {
		agg := categoryAggregate{
			Name:  row.Name,
			Color: row.Color,
			Icon:  row.Icon,
			Total: row.Total,
			Count: row.Count,
		}
		if agg.Name == "" {
			agg.Name = uncategorizedName
			agg.Color = fallbackColor(kind)
			agg.Icon = "FiTag"
		}
		if total.GreaterThan(decimal.Zero) {
			agg.Percent = row.Total.Div(total).Mul(decimal.NewFromInt(100))
		}
		aggregates = append(aggregates, agg)
	}

	return aggregates, total, nil
}

// chartSlices converts a breakdown to the dashboard pie form.
func chartSlices(aggregates []categoryAggregate) []ChartSlice {
	slices := make([]ChartSlice, 0, len(aggregates))
	for _, agg := range aggregates {
		slices = append(slices, ChartSlice{
			Name:  agg.Name,
			Value: agg.Total.InexactFloat64(),
			Color: agg.Color,
		})
	}
	return slices
}

// categorySlices converts a breakdown to the richer analytics pie form.
func categorySlices(aggregates []categoryAggregate) []CategorySlice {
	slices := make([]CategorySlice, 0, len(aggregates))
	for _, agg := range aggregates {
		slices = append(slices, CategorySlice{
			Name:       agg.Name,
			Value:      agg.Total.InexactFloat64(),
			Color:      agg.Color,
			Icon:       agg.Icon,
			Count:      agg.Count,
			Percentage: agg.Percent.Round(1).InexactFloat64(),
		})
	}
	return slices
}

// categoryShares converts a breakdown to the insight engine's input form.
func categoryShares(aggregates []categoryAggregate) []insights.CategoryShare {
	shares := make([]insights.CategoryShare, 0, len(aggregates))
	for _, agg := range aggregates {
		shares = append(shares, insights.CategoryShare{
			Name:    agg.Name,
			Color:   agg.Color,
			Total:   agg.Total,
			Percent: agg.Percent,
		})
	}
	return shares
}

const dayKey = "2006-01-02"

// trendPoints buckets the window's income and expenses at the window's
// granularity. Buckets with no transactions appear with zero totals.
func trendPoints(l *ledger.Ledger, userID uint, w period.Window) ([]TrendPoint, error) {
	incomeByDay, err := l.DailyTotals(userID, models.TransactionTypeIncome, w)
	if err != nil {
		return nil, err
	}
	expenseByDay, err := l.DailyTotals(userID, models.TransactionTypeExpense, w)
	if err != nil {
		return nil, err
	}

	buckets := period.Buckets(w)
	points := make([]TrendPoint, 0, len(buckets))
	for _, bucket := range buckets {
		income, expense := decimal.Zero, decimal.Zero
		for day := bucket.Start; !day.After(bucket.End); day = day.AddDate(0, 0, 1) {
			key := day.Format(dayKey)
			income = income.Add(incomeByDay[key])
			expense = expense.Add(expenseByDay[key])
		}
		points = append(points, TrendPoint{
			Label:   bucket.Label,
			Period:  bucket.Period,
			Income:  income.InexactFloat64(),
			Expense: expense.InexactFloat64(),
			Savings: income.Sub(expense).InexactFloat64(),
		})
	}
	return points, nil
}

// cumulativePoints walks the window day by day accumulating running
// totals. The final point's totals equal the window's flat sums.
func cumulativePoints(l *ledger.Ledger, userID uint, w period.Window) ([]CumulativePoint, error) {
	incomeByDay, err := l.DailyTotals(userID, models.TransactionTypeIncome, w)
	if err != nil {
		return nil, err
	}
	expenseByDay, err := l.DailyTotals(userID, models.TransactionTypeExpense, w)
	if err != nil {
		return nil, err
	}

	points := make([]CumulativePoint, 0, w.Days())
	income, expense := decimal.Zero, decimal.Zero
	for day := w.Start; !day.After(w.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayKey)
		income = income.Add(incomeByDay[key])
		expense = expense.Add(expenseByDay[key])
		points = append(points, CumulativePoint{
			Date:              key,
			Label:             day.Format("Jan 02"),
			CumulativeExpense: expense.InexactFloat64(),
			CumulativeIncome:  income.InexactFloat64(),
			CumulativeSavings: income.Sub(expense).InexactFloat64(),
		})
	}
	return points, nil
}

// elapsedDays reports how many days of the window have already passed as
// of today, clamped to the window's length.
func elapsedDays(w period.Window, today time.Time) int {
	today = period.Date(today)
	if today.Before(w.Start) {
		return 0
	}
	if today.After(w.End) {
		return w.Days()
	}
	return int(today.Sub(w.Start).Hours()/24) + 1
}
