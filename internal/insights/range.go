package insights

import (
	"fmt"

	"github.com/shopspring/decimal"

	"wealthwise/internal/currency"
)

// RangeInput carries the precomputed aggregates for an arbitrary date range.
type RangeInput struct {
	Symbol string
	Days   int

	Income   decimal.Decimal
	Expenses decimal.Decimal

	TransactionCount int
	IncomeCount      int
	ExpenseCount     int

	// Expense breakdown for the range, descending by total.
	Categories []CategoryShare

	AvgDailyExpense   decimal.Decimal
	AvgMonthlyExpense decimal.Decimal
	AvgMonthlyIncome  decimal.Decimal

	// Highest single spending day, nil when the range has no expenses.
	TopDay *DayTotal

	// Totals of the immediately-preceding window of identical length.
	PrevExpenses decimal.Decimal
}

type rangeRule func(RangeInput) []Insight

var rangeRules = []rangeRule{
	rangeTopCategoryRule,
	rangeSavingsRule,
	rangeDailyAverageRule,
	rangeMonthlyAverageRule,
	transactionFrequencyRule,
	highestDayRule,
	concentrationRule,
	periodComparisonRule,
}

// ForRange applies the date-range rule sequence in order.
func ForRange(in RangeInput) []Insight {
	insights := []Insight{}
	for _, rule := range rangeRules {
		insights = append(insights, rule(in)...)
	}
	return insights
}

func rangeTopCategoryRule(in RangeInput) []Insight {
	if len(in.Categories) == 0 {
		return nil
	}
	top := in.Categories[0]
	return []Insight{{
		Type:  "top_spending",
		Icon:  "🏆",
		Title: "Highest Spending Category",
		Message: fmt.Sprintf("You spent the most on %s - %s (%s of total).",
			top.Name, currency.Money(in.Symbol, top.Total), currency.Percent(top.Percent)),
		Severity: SeverityInfo,
		Payload: map[string]interface{}{
			"category":   top.Name,
			"amount":     top.Total.InexactFloat64(),
			"percentage": top.Percent.InexactFloat64(),
			"color":      top.Color,
		},
	}}
}

func rangeSavingsRule(in RangeInput) []Insight {
	if !in.Income.IsPositive() {
		return nil
	}
	net := in.Income.Sub(in.Expenses)
	if net.IsPositive() {
		rate := net.Div(in.Income).Mul(hundred)
		return []Insight{{
			Type:  "savings_positive",
			Icon:  "💰",
			Title: "Great Savings!",
			Message: fmt.Sprintf("You saved %s in this period (%s savings rate).",
				currency.Money(in.Symbol, net), currency.Percent(rate)),
			Severity: SeveritySuccess,
			Payload: map[string]interface{}{
				"amount": net.InexactFloat64(),
				"rate":   rate.InexactFloat64(),
			},
		}}
	}
	return []Insight{{
		Type:  "savings_negative",
		Icon:  "⚠️",
		Title: "Overspending Alert",
		Message: fmt.Sprintf("You spent %s more than you earned in this period.",
			currency.Money(in.Symbol, net)),
		Severity: SeverityDanger,
		Payload: map[string]interface{}{
			"amount": net.Abs().InexactFloat64(),
		},
	}}
}

func rangeDailyAverageRule(in RangeInput) []Insight {
	return []Insight{{
		Type:  "daily_average",
		Icon:  "📊",
		Title: "Daily Spending Average",
		Message: fmt.Sprintf("You spent an average of %s per day over %d days.",
			currency.Money(in.Symbol, in.AvgDailyExpense), in.Days),
		Severity: SeverityInfo,
		Payload: map[string]interface{}{
			"amount": in.AvgDailyExpense.InexactFloat64(),
			"days":   in.Days,
		},
	}}
}

func rangeMonthlyAverageRule(in RangeInput) []Insight {
	return []Insight{{
		Type:  "monthly_average",
		Icon:  "📅",
		Title: "Monthly Average",
		Message: fmt.Sprintf("Average monthly spending: %s | Average monthly income: %s.",
			currency.Money(in.Symbol, in.AvgMonthlyExpense), currency.Money(in.Symbol, in.AvgMonthlyIncome)),
		Severity: SeverityInfo,
		Payload: map[string]interface{}{
			"avg_expense": in.AvgMonthlyExpense.InexactFloat64(),
			"avg_income":  in.AvgMonthlyIncome.InexactFloat64(),
		},
	}}
}

func transactionFrequencyRule(in RangeInput) []Insight {
	perDay := 0.0
	if in.Days > 0 {
		perDay = float64(in.TransactionCount) / float64(in.Days)
	}
	return []Insight{{
		Type:  "transaction_frequency",
		Icon:  "🔄",
		Title: "Transaction Activity",
		Message: fmt.Sprintf("You made %d transactions (%d income, %d expenses) - avg %.1f/day.",
			in.TransactionCount, in.IncomeCount, in.ExpenseCount, perDay),
		Severity: SeverityInfo,
		Payload: map[string]interface{}{
			"total":         in.TransactionCount,
			"income_count":  in.IncomeCount,
			"expense_count": in.ExpenseCount,
			"avg_per_day":   perDay,
		},
	}}
}

func highestDayRule(in RangeInput) []Insight {
	if in.TopDay == nil {
		return nil
	}
	return []Insight{{
		Type:  "highest_day",
		Icon:  "📆",
		Title: "Highest Spending Day",
		Message: fmt.Sprintf("Your highest spending day was %s with %s spent.",
			in.TopDay.Date.Format("January 02, 2006"), currency.Money(in.Symbol, in.TopDay.Total)),
		Severity: SeverityInfo,
		Payload: map[string]interface{}{
			"date":   in.TopDay.Date.Format("2006-01-02"),
			"amount": in.TopDay.Total.InexactFloat64(),
		},
	}}
}

func concentrationRule(in RangeInput) []Insight {
	if len(in.Categories) < 3 {
		return nil
	}
	top3 := decimal.Zero
	names := make([]string, 0, 3)
	for _, c := range in.Categories[:3] {
		top3 = top3.Add(c.Percent)
		names = append(names, c.Name)
	}
	return []Insight{{
		Type:  "category_concentration",
		Icon:  "🎯",
		Title: "Spending Concentration",
		Message: fmt.Sprintf("Your top 3 categories account for %s of all expenses.",
			currency.Percent(top3)),
		Severity: SeverityInfo,
		Payload: map[string]interface{}{
			"top_3_percentage": top3.InexactFloat64(),
			"categories":       names,
		},
	}}
}

func periodComparisonRule(in RangeInput) []Insight {
	if !in.PrevExpenses.IsPositive() {
		return nil
	}
	change := changePct(in.Expenses, in.PrevExpenses)
	payload := map[string]interface{}{
		"change_pct": change.InexactFloat64(),
	}
	if change.IsPositive() {
		severity := SeverityInfo
		if change.GreaterThanOrEqual(decimal.NewFromInt(20)) {
			severity = SeverityWarning
		}
		return []Insight{{
			Type:  "period_comparison",
			Icon:  "📈",
			Title: "Spending vs Previous Period",
			Message: fmt.Sprintf("You spent %s more compared to the previous %d days.",
				currency.Percent(change), in.Days),
			Severity: severity,
			Payload:  payload,
		}}
	}
	return []Insight{{
		Type:  "period_comparison",
		Icon:  "📉",
		Title: "Spending vs Previous Period",
		Message: fmt.Sprintf("Great! You spent %s less compared to the previous %d days.",
			currency.Percent(change), in.Days),
		Severity: SeveritySuccess,
		Payload:  payload,
	}}
}
