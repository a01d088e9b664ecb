package insights

import (
	"fmt"

	"github.com/shopspring/decimal"

	"wealthwise/internal/currency"
)

// MonthInput carries everything the monthly rules need, computed once by
// the caller. Rules never query anything.
type MonthInput struct {
	Symbol string

	Income       decimal.Decimal
	Expenses     decimal.Decimal
	PrevIncome   decimal.Decimal
	PrevExpenses decimal.Decimal

	// Expense breakdown for the month, descending by total.
	Categories []CategoryShare

	// Per-category comparisons against the previous month, in breakdown
	// order, only for categories whose previous spend was positive.
	CategoryDeltas []CategoryDelta

	Budgets []BudgetUsage

	DaysInMonth int
	// Days elapsed so far when the month is the currently-open one,
	// otherwise the full month length.
	DaysElapsed int
}

type monthRule func(MonthInput) []Insight

// monthRules run in a fixed sequence; each emits nothing when its
// precondition fails.
var monthRules = []monthRule{
	topCategoryRule,
	expenseTrendRule,
	savingsRule,
	categoryDeltaRule,
	budgetExceededRule,
	dailyAverageRule,
}

// ForMonth applies the monthly rule sequence and collects sub-100% budget
// threshold crossings into a separate alerts list.
func ForMonth(in MonthInput) ([]Insight, []BudgetAlert) {
	insights := []Insight{}
	for _, rule := range monthRules {
		insights = append(insights, rule(in)...)
	}
	return insights, Alerts(in.Budgets)
}

// Alerts collects every budget at or above its alert threshold: exceeded at
// 100%+, warning below that.
func Alerts(budgets []BudgetUsage) []BudgetAlert {
	alerts := []BudgetAlert{}
	for _, b := range budgets {
		if !b.Amount.IsPositive() {
			continue
		}
		kind := ""
		switch {
		case b.Percentage.GreaterThanOrEqual(hundred):
			kind = "exceeded"
		case b.Percentage.GreaterThanOrEqual(decimal.NewFromInt(int64(b.Threshold))):
			kind = "warning"
		default:
			continue
		}
		alerts = append(alerts, BudgetAlert{
			Type:       kind,
			Name:       b.Name,
			Spent:      b.Spent.InexactFloat64(),
			Budget:     b.Amount.InexactFloat64(),
			Percentage: b.Percentage.InexactFloat64(),
		})
	}
	return alerts
}

func topCategoryRule(in MonthInput) []Insight {
	if len(in.Categories) == 0 {
		return nil
	}
	top := in.Categories[0]
	return []Insight{{
		Type:  "highest_spending",
		Icon:  "🏆",
		Title: "Top Spending Category",
		Message: fmt.Sprintf("Your highest spending is on %s at %s (%s of total expenses).",
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

func expenseTrendRule(in MonthInput) []Insight {
	if !in.PrevExpenses.IsPositive() {
		if in.Expenses.IsPositive() {
			return []Insight{{
				Type:  "expense_comparison",
				Icon:  "📊",
				Title: "First Month Tracking",
				Message: fmt.Sprintf("You've spent %s this month. Keep tracking to see trends!",
					currency.Money(in.Symbol, in.Expenses)),
				Severity: SeverityInfo,
			}}
		}
		return nil
	}

	change := changePct(in.Expenses, in.PrevExpenses)
	diff := in.Expenses.Sub(in.PrevExpenses)
	payload := map[string]interface{}{
		"change_percentage": change.InexactFloat64(),
		"change_amount":     diff.InexactFloat64(),
	}

	if change.IsPositive() {
		severity := SeverityInfo
		if change.GreaterThanOrEqual(decimal.NewFromInt(20)) {
			severity = SeverityWarning
		}
		return []Insight{{
			Type:  "expense_comparison",
			Icon:  "📈",
			Title: "Spending Increase",
			Message: fmt.Sprintf("You spent %s more this month compared to last month (%s more).",
				currency.Percent(change), currency.Money(in.Symbol, diff)),
			Severity: severity,
			Payload:  payload,
		}}
	}
	return []Insight{{
		Type:  "expense_comparison",
		Icon:  "📉",
		Title: "Spending Decrease",
		Message: fmt.Sprintf("Great job! You spent %s less this month compared to last month (%s saved).",
			currency.Percent(change), currency.Money(in.Symbol, diff)),
		Severity: SeveritySuccess,
		Payload:  payload,
	}}
}

func savingsRule(in MonthInput) []Insight {
	if !in.Income.IsPositive() {
		return nil
	}
	savings := in.Income.Sub(in.Expenses)
	if savings.IsPositive() {
		rate := savings.Div(in.Income).Mul(hundred)
		return []Insight{{
			Type:  "savings",
			Icon:  "💰",
			Title: "Positive Savings",
			Message: fmt.Sprintf("You're saving %s this month (%s savings rate). Keep it up!",
				currency.Money(in.Symbol, savings), currency.Percent(rate)),
			Severity: SeveritySuccess,
			Payload: map[string]interface{}{
				"savings":      savings.InexactFloat64(),
				"savings_rate": rate.InexactFloat64(),
			},
		}}
	}
	return []Insight{{
		Type:  "overspending",
		Icon:  "⚠️",
		Title: "Overspending Alert",
		Message: fmt.Sprintf("You're spending more than you earn! Deficit: %s. Consider reducing expenses.",
			currency.Money(in.Symbol, savings)),
		Severity: SeverityDanger,
		Payload: map[string]interface{}{
			"deficit": savings.Abs().InexactFloat64(),
		},
	}}
}

// significantDelta is the minimum |month-over-month change| worth surfacing.
var significantDelta = decimal.NewFromInt(15)

func categoryDeltaRule(in MonthInput) []Insight {
	var out []Insight
	for _, d := range in.CategoryDeltas {
		if d.ChangePct.Abs().LessThanOrEqual(significantDelta) {
			continue
		}
		if len(out) == 3 {
			break
		}
		payload := map[string]interface{}{
			"category":          d.Name,
			"change_percentage": d.ChangePct.InexactFloat64(),
			"color":             d.Color,
		}
		if d.ChangePct.IsPositive() {
			severity := SeverityInfo
			if d.ChangePct.GreaterThan(decimal.NewFromInt(25)) {
				severity = SeverityWarning
			}
			out = append(out, Insight{
				Type:  "category_increase",
				Icon:  "🔺",
				Title: fmt.Sprintf("%s Spending Up", d.Name),
				Message: fmt.Sprintf("You spent %s more on %s compared to last month.",
					currency.Percent(d.ChangePct), d.Name),
				Severity: severity,
				Payload:  payload,
			})
		} else {
			out = append(out, Insight{
				Type:  "category_decrease",
				Icon:  "🔻",
				Title: fmt.Sprintf("%s Spending Down", d.Name),
				Message: fmt.Sprintf("You spent %s less on %s compared to last month.",
					currency.Percent(d.ChangePct), d.Name),
				Severity: SeveritySuccess,
				Payload:  payload,
			})
		}
	}
	return out
}

func budgetExceededRule(in MonthInput) []Insight {
	var out []Insight
	for _, b := range in.Budgets {
		if !b.Amount.IsPositive() || b.Percentage.LessThan(hundred) {
			continue
		}
		over := b.Spent.Sub(b.Amount)
		out = append(out, Insight{
			Type:  "budget_exceeded",
			Icon:  "🚨",
			Title: fmt.Sprintf("%s Budget Exceeded", b.Name),
			Message: fmt.Sprintf("You've exceeded your %s budget by %s (%s used).",
				b.Name, currency.Money(in.Symbol, over), currency.Percent(b.Percentage)),
			Severity: SeverityDanger,
		})
	}
	return out
}

func dailyAverageRule(in MonthInput) []Insight {
	if !in.Expenses.IsPositive() || in.DaysElapsed <= 0 {
		return nil
	}
	avg := in.Expenses.Div(decimal.NewFromInt(int64(in.DaysElapsed)))
	projected := avg.Mul(decimal.NewFromInt(int64(in.DaysInMonth)))
	return []Insight{{
		Type:  "daily_average",
		Icon:  "📅",
		Title: "Daily Spending Average",
		Message: fmt.Sprintf("Your average daily spending is %s. Projected monthly: %s.",
			currency.Money(in.Symbol, avg), currency.Money(in.Symbol, projected)),
		Severity: SeverityInfo,
		Payload: map[string]interface{}{
			"daily_average":     avg.InexactFloat64(),
			"projected_monthly": projected.InexactFloat64(),
		},
	}}
}
