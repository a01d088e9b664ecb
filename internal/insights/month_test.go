package insights

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func findByType(insights []Insight, insightType string) []Insight {
	var out []Insight
	for _, in := range insights {
		if in.Type == insightType {
			out = append(out, in)
		}
	}
	return out
}

func TestTopCategoryRule(t *testing.T) {
	t.Run("empty_breakdown", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{Symbol: "₹"})
		if len(findByType(insights, "highest_spending")) != 0 {
			t.Error("expected no top-category insight without categories")
		}
	})

	t.Run("names_the_top_category", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{
			Symbol: "₹",
			Categories: []CategoryShare{
				{Name: "Food & Dining", Total: dec("600"), Percent: dec("60")},
				{Name: "Transportation", Total: dec("400"), Percent: dec("40")},
			},
		})
		got := findByType(insights, "highest_spending")
		if len(got) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(got))
		}
		if !strings.Contains(got[0].Message, "Food & Dining") {
			t.Errorf("expected top category in message, got %q", got[0].Message)
		}
		if !strings.Contains(got[0].Message, "60.0%") {
			t.Errorf("expected share in message, got %q", got[0].Message)
		}
	})
}

func TestExpenseTrendRule(t *testing.T) {
	t.Run("first_month", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{Symbol: "₹", Expenses: dec("500")})
		got := findByType(insights, "expense_comparison")
		if len(got) != 1 || got[0].Title != "First Month Tracking" {
			t.Fatalf("expected first-month insight, got %+v", got)
		}
	})

	t.Run("small_increase_is_info", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{Symbol: "₹", Expenses: dec("1100"), PrevExpenses: dec("1000")})
		got := findByType(insights, "expense_comparison")
		if len(got) != 1 || got[0].Severity != SeverityInfo {
			t.Fatalf("expected info severity for +10%%, got %+v", got)
		}
	})

	t.Run("large_increase_is_warning", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{Symbol: "₹", Expenses: dec("1200"), PrevExpenses: dec("1000")})
		got := findByType(insights, "expense_comparison")
		if len(got) != 1 || got[0].Severity != SeverityWarning {
			t.Fatalf("expected warning severity at +20%%, got %+v", got)
		}
	})

	t.Run("decrease_is_success", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{Symbol: "₹", Expenses: dec("800"), PrevExpenses: dec("1000")})
		got := findByType(insights, "expense_comparison")
		if len(got) != 1 || got[0].Severity != SeveritySuccess {
			t.Fatalf("expected success severity for a decrease, got %+v", got)
		}
	})
}

func TestSavingsRule(t *testing.T) {
	t.Run("no_income_is_silent", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{Symbol: "₹", Expenses: dec("500")})
		if len(findByType(insights, "savings")) != 0 || len(findByType(insights, "overspending")) != 0 {
			t.Error("expected no savings insight without income")
		}
	})

	t.Run("positive_savings", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{Symbol: "₹", Income: dec("5000"), Expenses: dec("2000")})
		got := findByType(insights, "savings")
		if len(got) != 1 || got[0].Severity != SeveritySuccess {
			t.Fatalf("expected success savings insight, got %+v", got)
		}
		if !strings.Contains(got[0].Message, "60.0%") {
			t.Errorf("expected savings rate in message, got %q", got[0].Message)
		}
	})

	t.Run("overspending", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{Symbol: "₹", Income: dec("1000"), Expenses: dec("1500")})
		got := findByType(insights, "overspending")
		if len(got) != 1 || got[0].Severity != SeverityDanger {
			t.Fatalf("expected danger overspending insight, got %+v", got)
		}
	})
}

func TestCategoryDeltaRule(t *testing.T) {
	t.Run("small_changes_skipped", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{
			Symbol: "₹",
			CategoryDeltas: []CategoryDelta{
				{Name: "Food & Dining", ChangePct: dec("10")},
				{Name: "Transportation", ChangePct: dec("-15")},
			},
		})
		increases := findByType(insights, "category_increase")
		decreases := findByType(insights, "category_decrease")
		if len(increases) != 0 || len(decreases) != 0 {
			t.Error("expected changes within 15% to be skipped")
		}
	})

	t.Run("increase_over_25_is_warning", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{
			Symbol: "₹",
			CategoryDeltas: []CategoryDelta{
				{Name: "Food & Dining", ChangePct: dec("30")},
			},
		})
		got := findByType(insights, "category_increase")
		if len(got) != 1 || got[0].Severity != SeverityWarning {
			t.Fatalf("expected warning severity above +25%%, got %+v", got)
		}
	})

	t.Run("decrease_is_success", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{
			Symbol: "₹",
			CategoryDeltas: []CategoryDelta{
				{Name: "Shopping", ChangePct: dec("-40")},
			},
		})
		got := findByType(insights, "category_decrease")
		if len(got) != 1 || got[0].Severity != SeveritySuccess {
			t.Fatalf("expected success severity for a decrease, got %+v", got)
		}
	})

	t.Run("capped_at_three", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{
			Symbol: "₹",
			CategoryDeltas: []CategoryDelta{
				{Name: "A", ChangePct: dec("50")},
				{Name: "B", ChangePct: dec("50")},
				{Name: "C", ChangePct: dec("50")},
				{Name: "D", ChangePct: dec("50")},
			},
		})
		if got := findByType(insights, "category_increase"); len(got) != 3 {
			t.Errorf("expected at most 3 delta insights, got %d", len(got))
		}
	})
}

func TestBudgetExceededRule(t *testing.T) {
	insights, _ := ForMonth(MonthInput{
		Symbol: "₹",
		Budgets: []BudgetUsage{
			{Name: "Overall Budget", Spent: dec("1200"), Amount: dec("1000"), Percentage: dec("120"), Threshold: 80},
			{Name: "Food & Dining", Spent: dec("400"), Amount: dec("1000"), Percentage: dec("40"), Threshold: 80},
		},
	})
	got := findByType(insights, "budget_exceeded")
	if len(got) != 1 {
		t.Fatalf("expected 1 exceeded insight, got %d", len(got))
	}
	if got[0].Severity != SeverityDanger {
		t.Errorf("expected danger severity, got %s", got[0].Severity)
	}
	if !strings.Contains(got[0].Message, "₹200") {
		t.Errorf("expected over-amount in message, got %q", got[0].Message)
	}
}

func TestDailyAverageRule(t *testing.T) {
	t.Run("no_expenses_is_silent", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{Symbol: "₹", DaysInMonth: 31, DaysElapsed: 10})
		if len(findByType(insights, "daily_average")) != 0 {
			t.Error("expected no daily-average insight without expenses")
		}
	})

	t.Run("projects_from_elapsed_days", func(t *testing.T) {
		insights, _ := ForMonth(MonthInput{
			Symbol:      "₹",
			Expenses:    dec("1000"),
			DaysInMonth: 30,
			DaysElapsed: 10,
		})
		got := findByType(insights, "daily_average")
		if len(got) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(got))
		}
		if !strings.Contains(got[0].Message, "₹100") {
			t.Errorf("expected daily average in message, got %q", got[0].Message)
		}
		if !strings.Contains(got[0].Message, "₹3,000") {
			t.Errorf("expected projection in message, got %q", got[0].Message)
		}
	})
}

func TestAlerts(t *testing.T) {
	alerts := Alerts([]BudgetUsage{
		{Name: "Overall Budget", Spent: dec("1200"), Amount: dec("1000"), Percentage: dec("120"), Threshold: 80},
		{Name: "Food & Dining", Spent: dec("850"), Amount: dec("1000"), Percentage: dec("85"), Threshold: 80},
		{Name: "Transportation", Spent: dec("100"), Amount: dec("1000"), Percentage: dec("10"), Threshold: 80},
		{Name: "Zeroed", Spent: dec("50"), Amount: dec("0"), Percentage: dec("0"), Threshold: 80},
	})

	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].Type != "exceeded" || alerts[0].Name != "Overall Budget" {
		t.Errorf("expected exceeded alert first, got %+v", alerts[0])
	}
	if alerts[1].Type != "warning" || alerts[1].Name != "Food & Dining" {
		t.Errorf("expected warning alert second, got %+v", alerts[1])
	}
}
