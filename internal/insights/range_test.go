package insights

import (
	"strings"
	"testing"
	"time"
)

func TestForRangeAlwaysOnRules(t *testing.T) {
	insights := ForRange(RangeInput{
		Symbol:            "₹",
		Days:              30,
		Income:            dec("3000"),
		Expenses:          dec("900"),
		TransactionCount:  3,
		IncomeCount:       1,
		ExpenseCount:      2,
		AvgDailyExpense:   dec("30"),
		AvgMonthlyExpense: dec("913.2"),
		AvgMonthlyIncome:  dec("3044"),
	})

	daily := findByType(insights, "daily_average")
	if len(daily) != 1 || !strings.Contains(daily[0].Message, "30 days") {
		t.Errorf("expected daily-average insight over 30 days, got %+v", daily)
	}

	monthly := findByType(insights, "monthly_average")
	if len(monthly) != 1 {
		t.Fatalf("expected monthly-average insight, got %d", len(monthly))
	}

	frequency := findByType(insights, "transaction_frequency")
	if len(frequency) != 1 {
		t.Fatalf("expected frequency insight, got %d", len(frequency))
	}
	if !strings.Contains(frequency[0].Message, "3 transactions (1 income, 2 expenses)") {
		t.Errorf("unexpected frequency message %q", frequency[0].Message)
	}
	if frequency[0].Payload["avg_per_day"] != 0.1 {
		t.Errorf("expected 0.1 per day, got %v", frequency[0].Payload["avg_per_day"])
	}
}

func TestRangeSavingsRule(t *testing.T) {
	t.Run("positive", func(t *testing.T) {
		insights := ForRange(RangeInput{Symbol: "₹", Days: 7, Income: dec("1000"), Expenses: dec("400"), AvgDailyExpense: dec("57.14")})
		got := findByType(insights, "savings_positive")
		if len(got) != 1 || got[0].Severity != SeveritySuccess {
			t.Fatalf("expected success savings insight, got %+v", got)
		}
	})

	t.Run("negative", func(t *testing.T) {
		insights := ForRange(RangeInput{Symbol: "₹", Days: 7, Income: dec("400"), Expenses: dec("1000"), AvgDailyExpense: dec("142.86")})
		got := findByType(insights, "savings_negative")
		if len(got) != 1 || got[0].Severity != SeverityDanger {
			t.Fatalf("expected danger overspending insight, got %+v", got)
		}
	})

	t.Run("no_income_is_silent", func(t *testing.T) {
		insights := ForRange(RangeInput{Symbol: "₹", Days: 7, Expenses: dec("1000"), AvgDailyExpense: dec("142.86")})
		if len(findByType(insights, "savings_positive"))+len(findByType(insights, "savings_negative")) != 0 {
			t.Error("expected no savings insight without income")
		}
	})
}

func TestHighestDayRule(t *testing.T) {
	t.Run("nil_top_day", func(t *testing.T) {
		insights := ForRange(RangeInput{Symbol: "₹", Days: 7})
		if len(findByType(insights, "highest_day")) != 0 {
			t.Error("expected no highest-day insight without a top day")
		}
	})

	t.Run("names_the_day", func(t *testing.T) {
		insights := ForRange(RangeInput{
			Symbol: "₹",
			Days:   7,
			TopDay: &DayTotal{
				Date:  time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
				Total: dec("750"),
			},
		})
		got := findByType(insights, "highest_day")
		if len(got) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(got))
		}
		if !strings.Contains(got[0].Message, "March 10, 2024") {
			t.Errorf("expected formatted date in message, got %q", got[0].Message)
		}
	})
}

func TestConcentrationRule(t *testing.T) {
	t.Run("needs_three_categories", func(t *testing.T) {
		insights := ForRange(RangeInput{
			Symbol: "₹",
			Days:   30,
			Categories: []CategoryShare{
				{Name: "A", Total: dec("600"), Percent: dec("60")},
				{Name: "B", Total: dec("400"), Percent: dec("40")},
			},
		})
		if len(findByType(insights, "category_concentration")) != 0 {
			t.Error("expected no concentration insight with fewer than 3 categories")
		}
	})

	t.Run("sums_top_three", func(t *testing.T) {
		insights := ForRange(RangeInput{
			Symbol: "₹",
			Days:   30,
			Categories: []CategoryShare{
				{Name: "A", Total: dec("500"), Percent: dec("50")},
				{Name: "B", Total: dec("300"), Percent: dec("30")},
				{Name: "C", Total: dec("100"), Percent: dec("10")},
				{Name: "D", Total: dec("100"), Percent: dec("10")},
			},
		})
		got := findByType(insights, "category_concentration")
		if len(got) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(got))
		}
		if !strings.Contains(got[0].Message, "90.0%") {
			t.Errorf("expected 90.0%% in message, got %q", got[0].Message)
		}
	})
}

func TestPeriodComparisonRule(t *testing.T) {
	t.Run("no_previous_is_silent", func(t *testing.T) {
		insights := ForRange(RangeInput{Symbol: "₹", Days: 30, Expenses: dec("900")})
		if len(findByType(insights, "period_comparison")) != 0 {
			t.Error("expected no comparison without previous spend")
		}
	})

	t.Run("large_increase_is_warning", func(t *testing.T) {
		insights := ForRange(RangeInput{Symbol: "₹", Days: 30, Expenses: dec("900"), PrevExpenses: dec("450")})
		got := findByType(insights, "period_comparison")
		if len(got) != 1 || got[0].Severity != SeverityWarning {
			t.Fatalf("expected warning for +100%%, got %+v", got)
		}
	})

	t.Run("decrease_is_success", func(t *testing.T) {
		insights := ForRange(RangeInput{Symbol: "₹", Days: 30, Expenses: dec("300"), PrevExpenses: dec("450")})
		got := findByType(insights, "period_comparison")
		if len(got) != 1 || got[0].Severity != SeveritySuccess {
			t.Fatalf("expected success for a decrease, got %+v", got)
		}
	})
}
