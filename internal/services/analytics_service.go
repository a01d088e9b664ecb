package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wealthwise/internal/insights"
	"wealthwise/internal/ledger"
	"wealthwise/internal/models"
	"wealthwise/internal/period"
)

// analyticsService assembles the month and date-range analytics payloads.
type analyticsService struct {
	db      *gorm.DB
	ledger  *ledger.Ledger
	budgets BudgetServicer
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB, budgets BudgetServicer) AnalyticsServicer {
	return &analyticsService{db: db, ledger: ledger.New(db), budgets: budgets}
}

// Month builds the analytics payload for one selected month: summary,
// charts, generated insights with budget alerts, and the previous-month
// comparison.
func (s *analyticsService) Month(owner OwnerContext, month period.Month) (*MonthAnalytics, error) {
	window := month.Window
	prevWindow := month.PrevWindow()

	income, err := s.ledger.Sum(owner.UserID, models.TransactionTypeIncome, &window)
	if err != nil {
		return nil, err
	}
	expenses, err := s.ledger.Sum(owner.UserID, models.TransactionTypeExpense, &window)
	if err != nil {
		return nil, err
	}
	prevIncome, err := s.ledger.Sum(owner.UserID, models.TransactionTypeIncome, &prevWindow)
	if err != nil {
		return nil, err
	}
	prevExpenses, err := s.ledger.Sum(owner.UserID, models.TransactionTypeExpense, &prevWindow)
	if err != nil {
		return nil, err
	}
	count, err := s.ledger.Count(owner.UserID, "", &window)
	if err != nil {
		return nil, err
	}

	savings := income.Sub(expenses)
	savingsRate := decimal.Zero
	if income.GreaterThan(decimal.Zero) {
		savingsRate = savings.Div(income).Mul(decimal.NewFromInt(100))
	}

	expenseAggs, _, err := categoryBreakdown(s.ledger, owner.UserID, models.TransactionTypeExpense, &window)
	if err != nil {
		return nil, err
	}

	bars, err := s.incomeVsExpense(owner.UserID, month)
	if err != nil {
		return nil, err
	}
	daily, err := s.dailySpending(owner.UserID, window)
	if err != nil {
		return nil, err
	}

	deltas, err := s.categoryDeltas(owner.UserID, expenseAggs, prevWindow)
	if err != nil {
		return nil, err
	}

	overall, categories, _, err := s.budgets.EvaluateMonth(owner, month)
	if err != nil {
		return nil, err
	}
	usages := []insights.BudgetUsage{}
	if overall != nil {
		usages = append(usages, budgetUsage(*overall))
	}
	for _, status := range categories {
		usages = append(usages, budgetUsage(status))
	}

	daysElapsed := month.Window.Days()
	if month.IsCurrent {
		daysElapsed = elapsedDays(window, time.Now())
	}

	generated, alerts := insights.ForMonth(insights.MonthInput{
		Symbol:         owner.Symbol,
		Income:         income,
		Expenses:       expenses,
		PrevIncome:     prevIncome,
		PrevExpenses:   prevExpenses,
		Categories:     categoryShares(expenseAggs),
		CategoryDeltas: deltas,
		Budgets:        usages,
		DaysInMonth:    period.DaysInMonth(month.Year, month.Month),
		DaysElapsed:    daysElapsed,
	})

	return &MonthAnalytics{
		Currency:       owner.Currency,
		CurrencySymbol: owner.Symbol,
		Month:          month.Month,
		Year:           month.Year,
		MonthName:      month.Name(),
		Summary: MonthSummary{
			TotalIncome:      income.InexactFloat64(),
			TotalExpenses:    expenses.InexactFloat64(),
			Savings:          savings.InexactFloat64(),
			SavingsRate:      savingsRate.Round(1).InexactFloat64(),
			TransactionCount: count,
		},
		Charts: MonthCharts{
			ExpenseByCategory: chartSlices(expenseAggs),
			IncomeVsExpense:   bars,
			DailySpending:     daily,
		},
		Insights:     generated,
		BudgetAlerts: alerts,
		Comparison: MonthComparison{
			PrevMonthExpenses: prevExpenses.InexactFloat64(),
			PrevMonthIncome:   prevIncome.InexactFloat64(),
			ExpenseChange:     changeView(expenses, prevExpenses),
			IncomeChange:      changeView(income, prevIncome),
		},
	}, nil
}

// incomeVsExpense is the six-month bar chart ending at the selected month.
func (s *analyticsService) incomeVsExpense(userID uint, month period.Month) ([]IncomeVsExpense, error) {
	buckets := period.MonthlyTrail(month.Year, month.Month, trendMonths)
	bars := make([]IncomeVsExpense, 0, len(buckets))
	for _, bucket := range buckets {
		w := period.Window{Start: bucket.Start, End: bucket.End}
		income, err := s.ledger.Sum(userID, models.TransactionTypeIncome, &w)
		if err != nil {
			return nil, err
		}
		expense, err := s.ledger.Sum(userID, models.TransactionTypeExpense, &w)
		if err != nil {
			return nil, err
		}
		bars = append(bars, IncomeVsExpense{
			Month:   bucket.Label,
			Year:    bucket.Start.Year(),
			Income:  income.InexactFloat64(),
			Expense: expense.InexactFloat64(),
		})
	}
	return bars, nil
}

// dailySpending is the month's per-day expense line with a running total.
func (s *analyticsService) dailySpending(userID uint, w period.Window) ([]DailySpendPoint, error) {
	byDay, err := s.ledger.DailyTotals(userID, models.TransactionTypeExpense, w)
	if err != nil {
		return nil, err
	}

	points := make([]DailySpendPoint, 0, w.Days())
	cumulative := decimal.Zero
	for day := w.Start; !day.After(w.End); day = day.AddDate(0, 0, 1) {
		expense := byDay[day.Format(dayKey)]
		cumulative = cumulative.Add(expense)
		points = append(points, DailySpendPoint{
			Day:        day.Day(),
			Expense:    expense.InexactFloat64(),
			Cumulative: cumulative.InexactFloat64(),
		})
	}
	return points, nil
}

// topCategoryDeltas is how many categories get a previous-month comparison.
const topCategoryDeltas = 5

// categoryDeltas compares the top expense categories against their
// same-named spend in the previous window. Categories with no previous
// spend are not comparable and produce no delta.
func (s *analyticsService) categoryDeltas(userID uint, aggregates []categoryAggregate, prev period.Window) ([]insights.CategoryDelta, error) {
	deltas := []insights.CategoryDelta{}
	for i, agg := range aggregates {
		if i >= topCategoryDeltas {
			break
		}
		previous, err := s.ledger.SumForCategoryName(userID, agg.Name, models.TransactionTypeExpense, &prev)
		if err != nil {
			return nil, err
		}
		if !previous.GreaterThan(decimal.Zero) {
			continue
		}
		change := agg.Total.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
		deltas = append(deltas, insights.CategoryDelta{
			Name:      agg.Name,
			Color:     agg.Color,
			Current:   agg.Total,
			Previous:  previous,
			ChangePct: change,
		})
	}
	return deltas, nil
}

func budgetUsage(status BudgetStatus) insights.BudgetUsage {
	return insights.BudgetUsage{
		Name:       status.Budget.Name(),
		Spent:      status.Spent,
		Amount:     status.Budget.Amount,
		Percentage: status.Percentage,
		Threshold:  status.Budget.AlertThreshold,
	}
}

// Range builds the analytics payload for an arbitrary resolved window:
// summary with per-day and per-month averages, granularity-bucketed
// charts, generated insights, and the previous-window comparison.
func (s *analyticsService) Range(owner OwnerContext, rangeType period.RangeType, window period.Window) (*RangeAnalytics, error) {
	days := window.Days()
	prev := window.Previous()

	income, err := s.ledger.Sum(owner.UserID, models.TransactionTypeIncome, &window)
	if err != nil {
		return nil, err
	}
	expenses, err := s.ledger.Sum(owner.UserID, models.TransactionTypeExpense, &window)
	if err != nil {
		return nil, err
	}
	prevIncome, err := s.ledger.Sum(owner.UserID, models.TransactionTypeIncome, &prev)
	if err != nil {
		return nil, err
	}
	prevExpenses, err := s.ledger.Sum(owner.UserID, models.TransactionTypeExpense, &prev)
	if err != nil {
		return nil, err
	}

	incomeCount, err := s.ledger.Count(owner.UserID, models.TransactionTypeIncome, &window)
	if err != nil {
		return nil, err
	}
	expenseCount, err := s.ledger.Count(owner.UserID, models.TransactionTypeExpense, &window)
	if err != nil {
		return nil, err
	}

	dayCount := decimal.NewFromInt(int64(days))
	// Ranges shorter than a month count as one month, so short windows do
	// not inflate the monthly averages.
	monthsSpanned := decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(30))
	if monthsSpanned.LessThan(decimal.NewFromInt(1)) {
		monthsSpanned = decimal.NewFromInt(1)
	}
	avgDailyExpense := expenses.Div(dayCount)
	avgDailyIncome := income.Div(dayCount)
	avgMonthlyExpense := expenses.Div(monthsSpanned)
	avgMonthlyIncome := income.Div(monthsSpanned)

	savings := income.Sub(expenses)
	savingsRate := decimal.Zero
	if income.GreaterThan(decimal.Zero) {
		savingsRate = savings.Div(income).Mul(decimal.NewFromInt(100))
	}

	expenseAggs, _, err := categoryBreakdown(s.ledger, owner.UserID, models.TransactionTypeExpense, &window)
	if err != nil {
		return nil, err
	}
	incomeAggs, _, err := categoryBreakdown(s.ledger, owner.UserID, models.TransactionTypeIncome, &window)
	if err != nil {
		return nil, err
	}

	trend, err := trendPoints(s.ledger, owner.UserID, window)
	if err != nil {
		return nil, err
	}
	cumulative, err := cumulativePoints(s.ledger, owner.UserID, window)
	if err != nil {
		return nil, err
	}

	var topDay *insights.DayTotal
	day, total, found, err := s.ledger.TopDay(owner.UserID, models.TransactionTypeExpense, window)
	if err != nil {
		return nil, err
	}
	if found {
		topDay = &insights.DayTotal{Date: day, Total: total}
	}

	generated := insights.ForRange(insights.RangeInput{
		Symbol:            owner.Symbol,
		Days:              days,
		Income:            income,
		Expenses:          expenses,
		TransactionCount:  int(incomeCount + expenseCount),
		IncomeCount:       int(incomeCount),
		ExpenseCount:      int(expenseCount),
		Categories:        categoryShares(expenseAggs),
		AvgDailyExpense:   avgDailyExpense,
		AvgMonthlyExpense: avgMonthlyExpense,
		AvgMonthlyIncome:  avgMonthlyIncome,
		TopDay:            topDay,
		PrevExpenses:      prevExpenses,
	})

	return &RangeAnalytics{
		Currency:       owner.Currency,
		CurrencySymbol: owner.Symbol,
		Range: RangeMeta{
			Type:      string(rangeType),
			Label:     window.Label,
			StartDate: window.Start.Format(dayKey),
			EndDate:   window.End.Format(dayKey),
			Days:      days,
		},
		Summary: RangeSummary{
			TotalIncome:       income.InexactFloat64(),
			TotalExpenses:     expenses.InexactFloat64(),
			NetSavings:        savings.InexactFloat64(),
			SavingsRate:       savingsRate.Round(1).InexactFloat64(),
			TransactionCount:  incomeCount + expenseCount,
			IncomeCount:       incomeCount,
			ExpenseCount:      expenseCount,
			AvgDailyExpense:   avgDailyExpense.Round(2).InexactFloat64(),
			AvgDailyIncome:    avgDailyIncome.Round(2).InexactFloat64(),
			AvgMonthlyExpense: avgMonthlyExpense.Round(2).InexactFloat64(),
			AvgMonthlyIncome:  avgMonthlyIncome.Round(2).InexactFloat64(),
		},
		Charts: RangeCharts{
			ExpenseByCategory: categorySlices(expenseAggs),
			IncomeByCategory:  categorySlices(incomeAggs),
			Trend:             trend,
			Cumulative:        cumulative,
		},
		Insights: generated,
		Comparison: RangeComparison{
			PrevPeriod: PrevPeriod{
				StartDate: prev.Start.Format(dayKey),
				EndDate:   prev.End.Format(dayKey),
				Income:    prevIncome.InexactFloat64(),
				Expenses:  prevExpenses.InexactFloat64(),
			},
			ExpenseChangePct:    changeView(expenses, prevExpenses),
			IncomeChangePct:     changeView(income, prevIncome),
			ExpenseChangeAmount: expenses.Sub(prevExpenses).InexactFloat64(),
			IncomeChangeAmount:  income.Sub(prevIncome).InexactFloat64(),
		},
	}, nil
}
