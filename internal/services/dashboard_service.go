package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "wealthwise/internal/errors"
	"wealthwise/internal/ledger"
	"wealthwise/internal/models"
	"wealthwise/internal/period"
)

const (
	trendMonths        = 6
	recentTransactions = 10
)

// dashboardService assembles the month-aware dashboard payload.
type dashboardService struct {
	db      *gorm.DB
	ledger  *ledger.Ledger
	budgets BudgetServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, budgets BudgetServicer) DashboardServicer {
	return &dashboardService{db: db, ledger: ledger.New(db), budgets: budgets}
}

// Dashboard builds the dashboard for one selected month: headline stats,
// previous-month comparison, budget block, category pies, a fixed
// six-month trend, and recent transactions.
func (s *dashboardService) Dashboard(owner OwnerContext, month period.Month) (*Dashboard, error) {
	window := month.Window
	prevWindow := month.PrevWindow()
	today := period.Date(time.Now())

	allTimeIncome, err := s.ledger.Sum(owner.UserID, models.TransactionTypeIncome, nil)
	if err != nil {
		return nil, err
	}
	allTimeExpenses, err := s.ledger.Sum(owner.UserID, models.TransactionTypeExpense, nil)
	if err != nil {
		return nil, err
	}

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

	savings := income.Sub(expenses)
	savingsRate := decimal.Zero
	if income.GreaterThan(decimal.Zero) {
		savingsRate = savings.Div(income).Mul(decimal.NewFromInt(100))
	}

	// The today block only applies when looking at the current month;
	// historical months report zeros.
	var todayStats PeriodStats
	if month.IsCurrent {
		todayIncome, err := s.ledger.SumOnDay(owner.UserID, models.TransactionTypeIncome, today)
		if err != nil {
			return nil, err
		}
		todayExpenses, err := s.ledger.SumOnDay(owner.UserID, models.TransactionTypeExpense, today)
		if err != nil {
			return nil, err
		}
		todayWindow := period.Window{Start: today, End: today}
		todayCount, err := s.ledger.Count(owner.UserID, "", &todayWindow)
		if err != nil {
			return nil, err
		}
		todayStats = PeriodStats{
			Income:            todayIncome.InexactFloat64(),
			Expenses:          todayExpenses.InexactFloat64(),
			TransactionsCount: todayCount,
		}
	}
	monthCount, err := s.ledger.Count(owner.UserID, "", &window)
	if err != nil {
		return nil, err
	}

	overall, categories, hasBudget, err := s.budgets.EvaluateMonth(owner, month)
	if err != nil {
		return nil, err
	}
	// Without an explicit overall budget the profile's monthly budget, when
	// set, stands in for the headline numbers. It does not count as having
	// a budget.
	if overall == nil {
		fallback, err := s.profileBudget(owner.UserID, month, expenses)
		if err != nil {
			return nil, err
		}
		if fallback != nil {
			overall = fallback
		}
	}

	expenseAggs, _, err := categoryBreakdown(s.ledger, owner.UserID, models.TransactionTypeExpense, &window)
	if err != nil {
		return nil, err
	}
	incomeAggs, _, err := categoryBreakdown(s.ledger, owner.UserID, models.TransactionTypeIncome, &window)
	if err != nil {
		return nil, err
	}

	trend, err := s.monthlyTrend(owner.UserID, month)
	if err != nil {
		return nil, err
	}

	recent, err := s.ledger.Recent(owner.UserID, window, recentTransactions)
	if err != nil {
		return nil, err
	}

	data := DashboardData{
		TotalBalance:    allTimeIncome.Sub(allTimeExpenses).InexactFloat64(),
		MonthlyIncome:   income.InexactFloat64(),
		MonthlyExpenses: expenses.InexactFloat64(),
		Savings:         savings.InexactFloat64(),
		SavingsRate:     savingsRate.Round(1).InexactFloat64(),
		IncomeChange:    changeView(income, prevIncome),
		ExpenseChange:   changeView(expenses, prevExpenses),
		Today: todayStats,
		ThisMonth: PeriodStats{
			Income:            income.InexactFloat64(),
			Expenses:          expenses.InexactFloat64(),
			TransactionsCount: monthCount,
		},
		OverallStatus:      BudgetStatusNormal,
		BudgetOverview:     []BudgetStatusView{},
		ExpenseByCategory:  chartSlices(expenseAggs),
		IncomeByCategory:   chartSlices(incomeAggs),
		MonthlyTrend:       trend,
		RecentTransactions: recent,
	}

	if overall != nil {
		data.MonthlyBudget = overall.Budget.Amount.InexactFloat64()
		data.BudgetUsedPercentage = overall.Percentage.Round(1).InexactFloat64()
		data.OverallStatus = overall.Status
	}
	for _, status := range categories {
		data.BudgetOverview = append(data.BudgetOverview, statusView(status))
	}

	return &Dashboard{
		Currency:       owner.Currency,
		SelectedMonth:  month.Month,
		SelectedYear:   month.Year,
		MonthName:      month.Name(),
		IsCurrentMonth: month.IsCurrent,
		HasBudget:      hasBudget,
		Data:           data,
	}, nil
}

// profileBudget evaluates the profile's monthly budget as a stand-in
// overall budget. Returns nil when unset or not positive.
func (s *dashboardService) profileBudget(userID uint, month period.Month, spent decimal.Decimal) (*BudgetStatus, error) {
	var profile models.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if profile.MonthlyBudget.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	status := Evaluate(models.Budget{
		UserID:         userID,
		Amount:         profile.MonthlyBudget,
		Month:          month.Month,
		Year:           month.Year,
		IsOverall:      true,
		AlertThreshold: 80,
	}, spent)
	return &status, nil
}

// monthlyTrend returns the fixed six-point trend ending at the selected
// month. Empty months appear with zero totals.
func (s *dashboardService) monthlyTrend(userID uint, month period.Month) ([]MonthlyTrendPoint, error) {
	buckets := period.MonthlyTrail(month.Year, month.Month, trendMonths)
	points := make([]MonthlyTrendPoint, 0, len(buckets))
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
		points = append(points, MonthlyTrendPoint{
			Month:   bucket.Start.Format("Jan 2006"),
			Income:  income.InexactFloat64(),
			Expense: expense.InexactFloat64(),
		})
	}
	return points, nil
}

// changeView is the percentage change between periods as a rounded float,
// zero when there is no previous value to compare against.
func changeView(current, previous decimal.Decimal) float64 {
	if previous.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}
