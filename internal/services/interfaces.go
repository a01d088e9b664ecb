package services

import (
	"time"

	"github.com/shopspring/decimal"

	"wealthwise/internal/insights"
	"wealthwise/internal/models"
	"wealthwise/internal/pagination"
	"wealthwise/internal/period"
)

// Notifier delivers best-effort email. The returned bool reports whether
// the message was actually sent; delivery failure is never an error.
type Notifier interface {
	Send(to, subject, body string) bool
}

// OwnerContext is the resolved identity an authenticated request operates
// as: stable user id plus the profile-derived currency and notification
// preferences, with safe defaults applied once. Every component receives
// this value instead of re-fetching the profile ad hoc.
type OwnerContext struct {
	UserID             uint
	Email              string
	Name               string
	Currency           string
	Symbol             string
	EmailNotifications bool
	BudgetAlerts       bool
}

// UserServicer defines the contract for user and profile business logic.
type UserServicer interface {
	CreateUser(email, username, password, firstName, lastName string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetOrCreateGoogleUser(email, firstName, lastName, avatar string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	ResolveOwner(userID uint) (OwnerContext, error)
	UpdateProfile(userID uint, req UpdateProfileRequest) (*models.User, error)
	ChangePassword(userID uint, oldPassword, newPassword string) error
	SetPassword(userID uint, newPassword string) error
	ForgotPassword(email string)
	ValidateResetToken(token string) (*models.User, error)
	ResetPassword(token, newPassword string) error
}

// UpdateProfileRequest holds the mutable user and profile fields. Nil
// pointers leave the current value unchanged.
type UpdateProfileRequest struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Avatar      *string

	Currency           *string
	MonthlyIncome      *decimal.Decimal
	MonthlyBudget      *decimal.Decimal
	SavingsGoal        *decimal.Decimal
	EmailNotifications *bool
	BudgetAlerts       *bool
	WeeklySummary      *bool
	MonthlyReport      *bool
}

// CategoryServicer defines the contract for category business logic.
// Listing returns system defaults plus the user's own categories; only the
// user's own categories are mutable.
type CategoryServicer interface {
	CreateCategory(userID uint, name string, categoryType models.CategoryType, icon, color string) (*models.Category, error)
	GetCategories(userID uint, categoryType *models.CategoryType) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name, icon, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
	SeedDefaults() error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type       *models.TransactionType
	CategoryID *uint
	StartDate  *time.Time
	EndDate    *time.Time
	Month      *int
	Year       *int
}

// TransactionServicer defines the contract for transaction business logic.
// Creating an expense synchronously triggers the budget alert check.
type TransactionServicer interface {
	CreateTransaction(userID uint, categoryID *uint, txType models.TransactionType, amount decimal.Decimal, description string, paymentMethod models.PaymentMethod, notes string, date time.Time) (*models.Transaction, error)
	GetTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, req UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}

// UpdateTransactionRequest holds the mutable transaction fields. Nil
// pointers leave the current value unchanged.
type UpdateTransactionRequest struct {
	CategoryID    *uint
	Amount        *decimal.Decimal
	Description   *string
	PaymentMethod *models.PaymentMethod
	Notes         *string
	Date          *time.Time
}

// BudgetStatusKind is the three-tier budget usage classification.
type BudgetStatusKind string

const (
	BudgetStatusNormal   BudgetStatusKind = "normal"
	BudgetStatusWarning  BudgetStatusKind = "warning"
	BudgetStatusExceeded BudgetStatusKind = "exceeded"
)

// BudgetStatus is a budget's evaluated usage for a period, in exact
// decimals. Remaining may be negative when the budget is exceeded.
type BudgetStatus struct {
	Budget     models.Budget
	Spent      decimal.Decimal
	Percentage decimal.Decimal
	Remaining  decimal.Decimal
	Status     BudgetStatusKind
}

// BudgetStatusView is the serialization form of a BudgetStatus; money and
// percentages become floats here, at the boundary only.
type BudgetStatusView struct {
	ID             uint    `json:"id"`
	CategoryID     *uint   `json:"category_id,omitempty"`
	CategoryName   string  `json:"category_name,omitempty"`
	CategoryColor  string  `json:"category_color,omitempty"`
	Amount         float64 `json:"amount"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	Percentage     float64 `json:"percentage"`
	Status         BudgetStatusKind `json:"status"`
	AlertThreshold int     `json:"alert_threshold"`
}

// BudgetOverview is the full budget overview payload for one month.
type BudgetOverview struct {
	Currency       string             `json:"currency"`
	Month          int                `json:"month"`
	Year           int                `json:"year"`
	MonthName      string             `json:"month_name"`
	IsCurrentMonth bool               `json:"is_current_month"`
	HasBudget      bool               `json:"has_budget"`
	Overall        *BudgetStatusView  `json:"overall_budget"`
	CategoryBudgets []BudgetStatusView `json:"category_budgets"`
	TotalExpenses  float64            `json:"total_expenses"`
	TotalIncome    float64            `json:"total_income"`
	ExceededCount  int                `json:"exceeded_count"`
	WarningCount   int                `json:"warning_count"`
}

// BudgetServicer defines the contract for budget CRUD and evaluation.
type BudgetServicer interface {
	CreateBudget(userID uint, categoryID *uint, amount decimal.Decimal, month, year int, isOverall bool, alertThreshold int) (*models.Budget, error)
	GetBudgets(userID uint, month, year *int) ([]models.Budget, error)
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
	UpdateBudget(userID, budgetID uint, amount *decimal.Decimal, alertThreshold *int) (*models.Budget, error)
	DeleteBudget(userID, budgetID uint) error

	// EvaluateMonth computes per-budget statuses for the owner's budgets of
	// one exact (month, year): the first overall budget found (duplicates
	// tolerated), and category budgets sorted descending by percentage.
	EvaluateMonth(owner OwnerContext, month period.Month) (overall *BudgetStatus, categories []BudgetStatus, hasBudget bool, err error)
	Overview(owner OwnerContext, month period.Month) (*BudgetOverview, error)
}

// NotificationServicer defines the contract for notification reads and
// read-state toggles. Creation happens only in the alert trigger.
type NotificationServicer interface {
	GetNotifications(userID uint, unreadOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
	UnreadCount(userID uint) (int64, error)
	MarkRead(userID uint, notificationIDs []uint, all bool) (int64, error)
	DeleteNotification(userID, notificationID uint) error
}

// AlertServicer checks the owner's current-month budgets after an expense
// is persisted and creates deduplicated threshold notifications.
type AlertServicer interface {
	CheckBudgetAlerts(owner OwnerContext) error
}

// DashboardServicer assembles the month-aware dashboard payload.
type DashboardServicer interface {
	Dashboard(owner OwnerContext, month period.Month) (*Dashboard, error)
}

// AnalyticsServicer assembles the analytics payloads.
type AnalyticsServicer interface {
	Month(owner OwnerContext, month period.Month) (*MonthAnalytics, error)
	Range(owner OwnerContext, rangeType period.RangeType, window period.Window) (*RangeAnalytics, error)
}

// ChartSlice is one pie-chart entry (dashboard form: name, value, color).
type ChartSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// CategorySlice is one pie-chart entry in the richer analytics form.
type CategorySlice struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Color      string  `json:"color"`
	Icon       string  `json:"icon"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TrendPoint is one bucket of an income/expense trend series.
type TrendPoint struct {
	Label   string  `json:"label"`
	Period  string  `json:"period"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
}

// CumulativePoint is one day of the running-total series.
type CumulativePoint struct {
	Date               string  `json:"date"`
	Label              string  `json:"label"`
	CumulativeExpense  float64 `json:"cumulative_expense"`
	CumulativeIncome   float64 `json:"cumulative_income"`
	CumulativeSavings  float64 `json:"cumulative_savings"`
}

// Dashboard is the full dashboard payload for one month.
type Dashboard struct {
	Currency       string        `json:"currency"`
	SelectedMonth  int           `json:"selected_month"`
	SelectedYear   int           `json:"selected_year"`
	MonthName      string        `json:"month_name"`
	IsCurrentMonth bool          `json:"is_current_month"`
	HasBudget      bool          `json:"has_budget"`
	Data           DashboardData `json:"dashboard"`
}

// DashboardData holds the dashboard's stats, comparisons, budget block,
// and chart series.
type DashboardData struct {
	TotalBalance    float64 `json:"total_balance"`
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	Savings         float64 `json:"savings"`
	SavingsRate     float64 `json:"savings_rate"`

	IncomeChange  float64 `json:"income_change"`
	ExpenseChange float64 `json:"expense_change"`

	Today     PeriodStats `json:"today"`
	ThisMonth PeriodStats `json:"this_month"`

	MonthlyBudget        float64            `json:"monthly_budget"`
	BudgetUsedPercentage float64            `json:"budget_used_percentage"`
	OverallStatus        BudgetStatusKind   `json:"overall_status"`
	BudgetOverview       []BudgetStatusView `json:"budget_overview"`

	ExpenseByCategory []ChartSlice         `json:"expense_by_category"`
	IncomeByCategory  []ChartSlice         `json:"income_by_category"`
	MonthlyTrend      []MonthlyTrendPoint  `json:"monthly_trend"`

	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

// PeriodStats is a small income/expense/count block.
type PeriodStats struct {
	Income            float64 `json:"income"`
	Expenses          float64 `json:"expenses"`
	TransactionsCount int64   `json:"transactions_count"`
}

// MonthlyTrendPoint is one bucket of the dashboard's fixed 6-point trend.
type MonthlyTrendPoint struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// MonthAnalytics is the analytics payload for one month.
type MonthAnalytics struct {
	Currency       string                 `json:"currency"`
	CurrencySymbol string                 `json:"currency_symbol"`
	Month          int                    `json:"month"`
	Year           int                    `json:"year"`
	MonthName      string                 `json:"month_name"`
	Summary        MonthSummary           `json:"summary"`
	Charts         MonthCharts            `json:"charts"`
	Insights       []insights.Insight     `json:"insights"`
	BudgetAlerts   []insights.BudgetAlert `json:"budget_alerts"`
	Comparison     MonthComparison        `json:"comparison"`
}

// MonthSummary is the month analytics totals block.
type MonthSummary struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	Savings          float64 `json:"savings"`
	SavingsRate      float64 `json:"savings_rate"`
	TransactionCount int64   `json:"transaction_count"`
}

// MonthCharts holds the month analytics chart payloads.
type MonthCharts struct {
	ExpenseByCategory []ChartSlice       `json:"expense_by_category"`
	IncomeVsExpense   []IncomeVsExpense  `json:"income_vs_expense"`
	DailySpending     []DailySpendPoint  `json:"daily_spending"`
}

// IncomeVsExpense is one month of the six-month bar chart.
type IncomeVsExpense struct {
	Month   string  `json:"month"`
	Year    int     `json:"year"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// DailySpendPoint is one day of the month's spending line chart.
type DailySpendPoint struct {
	Day        int     `json:"day"`
	Expense    float64 `json:"expense"`
	Cumulative float64 `json:"cumulative"`
}

// MonthComparison compares the selected month to the previous one.
type MonthComparison struct {
	PrevMonthExpenses float64 `json:"prev_month_expenses"`
	PrevMonthIncome   float64 `json:"prev_month_income"`
	ExpenseChange     float64 `json:"expense_change"`
	IncomeChange      float64 `json:"income_change"`
}

// RangeAnalytics is the analytics payload for an arbitrary date range.
type RangeAnalytics struct {
	Currency       string             `json:"currency"`
	CurrencySymbol string             `json:"currency_symbol"`
	Range          RangeMeta          `json:"range"`
	Summary        RangeSummary       `json:"summary"`
	Charts         RangeCharts        `json:"charts"`
	Insights       []insights.Insight `json:"insights"`
	Comparison     RangeComparison    `json:"comparison"`
}

// RangeMeta describes the resolved window.
type RangeMeta struct {
	Type      string `json:"type"`
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

// RangeSummary is the range analytics totals block.
type RangeSummary struct {
	TotalIncome       float64 `json:"total_income"`
	TotalExpenses     float64 `json:"total_expenses"`
	NetSavings        float64 `json:"net_savings"`
	SavingsRate       float64 `json:"savings_rate"`
	TransactionCount  int64   `json:"transaction_count"`
	IncomeCount       int64   `json:"income_count"`
	ExpenseCount      int64   `json:"expense_count"`
	AvgDailyExpense   float64 `json:"avg_daily_expense"`
	AvgDailyIncome    float64 `json:"avg_daily_income"`
	AvgMonthlyExpense float64 `json:"avg_monthly_expense"`
	AvgMonthlyIncome  float64 `json:"avg_monthly_income"`
}

// RangeCharts holds the range analytics chart payloads.
type RangeCharts struct {
	ExpenseByCategory []CategorySlice   `json:"expense_by_category"`
	IncomeByCategory  []CategorySlice   `json:"income_by_category"`
	Trend             []TrendPoint      `json:"trend"`
	Cumulative        []CumulativePoint `json:"cumulative"`
}

// RangeComparison compares the range to the immediately-preceding window of
// identical length.
type RangeComparison struct {
	PrevPeriod          PrevPeriod `json:"prev_period"`
	ExpenseChangePct    float64    `json:"expense_change_pct"`
	IncomeChangePct     float64    `json:"income_change_pct"`
	ExpenseChangeAmount float64    `json:"expense_change_amount"`
	IncomeChangeAmount  float64    `json:"income_change_amount"`
}

// PrevPeriod is the preceding window's dates and totals.
type PrevPeriod struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
}
