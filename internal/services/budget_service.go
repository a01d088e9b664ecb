package services

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "wealthwise/internal/errors"
	"wealthwise/internal/ledger"
	"wealthwise/internal/models"
	"wealthwise/internal/period"
)

// budgetService handles budget CRUD and monthly evaluation.
type budgetService struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db, ledger: ledger.New(db)}
}

// CreateBudget creates a budget for one exact month. Overall budgets carry
// no category; category budgets require one.
func (s *budgetService) CreateBudget(userID uint, categoryID *uint, amount decimal.Decimal, month, year int, isOverall bool, alertThreshold int) (*models.Budget, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount must be positive")
	}
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if year < period.MinYear || year > period.MaxYear {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year is out of range")
	}
	if isOverall {
		categoryID = nil
	} else if categoryID == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required for a category budget")
	}
	if alertThreshold <= 0 || alertThreshold > 100 {
		alertThreshold = 80
	}

	if categoryID != nil {
		var count int64
		s.db.Model(&models.Category{}).
			Where("id = ? AND (is_default = ? OR user_id = ?)", *categoryID, true, userID).
			Count(&count)
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
	}

	budget := &models.Budget{
		UserID:         userID,
		CategoryID:     categoryID,
		Amount:         amount,
		Month:          month,
		Year:           year,
		IsOverall:      isOverall,
		AlertThreshold: alertThreshold,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.db.Preload("Category").First(budget, budget.ID)
	return budget, nil
}

// GetBudgets lists the user's budgets, optionally for one month/year.
func (s *budgetService) GetBudgets(userID uint, month, year *int) ([]models.Budget, error) {
	query := s.db.Where("user_id = ?", userID)
	if month != nil {
		query = query.Where("month = ?", *month)
	}
	if year != nil {
		query = query.Where("year = ?", *year)
	}

	var budgets []models.Budget
	err := query.Preload("Category").
		Order("is_overall DESC, created_at ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID retrieves one of the user's budgets.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", budgetID, userID).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget changes a budget's amount and/or alert threshold.
func (s *budgetService) UpdateBudget(userID, budgetID uint, amount *decimal.Decimal, alertThreshold *int) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if amount != nil {
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount must be positive")
		}
		updates["amount"] = *amount
	}
	if alertThreshold != nil {
		if *alertThreshold <= 0 || *alertThreshold > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "alert threshold must be between 1 and 100")
		}
		updates["alert_threshold"] = *alertThreshold
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return budget, nil
}

// DeleteBudget removes one of the user's budgets.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", budgetID, userID).Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// Evaluate classifies one budget against the amount spent. Percentage is
// zero when the budget amount is not positive; remaining goes negative once
// the budget is exceeded. Both threshold comparisons are inclusive.
func Evaluate(budget models.Budget, spent decimal.Decimal) BudgetStatus {
	percentage := decimal.Zero
	if budget.Amount.GreaterThan(decimal.Zero) {
		percentage = spent.Div(budget.Amount).Mul(decimal.NewFromInt(100))
	}

	status := BudgetStatusNormal
	threshold := decimal.NewFromInt(int64(budget.AlertThreshold))
	switch {
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(100)):
		status = BudgetStatusExceeded
	case percentage.GreaterThanOrEqual(threshold):
		status = BudgetStatusWarning
	}

	return BudgetStatus{
		Budget:     budget,
		Spent:      spent,
		Percentage: percentage,
		Remaining:  budget.Amount.Sub(spent),
		Status:     status,
	}
}

// EvaluateMonth computes the overall budget status and per-category
// statuses for one exact month. The first overall budget wins when
// duplicates exist; category budgets referencing a deleted category are
// skipped. Category statuses come back sorted descending by percentage.
func (s *budgetService) EvaluateMonth(owner OwnerContext, month period.Month) (*BudgetStatus, []BudgetStatus, bool, error) {
	m, y := month.Month, month.Year
	budgets, err := s.GetBudgets(owner.UserID, &m, &y)
	if err != nil {
		return nil, nil, false, err
	}

	window := month.Window

	var overall *BudgetStatus
	var categories []BudgetStatus
	for _, budget := range budgets {
		if budget.IsOverall {
			if overall != nil {
				continue
			}
			spent, err := s.ledger.Sum(owner.UserID, models.TransactionTypeExpense, &window)
			if err != nil {
				return nil, nil, false, err
			}
			status := Evaluate(budget, spent)
			overall = &status
			continue
		}

		if budget.CategoryID == nil || budget.Category == nil {
			continue
		}
		spent, err := s.ledger.SumForCategory(owner.UserID, *budget.CategoryID, models.TransactionTypeExpense, &window)
		if err != nil {
			return nil, nil, false, err
		}
		categories = append(categories, Evaluate(budget, spent))
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Percentage.GreaterThan(categories[j].Percentage)
	})

	// hasBudget reflects row existence, not evaluability: an orphaned
	// category budget still counts.
	return overall, categories, len(budgets) > 0, nil
}

// statusView converts an evaluated status to its serialization form.
func statusView(s BudgetStatus) BudgetStatusView {
	view := BudgetStatusView{
		ID:             s.Budget.ID,
		CategoryID:     s.Budget.CategoryID,
		Amount:         s.Budget.Amount.InexactFloat64(),
		Spent:          s.Spent.InexactFloat64(),
		Remaining:      s.Remaining.InexactFloat64(),
		Percentage:     s.Percentage.Round(1).InexactFloat64(),
		Status:         s.Status,
		AlertThreshold: s.Budget.AlertThreshold,
	}
	if s.Budget.Category != nil {
		view.CategoryName = s.Budget.Category.Name
		view.CategoryColor = s.Budget.Category.Color
	}
	return view
}

// Overview assembles the full budget overview payload for one month.
func (s *budgetService) Overview(owner OwnerContext, month period.Month) (*BudgetOverview, error) {
	overall, categories, hasBudget, err := s.EvaluateMonth(owner, month)
	if err != nil {
		return nil, err
	}

	window := month.Window
	totalExpenses, err := s.ledger.Sum(owner.UserID, models.TransactionTypeExpense, &window)
	if err != nil {
		return nil, err
	}
	totalIncome, err := s.ledger.Sum(owner.UserID, models.TransactionTypeIncome, &window)
	if err != nil {
		return nil, err
	}

	overview := &BudgetOverview{
		Currency:        owner.Currency,
		Month:           month.Month,
		Year:            month.Year,
		MonthName:       month.Name(),
		IsCurrentMonth:  month.IsCurrent,
		HasBudget:       hasBudget,
		CategoryBudgets: []BudgetStatusView{},
		TotalExpenses:   totalExpenses.InexactFloat64(),
		TotalIncome:     totalIncome.InexactFloat64(),
	}

	count := func(status BudgetStatusKind) {
		switch status {
		case BudgetStatusExceeded:
			overview.ExceededCount++
		case BudgetStatusWarning:
			overview.WarningCount++
		}
	}

	if overall != nil {
		view := statusView(*overall)
		overview.Overall = &view
		count(overall.Status)
	}
	for _, status := range categories {
		overview.CategoryBudgets = append(overview.CategoryBudgets, statusView(status))
		count(status.Status)
	}

	return overview, nil
}
