package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "wealthwise/internal/errors"
	"wealthwise/internal/logger"
	"wealthwise/internal/models"
	"wealthwise/internal/pagination"
	"wealthwise/internal/period"
)

// transactionService handles transaction business logic. Expense writes
// feed the budget alert check.
type transactionService struct {
	db     *gorm.DB
	users  UserServicer
	alerts AlertServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, users UserServicer, alerts AlertServicer) TransactionServicer {
	return &transactionService{db: db, users: users, alerts: alerts}
}

// CreateTransaction records a transaction and, for expenses, runs the
// budget alert check before returning. Alert failures are logged, never
// surfaced.
func (s *transactionService) CreateTransaction(userID uint, categoryID *uint, txType models.TransactionType, amount decimal.Decimal, description string, paymentMethod models.PaymentMethod, notes string, date time.Time) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
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

	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodOther
	}
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:        userID,
		CategoryID:    categoryID,
		Type:          txType,
		Amount:        amount,
		Description:   description,
		PaymentMethod: paymentMethod,
		Notes:         notes,
		Date:          period.Date(date),
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.db.Preload("Category").First(transaction, transaction.ID)

	if txType == models.TransactionTypeExpense {
		owner, err := s.users.ResolveOwner(userID)
		if err == nil {
			if err := s.alerts.CheckBudgetAlerts(owner); err != nil {
				logger.Get().Warnw("budget alert check failed", "user_id", userID, "error", err)
			}
		}
	}

	return transaction, nil
}

// GetTransactions lists the user's transactions, newest first, with
// optional type, category, and period filters.
func (s *transactionService) GetTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", period.Date(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", period.Date(*filter.EndDate))
	}
	if filter.Month != nil && filter.Year != nil {
		w := period.MonthWindow(*filter.Month, *filter.Year)
		query = query.Where("date >= ? AND date <= ?", w.Start, w.End)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	err := query.Preload("Category").
		Order("date DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(transactions, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetTransactionByID retrieves one of the user's transactions.
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies the provided fields to one of the user's
// transactions.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, req UpdateTransactionRequest) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CategoryID != nil {
		var count int64
		s.db.Model(&models.Category{}).
			Where("id = ? AND (is_default = ? OR user_id = ?)", *req.CategoryID, true, userID).
			Count(&count)
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *req.Amount
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PaymentMethod != nil {
		updates["payment_method"] = *req.PaymentMethod
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Date != nil {
		updates["date"] = period.Date(*req.Date)
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction removes one of the user's transactions.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
