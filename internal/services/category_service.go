package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "wealthwise/internal/errors"
	"wealthwise/internal/models"
)

// categoryService handles category business logic. Users see the shared
// system defaults plus their own categories; only their own are mutable.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// defaultCategories are the shared seed set every account starts with.
var defaultCategories = []models.Category{
	{Name: "Food & Dining", Type: models.CategoryTypeExpense, Icon: "FiCoffee", Color: "#ef4444", IsDefault: true},
	{Name: "Transportation", Type: models.CategoryTypeExpense, Icon: "FiTruck", Color: "#f97316", IsDefault: true},
	{Name: "Shopping", Type: models.CategoryTypeExpense, Icon: "FiShoppingBag", Color: "#eab308", IsDefault: true},
	{Name: "Entertainment", Type: models.CategoryTypeExpense, Icon: "FiFilm", Color: "#8b5cf6", IsDefault: true},
	{Name: "Bills & Utilities", Type: models.CategoryTypeExpense, Icon: "FiFileText", Color: "#06b6d4", IsDefault: true},
	{Name: "Healthcare", Type: models.CategoryTypeExpense, Icon: "FiHeart", Color: "#ec4899", IsDefault: true},
	{Name: "Education", Type: models.CategoryTypeExpense, Icon: "FiBook", Color: "#3b82f6", IsDefault: true},
	{Name: "Travel", Type: models.CategoryTypeExpense, Icon: "FiMap", Color: "#14b8a6", IsDefault: true},
	{Name: "Groceries", Type: models.CategoryTypeExpense, Icon: "FiShoppingCart", Color: "#84cc16", IsDefault: true},
	{Name: "Rent", Type: models.CategoryTypeExpense, Icon: "FiHome", Color: "#6366f1", IsDefault: true},
	{Name: "Insurance", Type: models.CategoryTypeExpense, Icon: "FiShield", Color: "#64748b", IsDefault: true},
	{Name: "Personal Care", Type: models.CategoryTypeExpense, Icon: "FiUser", Color: "#f472b6", IsDefault: true},
	{Name: "Subscriptions", Type: models.CategoryTypeExpense, Icon: "FiRepeat", Color: "#a855f7", IsDefault: true},
	{Name: "Other Expenses", Type: models.CategoryTypeExpense, Icon: "FiMoreHorizontal", Color: "#9ca3af", IsDefault: true},
	{Name: "Salary", Type: models.CategoryTypeIncome, Icon: "FiDollarSign", Color: "#10b981", IsDefault: true},
	{Name: "Freelance", Type: models.CategoryTypeIncome, Icon: "FiBriefcase", Color: "#22c55e", IsDefault: true},
	{Name: "Investments", Type: models.CategoryTypeIncome, Icon: "FiTrendingUp", Color: "#059669", IsDefault: true},
	{Name: "Gifts", Type: models.CategoryTypeIncome, Icon: "FiGift", Color: "#34d399", IsDefault: true},
	{Name: "Other Income", Type: models.CategoryTypeIncome, Icon: "FiPlusCircle", Color: "#6ee7b7", IsDefault: true},
}

// SeedDefaults inserts the shared default categories once. Safe to call on
// every startup.
func (s *categoryService) SeedDefaults() error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("is_default = ?", true).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}

	seed := make([]models.Category, len(defaultCategories))
	copy(seed, defaultCategories)
	if err := s.db.Create(&seed).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CreateCategory creates a user-owned category.
func (s *categoryService) CreateCategory(userID uint, name string, categoryType models.CategoryType, icon, color string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category := &models.Category{
		UserID: &userID,
		Name:   name,
		Type:   categoryType,
		Icon:   icon,
		Color:  color,
	}
	if category.Icon == "" {
		category.Icon = "FiTag"
	}
	if category.Color == "" {
		category.Color = "#6366f1"
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategories lists the defaults plus the user's own categories,
// optionally filtered by kind.
func (s *categoryService) GetCategories(userID uint, categoryType *models.CategoryType) ([]models.Category, error) {
	query := s.db.Where("is_default = ? OR user_id = ?", true, userID)
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}

	var categories []models.Category
	if err := query.Order("is_default DESC, name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category visible to the user (a default or
// one of their own).
func (s *categoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("id = ? AND (is_default = ? OR user_id = ?)", categoryID, true, userID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates a user-owned category. Defaults are immutable.
func (s *categoryService) UpdateCategory(userID, categoryID uint, name, icon, color string) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if icon != "" {
		updates["icon"] = icon
	}
	if color != "" {
		updates["color"] = color
	}
	if len(updates) > 0 {
		if err := s.db.Model(&category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &category, nil
}

// DeleteCategory removes a user-owned category. Transactions referencing it
// keep their rows and fall back to uncategorized.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", categoryID, userID).Delete(&models.Category{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
