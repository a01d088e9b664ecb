package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wealthwise/internal/config"
	"wealthwise/internal/currency"
	apperrors "wealthwise/internal/errors"
	"wealthwise/internal/logger"
	"wealthwise/internal/models"
	"wealthwise/internal/uuid"
)

const resetTokenTTL = time.Hour

// userService handles user, profile, and password-reset business logic.
type userService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, notifier Notifier) UserServicer {
	return &userService{db: db, notifier: notifier}
}

// CreateUser registers a new email/password user together with an empty
// profile carrying the preference defaults.
func (s *userService) CreateUser(email, username, password, firstName, lastName string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}
	email = strings.ToLower(email)
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	var count int64
	s.db.Model(&models.User{}).Where("email = ? OR username = ?", email, username).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		Password:     string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
		AuthProvider: models.AuthProviderEmail,
		IsActive:     true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		profile := &models.UserProfile{UserID: user.ID}
		if err := tx.Create(profile).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// AttemptLogin verifies credentials and returns the user on success.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Profile").Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &user, nil
}

// GetOrCreateGoogleUser looks up a user by the verified Google email,
// creating one (with profile) on first sign-in. An existing email/password
// account is linked rather than duplicated.
func (s *userService) GetOrCreateGoogleUser(email, firstName, lastName, avatar string) (*models.User, error) {
	email = strings.ToLower(email)

	var user models.User
	err := s.db.Preload("Profile").Where("email = ?", email).First(&user).Error
	if err == nil {
		if !user.IsActive {
			return nil, apperrors.ErrAccountDisabled
		}
		updates := map[string]interface{}{"is_verified": true}
		if user.Avatar == "" && avatar != "" {
			updates["avatar"] = avatar
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	created := &models.User{
		Email:        email,
		Username:     strings.SplitN(email, "@", 2)[0],
		FirstName:    firstName,
		LastName:     lastName,
		Avatar:       avatar,
		AuthProvider: models.AuthProviderGoogle,
		IsActive:     true,
		IsVerified:   true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(created).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		profile := &models.UserProfile{UserID: created.ID}
		if err := tx.Create(profile).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		created.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetUserByID retrieves a user with their profile.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Profile").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// ResolveOwner builds the OwnerContext for a user. A missing or partial
// profile falls back to INR and alerts enabled instead of failing.
func (s *userService) ResolveOwner(userID uint) (OwnerContext, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return OwnerContext{}, err
	}

	owner := OwnerContext{
		UserID:             user.ID,
		Email:              user.Email,
		Name:               user.ShortName(),
		Currency:           currency.DefaultCode,
		EmailNotifications: true,
		BudgetAlerts:       true,
	}
	if user.Profile != nil {
		if user.Profile.Currency != "" {
			owner.Currency = user.Profile.Currency
		}
		owner.EmailNotifications = user.Profile.EmailNotifications
		owner.BudgetAlerts = user.Profile.BudgetAlerts
	}
	owner.Symbol = currency.Symbol(owner.Currency)
	return owner, nil
}

// UpdateProfile applies the provided user and profile fields, creating the
// profile row if it does not exist yet.
func (s *userService) UpdateProfile(userID uint, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	userUpdates := map[string]interface{}{}
	if req.FirstName != nil {
		userUpdates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		userUpdates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		userUpdates["phone_number"] = *req.PhoneNumber
	}
	if req.Avatar != nil {
		userUpdates["avatar"] = *req.Avatar
	}

	profileUpdates := map[string]interface{}{}
	if req.Currency != nil {
		profileUpdates["currency"] = strings.ToUpper(*req.Currency)
	}
	if req.MonthlyIncome != nil {
		profileUpdates["monthly_income"] = *req.MonthlyIncome
	}
	if req.MonthlyBudget != nil {
		profileUpdates["monthly_budget"] = *req.MonthlyBudget
	}
	if req.SavingsGoal != nil {
		profileUpdates["savings_goal"] = *req.SavingsGoal
	}
	if req.EmailNotifications != nil {
		profileUpdates["email_notifications"] = *req.EmailNotifications
	}
	if req.BudgetAlerts != nil {
		profileUpdates["budget_alerts"] = *req.BudgetAlerts
	}
	if req.WeeklySummary != nil {
		profileUpdates["weekly_summary"] = *req.WeeklySummary
	}
	if req.MonthlyReport != nil {
		profileUpdates["monthly_report"] = *req.MonthlyReport
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(userUpdates) > 0 {
			if err := tx.Model(user).Updates(userUpdates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if len(profileUpdates) > 0 {
			if user.Profile == nil {
				user.Profile = &models.UserProfile{UserID: user.ID}
				if err := tx.Create(user.Profile).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
			if err := tx.Model(user.Profile).Updates(profileUpdates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetUserByID(userID)
}

// ChangePassword verifies the current password and replaces it. Google
// accounts without a local password cannot change one here.
func (s *userService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user.Password == "" {
		return apperrors.ErrPasswordManaged
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperrors.ErrInvalidCredentials
	}
	return s.SetPassword(userID, newPassword)
}

// SetPassword hashes and stores a new password without checking the old one.
func (s *userService) SetPassword(userID uint, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Update("password", string(hashed)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ForgotPassword issues a single-use reset token and emails the reset link.
// It is deliberately silent about unknown emails.
func (s *userService) ForgotPassword(email string) {
	var user models.User
	err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(email), true).First(&user).Error
	if err != nil {
		return
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.db.Create(token).Error; err != nil {
		logger.Get().Errorw("failed to create reset token", "error", err)
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", config.Get().FrontendURL, token.Token)
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password.\n\nClick the link below to choose a new one. The link expires in 1 hour.\n\n%s\n\nIf you did not request this, you can safely ignore this email.",
		user.ShortName(), resetURL,
	)
	s.notifier.Send(user.Email, "Reset your password", body)
}

// ValidateResetToken returns the token's user when it is unused and not
// expired.
func (s *userService) ValidateResetToken(token string) (*models.User, error) {
	var reset models.PasswordResetToken
	err := s.db.Preload("User").Where("token = ?", token).First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidResetToken
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !reset.IsValid() {
		return nil, apperrors.ErrInvalidResetToken
	}
	return &reset.User, nil
}

// ResetPassword consumes a valid token and sets the new password.
func (s *userService) ResetPassword(token, newPassword string) error {
	var reset models.PasswordResetToken
	err := s.db.Where("token = ?", token).First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !reset.IsValid() {
		return apperrors.ErrInvalidResetToken
	}

	if err := s.SetPassword(reset.UserID, newPassword); err != nil {
		return err
	}
	if err := s.db.Model(&reset).Update("is_used", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
