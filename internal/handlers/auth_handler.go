package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"google.golang.org/api/idtoken"

	"wealthwise/internal/config"
	apperrors "wealthwise/internal/errors"
	"wealthwise/internal/middleware"
	"wealthwise/internal/models"
	"wealthwise/internal/services"
)

// googleVerifier validates a Google ID token and returns its claims.
// Swappable in tests.
type googleVerifier func(ctx context.Context, token string) (map[string]interface{}, error)

// AuthHandler handles authentication and profile requests.
type AuthHandler struct {
	userService  services.UserServicer
	verifyGoogle googleVerifier
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		verifyGoogle: func(ctx context.Context, token string) (map[string]interface{}, error) {
			payload, err := idtoken.Validate(ctx, token, config.Get().GoogleClientID)
			if err != nil {
				return nil, err
			}
			return payload.Claims, nil
		},
	}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Username  string `json:"username" binding:"omitempty,min=3,max=100"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleAuthRequest carries the Google ID token credential.
type GoogleAuthRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// RefreshRequest carries the refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthResponse represents the authentication response with tokens
type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

func userJSON(user *models.User) gin.H {
	out := gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"username":      user.Username,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"avatar":        user.Avatar,
		"phone_number":  user.PhoneNumber,
		"auth_provider": user.AuthProvider,
		"is_verified":   user.IsVerified,
	}
	if user.Profile != nil {
		out["profile"] = gin.H{
			"currency":            user.Profile.Currency,
			"monthly_income":      user.Profile.MonthlyIncome.InexactFloat64(),
			"monthly_budget":      user.Profile.MonthlyBudget.InexactFloat64(),
			"savings_goal":        user.Profile.SavingsGoal.InexactFloat64(),
			"email_notifications": user.Profile.EmailNotifications,
			"budget_alerts":       user.Profile.BudgetAlerts,
			"weekly_summary":      user.Profile.WeeklySummary,
			"monthly_report":      user.Profile.MonthlyReport,
		}
	}
	return out
}

func (h *AuthHandler) respondWithTokens(c *gin.Context, status int, user *models.User) {
	access, err := middleware.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	refresh, err := middleware.GenerateRefreshToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(status, gin.H{
		"token":         access,
		"refresh_token": refresh,
		"user":          userJSON(user),
	})
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with email and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and tokens generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Email, req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithTokens(c, http.StatusCreated, user)
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and get tokens
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and tokens generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.AttemptLogin(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithTokens(c, http.StatusOK, user)
}

// GoogleAuth handles sign-in with a Google ID token
// @Summary     Google sign-in
// @Description Authenticate with a verified Google ID token, creating the account on first sign-in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body GoogleAuthRequest true "Google ID token"
// @Success     200 {object} AuthResponse "User authenticated and tokens generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid Google token"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/google [post]
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	claims, err := h.verifyGoogle(c.Request.Context(), req.Credential)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidGoogleToken)
		return
	}

	email, _ := claims["email"].(string)
	if email == "" {
		respondWithError(c, apperrors.ErrInvalidGoogleToken)
		return
	}
	firstName, _ := claims["given_name"].(string)
	lastName, _ := claims["family_name"].(string)
	avatar, _ := claims["picture"].(string)

	user, err := h.userService.GetOrCreateGoogleUser(email, firstName, lastName, avatar)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithTokens(c, http.StatusOK, user)
}

// Refresh exchanges a refresh token for a fresh token pair
// @Summary     Refresh tokens
// @Description Exchange a valid refresh token for a new access and refresh token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} AuthResponse "New tokens generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid refresh token"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	claims, err := middleware.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}
	if !user.IsActive {
		respondWithError(c, apperrors.ErrAccountDisabled)
		return
	}

	h.respondWithTokens(c, http.StatusOK, user)
}

// GetProfile returns the authenticated user with their profile
// @Summary     Get profile
// @Description Get the authenticated user's account and preferences
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

// UpdateProfileRequest represents the profile update payload. Omitted
// fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20"`
	Avatar      *string `json:"avatar" binding:"omitempty,max=500"`

	Currency           *string  `json:"currency" binding:"omitempty,iso4217"`
	MonthlyIncome      *float64 `json:"monthly_income" binding:"omitempty,gte=0"`
	MonthlyBudget      *float64 `json:"monthly_budget" binding:"omitempty,gte=0"`
	SavingsGoal        *float64 `json:"savings_goal" binding:"omitempty,gte=0"`
	EmailNotifications *bool    `json:"email_notifications"`
	BudgetAlerts       *bool    `json:"budget_alerts"`
	WeeklySummary      *bool    `json:"weekly_summary"`
	MonthlyReport      *bool    `json:"monthly_report"`
}

// UpdateProfile updates the authenticated user's account and preferences
// @Summary     Update profile
// @Description Update account fields and preferences; omitted fields are unchanged
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile fields"
// @Success     200 {object} UserResponse "Updated user profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.UpdateProfileRequest{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		PhoneNumber:        req.PhoneNumber,
		Avatar:             req.Avatar,
		Currency:           req.Currency,
		EmailNotifications: req.EmailNotifications,
		BudgetAlerts:       req.BudgetAlerts,
		WeeklySummary:      req.WeeklySummary,
		MonthlyReport:      req.MonthlyReport,
	}
	if req.MonthlyIncome != nil {
		v := decimal.NewFromFloat(*req.MonthlyIncome)
		update.MonthlyIncome = &v
	}
	if req.MonthlyBudget != nil {
		v := decimal.NewFromFloat(*req.MonthlyBudget)
		update.MonthlyBudget = &v
	}
	if req.SavingsGoal != nil {
		v := decimal.NewFromFloat(*req.SavingsGoal)
		update.SavingsGoal = &v
	}

	user, err := h.userService.UpdateProfile(userID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

// ChangePasswordRequest represents the change-password payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// ChangePassword changes the authenticated user's password
// @Summary     Change password
// @Description Verify the current password and replace it
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChangePasswordRequest true "Old and new password"
// @Success     200 {object} map[string]string "Password changed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Wrong password"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.userService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ForgotPasswordRequest carries the email to send a reset link to.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword requests a password reset email
// @Summary     Forgot password
// @Description Send a reset link if the email belongs to an active account; always responds 200
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body ForgotPasswordRequest true "Account email"
// @Success     200 {object} map[string]string "Reset link sent if the account exists"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	h.userService.ForgotPassword(req.Email)

	c.JSON(http.StatusOK, gin.H{"message": "If an account exists with this email, a reset link has been sent"})
}

// ValidateResetToken checks whether a reset token is still usable
// @Summary     Validate reset token
// @Description Check a password reset token and return the masked account email
// @Tags        auth
// @Produce     json
// @Param       token query string true "Reset token"
// @Success     200 {object} map[string]interface{} "Token is valid"
// @Failure     400 {object} ErrorResponse "Invalid or expired token"
// @Router      /auth/validate-reset-token [get]
func (h *AuthHandler) ValidateResetToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "token is required"))
		return
	}

	user, err := h.userService.ValidateResetToken(token)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "email": user.Email})
}

// ResetPasswordRequest carries the reset token and the new password.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// ResetPassword consumes a reset token and sets a new password
// @Summary     Reset password
// @Description Set a new password using a single-use reset token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body ResetPasswordRequest true "Token and new password"
// @Success     200 {object} map[string]string "Password reset"
// @Failure     400 {object} ErrorResponse "Invalid or expired token"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.userService.ResetPassword(req.Token, req.NewPassword); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}
