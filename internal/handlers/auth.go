package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/xforum/backend/internal/models"
	"github.com/xforum/backend/internal/repositories"
	"github.com/xforum/backend/pkg/mailer"
	"golang.org/x/crypto/bcrypt"
)

// Token lifetimes for signed action links
const (
	confirmTokenTTL = 30 * time.Minute
	resetTokenTTL   = 10 * time.Minute
	sessionTokenTTL = 72 * time.Hour
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	mailer         mailer.Mailer
	jwtSecret      string
	baseURL        string
}

// actionClaims carry a single-purpose token (email confirmation, password reset)
type actionClaims struct {
	UserID uint   `json:"user_id"`
	Action string `json:"action"`
	jwt.RegisteredClaims
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, m mailer.Mailer, jwtSecret, baseURL string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		mailer:         m,
		jwtSecret:      jwtSecret,
		baseURL:        baseURL,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.GET("/confirm/:token", h.ConfirmEmail)
	g.POST("/signin", h.SignIn)
	g.POST("/reset-password", h.RequestPasswordReset)
	g.POST("/reset-password/:token", h.ResetPassword)
}

// Register handles user registration and sends a confirmation email
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Username already taken")
	}
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.sendConfirmationEmail(c, user)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "A confirmation email has been sent! Please check your inbox.",
	})
}

// ConfirmEmail confirms a user's email address from a signed token
func (h *AuthHandler) ConfirmEmail(c echo.Context) error {
	userID, err := h.verifyActionToken(c.Param("token"), "confirm")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "The confirmation link is invalid or has expired")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return httpError(err)
	}

	if user.Confirmed {
		return c.JSON(http.StatusOK, echo.Map{"message": "Your account is already confirmed. Please log in."})
	}

	user.Confirmed = true
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Your email has been confirmed! You can now log in."})
}

// SignIn handles user authentication with username and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	if !user.Confirmed {
		// Unconfirmed accounts get a fresh confirmation link instead of a session
		h.sendConfirmationEmail(c, user)
		return echo.NewHTTPError(http.StatusForbidden, "Please confirm your email first! A new confirmation link has been sent.")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// RequestPasswordReset emails a password reset link. The response is the
// same whether or not the email is registered.
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req models.RequestPasswordResetRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	if user, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		token, err := h.generateActionToken(user.ID, "reset", resetTokenTTL)
		if err == nil {
			body := fmt.Sprintf("To reset your password, visit the following link:\n%s/reset-password/%s\n"+
				"If you did not make this request then simply ignore this email and no changes will be made.",
				h.baseURL, token)
			if err := h.mailer.Send(c.Request().Context(), user.Email, "Password Reset Request", body); err != nil {
				slog.Error("failed to send password reset email", "user_id", user.ID, "error", err)
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "An email has been sent with instructions to reset your password.",
	})
}

// ResetPassword sets a new password from a signed reset token
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, err := h.verifyActionToken(c.Param("token"), "reset")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "That is an invalid or expired token")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return httpError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}
	user.PasswordHash = string(hashedPassword)
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Your password has been updated! You are now able to log in."})
}

// ChangePassword changes the authenticated user's password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.ChangePasswordRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return httpError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid current password")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}
	user.PasswordHash = string(hashedPassword)
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Your password has been changed successfully!"})
}

func (h *AuthHandler) sendConfirmationEmail(c echo.Context, user *models.User) {
	token, err := h.generateActionToken(user.ID, "confirm", confirmTokenTTL)
	if err != nil {
		slog.Error("failed to generate confirmation token", "user_id", user.ID, "error", err)
		return
	}
	body := fmt.Sprintf("Please confirm your email by clicking the link: %s/confirm/%s", h.baseURL, token)
	if err := h.mailer.Send(c.Request().Context(), user.Email, "Confirm Your Email", body); err != nil {
		slog.Error("failed to send confirmation email", "user_id", user.ID, "error", err)
	}
}

// generateJWT generates a session JWT for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

// generateActionToken signs a short-lived single-purpose token
func (h *AuthHandler) generateActionToken(userID uint, action string, ttl time.Duration) (string, error) {
	claims := &actionClaims{
		UserID: userID,
		Action: action,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

// verifyActionToken checks a single-purpose token and returns the user ID it
// was issued for
func (h *AuthHandler) verifyActionToken(tokenString, action string) (uint, error) {
	claims := &actionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}
	if claims.Action != action || claims.UserID == 0 {
		return 0, errors.New("invalid token")
	}
	return claims.UserID, nil
}
