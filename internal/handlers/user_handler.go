package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xforum/backend/internal/models"
	"github.com/xforum/backend/internal/repositories"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository  repositories.UserRepository
	scoreRepository repositories.ScoreRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, scoreRepo repositories.ScoreRepository) *UserHandler {
	return &UserHandler{
		userRepository:  userRepo,
		scoreRepository: scoreRepo,
	}
}

// RegisterProfileRoutes registers authenticated profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.PUT("/profile", h.UpdateProfile)
}

// RegisterPublicUserRoutes registers public user routes
func (h *UserHandler) RegisterPublicUserRoutes(g *echo.Group) {
	g.GET("/users/:username", h.GetUserProfile)
}

// ProfileView is the public shape of a user with derived reputation
type ProfileView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Bio       string `json:"bio,omitempty"`
	Points    int64  `json:"points"`
	PostCount int64  `json:"post_count"`
}

func (h *UserHandler) toProfileView(user *models.User) (ProfileView, error) {
	points, err := h.scoreRepository.TotalPoints(user.ID)
	if err != nil {
		return ProfileView{}, err
	}
	postCount, err := h.scoreRepository.PostCount(user.ID)
	if err != nil {
		return ProfileView{}, err
	}
	return ProfileView{
		ID:        user.ID,
		Username:  user.Username,
		Bio:       user.Bio,
		Points:    points,
		PostCount: postCount,
	}, nil
}

// GetUserProfile returns a user's public profile with their points
func (h *UserHandler) GetUserProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return httpError(err)
	}

	view, err := h.toProfileView(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// GetOwnProfile returns the authenticated user's profile
func (h *UserHandler) GetOwnProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return httpError(err)
	}

	view, err := h.toProfileView(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateProfile edits the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
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

	if req.Username != "" && req.Username != user.Username {
		if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
			return echo.NewHTTPError(http.StatusConflict, "Username already taken")
		}
		user.Username = req.Username
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}
