package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xforum/backend/internal/models"
	"github.com/xforum/backend/internal/repositories"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryRepository repositories.CategoryRepository
	userRepository     repositories.UserRepository
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryRepo repositories.CategoryRepository, userRepo repositories.UserRepository) *CategoryHandler {
	return &CategoryHandler{
		categoryRepository: categoryRepo,
		userRepository:     userRepo,
	}
}

// RegisterCategoryRoutes registers authenticated category routes
func (h *CategoryHandler) RegisterCategoryRoutes(g *echo.Group) {
	g.POST("/categories", h.CreateCategory)
}

// RegisterPublicCategoryRoutes registers public category routes
func (h *CategoryHandler) RegisterPublicCategoryRoutes(g *echo.Group) {
	g.GET("/categories", h.GetCategories)
}

// GetCategories lists all categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryRepository.GetCategories()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

// CreateCategory creates a new category (admins only)
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return httpError(err)
	}
	if !user.IsAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	}

	var req models.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	category := &models.Category{Name: req.Name}
	if err := h.categoryRepository.CreateCategory(category); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, category)
}
