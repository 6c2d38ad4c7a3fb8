package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/xforum/backend/internal/models"
	"github.com/xforum/backend/internal/repositories"
)

// LeaderboardHandler serves derived reputation data and forum stats
type LeaderboardHandler struct {
	scoreRepository    repositories.ScoreRepository
	postRepository     repositories.PostRepository
	categoryRepository repositories.CategoryRepository
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(scoreRepo repositories.ScoreRepository, postRepo repositories.PostRepository, categoryRepo repositories.CategoryRepository) *LeaderboardHandler {
	return &LeaderboardHandler{
		scoreRepository:    scoreRepo,
		postRepository:     postRepo,
		categoryRepository: categoryRepo,
	}
}

// RegisterLeaderboardRoutes registers leaderboard and stats routes
func (h *LeaderboardHandler) RegisterLeaderboardRoutes(g *echo.Group) {
	g.GET("/leaderboard", h.GetLeaderboard)
	g.GET("/stats", h.GetStats)
}

// GetLeaderboard returns the top contributors by points
func (h *LeaderboardHandler) GetLeaderboard(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit > 50 {
		limit = 50
	}

	scores, err := h.scoreRepository.Leaderboard(limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"leaderboard": scores})
}

// CategoryStats is a category with its post count
type CategoryStats struct {
	models.Category
	PostCount int64 `json:"post_count"`
}

// GetStats returns forum-wide stats: total posts, categories with counts
// and the top contributors
func (h *LeaderboardHandler) GetStats(c echo.Context) error {
	totalPosts, err := h.postRepository.CountPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	categories, err := h.categoryRepository.GetCategories()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	categoryStats := make([]CategoryStats, 0, len(categories))
	for _, cat := range categories {
		count, err := h.postRepository.CountPostsByCategory(cat.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		categoryStats = append(categoryStats, CategoryStats{Category: cat, PostCount: count})
	}

	topContributors, err := h.scoreRepository.Leaderboard(repositories.DefaultLeaderboardSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_posts":      totalPosts,
		"categories":       categoryStats,
		"top_contributors": topContributors,
	})
}
