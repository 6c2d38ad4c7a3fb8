package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/xforum/backend/internal/repositories"
)

// VoteHandler handles HTTP requests related to post votes
type VoteHandler struct {
	voteRepository repositories.VoteRepository
	postRepository repositories.PostRepository
}

// NewVoteHandler creates a new VoteHandler
func NewVoteHandler(voteRepo repositories.VoteRepository, postRepo repositories.PostRepository) *VoteHandler {
	return &VoteHandler{
		voteRepository: voteRepo,
		postRepository: postRepo,
	}
}

// CastVote casts, switches or retracts the authenticated user's vote on a
// post and returns the outcome with updated counts
func (h *VoteHandler) CastVote(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	voteType := c.Param("vote_type")

	result, err := h.voteRepository.CastVote(currentUserID, uint(postID), voteType)
	if err != nil {
		return httpError(err)
	}

	likes, err := h.voteRepository.GetLikesCount(uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	dislikes, err := h.voteRepository.GetDislikesCount(uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":   "success",
		"result":   result,
		"likes":    likes,
		"dislikes": dislikes,
	})
}

// GetVoteCounts returns the derived like/dislike counts for a post
func (h *VoteHandler) GetVoteCounts(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(uint(postID)); err != nil {
		return httpError(err)
	}

	likes, err := h.voteRepository.GetLikesCount(uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	dislikes, err := h.voteRepository.GetDislikesCount(uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "likes": likes, "dislikes": dislikes})
}
