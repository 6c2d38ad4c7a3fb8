package repositories

import (
	"sort"

	"github.com/xforum/backend/internal/models"
	"gorm.io/gorm"
)

// Point weights of the reputation system
const (
	PointsPerPost = 2
	PointsPerLike = 1
)

// DefaultLeaderboardSize is the number of top contributors returned when no
// explicit limit is given.
const DefaultLeaderboardSize = 5

// UserScore pairs a user with their derived contribution stats
type UserScore struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Points    int64  `json:"points"`
	PostCount int64  `json:"post_count"`
}

// ScoreRepository defines the read-only interface for derived reputation
// scores. Nothing here is stored; every call recomputes from posts and votes.
type ScoreRepository interface {
	TotalPoints(userID uint) (int64, error)
	PostCount(userID uint) (int64, error)
	Leaderboard(limit int) ([]UserScore, error)
}

// PostgresScoreRepository implements ScoreRepository for PostgreSQL
type PostgresScoreRepository struct {
	db *gorm.DB
}

// NewPostgresScoreRepository creates a new PostgresScoreRepository
func NewPostgresScoreRepository(db *gorm.DB) *PostgresScoreRepository {
	return &PostgresScoreRepository{db: db}
}

// TotalPoints computes a user's points: two per authored post plus one per
// like received across their posts. Dislikes never subtract.
func (r *PostgresScoreRepository) TotalPoints(userID uint) (int64, error) {
	posts, likes, err := r.rawCounts(userID)
	if err != nil {
		return 0, err
	}
	return PointsPerPost*posts + PointsPerLike*likes, nil
}

// PostCount retrieves the number of posts authored by the user
func (r *PostgresScoreRepository) PostCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresScoreRepository) rawCounts(userID uint) (posts, likes int64, err error) {
	if posts, err = r.PostCount(userID); err != nil {
		return 0, 0, err
	}
	err = r.db.Model(&models.Vote{}).
		Joins("JOIN posts ON posts.id = votes.post_id").
		Where("posts.author_id = ? AND votes.vote_type = ?", userID, models.VoteTypeLike).
		Count(&likes).Error
	if err != nil {
		return 0, 0, err
	}
	return posts, likes, nil
}

// Leaderboard ranks all users by points descending and returns the top
// limit entries. Ties break by ascending user ID so the ordering is
// deterministic.
func (r *PostgresScoreRepository) Leaderboard(limit int) ([]UserScore, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}

	scores := make([]UserScore, 0, len(users))
	for _, u := range users {
		posts, likes, err := r.rawCounts(u.ID)
		if err != nil {
			return nil, err
		}
		scores = append(scores, UserScore{
			UserID:    u.ID,
			Username:  u.Username,
			Points:    PointsPerPost*posts + PointsPerLike*likes,
			PostCount: posts,
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Points != scores[j].Points {
			return scores[i].Points > scores[j].Points
		}
		return scores[i].UserID < scores[j].UserID
	})

	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}
