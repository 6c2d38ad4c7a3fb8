package repositories

import (
	"errors"

	"github.com/xforum/backend/internal/models"
	"github.com/xforum/backend/internal/notifications"
	"gorm.io/gorm"
)

// VoteResult describes the outcome of casting a vote
type VoteResult string

// Cast-vote outcomes
const (
	VoteApplied   VoteResult = "applied"
	VoteSwitched  VoteResult = "switched"
	VoteRetracted VoteResult = "retracted"
)

// VoteRepository defines the interface for vote ledger operations
type VoteRepository interface {
	CastVote(userID, postID uint, voteType string) (VoteResult, error)
	GetLikesCount(postID uint) (int64, error)
	GetDislikesCount(postID uint) (int64, error)
	GetVote(userID, postID uint) (*models.Vote, error)
}

// PostgresVoteRepository implements VoteRepository for PostgreSQL
type PostgresVoteRepository struct {
	db  *gorm.DB
	now func() float64
}

// NewPostgresVoteRepository creates a new PostgresVoteRepository
func NewPostgresVoteRepository(db *gorm.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db, now: nowUnix}
}

// CastVote applies toggle semantics for one user's vote on one post:
// no existing vote inserts one, an existing vote of the same type is
// removed, an existing vote of the other type is switched in place.
//
// Only a fresh like on someone else's post notifies the author. Retractions
// and switches never notify, dislike-to-like switches included.
//
// Two concurrent first votes race on the (user_id, post_id) unique index;
// the loser re-reads state once and then fails with ErrDuplicateVote.
func (r *PostgresVoteRepository) CastVote(userID, postID uint, voteType string) (VoteResult, error) {
	if voteType != models.VoteTypeLike && voteType != models.VoteTypeDislike {
		return "", ErrInvalidVoteType
	}

	result, err := r.castVote(userID, postID, voteType)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		result, err = r.castVote(userID, postID, voteType)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrDuplicateVote
		}
	}
	return result, err
}

func (r *PostgresVoteRepository) castVote(userID, postID uint, voteType string) (VoteResult, error) {
	var result VoteResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		var existing models.Vote
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil && existing.VoteType == voteType:
			// Same type twice toggles the vote off
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result = VoteRetracted
		case err == nil:
			if err := tx.Model(&existing).Update("vote_type", voteType).Error; err != nil {
				return err
			}
			result = VoteSwitched
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{UserID: userID, PostID: postID, VoteType: voteType}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			result = VoteApplied
			if voteType == models.VoteTypeLike && post.AuthorID != userID {
				var liker models.User
				if err := tx.First(&liker, userID).Error; err != nil {
					return err
				}
				if _, err := notifyInTx(tx, r.now(), post.AuthorID, notifications.EventNewLike, notifications.LikePayload{
					LikerUsername: liker.Username,
					PostID:        post.ID,
					PostTitle:     post.Title,
				}); err != nil {
					return err
				}
			}
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// GetLikesCount retrieves the count of likes for a specific post
func (r *PostgresVoteRepository) GetLikesCount(postID uint) (int64, error) {
	return r.countByType(postID, models.VoteTypeLike)
}

// GetDislikesCount retrieves the count of dislikes for a specific post
func (r *PostgresVoteRepository) GetDislikesCount(postID uint) (int64, error) {
	return r.countByType(postID, models.VoteTypeDislike)
}

func (r *PostgresVoteRepository) countByType(postID uint, voteType string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).
		Where("post_id = ? AND vote_type = ?", postID, voteType).
		Count(&count).Error
	return count, err
}

// GetVote retrieves a user's vote on a post, or nil when none exists
func (r *PostgresVoteRepository) GetVote(userID, postID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}
