package models

import "time"

// Recognized vote types
const (
	VoteTypeLike    = "like"
	VoteTypeDislike = "dislike"
)

// Vote records one user's vote on one post.
// The combination of UserID and PostID must be unique.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_post_vote"`
	PostID    uint      `json:"post_id" gorm:"not null;index;uniqueIndex:idx_user_post_vote"`
	VoteType  string    `json:"vote_type" gorm:"size:10;not null"`
	CreatedAt time.Time `json:"created_at"`
}
