package models

import "time"

// Comment belongs to one post and one author. ParentID links a reply to
// another comment on the same post, forming a tree of unbounded depth.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	PostID    uint      `json:"post_id" gorm:"index"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentNode is a comment with its nested replies, used for threaded listings
type CommentNode struct {
	Comment
	Replies []CommentNode `json:"replies"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=5000"`
	ParentID *uint  `json:"parent_id,omitempty"`
}
