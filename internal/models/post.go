package models

import "time"

// Post represents an authored forum post. Like and dislike counts are
// derived from votes on demand, never stored on the row.
type Post struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"size:100;index"`
	Content    string    `json:"content" gorm:"type:text"`
	AuthorID   uint      `json:"author_id" gorm:"index"`
	CategoryID uint      `json:"category_id" gorm:"index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=100"`
	Content    string `json:"content" validate:"required,min=1"`
	CategoryID uint   `json:"category_id" validate:"required"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title      string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Content    string `json:"content,omitempty" validate:"omitempty,min=1"`
	CategoryID uint   `json:"category_id,omitempty"`
}
