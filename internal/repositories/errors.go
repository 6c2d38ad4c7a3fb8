package repositories

import "errors"

// Errors surfaced by the repositories. Handlers map them to HTTP statuses.
var (
	ErrInvalidVoteType     = errors.New("invalid vote type")
	ErrDuplicateVote       = errors.New("duplicate vote")
	ErrPostNotFound        = errors.New("post not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCommentPostMismatch = errors.New("parent comment belongs to a different post")
)
