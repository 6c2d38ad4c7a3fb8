package repositories

import (
	"errors"

	"github.com/xforum/backend/internal/models"
	"github.com/xforum/backend/internal/notifications"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(authorID, postID uint, parentID *uint, content string) (*models.Comment, error)
	GetCommentByID(id uint) (*models.Comment, error)
	GetThreadByPostID(postID uint) ([]models.CommentNode, error)
	DeleteCommentTree(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db  *gorm.DB
	now func() float64
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db, now: nowUnix}
}

// CreateComment stores a comment and dispatches the matching notification
// in one transaction. A top-level comment notifies the post author; a reply
// notifies the parent comment's author only, even when the post author is
// someone else. Self-actions never notify.
func (r *PostgresCommentRepository) CreateComment(authorID, postID uint, parentID *uint, content string) (*models.Comment, error) {
	var comment *models.Comment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		var parent *models.Comment
		if parentID != nil {
			parent = &models.Comment{}
			if err := tx.First(parent, *parentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCommentNotFound
				}
				return err
			}
			// A reply must stay on its parent's post
			if parent.PostID != postID {
				return ErrCommentPostMismatch
			}
		}

		c := &models.Comment{
			Content:  content,
			AuthorID: authorID,
			PostID:   postID,
			ParentID: parentID,
		}
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		comment = c

		switch {
		case parent != nil && parent.AuthorID != authorID:
			var replier models.User
			if err := tx.First(&replier, authorID).Error; err != nil {
				return err
			}
			if _, err := notifyInTx(tx, r.now(), parent.AuthorID, notifications.EventNewReply, notifications.ReplyPayload{
				ReplierUsername: replier.Username,
				PostID:          post.ID,
				PostTitle:       post.Title,
				CommentID:       c.ID,
			}); err != nil {
				return err
			}
		case parent == nil && post.AuthorID != authorID:
			var commenter models.User
			if err := tx.First(&commenter, authorID).Error; err != nil {
				return err
			}
			if _, err := notifyInTx(tx, r.now(), post.AuthorID, notifications.EventNewComment, notifications.CommentPayload{
				CommenterUsername: commenter.Username,
				PostID:            post.ID,
				PostTitle:         post.Title,
				CommentID:         c.ID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// GetThreadByPostID retrieves all comments of a post as a tree, top-level
// comments oldest first. The tree is assembled from a flat id-indexed load
// rather than recursive queries.
func (r *PostgresCommentRepository) GetThreadByPostID(postID uint) ([]models.CommentNode, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}

	nodes := make(map[uint]*models.CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &models.CommentNode{Comment: c, Replies: []models.CommentNode{}}
	}

	roots := []models.CommentNode{}
	var attach func(node *models.CommentNode)
	attach = func(node *models.CommentNode) {
		for _, c := range comments {
			if c.ParentID != nil && *c.ParentID == node.ID {
				child := nodes[c.ID]
				attach(child)
				node.Replies = append(node.Replies, *child)
			}
		}
	}
	for _, c := range comments {
		if c.ParentID == nil {
			root := nodes[c.ID]
			attach(root)
			roots = append(roots, *root)
		}
	}
	return roots, nil
}

// DeleteCommentTree deletes a comment and all of its descendant replies.
// The subtree is collected iteratively by id so depth is unbounded.
func (r *PostgresCommentRepository) DeleteCommentTree(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var root models.Comment
		if err := tx.First(&root, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}

		ids := []uint{root.ID}
		frontier := []uint{root.ID}
		for len(frontier) > 0 {
			var children []models.Comment
			if err := tx.Where("parent_id IN ?", frontier).Find(&children).Error; err != nil {
				return err
			}
			frontier = frontier[:0]
			for _, c := range children {
				ids = append(ids, c.ID)
				frontier = append(frontier, c.ID)
			}
		}
		return tx.Delete(&models.Comment{}, ids).Error
	})
}
