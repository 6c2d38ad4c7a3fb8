package repositories

import (
	"errors"

	"github.com/xforum/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPosts(categoryID uint, page, limit int) ([]models.Post, int64, error)
	SearchPosts(query string, page, limit int) ([]models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePostCascade(id uint) error
	CountPosts() (int64, error)
	CountPostsByCategory(categoryID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPosts retrieves posts newest first, optionally filtered by category.
// A zero categoryID means all categories.
func (r *PostgresPostRepository) GetPosts(categoryID uint, page, limit int) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// SearchPosts searches posts by title, content or author username
// (case-insensitive), newest first
func (r *PostgresPostRepository) SearchPosts(query string, page, limit int) ([]models.Post, error) {
	var posts []models.Post
	pattern := "%" + query + "%"
	offset := (page - 1) * limit
	err := r.db.Model(&models.Post{}).
		Joins("JOIN users ON users.id = posts.author_id").
		Where("LOWER(posts.title) LIKE LOWER(?) OR LOWER(posts.content) LIKE LOWER(?) OR LOWER(users.username) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Order("posts.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

// UpdatePost updates an existing post in PostgreSQL
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePostCascade deletes a post together with its comments and votes
func (r *PostgresPostRepository) DeletePostCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

// CountPosts retrieves the total number of posts
func (r *PostgresPostRepository) CountPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// CountPostsByCategory retrieves the number of posts in a category
func (r *PostgresPostRepository) CountPostsByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
