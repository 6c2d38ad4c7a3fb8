package repositories

import (
	"errors"
	"log/slog"

	"github.com/xforum/backend/internal/models"
	"github.com/xforum/backend/internal/notifications"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Notify(userID uint, name string, payload any) (*models.Notification, error)
	GetByUserID(userID uint) ([]models.Notification, error)
	UnreadCount(user *models.User) (int64, error)
	MarkAllRead(userID uint) (float64, error)
}

// PostgresNotificationRepository implements NotificationRepository for PostgreSQL
type PostgresNotificationRepository struct {
	db  *gorm.DB
	now func() float64
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db, now: nowUnix}
}

// Notify records a notification for a user. Re-triggering an identical
// event (same user, name and payload) replaces the earlier record instead
// of duplicating it, bumping it to the top of recency ordering.
func (r *PostgresNotificationRepository) Notify(userID uint, name string, payload any) (*models.Notification, error) {
	var created *models.Notification
	err := r.db.Transaction(func(tx *gorm.DB) error {
		n, err := notifyInTx(tx, r.now(), userID, name, payload)
		if err != nil {
			return err
		}
		created = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// notifyInTx runs the dedup-insert-evict sequence inside an existing
// transaction so primary actions (vote, comment) can commit their
// notification side effect atomically.
//
// Eviction beyond the per-user cap is best-effort: a failure there is
// logged and the inserted notification stands.
func notifyInTx(tx *gorm.DB, at float64, userID uint, name string, payload any) (*models.Notification, error) {
	encoded, err := notifications.Encode(payload)
	if err != nil {
		return nil, err
	}

	// Dedup key is (user_id, name, payload_json)
	if err := tx.Where("user_id = ? AND name = ? AND payload_json = ?", userID, name, encoded).
		Delete(&models.Notification{}).Error; err != nil {
		return nil, err
	}

	n := &models.Notification{
		UserID:      userID,
		Name:        name,
		Timestamp:   at,
		PayloadJSON: encoded,
	}
	if err := tx.Create(n).Error; err != nil {
		return nil, err
	}

	// On Postgres a failed statement aborts the whole transaction, so the
	// count and eviction run under a savepoint that is rolled back on
	// error. The insert above still commits.
	if err := tx.SavePoint("notify_cap").Error; err != nil {
		return nil, err
	}
	if err := evictBeyondCap(tx, userID); err != nil {
		slog.Warn("notification cap eviction failed", "user_id", userID, "error", err)
		if err := tx.RollbackTo("notify_cap").Error; err != nil {
			return nil, err
		}
	}
	return n, nil
}

// evictBeyondCap deletes a user's single oldest notification when their
// stored count exceeds the cap
func evictBeyondCap(tx *gorm.DB, userID uint) error {
	var count int64
	if err := tx.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count <= notifications.MaxPerUser {
		return nil
	}
	var oldest models.Notification
	if err := tx.Where("user_id = ?", userID).Order("timestamp asc").First(&oldest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return tx.Delete(&oldest).Error
}

// GetByUserID retrieves a user's notifications, newest first
func (r *PostgresNotificationRepository) GetByUserID(userID uint) ([]models.Notification, error) {
	var notifs []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&notifs).Error
	return notifs, err
}

// UnreadCount counts notifications newer than the user's read marker.
// A user who has never opened the notification view has a zero marker, so
// every notification counts as unread.
func (r *PostgresNotificationRepository) UnreadCount(user *models.User) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND timestamp > ?", user.ID, user.LastNotificationReadTime).
		Count(&count).Error
	return count, err
}

// MarkAllRead advances the user's read marker to the current time and
// returns the new marker. Per-notification read state is not tracked.
func (r *PostgresNotificationRepository) MarkAllRead(userID uint) (float64, error) {
	at := r.now()
	err := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_notification_read_time", at).Error
	return at, err
}
