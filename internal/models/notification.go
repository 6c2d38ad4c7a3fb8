package models

// Notification represents a user notification (PostgreSQL).
// Timestamp is unix seconds; PayloadJSON is the canonical serialization of
// the event payload and doubles as part of the deduplication key.
type Notification struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	UserID      uint    `json:"user_id" gorm:"not null;index"`
	Name        string  `json:"name" gorm:"size:128;not null;index"` // new_like, new_comment, new_reply
	Timestamp   float64 `json:"timestamp" gorm:"index"`
	PayloadJSON string  `json:"-" gorm:"type:text"`
}
