package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a forum member
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"size:64;uniqueIndex"`
	Email        string `json:"email" gorm:"size:120;uniqueIndex"`
	PasswordHash string `json:"-" gorm:"size:256"` // bcrypt hash, never serialized
	Bio          string `json:"bio,omitempty" gorm:"type:text"`
	Confirmed    bool   `json:"confirmed" gorm:"default:false"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`
	// Read marker for notifications: unix seconds of the last time the user
	// opened their notification list. Zero means never read.
	LastNotificationReadTime float64   `json:"last_notification_read_time"`
	CreatedAt                time.Time `json:"created_at"`
}

// RegisterRequest defines the request body for registering a new user
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the request body for signing in
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for editing the own profile
type UpdateProfileRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=2,max=64"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=1000"`
}

// ChangePasswordRequest defines the request body for changing the password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// RequestPasswordResetRequest defines the request body for requesting a reset email
type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest defines the request body for resetting via token;
// the token itself travels in the URL
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
