package models

import "time"

const DefaultAvatar = "default-avatar.png"

// UserProfile extends a User with optional contact details. At most one
// profile exists per user; it is created lazily on first access.
type UserProfile struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	PhoneNumber  string     `gorm:"not null;default:''" json:"phone_number"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Avatar       string     `gorm:"not null;default:default-avatar.png" json:"avatar"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	LastAccessAt time.Time  `gorm:"not null" json:"last_access_at"`
}
