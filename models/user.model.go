package models

import (
	"time"
)

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"` // always stored lowercased
	ContactNumber string    `gorm:"size:20;default:''" json:"contact_number"`
	Password      string    `gorm:"not null" json:"-"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Details UserDetails `gorm:"foreignKey:UserID" json:"-"`
}

// UserDetails holds the verification flags of a user, one row per user.
type UserDetails struct {
	ID                  uint      `gorm:"primaryKey" json:"-"`
	UserID              uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	EmailVerified       bool      `gorm:"default:false" json:"email_verified"`
	PhoneNumberVerified bool      `gorm:"default:false" json:"number_verified"`
	IsSeller            bool      `gorm:"default:false" json:"is_seller"`
	UpdatedAt           time.Time `json:"-"`
}

// RevokedToken blacklists a refresh token until it would have expired anyway.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	JTI       string    `gorm:"size:64;uniqueIndex;not null"`
	UserID    uint      `gorm:"index"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
