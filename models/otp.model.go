package models

import "time"

// OTPVerification keeps the single active email verification code of a user.
// Every resend overwrites Code and clears IsOTPUsed.
type OTPVerification struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"uniqueIndex;not null"`
	Email       string    `gorm:"size:255;index"`
	PhoneNumber string    `gorm:"size:20"`
	OTP         string    `gorm:"column:otp;size:10;not null"`
	IsOTPUsed   bool      `gorm:"column:is_otp_used;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
