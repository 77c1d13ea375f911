package models

import "time"

// SellerGST is the GST registration claim of a seller. It is created by the
// first certificate upload and verified through a GST OTP.
type SellerGST struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"-"`
	SellerID        string    `gorm:"size:40;uniqueIndex;not null" json:"seller_id"`
	Certificate     string    `gorm:"default:''" json:"certificate"`
	TradeName       string    `gorm:"default:''" json:"trade_name"`
	GSTNumber       string    `gorm:"column:gst_number;size:20;default:''" json:"gst_number"`
	GSTType         string    `gorm:"column:gst_type;size:50;default:''" json:"gst_type"`
	LegalName       string    `gorm:"default:''" json:"legal_name"`
	BusinessAddress string    `gorm:"type:text" json:"business_address"`
	OTP             string    `gorm:"column:otp;size:10;default:''" json:"-"`
	IsOTPUsed       bool      `gorm:"column:is_otp_used;default:false" json:"-"`
	GSTVerified     bool      `gorm:"column:gst_verified;default:false" json:"gst_verified"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

func (SellerGST) TableName() string { return "seller_gst" }
