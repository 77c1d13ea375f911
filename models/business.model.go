package models

import "time"

type Business struct {
	ID             uint          `gorm:"primaryKey" json:"-"`
	UserID         uint          `gorm:"uniqueIndex;not null" json:"-"`
	Name           string        `gorm:"size:255" json:"name"`
	StoreName      string        `gorm:"size:255" json:"store_name"`
	Address        string        `gorm:"type:text" json:"address"`
	EmailAddress   string        `gorm:"size:255" json:"email_address"`
	PhoneNumber    string        `gorm:"size:20" json:"phone_number"`
	ShippingMethod string        `gorm:"size:255" json:"shipping_method"`
	ProfilePic     string        `gorm:"size:255" json:"profile_pic"`
	BankDetails    []BankDetails `gorm:"foreignKey:BusinessID" json:"bank_details"`
	CreatedAt      time.Time     `json:"-"`
	UpdatedAt      time.Time     `json:"-"`
}
