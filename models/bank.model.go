package models

import "time"

// BankDetails model. Append-only, many per business.
type BankDetails struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	BusinessID    uint      `gorm:"index;not null" json:"-"`
	AccHolderName string    `gorm:"not null" json:"acc_holder_name"`
	AccNumber     string    `gorm:"size:34;not null" json:"acc_number"`
	IFSC          string    `gorm:"column:ifsc;size:11;not null" json:"ifsc"`
	CreatedAt     time.Time `json:"-"`
}
