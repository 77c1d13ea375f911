package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ProductCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	CreatedByID uint      `gorm:"index" json:"created_by"`
	CreatedAt   time.Time `json:"created_on"`
}

type Catalogue struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	CategoryID  uint      `gorm:"index" json:"category"`
	CreatedByID uint      `gorm:"index" json:"created_by"`
	CreatedAt   time.Time `json:"created_on"`
}

// Product is shared between sellers. Its identity is (name, catalogue, category).
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null;uniqueIndex:idx_product_identity" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"default:''" json:"image"`
	Features    datatypes.JSON  `json:"features"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	CatalogueID uint            `gorm:"not null;uniqueIndex:idx_product_identity" json:"catalogue"`
	CategoryID  uint            `gorm:"not null;uniqueIndex:idx_product_identity" json:"category"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

// ProductDetails is one seller's listing of a Product, unique per (user, product).
type ProductDetails struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;uniqueIndex:idx_listing" json:"user"`
	ProductID  uint            `gorm:"not null;uniqueIndex:idx_listing" json:"-"`
	Discount   int             `gorm:"default:0" json:"discount"`
	FinalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"final_price"`
	Stock      int             `gorm:"default:0" json:"stock"`
	Publish    bool            `gorm:"default:false" json:"publish"`
	IsActive   bool            `gorm:"default:true" json:"is_active"`
	CreatedOn  time.Time       `gorm:"autoCreateTime" json:"created_on"`
	UpdatedAt  time.Time       `json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}

type ProductImage struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Image     string    `gorm:"not null"`
	CreatedAt time.Time
}

type CatalogueImage struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	File      string    `gorm:"not null"`
	CreatedAt time.Time
}
