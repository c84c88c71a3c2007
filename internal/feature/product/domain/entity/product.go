// Package entity defines the domain entities for the product feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog item. Soft-deleted products keep their row with
// DeletedAt set and are hidden from listings and search.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"size:255;not null"`
	Description   *string         `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	// Images are the product's image URLs, primary first. Not a column.
	Images []string `gorm:"-"`
}

// IsDeleted reports whether the product has been soft-deleted.
func (p *Product) IsDeleted() bool {
	return p.DeletedAt.Valid
}
