// Package entity defines the domain entities for the product image feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage links a stored image file to a product. At most one image per
// product is primary.
type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL  string    `gorm:"size:512;not null"`
	IsPrimary bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
