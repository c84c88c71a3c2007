// Package entity defines the domain entities for the cart feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line in a user's cart. A user holds at most one
// row per product.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:2;index"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
