// Package adapters provides the gorm repository of the cart feature.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog_backend/internal/feature/cart/domain/entity"
	"catalog_backend/internal/feature/cart/usecase"
)

type cartGorm struct {
	db *gorm.DB
}

var _ usecase.CartRepository = (*cartGorm)(nil)

// NewCartGorm creates a cart repository backed by gorm.
func NewCartGorm(db *gorm.DB) *cartGorm {
	return &cartGorm{db: db}
}

func (r *cartGorm) ProductLive(ctx context.Context, productID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("products").
		Where("id = ? AND deleted_at IS NULL", productID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Add upserts on (user_id, product_id):
//
//	INSERT ... ON CONFLICT (user_id, product_id) DO UPDATE
//	SET quantity = cart_items.quantity + excluded.quantity, updated_at = excluded.updated_at
func (r *cartGorm) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.CartItem, error) {
	now := time.Now()
	item := entity.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}

	// The row may predate this call, so read back the stored id and totals.
	var stored entity.CartItem
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *cartGorm) List(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error) {
	items := []entity.CartItem{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartGorm) Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}
