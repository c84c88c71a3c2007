// Package adapters provides the gorm repository of the product image feature.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog_backend/internal/feature/productimage/domain/entity"
	"catalog_backend/internal/feature/productimage/usecase"
)

type productImageGorm struct {
	db *gorm.DB
}

var _ usecase.ProductImageRepository = (*productImageGorm)(nil)

// NewProductImageGorm creates a product image repository backed by gorm.
func NewProductImageGorm(db *gorm.DB) *productImageGorm {
	return &productImageGorm{db: db}
}

func (r *productImageGorm) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("products").
		Where("id = ? AND deleted_at IS NULL", productID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *productImageGorm) Create(ctx context.Context, img *entity.ProductImage) error {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if img.IsPrimary {
			if err := lockProduct(tx, img.ProductID); err != nil {
				return err
			}
			if err := unsetPrimary(tx, img.ProductID, uuid.Nil); err != nil {
				return err
			}
		}
		return tx.Create(img).Error
	})
}

func (r *productImageGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
	return findImage(r.db.WithContext(ctx), id)
}

func (r *productImageGorm) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.ProductImage, error) {
	images := []entity.ProductImage{}
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("is_primary DESC, created_at ASC, id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// SetPrimary unsets the other images and sets this one inside one
// transaction holding the product row lock, so concurrent calls serialize.
func (r *productImageGorm) SetPrimary(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
	var img *entity.ProductImage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findImage(tx, id)
		if err != nil {
			return err
		}
		if err := lockProduct(tx, found.ProductID); err != nil {
			return err
		}
		if err := unsetPrimary(tx, found.ProductID, id); err != nil {
			return err
		}
		if err := tx.Model(&entity.ProductImage{}).Where("id = ?", id).Update("is_primary", true).Error; err != nil {
			return err
		}
		img, err = findImage(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (r *productImageGorm) ClearPrimary(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
	var img *entity.ProductImage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findImage(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&entity.ProductImage{}).Where("id = ?", id).Update("is_primary", false).Error; err != nil {
			return err
		}
		var err error
		img, err = findImage(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (r *productImageGorm) Delete(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
	var img *entity.ProductImage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findImage(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&entity.ProductImage{}, "id = ?", id).Error; err != nil {
			return err
		}
		img = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func findImage(db *gorm.DB, id uuid.UUID) (*entity.ProductImage, error) {
	var img entity.ProductImage
	if err := db.Where("id = ?", id).First(&img).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrImageNotFound
		}
		return nil, err
	}
	return &img, nil
}

// lockProduct takes SELECT ... FOR UPDATE on the product row. SQLite ignores the clause.
func lockProduct(tx *gorm.DB, productID uuid.UUID) error {
	var ids []string
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Table("products").
		Where("id = ?", productID).
		Pluck("id", &ids).Error
}

// unsetPrimary clears is_primary on every image of the product except keep.
func unsetPrimary(tx *gorm.DB, productID, keep uuid.UUID) error {
	q := tx.Model(&entity.ProductImage{}).Where("product_id = ? AND is_primary = ?", productID, true)
	if keep != uuid.Nil {
		q = q.Where("id <> ?", keep)
	}
	return q.Update("is_primary", false).Error
}
