// Package adapters provides the gorm repository of the category feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog_backend/internal/feature/category/domain/entity"
	"catalog_backend/internal/feature/category/usecase"
	"catalog_backend/internal/platform/db"
)

type categoryGorm struct {
	db *gorm.DB
}

var _ usecase.CategoryRepository = (*categoryGorm)(nil)

// NewCategoryGorm creates a category repository backed by gorm.
func NewCategoryGorm(db *gorm.DB) *categoryGorm {
	return &categoryGorm{db: db}
}

func (r *categoryGorm) Create(ctx context.Context, c *entity.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	taken, err := r.nameTaken(ctx, c.Name, uuid.Nil)
	if err != nil {
		return err
	}
	if taken {
		return usecase.ErrCategoryNameTaken
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrCategoryNameTaken
		}
		return err
	}
	return nil
}

// FindByID includes soft-deleted rows.
func (r *categoryGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var c entity.Category
	if err := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryGorm) List(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	if err := r.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryGorm) Filter(ctx context.Context, name string) ([]entity.Category, error) {
	var out []entity.Category
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? "+db.LikeEscape, db.ContainsPattern(name)).
		Order("created_at DESC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update touches live rows only.
func (r *categoryGorm) Update(ctx context.Context, c *entity.Category) error {
	taken, err := r.nameTaken(ctx, c.Name, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return usecase.ErrCategoryNameTaken
	}

	now := time.Now()
	res := r.db.WithContext(ctx).Model(&entity.Category{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":        c.Name,
			"description": c.Description,
			"updated_at":  now,
		})
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return usecase.ErrCategoryNameTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCategoryNotFound
	}
	c.UpdatedAt = now
	return nil
}

func (r *categoryGorm) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCategoryNotFound
	}
	return nil
}

// HardDelete detaches the category's products and removes the row, soft-deleted or not.
func (r *categoryGorm) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE products SET category_id = NULL WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Where("id = ?", id).Delete(&entity.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrCategoryNotFound
		}
		return nil
	})
}

// nameTaken reports whether a live category other than except uses name.
func (r *categoryGorm) nameTaken(ctx context.Context, name string, except uuid.UUID) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&entity.Category{}).Where("name = ?", name)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
