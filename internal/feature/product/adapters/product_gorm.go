// Package adapters provides the gorm repository of the product feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog_backend/internal/feature/product/domain/entity"
	"catalog_backend/internal/feature/product/usecase"
)

type productGorm struct {
	db *gorm.DB
}

var _ usecase.ProductRepository = (*productGorm)(nil)

// NewProductGorm creates a product repository backed by gorm.
func NewProductGorm(db *gorm.DB) *productGorm {
	return &productGorm{db: db}
}

func (r *productGorm) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productGorm) CategoryUsable(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("categories").
		Where("id = ? AND deleted_at IS NULL", id).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByID includes soft-deleted rows.
func (r *productGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	products := []entity.Product{p}
	if err := r.attachImages(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *productGorm) Search(ctx context.Context, f entity.SearchFilter) ([]entity.Product, int64, error) {
	countSQL, countArgs, err := buildCountQuery(f)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.WithContext(ctx).Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	products := []entity.Product{}
	if total == 0 {
		return products, 0, nil
	}

	pageSQL, pageArgs, err := buildSearchQuery(f)
	if err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).Raw(pageSQL, pageArgs...).Scan(&products).Error; err != nil {
		return nil, 0, err
	}
	if err := r.attachImages(ctx, products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Update touches live rows only.
func (r *productGorm) Update(ctx context.Context, p *entity.Product) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":           p.Name,
			"description":    p.Description,
			"price":          p.Price,
			"stock_quantity": p.StockQuantity,
			"category_id":    p.CategoryID,
			"updated_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	p.UpdatedAt = now
	return nil
}

func (r *productGorm) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

func (r *productGorm) HardDelete(ctx context.Context, id uuid.UUID) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("product_images").Where("product_id = ?", id).Pluck("image_url", &urls).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_images WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM cart_items WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Where("id = ?", id).Delete(&entity.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrProductNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}

type imageRow struct {
	ProductID uuid.UUID
	ImageURL  string
}

// attachImages loads image URLs for products in one query, primary first.
func (r *productGorm) attachImages(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(products))
	index := make(map[uuid.UUID]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
		products[i].Images = []string{}
	}

	var rows []imageRow
	err := r.db.WithContext(ctx).Table("product_images").
		Select("product_id, image_url").
		Where("product_id IN ?", ids).
		Order("is_primary DESC, created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	for _, row := range rows {
		if i, ok := index[row.ProductID]; ok {
			products[i].Images = append(products[i].Images, row.ImageURL)
		}
	}
	return nil
}
