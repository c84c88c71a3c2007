package usecase

import (
	"context"
	"math"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"catalog_backend/internal/feature/product/domain/entity"
	"catalog_backend/internal/platform/events"
)

// ProductRepository はプロダクトの永続化層を抽象化します。
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	// CategoryUsable reports whether a live category with id exists.
	CategoryUsable(ctx context.Context, id uuid.UUID) (bool, error)
	// FindByID は論理削除済みも含めて画像付きで取得します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// Search returns one page of live products and the total match count.
	Search(ctx context.Context, f entity.SearchFilter) ([]entity.Product, int64, error)
	// Update は生存中の行だけを更新します。
	Update(ctx context.Context, p *entity.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// HardDelete removes the product with its image and cart rows and
	// returns the URLs of the removed images.
	HardDelete(ctx context.Context, id uuid.UUID) ([]string, error)
}

// ImageRemover deletes stored image files.
type ImageRemover interface {
	Remove(url string) error
}

// EventPublisher publishes catalog events.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// NewProduct is the input of Create.
type NewProduct struct {
	Name          string
	Description   *string
	Price         decimal.Decimal
	StockQuantity int
	CategoryID    *uuid.UUID
}

// ProductUpdate holds optional fields. Nil keeps the current value.
type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
	CategoryID    *uuid.UUID
}

type productUsecase struct {
	repo   ProductRepository
	images ImageRemover
	events EventPublisher
}

// NewProductUsecase creates the product usecase.
func NewProductUsecase(repo ProductRepository, images ImageRemover, publisher EventPublisher) *productUsecase {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &productUsecase{repo: repo, images: images, events: publisher}
}

func (u *productUsecase) Create(ctx context.Context, in NewProduct) (*entity.Product, error) {
	p := &entity.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		CategoryID:    in.CategoryID,
	}
	if err := u.validate(ctx, p, true); err != nil {
		return nil, err
	}

	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Images = []string{}

	e := events.New(events.ProductCreated, p.ID)
	e.Name = p.Name
	u.publish(ctx, e)
	return p, nil
}

func (u *productUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return u.repo.FindByID(ctx, id)
}

// List returns live products newest first.
func (u *productUsecase) List(ctx context.Context, page, limit int) (*entity.Page, error) {
	return u.Search(ctx, entity.SearchFilter{Page: page, Limit: limit, NewestFirst: true})
}

func (u *productUsecase) Search(ctx context.Context, f entity.SearchFilter) (*entity.Page, error) {
	if f.Page < 1 {
		return nil, ErrInvalidPage
	}
	if f.Limit < 1 || f.Limit > entity.MaxLimit {
		return nil, ErrInvalidLimit
	}
	// (page-1)*limit must fit in an int.
	if f.Page > math.MaxInt/f.Limit {
		return nil, ErrInvalidPage
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return nil, ErrInvalidPriceRange
	}
	f.Query = strings.TrimSpace(f.Query)

	items, total, err := u.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	return &entity.Page{Items: items, Page: f.Page, Limit: f.Limit, Total: total}, nil
}

func (u *productUsecase) Update(ctx context.Context, id uuid.UUID, in ProductUpdate) (*entity.Product, error) {
	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsDeleted() {
		return nil, ErrProductNotFound
	}

	categoryChanged := false
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *in.CategoryID) {
		p.CategoryID = in.CategoryID
		categoryChanged = true
	}

	if err := u.validate(ctx, p, categoryChanged); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *productUsecase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	u.publish(ctx, events.New(events.ProductDeleted, id))
	return nil
}

// HardDelete removes the rows first, then the image files. File removal is best effort.
func (u *productUsecase) HardDelete(ctx context.Context, id uuid.UUID) error {
	urls, err := u.repo.HardDelete(ctx, id)
	if err != nil {
		return err
	}
	for _, url := range urls {
		if err := u.images.Remove(url); err != nil {
			slog.Warn("failed to remove image file", "product_id", id, "url", url, "error", err)
		}
	}

	e := events.New(events.ProductDeleted, id)
	e.Hard = true
	u.publish(ctx, e)
	return nil
}

func (u *productUsecase) validate(ctx context.Context, p *entity.Product, checkCategory bool) error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	if checkCategory && p.CategoryID != nil {
		ok, err := u.repo.CategoryUsable(ctx, *p.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCategoryNotFound
		}
	}
	return nil
}

func (u *productUsecase) publish(ctx context.Context, e events.Event) {
	if err := u.events.Publish(ctx, e); err != nil {
		slog.Warn("failed to publish event", "type", e.Type, "product_id", e.EntityID, "error", err)
	}
}
