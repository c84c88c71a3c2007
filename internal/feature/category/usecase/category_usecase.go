package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"catalog_backend/internal/feature/category/domain/entity"
	"catalog_backend/internal/platform/events"
)

// CategoryRepository はカテゴリの永続化層を抽象化します。
type CategoryRepository interface {
	// Create はカテゴリを保存します。生存中の同名カテゴリがあれば ErrCategoryNameTaken。
	Create(ctx context.Context, c *entity.Category) error
	// FindByID は論理削除済みも含めて取得します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	// List は生存中のカテゴリを新しい順に返します。
	List(ctx context.Context) ([]entity.Category, error)
	// Filter は name の部分一致（大文字小文字を区別しない）で生存中のカテゴリを返します。
	Filter(ctx context.Context, name string) ([]entity.Category, error)
	// Update は生存中のカテゴリだけを更新します。
	Update(ctx context.Context, c *entity.Category) error
	// SoftDelete は deleted_at を設定します。既に削除済みなら ErrCategoryNotFound。
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// HardDelete は商品の category_id を NULL にしてから行を削除します。
	HardDelete(ctx context.Context, id uuid.UUID) error
}

// EventPublisher publishes catalog events.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// CategoryUpdate holds optional fields. Nil keeps the current value.
type CategoryUpdate struct {
	Name        *string
	Description *string
}

type categoryUsecase struct {
	repo   CategoryRepository
	events EventPublisher
}

// NewCategoryUsecase creates the category usecase.
func NewCategoryUsecase(repo CategoryRepository, publisher EventPublisher) *categoryUsecase {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &categoryUsecase{repo: repo, events: publisher}
}

func (u *categoryUsecase) Create(ctx context.Context, name string, description *string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	c := &entity.Category{Name: name, Description: description}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	slog.Info("category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

func (u *categoryUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return u.repo.FindByID(ctx, id)
}

func (u *categoryUsecase) List(ctx context.Context) ([]entity.Category, error) {
	return u.repo.List(ctx)
}

// Filter with an empty name is the same as List.
func (u *categoryUsecase) Filter(ctx context.Context, name string) ([]entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return u.repo.List(ctx)
	}
	return u.repo.Filter(ctx, name)
}

func (u *categoryUsecase) Update(ctx context.Context, id uuid.UUID, in CategoryUpdate) (*entity.Category, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsDeleted() {
		return nil, ErrCategoryNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = in.Description
	}

	if err := u.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *categoryUsecase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	u.publish(ctx, id, false)
	return nil
}

func (u *categoryUsecase) HardDelete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.HardDelete(ctx, id); err != nil {
		return err
	}
	u.publish(ctx, id, true)
	return nil
}

func (u *categoryUsecase) publish(ctx context.Context, id uuid.UUID, hard bool) {
	e := events.New(events.CategoryDeleted, id)
	e.Hard = hard
	if err := u.events.Publish(ctx, e); err != nil {
		slog.Warn("failed to publish event", "type", e.Type, "category_id", id, "error", err)
	}
}
