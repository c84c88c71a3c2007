package usecase

import (
	"context"

	"github.com/google/uuid"

	"catalog_backend/internal/feature/cart/domain/entity"
)

// CartRepository はカートの永続化層を抽象化します。
type CartRepository interface {
	// ProductLive reports whether a product exists and is not soft-deleted.
	ProductLive(ctx context.Context, productID uuid.UUID) (bool, error)
	// Add inserts the line or increments its quantity in one statement and
	// returns the resulting row.
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.CartItem, error)
	List(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error)
	// Remove returns the number of deleted rows.
	Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error)
}

type cartUsecase struct {
	repo CartRepository
}

// NewCartUsecase creates the cart usecase.
func NewCartUsecase(repo CartRepository) *cartUsecase {
	return &cartUsecase{repo: repo}
}

// Add puts quantity units of a live product into the user's cart.
// Re-adding a product increments the existing line.
func (u *cartUsecase) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	ok, err := u.repo.ProductLive(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}
	return u.repo.Add(ctx, userID, productID, quantity)
}

// List returns the user's cart, oldest line first.
func (u *cartUsecase) List(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error) {
	return u.repo.List(ctx, userID)
}

func (u *cartUsecase) Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	n, err := u.repo.Remove(ctx, userID, productID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrCartItemNotFound
	}
	return n, nil
}
