// Package usecase implements the business logic for the cart feature.
package usecase

import "catalog_backend/internal/shared/apperr"

var (
	ErrProductNotFound  = apperr.New(apperr.ErrNotFound, "product not found")
	ErrCartItemNotFound = apperr.New(apperr.ErrNotFound, "cart item not found")
	ErrInvalidQuantity  = apperr.New(apperr.ErrValidation, "quantity must be >= 1")
)
