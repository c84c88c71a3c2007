// Package usecase implements the business logic for the product feature.
package usecase

import (
	"catalog_backend/internal/feature/product/domain/entity"
	"catalog_backend/internal/shared/apperr"
)

var (
	ErrProductNotFound  = apperr.New(apperr.ErrNotFound, "product not found")
	ErrCategoryNotFound = apperr.New(apperr.ErrValidation, "category does not exist")

	ErrInvalidName       = apperr.New(apperr.ErrValidation, "name must not be empty")
	ErrNegativePrice     = apperr.New(apperr.ErrValidation, "price must not be negative")
	ErrNegativeStock     = apperr.New(apperr.ErrValidation, "stock_quantity must not be negative")
	ErrInvalidPage       = apperr.New(apperr.ErrValidation, "page must be >= 1")
	ErrInvalidLimit      = apperr.Validation("limit must be between 1 and %d", entity.MaxLimit)
	ErrInvalidPriceRange = apperr.New(apperr.ErrValidation, "min_price must not exceed max_price")
)
