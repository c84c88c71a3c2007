// Package usecase implements the business logic for the product image feature.
package usecase

import "catalog_backend/internal/shared/apperr"

var (
	ErrProductNotFound = apperr.New(apperr.ErrNotFound, "product not found")
	ErrImageNotFound   = apperr.New(apperr.ErrNotFound, "image not found")

	ErrUnsupportedType = apperr.New(apperr.ErrValidation, "image must be jpeg, png, gif or webp")
	ErrEmptyImage      = apperr.New(apperr.ErrValidation, "image is empty")
	ErrImageTooLarge   = apperr.New(apperr.ErrValidation, "image exceeds the upload size limit")
)
