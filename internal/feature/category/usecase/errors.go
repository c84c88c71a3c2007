// Package usecase implements the business logic for the category feature.
package usecase

import "catalog_backend/internal/shared/apperr"

var (
	// ErrCategoryNotFound is returned when no (live, where required) category has the given ID.
	ErrCategoryNotFound = apperr.New(apperr.ErrNotFound, "category not found")

	// ErrCategoryNameTaken is returned when a live category already uses the name.
	ErrCategoryNameTaken = apperr.New(apperr.ErrConflict, "category name already exists")

	ErrInvalidName = apperr.New(apperr.ErrValidation, "name must not be empty")
)
