// Package usecase implements the business logic for the auth feature.
package usecase

import "catalog_backend/internal/shared/apperr"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = apperr.New(apperr.ErrNotFound, "user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = apperr.New(apperr.ErrConflict, "email already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = apperr.New(apperr.ErrValidation, "invalid email or password")

	// ErrCurrentPasswordMismatch is returned by ChangePassword.
	ErrCurrentPasswordMismatch = apperr.New(apperr.ErrValidation, "current password is incorrect")

	ErrPasswordTooShort = apperr.Validation("password must be at least %d characters long", minPasswordLength)
	ErrInvalidName      = apperr.New(apperr.ErrValidation, "name must not be empty")
	ErrInvalidEmail     = apperr.New(apperr.ErrValidation, "email must be a valid address")
	ErrInvalidRole      = apperr.New(apperr.ErrValidation, "invalid role")
)
