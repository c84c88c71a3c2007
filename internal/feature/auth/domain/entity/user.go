// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization level of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a registered user in the system.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name string `gorm:"size:255;not null"`

	// Email is unique across all users and stored lower-cased.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is an argon2id encoded string, never the plaintext.
	PasswordHash string `gorm:"column:password_hash;size:255;not null"`

	Role Role `gorm:"size:16;not null;default:user"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
