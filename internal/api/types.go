// Package api defines the JSON request and response bodies of the HTTP API.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID    openapi_types.UUID  `json:"id"`
	Name  string              `json:"name"`
	Email openapi_types.Email `json:"email"`
	Role  string              `json:"role"`
}

// ChangePasswordRequest is the body of PUT /api/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileRequest is the body of PUT /api/user/profile. Absent fields are kept.
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UpdateRoleRequest is the body of PUT /api/admin/users/:id/role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}

// CreateProductRequest is the body of POST /api/products.
type CreateProductRequest struct {
	Name          string              `json:"name" binding:"required,max=255"`
	Description   *string             `json:"description"`
	Price         *decimal.Decimal    `json:"price" binding:"required"`
	StockQuantity int                 `json:"stock_quantity" binding:"min=0"`
	CategoryID    *openapi_types.UUID `json:"category_id"`
}

// UpdateProductRequest is the body of PUT /api/products/:id. Absent fields are kept.
type UpdateProductRequest struct {
	Name          *string             `json:"name" binding:"omitempty,min=1,max=255"`
	Description   *string             `json:"description"`
	Price         *decimal.Decimal    `json:"price"`
	StockQuantity *int                `json:"stock_quantity" binding:"omitempty,min=0"`
	CategoryID    *openapi_types.UUID `json:"category_id"`
}

// ProductResponse is the public representation of a product.
type ProductResponse struct {
	ID            openapi_types.UUID  `json:"id"`
	Name          string              `json:"name"`
	Description   *string             `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	StockQuantity int                 `json:"stock_quantity"`
	CategoryID    *openapi_types.UUID `json:"category_id"`
	Images        []string            `json:"images"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	DeletedAt     *time.Time          `json:"deleted_at,omitempty"`
}

// ProductPageResponse is one page of a product listing or search.
type ProductPageResponse struct {
	Items []ProductResponse `json:"items"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
}

// CreateCategoryRequest is the body of POST /api/category/create.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

// UpdateCategoryRequest is the body of PATCH /api/category/update/:id. Absent fields are kept.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// CategoryResponse is the public representation of a category.
type CategoryResponse struct {
	ID          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   *time.Time         `json:"deleted_at,omitempty"`
}

// AddToCartRequest is the body of POST /api/cart.
type AddToCartRequest struct {
	ProductID openapi_types.UUID `json:"product_id" binding:"required"`
	Quantity  int                `json:"quantity" binding:"required,min=1"`
}

// CartItemResponse is one line of the authenticated user's cart.
type CartItemResponse struct {
	ID        openapi_types.UUID `json:"id"`
	ProductID openapi_types.UUID `json:"product_id"`
	Quantity  int                `json:"quantity"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// RemoveFromCartResponse acknowledges a cart removal.
type RemoveFromCartResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// UpdateProductImageRequest is the body of PUT /api/products/images/:image_id.
type UpdateProductImageRequest struct {
	IsPrimary *bool `json:"is_primary" binding:"required"`
}

// ProductImageResponse is the public representation of a product image.
type ProductImageResponse struct {
	ID        openapi_types.UUID `json:"id"`
	ProductID openapi_types.UUID `json:"product_id"`
	ImageURL  string             `json:"image_url"`
	IsPrimary bool               `json:"is_primary"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
