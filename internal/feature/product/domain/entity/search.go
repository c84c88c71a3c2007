package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SearchFilter selects a page of live products. Zero-valued optional fields
// add no predicate.
type SearchFilter struct {
	Query      string
	CategoryID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    bool

	Page  int
	Limit int

	// NewestFirst orders by created_at DESC instead of ASC.
	NewestFirst bool
}

// Offset is the number of rows skipped before the page.
func (f SearchFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Page is one page of products and the total number of matches.
type Page struct {
	Items []Product
	Page  int
	Limit int
	Total int64
}
