package products

import (
	"time"

	"github.com/arbrands/storefront-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the transport shape for a product, including the joined
// category fields. A dangling category reference yields null category fields
// rather than an error.
type ProductDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	CategoryName *string         `json:"category_name"`
	CategorySlug *string         `json:"category_slug"`
	Images       []string        `json:"images"`
	Sizes        []string        `json:"sizes"`
	Colors       []string        `json:"colors"`
	IsAvailable  bool            `json:"is_available"`
	IsFeatured   bool            `json:"is_featured"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateProductRequest carries the fields accepted on creation. Name and
// price are the only required fields; availability defaults to true.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Sizes       []string         `json:"sizes,omitempty"`
	Colors      []string         `json:"colors,omitempty"`
	IsAvailable *bool            `json:"is_available,omitempty"`
	IsFeatured  *bool            `json:"is_featured,omitempty"`
}

// UpdateProductRequest patches a product: absent fields keep their previous
// value. category_id is tri-state: only an explicit null detaches the
// category.
type UpdateProductRequest struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Price       *decimal.Decimal   `json:"price,omitempty"`
	CategoryID  types.NullableUUID `json:"category_id,omitempty"`
	Images      []string           `json:"images,omitempty"`
	Sizes       []string           `json:"sizes,omitempty"`
	Colors      []string           `json:"colors,omitempty"`
	IsAvailable *bool              `json:"is_available,omitempty"`
	IsFeatured  *bool              `json:"is_featured,omitempty"`
}
