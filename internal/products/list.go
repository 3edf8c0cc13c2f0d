package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListFilters describes the optional filter knobs for the browse endpoint.
// Every supplied filter is ANDed with the rest; search is the single internal
// OR, matching name or description as a case-insensitive substring. Boolean
// knobs filter only when true; there is no way to request "only non-featured"
// through this surface.
type ListFilters struct {
	CategoryID    *uuid.UUID
	Search        string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	FeaturedOnly  bool
	AvailableOnly bool
}
