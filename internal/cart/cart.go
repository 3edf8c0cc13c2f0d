// Package cart implements the client-resident shopping cart: a persisted
// collection of line items with merge, update and removal semantics. It never
// talks to the catalog service; products enter as snapshots taken at add time.
package cart

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot freezes the product fields the cart needs at add time.
// Totals are computed from the snapshot price, so later catalog price changes
// do not retroactively alter an existing cart.
type ProductSnapshot struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// Line is one cart entry. Two lines are the same entry when product id, size
// and color all match; quantity is always positive while the line exists.
type Line struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"selected_size,omitempty"`
	Color    string          `json:"selected_color,omitempty"`
}

func (l Line) sameVariant(productID uuid.UUID, size, color string) bool {
	return l.Product.ID == productID && l.Size == size && l.Color == color
}

// LineTotal is quantity times the snapshot unit price.
func (l Line) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store is the durable client store the engine writes through. Load returns
// the previously saved collection, or nil when nothing usable is stored.
type Store interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// Engine owns the line collection. Every mutation synchronously writes the
// whole collection back through the store, so a reload always observes the
// last completed action.
type Engine struct {
	store Store
	lines []Line
}

// NewEngine loads any persisted cart from the store. A missing or corrupt
// saved cart starts empty; only store I/O failures are surfaced.
func NewEngine(store Store) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	lines, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	e := &Engine{store: store}
	for _, line := range lines {
		if line.Quantity > 0 {
			e.lines = append(e.lines, line)
		}
	}
	return e, nil
}

// Add merges quantity into an existing line with the same product, size and
// color, or appends a new line at the end. Insertion order of existing lines
// is preserved. Non-positive quantities are ignored.
func (e *Engine) Add(product ProductSnapshot, quantity int, size, color string) error {
	if quantity <= 0 {
		return nil
	}
	for i := range e.lines {
		if e.lines[i].sameVariant(product.ID, size, color) {
			e.lines[i].Quantity += quantity
			return e.persist()
		}
	}
	e.lines = append(e.lines, Line{
		Product:  product,
		Quantity: quantity,
		Size:     size,
		Color:    color,
	})
	return e.persist()
}

// SetQuantity replaces the quantity of the first line matching the product
// id. Matching ignores size and color: when the same product sits in the cart
// in several variants the first one wins. A non-positive quantity removes
// every line for the product instead.
func (e *Engine) SetQuantity(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return e.Remove(productID)
	}
	for i := range e.lines {
		if e.lines[i].Product.ID == productID {
			e.lines[i].Quantity = quantity
			return e.persist()
		}
	}
	return nil
}

// Remove drops every line for the product id, across all size/color variants.
func (e *Engine) Remove(productID uuid.UUID) error {
	kept := e.lines[:0]
	removed := false
	for _, line := range e.lines {
		if line.Product.ID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	e.lines = kept
	if !removed {
		return nil
	}
	return e.persist()
}

// Clear empties the collection.
func (e *Engine) Clear() error {
	e.lines = nil
	return e.persist()
}

// Lines returns a copy of the current collection in insertion order.
func (e *Engine) Lines() []Line {
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// TotalItems sums the line quantities.
func (e *Engine) TotalItems() int {
	total := 0
	for _, line := range e.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums quantity times snapshot price across all lines.
func (e *Engine) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

func (e *Engine) persist() error {
	lines := e.lines
	if lines == nil {
		lines = []Line{}
	}
	if err := e.store.Save(lines); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
