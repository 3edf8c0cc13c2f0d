package clientstate

import "github.com/arbrands/storefront-backend/internal/cart"

// CartStore adapts the key-value store to the cart engine's persistence port,
// keeping the whole line collection under the cart key.
type CartStore struct {
	store *Store
}

// NewCartStore wraps a store for cart persistence.
func NewCartStore(store *Store) *CartStore {
	return &CartStore{store: store}
}

// Load returns the persisted collection. Absent or unreadable state comes
// back as nil so the engine starts empty.
func (c *CartStore) Load() ([]cart.Line, error) {
	var lines []cart.Line
	ok, err := c.store.GetJSON(KeyCart, &lines)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return lines, nil
}

// Save replaces the persisted collection.
func (c *CartStore) Save(lines []cart.Line) error {
	return c.store.PutJSON(KeyCart, lines)
}
