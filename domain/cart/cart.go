// Package cart provides the client-session cart aggregate.
//
// A Cart is owned by a single session. It is loaded at session start and
// persisted at session end via MarshalJSON/UnmarshalJSON; there is no
// process-wide cart state.
package cart

import (
	"encoding/json"
	"errors"

	"github.com/tiffinbox/tiffinbox/domain/billing"
)

// Entry is one cart line (value type).
type Entry struct {
	ItemID      string  `json:"itemId"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	IsAlcoholic bool    `json:"isAlcoholic"`
}

// Cart accumulates catalog items for a single session. Not safe for
// concurrent use; each session owns its cart.
type Cart struct {
	entries []Entry
}

// ErrNotInCart is returned when mutating an item the cart does not hold.
var ErrNotInCart = errors.New("item not in cart")

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add inserts an item or bumps its quantity when already present.
func (c *Cart) Add(e Entry) {
	if e.Quantity < 1 {
		e.Quantity = 1
	}
	for i := range c.entries {
		if c.entries[i].ItemID == e.ItemID {
			c.entries[i].Quantity += e.Quantity
			return
		}
	}
	c.entries = append(c.entries, e)
}

// SetQuantity sets an item's quantity; a quantity below 1 removes it.
func (c *Cart) SetQuantity(itemID string, quantity int) error {
	for i := range c.entries {
		if c.entries[i].ItemID == itemID {
			if quantity < 1 {
				c.entries = append(c.entries[:i], c.entries[i+1:]...)
				return nil
			}
			c.entries[i].Quantity = quantity
			return nil
		}
	}
	return ErrNotInCart
}

// Remove deletes an item from the cart.
func (c *Cart) Remove(itemID string) error {
	return c.SetQuantity(itemID, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.entries = nil
}

// Len returns the number of distinct items.
func (c *Cart) Len() int { return len(c.entries) }

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool { return len(c.entries) == 0 }

// Entries returns a copy of the cart lines in insertion order.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// LineItems converts the cart to billing line items in insertion order.
func (c *Cart) LineItems() []billing.LineItem {
	items := make([]billing.LineItem, 0, len(c.entries))
	for _, e := range c.entries {
		items = append(items, billing.LineItem{
			ItemID:      e.ItemID,
			Name:        e.Name,
			UnitPrice:   e.UnitPrice,
			Quantity:    e.Quantity,
			IsAlcoholic: e.IsAlcoholic,
		})
	}
	return items
}

// MarshalJSON serializes the cart for session persistence.
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.entries)
}

// UnmarshalJSON restores a cart persisted by MarshalJSON. Entries with a
// quantity below 1 are dropped rather than rejected, so a stale snapshot
// never blocks session start.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	c.entries = nil
	for _, e := range entries {
		if e.Quantity >= 1 {
			c.entries = append(c.entries, e)
		}
	}
	return nil
}
