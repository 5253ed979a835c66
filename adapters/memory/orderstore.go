package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tiffinbox/tiffinbox/domain/order"
	"github.com/tiffinbox/tiffinbox/ports"
)

// OrderStore is an in-memory implementation of ports.OrderStore.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]order.Order // by ID
}

// NewOrderStore creates a new in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]order.Order)}
}

// Create stores a new order.
func (s *OrderStore) Create(ctx context.Context, o order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
	return nil
}

// ListByUser returns a user's orders, newest first.
func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(o order.Order) bool { return o.UserID == userID }), nil
}

// ListAll returns all orders, newest first.
func (s *OrderStore) ListAll(ctx context.Context) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(order.Order) bool { return true }), nil
}

func (s *OrderStore) sorted(keep func(order.Order) bool) []order.Order {
	var out []order.Order
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Ensure interface compliance.
var _ ports.OrderStore = (*OrderStore)(nil)
