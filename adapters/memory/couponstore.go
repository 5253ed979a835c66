package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tiffinbox/tiffinbox/domain/coupon"
	"github.com/tiffinbox/tiffinbox/ports"
)

// CouponStore is an in-memory implementation of ports.CouponStore.
type CouponStore struct {
	mu      sync.RWMutex
	coupons map[string]coupon.Coupon // by ID
	byCode  map[string]string        // normalized code -> ID
}

// NewCouponStore creates a new in-memory coupon store.
func NewCouponStore() *CouponStore {
	return &CouponStore{
		coupons: make(map[string]coupon.Coupon),
		byCode:  make(map[string]string),
	}
}

// Get retrieves a coupon by ID regardless of active state.
func (s *CouponStore) Get(ctx context.Context, id string) (coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.coupons[id]
	if !ok {
		return coupon.Coupon{}, coupon.ErrNotFound
	}
	return c, nil
}

// GetActiveByCode retrieves an active coupon by normalized code.
func (s *CouponStore) GetActiveByCode(ctx context.Context, code string) (coupon.Coupon, error) {
	c, err := s.GetByCode(ctx, code)
	if err != nil {
		return coupon.Coupon{}, err
	}
	if !c.IsActive {
		return coupon.Coupon{}, coupon.ErrNotFound
	}
	return c, nil
}

// GetByCode retrieves a coupon by normalized code regardless of state.
func (s *CouponStore) GetByCode(ctx context.Context, code string) (coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[code]
	if !ok {
		return coupon.Coupon{}, coupon.ErrNotFound
	}
	return s.coupons[id], nil
}

// ListActive returns active coupons ascending by minimum order amount.
func (s *CouponStore) ListActive(ctx context.Context) ([]coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []coupon.Coupon
	for _, c := range s.coupons {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MinOrderAmount < out[j].MinOrderAmount
	})
	return out, nil
}

// ListAll returns every coupon, newest first.
func (s *CouponStore) ListAll(ctx context.Context) ([]coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]coupon.Coupon, 0, len(s.coupons))
	for _, c := range s.coupons {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Create stores a new coupon.
func (s *CouponStore) Create(ctx context.Context, c coupon.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byCode[c.Code]; exists {
		return coupon.ErrDuplicate
	}
	s.coupons[c.ID] = c
	s.byCode[c.Code] = c.ID
	return nil
}

// Update modifies an existing coupon.
func (s *CouponStore) Update(ctx context.Context, c coupon.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.coupons[c.ID]
	if !ok {
		return coupon.ErrNotFound
	}
	if old.Code != c.Code {
		delete(s.byCode, old.Code)
		s.byCode[c.Code] = c.ID
	}
	s.coupons[c.ID] = c
	return nil
}

// Delete removes a coupon.
func (s *CouponStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.coupons[id]
	if !ok {
		return coupon.ErrNotFound
	}
	delete(s.byCode, c.Code)
	delete(s.coupons, id)
	return nil
}

// Ensure interface compliance.
var _ ports.CouponStore = (*CouponStore)(nil)
