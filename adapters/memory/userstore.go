// Package memory provides in-memory implementations of storage ports,
// used as fakes in tests.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/tiffinbox/tiffinbox/domain/identity"
	"github.com/tiffinbox/tiffinbox/ports"
)

// ErrNotFound is returned when an entity is not found.
var ErrNotFound = errors.New("not found")

// UserStore is an in-memory implementation of ports.UserStore.
type UserStore struct {
	mu       sync.RWMutex
	users    map[string]ports.User // by ID
	byEmail  map[string]string     // email -> ID
	byMobile map[string]string     // mobile -> ID
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:    make(map[string]ports.User),
		byEmail:  make(map[string]string),
		byMobile: make(map[string]string),
	}
}

// Get retrieves a user by ID.
func (s *UserStore) Get(ctx context.Context, id string) (ports.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return ports.User{}, ErrNotFound
	}
	return u, nil
}

// GetByIdentifier retrieves a user by email or mobile.
func (s *UserStore) GetByIdentifier(ctx context.Context, ident identity.Identifier) (ports.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := s.byEmail
	if ident.Kind() == identity.KindMobile {
		index = s.byMobile
	}
	id, ok := index[ident.Value()]
	if !ok {
		return ports.User{}, ErrNotFound
	}
	return s.users[id], nil
}

// Create stores a new user.
func (s *UserStore) Create(ctx context.Context, u ports.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Email != "" {
		if _, exists := s.byEmail[u.Email]; exists {
			return errors.New("email already exists")
		}
	}
	if u.Mobile != "" {
		if _, exists := s.byMobile[u.Mobile]; exists {
			return errors.New("mobile already exists")
		}
	}

	s.users[u.ID] = u
	if u.Email != "" {
		s.byEmail[u.Email] = u.ID
	}
	if u.Mobile != "" {
		s.byMobile[u.Mobile] = u.ID
	}
	return nil
}

// Update modifies an existing user.
func (s *UserStore) Update(ctx context.Context, u ports.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.users[u.ID]
	if !ok {
		return ErrNotFound
	}

	if old.Email != u.Email {
		delete(s.byEmail, old.Email)
		if u.Email != "" {
			s.byEmail[u.Email] = u.ID
		}
	}
	if old.Mobile != u.Mobile {
		delete(s.byMobile, old.Mobile)
		if u.Mobile != "" {
			s.byMobile[u.Mobile] = u.ID
		}
	}

	s.users[u.ID] = u
	return nil
}

// Ensure interface compliance.
var _ ports.UserStore = (*UserStore)(nil)
