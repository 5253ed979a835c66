package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tiffinbox/tiffinbox/domain/menu"
	"github.com/tiffinbox/tiffinbox/ports"
)

// CategoryStore is an in-memory implementation of ports.CategoryStore.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[string]menu.Category // by ID
	byName     map[string]string        // name -> ID
}

// NewCategoryStore creates a new in-memory category store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		categories: make(map[string]menu.Category),
		byName:     make(map[string]string),
	}
}

// Get retrieves a category by ID.
func (s *CategoryStore) Get(ctx context.Context, id string) (menu.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return menu.Category{}, menu.ErrNotFound
	}
	return c, nil
}

// List returns all categories, oldest first.
func (s *CategoryStore) List(ctx context.Context) ([]menu.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]menu.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Create stores a new category.
func (s *CategoryStore) Create(ctx context.Context, c menu.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[c.Name]; exists {
		return menu.ErrDuplicateCategory
	}
	s.categories[c.ID] = c
	s.byName[c.Name] = c.ID
	return nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(ctx context.Context, c menu.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.categories[c.ID]
	if !ok {
		return menu.ErrNotFound
	}
	if old.Name != c.Name {
		delete(s.byName, old.Name)
		s.byName[c.Name] = c.ID
	}
	s.categories[c.ID] = c
	return nil
}

// Delete removes a category.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return menu.ErrNotFound
	}
	delete(s.byName, c.Name)
	delete(s.categories, id)
	return nil
}

// Ensure interface compliance.
var _ ports.CategoryStore = (*CategoryStore)(nil)

// ItemStore is an in-memory implementation of ports.ItemStore.
type ItemStore struct {
	mu    sync.RWMutex
	items map[string]menu.Item // by ID
}

// NewItemStore creates a new in-memory item store.
func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[string]menu.Item)}
}

// Get retrieves an item by ID.
func (s *ItemStore) Get(ctx context.Context, id string) (menu.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return menu.Item{}, menu.ErrNotFound
	}
	return it, nil
}

// List returns all items, oldest first.
func (s *ItemStore) List(ctx context.Context) ([]menu.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(menu.Item) bool { return true }), nil
}

// ListByCategory returns items belonging to a category.
func (s *ItemStore) ListByCategory(ctx context.Context, categoryID string) ([]menu.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(it menu.Item) bool { return it.CategoryID == categoryID }), nil
}

// CountByCategory returns the number of items referencing a category.
func (s *ItemStore) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, it := range s.items {
		if it.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// Create stores a new item.
func (s *ItemStore) Create(ctx context.Context, it menu.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
	return nil
}

// Update modifies an existing item.
func (s *ItemStore) Update(ctx context.Context, it menu.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[it.ID]; !ok {
		return menu.ErrNotFound
	}
	s.items[it.ID] = it
	return nil
}

// Delete removes an item.
func (s *ItemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return menu.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *ItemStore) sorted(keep func(menu.Item) bool) []menu.Item {
	var out []menu.Item
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Ensure interface compliance.
var _ ports.ItemStore = (*ItemStore)(nil)
