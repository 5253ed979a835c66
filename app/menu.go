package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tiffinbox/tiffinbox/domain/menu"
	"github.com/tiffinbox/tiffinbox/ports"
)

// MenuService manages the menu catalog.
type MenuService struct {
	categories ports.CategoryStore
	items      ports.ItemStore
	clock      ports.Clock
	idgen      ports.IDGenerator
	logger     zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(categories ports.CategoryStore, items ports.ItemStore, clock ports.Clock, idgen ports.IDGenerator, logger zerolog.Logger) *MenuService {
	return &MenuService{
		categories: categories,
		items:      items,
		clock:      clock,
		idgen:      idgen,
		logger:     logger,
	}
}

// ListCategories returns all categories, oldest first.
func (s *MenuService) ListCategories(ctx context.Context) ([]menu.Category, error) {
	return s.categories.List(ctx)
}

// ListItems returns catalog items, optionally filtered by category.
func (s *MenuService) ListItems(ctx context.Context, categoryID string) ([]menu.Item, error) {
	if categoryID != "" {
		return s.items.ListByCategory(ctx, categoryID)
	}
	return s.items.List(ctx)
}

// CreateCategory stores a new category. An omitted image URL gets the
// default placeholder.
func (s *MenuService) CreateCategory(ctx context.Context, name, description, imageURL string) (menu.Category, error) {
	if imageURL == "" {
		imageURL = menu.DefaultImageURL
	}
	c := menu.Category{
		ID:          s.idgen.New(),
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   s.clock.Now(),
	}
	if err := menu.ValidateCategory(c); err != nil {
		return menu.Category{}, err
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return menu.Category{}, err
	}

	s.logger.Info().Str("category_id", c.ID).Str("name", c.Name).Msg("category created")
	return c, nil
}

// UpdateCategory modifies an existing category.
func (s *MenuService) UpdateCategory(ctx context.Context, id, name, description, imageURL string) (menu.Category, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return menu.Category{}, err
	}

	c.Name = name
	c.Description = description
	if imageURL != "" {
		c.ImageURL = imageURL
	}
	if err := menu.ValidateCategory(c); err != nil {
		return menu.Category{}, err
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return menu.Category{}, err
	}
	return c, nil
}

// DeleteCategory removes a category. Fails with menu.ErrCategoryNotEmpty
// while items still reference it.
func (s *MenuService) DeleteCategory(ctx context.Context, id string) error {
	n, err := s.items.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return menu.ErrCategoryNotEmpty
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

// ItemParams carries the writable fields of a catalog item.
type ItemParams struct {
	Name        string
	Description string
	Price       float64
	CategoryID  string
	ImageURL    string
	IsAvailable bool
	IsAlcoholic bool
}

// CreateItem stores a new catalog item. The referenced category must exist.
func (s *MenuService) CreateItem(ctx context.Context, p ItemParams) (menu.Item, error) {
	it := menu.Item{
		ID:          s.idgen.New(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
		IsAvailable: p.IsAvailable,
		IsAlcoholic: p.IsAlcoholic,
		CreatedAt:   s.clock.Now(),
	}
	if err := menu.ValidateItem(it); err != nil {
		return menu.Item{}, err
	}
	if _, err := s.categories.Get(ctx, it.CategoryID); err != nil {
		return menu.Item{}, err
	}
	if err := s.items.Create(ctx, it); err != nil {
		return menu.Item{}, err
	}

	s.logger.Info().Str("item_id", it.ID).Str("name", it.Name).Msg("item created")
	return it, nil
}

// UpdateItem modifies an existing catalog item.
func (s *MenuService) UpdateItem(ctx context.Context, id string, p ItemParams) (menu.Item, error) {
	it, err := s.items.Get(ctx, id)
	if err != nil {
		return menu.Item{}, err
	}

	it.Name = p.Name
	it.Description = p.Description
	it.Price = p.Price
	it.CategoryID = p.CategoryID
	it.ImageURL = p.ImageURL
	it.IsAvailable = p.IsAvailable
	it.IsAlcoholic = p.IsAlcoholic
	if err := menu.ValidateItem(it); err != nil {
		return menu.Item{}, err
	}
	if err := s.items.Update(ctx, it); err != nil {
		return menu.Item{}, err
	}
	return it, nil
}

// DeleteItem removes a catalog item.
func (s *MenuService) DeleteItem(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("item_id", id).Msg("item deleted")
	return nil
}
