package sqlite

import (
	"context"
	"database/sql"

	"github.com/tiffinbox/tiffinbox/domain/menu"
	"github.com/tiffinbox/tiffinbox/ports"
)

// CategoryStore implements ports.CategoryStore with SQLite.
type CategoryStore struct {
	db *DB
}

// NewCategoryStore creates a new SQLite category store.
func NewCategoryStore(db *DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// Get retrieves a category by ID.
func (s *CategoryStore) Get(ctx context.Context, id string) (menu.Category, error) {
	var c menu.Category
	err := s.db.DB.QueryRowContext(ctx, `
		SELECT id, name, description, image_url, created_at
		FROM categories WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return menu.Category{}, menu.ErrNotFound
	}
	return c, err
}

// List returns all categories, oldest first.
func (s *CategoryStore) List(ctx context.Context) ([]menu.Category, error) {
	rows, err := s.db.DB.QueryContext(ctx, `
		SELECT id, name, description, image_url, created_at
		FROM categories ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []menu.Category
	for rows.Next() {
		var c menu.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Create stores a new category.
func (s *CategoryStore) Create(ctx context.Context, c menu.Category) error {
	_, err := s.db.DB.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, image_url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Description, c.ImageURL, c.CreatedAt)
	return err
}

// Update modifies an existing category.
func (s *CategoryStore) Update(ctx context.Context, c menu.Category) error {
	res, err := s.db.DB.ExecContext(ctx, `
		UPDATE categories SET name = ?, description = ?, image_url = ?
		WHERE id = ?
	`, c.Name, c.Description, c.ImageURL, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return menu.ErrNotFound
	}
	return nil
}

// Delete removes a category.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return menu.ErrNotFound
	}
	return nil
}

// Ensure interface compliance.
var _ ports.CategoryStore = (*CategoryStore)(nil)

// ItemStore implements ports.ItemStore with SQLite.
type ItemStore struct {
	db *DB
}

// NewItemStore creates a new SQLite item store.
func NewItemStore(db *DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = "id, name, description, price, category_id, image_url, is_available, is_alcoholic, created_at"

// Get retrieves an item by ID.
func (s *ItemStore) Get(ctx context.Context, id string) (menu.Item, error) {
	var it menu.Item
	err := s.db.DB.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", id,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.CategoryID,
		&it.ImageURL, &it.IsAvailable, &it.IsAlcoholic, &it.CreatedAt)
	if err == sql.ErrNoRows {
		return menu.Item{}, menu.ErrNotFound
	}
	return it, err
}

// List returns all items, oldest first.
func (s *ItemStore) List(ctx context.Context) ([]menu.Item, error) {
	return s.list(ctx, "SELECT "+itemColumns+" FROM items ORDER BY created_at ASC")
}

// ListByCategory returns items belonging to a category.
func (s *ItemStore) ListByCategory(ctx context.Context, categoryID string) ([]menu.Item, error) {
	return s.list(ctx,
		"SELECT "+itemColumns+" FROM items WHERE category_id = ? ORDER BY created_at ASC", categoryID)
}

// CountByCategory returns the number of items referencing a category.
func (s *ItemStore) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := s.db.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM items WHERE category_id = ?", categoryID).Scan(&n)
	return n, err
}

// Create stores a new item.
func (s *ItemStore) Create(ctx context.Context, it menu.Item) error {
	_, err := s.db.DB.ExecContext(ctx, `
		INSERT INTO items (id, name, description, price, category_id, image_url,
						   is_available, is_alcoholic, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, it.ID, it.Name, it.Description, it.Price, it.CategoryID, it.ImageURL,
		it.IsAvailable, it.IsAlcoholic, it.CreatedAt)
	return err
}

// Update modifies an existing item.
func (s *ItemStore) Update(ctx context.Context, it menu.Item) error {
	res, err := s.db.DB.ExecContext(ctx, `
		UPDATE items SET name = ?, description = ?, price = ?, category_id = ?,
						 image_url = ?, is_available = ?, is_alcoholic = ?
		WHERE id = ?
	`, it.Name, it.Description, it.Price, it.CategoryID, it.ImageURL,
		it.IsAvailable, it.IsAlcoholic, it.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return menu.ErrNotFound
	}
	return nil
}

// Delete removes an item.
func (s *ItemStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.DB.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return menu.ErrNotFound
	}
	return nil
}

func (s *ItemStore) list(ctx context.Context, query string, args ...interface{}) ([]menu.Item, error) {
	rows, err := s.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []menu.Item
	for rows.Next() {
		var it menu.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.CategoryID,
			&it.ImageURL, &it.IsAvailable, &it.IsAlcoholic, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Ensure interface compliance.
var _ ports.ItemStore = (*ItemStore)(nil)
