// Package menu provides catalog value types and validation.
package menu

import (
	"errors"
	"time"
)

// DefaultImageURL is used when a category is created without an image.
const DefaultImageURL = "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=400"

// Category groups food items (value type). Names are unique.
type Category struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
}

// Item is a catalog food item (value type).
type Item struct {
	ID          string
	Name        string
	Description string
	Price       float64
	CategoryID  string
	ImageURL    string
	IsAvailable bool
	IsAlcoholic bool // alcoholic items are VAT-class and age-gated at the UI
	CreatedAt   time.Time
}

var (
	// ErrNotFound is returned when a category or item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateCategory is returned when a category name already exists.
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrCategoryNotEmpty is returned when deleting a category that still
	// has items referencing it.
	ErrCategoryNotEmpty = errors.New("cannot delete category with existing items")
)

// ValidateCategory checks required category fields.
func ValidateCategory(c Category) error {
	if c.Name == "" || c.Description == "" {
		return errors.New("name and description are required")
	}
	return nil
}

// ValidateItem checks required item fields.
func ValidateItem(it Item) error {
	switch {
	case it.Name == "":
		return errors.New("name is required")
	case it.Description == "":
		return errors.New("description is required")
	case it.Price < 0:
		return errors.New("price must not be negative")
	case it.CategoryID == "":
		return errors.New("category is required")
	}
	return nil
}
