// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"github.com/tiffinbox/tiffinbox/domain/coupon"
	"github.com/tiffinbox/tiffinbox/domain/identity"
	"github.com/tiffinbox/tiffinbox/domain/menu"
	"github.com/tiffinbox/tiffinbox/domain/order"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// Hasher provides password hashing.
type Hasher interface {
	// Hash generates a hash from a plaintext value.
	Hash(plaintext string) ([]byte, error)

	// Compare checks if plaintext matches hash.
	Compare(hash []byte, plaintext string) bool
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// User represents a customer or admin account. Email and Mobile are the
// stored projections of the account's identifier; at least one is set.
type User struct {
	ID           string
	Name         string
	Email        string // "" when the account was created with a mobile number
	Mobile       string // "" when the account was created with an email
	PasswordHash []byte
	Role         identity.Role
	CreatedAt    time.Time
}

// UserStore persists accounts. Uniqueness of email and mobile is enforced at
// the storage boundary; concurrent signups with the same identifier resolve
// to first writer wins.
type UserStore interface {
	// Get retrieves a user by ID.
	Get(ctx context.Context, id string) (User, error)

	// GetByIdentifier retrieves a user by email or mobile.
	GetByIdentifier(ctx context.Context, id identity.Identifier) (User, error)

	// Create stores a new user.
	Create(ctx context.Context, u User) error

	// Update modifies an existing user.
	Update(ctx context.Context, u User) error
}

// CategoryStore persists menu categories.
type CategoryStore interface {
	// Get retrieves a category by ID.
	Get(ctx context.Context, id string) (menu.Category, error)

	// List returns all categories, oldest first.
	List(ctx context.Context) ([]menu.Category, error)

	// Create stores a new category. Fails on duplicate name.
	Create(ctx context.Context, c menu.Category) error

	// Update modifies an existing category.
	Update(ctx context.Context, c menu.Category) error

	// Delete removes a category.
	Delete(ctx context.Context, id string) error
}

// ItemStore persists catalog food items.
type ItemStore interface {
	// Get retrieves an item by ID.
	Get(ctx context.Context, id string) (menu.Item, error)

	// List returns all items, oldest first.
	List(ctx context.Context) ([]menu.Item, error)

	// ListByCategory returns items belonging to a category.
	ListByCategory(ctx context.Context, categoryID string) ([]menu.Item, error)

	// CountByCategory returns the number of items referencing a category.
	CountByCategory(ctx context.Context, categoryID string) (int, error)

	// Create stores a new item.
	Create(ctx context.Context, it menu.Item) error

	// Update modifies an existing item.
	Update(ctx context.Context, it menu.Item) error

	// Delete removes an item.
	Delete(ctx context.Context, id string) error
}

// CouponStore persists coupons. Code uniqueness (case-insensitive, codes
// stored uppercase) is enforced at the storage boundary.
type CouponStore interface {
	// Get retrieves a coupon by ID regardless of active state.
	Get(ctx context.Context, id string) (coupon.Coupon, error)

	// GetActiveByCode retrieves an active coupon by normalized code.
	// Inactive coupons are treated as not found.
	GetActiveByCode(ctx context.Context, code string) (coupon.Coupon, error)

	// GetByCode retrieves a coupon by normalized code regardless of state.
	GetByCode(ctx context.Context, code string) (coupon.Coupon, error)

	// ListActive returns active coupons ascending by minimum order amount.
	ListActive(ctx context.Context) ([]coupon.Coupon, error)

	// ListAll returns every coupon, newest first.
	ListAll(ctx context.Context) ([]coupon.Coupon, error)

	// Create stores a new coupon.
	Create(ctx context.Context, c coupon.Coupon) error

	// Update modifies an existing coupon.
	Update(ctx context.Context, c coupon.Coupon) error

	// Delete removes a coupon.
	Delete(ctx context.Context, id string) error
}

// OrderStore persists finalized orders.
type OrderStore interface {
	// Create stores a new order with its item snapshot.
	Create(ctx context.Context, o order.Order) error

	// ListByUser returns a user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]order.Order, error)

	// ListAll returns all orders, newest first.
	ListAll(ctx context.Context) ([]order.Order, error)
}
