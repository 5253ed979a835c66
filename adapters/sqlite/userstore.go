package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tiffinbox/tiffinbox/domain/identity"
	"github.com/tiffinbox/tiffinbox/ports"
)

// ErrNotFound is returned when an entity is not found.
var ErrNotFound = errors.New("not found")

// UserStore implements ports.UserStore with SQLite.
type UserStore struct {
	db *DB
}

// NewUserStore creates a new SQLite user store.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// Get retrieves a user by ID.
func (s *UserStore) Get(ctx context.Context, id string) (ports.User, error) {
	return s.scanOne(s.db.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(email, ''), COALESCE(mobile, ''), password_hash, role, created_at
		FROM users WHERE id = ?
	`, id))
}

// GetByIdentifier retrieves a user by email or mobile.
func (s *UserStore) GetByIdentifier(ctx context.Context, ident identity.Identifier) (ports.User, error) {
	column := "email"
	if ident.Kind() == identity.KindMobile {
		column = "mobile"
	}
	return s.scanOne(s.db.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(email, ''), COALESCE(mobile, ''), password_hash, role, created_at
		FROM users WHERE `+column+` = ?
	`, ident.Value()))
}

// Create stores a new user. Empty email/mobile are stored as NULL so the
// unique indexes only apply to present identifiers.
func (s *UserStore) Create(ctx context.Context, u ports.User) error {
	_, err := s.db.DB.ExecContext(ctx, `
		INSERT INTO users (id, name, email, mobile, password_hash, role, created_at)
		VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.Mobile, u.PasswordHash, string(u.Role), u.CreatedAt)
	return err
}

// Update modifies an existing user.
func (s *UserStore) Update(ctx context.Context, u ports.User) error {
	res, err := s.db.DB.ExecContext(ctx, `
		UPDATE users SET name = ?, email = NULLIF(?, ''), mobile = NULLIF(?, ''),
						 password_hash = ?, role = ?
		WHERE id = ?
	`, u.Name, u.Email, u.Mobile, u.PasswordHash, string(u.Role), u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserStore) scanOne(row *sql.Row) (ports.User, error) {
	var u ports.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Mobile, &u.PasswordHash, &role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return ports.User{}, ErrNotFound
	}
	u.Role = identity.Role(role)
	return u, err
}

// Ensure interface compliance.
var _ ports.UserStore = (*UserStore)(nil)
