package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tiffinbox/tiffinbox/domain/identity"
	"github.com/tiffinbox/tiffinbox/ports"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var (
	// ErrUserExists is returned when signing up with an identifier that is
	// already registered.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned on login failure. Unknown
	// identifier and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordTooShort is returned when a password is below the minimum.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	// ErrWrongPassword is returned when the current password check fails.
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrIdentifierInUse is returned when a profile update would take an
	// email or mobile that belongs to another account.
	ErrIdentifierInUse = errors.New("identifier already in use")

	// ErrUserNotFound is returned when an account does not resolve.
	ErrUserNotFound = errors.New("user not found")
)

// AuthService manages accounts and credentials.
type AuthService struct {
	users  ports.UserStore
	hasher ports.Hasher
	clock  ports.Clock
	idgen  ports.IDGenerator
	logger zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(users ports.UserStore, hasher ports.Hasher, clock ports.Clock, idgen ports.IDGenerator, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		clock:  clock,
		idgen:  idgen,
		logger: logger,
	}
}

// Signup registers a new customer account identified by email or mobile.
func (s *AuthService) Signup(ctx context.Context, name string, ident identity.Identifier, password string) (ports.User, error) {
	if len(password) < MinPasswordLength {
		return ports.User{}, ErrPasswordTooShort
	}

	if _, err := s.users.GetByIdentifier(ctx, ident); err == nil {
		return ports.User{}, ErrUserExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return ports.User{}, err
	}

	u := ports.User{
		ID:           s.idgen.New(),
		Name:         name,
		PasswordHash: hash,
		Role:         identity.RoleCustomer,
		CreatedAt:    s.clock.Now(),
	}
	switch ident.Kind() {
	case identity.KindEmail:
		u.Email = ident.Value()
	case identity.KindMobile:
		u.Mobile = ident.Value()
	}

	if err := s.users.Create(ctx, u); err != nil {
		return ports.User{}, err
	}

	s.logger.Info().
		Str("user_id", u.ID).
		Str("identifier", ident.String()).
		Msg("user signed up")
	return u, nil
}

// Login verifies credentials and returns the account.
func (s *AuthService) Login(ctx context.Context, ident identity.Identifier, password string) (ports.User, error) {
	u, err := s.users.GetByIdentifier(ctx, ident)
	if err != nil {
		return ports.User{}, ErrInvalidCredentials
	}

	if !s.hasher.Compare(u.PasswordHash, password) {
		s.logger.Warn().Str("identifier", ident.String()).Msg("login failed")
		return ports.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// ProfileUpdate carries optional profile changes. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	Name   *string
	Email  *string
	Mobile *string
}

// UpdateProfile applies profile changes, refusing identifiers that belong
// to another account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (ports.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return ports.User{}, ErrUserNotFound
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil && *upd.Email != "" {
		ident, err := identity.NewEmail(*upd.Email)
		if err != nil {
			return ports.User{}, err
		}
		if other, err := s.users.GetByIdentifier(ctx, ident); err == nil && other.ID != userID {
			return ports.User{}, ErrIdentifierInUse
		}
		u.Email = ident.Value()
	}
	if upd.Mobile != nil && *upd.Mobile != "" {
		ident, err := identity.NewMobile(*upd.Mobile)
		if err != nil {
			return ports.User{}, err
		}
		if other, err := s.users.GetByIdentifier(ctx, ident); err == nil && other.ID != userID {
			return ports.User{}, ErrIdentifierInUse
		}
		u.Mobile = ident.Value()
	}

	if err := s.users.Update(ctx, u); err != nil {
		return ports.User{}, err
	}

	s.logger.Info().Str("user_id", u.ID).Msg("profile updated")
	return u, nil
}

// ChangePassword verifies the current password and sets a new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !s.hasher.Compare(u.PasswordHash, currentPassword) {
		return ErrWrongPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash

	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", u.ID).Msg("password changed")
	return nil
}
