// Package identity provides account identifier and role value types.
//
// Accounts are identified by exactly one of an email address or a mobile
// number. That invariant is enforced structurally: an Identifier is a tagged
// union built through NewEmail/NewMobile, never a pair of optional fields.
package identity

import (
	"errors"
	"regexp"
	"strings"
)

// Role controls authorization.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Kind tags an Identifier.
type Kind string

const (
	KindEmail  Kind = "email"
	KindMobile Kind = "mobile"
)

var (
	// ErrMissing is returned when neither email nor mobile is supplied.
	ErrMissing = errors.New("email or mobile number is required")

	// ErrInvalidEmail is returned for malformed email addresses.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidMobile is returned for malformed mobile numbers.
	ErrInvalidMobile = errors.New("invalid mobile number")
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Indian mobile numbers: 10 digits, first digit 6-9.
	mobileRe = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// Identifier is a validated email-or-mobile tag (value type).
type Identifier struct {
	kind  Kind
	value string
}

// NewEmail builds an email identifier. The address is lowercased.
func NewEmail(email string) (Identifier, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return Identifier{}, ErrInvalidEmail
	}
	return Identifier{kind: KindEmail, value: email}, nil
}

// NewMobile builds a mobile identifier.
func NewMobile(mobile string) (Identifier, error) {
	mobile = strings.TrimSpace(mobile)
	if !mobileRe.MatchString(mobile) {
		return Identifier{}, ErrInvalidMobile
	}
	return Identifier{kind: KindMobile, value: mobile}, nil
}

// Parse builds an Identifier from request fields where at most one of
// email/mobile is expected. Email wins when both are present, matching the
// login behavior existing clients rely on.
func Parse(email, mobile string) (Identifier, error) {
	if email != "" {
		return NewEmail(email)
	}
	if mobile != "" {
		return NewMobile(mobile)
	}
	return Identifier{}, ErrMissing
}

// Kind returns the identifier's tag.
func (id Identifier) Kind() Kind { return id.kind }

// Value returns the normalized email or mobile string.
func (id Identifier) Value() string { return id.value }

// IsZero reports whether the identifier is unset.
func (id Identifier) IsZero() bool { return id.kind == "" }

// String implements fmt.Stringer.
func (id Identifier) String() string {
	return string(id.kind) + ":" + id.value
}
