package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tiffinbox/tiffinbox/adapters/clock"
	"github.com/tiffinbox/tiffinbox/adapters/hasher"
	"github.com/tiffinbox/tiffinbox/adapters/idgen"
	"github.com/tiffinbox/tiffinbox/adapters/memory"
	"github.com/tiffinbox/tiffinbox/app"
	"github.com/tiffinbox/tiffinbox/domain/identity"
)

func newAuthService(t *testing.T) (*app.AuthService, *memory.UserStore) {
	t.Helper()
	store := memory.NewUserStore()
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := app.NewAuthService(store, hasher.Fake{}, clk, idgen.NewSequential("usr-"), zerolog.Nop())
	return svc, store
}

func mustEmail(t *testing.T, s string) identity.Identifier {
	t.Helper()
	id, err := identity.NewEmail(s)
	if err != nil {
		t.Fatalf("bad email %q: %v", s, err)
	}
	return id
}

func mustMobile(t *testing.T, s string) identity.Identifier {
	t.Helper()
	id, err := identity.NewMobile(s)
	if err != nil {
		t.Fatalf("bad mobile %q: %v", s, err)
	}
	return id
}

func TestSignup_WithEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	u, err := svc.Signup(context.Background(), "John Doe", mustEmail(t, "john@gmail.com"), "john123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.Email != "john@gmail.com" {
		t.Errorf("email = %q", u.Email)
	}
	if u.Mobile != "" {
		t.Errorf("mobile should be empty, got %q", u.Mobile)
	}
	if u.Role != identity.RoleCustomer {
		t.Errorf("role = %q, want customer", u.Role)
	}
	if u.Name != "John Doe" {
		t.Errorf("name = %q", u.Name)
	}
}

func TestSignup_WithMobile(t *testing.T) {
	svc, _ := newAuthService(t)

	u, err := svc.Signup(context.Background(), "Ravi Kumar", mustMobile(t, "9876543211"), "ravi123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.Mobile != "9876543211" {
		t.Errorf("mobile = %q", u.Mobile)
	}
	if u.Email != "" {
		t.Errorf("email should be empty, got %q", u.Email)
	}
}

func TestSignup_ShortPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), "X", mustEmail(t, "x@example.com"), "12345")
	if !errors.Is(err, app.ErrPasswordTooShort) {
		t.Errorf("want ErrPasswordTooShort, got %v", err)
	}
}

func TestSignup_Duplicate(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "John", mustEmail(t, "john@gmail.com"), "john123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Signup(ctx, "John Again", mustEmail(t, "john@gmail.com"), "other123")
	if !errors.Is(err, app.ErrUserExists) {
		t.Errorf("want ErrUserExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "John", mustEmail(t, "john@gmail.com"), "john123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := svc.Login(ctx, mustEmail(t, "john@gmail.com"), "john123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != created.ID {
		t.Errorf("logged in as %q, want %q", u.ID, created.ID)
	}
}

func TestLogin_FailuresIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "John", mustEmail(t, "john@gmail.com"), "john123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, mustEmail(t, "john@gmail.com"), "nope123")
	_, unknownUser := svc.Login(ctx, mustEmail(t, "ghost@gmail.com"), "whatever")

	if !errors.Is(wrongPassword, app.ErrInvalidCredentials) {
		t.Errorf("wrong password: want ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, app.ErrInvalidCredentials) {
		t.Errorf("unknown user: want ErrInvalidCredentials, got %v", unknownUser)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, "John", mustEmail(t, "john@gmail.com"), "john123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newName := "John D."
	newMobile := "9876543210"
	updated, err := svc.UpdateProfile(ctx, u.ID, app.ProfileUpdate{Name: &newName, Mobile: &newMobile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Name != "John D." {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Mobile != "9876543210" {
		t.Errorf("mobile = %q", updated.Mobile)
	}
	if updated.Email != "john@gmail.com" {
		t.Errorf("email should be unchanged, got %q", updated.Email)
	}
}

func TestUpdateProfile_IdentifierTaken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "John", mustEmail(t, "john@gmail.com"), "john123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other, err := svc.Signup(ctx, "Priya", mustEmail(t, "priya@gmail.com"), "priya123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	taken := "john@gmail.com"
	_, err = svc.UpdateProfile(ctx, other.ID, app.ProfileUpdate{Email: &taken})
	if !errors.Is(err, app.ErrIdentifierInUse) {
		t.Errorf("want ErrIdentifierInUse, got %v", err)
	}
}

func TestUpdateProfile_InvalidEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, "John", mustEmail(t, "john@gmail.com"), "john123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := "not-an-email"
	_, err = svc.UpdateProfile(ctx, u.ID, app.ProfileUpdate{Email: &bad})
	if !errors.Is(err, identity.ErrInvalidEmail) {
		t.Errorf("want ErrInvalidEmail, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, "John", mustEmail(t, "john@gmail.com"), "john123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.ChangePassword(ctx, u.ID, "john123", "newpass456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Login(ctx, mustEmail(t, "john@gmail.com"), "john123"); err == nil {
		t.Error("old password should no longer work")
	}
	if _, err := svc.Login(ctx, mustEmail(t, "john@gmail.com"), "newpass456"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, "John", mustEmail(t, "john@gmail.com"), "john123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = svc.ChangePassword(ctx, u.ID, "wrong", "newpass456")
	if !errors.Is(err, app.ErrWrongPassword) {
		t.Errorf("want ErrWrongPassword, got %v", err)
	}
}

func TestChangePassword_TooShort(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, "John", mustEmail(t, "john@gmail.com"), "john123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = svc.ChangePassword(ctx, u.ID, "john123", "short")
	if !errors.Is(err, app.ErrPasswordTooShort) {
		t.Errorf("want ErrPasswordTooShort, got %v", err)
	}
}
