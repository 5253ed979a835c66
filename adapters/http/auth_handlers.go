package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/tiffinbox/tiffinbox/app"
	"github.com/tiffinbox/tiffinbox/domain/identity"
	"github.com/tiffinbox/tiffinbox/ports"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type userResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	Role   string `json:"role"`
}

type authResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

func toUserResponse(u ports.User) userResponse {
	return userResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Mobile: u.Mobile,
		Role:   string(u.Role),
	}
}

// Signup registers a new customer account.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ident, err := identity.Parse(req.Email, req.Mobile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.auth.Signup(r.Context(), req.Name, ident, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserExists):
			writeError(w, http.StatusConflict, "User already exists with this email or mobile")
		case errors.Is(err, app.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("signup failed")
			writeError(w, http.StatusInternalServerError, "Signup failed")
		}
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(u.ID, u.Role)
	if err != nil {
		h.logger.Error().Err(err).Msg("token generation failed")
		writeError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Message:   "Signup successful",
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(u),
	})
}

// Login verifies credentials and issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ident, err := identity.Parse(req.Email, req.Mobile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.auth.Login(r.Context(), ident, req.Password)
	if err != nil {
		h.countAuthFailure("bad_credentials")
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(u.ID, u.Role)
	if err != nil {
		h.logger.Error().Err(err).Msg("token generation failed")
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(u),
	})
}

type profileRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Mobile *string `json:"mobile"`
}

// UpdateProfile changes the caller's name, email, or mobile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r.Context())

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.auth.UpdateProfile(r.Context(), claims.UserID, app.ProfileUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Mobile: req.Mobile,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, app.ErrIdentifierInUse):
			writeError(w, http.StatusConflict, "Email or mobile already in use")
		case errors.Is(err, identity.ErrInvalidEmail), errors.Is(err, identity.ErrInvalidMobile):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("profile update failed")
			writeError(w, http.StatusInternalServerError, "Profile update failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated",
		"user":    toUserResponse(u),
	})
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword replaces the caller's password after verifying the
// current one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r.Context())

	var req passwordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.auth.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, app.ErrWrongPassword):
			writeError(w, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, app.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("password change failed")
			writeError(w, http.StatusInternalServerError, "Password change failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed"})
}
