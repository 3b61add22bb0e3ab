package dto

import (
	"time"

	"github.com/teekoob/admin-service/internal/domain"
)

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returned on successful login.
type LoginResponse struct {
	User  domain.Identity `json:"user"`
	Token string          `json:"token"`
}

// MeResponse returned by GET /auth/me.
type MeResponse struct {
	User domain.Identity `json:"user"`
}

// RefreshResponse returned by POST /auth/refresh.
type RefreshResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PasswordChangeRequest payload for POST /auth/password/change.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// PasswordResetRequest payload for POST /auth/password/reset/request.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm payload for POST /auth/password/reset/confirm.
type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
