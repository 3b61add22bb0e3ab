package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/teekoob/admin-service/internal/api/dto"
	"github.com/teekoob/admin-service/internal/auth"
	"github.com/teekoob/admin-service/internal/service"
	"github.com/teekoob/admin-service/pkg/util"
)

// AuthHandler exposes the credential lifecycle endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return util.NewValidationError("email and password required", nil)
	}

	identity, token, _, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{User: identity, Token: token})
}

// Me handles GET /auth/me. The session middleware has already resolved
// and re-verified the identity; this just echoes it.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return util.NewUnauthorized(util.CodeTokenMissing, "authentication required")
	}
	return c.JSON(dto.MeResponse{User: identity})
}

// Refresh handles POST /auth/refresh. The old credential rides in the
// Authorization header and may already be expired.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	old, ok := bearerToken(c)
	if !ok {
		return util.NewUnauthorized(util.CodeTokenMissing, "missing authorization header")
	}

	token, expiresAt, err := h.auth.Refresh(c.UserContext(), old)
	if err != nil {
		return err
	}
	return c.JSON(dto.RefreshResponse{Token: token, ExpiresAt: expiresAt})
}

// Logout handles POST /auth/logout. Best effort on the server side;
// clients do not wait on this to complete their local transition.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token, ok := bearerToken(c); ok {
		_ = h.auth.Logout(c.UserContext(), token)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return util.NewUnauthorized(util.CodeTokenMissing, "authentication required")
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return util.NewValidationError("current and new password required", nil)
	}

	if err := h.auth.ChangePassword(c.UserContext(), identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// RequestPasswordReset handles POST /auth/password/reset/request. The
// response does not reveal whether the email exists.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return util.NewValidationError("email required", nil)
	}

	_, _ = h.auth.RequestPasswordReset(c.UserContext(), req.Email)
	return c.JSON(fiber.Map{"status": "ok"})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return util.NewValidationError("token and new password required", nil)
	}

	if err := h.auth.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
