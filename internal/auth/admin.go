package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teekoob/admin-service/pkg/util"
)

// RequireAdmin gates admin-only routes. It composes after the session
// middleware: a missing identity is a 401, a present non-admin
// identity is a 403, and nothing beyond the status distinguishes the
// two cases.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return util.NewUnauthorized(util.CodeTokenMissing, "authentication required")
		}
		if !identity.IsAdmin {
			return util.NewForbidden(util.CodeAdminRequired, "admin privileges required")
		}
		return c.Next()
	}
}
