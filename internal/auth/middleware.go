package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/teekoob/admin-service/internal/domain"
	"github.com/teekoob/admin-service/pkg/util"
)

const identityKey = "auth_identity"

// IdentityLookup resolves a subject ID to a live identity. The
// Postgres user repository satisfies this; tests supply fakes.
type IdentityLookup interface {
	FindActiveIdentity(ctx context.Context, id string) (domain.Identity, error)
}

// SessionMiddleware validates bearer credentials and attaches the
// resolved identity to the request.
type SessionMiddleware struct {
	tokens  *TokenManager
	users   IdentityLookup
	revoked RevocationList
	logger  *zap.Logger
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, users IdentityLookup, revoked RevocationList, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, users: users, revoked: revoked, logger: logger}
}

// Handle enforces authentication for protected routes. Every auth-kind
// failure is a 401 with a machine-readable code; only infrastructure
// faults surface as 500.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return util.NewUnauthorized(util.CodeTokenMissing, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewUnauthorized(util.CodeTokenMissing, "malformed authorization header")
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return util.NewUnauthorized(util.CodeTokenExpired, "token expired")
		}
		return util.NewUnauthorized(util.CodeTokenInvalid, "invalid token")
	}

	if m.revoked != nil {
		revoked, err := m.revoked.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			// Fail open: an unreachable revocation list must not take
			// every authenticated request down with it.
			m.logger.Warn("revocation check failed", zap.Error(err))
		} else if revoked {
			return util.NewUnauthorized(util.CodeTokenInvalid, "token revoked")
		}
	}

	identity, err := m.users.FindActiveIdentity(c.UserContext(), claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return util.NewUnauthorized(util.CodeUserNotFound, "user not found")
		case errors.Is(err, domain.ErrUserDeactivated):
			return util.NewUnauthorized(util.CodeUserDeactivated, "account deactivated")
		default:
			return util.MapError(err)
		}
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}
