package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/teekoob/admin-service/internal/domain"
	"github.com/teekoob/admin-service/pkg/util"
)

type fakeLookup struct {
	identities map[string]domain.Identity
	errs       map[string]error
}

func (f *fakeLookup) FindActiveIdentity(_ context.Context, id string) (domain.Identity, error) {
	if err, ok := f.errs[id]; ok {
		return domain.Identity{}, err
	}
	if identity, ok := f.identities[id]; ok {
		return identity, nil
	}
	return domain.Identity{}, domain.ErrUserNotFound
}

func newTestApp(m *SessionMiddleware, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := util.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})

	handlers := append([]fiber.Handler{m.Handle}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return util.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"id": identity.ID})
	})
	app.Get("/protected", handlers...)
	return app
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope.Error.Code
}

func TestSessionMiddleware(t *testing.T) {
	tm := NewTokenManager(testSecret, 24)
	lookup := &fakeLookup{
		identities: map[string]domain.Identity{
			"active-user": {ID: "active-user", Email: "a@x.com", IsActive: true},
		},
		errs: map[string]error{
			"gone-user":     domain.ErrUserNotFound,
			"disabled-user": domain.ErrUserDeactivated,
		},
	}
	revoked := NewMemoryRevocationList()
	middleware := NewSessionMiddleware(tm, lookup, revoked, zap.NewNop())
	app := newTestApp(middleware)

	activeToken, _, err := tm.Issue("active-user")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	goneToken, _, _ := tm.Issue("gone-user")
	disabledToken, _, _ := tm.Issue("disabled-user")
	expiredToken := signClaims(t, testSecret, time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))

	revokedToken, revokedExp, _ := tm.Issue("active-user")
	revokedClaims, _ := tm.Verify(revokedToken)
	if err := revoked.Revoke(context.Background(), revokedClaims.ID, revokedExp); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantCode   string
	}{
		{"no header", "", http.StatusUnauthorized, util.CodeTokenMissing},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, util.CodeTokenMissing},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized, util.CodeTokenInvalid},
		{"expired token", "Bearer " + expiredToken, http.StatusUnauthorized, util.CodeTokenExpired},
		{"revoked token", "Bearer " + revokedToken, http.StatusUnauthorized, util.CodeTokenInvalid},
		{"unknown user", "Bearer " + goneToken, http.StatusUnauthorized, util.CodeUserNotFound},
		{"deactivated user", "Bearer " + disabledToken, http.StatusUnauthorized, util.CodeUserDeactivated},
		{"valid", "Bearer " + activeToken, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantCode != "" {
				if code := errorCode(t, resp); code != tt.wantCode {
					t.Errorf("code = %q, want %q", code, tt.wantCode)
				}
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tm := NewTokenManager(testSecret, 24)
	lookup := &fakeLookup{
		identities: map[string]domain.Identity{
			"admin-user":   {ID: "admin-user", IsActive: true, IsAdmin: true},
			"regular-user": {ID: "regular-user", IsActive: true, IsAdmin: false},
		},
	}
	middleware := NewSessionMiddleware(tm, lookup, nil, zap.NewNop())
	app := newTestApp(middleware, RequireAdmin())

	adminToken, _, _ := tm.Issue("admin-user")
	regularToken, _, _ := tm.Issue("regular-user")

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantCode   string
	}{
		{"admin passes", adminToken, http.StatusOK, ""},
		{"non-admin forbidden", regularToken, http.StatusForbidden, util.CodeAdminRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantCode != "" {
				if code := errorCode(t, resp); code != tt.wantCode {
					t.Errorf("code = %q, want %q", code, tt.wantCode)
				}
			}
		})
	}
}

func TestRequireAdminWithoutSession(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := util.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code},
			})
		},
	})
	app.Get("/admin-only", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin-only", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when no identity is attached", resp.StatusCode)
	}
}
