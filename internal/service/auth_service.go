package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/teekoob/admin-service/internal/auth"
	"github.com/teekoob/admin-service/internal/config"
	"github.com/teekoob/admin-service/internal/domain"
	"github.com/teekoob/admin-service/internal/events"
	"github.com/teekoob/admin-service/internal/repository"
	"github.com/teekoob/admin-service/pkg/util"
)

// AuthService coordinates login, refresh, logout and password flows.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	revoked    auth.RevocationList
	dispatcher events.Dispatcher
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	RevocationList    auth.RevocationList
	Dispatcher        events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLHours),
		revoked:    deps.RevocationList,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// Login authenticates by email and password and issues a credential.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Identity, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.publish(ctx, events.EventLoginFailed, "", email, "unknown email")
			return domain.Identity{}, "", time.Time{}, util.NewUnauthorized(util.CodeBadCredentials, "invalid email or password")
		}
		return domain.Identity{}, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.publish(ctx, events.EventLoginFailed, user.ID, email, "wrong password")
		return domain.Identity{}, "", time.Time{}, util.NewUnauthorized(util.CodeBadCredentials, "invalid email or password")
	}
	if !user.IsActive {
		s.publish(ctx, events.EventLoginFailed, user.ID, email, "deactivated")
		return domain.Identity{}, "", time.Time{}, util.NewUnauthorized(util.CodeUserDeactivated, "account deactivated")
	}

	token, expiresAt, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return domain.Identity{}, "", time.Time{}, err
	}

	s.publish(ctx, events.EventLoginSucceeded, user.ID, email, "")
	return user.Identity().Downgraded(time.Now()), token, expiresAt, nil
}

// Refresh exchanges a valid-or-just-expired credential for a fresh
// one. The subject must still resolve to an active account, and the
// old credential is revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, oldToken string) (string, time.Time, error) {
	claims, err := s.tokenMgr.VerifyExpired(oldToken)
	if err != nil {
		return "", time.Time{}, util.NewUnauthorized(util.CodeTokenInvalid, "invalid token")
	}

	identity, err := s.users.FindActiveIdentity(ctx, claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return "", time.Time{}, util.NewUnauthorized(util.CodeUserNotFound, "user not found")
		case errors.Is(err, domain.ErrUserDeactivated):
			return "", time.Time{}, util.NewUnauthorized(util.CodeUserDeactivated, "account deactivated")
		default:
			return "", time.Time{}, err
		}
	}

	if s.revoked != nil && claims.ExpiresAt != nil {
		// Best effort; a failed revocation does not block the refresh.
		_ = s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	}

	token, expiresAt, err := s.tokenMgr.Issue(identity.ID)
	if err != nil {
		return "", time.Time{}, err
	}

	s.publish(ctx, events.EventTokenRefreshed, identity.ID, identity.Email, "")
	return token, expiresAt, nil
}

// Logout revokes the credential's JTI until its natural expiry. The
// scheme is stateless, so this is best effort and never fails the
// caller: an unparseable token simply has nothing to revoke.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokenMgr.VerifyExpired(token)
	if err != nil {
		return nil
	}
	if s.revoked != nil && claims.ExpiresAt != nil {
		_ = s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	}
	s.publish(ctx, events.EventLoggedOut, claims.Subject, "", "")
	return nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return util.NewUnauthorized(util.CodeBadCredentials, "invalid email or password")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// RequestPasswordReset persists a reset token for the account's email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return util.NewValidationError("reset token expired or used", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID, email, detail string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Email:     email,
		Timestamp: time.Now(),
		Detail:    detail,
	})
}
