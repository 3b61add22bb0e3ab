package adminclient

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Session drives the client auth state machine: startup revalidation
// with a single silent refresh, login, logout, and background
// revalidation. All transitions flow through the Store so observers
// see a consistent lifecycle.
type Session struct {
	api     AuthAPI
	store   *Store
	storage CredentialStorage
	logger  *zap.Logger

	mu      sync.Mutex
	pending *inflight
}

type inflight struct {
	done chan struct{}
	err  error
}

// NewSession wires the state machine. A nil logger is replaced with a
// no-op one.
func NewSession(api AuthAPI, storage CredentialStorage, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		api:     api,
		store:   NewStore(),
		storage: storage,
		logger:  logger,
	}
}

// Store exposes the observable auth state.
func (s *Session) Store() *Store {
	return s.store
}

// Start runs the startup transition: a persisted credential moves the
// machine into validating and through the who-am-I/refresh sequence;
// no credential means anonymous.
func (s *Session) Start(ctx context.Context) error {
	credential, err := s.storage.Load()
	if err != nil {
		return err
	}
	if credential == "" {
		s.store.toAnonymous()
		return nil
	}
	return s.runValidation(ctx, credential)
}

// Login submits credentials. Success persists the returned token and
// lands in authenticated; failure lands in rejected with any previous
// credential cleared.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.store.toValidating("")

	identity, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		_ = s.storage.Clear()
		s.store.toRejected(kindOf(err))
		return err
	}

	if err := s.storage.Save(token); err != nil {
		s.logger.Warn("persist credential failed", zap.Error(err))
	}
	s.store.toAuthenticated(identity, token)
	return nil
}

// Logout clears local state immediately and notifies the server in
// the background. Calling it while already anonymous is a no-op.
func (s *Session) Logout(ctx context.Context) error {
	snapshot := s.store.Snapshot()
	credential := snapshot.Credential
	if credential == "" {
		credential, _ = s.storage.Load()
	}

	_ = s.storage.Clear()
	s.store.toAnonymous()

	if credential != "" {
		// Fire and forget: server failure must not reverse the local
		// transition.
		go func() {
			notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultTimeout)
			defer cancel()
			if err := s.api.Logout(notifyCtx, credential); err != nil {
				s.logger.Debug("logout notify failed", zap.Error(err))
			}
		}()
	}
	return nil
}

// Revalidate re-runs the who-am-I check for the current credential.
// Concurrent callers share a single in-flight validation.
func (s *Session) Revalidate(ctx context.Context) error {
	snapshot := s.store.Snapshot()
	credential := snapshot.Credential
	if credential == "" {
		var err error
		credential, err = s.storage.Load()
		if err != nil {
			return err
		}
	}
	if credential == "" {
		s.store.toAnonymous()
		return nil
	}
	return s.runValidation(ctx, credential)
}

// runValidation deduplicates concurrent validations: only one network
// sequence runs at a time and later callers wait on its result.
func (s *Session) runValidation(ctx context.Context, credential string) error {
	s.mu.Lock()
	if s.pending != nil {
		p := s.pending
		s.mu.Unlock()
		<-p.done
		return p.err
	}
	p := &inflight{done: make(chan struct{})}
	s.pending = p
	s.mu.Unlock()

	err := s.validate(ctx, credential)

	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
	p.err = err
	close(p.done)
	return err
}

// validate performs who-am-I, with exactly one silent refresh-and-retry
// on an auth-kind rejection. A network fault is transient: it never
// clears the stored credential, and an already-authenticated session
// keeps its cached identity.
func (s *Session) validate(ctx context.Context, credential string) error {
	prior := s.store.Snapshot()
	s.store.toValidating(credential)

	identity, err := s.api.Me(ctx, credential)
	if err == nil {
		s.store.toAuthenticated(identity, credential)
		return nil
	}

	if recoverable(err) {
		s.restoreAfterTransient(prior)
		return err
	}

	// One silent refresh, then one retry.
	newToken, refreshErr := s.api.Refresh(ctx, credential)
	if refreshErr != nil {
		if recoverable(refreshErr) {
			s.restoreAfterTransient(prior)
			return refreshErr
		}
		return s.reject(refreshErr)
	}

	identity, retryErr := s.api.Me(ctx, newToken)
	if retryErr != nil {
		return s.reject(retryErr)
	}

	if err := s.storage.Save(newToken); err != nil {
		s.logger.Warn("persist refreshed credential failed", zap.Error(err))
	}
	s.store.toAuthenticated(identity, newToken)
	return nil
}

func (s *Session) reject(err error) error {
	_ = s.storage.Clear()
	s.store.toRejected(kindOf(err))
	return err
}

// restoreAfterTransient puts the machine back where a network fault
// found it. The stored credential is left untouched so a later
// validation can retry.
func (s *Session) restoreAfterTransient(prior State) {
	if prior.Status == StatusAuthenticated && prior.Identity != nil {
		s.store.toAuthenticated(*prior.Identity, prior.Credential)
		return
	}
	s.store.toAnonymous()
}

func kindOf(err error) ErrorKind {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return KindNetwork
}

func recoverable(err error) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Recoverable()
	}
	// Plain transport errors behave like network faults.
	return true
}
