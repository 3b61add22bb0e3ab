package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeAPI struct {
	mu          sync.Mutex
	meCalls     int
	loginFn     func(email, password string) (Identity, string, error)
	meFn        func(token string) (Identity, error)
	refreshFn   func(token string) (string, error)
	logoutCalls int
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (Identity, string, error) {
	if f.loginFn == nil {
		return Identity{}, "", &AuthError{Kind: KindBadCredentials}
	}
	return f.loginFn(email, password)
}

func (f *fakeAPI) Me(_ context.Context, token string) (Identity, error) {
	f.mu.Lock()
	f.meCalls++
	f.mu.Unlock()
	if f.meFn == nil {
		return Identity{}, &AuthError{Kind: KindTokenInvalid}
	}
	return f.meFn(token)
}

func (f *fakeAPI) Refresh(_ context.Context, token string) (string, error) {
	if f.refreshFn == nil {
		return "", &AuthError{Kind: KindTokenInvalid}
	}
	return f.refreshFn(token)
}

func (f *fakeAPI) Logout(_ context.Context, _ string) error {
	f.mu.Lock()
	f.logoutCalls++
	f.mu.Unlock()
	return nil
}

func adminIdentity() Identity {
	return Identity{ID: "u1", Email: "admin@x.com", IsActive: true, IsAdmin: true}
}

func TestStartWithoutCredential(t *testing.T) {
	session := NewSession(&fakeAPI{}, NewMemoryStorage(), nil)

	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if status := session.Store().Snapshot().Status; status != StatusAnonymous {
		t.Errorf("status = %q, want anonymous", status)
	}
}

func TestLoginAdminRendersProtected(t *testing.T) {
	// Scenario A: valid admin login ends authenticated and the guard
	// renders the protected subtree.
	api := &fakeAPI{
		loginFn: func(email, password string) (Identity, string, error) {
			if email == "admin@x.com" && password == "correct" {
				return adminIdentity(), "token-1", nil
			}
			return Identity{}, "", &AuthError{Kind: KindBadCredentials}
		},
	}
	storage := NewMemoryStorage()
	session := NewSession(api, storage, nil)

	if err := session.Login(context.Background(), "admin@x.com", "correct"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	state := session.Store().Snapshot()
	if state.Status != StatusAuthenticated {
		t.Fatalf("status = %q, want authenticated", state.Status)
	}
	if stored, _ := storage.Load(); stored != "token-1" {
		t.Errorf("stored credential = %q, want token-1", stored)
	}
	if decision := Decide(state); decision.Action != ActionRenderProtected {
		t.Errorf("guard action = %v, want render protected", decision.Action)
	}
}

func TestLoginNonAdminRedirectsWithoutError(t *testing.T) {
	// Scenario B: a valid but non-admin account authenticates
	// transiently, then the guard clears the credential and redirects
	// with no error message.
	api := &fakeAPI{
		loginFn: func(_, _ string) (Identity, string, error) {
			return Identity{ID: "u2", Email: "reader@x.com", IsActive: true, IsAdmin: false}, "token-2", nil
		},
	}
	storage := NewMemoryStorage()
	session := NewSession(api, storage, nil)

	if err := session.Login(context.Background(), "reader@x.com", "correct"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if status := session.Store().Snapshot().Status; status != StatusAuthenticated {
		t.Fatalf("status = %q, want authenticated before the guard runs", status)
	}

	decision := session.ApplyGuard()
	if decision.Action != ActionRedirectLogin {
		t.Errorf("guard action = %v, want redirect", decision.Action)
	}
	if decision.Message != "" {
		t.Errorf("message = %q, want none for non-admin redirect", decision.Message)
	}
	if stored, _ := storage.Load(); stored != "" {
		t.Errorf("credential should be cleared, got %q", stored)
	}
	if status := session.Store().Snapshot().Status; status != StatusAnonymous {
		t.Errorf("status = %q, want anonymous after guard", status)
	}
}

func TestStartExpiredRefreshRetrySucceeds(t *testing.T) {
	// Scenario C: expired credential, successful refresh, successful
	// retry; no operator interaction.
	api := &fakeAPI{
		meFn: func(token string) (Identity, error) {
			if token == "fresh-token" {
				return adminIdentity(), nil
			}
			return Identity{}, &AuthError{Kind: KindTokenExpired}
		},
		refreshFn: func(token string) (string, error) {
			if token != "stale-token" {
				return "", &AuthError{Kind: KindTokenInvalid}
			}
			return "fresh-token", nil
		},
	}
	storage := NewMemoryStorage()
	_ = storage.Save("stale-token")
	session := NewSession(api, storage, nil)

	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	state := session.Store().Snapshot()
	if state.Status != StatusAuthenticated {
		t.Fatalf("status = %q, want authenticated", state.Status)
	}
	if state.Credential != "fresh-token" {
		t.Errorf("credential = %q, want fresh-token", state.Credential)
	}
	if stored, _ := storage.Load(); stored != "fresh-token" {
		t.Errorf("stored credential = %q, want fresh-token", stored)
	}
}

func TestStartRefreshFailureRejects(t *testing.T) {
	// Scenario D: refresh itself fails with an auth-kind error; the
	// machine lands in rejected and the credential is gone.
	api := &fakeAPI{
		meFn: func(string) (Identity, error) {
			return Identity{}, &AuthError{Kind: KindTokenExpired}
		},
		refreshFn: func(string) (string, error) {
			return "", &AuthError{Kind: KindUserDeactivated}
		},
	}
	storage := NewMemoryStorage()
	_ = storage.Save("stale-token")
	session := NewSession(api, storage, nil)

	err := session.Start(context.Background())
	if err == nil {
		t.Fatal("Start should surface the rejection")
	}

	state := session.Store().Snapshot()
	if state.Status != StatusRejected {
		t.Fatalf("status = %q, want rejected", state.Status)
	}
	if state.LastKind != KindUserDeactivated {
		t.Errorf("last kind = %q, want %q", state.LastKind, KindUserDeactivated)
	}
	if stored, _ := storage.Load(); stored != "" {
		t.Errorf("credential should be cleared, got %q", stored)
	}
}

func TestRevalidateNetworkErrorKeepsSession(t *testing.T) {
	// Scenario E: a network fault during background revalidation never
	// logs the operator out or destroys the cached credential.
	var failing bool
	api := &fakeAPI{
		meFn: func(string) (Identity, error) {
			if failing {
				return Identity{}, networkError(errors.New("timeout"))
			}
			return adminIdentity(), nil
		},
	}
	storage := NewMemoryStorage()
	_ = storage.Save("token-1")
	session := NewSession(api, storage, nil)

	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	failing = true
	err := session.Revalidate(context.Background())
	if err == nil {
		t.Fatal("Revalidate should report the network error")
	}
	var authErr *AuthError
	if !errors.As(err, &authErr) || authErr.Kind != KindNetwork {
		t.Fatalf("error = %v, want network kind", err)
	}

	state := session.Store().Snapshot()
	if state.Status != StatusAuthenticated {
		t.Errorf("status = %q, want authenticated after transient failure", state.Status)
	}
	if state.Identity == nil || state.Identity.ID != "u1" {
		t.Errorf("cached identity lost: %+v", state.Identity)
	}
	if stored, _ := storage.Load(); stored != "token-1" {
		t.Errorf("stored credential = %q, want token-1 preserved", stored)
	}
}

func TestRevalidateServerFaultKeepsSession(t *testing.T) {
	// A 500 from the server during background revalidation is an
	// infrastructure fault, not an auth rejection: the session and the
	// stored credential both survive.
	var failing atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, _ *http.Request) {
		if failing.Load() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"user": adminIdentity()})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	storage := NewMemoryStorage()
	_ = storage.Save("token-1")
	session := NewSession(NewAPIClient(server.URL), storage, nil)

	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	failing.Store(true)
	err := session.Revalidate(context.Background())
	if err == nil {
		t.Fatal("Revalidate should report the fault")
	}
	var authErr *AuthError
	if !errors.As(err, &authErr) || authErr.Kind != KindNetwork {
		t.Fatalf("error = %v, want network kind for a server fault", err)
	}

	state := session.Store().Snapshot()
	if state.Status != StatusAuthenticated {
		t.Errorf("status = %q, want authenticated after server fault", state.Status)
	}
	if stored, _ := storage.Load(); stored != "token-1" {
		t.Errorf("stored credential = %q, want token-1 preserved", stored)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	api := &fakeAPI{}
	session := NewSession(api, NewMemoryStorage(), nil)

	for i := 0; i < 3; i++ {
		if err := session.Logout(context.Background()); err != nil {
			t.Fatalf("Logout #%d: %v", i+1, err)
		}
		if status := session.Store().Snapshot().Status; status != StatusAnonymous {
			t.Fatalf("status = %q, want anonymous", status)
		}
	}
}

func TestLogoutImmediateDespiteServer(t *testing.T) {
	api := &fakeAPI{
		loginFn: func(_, _ string) (Identity, string, error) {
			return adminIdentity(), "token-1", nil
		},
	}
	storage := NewMemoryStorage()
	session := NewSession(api, storage, nil)

	if err := session.Login(context.Background(), "admin@x.com", "correct"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := session.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	// Local transition completes without waiting on the server call.
	if status := session.Store().Snapshot().Status; status != StatusAnonymous {
		t.Errorf("status = %q, want anonymous immediately", status)
	}
	if stored, _ := storage.Load(); stored != "" {
		t.Errorf("credential should be cleared, got %q", stored)
	}
}

func TestConcurrentRevalidationShared(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{}
	api.meFn = func(string) (Identity, error) {
		<-release
		return adminIdentity(), nil
	}
	storage := NewMemoryStorage()
	_ = storage.Save("token-1")
	session := NewSession(api, storage, nil)

	const callers = 4
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = session.Revalidate(context.Background())
		}(i)
	}

	// Let the goroutines pile up on the single in-flight validation.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("caller %d: %v", i, err)
		}
	}

	api.mu.Lock()
	calls := api.meCalls
	api.mu.Unlock()
	if calls != 1 {
		t.Errorf("who-am-I called %d times, want 1 shared call", calls)
	}
	if status := session.Store().Snapshot().Status; status != StatusAuthenticated {
		t.Errorf("status = %q, want authenticated", status)
	}
}

func TestLoginFailureClearsCredential(t *testing.T) {
	api := &fakeAPI{
		loginFn: func(_, _ string) (Identity, string, error) {
			return Identity{}, "", &AuthError{Kind: KindBadCredentials, Message: "invalid email or password"}
		},
	}
	storage := NewMemoryStorage()
	_ = storage.Save("previous-token")
	session := NewSession(api, storage, nil)

	err := session.Login(context.Background(), "admin@x.com", "wrong")
	if err == nil {
		t.Fatal("Login should fail")
	}

	state := session.Store().Snapshot()
	if state.Status != StatusRejected {
		t.Errorf("status = %q, want rejected", state.Status)
	}
	if state.LastKind != KindBadCredentials {
		t.Errorf("last kind = %q, want bad credentials", state.LastKind)
	}
	if stored, _ := storage.Load(); stored != "" {
		t.Errorf("previous credential should be cleared, got %q", stored)
	}
}
