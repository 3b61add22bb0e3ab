package auth

import (
	"context"
	"sync"
	"time"
)

// RevocationList records credentials invalidated before their natural
// expiry. Logout is the only writer; entries age out with the token.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryRevocationList keeps revocations in-process. Used in tests and
// when Redis is not configured.
type MemoryRevocationList struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryRevocationList builds an empty list.
func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{entries: make(map[string]time.Time)}
}

// Revoke marks the JTI revoked until the given time.
func (l *MemoryRevocationList) Revoke(_ context.Context, jti string, until time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[jti] = until
	return nil
}

// IsRevoked reports whether the JTI is on the list and not yet aged out.
func (l *MemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	until, ok := l.entries[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(l.entries, jti)
		return false, nil
	}
	return true, nil
}
