package auth

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRevocationList(t *testing.T) {
	list := NewMemoryRevocationList()
	ctx := context.Background()

	if revoked, _ := list.IsRevoked(ctx, "unknown"); revoked {
		t.Error("unknown JTI reported revoked")
	}

	if err := list.Revoke(ctx, "jti-a", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if revoked, _ := list.IsRevoked(ctx, "jti-a"); !revoked {
		t.Error("jti-a should be revoked")
	}

	// An entry past its token's natural expiry ages out.
	if err := list.Revoke(ctx, "jti-b", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if revoked, _ := list.IsRevoked(ctx, "jti-b"); revoked {
		t.Error("aged-out entry still reported revoked")
	}
}
