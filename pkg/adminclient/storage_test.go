package adminclient

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credential")
	storage := NewFileStorageAt(path)

	t.Run("missing file loads empty", func(t *testing.T) {
		credential, err := storage.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if credential != "" {
			t.Errorf("credential = %q, want empty", credential)
		}
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		if err := storage.Save("token-abc"); err != nil {
			t.Fatalf("Save: %v", err)
		}
		credential, err := storage.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if credential != "token-abc" {
			t.Errorf("credential = %q, want token-abc", credential)
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("Stat: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0o600 {
				t.Errorf("perm = %o, want 600", perm)
			}
		}
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		if err := storage.Clear(); err != nil {
			t.Fatalf("Clear: %v", err)
		}
		if err := storage.Clear(); err != nil {
			t.Fatalf("second Clear: %v", err)
		}
		credential, _ := storage.Load()
		if credential != "" {
			t.Errorf("credential = %q after clear", credential)
		}
	})
}

func TestStoreSubscribe(t *testing.T) {
	store := NewStore()

	var seen []Status
	cancel := store.Subscribe(func(state State) {
		seen = append(seen, state.Status)
	})

	store.toValidating("t")
	store.toAuthenticated(adminIdentity(), "t")
	cancel()
	store.toAnonymous()

	want := []Status{StatusAnonymous, StatusValidating, StatusAuthenticated}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}
