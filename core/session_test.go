package core

import (
	"sync"
	"testing"
)

// Requirement: token and user are stored together and cleared together;
// Clear is idempotent.
func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()

	if store.Token() != "" {
		t.Errorf("fresh store Token() = %q, want empty", store.Token())
	}
	if store.User() != nil {
		t.Errorf("fresh store User() = %+v, want nil", store.User())
	}

	if err := store.Set("abc123", &User{Username: "bob"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if store.Token() != "abc123" {
		t.Errorf("Token() = %q, want abc123", store.Token())
	}
	if user := store.User(); user == nil || user.Username != "bob" {
		t.Errorf("User() = %+v, want bob", user)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.Token() != "" || store.User() != nil {
		t.Error("Clear() did not remove both entries")
	}

	// Clearing an already-empty store is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

// Requirement: User returns a copy, so callers cannot mutate the stored
// snapshot.
func TestMemoryStoreUserIsCopied(t *testing.T) {
	store := NewMemoryStore()
	store.Set("tok", &User{Username: "bob"})

	first := store.User()
	first.Username = "mallory"

	if second := store.User(); second.Username != "bob" {
		t.Errorf("stored user mutated through the returned copy: %q", second.Username)
	}
}

// Requirement: the store tolerates concurrent Set/Clear/read - the 401
// handler may clear it from under in-flight calls.
func TestMemoryStoreConcurrency(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			store.Set("tok", &User{Username: "bob"})
		}()
		go func() {
			defer wg.Done()
			store.Clear()
		}()
		go func() {
			defer wg.Done()
			_ = store.Token()
			_ = store.User()
		}()
	}
	wg.Wait()
}
