package services

import (
	"net/http"
	"sync"

	"github.com/edura-app/edura-go/core"
)

// FakeSessionStore is a test-only fake implementing core.SessionStore.
// It records calls and exposes error fields for behavior injection.
type FakeSessionStore struct {
	mu       sync.RWMutex
	token    string
	user     *core.User
	setErr   error
	clearErr error

	SetCalls   int
	ClearCalls int
}

var _ core.SessionStore = (*FakeSessionStore)(nil)

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{}
}

func (f *FakeSessionStore) Set(token string, user *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.token = token
	f.user = user
	return nil
}

func (f *FakeSessionStore) Token() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.token
}

func (f *FakeSessionStore) User() *core.User {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.user
}

func (f *FakeSessionStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearCalls++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.token = ""
	f.user = nil
	return nil
}

// DoerFunc adapts a function to core.Doer, for injecting canned transport
// behavior without a listener.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
