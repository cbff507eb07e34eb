package core

import "sync"

// Session is a point-in-time snapshot of the stored auth state.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// MemoryStore is the default SessionStore: process-wide, mutex-guarded,
// gone when the process exits. Durable backends live under adapters/.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *User
}

var _ SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Set(token string, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	return nil
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}
