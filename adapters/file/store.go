// Package file provides a durable, optionally encrypted session store. It
// is the desktop equivalent of the web client's localStorage pair
// (edura_token / edura_user): one small file holding both, written and
// removed as a unit.
package file

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/edura-app/edura-go/core"
)

const (
	saltSize = 16

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// magic marks encrypted session files so a plaintext file is never fed to
// the cipher.
var magic = []byte("EDURA1")

type sessionFile struct {
	Token string     `json:"edura_token"`
	User  *core.User `json:"edura_user,omitempty"`
}

// Store persists the session at path. With a non-empty secret the file is
// encrypted at rest (scrypt-derived key, chacha20poly1305); otherwise it is
// plain JSON with 0600 permissions.
//
// Reads never fail: a missing, corrupted, or undecryptable file degrades to
// "no session".
type Store struct {
	mu     sync.Mutex
	path   string
	secret []byte
}

var _ core.SessionStore = (*Store)(nil)

func New(path, secret string) (*Store, error) {
	if path == "" {
		return nil, errors.New("session file path is required")
	}
	return &Store{path: path, secret: []byte(secret)}, nil
}

func (s *Store) Set(token string, user *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plain, err := json.Marshal(sessionFile{Token: token, User: user})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	data := plain
	if len(s.secret) > 0 {
		data, err = s.seal(plain)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot leave a torn session
	// that half-authenticates.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (s *Store) Token() string {
	session := s.read()
	if session == nil {
		return ""
	}
	return session.Token
}

func (s *Store) User() *core.User {
	session := s.read()
	if session == nil {
		return nil
	}
	return session.User
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *Store) read() *sessionFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	if len(s.secret) > 0 {
		data, err = s.open(data)
		if err != nil {
			return nil
		}
	}

	var session sessionFile
	if err := json.Unmarshal(data, &session); err != nil {
		return nil
	}
	return &session
}

// seal produces magic || salt || nonce || ciphertext.
func (s *Store) seal(plain []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := s.cipher(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, len(magic)+len(salt)+len(nonce)+len(plain)+aead.Overhead())
	out = append(out, magic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plain, nil), nil
}

func (s *Store) open(data []byte) ([]byte, error) {
	if len(data) < len(magic)+saltSize {
		return nil, errors.New("session file too short")
	}
	if string(data[:len(magic)]) != string(magic) {
		return nil, errors.New("not an encrypted session file")
	}
	data = data[len(magic):]

	salt := data[:saltSize]
	aead, err := s.cipher(salt)
	if err != nil {
		return nil, err
	}

	rest := data[saltSize:]
	if len(rest) < aead.NonceSize() {
		return nil, errors.New("session file truncated")
	}
	nonce, ciphertext := rest[:aead.NonceSize()], rest[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}

func (s *Store) cipher(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(s.secret, salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return chacha20poly1305.New(key)
}
