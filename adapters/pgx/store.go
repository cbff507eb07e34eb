// Package pgx provides a postgres-backed session store for server-side
// embedders of the client (bots, sync jobs) that act on behalf of a user
// and need the session to survive restarts and be shared across replicas.
// Sessions are keyed by a caller-chosen profile name.
package pgx

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edura-app/edura-go/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS edura_sessions (
	profile    TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	user_json  JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type Store struct {
	pool    *pgxpool.Pool
	profile string
}

var _ core.SessionStore = (*Store)(nil)

func New(pool *pgxpool.Pool, profile string) *Store {
	if profile == "" {
		profile = "default"
	}
	return &Store{pool: pool, profile: profile}
}

// Migrate creates the sessions table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// The core.SessionStore port carries no context; storage calls run under
// Background. Embedders needing timeouts should set them on the pool.

func (s *Store) Set(token string, user *core.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(context.Background(),
		`INSERT INTO edura_sessions (profile, token, user_json, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (profile)
		 DO UPDATE SET token = EXCLUDED.token, user_json = EXCLUDED.user_json, updated_at = now()`,
		s.profile, token, userJSON)
	return err
}

func (s *Store) Token() string {
	var token string
	err := s.pool.QueryRow(context.Background(),
		`SELECT token FROM edura_sessions WHERE profile = $1`,
		s.profile).Scan(&token)
	if err != nil {
		return ""
	}
	return token
}

func (s *Store) User() *core.User {
	var userJSON []byte
	err := s.pool.QueryRow(context.Background(),
		`SELECT user_json FROM edura_sessions WHERE profile = $1`,
		s.profile).Scan(&userJSON)
	if err != nil {
		return nil
	}
	var user core.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return nil
	}
	return &user
}

func (s *Store) Clear() error {
	// Deleting an absent row is a no-op, which keeps Clear idempotent.
	_, err := s.pool.Exec(context.Background(),
		`DELETE FROM edura_sessions WHERE profile = $1`,
		s.profile)
	return err
}
