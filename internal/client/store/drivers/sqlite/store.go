// Package sqlite provides a TokenStore backed by a local SQLite file, giving
// the token pair durability across process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/voyago/traveldesk/internal/client/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the token database at path. WAL keeps
// concurrent readers from blocking the refresh writer; modernc.org/sqlite
// takes pragmas as _pragma=name(value) query parameters.
func New(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const upsertValue = `
INSERT INTO oauth_tokens (name, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// Save persists the pair. The refresh token row is written before the access
// token row; Load treats the inverse partial state as corruption, so a crash
// between the two writes degrades to "no session" instead of a mismatched
// pair.
func (s *Store) Save(ctx context.Context, pair store.TokenPair) error {
	now := time.Now().UTC()

	if _, err := s.db.ExecContext(ctx, upsertValue, store.KeyRefreshToken, pair.RefreshToken, now); err != nil {
		return fmt.Errorf("saving refresh token: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, upsertValue, store.KeyAccessToken, pair.AccessToken, now); err != nil {
		return fmt.Errorf("saving access token: %w", err)
	}

	return nil
}

// Load returns the persisted pair, or store.ErrNoSession when absent. An
// access token without its refresh token is cleared and reported as absent.
func (s *Store) Load(ctx context.Context) (store.TokenPair, error) {
	access, haveAccess, err := s.value(ctx, store.KeyAccessToken)
	if err != nil {
		return store.TokenPair{}, err
	}

	refresh, haveRefresh, err := s.value(ctx, store.KeyRefreshToken)
	if err != nil {
		return store.TokenPair{}, err
	}

	if haveAccess && !haveRefresh {
		_ = s.Clear(ctx)
		return store.TokenPair{}, store.ErrNoSession
	}

	if !haveAccess || !haveRefresh {
		return store.TokenPair{}, store.ErrNoSession
	}

	return store.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Clear removes both rows. Safe to call repeatedly.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM oauth_tokens WHERE name IN (?, ?)`,
		store.KeyAccessToken, store.KeyRefreshToken,
	)
	if err != nil {
		return fmt.Errorf("clearing tokens: %w", err)
	}
	return nil
}

func (s *Store) value(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM oauth_tokens WHERE name = ?`, name,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", name, err)
	}

	return value, true, nil
}
