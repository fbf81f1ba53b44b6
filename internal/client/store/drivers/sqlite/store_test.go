package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/voyago/traveldesk/internal/client/store"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "tokens.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())

	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	pair := store.TokenPair{AccessToken: "at-1", RefreshToken: "rt-1"}
	require.NoError(t, s.Save(ctx, pair))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, pair, got)
}

func TestSaveOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, store.TokenPair{AccessToken: "at-1", RefreshToken: "rt-1"}))
	require.NoError(t, s.Save(ctx, store.TokenPair{AccessToken: "at-2", RefreshToken: "rt-2"}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, store.TokenPair{AccessToken: "at-2", RefreshToken: "rt-2"}, got)
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, store.ErrNoSession)
}

func TestClearIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, store.TokenPair{AccessToken: "at", RefreshToken: "rt"}))
	require.NoError(t, s.Clear(ctx))

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, store.ErrNoSession)

	require.NoError(t, s.Clear(ctx))
}

func TestOrphanAccessTokenIsCleared(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	// Simulate a crash that left only the access token row behind
	_, err := s.db.ExecContext(ctx, upsertValue, store.KeyAccessToken, "orphan", time.Now().UTC())
	require.NoError(t, err)

	_, err = s.Load(ctx)
	require.ErrorIs(t, err, store.ErrNoSession)

	// The store healed itself: the orphan row is gone
	_, have, err := s.value(ctx, store.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, have)
}

func TestOpensInWALMode(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	var mode string
	require.NoError(t, s.db.QueryRowContext(context.Background(), `PRAGMA journal_mode`).Scan(&mode))
	require.Equal(t, "wal", mode)
}

func TestPing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
}
