// Package store defines persistence for the current OAuth token pair. The
// pair survives process restarts; everything else about a session is derived
// from it on demand.
package store

import (
	"context"
	"errors"
)

// Names of the two persisted values. Absence of either means "no session".
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// ErrNoSession is returned by Load when no token pair is persisted.
var ErrNoSession = errors.New("store: no persisted session")

// TokenPair is the access/refresh token pair as issued. The strings are
// opaque to the store.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenStore persists the current token pair. Implementations write the
// refresh token before the access token so that a reader can never observe a
// usable access token without its matching refresh token; an access token
// found without a refresh token is treated as corruption and cleared.
//
// Only the session manager writes to a TokenStore.
type TokenStore interface {
	Save(ctx context.Context, pair TokenPair) error
	Load(ctx context.Context) (TokenPair, error)
	Clear(ctx context.Context) error
}
