package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/voyago/traveldesk/internal/client/store"
	"github.com/voyago/traveldesk/pkg/jwtx"
	"github.com/voyago/traveldesk/pkg/oidc"

	"golang.org/x/sync/singleflight"
)

// Role names recognised by IsAdmin. The legacy backend issued the
// Portuguese role name, so both are honoured.
const (
	RoleAdmin         = "admin"
	RoleAdministrador = "administrador"
)

// DefaultRefreshGrace is how long before expiry a token is refreshed.
const DefaultRefreshGrace = 30 * time.Second

// TokenIssuer is the slice of the issuer client the manager needs.
type TokenIssuer interface {
	PasswordGrant(ctx context.Context, username, password string) (*oidc.TokenResponse, error)
	RefreshGrant(ctx context.Context, refreshToken string) (*oidc.TokenResponse, error)
	Revoke(ctx context.Context, refreshToken string) error
}

// Manager orchestrates the session lifecycle. All mutation of the token
// store goes through it; other components only ever read derived state.
type Manager struct {
	issuer TokenIssuer
	tokens store.TokenStore
	logger *slog.Logger
	clock  func() time.Time
	grace  time.Duration

	mu     sync.RWMutex
	state  State
	pair   store.TokenPair
	claims *jwtx.Claims

	// epoch moves forward on logout and on terminal refresh failure. An
	// in-flight refresh that settles under a stale epoch discards its
	// result instead of resurrecting a cleared store.
	epoch uint64

	refresh singleflight.Group
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock injects a time source. Tests use this to control expiry.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithRefreshGrace sets how long before expiry a token counts as stale.
func WithRefreshGrace(grace time.Duration) Option {
	return func(m *Manager) { m.grace = grace }
}

// WithLogger injects the logger used for best-effort failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// New creates a Manager in the Anonymous state.
func New(issuer TokenIssuer, tokens store.TokenStore, opts ...Option) *Manager {
	m := &Manager{
		issuer: issuer,
		tokens: tokens,
		logger: slog.Default(),
		clock:  time.Now,
		grace:  DefaultRefreshGrace,
		state:  StateAnonymous,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Initialize adopts a persisted session, if any. A decodable, unexpired
// access token is adopted without any network traffic. An expired one gets a
// single eager refresh; if the issuer rejects it the store is cleared and
// the manager stays Anonymous. An undecodable token is treated as absent.
func (m *Manager) Initialize(ctx context.Context) error {
	pair, err := m.tokens.Load(ctx)
	if errors.Is(err, store.ErrNoSession) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading persisted session: %w", err)
	}

	claims, derr := jwtx.Decode(pair.AccessToken)
	if derr != nil {
		m.logger.Warn("discarding undecodable persisted access token", "error", derr)
		if cerr := m.tokens.Clear(ctx); cerr != nil {
			m.logger.Warn("failed to clear token store", "error", cerr)
		}
		return nil
	}

	m.mu.Lock()
	m.pair = pair
	m.claims = claims
	m.state = StateAuthenticated
	m.mu.Unlock()

	if !claims.IsExpiredAt(m.clock()) {
		return nil
	}

	if _, err := m.GetValidAccessToken(ctx); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return nil
		}
		// Issuer unreachable at startup: the pair may still be refreshable
		// once the network returns, so keep it and retry on demand.
		m.logger.Warn("eager session refresh failed", "error", err)
	}

	return nil
}

// Login exchanges credentials for a token pair and adopts it. On failure an
// existing session is left exactly as it was, both in memory and in the
// store, so a mistyped re-login does not destroy a working session.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.mu.Lock()
	m.state = StateAuthenticating
	m.mu.Unlock()

	resp, err := m.issuer.PasswordGrant(ctx, username, password)
	if err != nil {
		m.settleFailedLogin()

		var oerr *oidc.OAuth2Error
		if errors.As(err, &oerr) && oerr.IsInvalidGrant() {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("%w: %v", ErrIssuerUnreachable, err)
	}

	claims, derr := jwtx.Decode(resp.AccessToken)
	if derr != nil {
		m.settleFailedLogin()
		return fmt.Errorf("issuer returned an undecodable access token: %w", derr)
	}

	pair := store.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.tokens.Save(ctx, pair); err != nil {
		m.settleFailedLoginLocked()
		return fmt.Errorf("persisting session: %w", err)
	}

	m.pair = pair
	m.claims = claims
	m.state = StateAuthenticated
	return nil
}

// Logout drops the session locally and then makes a best-effort attempt to
// revoke the refresh token at the issuer. Local logout is never blocked by
// the network and calling it repeatedly is harmless.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	refreshToken := m.pair.RefreshToken
	m.epoch++
	m.pair = store.TokenPair{}
	m.claims = nil
	m.state = StateAnonymous
	m.mu.Unlock()

	if err := m.tokens.Clear(ctx); err != nil {
		m.logger.Warn("failed to clear token store", "error", err)
	}

	if refreshToken == "" {
		return
	}

	if err := m.issuer.Revoke(ctx, refreshToken); err != nil {
		m.logger.Warn("token revocation failed", "error", err)
	}
}

// GetValidAccessToken returns an access token that is good for at least the
// refresh grace window, refreshing it first when necessary. Concurrent
// callers share a single in-flight refresh and all observe its outcome.
func (m *Manager) GetValidAccessToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	switch m.state {
	case StateAnonymous, StateAuthenticating:
		m.mu.RUnlock()
		return "", ErrSessionExpired
	}
	if m.freshLocked(m.clock()) {
		token := m.pair.AccessToken
		m.mu.RUnlock()
		return token, nil
	}
	m.mu.RUnlock()

	v, err, _ := m.refresh.Do("refresh", func() (any, error) {
		return m.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

// Identity returns the current identity view, derived from the live token.
func (m *Manager) Identity() Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Identity{
		User:            m.claims,
		IsAuthenticated: m.state == StateAuthenticated || m.state == StateRefreshing,
		IsLoading:       m.state == StateAuthenticating,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// HasRole reports whether the current identity carries the given role.
func (m *Manager) HasRole(role string) bool {
	return m.Identity().HasRole(role)
}

// IsAdmin reports whether the current identity carries either admin role.
func (m *Manager) IsAdmin() bool {
	id := m.Identity()
	return id.HasRole(RoleAdmin) || id.HasRole(RoleAdministrador)
}

// freshLocked reports whether the held token is still outside the refresh
// grace window. Callers must hold m.mu.
func (m *Manager) freshLocked(now time.Time) bool {
	return m.claims != nil && m.claims.ExpiresAt != nil &&
		m.claims.ExpiresAt.Time.Sub(now) > m.grace
}

// doRefresh performs the actual refresh grant. Exactly one instance runs at
// a time; coalesced callers receive its return values.
func (m *Manager) doRefresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	if m.freshLocked(m.clock()) {
		// A refresh completed between the caller's check and this flight.
		token := m.pair.AccessToken
		m.mu.Unlock()
		return token, nil
	}
	if m.state == StateAnonymous || m.pair.RefreshToken == "" {
		m.mu.Unlock()
		return "", ErrSessionExpired
	}
	refreshToken := m.pair.RefreshToken
	epoch := m.epoch
	m.state = StateRefreshing
	m.mu.Unlock()

	resp, err := m.issuer.RefreshGrant(ctx, refreshToken)
	if err != nil {
		var oerr *oidc.OAuth2Error
		if errors.As(err, &oerr) && oerr.IsInvalidGrant() {
			// The issuer rejected the refresh token itself: the session is
			// gone for good.
			m.expire(ctx, epoch)
			return "", ErrSessionExpired
		}

		// Anything else, including a 5xx from the issuer or a proxy in
		// front of it, is transient. Keep the session so a later call can
		// retry.
		m.mu.Lock()
		if m.epoch == epoch && m.state == StateRefreshing {
			m.state = StateAuthenticated
		}
		m.mu.Unlock()
		return "", fmt.Errorf("%w: %v", ErrIssuerUnreachable, err)
	}

	claims, derr := jwtx.Decode(resp.AccessToken)
	if derr != nil {
		m.logger.Warn("issuer returned an undecodable access token", "error", derr)
		m.expire(ctx, epoch)
		return "", ErrSessionExpired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch {
		// A logout won the race; its clear stands.
		return "", ErrSessionExpired
	}

	pair := store.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	if err := m.tokens.Save(ctx, pair); err != nil {
		m.state = StateAuthenticated
		return "", fmt.Errorf("persisting refreshed tokens: %w", err)
	}

	m.pair = pair
	m.claims = claims
	m.state = StateAuthenticated
	return pair.AccessToken, nil
}

// expire drops the session after a terminal refresh failure, unless a
// logout already moved the epoch.
func (m *Manager) expire(ctx context.Context, epoch uint64) {
	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return
	}
	m.epoch++
	m.pair = store.TokenPair{}
	m.claims = nil
	m.state = StateAnonymous
	m.mu.Unlock()

	if err := m.tokens.Clear(ctx); err != nil {
		m.logger.Warn("failed to clear token store", "error", err)
	}
}

// settleFailedLogin returns the manager to the state it held before the
// login attempt: Authenticated when a prior session is still in memory,
// Anonymous otherwise.
func (m *Manager) settleFailedLogin() {
	m.mu.Lock()
	m.settleFailedLoginLocked()
	m.mu.Unlock()
}

func (m *Manager) settleFailedLoginLocked() {
	if m.claims != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateAnonymous
	}
}
