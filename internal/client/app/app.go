// Package app wires the traveldesk client together: configuration, logging,
// the persistent token store, the issuer client, the session manager, and the
// authenticated backend client.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/voyago/traveldesk/internal/client/api"
	"github.com/voyago/traveldesk/internal/client/session"
	"github.com/voyago/traveldesk/internal/client/store/drivers/sqlite"
	"github.com/voyago/traveldesk/pkg/oidc"
	"github.com/voyago/traveldesk/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application holds the wired client components.
type Application struct {
	cfg    Config
	logger *slog.Logger

	tokens  *sqlite.Store
	issuer  *oidc.Client
	Session *session.Manager
	API     *api.Client
}

// New builds the application from config and adopts any persisted session.
func New(ctx context.Context, cfg Config) (*Application, error) {
	logger := slogx.New(slogx.Config{
		Service: "traveldesk",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	tokens, err := sqlite.New(cfg.TokenDBFile)
	if err != nil {
		return nil, fmt.Errorf("opening token store: %w", err)
	}

	if err := tokens.ApplyMigrations(); err != nil {
		tokens.Close()
		return nil, fmt.Errorf("migrating token store: %w", err)
	}

	issuer := oidc.NewClient(cfg.IssuerURL, cfg.OAuthClientID)
	issuer.HTTPClient = &http.Client{Timeout: cfg.HTTPTimeout}

	sess := session.New(issuer, tokens,
		session.WithRefreshGrace(cfg.RefreshGrace),
		session.WithLogger(logger),
	)

	if err := sess.Initialize(ctx); err != nil {
		tokens.Close()
		return nil, fmt.Errorf("initializing session: %w", err)
	}

	app := &Application{
		cfg:     cfg,
		logger:  logger,
		tokens:  tokens,
		issuer:  issuer,
		Session: sess,
		API:     api.NewClient(cfg.APIBaseURL, sess),
	}

	logger.Debug("application wired",
		"issuer", cfg.IssuerURL,
		"api", cfg.APIBaseURL,
		"state", sess.State().String(),
	)

	return app, nil
}

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// Close releases the token store.
func (a *Application) Close() error {
	if err := a.tokens.Close(); err != nil {
		return fmt.Errorf("closing token store: %w", err)
	}
	return nil
}
