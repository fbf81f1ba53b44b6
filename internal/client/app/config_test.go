package app

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("TRAVELDESK_ISSUER_URL", "https://issuer.example.com/realms/corp")
	t.Setenv("TRAVELDESK_OAUTH_CLIENT_ID", "traveldesk-cli")
	t.Setenv("TRAVELDESK_API_BASE_URL", "https://expenses.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "https://issuer.example.com/realms/corp", cfg.IssuerURL)
	require.Equal(t, "traveldesk-cli", cfg.OAuthClientID)

	// Defaults
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "traveldesk.db", cfg.TokenDBFile)
	require.Equal(t, 30*time.Second, cfg.RefreshGrace)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("TRAVELDESK_ISSUER_URL", "placeholder")
	os.Unsetenv("TRAVELDESK_ISSUER_URL")
	t.Setenv("TRAVELDESK_OAUTH_CLIENT_ID", "traveldesk-cli")
	t.Setenv("TRAVELDESK_API_BASE_URL", "https://expenses.example.com")

	_, err := LoadConfig()
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "ISSUER_URL"))
}
