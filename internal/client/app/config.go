package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the client configuration, read from the environment with an
// optional .env overlay.
type Config struct {
	Env       string `envconfig:"TRAVELDESK_ENV" default:"dev"`
	LogLevel  string `envconfig:"TRAVELDESK_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"TRAVELDESK_LOG_FORMAT" default:"text"`

	IssuerURL     string `envconfig:"TRAVELDESK_ISSUER_URL" required:"true"`
	OAuthClientID string `envconfig:"TRAVELDESK_OAUTH_CLIENT_ID" required:"true"`
	APIBaseURL    string `envconfig:"TRAVELDESK_API_BASE_URL" required:"true"`

	TokenDBFile  string        `envconfig:"TRAVELDESK_TOKEN_DB_FILE" default:"traveldesk.db"`
	RefreshGrace time.Duration `envconfig:"TRAVELDESK_REFRESH_GRACE" default:"30s"`
	HTTPTimeout  time.Duration `envconfig:"TRAVELDESK_HTTP_TIMEOUT" default:"10s"`
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; a missing one is fine.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("processing environment config: %w", err)
	}

	return cfg, nil
}
