package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the dream service.
// Environment variables are parsed from the DREAMCANVAS_ prefix.
type Config struct {
	// Build target selects high-level environment: local, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived or override driver
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Postgres Configuration (Supabase row store)
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// SQLite Configuration (local/dev store)
	SQLitePath string `envconfig:"SQLITE_PATH" default:"dreamcanvas.db"`

	// Identity provider (Supabase GoTrue)
	SupabaseURL     string `envconfig:"SUPABASE_URL" default:""`
	SupabaseAnonKey string `envconfig:"SUPABASE_ANON_KEY" default:""`

	// Local dev bearer token accepted by the static verifier when no
	// identity provider is configured.
	DevToken string `envconfig:"DEV_TOKEN" default:""`

	// Element extraction (optional LLM backend)
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o"`

	// Image generation providers (tried in order; both optional)
	HuggingFaceAPIKey string `envconfig:"HUGGINGFACE_API_KEY" default:""`
	HuggingFaceModel  string `envconfig:"HUGGINGFACE_MODEL" default:"stabilityai/stable-diffusion-2-1"`
	ReplicateAPIToken string `envconfig:"REPLICATE_API_TOKEN" default:""`

	// Health monitoring
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "cloud":
		defaultDB = "postgres"
	case "local":
		defaultDB = "sqlite"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{"postgres": true, "sqlite": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required when DB_DRIVER is postgres")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with DREAMCANVAS_
// Example: DREAMCANVAS_HTTP_PORT, DREAMCANVAS_SUPABASE_URL
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("DREAMCANVAS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Bool("supabase_auth", cfg.SupabaseURL != "").
		Bool("openai_extractor", cfg.OpenAIAPIKey != "").
		Bool("huggingface_provider", cfg.HuggingFaceAPIKey != "").
		Bool("replicate_provider", cfg.ReplicateAPIToken != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		BuildTarget: "local",
		DBDriver:    "sqlite",
		Environment: EnvTesting,
		HTTPPort:    8080,
		SQLitePath:  ":memory:",
		DevToken:    "dev-token",

		HealthIntervalSeconds:     30,
		HealthProbeTimeoutSeconds: 5,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
