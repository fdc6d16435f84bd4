package config

import (
	"errors"

	"github.com/caarlos0/env/v11"

	"engage-escrow/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is
	// reported as the deployment.environment attribute of exported traces.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server and the oracle rate
	// limiter. Environment variables prefixed with HTTP_ will populate this
	// struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection used by the postgres ledger
	// backend and by the migrate and events commands. Environment variables
	// prefixed with PSQL_ will populate this struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Ledger selects the storage backend, the rent charged for new records
	// and the genesis wallets. Environment variables prefixed with LEDGER_
	// will populate this struct.
	Ledger configs.Ledger `envPrefix:"LEDGER_"`

	// Auth configures how the caller wallet of mutating requests is
	// resolved. Environment variables prefixed with AUTH_ will populate this
	// struct.
	Auth configs.Auth `envPrefix:"AUTH_"`

	// Oracle holds the key used by the sign-report command. Environment
	// variables prefixed with ORACLE_ will populate this struct.
	Oracle configs.Oracle `envPrefix:"ORACLE_"`

	// Otel configures trace export. Environment variables prefixed with
	// OTEL_ will populate this struct.
	Otel configs.Otel `envPrefix:"OTEL_"`
}

// Load reads configuration from environment variables into a Config. If
// parsing fails, an error is returned. All fields are loaded with their
// specified defaults when no environment variable is provided. Sections
// with cross-field rules are validated afterwards and every violation is
// reported in the joined error.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := errors.Join(cfg.Ledger.Validate(), cfg.Auth.Validate(), cfg.Otel.Validate()); err != nil {
		return cfg, err
	}
	return cfg, nil
}
