// Package config manages environment variables.
//
// It reads variables from the process environment (optionally loaded
// from a `.env` file), maps them into structured Go types, and
// validates that required values are present so the app fails fast on
// bad or missing config.
//
// Env vars use the FORKPOINT_ prefix and "." nesting, e.g.
// FORKPOINT_DATABASE.HOST -> Config.Database.Host.
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a .env file into the process env, if
	// one exists, before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; defaults are
// injected at load time when absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Email         EmailConfig          `koanf:"email"`
	Seed          SeedConfig           `koanf:"seed"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool
// tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port"). Redis
// backs the background job queue only; it is never used as a read
// cache.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores token signing secrets and lifetime.
type AuthConfig struct {
	SecretKey string        `koanf:"secret_key" validate:"required"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// EmailConfig configures the Resend email integration. An empty API
// key disables outbound email (receipt jobs log and skip sending).
type EmailConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	FromName     string `koanf:"from_name"`
	FromAddress  string `koanf:"from_address"`
}

// SeedConfig controls first-run seeding of the default admin account.
// The seed only runs when the user table is empty.
type SeedConfig struct {
	AdminName     string `koanf:"admin_name"`
	AdminEmail    string `koanf:"admin_email"`
	AdminPassword string `koanf:"admin_password"`
}

// DefaultTokenTTL is used when auth.token_ttl is not configured.
const DefaultTokenTTL = 24 * time.Hour

// Load reads configuration from environment variables, unmarshals it
// into Config, validates it, and applies defaults.
func Load(logger *zerolog.Logger) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("FORKPOINT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FORKPOINT_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load env variables")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal config")
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}

	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = DefaultTokenTTL
	}
	if cfg.Seed.AdminName == "" {
		cfg.Seed.AdminName = "admin"
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry always
	// carries consistent labels.
	cfg.Observability.ServiceName = "forkpoint"
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return cfg, nil
}
