// Package config loads service settings from defaults, an optional YAML
// file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	minJWTSecretLength = 32
	minBcryptCost      = 4
	maxBcryptCost      = 14
)

// Config holds all service settings.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Seed     SeedConfig     `yaml:"seed"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, postgres
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
}

type AuthConfig struct {
	JWTSecret    string  `yaml:"jwt_secret"`
	TokenTTL     string  `yaml:"token_ttl"`
	BcryptCost   int     `yaml:"bcrypt_cost"`
	CookieSecure bool    `yaml:"cookie_secure"`
	RateLimit    float64 `yaml:"rate_limit"` // requests per second per client; 0 disables
	RateBurst    int     `yaml:"rate_burst"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, both
}

// SeedConfig describes the admin account created by the seed command.
// Seeding is skipped when Email is empty.
type SeedConfig struct {
	AdminName     string `yaml:"admin_name"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPhone    string `yaml:"admin_phone"`
	AdminPassword string `yaml:"admin_password"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   "notekeeper.db",
		},
		Auth: AuthConfig{
			TokenTTL:     "24h",
			BcryptCost:   12,
			CookieSecure: true,
			RateLimit:    1,
			RateBurst:    5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "both",
		},
	}
}

// Load builds a Config. path may be empty; a missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("PORT", &c.Server.Port)
	setString("DATABASE_DRIVER", &c.Database.Driver)
	setString("DATABASE_PATH", &c.Database.Path)
	setString("DATABASE_URL", &c.Database.URL)
	setString("JWT_SECRET", &c.Auth.JWTSecret)
	setString("TOKEN_TTL", &c.Auth.TokenTTL)
	setString("LOG_LEVEL", &c.Logging.Level)
	setString("LOG_FORMAT", &c.Logging.Format)
	setString("SEED_ADMIN_NAME", &c.Seed.AdminName)
	setString("SEED_ADMIN_EMAIL", &c.Seed.AdminEmail)
	setString("SEED_ADMIN_PHONE", &c.Seed.AdminPhone)
	setString("SEED_ADMIN_PASSWORD", &c.Seed.AdminPassword)

	// Secure cookies stay on unless explicitly disabled for local development.
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		c.Auth.CookieSecure = v != "false"
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		c.Auth.BcryptCost = n
	}
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err)
		}
		c.Auth.RateLimit = f
	}
	if v := os.Getenv("AUTH_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid AUTH_RATE_BURST: %w", err)
		}
		c.Auth.RateBurst = n
	}

	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	return nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error

	switch {
	case c.Auth.JWTSecret == "":
		errs = append(errs, errors.New("JWT_SECRET is required"))
	case len(c.Auth.JWTSecret) < minJWTSecretLength:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters for HMAC-SHA256 security", minJWTSecretLength))
	}

	if c.Auth.BcryptCost < minBcryptCost || c.Auth.BcryptCost > maxBcryptCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", minBcryptCost, maxBcryptCost, c.Auth.BcryptCost))
	}

	if ttl, err := time.ParseDuration(c.Auth.TokenTTL); err != nil || ttl <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be a positive duration, got %q", c.Auth.TokenTTL))
	}

	if c.Auth.RateLimit < 0 || c.Auth.RateBurst < 1 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT must be >= 0 and AUTH_RATE_BURST >= 1"))
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("DATABASE_PATH is required for sqlite"))
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.Database.Driver))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json", "both":
	default:
		errs = append(errs, fmt.Errorf("unknown LOG_FORMAT %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// TokenTTL returns the parsed token lifetime. Call after Validate.
func (c *Config) TokenTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Auth.TokenTTL)
	return ttl
}

// SeedEnabled reports whether admin credentials are configured.
func (c *Config) SeedEnabled() bool {
	return c.Seed.AdminEmail != "" && c.Seed.AdminPassword != ""
}
