// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// DevJWTSecret is used when JWT_SECRET is unset. It is only fit for local use.
const DevJWTSecret = "review-board-dev-secret-change-me"

// Password storage modes.
const (
	PasswordPlain  = "plain"
	PasswordBcrypt = "bcrypt"
)

type Config struct {
	Host          string        `env:"HOST"`
	Port          int           `env:"PORT,default=8080"`
	DBPath        string        `env:"DB_PATH,default=data/reviews.db"`
	JWTSecret     string        `env:"JWT_SECRET"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,default=24h"`
	PasswordMode  string        `env:"PASSWORD_MODE,default=plain"`
	AllowedOrigin string        `env:"ORIGIN_ALLOWED,default=http://localhost:3000"`
	LogLevel      string        `env:"LOG_LEVEL,default=info"`
	SecureCookies bool          `env:"SECURE_COOKIES,default=false"`
}

// Load reads .env files (if present) into the environment and decodes the
// result into a Config. Variables already set in the environment win over
// the files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && len(files) > 0 {
		return Config{}, fmt.Errorf("config: loading %s: %w", strings.Join(files, ", "), err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: decoding environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT %d out of range", c.Port)
	}
	switch c.PasswordMode {
	case PasswordPlain, PasswordBcrypt:
	default:
		return fmt.Errorf("config: PASSWORD_MODE must be %q or %q, got %q", PasswordPlain, PasswordBcrypt, c.PasswordMode)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// UsingDevSecret reports whether no JWT_SECRET was configured.
func (c Config) UsingDevSecret() bool {
	return c.JWTSecret == ""
}

// Secret returns the configured JWT secret, or DevJWTSecret when unset.
func (c Config) Secret() string {
	if c.JWTSecret == "" {
		return DevJWTSecret
	}
	return c.JWTSecret
}

// Addr is the listen address for http.Server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Origins splits ORIGIN_ALLOWED on commas.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Level parses LOG_LEVEL into a slog level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
