package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

type Config struct {
	HTTPPort               string        `env:"HTTP_PORT" envDefault:"3000" validate:"required,numeric"`
	DatabaseURL            string        `env:"DATABASE_URL"`
	RunMigrations          bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	SessionStore           string        `env:"SESSION_STORE" envDefault:"memory" validate:"oneof=memory postgres"`
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"1h" validate:"gt=0"`
	SessionCookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"sid" validate:"required,alphanum"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m" validate:"gt=0"`
	CookieSecure           bool          `env:"COOKIE_SECURE" envDefault:"false"`
	TrustProxyHeaders      bool          `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
	RequestTimeout         time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	BcryptCost             int           `env:"BCRYPT_COST" envDefault:"12" validate:"min=4,max=31"`
	LogDir                 string        `env:"LOG_DIR"`
	LogLevel               string        `env:"LOG_LEVEL" envDefault:"info" validate:"loglevel"`
}

// UsesPostgres reports whether the credential, graph and article stores are
// backed by Postgres rather than process memory.
func (c Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

type LoadOption func(*loadOptions)

type loadOptions struct {
	skipDotEnv bool
}

// WithoutDotEnv stops Load from reading a .env file from the working directory.
func WithoutDotEnv() LoadOption {
	return func(o *loadOptions) {
		o.skipDotEnv = true
	}
}

func Load(opts ...LoadOption) (Config, error) {
	options := &loadOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if !options.skipDotEnv {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	v := validator.New()
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}

	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if cfg.SessionStore == SessionStorePostgres && cfg.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL (required by SESSION_STORE=postgres)", ErrMissingRequiredEnv)
	}

	return nil
}

func validateLogLevel(fl validator.FieldLevel) bool {
	allowed := map[string]bool{
		"debug":    true,
		"info":     true,
		"warn":     true,
		"warning":  true,
		"error":    true,
		"critical": true,
	}
	return allowed[fl.Field().String()]
}
