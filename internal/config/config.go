package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the process-wide configuration. It is parsed once at startup
// and passed by reference into every component that needs it.
type Config struct {
	AppEnv       string        `env:"APP_ENV"       envDefault:"development"`
	Port         string        `env:"PORT"          envDefault:"8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT"  envDefault:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	LogLevel     string        `env:"LOG_LEVEL"     envDefault:"info"`

	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DB" envDefault:"wardrobe"`

	Token TokenConfig

	Storage StorageConfig

	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	AppPasswordResetURL string `env:"APP_PASSWORD_RESET_URL" envDefault:"http://localhost:8080/reset-password"`
}

// TokenConfig groups the settings for issuing and verifying JWTs.
type TokenConfig struct {
	Secret                 string        `env:"TOKEN_SECRET"`
	ExpiresIn              time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"720h"`
	Issuer                 string        `env:"TOKEN_ISSUER"     envDefault:"wardrobe-api"`
	PasswordResetSecret    string        `env:"PASSWORD_RESET_TOKEN_SECRET"`
	PasswordResetExpiresIn time.Duration `env:"PASSWORD_RESET_TOKEN_EXPIRES_IN" envDefault:"15m"`
}

// StorageConfig groups the settings for the S3-compatible media host.
type StorageConfig struct {
	Endpoint      string `env:"S3_ENDPOINT"`
	Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	Bucket        string `env:"S3_BUCKET"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

// Load parses the configuration from environment variables. Missing required
// values are a startup-time failure, not something to recover from later.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.PublicBaseURL == "" {
		cfg.Storage.PublicBaseURL = cfg.Storage.Endpoint
	}

	return &cfg, nil
}

// IsProduction reports whether the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// validate checks that every required value is present.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("missing TOKEN_SECRET environment variable")
	}
	if c.Token.PasswordResetSecret == "" {
		return fmt.Errorf("missing PASSWORD_RESET_TOKEN_SECRET environment variable")
	}
	if c.Storage.Endpoint == "" {
		return fmt.Errorf("missing S3_ENDPOINT environment variable")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("missing S3_BUCKET environment variable")
	}
	if c.Storage.AccessKey == "" {
		return fmt.Errorf("missing S3_ACCESS_KEY environment variable")
	}
	if c.Storage.SecretKey == "" {
		return fmt.Errorf("missing S3_SECRET_KEY environment variable")
	}
	return nil
}
