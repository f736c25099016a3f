package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")

type Config struct {
	DBHost string `envconfig:"DB_HOST" default:"postgres"`
	DBPort int    `envconfig:"DB_PORT" default:"5432"`
	DBUser string `envconfig:"DB_USER" default:"voxintel"`
	DBPass string `envconfig:"DB_PASS" default:"password"`
	DBName string `envconfig:"DB_NAME" default:"voxintel"`

	NSQDHost string `envconfig:"NSQD_HOST" default:"nsqd:4150"`

	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	MigrationPath string `envconfig:"MIGRATION_PATH" default:"file://migrations"`

	// Ingestion
	ChunkMaxChars int `envconfig:"CHUNK_MAX_CHARS" default:"1000"`

	// Aggregation
	CacheTTLMinutes      int `envconfig:"CACHE_TTL_MINUTES" default:"30"`
	ScrapeTimeoutSeconds int `envconfig:"SCRAPE_TIMEOUT_SECONDS" default:"10"`
	ScrapeConcurrency    int `envconfig:"SCRAPE_CONCURRENCY" default:"5"`

	// Server
	ServerPort int `envconfig:"SERVER_PORT" default:"8080"`

	// Resilience
	BootstrapRetryAttempts     int `envconfig:"BOOTSTRAP_RETRY_ATTEMPTS" default:"10"`
	BootstrapRetryDelaySeconds int `envconfig:"BOOTSTRAP_RETRY_DELAY_SECONDS" default:"2"`
}

func Load() (*Config, error) {
	// Try loading .env from current dir and repo root
	// Ignore errors, as env vars might be set in the shell
	_ = godotenv.Load(".env")

	cwd, _ := os.Getwd()
	rootEnv := filepath.Join(cwd, "../.env")
	_ = godotenv.Load(rootEnv)

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBHost == "" {
		return fmt.Errorf("%w: DB_HOST", ErrMissingRequired)
	}
	if c.DBUser == "" {
		return fmt.Errorf("%w: DB_USER", ErrMissingRequired)
	}
	if c.DBName == "" {
		return fmt.Errorf("%w: DB_NAME", ErrMissingRequired)
	}
	if c.ChunkMaxChars <= 0 {
		return fmt.Errorf("%w: CHUNK_MAX_CHARS must be positive", ErrMissingRequired)
	}
	return nil
}
