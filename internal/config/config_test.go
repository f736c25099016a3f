package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"voxintel/backend/internal/config"
)

func TestLoadConfig(t *testing.T) {
	// Set env var directly to test envconfig logic
	os.Setenv("DB_HOST", "test-host")
	defer os.Unsetenv("DB_HOST")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "test-host", cfg.DBHost)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	// Create a temp .env file
	content := []byte("DB_HOST=loaded-from-file")
	err := os.WriteFile(".env", content, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(".env")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "loaded-from-file", cfg.DBHost)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, 1000, cfg.ChunkMaxChars)
	assert.Equal(t, 30, cfg.CacheTTLMinutes)
	assert.Equal(t, 10, cfg.ScrapeTimeoutSeconds)
	assert.Equal(t, 5, cfg.ScrapeConcurrency)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "file://migrations", cfg.MigrationPath)
}

func TestLoadConfig_Overrides(t *testing.T) {
	os.Setenv("CHUNK_MAX_CHARS", "500")
	os.Setenv("CACHE_TTL_MINUTES", "5")
	os.Setenv("SCRAPE_CONCURRENCY", "2")
	defer os.Unsetenv("CHUNK_MAX_CHARS")
	defer os.Unsetenv("CACHE_TTL_MINUTES")
	defer os.Unsetenv("SCRAPE_CONCURRENCY")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, 500, cfg.ChunkMaxChars)
	assert.Equal(t, 5, cfg.CacheTTLMinutes)
	assert.Equal(t, 2, cfg.ScrapeConcurrency)
}
