package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("connection string is required", func(t *testing.T) {
		t.Setenv("MONGODB_CONNECTION_STRING", "")

		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("MONGODB_CONNECTION_STRING", "mongodb://localhost:27017")
		t.Setenv("PORT", "")
		t.Setenv("ALLOWED_ORIGINS", "")
		t.Setenv("MONGODB_QUERY_TIMEOUT", "")
		t.Setenv("MULU_TOUR_ID", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
		assert.Equal(t, "eventDb", cfg.EventDB)
		assert.Equal(t, "staticDb", cfg.StaticDB)
		assert.Equal(t, "sponsorsDb", cfg.SponsorsDB)
		assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
		assert.Equal(t, 34, cfg.MuluTourID)
		assert.Equal(t, "Europe/Zurich", cfg.TimeZone)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("MONGODB_CONNECTION_STRING", "mongodb://db:27017")
		t.Setenv("ALLOWED_ORIGINS", "https://petruschka.ch, ,http://localhost:5173")
		t.Setenv("MONGODB_QUERY_TIMEOUT", "3s")
		t.Setenv("WORKER_COUNT", "not-a-number")
		t.Setenv("RATE_LIMIT_RPS", "7.5")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://petruschka.ch", "http://localhost:5173"}, cfg.AllowedOrigins)
		assert.Equal(t, 3*time.Second, cfg.QueryTimeout)
		assert.Equal(t, 2, cfg.WorkerCount)
		assert.InDelta(t, 7.5, cfg.RateLimitRPS, 0.0001)
	})
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PETRUSCHKA_TEST_KEY=from-file\n"), 0o600))

	t.Setenv("PETRUSCHKA_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("PETRUSCHKA_TEST_KEY"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("PETRUSCHKA_TEST_KEY"))

	require.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
}
