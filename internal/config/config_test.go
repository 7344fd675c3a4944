package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
server:
  addr: ":9000"
  read_timeout: 2s
  cors_origins: ["http://localhost:3000"]
data:
  path: /srv/census.csv
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("TECHCENSUS_LOG_LEVEL", "warn")
	t.Setenv("TECHCENSUS_RATE_BURST", "7")
	t.Setenv("TECHCENSUS_WRITE_TIMEOUT", "1m")
	t.Setenv("TECHCENSUS_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TECHCENSUS_LOG_PRETTY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, "/srv/census.csv", cfg.Data.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
	assert.Equal(t, 7, cfg.Server.RateBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoadBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)

	t.Setenv(EnvRateLimit, "fast")
	_, err = Load("")
	assert.ErrorContains(t, err, EnvRateLimit)
}

func TestLoadEnvErrors(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{EnvReadTimeout, "5"},
		{EnvRateBurst, "1.5"},
		{EnvLogPretty, "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)
			_, err := Load("")
			assert.ErrorContains(t, err, tt.name)
		})
	}
}

func TestLoadEnvDataPathAndRate(t *testing.T) {
	t.Setenv(EnvDataPath, "/data/census.csv")
	t.Setenv(EnvRateLimit, "2.5")
	t.Setenv(EnvCORSOrigins, " , ")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/census.csv", cfg.Data.Path)
	assert.Equal(t, 2.5, cfg.Server.RateLimit)
	assert.Empty(t, cfg.Server.CORSOrigins)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Data.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.RateLimit = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.RateBurst = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.RateLimit = 0
	assert.NoError(t, cfg.Validate())
}
