package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

var envKeys = []string{
	"PORT", "LOG_LEVEL", "REDIS_URL", "CACHE_MAX_ENTRIES", "STATION_CACHE_TTL", "UPSTREAM_TIMEOUT",
	"RATE_LIMIT_PER_MINUTE", "JOURNEY_PLANNER_URL", "TRANSPORT_URL", "AMADEUS_URL",
	"AMADEUS_CLIENT_ID", "AMADEUS_CLIENT_SECRET",
}

// clearEnv blanks the variables Load reads; empty values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10000, cfg.CacheMaxEntries)
	assert.Equal(t, 60*time.Second, cfg.StationCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
	assert.Equal(t, "https://api.transitous.org", cfg.JourneyPlannerURL)
	assert.Equal(t, "https://v6.db.transport.rest", cfg.TransportURL)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.FlightCredentials().Configured())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
port: "9090"
log_level: debug
cache_max_entries: 50
station_cache_ttl: 2m
amadeus_client_id: file-id
amadeus_client_secret: file-secret
`)
	t.Setenv("PORT", "7070")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("AMADEUS_CLIENT_SECRET", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.CacheMaxEntries)
	assert.Equal(t, 2*time.Minute, cfg.StationCacheTTL)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	creds := cfg.FlightCredentials()
	assert.Equal(t, "file-id", creds.ClientID)
	assert.Equal(t, "env-secret", creds.ClientSecret)
	assert.True(t, creds.Configured())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoad_MalformedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_MAX_ENTRIES", "many")
	t.Setenv("STATION_CACHE_TTL", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_MAX_ENTRIES")
	assert.Contains(t, err.Error(), "STATION_CACHE_TTL")
}

func TestLoad_ValidationFails(t *testing.T) {
	cases := map[string]string{
		"log level":   "log_level: verbose\n",
		"port":        "port: http\n",
		"cache bound": "cache_max_entries: 0\n",
		"rate limit":  "rate_limit_per_minute: -1\n",
		"redis url":   "redis_url: not a url\n",
	}
	clearEnv(t)
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{LogLevel: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, Config{LogLevel: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "info"}.SlogLevel())
}
