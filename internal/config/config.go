// Package config loads server settings from defaults, an optional YAML file
// and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/neexbeast/tourinfo/internal/cache"
	"github.com/neexbeast/tourinfo/internal/flights"
	"github.com/neexbeast/tourinfo/internal/journey"
	"github.com/neexbeast/tourinfo/internal/transport"
	"github.com/neexbeast/tourinfo/internal/upstream"
)

// Config holds every setting of the server.
type Config struct {
	Port     string `yaml:"port" validate:"required,numeric"`
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// RedisURL selects the shared Redis cache. Empty keeps the in-process cache.
	RedisURL        string        `yaml:"redis_url" validate:"omitempty,url"`
	CacheMaxEntries int           `yaml:"cache_max_entries" validate:"gte=1"`
	StationCacheTTL time.Duration `yaml:"station_cache_ttl" validate:"gt=0"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout" validate:"gt=0"`

	// RateLimitPerMinute caps requests per client IP. Zero disables the limiter.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" validate:"gte=0"`

	JourneyPlannerURL   string `yaml:"journey_planner_url" validate:"required,url"`
	TransportURL        string `yaml:"transport_url" validate:"required,url"`
	AmadeusURL          string `yaml:"amadeus_url" validate:"required,url"`
	AmadeusClientID     string `yaml:"amadeus_client_id"`
	AmadeusClientSecret string `yaml:"amadeus_client_secret"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:              "8080",
		LogLevel:          "info",
		CacheMaxEntries:   cache.DefaultMaxEntries,
		StationCacheTTL:   transport.DefaultTTLs.Stations,
		UpstreamTimeout:   upstream.DefaultTimeout,
		JourneyPlannerURL: journey.DefaultBaseURL,
		TransportURL:      transport.DefaultBaseURL,
		AmadeusURL:        flights.DefaultBaseURL,
	}
}

// Load builds the configuration. path may be empty, in which case no file is read.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto slog.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FlightCredentials returns the Amadeus client-credentials pair.
func (c Config) FlightCredentials() flights.Credentials {
	return flights.Credentials{ClientID: c.AmadeusClientID, ClientSecret: c.AmadeusClientSecret}
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.JourneyPlannerURL = getEnv("JOURNEY_PLANNER_URL", cfg.JourneyPlannerURL)
	cfg.TransportURL = getEnv("TRANSPORT_URL", cfg.TransportURL)
	cfg.AmadeusURL = getEnv("AMADEUS_URL", cfg.AmadeusURL)
	cfg.AmadeusClientID = getEnv("AMADEUS_CLIENT_ID", cfg.AmadeusClientID)
	cfg.AmadeusClientSecret = getEnv("AMADEUS_CLIENT_SECRET", cfg.AmadeusClientSecret)

	var errs []error
	var err error
	if cfg.CacheMaxEntries, err = getEnvInt("CACHE_MAX_ENTRIES", cfg.CacheMaxEntries); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitPerMinute, err = getEnvInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute); err != nil {
		errs = append(errs, err)
	}
	if cfg.StationCacheTTL, err = getEnvDuration("STATION_CACHE_TTL", cfg.StationCacheTTL); err != nil {
		errs = append(errs, err)
	}
	if cfg.UpstreamTimeout, err = getEnvDuration("UPSTREAM_TIMEOUT", cfg.UpstreamTimeout); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
