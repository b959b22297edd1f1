// Package common provides shared utilities for papertrade
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for papertrade
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Logging     LoggingConfig  `toml:"logging"`
	Auth        AuthConfig     `toml:"auth"`
	Insights    InsightsConfig `toml:"insights"`
	Refresh     RefreshConfig  `toml:"refresh"`
	Advisor     AdvisorConfig  `toml:"advisor"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// StorageConfig holds local state storage configuration.
// An empty Path selects the in-memory store (state is lost on exit).
// SyncWrites flushes each mutation to disk before it is acknowledged.
type StorageConfig struct {
	Path       string `toml:"path"`
	SyncWrites bool   `toml:"sync_writes"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Backend BackendConfig `toml:"backend"`
}

// BackendConfig holds paper-trading backend API configuration
type BackendConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *BackendConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string   `toml:"level"`
	Format   string   `toml:"format"`
	Outputs  []string `toml:"outputs"`
	FilePath string   `toml:"file_path"`
}

// AuthConfig holds bearer token validation settings.
// When Required is false, requests without a token run unauthenticated.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Required  bool   `toml:"required"`
}

// InsightsConfig holds the insight rule thresholds.
// Ratios are fractions (0.5 = 50%), returns are percentages.
type InsightsConfig struct {
	ConcentrationRatio float64 `toml:"concentration_ratio"`
	LossPct            float64 `toml:"loss_pct"`
	GainPct            float64 `toml:"gain_pct"`
	CashRatio          float64 `toml:"cash_ratio"`
	CryptoRatio        float64 `toml:"crypto_ratio"`
	DisplayLimit       int     `toml:"display_limit"`
}

// RefreshConfig holds the polling refresh schedule
type RefreshConfig struct {
	Interval string `toml:"interval"`
}

// GetInterval parses and returns the refresh interval
func (c *RefreshConfig) GetInterval() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// AdvisorConfig controls the advisor chat
type AdvisorConfig struct {
	FallbackToScript bool `toml:"fallback_to_script"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Path:       "data/localstate",
			SyncWrites: true,
		},
		Clients: ClientsConfig{
			Backend: BackendConfig{
				BaseURL:   "http://localhost:8081",
				RateLimit: 10,
				Timeout:   "15s",
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Outputs:  []string{"console"},
			FilePath: "./logs/papertrade.log",
		},
		Insights: InsightsConfig{
			ConcentrationRatio: 0.50,
			LossPct:            -10,
			GainPct:            20,
			CashRatio:          0.50,
			CryptoRatio:        0.25,
			DisplayLimit:       2,
		},
		Refresh: RefreshConfig{
			Interval: "30s",
		},
		Advisor: AdvisorConfig{
			FallbackToScript: true,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// A .env file in the working directory is loaded first, if present.
func LoadConfig(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	config := NewDefaultConfig()

	// Later files override earlier
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("PAPERTRADE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("PAPERTRADE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("PAPERTRADE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("PAPERTRADE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("PAPERTRADE_DATA_PATH"); path != "" {
		config.Storage.Path = filepath.Join(path, "localstate")
	}

	if v := os.Getenv("PAPERTRADE_BACKEND_URL"); v != "" {
		config.Clients.Backend.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("PAPERTRADE_BACKEND_API_KEY"); v != "" {
		config.Clients.Backend.APIKey = v
	}

	if v := os.Getenv("PAPERTRADE_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("PAPERTRADE_AUTH_REQUIRED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Auth.Required = b
		}
	}

	if v := os.Getenv("PAPERTRADE_REFRESH_INTERVAL"); v != "" {
		config.Refresh.Interval = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
