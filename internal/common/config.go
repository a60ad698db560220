// Package common provides shared utilities for the CryptoAI portal.
package common

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the portal.
type Config struct {
	Environment string        `toml:"environment"`
	Backend     BackendConfig `toml:"backend"`
	Market      MarketConfig  `toml:"market"`
	Logging     LoggingConfig `toml:"logging"`
}

// BackendConfig holds the assistant backend API configuration.
type BackendConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration.
func (c *BackendConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// MarketConfig holds market snapshot polling configuration.
type MarketConfig struct {
	PollInterval  string   `toml:"poll_interval"`
	Assets        []string `toml:"assets"`
	ForecastAsset string   `toml:"forecast_asset"`
}

// GetPollInterval parses and returns the snapshot refresh interval.
func (c *MarketConfig) GetPollInterval() time.Duration {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Backend: BackendConfig{
			BaseURL:   "http://localhost:8000",
			RateLimit: 5,
			Timeout:   "30s",
		},
		Market: MarketConfig{
			PollInterval:  "30s",
			Assets:        []string{"bitcoin", "ethereum", "solana"},
			ForecastAsset: "bitcoin",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig reads a TOML config file and applies environment overrides.
// A missing file is not an error; defaults are used instead.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyEnvOverrides(config)

	if config.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend base_url is required")
	}
	if len(config.Market.Assets) == 0 {
		config.Market.Assets = DefaultConfig().Market.Assets
	}
	if config.Market.ForecastAsset == "" {
		config.Market.ForecastAsset = DefaultConfig().Market.ForecastAsset
	}

	return config, nil
}

// applyEnvOverrides applies CRYPTOAI_* environment variables over file values.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("CRYPTOAI_BACKEND_URL"); v != "" {
		config.Backend.BaseURL = v
	}
	if v := os.Getenv("CRYPTOAI_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("CRYPTOAI_ENVIRONMENT"); v != "" {
		config.Environment = v
	}
}
