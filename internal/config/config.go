package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type GraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ServerConfig struct {
	Port int `toml:"port"`
}

type IngestConfig struct {
	Workers        int `toml:"workers"`
	StoreTimeoutMS int `toml:"store_timeout_ms"`
	RetryAttempts  int `toml:"retry_attempts"`
	RetryBackoffMS int `toml:"retry_backoff_ms"`
}

type AnalysisConfig struct {
	SkewThreshold float64 `toml:"skew_threshold"`
	ZThreshold    float64 `toml:"z_threshold"`
	IQRMultiplier float64 `toml:"iqr_multiplier"`
	Alpha         float64 `toml:"alpha"`
}

type Config struct {
	Graph    GraphConfig    `toml:"graph"`
	Server   ServerConfig   `toml:"server"`
	Ingest   IngestConfig   `toml:"ingest"`
	Analysis AnalysisConfig `toml:"analysis"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Graph:  GraphConfig{URI: "bolt://localhost:7687"},
		Server: ServerConfig{Port: 8080},
		Ingest: IngestConfig{
			Workers:        4,
			StoreTimeoutMS: 5000,
			RetryAttempts:  3,
			RetryBackoffMS: 250,
		},
		Analysis: AnalysisConfig{
			SkewThreshold: 0.5,
			ZThreshold:    3.0,
			IQRMultiplier: 1.5,
			Alpha:         0.05,
		},
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

func (c *IngestConfig) StoreTimeout() time.Duration {
	return time.Duration(c.StoreTimeoutMS) * time.Millisecond
}

func (c *IngestConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMS) * time.Millisecond
}
