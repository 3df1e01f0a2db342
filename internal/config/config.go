// Package config loads runtime settings from the environment. Every value
// has a default, so the binaries run with no setup at all.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Batch  BatchConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Host        string
	Port        int
	OpenBrowser bool
}

// Addr returns the host:port bind address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// URL returns the browser-facing address of the UI.
func (s ServerConfig) URL() string {
	return fmt.Sprintf("http://%s", s.Addr())
}

// DataConfig holds reference data settings
type DataConfig struct {
	// Dir points at an external dataset directory; empty means the
	// embedded dataset.
	Dir string
	// MaxAdjustment overrides the dataset's affinity bound when set.
	// Negative means "use the dataset value".
	MaxAdjustment float64
}

// HasMaxAdjustment reports whether the affinity bound is overridden.
func (d DataConfig) HasMaxAdjustment() bool {
	return d.MaxAdjustment >= 0
}

// BatchConfig holds CLI batch runner settings
type BatchConfig struct {
	Workers int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: loadServerConfig(),
		Data:   loadDataConfig(),
		Batch:  loadBatchConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:        getEnvOrDefault("ADVISOR_HOST", "127.0.0.1"),
		Port:        getEnvIntOrDefault("ADVISOR_PORT", 8000),
		OpenBrowser: getEnvBoolOrDefault("OPEN_BROWSER", true),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		Dir:           getEnvOrDefault("DATA_DIR", ""),
		MaxAdjustment: getEnvFloatOrDefault("MAX_ADJUSTMENT", -1),
	}
}

func loadBatchConfig() BatchConfig {
	return BatchConfig{
		Workers: getEnvIntOrDefault("BATCH_WORKERS", 4),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Host == "" {
		return fmt.Errorf("ADVISOR_HOST must not be empty")
	}
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("ADVISOR_PORT out of range: %d", config.Server.Port)
	}
	if config.Data.MaxAdjustment > 1 {
		return fmt.Errorf("MAX_ADJUSTMENT above 1 makes every adjustment saturate: %v", config.Data.MaxAdjustment)
	}
	if config.Batch.Workers < 1 {
		return fmt.Errorf("BATCH_WORKERS must be at least 1: %d", config.Batch.Workers)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
