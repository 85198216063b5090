// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	VectorBackend VectorBackendConfig `yaml:"vector_backend"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig contains collection store configuration
type StorageConfig struct {
	Type string `yaml:"type"` // "memory" (default), "sqlite", or "postgres"
	DSN  string `yaml:"dsn"`  // postgres connection string
	Path string `yaml:"path"` // sqlite file path
}

// VectorBackendConfig contains vector store backend configuration
type VectorBackendConfig struct {
	Type       string `yaml:"type"`       // "memory" (default) or "milvus"
	Address    string `yaml:"address"`    // e.g. "localhost:19530"
	Dimensions int    `yaml:"dimensions"` // vector dimensions, default 1536
}

// LoggingConfig contains logger configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 60 * time.Second,
		},
	}
	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg
}

// applyEnvOverrides lets environment variables take precedence over the
// config file, which is how deployments inject credentials.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.DSN = v
		cfg.Storage.Type = "postgres"
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.Path = v
		cfg.Storage.Type = "sqlite"
	}
	if v := os.Getenv("MILVUS_ADDRESS"); v != "" {
		cfg.VectorBackend.Address = v
		cfg.VectorBackend.Type = "milvus"
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 60 * time.Second
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "memory"
	}
	if cfg.VectorBackend.Type == "" {
		cfg.VectorBackend.Type = "memory"
	}
	if cfg.VectorBackend.Dimensions == 0 {
		cfg.VectorBackend.Dimensions = 1536
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
