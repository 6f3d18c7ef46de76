// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback), optionally seeded from a .env file
//
// Example usage:
//
//	cfg, err := config.LoadOrEnv()
//	title := cfg.Transforms.Merge.DefaultTitle
//	port := cfg.Server.Port
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Transforms    TransformsConfig    `yaml:"transforms"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// TransformsConfig holds per-transform settings
type TransformsConfig struct {
	Merge  TransformConfig `yaml:"merge"`
	Expand TransformConfig `yaml:"expand"`
}

// TransformConfig holds settings shared by every cart transform
type TransformConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DefaultTitle string `yaml:"default_title"`
}

// ServerConfig holds preview server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing else is provided
func Default() *Config {
	return &Config{
		Transforms: TransformsConfig{
			Merge:  TransformConfig{Enabled: true, DefaultTitle: "Bundle"},
			Expand: TransformConfig{Enabled: true, DefaultTitle: "Bundle"},
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{Level: "info", Format: "text"},
		},
	}
}

// Load reads and parses the config file. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${LOG_LEVEL})
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	def := Default()
	return &Config{
		Transforms: TransformsConfig{
			Merge: TransformConfig{
				Enabled:      getEnvBool("MERGE_ENABLED", def.Transforms.Merge.Enabled),
				DefaultTitle: getEnv("MERGE_DEFAULT_TITLE", def.Transforms.Merge.DefaultTitle),
			},
			Expand: TransformConfig{
				Enabled:      getEnvBool("EXPAND_ENABLED", def.Transforms.Expand.Enabled),
				DefaultTitle: getEnv("EXPAND_DEFAULT_TITLE", def.Transforms.Expand.DefaultTitle),
			},
		},
		Server: ServerConfig{
			Port:           getEnvInt("PORT", def.Server.Port),
			AllowedOrigins: getEnvList("ALLOWED_ORIGINS", def.Server.AllowedOrigins),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", def.Observability.Logging.Level),
				Format: getEnv("LOG_FORMAT", def.Observability.Logging.Format),
			},
		},
	}
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() (*Config, error) {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath loads path when it exists and falls back to environment
// variables only when it does not. A file that exists but cannot be read or
// parsed is an error.
// A .env file in the working directory, if present, is loaded first; variables
// already set in the environment win.
func LoadOrEnvWithPath(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return LoadFromEnv(), nil
	}
	return nil, err
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvBool retrieves a boolean environment variable with a fallback default
func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

// getEnvList retrieves a comma separated list with a fallback default
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
