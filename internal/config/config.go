// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

// Package config loads configuration with koanf, layered as
// defaults < YAML file < environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "FITBRAIN_CONFIG"

// envPrefix namespaces all environment overrides:
// FITBRAIN_SERVER_PORT -> server.port.
const envPrefix = "FITBRAIN_"

// DefaultConfigPaths are searched in order when no explicit path is set.
var DefaultConfigPaths = []string{
	"fitbrain.yaml",
	"config/fitbrain.yaml",
	"/etc/fitbrain/config.yaml",
}

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Engine  EngineConfig  `koanf:"engine"`
	Logging LoggingConfig `koanf:"logging"`
	API     APIConfig     `koanf:"api"`
}

// ServerConfig covers the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StorageConfig selects and locates the learning-state backend.
type StorageConfig struct {
	// Backend is "file" or "badger".
	Backend string `koanf:"backend"`
	// Path is the state file (file backend) or database directory
	// (badger backend).
	Path string `koanf:"path"`
	// GCInterval is how often the badger backend runs value-log GC.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// EngineConfig exposes the tunable learning knobs.
type EngineConfig struct {
	// RecencyGraceDays is how long feedback keeps full weight.
	RecencyGraceDays int `koanf:"recency_grace_days"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// APIConfig covers middleware behavior on the HTTP surface.
type APIConfig struct {
	// CORSOrigins lists allowed origins; empty disables CORS headers.
	CORSOrigins []string `koanf:"cors_origins"`
	// RateLimit is requests per client IP per RatePeriod; 0 disables.
	RateLimit  int           `koanf:"rate_limit"`
	RatePeriod time.Duration `koanf:"rate_period"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend:    "file",
			Path:       "data/learning_state.json",
			GCInterval: 5 * time.Minute,
		},
		Engine: EngineConfig{
			RecencyGraceDays: 90,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		API: APIConfig{
			RateLimit:  100,
			RatePeriod: time.Minute,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// FITBRAIN_* environment variables, highest priority last.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	// Env vars arrive as strings; slice fields need splitting.
	if k.Exists("api.cors_origins") {
		if raw, ok := k.Get("api.cors_origins").(string); ok {
			parts := strings.Split(raw, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			if err := k.Set("api.cors_origins", parts); err != nil {
				return nil, fmt.Errorf("parsing api.cors_origins: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	return cfg, nil
}

// envMappings pins environment names whose config keys contain
// underscores; the generic transform would split them on the wrong
// boundary.
var envMappings = map[string]string{
	"server_read_timeout":       "server.read_timeout",
	"server_write_timeout":      "server.write_timeout",
	"server_idle_timeout":       "server.idle_timeout",
	"server_shutdown_timeout":   "server.shutdown_timeout",
	"storage_gc_interval":       "storage.gc_interval",
	"engine_recency_grace_days": "engine.recency_grace_days",
	"api_cors_origins":          "api.cors_origins",
	"api_rate_limit":            "api.rate_limit",
	"api_rate_period":           "api.rate_period",
}

// envTransform maps FITBRAIN_SERVER_PORT to server.port, consulting the
// explicit table first for keys with embedded underscores.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return strings.Replace(key, "_", ".", 1)
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		return envPath
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	switch c.Storage.Backend {
	case "file", "badger":
	default:
		return fmt.Errorf("storage.backend must be file or badger, got %q", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path must not be empty")
	}
	if c.Engine.RecencyGraceDays < 0 {
		return fmt.Errorf("engine.recency_grace_days must not be negative")
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative")
	}
	return nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
