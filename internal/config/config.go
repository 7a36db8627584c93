// Package config provides configuration management for the explorer.
//
// Config file locations (priority order):
//  1. $DYNASTY_CONFIG
//  2. ./dynasty.yaml
//  3. $XDG_CONFIG_HOME/dynasty/config.yaml
//  4. ~/.config/dynasty/config.yaml
//  5. /etc/dynasty/config.yaml
//
// A .env file in the working directory is loaded first; environment
// variables then override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides
const (
	EnvAddr          = "DYNASTY_ADDR"
	EnvDataset       = "DYNASTY_DATASET"
	EnvDatasetFormat = "DYNASTY_DATASET_FORMAT"
	EnvStore         = "DYNASTY_STORE"
	EnvDebug         = "DEBUG"
)

// Defaults
const (
	DefaultAddr            = ":3000"
	DefaultReadTimeout     = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultDebounce        = 500 * time.Millisecond
	DefaultCacheSize       = 128
)

var validate = validator.New()

// Load finds and loads the config file, or returns defaults if none found.
// The returned path is empty when no file was found.
func Load() (*Config, string, error) {
	_ = godotenv.Load()

	path := FindConfigPath()
	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		cfg.resolveDataset()
		return cfg, "", cfg.Validate()
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	cfg.resolveDataset()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(DefaultReadTimeout)
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = Duration(DefaultIdleTimeout)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(DefaultShutdownTimeout)
	}
	if c.Server.CORSOrigins == nil {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Dataset.Debounce == 0 {
		c.Dataset.Debounce = Duration(DefaultDebounce)
	}
	if c.Filter.CacheSize == 0 {
		c.Filter.CacheSize = DefaultCacheSize
	}
}

// resolveDataset picks up a dataset file from the search directories when
// neither the file nor the environment names a source
func (c *Config) resolveDataset() {
	if c.Dataset.Source != "" {
		return
	}
	if path := FindDatasetPath(); path != "" {
		c.Dataset.Source = path
	}
}

// applyEnv overrides file values from the environment
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvDataset); v != "" {
		c.Dataset.Source = v
	}
	if v := os.Getenv(EnvDatasetFormat); v != "" {
		c.Dataset.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvStore); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Log.Debug = debug
		}
	}
}

// Validate checks field constraints
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", e.Namespace(), e.Tag(), e.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", e.Namespace(), e.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	source := c.Dataset.Source
	if source == "" {
		source = "(none)"
	}
	store := c.Store.Path
	if store == "" {
		store = "(disabled)"
	}
	return fmt.Sprintf("Addr: %s, Dataset: %s, Watch: %t, Store: %s, Cache: %d",
		c.Server.Addr, source, c.Dataset.Watch, store, c.Filter.CacheSize)
}
