package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Version int           `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	Store   StoreConfig   `yaml:"store"`
	Filter  FilterConfig  `yaml:"filter"`
	Palette PaletteConfig `yaml:"palette"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr            string   `yaml:"addr" validate:"required"`
	ReadTimeout     Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    Duration `yaml:"write_timeout" validate:"gte=0"` // 0 keeps event streams open
	IdleTimeout     Duration `yaml:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins     []string `yaml:"cors_origins,omitempty" validate:"dive,required"`
}

// DatasetConfig selects the dataset the explorer serves
type DatasetConfig struct {
	// Source is a file path, an http(s) URL, or "store". Empty looks for
	// one of DatasetFileNames in the working directory and config
	// directories, and failing that starts with an empty graph.
	Source   string   `yaml:"source"`
	Format   string   `yaml:"format,omitempty" validate:"omitempty,oneof=json yaml yml markdown md txt"`
	Watch    bool     `yaml:"watch"`
	Debounce Duration `yaml:"debounce" validate:"gte=0"`
	Seed     *uint64  `yaml:"seed,omitempty"`
}

// StoreConfig holds the SQLite dataset store settings. An empty path
// disables the store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// FilterConfig tunes the derived graph cache
type FilterConfig struct {
	CacheSize int `yaml:"cache_size" validate:"gte=0,lte=100000"`
}

// PaletteConfig overrides category colors, keyed by category name
type PaletteConfig struct {
	Canvas map[string]string `yaml:"canvas,omitempty"`
	Badge  map[string]string `yaml:"badge,omitempty"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Debug bool `yaml:"debug"`
	JSON  bool `yaml:"json"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
