package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. DATAVIS_SERVER_PORT
const EnvPrefix = "DATAVIS_"

// ConfigPathEnvVar overrides the YAML config file location
const ConfigPathEnvVar = "DATAVIS_CONFIG"

// DefaultConfigPath is read when present and no override is set
const DefaultConfigPath = "config.yaml"

// Config 应用配置
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Logging   LoggingConfig   `koanf:"logging"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Cache     CacheConfig     `koanf:"cache"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port string `koanf:"port" validate:"required"`
	Mode string `koanf:"mode" validate:"oneof=debug release test"` // gin mode
}

// DataConfig selects where the region tables come from
type DataConfig struct {
	Source      string `koanf:"source" validate:"oneof=csv sqlite"`
	Dir         string `koanf:"dir"`
	SQLitePath  string `koanf:"sqlite_path" validate:"required_if=Source sqlite"`
	SQLiteTable string `koanf:"sqlite_table" validate:"required_if=Source sqlite"`
}

// LoggingConfig mirrors logging.Config
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// CORSConfig lists allowed origins; "*" allows any
type CORSConfig struct {
	Origins []string `koanf:"origins" validate:"min=1"`
}

// RateLimitConfig limits requests per client IP; Requests 0 disables it
type RateLimitConfig struct {
	Requests int           `koanf:"requests" validate:"min=0"`
	Window   time.Duration `koanf:"window" validate:"gt=0"`
}

// CacheConfig sizes the spanning-tree cache; 0 disables it
type CacheConfig struct {
	PathsSize int `koanf:"paths_size" validate:"min=0"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: ":5000",
			Mode: "release",
		},
		Data: DataConfig{
			Source:      "csv",
			Dir:         ".",
			SQLitePath:  "./data/activity.db",
			SQLiteTable: "activity_records",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Requests: 0,
			Window:   time.Minute,
		},
		Cache: CacheConfig{
			PathsSize: 64,
		},
	}
}

// Load 加载配置: defaults, then the optional YAML file, then DATAVIS_* env vars
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// comma separated origins from the environment
	if s, ok := k.Get("cors.origins").(string); ok {
		if err := k.Set("cors.origins", splitList(s)); err != nil {
			return nil, fmt.Errorf("failed to parse cors.origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return DefaultConfigPath
	}
	return ""
}

// envTransform maps DATAVIS_SECTION_KEY to section.key.
// DATAVIS_CONFIG is the file override, not a setting.
func envTransform(key string) string {
	if key == ConfigPathEnvVar {
		return ""
	}
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
