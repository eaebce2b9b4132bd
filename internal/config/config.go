// Package config loads the YAML configuration of the buildai server.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Nithilan10/buildai/internal/model"
)

// Environment variables that override file values.
const (
	EnvAddr              = "BUILDAI_ADDR"
	EnvRedisAddr         = "BUILDAI_REDIS_ADDR"
	EnvOpenAIKey         = "OPENAI_API_KEY"
	EnvNarrativeEndpoint = "BUILDAI_NARRATIVE_ENDPOINT"
)

// Config is the unified server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Estimate  EstimateConfig  `yaml:"estimate"`
	Narrative NarrativeConfig `yaml:"narrative"`
	Cache     CacheConfig     `yaml:"cache"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// EstimateConfig holds the local calculator defaults.
type EstimateConfig struct {
	Settings model.EstimateSettings `yaml:",inline"`
	Advice   *model.Advice          `yaml:"advice,omitempty"` // nil keeps DefaultAdvice
}

// NarrativeConfig configures the optional chat-completions provider.
// The provider is disabled when Enabled is false or no API key is set.
type NarrativeConfig struct {
	Enabled    bool          `yaml:"enabled"`
	APIKey     string        `yaml:"api_key"`
	Endpoint   string        `yaml:"endpoint"`
	Model      string        `yaml:"model"`
	Timeout    time.Duration `yaml:"timeout"`  // per attempt
	Deadline   time.Duration `yaml:"deadline"` // all attempts; below server.write_timeout
	Attempts   int           `yaml:"attempts"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// CacheConfig selects the report cache: "none", "memory" or "redis".
type CacheConfig struct {
	Backend   string        `yaml:"backend"`
	TTL       time.Duration `yaml:"ttl"`
	RedisAddr string        `yaml:"redis_addr"`
	RedisDB   int           `yaml:"redis_db"`
	Password  string        `yaml:"redis_password"`
	Prefix    string        `yaml:"prefix"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Estimate: EstimateConfig{Settings: model.DefaultEstimateSettings()},
		Narrative: NarrativeConfig{
			Timeout:    25 * time.Second,
			Deadline:   60 * time.Second,
			Attempts:   3,
			RetryDelay: time.Second,
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     24 * time.Hour,
			Prefix:  "buildai:",
		},
	}
}

// Load reads the configuration at path on top of Default and applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.Backend = "redis"
		c.Cache.RedisAddr = v
	}
	if v := getenv(EnvOpenAIKey); v != "" {
		c.Narrative.APIKey = v
	}
	if v := getenv(EnvNarrativeEndpoint); v != "" {
		c.Narrative.Endpoint = v
	}
}

// Validate checks values that would otherwise fail at runtime.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	if err := c.Estimate.Settings.Policy().Validate(); err != nil {
		return fmt.Errorf("estimate: %w", err)
	}
	if c.Estimate.Settings.FallbackUnitCost < 0 {
		return fmt.Errorf("estimate.fallback_unit_cost must not be negative")
	}
	if c.Estimate.Settings.FallbackTileWidth < 0 || c.Estimate.Settings.FallbackTileHeight < 0 {
		return fmt.Errorf("estimate fallback tile size must not be negative")
	}
	if c.Narrative.Attempts < 0 {
		return fmt.Errorf("narrative.attempts must not be negative")
	}
	if c.Narrative.Deadline <= 0 {
		return fmt.Errorf("narrative.deadline must be positive")
	}
	if c.Server.WriteTimeout > 0 && c.Narrative.Deadline >= c.Server.WriteTimeout {
		return fmt.Errorf("narrative.deadline (%s) must be shorter than server.write_timeout (%s)",
			c.Narrative.Deadline, c.Server.WriteTimeout)
	}
	switch c.Cache.Backend {
	case "", "none", "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache.backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	return nil
}

// NarrativeEnabled reports whether a provider should be created.
func (c *Config) NarrativeEnabled() bool {
	return c.Narrative.Enabled && c.Narrative.APIKey != ""
}

// Advice returns the configured advice or the defaults.
func (c *Config) Advice() model.Advice {
	if c.Estimate.Advice != nil {
		return *c.Estimate.Advice
	}
	return model.DefaultAdvice()
}
