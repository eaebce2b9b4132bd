package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithilan10/buildai/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buildai.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, model.DefaultWastagePercent, cfg.Estimate.Settings.WastagePercent)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, model.DefaultAdvice(), cfg.Advice())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  read_timeout: 5s
estimate:
  wastage_percent: 12
  tiered_wastage: true
  fallback_unit_cost: 4.5
  advice:
    recommendations: ["Buy from one lot"]
    installation_tips: ["Dry-fit first"]
narrative:
  enabled: true
  model: gpt-4o
cache:
  backend: none
  ttl: 1h
`)
	t.Setenv(EnvOpenAIKey, "")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout, "unset fields keep defaults")
	assert.Equal(t, 12.0, cfg.Estimate.Settings.WastagePercent)
	assert.True(t, cfg.Estimate.Settings.TieredWastage)
	assert.Equal(t, 4.5, cfg.Estimate.Settings.FallbackUnitCost)
	assert.Equal(t, model.FallbackTileWidth, cfg.Estimate.Settings.FallbackTileWidth)
	assert.Equal(t, []string{"Buy from one lot"}, cfg.Advice().Recommendations)
	assert.Equal(t, "gpt-4o", cfg.Narrative.Model)
	assert.False(t, cfg.NarrativeEnabled(), "no API key")
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "narrative:\n  enabled: true\n")
	t.Setenv(EnvAddr, "127.0.0.1:7000")
	t.Setenv(EnvRedisAddr, "redis:6379")
	t.Setenv(EnvOpenAIKey, "sk-test")
	t.Setenv(EnvNarrativeEndpoint, "http://localhost:1234/v1/chat/completions")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, "sk-test", cfg.Narrative.APIKey)
	assert.Equal(t, "http://localhost:1234/v1/chat/completions", cfg.Narrative.Endpoint)
	assert.True(t, cfg.NarrativeEnabled())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config file not found")

	_, err = Load(writeConfig(t, "server: [unclosed"))
	assert.ErrorContains(t, err, "parsing config YAML")

	_, err = Load(writeConfig(t, "cache:\n  backend: memcached\n"))
	assert.ErrorContains(t, err, "unknown cache.backend")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty addr":        func(c *Config) { c.Server.Addr = "" },
		"zero body limit":   func(c *Config) { c.Server.MaxBodyBytes = 0 },
		"negative wastage":  func(c *Config) { c.Estimate.Settings.WastagePercent = -1 },
		"negative cost":     func(c *Config) { c.Estimate.Settings.FallbackUnitCost = -1 },
		"negative tile":     func(c *Config) { c.Estimate.Settings.FallbackTileHeight = -1 },
		"negative attempts": func(c *Config) { c.Narrative.Attempts = -1 },
		"redis without addr": func(c *Config) {
			c.Cache.Backend = "redis"
			c.Cache.RedisAddr = ""
		},
		"negative ttl":  func(c *Config) { c.Cache.TTL = -time.Second },
		"zero deadline": func(c *Config) { c.Narrative.Deadline = 0 },
		"deadline past write timeout": func(c *Config) {
			c.Server.WriteTimeout = 30 * time.Second
			c.Narrative.Deadline = 30 * time.Second
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestDefault_ProviderFitsWriteTimeout(t *testing.T) {
	cfg := Default()
	assert.Less(t, cfg.Narrative.Deadline, cfg.Server.WriteTimeout)
	assert.LessOrEqual(t, cfg.Narrative.Timeout, cfg.Narrative.Deadline)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Server.Addr = ":1234"
	cfg.Estimate.Settings.TieredWastage = true
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":1234", loaded.Server.Addr)
	assert.True(t, loaded.Estimate.Settings.TieredWastage)
}
