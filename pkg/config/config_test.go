package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
environment: production
server:
  port: 9090
backend:
  base_url: http://api:8000
cache:
  ttl: 5s
preferences:
  driver: sqlite
sqlite:
  path: /data/prefs.db
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "http://api:8000", c.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, c.Cache.TTL)
	assert.Equal(t, "memory", c.Cache.Driver, "unset keys keep their default")
	assert.Equal(t, "sqlite", c.Preferences.Driver)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"BACKEND_URL":        "http://other:1",
		"PREFERENCES_DRIVER": "redis",
		"REDIS_ADDR":         "redis:6379",
		"REDIS_DB":           "2",
		"KAFKA_BROKERS":      "k1:9092, k2:9092,",
		"LOG_LEVEL":          "debug",
		"PORT":               "7000",
	}
	c := Default()
	require.NoError(t, c.applyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "http://other:1", c.Backend.BaseURL)
	assert.Equal(t, "redis", c.Preferences.Driver)
	assert.Equal(t, "redis:6379", c.Redis.Addr)
	assert.Equal(t, 2, c.Redis.DB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	assert.True(t, c.Kafka.Enabled)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 7000, c.Server.Port)
	assert.NoError(t, c.Validate())

	bad := Default()
	assert.Error(t, bad.applyEnv(func(k string) string {
		if k == "PORT" {
			return "eighty"
		}
		return ""
	}))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no environment", func(c *Config) { c.Environment = "" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"no backend", func(c *Config) { c.Backend.BaseURL = "" }},
		{"unknown cache driver", func(c *Config) { c.Cache.Driver = "disk" }},
		{"unknown preferences driver", func(c *Config) { c.Preferences.Driver = "postgres" }},
		{"redis without addr", func(c *Config) { c.Preferences.Driver = "redis"; c.Redis.Addr = "" }},
		{"sqlite without path", func(c *Config) { c.Preferences.Driver = "sqlite"; c.SQLite.Path = "" }},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true }},
		{"collector without kafka", func(c *Config) { c.Log.Collector.Enabled = true }},
		{"live without schedule", func(c *Config) { c.Live.Schedule = "" }},
		{"zero rate", func(c *Config) { c.RateLimit.Rate = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
