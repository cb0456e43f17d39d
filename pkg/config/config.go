package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"TradeLens/pkg/util"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		AllowOrigins    []string      `yaml:"allow_origins"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
		// Collector publishes aggregated warn/error entries to Kafka.
		Collector struct {
			Enabled        bool          `yaml:"enabled"`
			Topic          string        `yaml:"topic"`
			FlushInterval  time.Duration `yaml:"flush_interval"`
			CountThreshold int           `yaml:"count_threshold"`
		} `yaml:"collector"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Backend struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"backend"`
	// Cache holds backend responses. A zero TTL disables it.
	Cache struct {
		Driver string        `yaml:"driver"` // memory, redis or layered
		TTL    time.Duration `yaml:"ttl"`
		Size   int           `yaml:"size"`
	} `yaml:"cache"`
	Preferences struct {
		Driver string `yaml:"driver"` // memory, redis or sqlite
	} `yaml:"preferences"`
	Redis struct {
		Addr         string        `yaml:"addr"`
		Password     string        `yaml:"password"`
		DB           int           `yaml:"db"`
		PoolSize     int           `yaml:"pool_size"`
		MinIdleConns int           `yaml:"min_idle_conns"`
		PoolTimeout  time.Duration `yaml:"pool_timeout"`
	} `yaml:"redis"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	Live struct {
		Enabled  bool   `yaml:"enabled"`
		Schedule string `yaml:"schedule"` // cron spec with seconds field
	} `yaml:"live"`
	RateLimit struct {
		Enabled bool    `yaml:"enabled"`
		Rate    float64 `yaml:"rate"` // tokens per second per client
		Burst   int     `yaml:"burst"`
	} `yaml:"ratelimit"`
}

// Default returns a config usable for local development without a file.
func Default() *Config {
	var c Config
	c.Environment = "development"
	c.Server.Port = 8080
	c.Server.ReadTimeout = 15 * time.Second
	c.Server.WriteTimeout = 15 * time.Second
	c.Server.ShutdownTimeout = 10 * time.Second
	c.Server.AllowOrigins = []string{"*"}
	c.Log.Level = "info"
	c.Log.Format = "json"
	c.Log.Output = "stdout"
	c.Log.Collector.Topic = "tradelens.logs"
	c.Log.Collector.FlushInterval = 30 * time.Second
	c.Log.Collector.CountThreshold = 100
	c.Metrics.Enabled = true
	c.Metrics.Path = "/metrics"
	c.Backend.BaseURL = "http://localhost:8000"
	c.Backend.Timeout = 10 * time.Second
	c.Cache.Driver = "memory"
	c.Cache.TTL = 30 * time.Second
	c.Cache.Size = 1000
	c.Preferences.Driver = "memory"
	c.Redis.Addr = "localhost:6379"
	c.Redis.PoolSize = 10
	c.SQLite.Path = "tradelens.db"
	c.Kafka.Topic = "tradelens.events"
	c.Kafka.RequiredAcks = -1
	c.Kafka.Compression = "gzip"
	c.Kafka.Producer.MaxAttempts = 3
	c.Kafka.Producer.BatchSize = 100
	c.Kafka.Producer.Linger = time.Second
	c.Kafka.Producer.WriteTimeout = 10 * time.Second
	c.Kafka.Producer.ReadTimeout = 10 * time.Second
	c.Live.Enabled = true
	c.Live.Schedule = "*/30 * * * * *"
	c.RateLimit.Enabled = true
	c.RateLimit.Rate = 20
	c.RateLimit.Burst = 40
	return &c
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads .env (if present) and the YAML file, then applies
// environment overrides. An empty path skips the file.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c := Default()
	if path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return nil, err
		}
	}

	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := getenv("PREFERENCES_DRIVER"); v != "" {
		c.Preferences.Driver = v
	}
	if v := getenv("CACHE_DRIVER"); v != "" {
		c.Cache.Driver = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	c.Redis.DB = util.ParseIntDefault(getenv("REDIS_DB"), c.Redis.DB)
	if v := getenv("SQLITE_PATH"); v != "" {
		c.SQLite.Path = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
		c.Kafka.Enabled = true
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	switch c.Cache.Driver {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.driver must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Driver)
	}
	switch c.Preferences.Driver {
	case "memory", "redis", "sqlite":
	default:
		return fmt.Errorf("preferences.driver must be 'memory', 'redis' or 'sqlite', got '%s'", c.Preferences.Driver)
	}
	if c.UsesRedis() && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required for the redis driver")
	}
	if c.Preferences.Driver == "sqlite" && c.SQLite.Path == "" {
		return fmt.Errorf("sqlite.path is required for the sqlite driver")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Log.Collector.Enabled && !c.Kafka.Enabled {
		return fmt.Errorf("log.collector requires kafka")
	}
	if c.Live.Enabled && c.Live.Schedule == "" {
		return fmt.Errorf("live.schedule is required when the live feed is enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("ratelimit.rate and ratelimit.burst must be positive")
	}
	return nil
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Cache.Driver == "redis" || c.Cache.Driver == "layered" || c.Preferences.Driver == "redis"
}
