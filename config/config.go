/*
Package config loads server settings through viper.

PURPOSE:
  One typed struct for everything cmd/server needs. Values come from, in
  increasing precedence: defaults below, an optional YAML file, CALC_*
  environment variables, then command-line flags bound by the caller.

KEYS:
  server.port              8080
  server.read_timeout      15s
  server.write_timeout     15s
  server.idle_timeout      60s
  server.shutdown_timeout  30s
  server.cors_origins      http://localhost:3000, http://localhost:5173
  cache.driver             memory | sqlite | none
  cache.path               :memory:   (sqlite only)
  cache.max_entries        4096
  cache.purge_interval     24h        (0 disables)
  ratelimit.requests       60         (0 disables)
  ratelimit.window         1m
  logging.level            info
  logging.format           console | json

ENVIRONMENT:
  Nested keys map to CALC_SECTION_KEY, e.g. CALC_SERVER_PORT=3000.

SEE ALSO:
  - cmd/server/main.go: Flag binding and config file discovery
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "CALC"

type Config struct {
	Server    ServerConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

// CacheDriver selects the ResultCache implementation.
type CacheDriver string

const (
	CacheMemory CacheDriver = "memory"
	CacheSQLite CacheDriver = "sqlite"
	CacheNone   CacheDriver = "none"
)

type CacheConfig struct {
	Driver        CacheDriver
	Path          string
	MaxEntries    int
	PurgeInterval time.Duration
}

// RateLimitConfig allows Requests per Window per client. Zero Requests
// disables limiting.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("cache.driver", string(CacheMemory))
	v.SetDefault("cache.path", ":memory:")
	v.SetDefault("cache.max_entries", 4096)
	v.SetDefault("cache.purge_interval", 24*time.Hour)

	v.SetDefault("ratelimit.requests", 60)
	v.SetDefault("ratelimit.window", time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// BindEnv makes CALC_SERVER_PORT and friends override file values.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the config from v (defaults and env must already be set up)
// and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			IdleTimeout:     v.GetDuration("server.idle_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			CORSOrigins:     v.GetStringSlice("server.cors_origins"),
		},
		Cache: CacheConfig{
			Driver:        CacheDriver(strings.ToLower(v.GetString("cache.driver"))),
			Path:          v.GetString("cache.path"),
			MaxEntries:    v.GetInt("cache.max_entries"),
			PurgeInterval: v.GetDuration("cache.purge_interval"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("ratelimit.requests"),
			Window:   v.GetDuration("ratelimit.window"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("logging.level")),
			Format: strings.ToLower(v.GetString("logging.format")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration with nothing overridden.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults are invalid: %v", err))
	}
	return cfg
}

// Validate rejects out-of-range values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", c.Server.Port)
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	switch c.Cache.Driver {
	case CacheMemory, CacheNone:
	case CacheSQLite:
		if c.Cache.Path == "" {
			return fmt.Errorf("cache.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown cache.driver %q (want memory, sqlite or none)", c.Cache.Driver)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must not be negative")
	}
	if c.Cache.PurgeInterval < 0 {
		return fmt.Errorf("cache.purge_interval must not be negative")
	}

	if c.RateLimit.Requests < 0 {
		return fmt.Errorf("ratelimit.requests must not be negative")
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("ratelimit.window must be positive when limiting is enabled")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
