// Package config defines all configuration structures for rdkit-go.  No I/O
// or parsing logic lives here; only plain data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// NativeConfig controls how librdkitcffi is located and which process-wide
// switches are applied once it is loaded.
type NativeConfig struct {
	LibraryPaths        []string `mapstructure:"library_paths"`
	VendorDir           string   `mapstructure:"vendor_dir"`
	PreferCoordgen      bool     `mapstructure:"prefer_coordgen"`
	LegacyStereo        bool     `mapstructure:"legacy_stereo"`
	AllowNonTetrahedral bool     `mapstructure:"allow_non_tetrahedral"`
	EnableLogging       bool     `mapstructure:"enable_logging"`
	LogChannel          string   `mapstructure:"log_channel"`
}

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host                 string        `mapstructure:"host"`
	Port                 int           `mapstructure:"port"`
	ReadTimeout          time.Duration `mapstructure:"read_timeout"`
	WriteTimeout         time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout      time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodySize          int64         `mapstructure:"max_body_size"`
	SlowRequestThreshold time.Duration `mapstructure:"slow_request_threshold"`
	// CORSOrigins lists browser origins allowed to call the API; "*" allows
	// any.  Empty disables CORS headers.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Address returns host:port for net/http.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisConfig holds the depiction/fingerprint cache connection.  The cache
// is optional; with Enabled false every lookup misses.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// WorkerConfig bounds batch processing.
type WorkerConfig struct {
	Concurrency  int `mapstructure:"concurrency"`
	MaxBatchSize int `mapstructure:"max_batch_size"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string   `mapstructure:"format"` // "json" | "console"
	Output []string `mapstructure:"output"`
}

// Logging converts the section into the logger's own config.
func (l LogConfig) Logging() logging.LogConfig {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		level = logging.LevelInfo
	}
	return logging.LogConfig{
		Level:       level,
		Format:      l.Format,
		OutputPaths: l.Output,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration shared by the CLI and the server.
type Config struct {
	Native  NativeConfig  `mapstructure:"native"`
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	if c.Server.MaxBodySize < 1 {
		return fmt.Errorf("config: server.max_body_size must be ≥ 1, got %d", c.Server.MaxBodySize)
	}

	// Redis
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis.enabled is true")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
	}
	if c.Redis.DefaultTTL < 0 {
		return fmt.Errorf("config: redis.default_ttl must not be negative")
	}

	// Worker
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("config: worker.concurrency must be ≥ 1, got %d", c.Worker.Concurrency)
	}
	if c.Worker.MaxBatchSize < 1 {
		return fmt.Errorf("config: worker.max_batch_size must be ≥ 1, got %d", c.Worker.MaxBatchSize)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics.enabled is true")
	}

	// Log
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

//Personal.AI order the ending
