package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/rdkit-go/internal/config"
	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
)

// validConfig returns a Config that passes Validate().
func validConfig() *config.Config {
	return config.Default()
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_InvalidServerPort(t *testing.T) {
	t.Parallel()
	cases := []int{0, -1, 65536, 100000}
	for _, p := range cases {
		p := p
		t.Run("", func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			cfg.Server.Port = p
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "server.port")
		})
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"max body", func(c *config.Config) { c.Server.MaxBodySize = 0 }, "server.max_body_size"},
		{"redis addr", func(c *config.Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }, "redis.addr"},
		{"redis db", func(c *config.Config) { c.Redis.DB = -1 }, "redis.db"},
		{"redis ttl", func(c *config.Config) { c.Redis.DefaultTTL = -1 }, "redis.default_ttl"},
		{"concurrency", func(c *config.Config) { c.Worker.Concurrency = 0 }, "worker.concurrency"},
		{"batch", func(c *config.Config) { c.Worker.MaxBatchSize = -5 }, "worker.max_batch_size"},
		{"metrics ns", func(c *config.Config) { c.Metrics.Enabled = true; c.Metrics.Namespace = "" }, "metrics.namespace"},
		{"log level", func(c *config.Config) { c.Log.Level = "verbose" }, "log.level"},
		{"log format", func(c *config.Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestConfig_Validate_RedisDisabledNeedsNoAddr(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Redis.Enabled = false
	cfg.Redis.Addr = ""
	assert.NoError(t, cfg.Validate())
}

func TestServerConfig_Address(t *testing.T) {
	t.Parallel()
	s := config.ServerConfig{Host: "127.0.0.1", Port: 9090}
	assert.Equal(t, "127.0.0.1:9090", s.Address())
}

func TestLogConfig_Logging(t *testing.T) {
	t.Parallel()
	lc := config.LogConfig{Level: "WARN", Format: "console", Output: []string{"stderr"}}.Logging()
	assert.Equal(t, logging.LevelWarn, lc.Level)
	assert.Equal(t, "console", lc.Format)
	assert.Equal(t, []string{"stderr"}, lc.OutputPaths)

	assert.Equal(t, logging.LevelInfo, config.LogConfig{Level: "loud"}.Logging().Level)
}

//Personal.AI order the ending
