package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
native:
  library_paths:
    - /opt/rdkit/librdkitcffi.so
  prefer_coordgen: true
  enable_logging: true
server:
  host: "127.0.0.1"
  port: 8081
  read_timeout: 5s
redis:
  enabled: true
  addr: "redis:6379"
  default_ttl: 10m
worker:
  concurrency: 4
metrics:
  enabled: true
log:
  level: debug
  format: console
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/opt/rdkit/librdkitcffi.so"}, cfg.Native.LibraryPaths)
	assert.True(t, cfg.Native.PreferCoordgen)
	assert.True(t, cfg.Native.EnableLogging)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Redis.DefaultTTL)
	assert.Equal(t, 4, cfg.Worker.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_FromFile_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_FromFile_InvalidYAML(t *testing.T) {
	path := createTempConfigFile(t, "invalid_yaml: [")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_FromFile_ValidationFailure(t *testing.T) {
	path := createTempConfigFile(t, "server:\n  port: 70000\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_EnvOverride(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	t.Setenv("RDKIT_SERVER_PORT", "9999")
	t.Setenv("RDKIT_REDIS_ADDR", "cache:6380")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RDKIT_NATIVE_LIBRARY_PATHS", "/a/librdkitcffi.so,/b/librdkitcffi.so")
	t.Setenv("RDKIT_WORKER_CONCURRENCY", "2")
	t.Setenv("RDKIT_LOG_LEVEL", "warn")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/librdkitcffi.so", "/b/librdkitcffi.so"}, cfg.Native.LibraryPaths)
	assert.Equal(t, 2, cfg.Worker.Concurrency)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)

	path := createTempConfigFile(t, validConfigYAML)
	cfg, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yaml")) })
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)

	var (
		mu    sync.Mutex
		level string
	)
	err := Watch(path, func(cfg *Config) {
		mu.Lock()
		level = cfg.Log.Level
		mu.Unlock()
	}, nil)
	require.NoError(t, err)

	updated := strings.Replace(validConfigYAML, "level: debug", "level: error", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return level == "error"
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatch_InvalidChangeReportsError(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)

	errs := make(chan error, 4)
	err := Watch(path, func(*Config) {}, func(err error) {
		select {
		case errs <- err:
		default:
		}
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 0\nworker:\n  concurrency: -1\n"), 0o644))

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "validation failed")
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported")
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "missing.yaml"), func(*Config) {}, nil)
	assert.Error(t, err)
}

//Personal.AI order the ending
