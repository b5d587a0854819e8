// Package bootstrap wires the native handle, metrics, cache and molecule
// service from a Config.  Both binaries build on it.
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/turtacn/rdkit-go/internal/application/molecule"
	"github.com/turtacn/rdkit-go/internal/config"
	"github.com/turtacn/rdkit-go/internal/infrastructure/database/redis"
	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/rdkit-go/internal/infrastructure/native"
	"github.com/turtacn/rdkit-go/pkg/rdkit"
)

// Infrastructure holds everything a process needs to serve molecule calls.
// Redis and NativeLog are nil when disabled.
type Infrastructure struct {
	Handle    *rdkit.Handle
	NativeLog *rdkit.LogCapture
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics
	Redis     *redis.Client
	Cache     redis.Cache
	Service   molecule.Service

	logger logging.Logger
}

// Close releases the native log capture and the Redis pool.  The handle
// itself stays loaded for the life of the process.
func (i *Infrastructure) Close() {
	if i.NativeLog != nil {
		i.FlushNativeLog()
		_ = i.NativeLog.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
}

// FlushNativeLog forwards whatever the library has written to the tee
// channel since the last flush, one debug entry per line.
func (i *Infrastructure) FlushNativeLog() int {
	if i.NativeLog == nil {
		return 0
	}
	text, err := i.NativeLog.Buffer()
	if err != nil || text == "" {
		return 0
	}
	_ = i.NativeLog.Clear()
	log := i.logger.Named("native")
	n := 0
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			log.Debug(line, logging.String("channel", i.NativeLog.Name()))
			n++
		}
	}
	return n
}

// Opener loads a handle; tests substitute one backed by a fake library.
type Opener func(paths []string, opts ...rdkit.Option) (*rdkit.Handle, error)

// Init builds the Infrastructure for cfg.  An unreachable Redis is logged
// and replaced by a cache that always misses.
func Init(cfg *config.Config, logger logging.Logger, open Opener) (*Infrastructure, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if open == nil {
		open = rdkit.Open
	}
	infra := &Infrastructure{logger: logger}

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            cfg.Metrics.Namespace,
		EnableProcessMetrics: cfg.Metrics.Enabled,
		EnableGoMetrics:      cfg.Metrics.Enabled,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	infra.Collector = collector
	infra.Metrics = prometheus.NewAppMetrics(collector)

	paths := native.CandidatePaths(cfg.Native.LibraryPaths, vendorRoot(cfg.Native))
	h, err := open(paths, rdkit.WithLogger(logger), rdkit.WithInstrumentation(infra.Metrics))
	if err != nil {
		return nil, err
	}
	infra.Handle = h
	rdkit.SetDefault(h)

	if infra.NativeLog, err = ApplyNative(h, cfg.Native); err != nil {
		return nil, fmt.Errorf("native: %w", err)
	}

	infra.Cache = redis.NopCache{}
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis, logger)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, caching disabled",
				logging.String("addr", cfg.Redis.Addr))
		} else {
			infra.Redis = client
			infra.Cache = redis.NewRedisCache(client, logger,
				redis.WithPrefix(cfg.Redis.KeyPrefix),
				redis.WithDefaultTTL(cfg.Redis.DefaultTTL),
				redis.WithObserver(infra.Metrics),
			)
		}
	}

	infra.Service = molecule.NewService(h, infra.Cache, infra.Metrics, molecule.Options{
		Concurrency:  cfg.Worker.Concurrency,
		MaxBatchSize: cfg.Worker.MaxBatchSize,
		CacheTTL:     cfg.Redis.DefaultTTL,
	}, logger)

	version, _ := h.Version()
	logger.Info("rdkit loaded",
		logging.String("path", h.LibraryPath()),
		logging.String("version", version),
		logging.Bool("cache", infra.Redis != nil),
	)
	return infra, nil
}

// ApplyNative sets the process-wide library switches from cfg and, when
// native logging is on, tees cfg.LogChannel into a capture.
func ApplyNative(h *rdkit.Handle, cfg config.NativeConfig) (*rdkit.LogCapture, error) {
	h.PreferCoordgen(cfg.PreferCoordgen)
	h.UseLegacyStereoPerception(cfg.LegacyStereo)
	h.AllowNonTetrahedralChirality(cfg.AllowNonTetrahedral)
	if !cfg.EnableLogging {
		h.DisableLogging()
		return nil, nil
	}
	h.EnableLogging()
	return h.TeeLogs(cfg.LogChannel)
}

func vendorRoot(cfg config.NativeConfig) string {
	if cfg.VendorDir != "" {
		return cfg.VendorDir
	}
	return native.ExecutableVendorRoot()
}

//Personal.AI order the ending
