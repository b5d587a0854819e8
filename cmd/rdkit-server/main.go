// Command rdkit-server serves the molecule API over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/rdkit-go/internal/bootstrap"
	"github.com/turtacn/rdkit-go/internal/config"
	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/rdkit-go/internal/interfaces/http"
	"github.com/turtacn/rdkit-go/internal/interfaces/http/handlers"
	"github.com/turtacn/rdkit-go/internal/interfaces/http/middleware"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

const nativeLogFlushInterval = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: RDKIT_* environment only)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(cfg.Log.Logging())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)

	if *configPath != "" {
		watchLogLevel(*configPath, logger)
	}

	infra, err := bootstrap.Init(cfg, logger, nil)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize rdkit")
	}
	defer infra.Close()

	rdkitVersion, _ := infra.Handle.Version()
	logger.Info("starting rdkit-server",
		logging.String("version", version),
		logging.String("commit", commit),
		logging.String("rdkit", rdkitVersion),
		logging.String("addr", cfg.Server.Address()),
	)

	logCfg := middleware.DefaultLoggingConfig()
	if cfg.Server.SlowRequestThreshold > 0 {
		logCfg.SlowThreshold = cfg.Server.SlowRequestThreshold
	}
	routerCfg := httpserver.RouterConfig{
		MoleculeHandler: handlers.NewMoleculeHandler(infra.Service, logger),
		HealthHandler:   handlers.NewHealthHandler(rdkitVersion, readinessCheckers(infra)...),
		Logger:          logger,
		Logging:         logCfg,
		MaxBodySize:     cfg.Server.MaxBodySize,
		CORSOrigins:     cfg.Server.CORSOrigins,
	}
	if cfg.Metrics.Enabled {
		routerCfg.MetricsCollector = infra.Collector
		routerCfg.MetricsPath = cfg.Metrics.Path
		routerCfg.HTTPObserver = infra.Metrics
	}
	srv := httpserver.NewServer(cfg.Server, httpserver.NewRouter(routerCfg), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if infra.NativeLog != nil {
		go flushNativeLog(ctx, infra)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.WithError(err).Error("HTTP server failed")
		}
	case <-ctx.Done():
		if err := srv.Stop(context.Background()); err != nil {
			logger.WithError(err).Error("graceful shutdown failed")
		}
	}
	logger.Info("rdkit-server stopped")
}

// watchLogLevel applies log.level changes from the config file without a
// restart.  Other settings need one.
func watchLogLevel(path string, logger logging.Logger) {
	setter, ok := logger.(logging.LevelSetter)
	if !ok {
		return
	}
	err := config.Watch(path, func(cfg *config.Config) {
		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return
		}
		setter.SetLevel(level)
		logger.Info("log level reloaded", logging.String("level", level.String()))
	}, func(err error) {
		logger.WithError(err).Warn("ignoring invalid config change")
	})
	if err != nil {
		logger.WithError(err).Warn("config watch disabled")
	}
}

func flushNativeLog(ctx context.Context, infra *bootstrap.Infrastructure) {
	ticker := time.NewTicker(nativeLogFlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			infra.FlushNativeLog()
		}
	}
}

//Personal.AI order the ending
