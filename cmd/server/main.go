package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/pagination/internal/application"
	"github.com/eugenenazirov/pagination/internal/config"
	"github.com/eugenenazirov/pagination/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("pagination-server", "Pagination Service - computes page indicators for pagination controls")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	itemsPerPage := kingpinApp.Flag("items-per-page", "Default page size").Default("-1").Int()
	siblings := kingpinApp.Flag("siblings", "Default number of sibling pages").Default("-1").Int()
	boundaries := kingpinApp.Flag("boundaries", "Default number of boundary pages").Default("-1").Int()
	var metricsSet bool
	metrics := kingpinApp.Flag("metrics", "Expose Prometheus metrics on /metrics").IsSetByUser(&metricsSet).Bool()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed per client (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *port != "" {
		overrides.Port = port
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *itemsPerPage >= 0 {
		overrides.ItemsPerPage = itemsPerPage
	}

	if *siblings >= 0 {
		overrides.SiblingsCount = siblings
	}

	if *boundaries >= 0 {
		overrides.Boundaries = boundaries
	}

	if metricsSet {
		overrides.EnableMetrics = metrics
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	logger.Info("pagination defaults",
		zap.Int("items_per_page", cfg.Defaults.ItemsPerPage),
		zap.Int("siblings_count", cfg.Defaults.SiblingsCount),
		zap.Int("boundaries", cfg.Defaults.Boundaries),
		zap.Bool("metrics", cfg.EnableMetrics),
	)

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
