package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/eugenenazirov/pagination/internal/api"
	"github.com/eugenenazirov/pagination/internal/config"
	"github.com/eugenenazirov/pagination/internal/paginator"
	"github.com/eugenenazirov/pagination/internal/storage"
)

const serviceName = "pagination"

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage   storage.Storage
	paginator paginator.Paginator
	handler   *api.Handler
	router    http.Handler
	registry  *prometheus.Registry
	logger    *zap.Logger
	server    *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStorage()
	if err := store.SetDefaults(cfg.Defaults); err != nil {
		return nil, fmt.Errorf("failed to apply initial defaults: %w", err)
	}

	var (
		registry       *prometheus.Registry
		metricsHandler http.Handler
		handlerOpts    []api.HandlerOption
	)
	if cfg.EnableMetrics {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		handlerOpts = append(handlerOpts, api.WithMetrics(api.NewMetrics(registry)))
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}

	p := paginator.New()
	handler := api.NewHandler(p, store, handlerOpts...)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		storage:   store,
		paginator: p,
		handler:   handler,
		router:    apiRouter,
		registry:  registry,
		logger:    logger,
		server:    NewServer(cfg, BuildRootHandler(apiRouter, metricsHandler)),
	}, nil
}

// BuildRootHandler mounts the API under /api/ and, when metricsHandler is
// non-nil, Prometheus metrics under /metrics. The bare root path describes
// the service.
func BuildRootHandler(apiHandler, metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	endpoints := []string{
		"GET /api/health",
		"GET /api/defaults",
		"PUT /api/defaults",
		"GET /api/paginate",
		"POST /api/paginate",
	}
	if metricsHandler != nil {
		endpoints = append(endpoints, "GET /metrics")
	}
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintf(w, "%s service\n\n%s\n", serviceName, strings.Join(endpoints, "\n"))
	}))

	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
