package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/pagination/internal/paginator"
	"github.com/eugenenazirov/pagination/internal/storage"
)

func TestLoggingMiddleware(t *testing.T) {
	logger := zaptest.NewLogger(t)
	var called bool
	handler := loggingMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to be called")
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := zaptest.NewLogger(t)
	handler := recoveryMiddleware(logger, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}
}

func TestResponseRecorderWriteHeader(t *testing.T) {
	underlying := httptest.NewRecorder()
	rec := &responseRecorder{ResponseWriter: underlying}
	rec.WriteHeader(http.StatusTeapot)

	if rec.status != http.StatusTeapot {
		t.Fatalf("expected status to be recorded")
	}
	if underlying.Code != http.StatusTeapot {
		t.Fatalf("expected status to propagate to ResponseWriter")
	}
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	router := newTestRouter(t, WithLogging(false))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	id := rec.Header().Get("X-Request-ID")
	if len(id) != 36 || strings.Count(id, "-") != 4 {
		t.Fatalf("expected generated UUID request id, got %q", id)
	}
}

func TestWithRateLimiterOptionAppliesLimiter(t *testing.T) {
	router := newTestRouter(t, WithLogging(false), WithRateLimiter(&staticLimiter{allow: false}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected rate limiter to block request, got %d", rec.Code)
	}
}

func TestWithRateLimitDisablesLimiterWhenZero(t *testing.T) {
	router := newTestRouter(t, WithLogging(false), WithRateLimiter(&staticLimiter{allow: false}), WithRateLimit(0, 0))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected limiter to be disabled, got %d", rec.Code)
	}
}

func TestWithRateLimitEnforcesLimit(t *testing.T) {
	router := newTestRouter(t, WithLogging(false), WithRateLimit(1, 1))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec.Code)
	}

	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req.Clone(req.Context()))
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected rate limiter to block second request, got %d", rec2.Code)
	}
}

func TestMetricsRecordRequestsAndRejections(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	handler := NewHandler(paginator.New(), storage.NewMemoryStorage(), WithMetrics(metrics))
	router := NewRouter(handler, zaptest.NewLogger(t), WithLogging(false), WithRateLimit(0, 0))

	for _, target := range []string{
		"/api/paginate?currentPage=2&totalItems=40",
		"/api/paginate?currentPage=3&totalItems=40",
		"/api/paginate?itemsPerPage=0",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	}

	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("GET /api/paginate", "200")); got != 2 {
		t.Fatalf("expected 2 successful paginate requests, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("GET /api/paginate", "400")); got != 1 {
		t.Fatalf("expected 1 rejected paginate request, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.rejected.WithLabelValues(paginator.FieldItemsPerPage)); got != 1 {
		t.Fatalf("expected itemsPerPage rejection to be counted, got %v", got)
	}
	if got := testutil.CollectAndCount(metrics.computeDuration); got != 1 {
		t.Fatalf("expected compute duration histogram to be collected, got %d", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.observeRejected("x")
	m.observeCompute(0, 1)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	if got := metricsMiddleware(nil, next); got == nil {
		t.Fatalf("expected passthrough handler")
	}
}

func newTestRouter(t *testing.T, opts ...RouterOption) http.Handler {
	t.Helper()

	handler := NewHandler(paginator.New(), storage.NewMemoryStorage())
	logger := zaptest.NewLogger(t)
	return NewRouter(handler, logger, opts...)
}
