package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "pagination"

// Metrics holds the Prometheus collectors for the API. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	computeDuration prometheus.Histogram
	totalPages      prometheus.Histogram
	rejected        *prometheus.CounterVec
}

// NewMetrics creates the API collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		computeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "compute_duration_seconds",
			Help:      "Time spent computing a pagination layout.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}),
		totalPages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "total_pages",
			Help:      "Number of pages in computed layouts.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rejected_total",
			Help:      "Paginate requests rejected by validation, by offending field.",
		}, []string{"field"}),
	}
	reg.MustRegister(m.requests, m.computeDuration, m.totalPages, m.rejected)
	return m
}

func (m *Metrics) observeCompute(elapsed time.Duration, totalPages int) {
	if m == nil {
		return
	}
	m.computeDuration.Observe(elapsed.Seconds())
	m.totalPages.Observe(float64(totalPages))
}

func (m *Metrics) observeRejected(field string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(field).Inc()
}

func metricsMiddleware(m *Metrics, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// the mux fills in Pattern on the way through
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}
