package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SessionsCreatedTotal prometheus.Counter
	RateRequestsTotal    *prometheus.CounterVec
	RateRequestDuration  prometheus.Histogram
}

func (m *Metrics) SessionCreated() { m.SessionsCreatedTotal.Inc() }

func (m *Metrics) RateRequested(outcome string, elapsed time.Duration) {
	m.RateRequestsTotal.WithLabelValues(outcome).Inc()
	m.RateRequestDuration.Observe(elapsed.Seconds())
}

// Middleware records every request under its chi route pattern, not the raw path,
// so session ids don't explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(path, r.Method).Observe(time.Since(started).Seconds())
	})
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxconvert_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxconvert_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		SessionsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fxconvert_sessions_created_total",
				Help: "Total number of conversion sessions created",
			},
		),

		RateRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxconvert_rate_requests_total",
				Help: "Total number of rate requests by outcome",
			},
			[]string{"outcome"},
		),

		RateRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fxconvert_rate_request_duration_seconds",
				Help:    "Time spent waiting for the rate service",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
