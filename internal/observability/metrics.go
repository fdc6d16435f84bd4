// Package observability exposes prometheus metrics and request tracing for
// the escrow service.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"engage-escrow/internal/core/domain"
)

const (
	namespace  = "engage_escrow"
	tracerName = "engage-escrow/http"
)

// Metrics records campaign transitions and HTTP traffic. It satisfies the
// usecase recorder interface.
type Metrics struct {
	registry     *prometheus.Registry
	transitions  *prometheus.CounterVec
	milestones   prometheus.Counter
	payoutAmount prometheus.Counter
	requests     *prometheus.CounterVec
	durations    *prometheus.HistogramVec
	tracer       trace.Tracer
}

// Option customises Metrics.
type Option func(*Metrics)

// WithTracerProvider takes request spans from tp instead of the global
// provider installed by InitTracing.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Metrics) {
		if tp != nil {
			m.tracer = tp.Tracer(tracerName)
		}
	}
}

// New registers the collectors on a private registry.
func New(opts ...Option) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Campaign operations by outcome.",
		}, []string{"operation", "outcome"}),
		milestones: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "milestones_paid_total",
			Help:      "Milestone bands released to influencers.",
		}),
		payoutAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payout_base_units_total",
			Help:      "Token base units released to influencers.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests processed.",
		}, []string{"route", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.registry.MustRegister(m.transitions, m.milestones, m.payoutAmount, m.requests, m.durations)
	return m
}

// ObserveTransition counts one operation. The outcome is "ok" or the
// domain error code.
func (m *Metrics) ObserveTransition(op domain.Operation, err error) {
	outcome := "ok"
	if err != nil {
		outcome = domain.ErrorCode(err)
	}
	m.transitions.WithLabelValues(string(op), outcome).Inc()
}

// ObservePayouts counts released bands and amounts.
func (m *Metrics) ObservePayouts(payouts []domain.Payout) {
	for _, p := range payouts {
		m.milestones.Inc()
		m.payoutAmount.Add(float64(p.Amount))
	}
}

// Middleware traces and measures every request. The route label is the chi
// route pattern so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := m.tracer.Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("http.method", r.Method)),
		)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		span.SetName(r.Method + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", rec.status),
		)
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.durations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
