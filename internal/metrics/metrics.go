package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/alexanderramin/foreman/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's collectors on a private registry so several
// instances (tests, embedded servers) never collide.
type Metrics struct {
	registry *prometheus.Registry

	useCasesTotal      *prometheus.CounterVec
	useCaseDuration    *prometheus.HistogramVec
	rejectionsTotal    *prometheus.CounterVec
	cascadedTotal      prometheus.Counter
	cascadeWarnings    prometheus.Counter
	schedulesStored    prometheus.Gauge
	httpRequestsTotal  *prometheus.CounterVec
	httpRequestLatency *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		useCasesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foreman_use_cases_total",
				Help: "Total number of schedule use cases by outcome",
			},
			[]string{"use_case", "outcome"},
		),
		useCaseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foreman_use_case_duration_seconds",
				Help:    "Schedule use case latency in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"use_case"},
		),
		rejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foreman_rejections_total",
				Help: "Mutations refused by the engine, by reason",
			},
			[]string{"kind"},
		),
		cascadedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "foreman_cascaded_schedules_total",
				Help: "Dependents re-timed by cascades",
			},
		),
		cascadeWarnings: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "foreman_cascade_conflict_warnings_total",
				Help: "Double-bookings introduced by cascades",
			},
		),
		schedulesStored: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "foreman_schedules",
				Help: "Number of schedules in the collection",
			},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foreman_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foreman_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveUseCase implements service.UseCaseObserver.
func (m *Metrics) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	outcome := "success"
	if event.Err != nil {
		outcome = "error"
		if kind := domain.RejectionKind(event.Err); kind != "" {
			outcome = "rejected"
			m.rejectionsTotal.WithLabelValues(kind).Inc()
		}
	}
	m.useCasesTotal.WithLabelValues(event.Name, outcome).Inc()
	m.useCaseDuration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())

	if n, ok := event.Fields["cascaded"].(int); ok {
		m.cascadedTotal.Add(float64(n))
	}
	if n, ok := event.Fields["warnings"].(int); ok {
		m.cascadeWarnings.Add(float64(n))
	}
	if n, ok := event.Fields["schedules"].(int); ok {
		m.schedulesStored.Set(float64(n))
	}
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

var _ service.UseCaseObserver = (*Metrics)(nil)
