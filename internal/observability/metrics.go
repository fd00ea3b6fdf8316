package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storyteller/internal/retry"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests       *prometheus.CounterVec
	StoryRequests      *prometheus.CounterVec
	CompletionErrors   *prometheus.CounterVec
	CompletionDuration prometheus.Histogram
	HistoryTurns       prometheus.Gauge
}

// NewMetrics registers instruments on a private registry, so several
// instances can coexist in one process (tests, CLI).
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		StoryRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "story_requests_total",
			Help:      "Story generation requests by outcome.",
		}, []string{"outcome"}),
		CompletionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_errors_total",
			Help:      "Failed completion calls by reason.",
		}, []string{"reason"}),
		CompletionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_duration_seconds",
			Help:      "Latency of completion API calls.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
		HistoryTurns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_turns",
			Help:      "Turns currently held in the session window.",
		}),
	}
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveStoryRequest(outcome string) {
	m.StoryRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCompletion(d time.Duration, err error) {
	m.CompletionDuration.Observe(d.Seconds())
	if err != nil {
		m.CompletionErrors.WithLabelValues(retry.Reason(err)).Inc()
	}
}

func (m *Metrics) SetHistoryTurns(n int) {
	m.HistoryTurns.Set(float64(n))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
