package observability

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	MetricHTTPRequestsTotal   = "shortsview_http_requests_total"
	MetricHTTPRequestDuration = "shortsview_http_request_duration_seconds"
	MetricHTTPInflight        = "shortsview_http_inflight_requests"
	MetricViewsCounted        = "shortsview_views_counted_total"
	MetricViewEvents          = "shortsview_view_events_total"
	MetricEmotionSamples      = "shortsview_emotion_samples_total"
	MetricWarningsRaised      = "shortsview_warnings_raised_total"
	MetricUploads             = "shortsview_uploads_total"
)

// View counter paths.
const (
	ViewPathTrack     = "track"
	ViewPathIncrement = "increment"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing, so callers never need to check.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
	httpInflight   prometheus.Gauge
	viewsCounted   *prometheus.CounterVec
	viewEvents     *prometheus.CounterVec
	emotionSamples prometheus.Counter
	warnings       *prometheus.CounterVec
	uploads        *prometheus.CounterVec
}

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

func NewMetrics() *Metrics {
	return &Metrics{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricHTTPRequestsTotal,
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPRequestDuration,
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route", "status"},
		),
		httpInflight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: MetricHTTPInflight,
				Help: "HTTP requests currently being served",
			},
		),
		viewsCounted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricViewsCounted,
				Help: "Increments applied to video view counters, by path",
			},
			[]string{"path"},
		),
		viewEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricViewEvents,
				Help: "Playback reports stored, by completion",
			},
			[]string{"completed"},
		),
		emotionSamples: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricEmotionSamples,
				Help: "Emotion samples stored",
			},
		),
		warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricWarningsRaised,
				Help: "Warnings raised by the wellbeing check, by reason",
			},
			[]string{"reason"},
		),
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricUploads,
				Help: "Video upload attempts, by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Register registers all collectors (plus the Go and process collectors) with
// a fresh registry that Handler serves.
func (m *Metrics) Register() error {
	reg := prometheus.NewRegistry()
	for _, c := range append(m.Collectors(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	) {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	m.registry = reg
	return nil
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.httpRequests,
		m.httpLatency,
		m.httpInflight,
		m.viewsCounted,
		m.viewEvents,
		m.emotionSamples,
		m.warnings,
		m.uploads,
	}
}

// Handler serves the exposition format for the registry built by Register.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) InflightInc() {
	if m == nil {
		return
	}
	m.httpInflight.Inc()
}

func (m *Metrics) InflightDec() {
	if m == nil {
		return
	}
	m.httpInflight.Dec()
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpLatency.WithLabelValues(method, route, status).Observe(d.Seconds())
}

func (m *Metrics) IncViewCounted(path string) {
	if m == nil {
		return
	}
	m.viewsCounted.WithLabelValues(path).Inc()
}

func (m *Metrics) IncViewEvent(completed bool) {
	if m == nil {
		return
	}
	label := "false"
	if completed {
		label = "true"
	}
	m.viewEvents.WithLabelValues(label).Inc()
}

func (m *Metrics) IncEmotionSample() {
	if m == nil {
		return
	}
	m.emotionSamples.Inc()
}

func (m *Metrics) IncWarning(reasons []string) {
	if m == nil {
		return
	}
	for _, r := range reasons {
		m.warnings.WithLabelValues(r).Inc()
	}
}

func (m *Metrics) IncUpload(outcome string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(outcome).Inc()
}
