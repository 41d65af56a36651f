package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Research metrics
	ResearchRunsTotal     *prometheus.CounterVec
	ResearchDuration      *prometheus.HistogramVec
	ArticlesAnalyzedTotal *prometheus.CounterVec

	// External API metrics
	ExternalAPIRequestsTotal *prometheus.CounterVec
	ExternalAPIErrorsTotal   *prometheus.CounterVec
	ExternalAPIDuration      *prometheus.HistogramVec

	// Media pipeline metrics
	MediaJobsTotal   *prometheus.CounterVec
	MediaJobDuration *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// mediaBuckets cover encode jobs, which routinely run past a minute
var mediaBuckets = []float64{1, 5, 10, 30, 60, 120, 300}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		ResearchRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "market_scout",
				Subsystem: "research",
				Name:      "runs_total",
				Help:      "Total number of research runs",
			},
			[]string{"status"},
		),
		ResearchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "market_scout",
				Subsystem: "research",
				Name:      "duration_seconds",
				Help:      "Duration of research runs in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"status"},
		),
		ArticlesAnalyzedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "market_scout",
				Subsystem: "research",
				Name:      "articles_analyzed_total",
				Help:      "Total number of articles analyzed",
			},
			[]string{"status"},
		),

		ExternalAPIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "market_scout",
				Subsystem: "external_api",
				Name:      "requests_total",
				Help:      "Total number of external API requests",
			},
			[]string{"service", "operation"},
		),
		ExternalAPIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "market_scout",
				Subsystem: "external_api",
				Name:      "errors_total",
				Help:      "Total number of external API errors",
			},
			[]string{"service", "operation", "error_type"},
		),
		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "market_scout",
				Subsystem: "external_api",
				Name:      "duration_seconds",
				Help:      "Duration of external API calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"service", "operation"},
		),

		MediaJobsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "market_scout",
				Subsystem: "media",
				Name:      "jobs_total",
				Help:      "Total number of media assembly jobs",
			},
			[]string{"stage", "status"},
		),
		MediaJobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "market_scout",
				Subsystem: "media",
				Name:      "job_duration_seconds",
				Help:      "Duration of media assembly jobs in seconds",
				Buckets:   mediaBuckets,
			},
			[]string{"stage"},
		),

		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "market_scout",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"service"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "market_scout",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"service"},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// RecordResearchRun records a completed research run
func (m *Metrics) RecordResearchRun(status string, duration time.Duration) {
	m.ResearchRunsTotal.WithLabelValues(status).Inc()
	m.ResearchDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordArticleAnalyzed records a per-article extraction outcome
func (m *Metrics) RecordArticleAnalyzed(status string) {
	m.ArticlesAnalyzedTotal.WithLabelValues(status).Inc()
}

// RecordExternalAPIRequest records an external API request
func (m *Metrics) RecordExternalAPIRequest(service, operation string) {
	m.ExternalAPIRequestsTotal.WithLabelValues(service, operation).Inc()
}

// RecordExternalAPIError records an external API error
func (m *Metrics) RecordExternalAPIError(service, operation, errorType string) {
	m.ExternalAPIErrorsTotal.WithLabelValues(service, operation, errorType).Inc()
}

// RecordExternalAPIDuration records the duration of an external API call
func (m *Metrics) RecordExternalAPIDuration(service, operation string, duration time.Duration) {
	m.ExternalAPIDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordMediaJob records a media assembly job outcome
func (m *Metrics) RecordMediaJob(stage, status string, duration time.Duration) {
	m.MediaJobsTotal.WithLabelValues(stage, status).Inc()
	m.MediaJobDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// SetCircuitBreakerState sets the current state of a circuit breaker
func (m *Metrics) SetCircuitBreakerState(service string, state int) {
	m.CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(service string) {
	m.CircuitBreakerTrips.WithLabelValues(service).Inc()
}

// Timer is a helper for timing operations
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer
func (m *Metrics) NewTimer() *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
	}
}

// ObserveExternalAPI records the external API duration
func (t *Timer) ObserveExternalAPI(service, operation string) {
	t.metrics.RecordExternalAPIDuration(service, operation, time.Since(t.start))
}

// ObserveResearch records the research run duration and status
func (t *Timer) ObserveResearch(status string) {
	t.metrics.RecordResearchRun(status, time.Since(t.start))
}

// ObserveMediaJob records the media job duration and status
func (t *Timer) ObserveMediaJob(stage, status string) {
	t.metrics.RecordMediaJob(stage, status, time.Since(t.start))
}

// Duration returns the elapsed time
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
