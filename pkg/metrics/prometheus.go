// Package metrics provides Prometheus metrics for the score-wise scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scoring service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring metrics - the heart of the engine
	ballsRecorded        prometheus.Counter
	validationRejections prometheus.Counter
	stateRejections      prometheus.Counter
	undosTotal           prometheus.Counter
	redosTotal           prometheus.Counter
	replaysTotal         prometheus.Counter
	replayDuration       prometheus.Histogram

	// Match lifecycle metrics
	matchesCreated   prometheus.Counter
	matchesCompleted prometheus.Counter
	liveMatches      prometheus.Gauge
	wicketsRecorded  prometheus.Counter
	extrasRecorded   *prometheus.CounterVec

	// Aggregation pipeline metrics
	aggregationsTotal     prometheus.Counter
	aggregationDuplicates prometheus.Counter
	aggregationErrors     prometheus.Counter
	queueSize             prometheus.Gauge
	queueCapacity         prometheus.Gauge
	queueUtilization      prometheus.Gauge
	queueEnqueues         prometheus.Counter
	queueDequeues         prometheus.Counter
	queueEnqueueErrors    prometheus.Counter
	workerCount           prometheus.Gauge
	workerErrors          prometheus.Counter
	workerLatency         prometheus.Histogram

	// Stats store metrics
	statsPlayersTotal prometheus.Gauge
	storeMergeLatency prometheus.Histogram
	storeQueryLatency prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go collector noise.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scorewise",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // metric registration is inherently long
	auto := promauto.With(m.registry)

	m.ballsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "balls_recorded_total",
		Help:      "Total number of deliveries accepted into match ledgers",
	})

	m.validationRejections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_rejections_total",
		Help:      "Total number of deliveries rejected with a validation error",
	})

	m.stateRejections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "state_rejections_total",
		Help:      "Total number of operations rejected with a state error",
	})

	m.undosTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "undos_total",
		Help:      "Total number of undo operations applied",
	})

	m.redosTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "redos_total",
		Help:      "Total number of redo operations applied",
	})

	m.replaysTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "replays_total",
		Help:      "Total number of ledger replays performed",
	})

	m.replayDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "replay_duration_milliseconds",
		Help:      "Histogram of full ledger replay duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.matchesCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_created_total",
		Help:      "Total number of matches created",
	})

	m.matchesCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_completed_total",
		Help:      "Total number of matches that reached completion",
	})

	m.liveMatches = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "live_matches",
		Help:      "Number of matches currently being scored",
	})

	m.wicketsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "wickets_recorded_total",
		Help:      "Total number of wickets recorded across all matches",
	})

	m.extrasRecorded = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "extras_recorded_total",
			Help:      "Total number of extra deliveries recorded by kind",
		},
		[]string{"kind"},
	)

	m.aggregationsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregations_total",
		Help:      "Total number of completed matches folded into career stats",
	})

	m.aggregationDuplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_duplicates_total",
		Help:      "Total number of completed matches skipped as already aggregated",
	})

	m.aggregationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_errors_total",
		Help:      "Total number of aggregation failures",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_queue_size",
		Help:      "Current size of the aggregation queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_queue_capacity",
		Help:      "Configured capacity of the aggregation queue",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_queue_utilization",
		Help:      "Aggregation queue utilization ratio (0-1)",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_queue_enqueues_total",
		Help:      "Total number of snapshots enqueued for aggregation",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_queue_dequeues_total",
		Help:      "Total number of snapshots dequeued by workers",
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_queue_enqueue_errors_total",
		Help:      "Total number of failed enqueue attempts",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_worker_count",
		Help:      "Number of aggregation workers",
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_worker_errors_total",
		Help:      "Total number of worker processing errors",
	})

	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_worker_latency_milliseconds",
		Help:      "Histogram of per-match aggregation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.statsPlayersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stats_players_total",
		Help:      "Number of players with accumulated career statistics",
	})

	m.storeMergeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stats_store_merge_latency_milliseconds",
		Help:      "Histogram of stats store merge latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stats_store_query_latency_milliseconds",
		Help:      "Histogram of stats store query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total errors by component and error type",
		},
		[]string{"component", "error_type"},
	)
}

// GetRegistry returns the registry backing the global manager, for use by
// the /healthz metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording against the global manager.

func RecordBallRecorded()        { globalManager.ballsRecorded.Inc() }
func RecordValidationRejection() { globalManager.validationRejections.Inc() }
func RecordStateRejection()      { globalManager.stateRejections.Inc() }
func RecordUndo()                { globalManager.undosTotal.Inc() }
func RecordRedo()                { globalManager.redosTotal.Inc() }

func RecordReplay(durationMs float64) {
	globalManager.replaysTotal.Inc()
	globalManager.replayDuration.Observe(durationMs)
}

func RecordMatchCreated()   { globalManager.matchesCreated.Inc() }
func RecordMatchCompleted() { globalManager.matchesCompleted.Inc() }

func UpdateLiveMatches(count int) { globalManager.liveMatches.Set(float64(count)) }

func RecordWicket() { globalManager.wicketsRecorded.Inc() }

// RecordExtra records one extra delivery of the given kind
// (wide, no_ball, bye, leg_bye).
func RecordExtra(kind string) { globalManager.extrasRecorded.WithLabelValues(kind).Inc() }

func RecordAggregation()          { globalManager.aggregationsTotal.Inc() }
func RecordAggregationDuplicate() { globalManager.aggregationDuplicates.Inc() }
func RecordAggregationError()     { globalManager.aggregationErrors.Inc() }

func UpdateQueueSize(size int)         { globalManager.queueSize.Set(float64(size)) }
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }
func UpdateQueueUtilization(u float64) { globalManager.queueUtilization.Set(u) }
func RecordQueueEnqueue()              { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()              { globalManager.queueDequeues.Inc() }
func RecordQueueEnqueueError()         { globalManager.queueEnqueueErrors.Inc() }

func UpdateWorkerCount(count int) { globalManager.workerCount.Set(float64(count)) }
func RecordWorkerError()          { globalManager.workerErrors.Inc() }
func RecordWorkerLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

func UpdateStatsPlayersTotal(count int) { globalManager.statsPlayersTotal.Set(float64(count)) }
func RecordStoreMergeLatency(latencyMs float64) {
	globalManager.storeMergeLatency.Observe(latencyMs)
}
func RecordStoreQueryLatency(latencyMs float64) {
	globalManager.storeQueryLatency.Observe(latencyMs)
}

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}
