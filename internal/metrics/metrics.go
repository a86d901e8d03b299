package metrics

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	dbQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinfeed_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"db", "operation"},
	)

	dbQueryTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coinfeed_db_query_duration_seconds",
			Help:    "Duration of database queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"db", "operation"},
	)

	dbErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinfeed_db_errors_total",
			Help: "Total number of database errors",
		},
		[]string{"db", "error_type"},
	)

	// Ingestion metrics
	passes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinfeed_ingestion_passes_total",
			Help: "Total number of ingestion passes by result",
		},
		[]string{"result"},
	)

	passDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coinfeed_ingestion_pass_duration_seconds",
			Help:    "Duration of full ingestion passes",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinfeed_cache_lookups_total",
			Help: "Total number of coin cache lookups by result",
		},
		[]string{"result"},
	)

	LastScannedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coinfeed_last_scanned_block",
			Help: "Head block of the last successful ingestion pass",
		},
	)

	CoinsCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coinfeed_coins_cached",
			Help: "Number of coins in the current cache entry",
		},
	)

	metadataDefaults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coinfeed_metadata_defaults_total",
			Help: "Total number of coins built with default metadata",
		},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coinfeed_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinfeed_errors_total",
			Help: "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coinfeed_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coinfeed_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coinfeed_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func DBQueryInc(db string, operation string) {
	dbQueries.WithLabelValues(db, operation).Inc()
}

func DBQueryDuration(db string, operation string, duration time.Duration) {
	dbQueryTime.WithLabelValues(db, operation).Observe(duration.Seconds())
}

func DBErrorsInc(db string, errorType string) {
	dbErrors.WithLabelValues(db, errorType).Inc()
}

func PassLog(result string, duration time.Duration) {
	passes.WithLabelValues(result).Inc()
	passDuration.Observe(duration.Seconds())
}

func CacheLookupInc(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}

func MetadataDefaultsInc() {
	metadataDefaults.Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	ComponentHealth.WithLabelValues(component).Set(boolAsFloat)

	healthMu.Lock()
	defer healthMu.Unlock()
	if healthy {
		delete(unhealthy, component)
	} else {
		unhealthy[component] = struct{}{}
	}
}

var (
	healthMu  sync.Mutex
	unhealthy = map[string]struct{}{}
)

// UnhealthyComponents returns the sorted names of components last reported unhealthy.
func UnhealthyComponents() []string {
	healthMu.Lock()
	defer healthMu.Unlock()

	names := make([]string, 0, len(unhealthy))
	for name := range unhealthy {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UpdateSystemMetrics updates runtime system metrics.
// This should be called periodically (e.g., every 15 seconds).
func UpdateSystemMetrics() {
	// Update uptime
	Uptime.Set(time.Since(startTime).Seconds())

	// Update goroutine count
	Goroutines.Set(float64(runtime.NumGoroutine()))

	// Update memory statistics
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
