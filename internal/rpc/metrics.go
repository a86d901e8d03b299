package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinfeed_rpc_attempts_total",
			Help: "Total number of RPC attempts by method, retries included",
		},
		[]string{"method"},
	)

	rpcFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinfeed_rpc_failures_total",
			Help: "Total number of failed RPC attempts by method and kind",
		},
		[]string{"method", "kind"},
	)

	rpcLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coinfeed_rpc_attempt_duration_seconds",
			Help:    "Duration of a single RPC attempt",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method"},
	)
)

// observeAttempt records one attempt of method that started at start and ended with err.
func observeAttempt(method string, start time.Time, err error) {
	rpcAttempts.WithLabelValues(method).Inc()
	rpcLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		rpcFailures.WithLabelValues(method, errorKind(err)).Inc()
	}
}
