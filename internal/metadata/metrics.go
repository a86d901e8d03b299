package metadata

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinfeed_metadata_gateway_requests_total",
			Help: "Total number of metadata gateway requests by outcome",
		},
		[]string{"outcome"},
	)

	gatewayDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coinfeed_metadata_gateway_request_duration_seconds",
			Help:    "Duration of metadata gateway requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinfeed_metadata_resolutions_total",
			Help: "Total number of metadata resolutions by result",
		},
		[]string{"result"},
	)
)

func gatewayRequestLog(outcome string, duration time.Duration) {
	gatewayRequests.WithLabelValues(outcome).Inc()
	gatewayDuration.Observe(duration.Seconds())
}

func resolutionInc(result string) {
	resolutions.WithLabelValues(result).Inc()
}
