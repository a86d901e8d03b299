package retry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var retries = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "coinfeed_retries_total",
		Help: "Total number of retried attempts by operation",
	},
	[]string{"operation"},
)

func retriesInc(operation string) {
	retries.WithLabelValues(operation).Inc()
}
