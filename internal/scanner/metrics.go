package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	windowsQueried = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coinfeed_scanner_windows_total",
			Help: "Total number of block windows queried",
		},
	)

	windowsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coinfeed_scanner_windows_failed_total",
			Help: "Total number of block windows whose log query failed",
		},
	)

	windowSplits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coinfeed_scanner_window_splits_total",
			Help: "Total number of times a window was split after a too many results response",
		},
	)

	logsDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinfeed_scanner_logs_total",
			Help: "Total number of CoinCreated logs by decode outcome",
		},
		[]string{"outcome"},
	)

	headBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coinfeed_scanner_head_block",
			Help: "Last head block number observed by the scanner",
		},
	)
)
