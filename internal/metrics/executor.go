package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	executorBroadcastsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "broadcasts_total",
			Help:      "Total number of broadcast attempts by outcome class and engine result",
		},
		[]string{"class", "engine_result"},
	)

	executorBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "builds_total",
			Help:      "Total number of transaction builds by outcome",
		},
		[]string{"outcome"},
	)

	executorFeeEstimateDrops = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "fee_estimate_drops",
			Help:      "Last estimated transaction fee in drops",
		},
	)
)

// ExecutorMetrics records executor outcomes. It implements executor.Metrics.
type ExecutorMetrics struct{}

func NewExecutorMetrics() *ExecutorMetrics {
	return &ExecutorMetrics{}
}

func (em *ExecutorMetrics) RecordBroadcast(class, engineResult string) {
	if engineResult == "" {
		engineResult = "none"
	}
	executorBroadcastsTotal.WithLabelValues(class, engineResult).Inc()
}

func (em *ExecutorMetrics) RecordBuild(outcome string) {
	executorBuildsTotal.WithLabelValues(outcome).Inc()
}

func (em *ExecutorMetrics) RecordFeeEstimate(drops int64) {
	executorFeeEstimateDrops.Set(float64(drops))
}
