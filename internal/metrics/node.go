package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	nodeCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "node",
			Name:      "calls_total",
			Help:      "Total number of JSON-RPC calls to the XRPL node",
		},
		[]string{"method", "status"}, // success, error
	)

	nodeCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "node",
			Name:      "call_duration_seconds",
			Help:      "XRPL node JSON-RPC call latency in seconds, retries included",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// NodeMetrics records XRPL node calls. It implements xrp.CallRecorder.
type NodeMetrics struct{}

func NewNodeMetrics() *NodeMetrics {
	return &NodeMetrics{}
}

func (nm *NodeMetrics) RecordNodeCall(method string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	nodeCallsTotal.WithLabelValues(method, status).Inc()
	nodeCallDuration.WithLabelValues(method).Observe(duration.Seconds())
}
