package metrics

// Package metrics provides Prometheus metrics collection for the XRPL executor.
//
// This package includes:
// - HTTP request metrics (count, latency, errors)
// - Node JSON-RPC call metrics (count, latency by method and outcome)
// - Executor business metrics (broadcast classes, build outcomes, fee estimates)
// - Metrics HTTP server on configurable port
//
// Usage:
//   metricsServer := metrics.StartMetricsServer(cfg.Metrics, []string{metrics.ServiceHTTP, metrics.ServiceNode}, logger)
//   defer metricsServer.Stop(context.Background())
//
//   e.Use(metrics.HTTPMiddleware())

const namespace = "xrpl_executor"

// Services accepted by RegisterMetrics
const (
	ServiceHTTP     = "http"
	ServiceNode     = "node"
	ServiceExecutor = "executor"
)
