package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vultisig/xrpl-executor/internal/api"
	"github.com/vultisig/xrpl-executor/internal/executor"
	"github.com/vultisig/xrpl-executor/internal/graceful"
	"github.com/vultisig/xrpl-executor/internal/logging"
	"github.com/vultisig/xrpl-executor/internal/metrics"
	"github.com/vultisig/xrpl-executor/internal/releases"
	"github.com/vultisig/xrpl-executor/internal/util"
	"github.com/vultisig/xrpl-executor/internal/xrp"
)

func main() {
	cfg, err := newConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewLogger(cfg.LogFormat, cfg.LogLevel)

	metricsServer := metrics.StartMetricsServer(
		cfg.Metrics,
		[]string{metrics.ServiceHTTP, metrics.ServiceNode, metrics.ServiceExecutor},
		logger,
	)
	defer func() {
		if metricsServer != nil {
			if err := metricsServer.Stop(context.Background()); err != nil {
				logger.Errorf("failed to stop metrics server: %v", err)
			}
		}
	}()

	opts := []xrp.Option{
		xrp.WithTimeout(cfg.Node.Timeout),
		xrp.WithRetry(cfg.Node.RetryAttempts, 200*time.Millisecond),
		xrp.WithCallRecorder(metrics.NewNodeMetrics()),
	}
	if cfg.Node.RPCUsername != "" {
		opts = append(opts, xrp.WithBasicAuth(cfg.Node.RPCUsername, cfg.Node.RPCPassword))
	}
	client := xrp.NewClient(cfg.Node.URL, opts...)

	ex := executor.New(
		client,
		releases.NewClient(cfg.ReleasesURL, cfg.Node.Timeout),
		executor.Config{
			FeeFactor: cfg.FeeFactor,
			MaxFee:    cfg.MaxFee,
		},
		logger,
		metrics.NewExecutorMetrics(),
	)

	srv := api.NewServer(
		cfg.Server,
		cfg.Name,
		util.IfEmptyElse(cfg.Version, "dev"),
		api.ServicesFromExecutor(ex),
		logger,
	)

	ctx := graceful.CancelOnSignal(context.Background(), graceful.MakeSigintChan(), logger)

	logger.WithFields(logrus.Fields{
		"node":       cfg.Node.URL,
		"fee_factor": cfg.FeeFactor.String(),
		"max_fee":    cfg.MaxFee.String(),
	}).Info("starting xrpl executor")

	err = srv.Start(ctx)
	if err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
