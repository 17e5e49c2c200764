package main

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/vultisig/xrpl-executor/internal/api"
	"github.com/vultisig/xrpl-executor/internal/logging"
	"github.com/vultisig/xrpl-executor/internal/metrics"
)

type config struct {
	Name        string            `envconfig:"SERVICE_NAME" default:"xrpl-executor"`
	Version     string            `envconfig:"SERVICE_VERSION"`
	LogFormat   logging.LogFormat `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel    string            `envconfig:"LOG_LEVEL" default:"info"`
	Node        nodeConfig
	FeeFactor   decimal.Decimal `envconfig:"FEE_FACTOR" default:"1.2"`
	MaxFee      decimal.Decimal `envconfig:"MAX_FEE" default:"2"`
	ReleasesURL string          `envconfig:"RELEASES_URL" default:"https://api.github.com/repos/XRPLF/rippled"`
	Server      api.Config
	Metrics     metrics.Config
}

type nodeConfig struct {
	URL           string        `envconfig:"URL" required:"true"`
	RPCUsername   string        `envconfig:"RPC_USERNAME"`
	RPCPassword   string        `envconfig:"RPC_PASSWORD"`
	Timeout       time.Duration `envconfig:"TIMEOUT" default:"30s"`
	RetryAttempts uint          `envconfig:"RETRY_ATTEMPTS" default:"3"`
}

func newConfig() (config, error) {
	var cfg config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	if cfg.Node.URL == "" {
		return config{}, fmt.Errorf("NODE_URL is required")
	}
	if !cfg.FeeFactor.IsPositive() {
		return config{}, fmt.Errorf("FEE_FACTOR must be positive, got %s", cfg.FeeFactor)
	}
	if !cfg.MaxFee.IsPositive() {
		return config{}, fmt.Errorf("MAX_FEE must be positive, got %s", cfg.MaxFee)
	}
	return cfg, nil
}
