package executor

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Executor bundles the components serving the transactions executor contract.
type Executor struct {
	Addresses *AddressValidator
	Fees      *FeeEstimator
	Builder   *TransactionBuilder
	Broadcast *Broadcaster
	States    *StateProvider
	Health    *HealthProvider
	Info      *IntegrationInfoProvider
}

type Config struct {
	FeeFactor decimal.Decimal
	MaxFee    decimal.Decimal
}

func New(
	gateway Gateway,
	feed ReleaseFeed,
	cfg Config,
	logger logrus.FieldLogger,
	metrics Metrics,
) *Executor {
	if metrics == nil {
		metrics = NopMetrics()
	}
	return &Executor{
		Addresses: NewAddressValidator(gateway),
		Fees:      NewFeeEstimator(gateway, cfg.FeeFactor, cfg.MaxFee, metrics),
		Builder:   NewTransactionBuilder(gateway, logger, metrics),
		Broadcast: NewBroadcaster(gateway, logger, metrics),
		States:    NewStateProvider(gateway),
		Health:    NewHealthProvider(gateway),
		Info:      NewIntegrationInfoProvider(gateway, feed, logger),
	}
}
