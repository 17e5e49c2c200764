package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vultisig/xrpl-executor/internal/util"
)

var (
	DefaultFeeFactor = decimal.RequireFromString("1.2")
	DefaultMaxFee    = decimal.RequireFromString("2")
)

type FeeEstimator struct {
	gateway   Gateway
	feeFactor decimal.Decimal
	maxFee    decimal.Decimal
	metrics   Metrics
}

// NewFeeEstimator returns an estimator multiplying the node fee by feeFactor and capping it at maxFee (XRP).
// Non-positive values fall back to the defaults.
func NewFeeEstimator(gateway Gateway, feeFactor, maxFee decimal.Decimal, metrics Metrics) *FeeEstimator {
	if !feeFactor.IsPositive() {
		feeFactor = DefaultFeeFactor
	}
	if !maxFee.IsPositive() {
		maxFee = DefaultMaxFee
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	return &FeeEstimator{
		gateway:   gateway,
		feeFactor: feeFactor,
		maxFee:    maxFee,
		metrics:   metrics,
	}
}

// Estimate returns the recommended XRP fee of a single payment.
func (e *FeeEstimator) Estimate(ctx context.Context) (Fee, error) {
	state, err := e.gateway.ServerState(ctx)
	if err != nil {
		return Fee{}, fmt.Errorf("failed to get server state: %w", err)
	}

	ledger := state.LastLedger()
	if ledger == nil {
		return Fee{}, errors.New("node returned neither closed nor validated ledger")
	}
	if state.LoadBase == 0 {
		return Fee{}, errors.New("node returned zero load base")
	}

	feeDrops := decimal.NewFromUint64(ledger.BaseFee).
		Mul(decimal.NewFromUint64(state.LoadFactor)).
		Div(decimal.NewFromUint64(state.LoadBase))

	drops := feeDrops.Mul(e.feeFactor).Ceil()
	fee := decimal.Min(drops.Shift(-util.XRPDecimals), e.maxFee)

	e.metrics.RecordFeeEstimate(fee.Shift(util.XRPDecimals).Ceil().IntPart())

	return Fee{
		Asset:  Asset{ID: NativeAssetID},
		Amount: fee,
	}, nil
}
