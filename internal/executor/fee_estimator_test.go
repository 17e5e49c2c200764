package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vultisig/xrpl-executor/internal/xrp"
)

func serverState(loadBase, loadFactor, baseFee uint64) *xrp.ServerState {
	return &xrp.ServerState{
		ServerState:     "full",
		LoadBase:        loadBase,
		LoadFactor:      loadFactor,
		ValidatedLedger: &xrp.LedgerState{Seq: 100, BaseFee: baseFee},
	}
}

func TestFeeEstimator_Estimate(t *testing.T) {
	tests := []struct {
		name      string
		state     *xrp.ServerState
		feeFactor string
		maxFee    string
		want      string
	}{
		{name: "default factor", state: serverState(256, 256, 10), want: "0.000012"},
		{name: "custom factor", state: serverState(256, 256, 10), feeFactor: "1.5", want: "0.000015"},
		{name: "capped", state: serverState(256, 256, 10), maxFee: "0.000005", want: "0.000005"},
		{name: "loaded node", state: serverState(256, 512, 10), want: "0.000024"},
		{name: "rounded up to whole drops", state: serverState(256, 256, 11), want: "0.000014"},
		{
			name: "closed ledger preferred",
			state: &xrp.ServerState{
				LoadBase:        256,
				LoadFactor:      256,
				ClosedLedger:    &xrp.LedgerState{BaseFee: 20},
				ValidatedLedger: &xrp.LedgerState{BaseFee: 10},
			},
			want: "0.000024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newFakeGateway()
			gw.state = tt.state

			feeFactor, maxFee := decimal.Zero, decimal.Zero
			if tt.feeFactor != "" {
				feeFactor = decimal.RequireFromString(tt.feeFactor)
			}
			if tt.maxFee != "" {
				maxFee = decimal.RequireFromString(tt.maxFee)
			}

			fee, err := NewFeeEstimator(gw, feeFactor, maxFee, nil).Estimate(context.Background())
			require.NoError(t, err)
			assert.Equal(t, NativeAssetID, fee.Asset.ID)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(fee.Amount), "got %s", fee.Amount)
			assert.Equal(t, 1, gw.count("server_state"))
		})
	}
}

func TestFeeEstimator_NeverExceedsCap(t *testing.T) {
	gw := newFakeGateway()
	gw.state = serverState(256, 256*1000000, 10)

	fee, err := NewFeeEstimator(gw, decimal.Zero, decimal.Zero, nil).Estimate(context.Background())
	require.NoError(t, err)
	assert.True(t, DefaultMaxFee.Equal(fee.Amount))
}

func TestFeeEstimator_RecordsMetrics(t *testing.T) {
	gw := newFakeGateway()
	gw.state = serverState(256, 256, 10)
	metrics := &fakeMetrics{}

	_, err := NewFeeEstimator(gw, decimal.Zero, decimal.Zero, metrics).Estimate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{12}, metrics.feeDrops)
}

func TestFeeEstimator_Errors(t *testing.T) {
	t.Run("gateway error", func(t *testing.T) {
		gw := newFakeGateway()
		gw.err = errors.New("connection refused")

		_, err := NewFeeEstimator(gw, decimal.Zero, decimal.Zero, nil).Estimate(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, gw.err)
		assert.Equal(t, 1, gw.count("server_state"))
	})

	t.Run("no ledger", func(t *testing.T) {
		gw := newFakeGateway()
		gw.state = &xrp.ServerState{LoadBase: 256, LoadFactor: 256}

		_, err := NewFeeEstimator(gw, decimal.Zero, decimal.Zero, nil).Estimate(context.Background())
		assert.Error(t, err)
	})
}

func TestFeeEstimator_MonotonicInFactor(t *testing.T) {
	gw := newFakeGateway()
	gw.state = serverState(256, 300, 10)

	prev := decimal.Zero
	for _, factor := range []string{"1", "1.1", "1.2", "1.5", "2", "10"} {
		fee, err := NewFeeEstimator(gw, decimal.RequireFromString(factor), decimal.Zero, nil).Estimate(context.Background())
		require.NoError(t, err)
		assert.True(t, fee.Amount.GreaterThanOrEqual(prev), "factor %s gave %s < %s", factor, fee.Amount, prev)
		assert.True(t, fee.Amount.LessThanOrEqual(DefaultMaxFee))
		prev = fee.Amount
	}
}
