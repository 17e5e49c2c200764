package executor

import (
	"context"

	"github.com/vultisig/xrpl-executor/internal/xrp"
)

// Gateway is the ledger node access the executor components depend on.
// *xrp.Client implements it.
type Gateway interface {
	AccountInfo(ctx context.Context, address string) (*xrp.AccountInfo, error)
	AccountLines(ctx context.Context, address string) (*xrp.AccountLines, error)
	ServerState(ctx context.Context) (*xrp.ServerState, error)
	Tx(ctx context.Context, hash string) (*xrp.TxResult, error)
	Submit(ctx context.Context, txBlob string) (*xrp.SubmitResult, error)
}

var _ Gateway = (*xrp.Client)(nil)

// Metrics receives executor business outcomes.
type Metrics interface {
	RecordBroadcast(class, engineResult string)
	RecordBuild(outcome string)
	RecordFeeEstimate(drops int64)
}

// Broadcast classes reported to Metrics.
const (
	BroadcastAccepted        = "accepted"
	BroadcastRebuildRequired = "rebuild_required"
	BroadcastMalformed       = "malformed"
	BroadcastProvisional     = "provisional"
	BroadcastFailed          = "failed"
)

// Build outcomes reported to Metrics.
const (
	BuildSuccess          = "success"
	BuildNotEnoughBalance = "not_enough_balance"
	BuildInvalid          = "invalid"
	BuildFailed           = "failed"
)

type nopMetrics struct{}

func (nopMetrics) RecordBroadcast(string, string) {}
func (nopMetrics) RecordBuild(string)             {}
func (nopMetrics) RecordFeeEstimate(int64)        {}

// NopMetrics discards every observation.
func NopMetrics() Metrics {
	return nopMetrics{}
}
