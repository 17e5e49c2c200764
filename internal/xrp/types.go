package xrp

import (
	"time"
)

// Node error codes the executor interprets as results rather than failures.
const (
	ErrCodeAccountNotFound = "actNotFound"
	ErrCodeTxNotFound      = "txnNotFound"
)

// lsfRequireDestTag is the AccountRoot flag that makes a destination tag mandatory.
const lsfRequireDestTag uint32 = 0x00020000

// rippleEpochOffset is the unix time of 2000-01-01T00:00:00Z, the origin of XRPL close times.
const rippleEpochOffset int64 = 946684800

// FromRippleEpoch converts XRPL "seconds since the Ripple epoch" into a UTC time.
func FromRippleEpoch(seconds int64) time.Time {
	return time.Unix(seconds+rippleEpochOffset, 0).UTC()
}

// XRPL JSON-RPC request/response structures
type rpcRequest struct {
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
	JSONRPC string `json:"jsonrpc"`
}

type rpcResponse struct {
	Result any `json:"result"`
}

type accountParams struct {
	Account     string `json:"account"`
	LedgerIndex string `json:"ledger_index,omitempty"`
	Strict      bool   `json:"strict,omitempty"`
}

type txParams struct {
	Transaction string `json:"transaction"`
	Binary      bool   `json:"binary"`
}

type submitParams struct {
	TxBlob string `json:"tx_blob"`
}

type emptyParams struct{}

// resultStatus is embedded by every result; rippled reports failures inside "result".
type resultStatus struct {
	Status       string `json:"status,omitempty"`
	Error        string `json:"error,omitempty"`
	ErrorCode    int    `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func (r *resultStatus) status() *resultStatus {
	return r
}

type statusCarrier interface {
	status() *resultStatus
}

type accountInfoResult struct {
	resultStatus
	AccountData struct {
		Account  string `json:"Account"`
		Balance  string `json:"Balance"`
		Flags    uint32 `json:"Flags"`
		Sequence uint32 `json:"Sequence"`
	} `json:"account_data"`
	Validated bool `json:"validated"`
}

type accountLinesResult struct {
	resultStatus
	Account string      `json:"account"`
	Lines   []TrustLine `json:"lines"`
}

type serverStateResult struct {
	resultStatus
	State ServerState `json:"state"`
}

type txResult struct {
	resultStatus
	Hash        string `json:"hash"`
	LedgerIndex uint32 `json:"ledger_index,omitempty"`
	Validated   bool   `json:"validated,omitempty"`
}

type submitResult struct {
	resultStatus
	SubmitResult
}

// AccountInfo is the subset of account_info the executor relies on.
type AccountInfo struct {
	Address  string
	Found    bool
	Balance  string // drops
	Flags    uint32
	Sequence uint32
}

// RequireDestinationTag reports whether incoming payments must carry a destination tag.
func (a *AccountInfo) RequireDestinationTag() bool {
	return a.Flags&lsfRequireDestTag != 0
}

// TrustLine is one entry of account_lines. Account is the counterparty, i.e. the issuer
// from the point of view of the holder.
type TrustLine struct {
	Account  string `json:"account"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
	Limit    string `json:"limit,omitempty"`
}

// AccountLines is the result of account_lines.
type AccountLines struct {
	Address string
	Found   bool
	Lines   []TrustLine
}

// LedgerState describes closed_ledger / validated_ledger of server_state.
type LedgerState struct {
	Seq         uint32 `json:"seq"`
	Hash        string `json:"hash"`
	CloseTime   int64  `json:"close_time"`
	BaseFee     uint64 `json:"base_fee"` // drops
	ReserveBase uint64 `json:"reserve_base"`
	ReserveInc  uint64 `json:"reserve_inc"`
}

// CloseMoment returns the ledger close time as a UTC time.
func (l *LedgerState) CloseMoment() time.Time {
	return FromRippleEpoch(l.CloseTime)
}

// ServerState is the "state" object of server_state.
type ServerState struct {
	BuildVersion    string       `json:"build_version"`
	ServerState     string       `json:"server_state"`
	LoadBase        uint64       `json:"load_base"`
	LoadFactor      uint64       `json:"load_factor"`
	ClosedLedger    *LedgerState `json:"closed_ledger,omitempty"`
	ValidatedLedger *LedgerState `json:"validated_ledger,omitempty"`
}

// LastLedger prefers the closed ledger and falls back to the validated one.
func (s *ServerState) LastLedger() *LedgerState {
	if s.ClosedLedger != nil {
		return s.ClosedLedger
	}
	return s.ValidatedLedger
}

// TxResult is the outcome of a tx lookup.
type TxResult struct {
	Hash        string
	Found       bool
	Validated   bool
	LedgerIndex uint32
}

// SubmitResult is the preliminary verdict of submit.
type SubmitResult struct {
	EngineResult        string `json:"engine_result"`
	EngineResultCode    int    `json:"engine_result_code"`
	EngineResultMessage string `json:"engine_result_message"`
	Accepted            bool   `json:"accepted,omitempty"`
	TxJSON              struct {
		Hash string `json:"hash"`
	} `json:"tx_json"`
}
