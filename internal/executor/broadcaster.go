package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vultisig/xrpl-executor/internal/xrp"
)

const (
	engineResultSuccess   = "tesSUCCESS"
	engineResultMaxLedger = "tefMAX_LEDGER"
	engineResultPastSeq   = "tefPAST_SEQ"
	engineMalformedPrefix = "tem"
)

type Broadcaster struct {
	gateway Gateway
	logger  logrus.FieldLogger
	metrics Metrics
}

func NewBroadcaster(gateway Gateway, logger logrus.FieldLogger, metrics Metrics) *Broadcaster {
	if metrics == nil {
		metrics = NopMetrics()
	}
	return &Broadcaster{
		gateway: gateway,
		logger:  logger.WithField("component", "broadcaster"),
		metrics: metrics,
	}
}

// Broadcast submits a signed transaction blob and classifies the preliminary engine result.
// An Ack does not mean the transaction is final; its state must be polled by TransactionID.
func (b *Broadcaster) Broadcast(ctx context.Context, signedBlob string) (Ack, error) {
	signedBlob = strings.ToUpper(strings.TrimSpace(signedBlob))
	decoded, err := xrp.DecodeTransaction(signedBlob)
	if err != nil {
		b.metrics.RecordBroadcast(BroadcastMalformed, "")
		return Ack{}, validationErrorf("invalid signed transaction: %v", err)
	}
	if err := checkSigned(decoded); err != nil {
		b.metrics.RecordBroadcast(BroadcastMalformed, "")
		return Ack{}, validationErrorf("invalid signed transaction: %v", err)
	}

	txID, err := xrp.TransactionID(signedBlob)
	if err != nil {
		return Ack{}, validationErrorf("invalid signed transaction: %v", err)
	}

	res, err := b.gateway.Submit(ctx, signedBlob)
	if err != nil {
		b.metrics.RecordBroadcast(BroadcastFailed, "")
		return Ack{}, fmt.Errorf("failed to submit transaction: %w", err)
	}

	engineResult := res.EngineResult
	switch {
	case engineResult == engineResultSuccess:
		b.metrics.RecordBroadcast(BroadcastAccepted, engineResult)
		return Ack{TransactionID: txID, EngineResult: engineResult}, nil

	case engineResult == engineResultMaxLedger, engineResult == engineResultPastSeq:
		b.metrics.RecordBroadcast(BroadcastRebuildRequired, engineResult)
		return Ack{}, &TransactionBroadcastingError{
			Code:    RebuildRequired,
			Message: res.EngineResultMessage,
		}

	case strings.HasPrefix(engineResult, engineMalformedPrefix):
		b.metrics.RecordBroadcast(BroadcastMalformed, engineResult)
		return Ack{}, &RequestValidationError{Message: res.EngineResultMessage}

	default:
		b.metrics.RecordBroadcast(BroadcastProvisional, engineResult)
		b.logger.WithFields(logrus.Fields{
			"engine_result":         engineResult,
			"engine_result_message": res.EngineResultMessage,
			"tx_id":                 txID,
		}).Warn("transaction submitted with provisional engine result")
		return Ack{TransactionID: txID, EngineResult: engineResult}, nil
	}
}

// checkSigned requires an account and either a single signature or a multi-signature list.
func checkSigned(tx map[string]any) error {
	if account, _ := tx["Account"].(string); account == "" {
		return errors.New("missing Account")
	}
	if sig, _ := tx["TxnSignature"].(string); sig != "" {
		return nil
	}
	if signers, ok := tx["Signers"].([]any); ok && len(signers) > 0 {
		return nil
	}
	return errors.New("missing TxnSignature or Signers")
}
