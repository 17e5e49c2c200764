package executor

import (
	"context"
	"fmt"
)

type StateProvider struct {
	gateway Gateway
}

func NewStateProvider(gateway Gateway) *StateProvider {
	return &StateProvider{gateway: gateway}
}

// GetState maps a tx lookup to the settlement state. Only validated ledgers count as mined.
func (p *StateProvider) GetState(ctx context.Context, txID string) (TransactionState, error) {
	if txID == "" {
		return "", validationErrorf("transaction id is required")
	}

	tx, err := p.gateway.Tx(ctx, txID)
	if err != nil {
		return "", fmt.Errorf("failed to get transaction: %w", err)
	}

	switch {
	case !tx.Found:
		return TransactionStateUnknown, nil
	case tx.Validated:
		return TransactionStateMined, nil
	default:
		return TransactionStateBroadcasted, nil
	}
}
