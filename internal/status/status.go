package status

import (
	"context"
	"time"

	"github.com/vultisig/xrpl-executor/internal/executor"
)

// StateGetter is satisfied by *executor.StateProvider.
type StateGetter interface {
	GetState(ctx context.Context, txID string) (executor.TransactionState, error)
}

type Status struct {
	states   StateGetter
	interval time.Duration
}

func NewStatus(states StateGetter, interval time.Duration) *Status {
	if interval <= 0 {
		interval = time.Second
	}
	return &Status{
		states:   states,
		interval: interval,
	}
}

// WaitMined polls the transaction state until it is included in a validated ledger or ctx ends.
func (s *Status) WaitMined(ctx context.Context, txID string) (executor.TransactionState, error) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
			state, err := s.states.GetState(ctx, txID)
			if err != nil {
				return "", err
			}
			if state == executor.TransactionStateMined {
				return state, nil
			}
		}
	}
}
