package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/vultisig/xrpl-executor/internal/xrp"
)

var syncedServerStates = map[string]bool{
	"full":       true,
	"validating": true,
	"proposing":  true,
}

type HealthProvider struct {
	gateway Gateway
}

func NewHealthProvider(gateway Gateway) *HealthProvider {
	return &HealthProvider{gateway: gateway}
}

// GetDisease returns an empty string when the node is reachable and synced,
// otherwise a human-readable description of the problem.
func (h *HealthProvider) GetDisease(ctx context.Context) string {
	state, err := h.gateway.ServerState(ctx)
	if err != nil {
		var nodeErr *xrp.NodeError
		if errors.As(err, &nodeErr) {
			return fmt.Sprintf("Node state request error: %s", nodeErr.Code)
		}
		return fmt.Sprintf("Node is unavailable: %v", err)
	}

	if !syncedServerStates[state.ServerState] {
		return fmt.Sprintf("Node state is unexpected: %s", state.ServerState)
	}

	return ""
}
