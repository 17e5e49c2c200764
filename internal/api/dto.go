package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vultisig/xrpl-executor/internal/executor"
)

type errorResponse struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

type isAliveResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Disease string `json:"disease"`
}

type blockchainInfoResponse struct {
	LatestBlockNumber uint32    `json:"latestBlockNumber"`
	LatestBlockMoment time.Time `json:"latestBlockMoment"`
}

type dependencyInfoResponse struct {
	RunningVersion *string `json:"runningVersion"`
	LatestVersion  *string `json:"latestVersion"`
}

type integrationInfoResponse struct {
	Blockchain   blockchainInfoResponse            `json:"blockchain"`
	Dependencies map[string]dependencyInfoResponse `json:"dependencies"`
}

func newIntegrationInfoResponse(info *executor.IntegrationInfo) integrationInfoResponse {
	res := integrationInfoResponse{
		Blockchain: blockchainInfoResponse{
			LatestBlockNumber: info.Blockchain.LatestBlockNumber,
			LatestBlockMoment: info.Blockchain.LatestBlockMoment,
		},
		Dependencies: make(map[string]dependencyInfoResponse, len(info.Dependencies)),
	}
	for name, dep := range info.Dependencies {
		var d dependencyInfoResponse
		if dep.RunningVersion != nil {
			v := dep.RunningVersion.String()
			d.RunningVersion = &v
		}
		if dep.LatestVersion != nil {
			v := dep.LatestVersion.String()
			d.LatestVersion = &v
		}
		res.Dependencies[name] = d
	}
	return res
}

type addressValidityResponse struct {
	Result executor.AddressValidationResult `json:"result"`
}

type estimatedFee struct {
	Asset  executor.Asset  `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
}

type estimateResponse struct {
	EstimatedFees []estimatedFee `json:"estimatedFees"`
}

type buildResponse struct {
	TransactionContext string           `json:"transactionContext"`
	Payment            executor.Payment `json:"payment"`
}

type broadcastRequest struct {
	Signed string `json:"signed"`
}

type broadcastResponse struct {
	TransactionID string `json:"transactionId"`
}

type stateResponse struct {
	State executor.TransactionState `json:"state"`
}
