package executor

import (
	"time"

	"github.com/hashicorp/go-version"
	"github.com/shopspring/decimal"
)

// NativeAssetID identifies XRP; any other asset ID is an issued currency code.
const NativeAssetID = "XRP"

// Asset is either native XRP or an issued currency identified by code and issuer.
type Asset struct {
	ID      string `json:"id"`
	Address string `json:"address,omitempty"`
}

func (a Asset) IsNative() bool {
	return a.ID == NativeAssetID
}

// Transfer is one leg of a transfer intent.
type Transfer struct {
	SourceAddress         string          `json:"sourceAddress"`
	SourceAddressNonce    *uint32         `json:"sourceAddressNonce,omitempty"`
	DestinationAddress    string          `json:"destinationAddress"`
	DestinationAddressTag *string         `json:"destinationAddressTag,omitempty"`
	Asset                 Asset           `json:"asset"`
	Amount                decimal.Decimal `json:"amount"`
}

// Fee is a fee entry of a transfer intent or an estimation result.
type Fee struct {
	Asset  Asset           `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
}

// Expiration bounds the ledger the transaction may be included in.
type Expiration struct {
	AfterBlockNumber *uint32 `json:"afterBlockNumber,omitempty"`
}

// BuildTransferAmountRequest is the transfer intent handed to the builder.
type BuildTransferAmountRequest struct {
	Transfers  []Transfer  `json:"transfers"`
	Fees       []Fee       `json:"fees"`
	Expiration *Expiration `json:"expiration,omitempty"`
}

// BuiltTransaction is the payment ready for external signing.
type BuiltTransaction struct {
	Payment Payment
	// Blob is the uppercase hex of the canonical XRPL binary serialization.
	Blob string
}

type AddressTagType string

const (
	AddressTagTypeNumber AddressTagType = "number"
	AddressTagTypeText   AddressTagType = "text"
)

type AddressValidationResult string

const (
	AddressValid                AddressValidationResult = "valid"
	AddressInvalidAddressFormat AddressValidationResult = "invalidAddressFormat"
	AddressInvalidTagFormat     AddressValidationResult = "invalidTagFormat"
	AddressNotFound             AddressValidationResult = "addressNotFound"
	AddressRequiredTagMissed    AddressValidationResult = "requiredTagMissed"
)

// TransactionState is the settlement state of a broadcast transaction.
type TransactionState string

const (
	TransactionStateUnknown     TransactionState = "unknown"
	TransactionStateBroadcasted TransactionState = "broadcasted"
	TransactionStateMined       TransactionState = "mined"
)

// Ack acknowledges a submission; finality is established later by state polling.
type Ack struct {
	TransactionID string
	EngineResult  string
}

type BlockchainInfo struct {
	LatestBlockNumber uint32    `json:"latestBlockNumber"`
	LatestBlockMoment time.Time `json:"latestBlockMoment"`
}

// DependencyInfo compares the running node version with the latest known release.
// LatestVersion is nil when no release information is available.
type DependencyInfo struct {
	RunningVersion *version.Version
	LatestVersion  *version.Version
}

// UpdateAvailable reports whether a newer release than the running one is known.
func (d DependencyInfo) UpdateAvailable() bool {
	return d.RunningVersion != nil && d.LatestVersion != nil && d.LatestVersion.GreaterThan(d.RunningVersion)
}

type IntegrationInfo struct {
	Blockchain   BlockchainInfo
	Dependencies map[string]DependencyInfo
}
