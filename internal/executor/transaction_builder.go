package executor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/xrpl-executor/internal/util"
	"github.com/vultisig/xrpl-executor/internal/xrp"
)

// maxIssuedDigits is the mantissa precision of XRPL issued currency amounts.
const maxIssuedDigits = 16

type TransactionBuilder struct {
	gateway Gateway
	logger  logrus.FieldLogger
	metrics Metrics
}

func NewTransactionBuilder(gateway Gateway, logger logrus.FieldLogger, metrics Metrics) *TransactionBuilder {
	if metrics == nil {
		metrics = NopMetrics()
	}
	return &TransactionBuilder{
		gateway: gateway,
		logger:  logger.WithField("component", "transaction_builder"),
		metrics: metrics,
	}
}

// Build verifies the source balance and assembles the unsigned Payment of a single transfer.
func (b *TransactionBuilder) Build(ctx context.Context, req BuildTransferAmountRequest) (*BuiltTransaction, error) {
	built, err := b.build(ctx, req)
	b.metrics.RecordBuild(buildOutcome(err))
	return built, err
}

func (b *TransactionBuilder) build(ctx context.Context, req BuildTransferAmountRequest) (*BuiltTransaction, error) {
	if len(req.Transfers) != 1 {
		return nil, validationErrorf("exactly one transfer is supported, got %d", len(req.Transfers))
	}
	if len(req.Fees) != 1 {
		return nil, validationErrorf("exactly one fee is supported, got %d", len(req.Fees))
	}

	transfer := req.Transfers[0]
	fee := req.Fees[0]

	if fee.Asset.ID != NativeAssetID {
		return nil, validationErrorf("fee must be paid in %s, got %s", NativeAssetID, fee.Asset.ID)
	}
	if !fee.Amount.IsPositive() {
		return nil, validationErrorf("fee must be positive")
	}
	feeDrops, err := util.ToBaseUnits(fee.Amount, util.XRPDecimals)
	if err != nil {
		return nil, validationErrorf("invalid fee: %v", err)
	}

	if !xrp.IsValidAddress(transfer.SourceAddress) {
		return nil, validationErrorf("invalid source address %q", transfer.SourceAddress)
	}
	if !xrp.IsValidAddress(transfer.DestinationAddress) {
		return nil, validationErrorf("invalid destination address %q", transfer.DestinationAddress)
	}
	if !transfer.Amount.IsPositive() {
		return nil, validationErrorf("amount must be positive")
	}
	if transfer.Asset.ID == "" {
		return nil, validationErrorf("asset is required")
	}
	if !transfer.Asset.IsNative() {
		if !xrp.IsValidAddress(transfer.Asset.Address) {
			return nil, validationErrorf("invalid issuer address %q for %s", transfer.Asset.Address, transfer.Asset.ID)
		}
		if significantDigits(transfer.Amount) > maxIssuedDigits {
			return nil, validationErrorf("amount %s has more than %d significant digits", transfer.Amount.String(), maxIssuedDigits)
		}
	}

	var destinationTag *uint32
	if transfer.DestinationAddressTag != nil {
		tag, err := strconv.ParseUint(*transfer.DestinationAddressTag, 10, 32)
		if err != nil {
			return nil, validationErrorf("destination tag must be an unsigned 32-bit integer")
		}
		t := uint32(tag)
		destinationTag = &t
	}

	var amount PaymentAmount
	if transfer.Asset.IsNative() {
		amount, err = b.nativeAmount(ctx, transfer)
	} else {
		amount, err = b.issuedAmount(ctx, transfer)
	}
	if err != nil {
		return nil, err
	}

	payment := Payment{
		TransactionType: "Payment",
		Account:         transfer.SourceAddress,
		Destination:     transfer.DestinationAddress,
		Amount:          amount,
		Fee:             feeDrops.String(),
		Flags:           tfFullyCanonicalSig,
		DestinationTag:  destinationTag,
		Sequence:        transfer.SourceAddressNonce,
	}
	if req.Expiration != nil {
		payment.LastLedgerSequence = req.Expiration.AfterBlockNumber
	}

	blob, err := xrp.EncodeTransaction(payment.Fields())
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment: %w", err)
	}

	b.logger.WithFields(logrus.Fields{
		"account":     payment.Account,
		"destination": payment.Destination,
		"asset":       transfer.Asset.ID,
		"amount":      transfer.Amount.String(),
	}).Debug("payment built")

	return &BuiltTransaction{Payment: payment, Blob: blob}, nil
}

func (b *TransactionBuilder) nativeAmount(ctx context.Context, transfer Transfer) (PaymentAmount, error) {
	drops, err := util.ToBaseUnits(transfer.Amount, util.XRPDecimals)
	if err != nil {
		return PaymentAmount{}, validationErrorf("invalid amount: %v", err)
	}

	info, err := b.gateway.AccountInfo(ctx, transfer.SourceAddress)
	if err != nil {
		return PaymentAmount{}, fmt.Errorf("failed to get account info: %w", err)
	}
	if !info.Found {
		return PaymentAmount{}, validationErrorf("source account not found")
	}

	balance, err := util.FromBaseUnits(info.Balance, util.XRPDecimals)
	if err != nil {
		return PaymentAmount{}, fmt.Errorf("failed to parse balance: %w", err)
	}
	if balance.LessThan(transfer.Amount) {
		return PaymentAmount{}, &TransactionBuildingError{
			Code:    NotEnoughBalance,
			Message: fmt.Sprintf("balance %s XRP is less than %s XRP", balance.String(), transfer.Amount.String()),
		}
	}

	return PaymentAmount{Drops: drops.String()}, nil
}

func (b *TransactionBuilder) issuedAmount(ctx context.Context, transfer Transfer) (PaymentAmount, error) {
	lines, err := b.gateway.AccountLines(ctx, transfer.SourceAddress)
	if err != nil {
		return PaymentAmount{}, fmt.Errorf("failed to get account lines: %w", err)
	}
	if !lines.Found {
		return PaymentAmount{}, validationErrorf("source account not found")
	}

	balance := decimal.Zero
	found := false
	for _, line := range lines.Lines {
		if line.Currency == transfer.Asset.ID && line.Account == transfer.Asset.Address {
			balance, err = decimal.NewFromString(line.Balance)
			if err != nil {
				return PaymentAmount{}, fmt.Errorf("failed to parse trust line balance: %w", err)
			}
			found = true
			break
		}
	}
	if !found || balance.LessThan(transfer.Amount) {
		return PaymentAmount{}, &TransactionBuildingError{
			Code: NotEnoughBalance,
			Message: fmt.Sprintf("balance %s %s is less than %s",
				balance.String(), transfer.Asset.ID, transfer.Amount.String()),
		}
	}

	return PaymentAmount{Issued: &IssuedAmount{
		Currency: transfer.Asset.ID,
		Issuer:   transfer.Asset.Address,
		Value:    transfer.Amount.String(),
	}}, nil
}

func significantDigits(d decimal.Decimal) int {
	digits := strings.TrimRight(new(big.Int).Abs(d.Coefficient()).String(), "0")
	return len(digits)
}

func buildOutcome(err error) string {
	if err == nil {
		return BuildSuccess
	}
	var buildingErr *TransactionBuildingError
	switch {
	case errors.As(err, &buildingErr):
		return BuildNotEnoughBalance
	case IsRequestValidationError(err):
		return BuildInvalid
	default:
		return BuildFailed
	}
}
