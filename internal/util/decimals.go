package util

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// XRPDecimals is the number of decimal places between XRP and drops.
const XRPDecimals int32 = 6

// ToBaseUnits converts a human-readable amount to base units
// e.g., 10.5 XRP (6 decimals) -> 10500000.
// Amounts that do not fit into whole base units are rejected rather than rounded.
func ToBaseUnits(amount decimal.Decimal, decimals int32) (*big.Int, error) {
	shifted := amount.Shift(decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", amount.String(), decimals)
	}
	return shifted.BigInt(), nil
}

// FromBaseUnits converts an integer string of base units to a human-readable amount
// e.g., "10000000" with 6 decimals -> 10
func FromBaseUnits(amount string, decimals int32) (decimal.Decimal, error) {
	if amount == "" {
		return decimal.Zero, fmt.Errorf("amount cannot be empty")
	}

	units, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid base units amount: %q", amount)
	}

	return decimal.NewFromBigInt(units, -decimals), nil
}
