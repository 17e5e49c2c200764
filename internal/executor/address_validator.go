package executor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vultisig/xrpl-executor/internal/xrp"
)

type AddressValidator struct {
	gateway Gateway
}

func NewAddressValidator(gateway Gateway) *AddressValidator {
	return &AddressValidator{gateway: gateway}
}

// Validate checks the address format offline, then the destination tag rules against the ledger.
// A nil tagType is treated as a numeric tag.
func (v *AddressValidator) Validate(
	ctx context.Context,
	address string,
	tagType *AddressTagType,
	tag string,
) (AddressValidationResult, error) {
	if address == "" {
		return "", validationErrorf("address is required")
	}

	if !xrp.IsValidAddress(address) {
		return AddressInvalidAddressFormat, nil
	}

	if tagType != nil && *tagType != AddressTagTypeNumber {
		return AddressInvalidTagFormat, nil
	}
	if tag != "" {
		if _, err := strconv.ParseUint(tag, 10, 32); err != nil {
			return AddressInvalidTagFormat, nil
		}
	}

	info, err := v.gateway.AccountInfo(ctx, address)
	if err != nil {
		return "", fmt.Errorf("failed to get account info: %w", err)
	}
	if !info.Found {
		return AddressNotFound, nil
	}

	if info.RequireDestinationTag() && tag == "" {
		return AddressRequiredTagMissed, nil
	}

	return AddressValid, nil
}
