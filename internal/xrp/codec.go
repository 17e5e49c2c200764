package xrp

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	addresscodec "github.com/xyield/xrpl-go/address-codec"
	xrpgo "github.com/xyield/xrpl-go/binary-codec"
)

// XRPL hash prefix of transaction IDs: "TXN\0"
var txnPrefix = []byte{0x54, 0x58, 0x4E, 0x00}

const (
	accountIDVersion = 0x00
	accountIDLength  = 20
)

// IsValidAddress reports whether address is a classic XRPL address: base58check with a verified
// checksum, the account ID version byte and a 20-byte account ID.
func IsValidAddress(address string) bool {
	decoded, err := addresscodec.Base58CheckDecode(address)
	if err != nil {
		return false
	}
	return len(decoded) == 1+accountIDLength && decoded[0] == accountIDVersion
}

// EncodeTransaction serializes tx fields into canonical XRPL binary, returned as uppercase hex.
func EncodeTransaction(fields map[string]any) (string, error) {
	// Encode → Decode → Re-encode for canonical bytes
	hexStr, err := xrpgo.Encode(fields)
	if err != nil {
		return "", fmt.Errorf("xrp: encode failed: %w", err)
	}

	decoded, err := xrpgo.Decode(strings.ToUpper(hexStr))
	if err != nil {
		return "", fmt.Errorf("xrp: decode round-trip failed: %w", err)
	}

	canonicalHex, err := xrpgo.Encode(decoded)
	if err != nil {
		return "", fmt.Errorf("xrp: re-encode failed: %w", err)
	}

	return strings.ToUpper(canonicalHex), nil
}

// DecodeTransaction parses a hex transaction blob into its JSON field map.
func DecodeTransaction(blob string) (map[string]any, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return nil, errors.New("xrp: empty transaction blob")
	}
	if _, err := hex.DecodeString(blob); err != nil {
		return nil, fmt.Errorf("xrp: transaction blob is not hex: %w", err)
	}

	decoded, err := xrpgo.Decode(strings.ToUpper(blob))
	if err != nil {
		return nil, fmt.Errorf("xrp: failed to decode transaction: %w", err)
	}
	return decoded, nil
}

// TransactionID computes the hash a signed transaction is known by on the ledger:
// SHA512-half of the "TXN\0" prefix followed by the fully serialized signed transaction.
func TransactionID(signedBlob string) (string, error) {
	signedTxBytes, err := hex.DecodeString(strings.TrimSpace(signedBlob))
	if err != nil {
		return "", fmt.Errorf("xrp: transaction blob is not hex: %w", err)
	}

	preimage := append(append([]byte{}, txnPrefix...), signedTxBytes...)
	hash := sha512.Sum512(preimage)

	return strings.ToUpper(hex.EncodeToString(hash[:32])), nil
}
