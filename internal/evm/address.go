package evm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidAddress is returned for input that fails the account-address
// grammar or carries wrong EIP-55 checksum casing.
var ErrInvalidAddress = errors.New("invalid address")

// hexAddressLength is "0x" plus 40 hex characters.
const hexAddressLength = 42

// IsWellFormed reports whether raw is structurally an account address:
// the 0x prefix followed by exactly 40 hex characters. It never computes
// a checksum, so already-canonical records can be checked without one.
func IsWellFormed(raw string) bool {
	if len(raw) != hexAddressLength || !strings.HasPrefix(raw, "0x") {
		return false
	}
	for _, c := range raw[2:] {
		if !isHexChar(c) {
			return false
		}
	}
	return true
}

func isHexChar(c rune) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}

// ValidateAndNormalize checks raw against the address grammar and returns
// its EIP-55 checksummed form. The grammar check runs first; no checksum
// is computed for malformed input. All-lowercase and all-uppercase
// payloads are re-cased, while mixed-case input must already carry the
// correct checksum casing.
func ValidateAndNormalize(raw string) (string, error) {
	if !IsWellFormed(raw) {
		return "", fmt.Errorf("%w: %s", ErrInvalidAddress, raw)
	}

	checksummed := common.HexToAddress(raw).Hex()

	payload := raw[2:]
	mixed := payload != strings.ToLower(payload) && payload != strings.ToUpper(payload)
	if mixed && raw != checksummed {
		return "", fmt.Errorf("%w: checksum mismatch: %s", ErrInvalidAddress, raw)
	}
	return checksummed, nil
}
