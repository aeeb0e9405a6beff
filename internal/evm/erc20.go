package evm

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// 4-byte selectors for the three no-argument ERC-20 metadata functions.
var (
	selName     = hexutil.MustDecode("0x06fdde03") // name()
	selSymbol   = hexutil.MustDecode("0x95d89b41") // symbol()
	selDecimals = hexutil.MustDecode("0x313ce567") // decimals()
)

var (
	abiString = mustType("string")
	abiUint8  = mustType("uint8")
)

func mustType(t string) abi.Type {
	ty, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return ty
}

// TokenName reads name() from the contract at addr.
func TokenName(ctx context.Context, c Client, addr string) (string, error) {
	out, err := c.CallContract(ctx, addr, selName)
	if err != nil {
		return "", err
	}
	return unpackString(out)
}

// TokenSymbol reads symbol() from the contract at addr.
func TokenSymbol(ctx context.Context, c Client, addr string) (string, error) {
	out, err := c.CallContract(ctx, addr, selSymbol)
	if err != nil {
		return "", err
	}
	return unpackString(out)
}

// TokenDecimals reads decimals() from the contract at addr.
func TokenDecimals(ctx context.Context, c Client, addr string) (uint8, error) {
	out, err := c.CallContract(ctx, addr, selDecimals)
	if err != nil {
		return 0, err
	}
	vals, err := abi.Arguments{{Type: abiUint8}}.Unpack(out)
	if err != nil {
		return 0, fmt.Errorf("unpack uint8 return: %w", err)
	}
	v, ok := vals[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unexpected return type %T", vals[0])
	}
	return v, nil
}

func unpackString(out []byte) (string, error) {
	vals, err := abi.Arguments{{Type: abiString}}.Unpack(out)
	if err != nil {
		return "", fmt.Errorf("unpack string return: %w", err)
	}
	s, ok := vals[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected return type %T", vals[0])
	}
	return s, nil
}
