// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package volfee

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/CodeBlocker52/Technical-Test-DefiEdge/contract"
)

// Gas costs per entry point
const (
	GasBeforeInitialize uint64 = 2_000 // Dynamic-fee config check
	GasBeforeSwap       uint64 = 3_000 // History reads + impact check
	GasAfterSwap        uint64 = 6_000 // Tick record + fee recomputation
	GasGetFee           uint64 = 200   // Fee schedule lookup
	GasQuoteFeeAmount   uint64 = 400   // Lookup + fee amount math
)

// Function selectors (4-byte, grouped by extension point)
var (
	SelectorBeforeInitialize = [4]byte{0x01, 0x00, 0x00, 0x01} // beforeInitialize(PoolKey)
	SelectorBeforeSwap       = [4]byte{0x03, 0x00, 0x00, 0x01} // beforeSwap(PoolKey,SwapParams)
	SelectorAfterSwap        = [4]byte{0x03, 0x00, 0x00, 0x02} // afterSwap(PoolKey,SwapParams)
	SelectorGetFee           = [4]byte{0x04, 0x00, 0x00, 0x01} // getFee(PoolKey)
	SelectorQuoteFeeAmount   = [4]byte{0x04, 0x00, 0x00, 0x02} // quoteFeeAmount(PoolKey,uint256)
)

// feeDenominator converts a fee rate in hundredths of a basis point into
// a fraction of the swapped amount.
var feeDenominator = uint256.NewInt(1_000_000)

// VolFeeContract exposes the volatility hook as a stateful precompile.
type VolFeeContract struct {
	hook *VolatilityHook
}

var _ contract.StatefulPrecompiledContract = (*VolFeeContract)(nil)

// Run executes the hook precompile.
func (c *VolFeeContract) Run(
	accessibleState contract.AccessibleState,
	caller common.Address,
	addr common.Address,
	input []byte,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	if len(input) < 4 {
		return nil, suppliedGas, ErrInvalidInput
	}

	var selector [4]byte
	copy(selector[:], input[:4])
	args := input[4:]

	switch selector {
	case SelectorBeforeInitialize:
		return c.beforeInitialize(caller, args, suppliedGas)
	case SelectorBeforeSwap:
		return c.beforeSwap(accessibleState, caller, args, suppliedGas)
	case SelectorAfterSwap:
		return c.afterSwap(accessibleState, caller, args, suppliedGas, readOnly)
	case SelectorGetFee:
		return c.getFee(accessibleState, args, suppliedGas)
	case SelectorQuoteFeeAmount:
		return c.quoteFeeAmount(accessibleState, args, suppliedGas)
	default:
		return nil, suppliedGas, ErrInvalidInput
	}
}

func (c *VolFeeContract) beforeInitialize(caller common.Address, args []byte, suppliedGas uint64) ([]byte, uint64, error) {
	remainingGas, err := contract.DeductGas(suppliedGas, GasBeforeInitialize)
	if err != nil {
		return nil, 0, err
	}

	key, err := PoolKeyFromBytes(args)
	if err != nil {
		return nil, remainingGas, err
	}

	if err := c.hook.BeforeInitialize(caller, key); err != nil {
		return nil, remainingGas, err
	}
	return nil, remainingGas, nil
}

func (c *VolFeeContract) beforeSwap(accessibleState contract.AccessibleState, caller common.Address, args []byte, suppliedGas uint64) ([]byte, uint64, error) {
	remainingGas, err := contract.DeductGas(suppliedGas, GasBeforeSwap)
	if err != nil {
		return nil, 0, err
	}

	key, params, err := unpackSwapCall(args)
	if err != nil {
		return nil, remainingGas, err
	}

	height := blockHeight(accessibleState)
	if err := c.hook.BeforeSwap(caller, height, key, params); err != nil {
		return nil, remainingGas, err
	}
	return nil, remainingGas, nil
}

func (c *VolFeeContract) afterSwap(accessibleState contract.AccessibleState, caller common.Address, args []byte, suppliedGas uint64, readOnly bool) ([]byte, uint64, error) {
	remainingGas, err := contract.DeductGas(suppliedGas, GasAfterSwap)
	if err != nil {
		return nil, 0, err
	}
	if readOnly {
		return nil, remainingGas, contract.ErrWriteProtection
	}

	key, params, err := unpackSwapCall(args)
	if err != nil {
		return nil, remainingGas, err
	}

	height := blockHeight(accessibleState)
	state := accessibleState.GetStateDB()
	if err := c.hook.AfterSwap(state, caller, height, key, params); err != nil {
		return nil, remainingGas, err
	}
	return nil, remainingGas, nil
}

func (c *VolFeeContract) getFee(accessibleState contract.AccessibleState, args []byte, suppliedGas uint64) ([]byte, uint64, error) {
	remainingGas, err := contract.DeductGas(suppliedGas, GasGetFee)
	if err != nil {
		return nil, 0, err
	}

	key, err := PoolKeyFromBytes(args)
	if err != nil {
		return nil, remainingGas, err
	}

	fee, err := c.hook.Fee(blockHeight(accessibleState), key)
	if err != nil {
		return nil, remainingGas, err
	}
	return packUint32(fee), remainingGas, nil
}

func (c *VolFeeContract) quoteFeeAmount(accessibleState contract.AccessibleState, args []byte, suppliedGas uint64) ([]byte, uint64, error) {
	remainingGas, err := contract.DeductGas(suppliedGas, GasQuoteFeeAmount)
	if err != nil {
		return nil, 0, err
	}

	if len(args) < poolKeySize+32 {
		return nil, remainingGas, ErrInvalidInput
	}
	key, err := PoolKeyFromBytes(args[:poolKeySize])
	if err != nil {
		return nil, remainingGas, err
	}
	amount := new(uint256.Int).SetBytes(args[poolKeySize : poolKeySize+32])

	fee, err := c.hook.Fee(blockHeight(accessibleState), key)
	if err != nil {
		return nil, remainingGas, err
	}

	// feeAmount = amount * fee / 1_000_000
	feeAmount := new(uint256.Int).Mul(amount, uint256.NewInt(uint64(fee)))
	feeAmount.Div(feeAmount, feeDenominator)

	out := feeAmount.Bytes32()
	return out[:], remainingGas, nil
}

// unpackSwapCall splits a packed PoolKey + SwapParams argument blob.
func unpackSwapCall(args []byte) (PoolKey, SwapParams, error) {
	if len(args) < poolKeySize+swapParamsSize {
		return PoolKey{}, SwapParams{}, ErrInvalidInput
	}
	key, err := PoolKeyFromBytes(args[:poolKeySize])
	if err != nil {
		return PoolKey{}, SwapParams{}, err
	}
	params, err := SwapParamsFromBytes(args[poolKeySize : poolKeySize+swapParamsSize])
	if err != nil {
		return PoolKey{}, SwapParams{}, err
	}
	return key, params, nil
}

func blockHeight(accessibleState contract.AccessibleState) uint64 {
	number := accessibleState.GetBlockContext().Number()
	if number == nil {
		return 0
	}
	return number.Uint64()
}

func packUint32(v uint32) []byte {
	out := make([]byte, 32)
	binary.BigEndian.PutUint32(out[28:], v)
	return out
}
