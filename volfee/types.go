// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package volfee implements a volatility-adaptive fee hook for a
// Uniswap v4-style pool manager. The hook records the pool tick observed
// after each swap, per pool and per block height, and uses the recorded
// movement to scale the swap fee and to reject swaps whose recent price
// impact exceeds the caller's declared slippage tolerance.
package volfee

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"
)

// uint24 type alias for fees
type uint24 = uint32

// int24 type alias for ticks
type int24 = int32

// Pool fee tiers (hundredths of a basis point)
const (
	Fee001 uint24 = 100    // 0.01% - stablecoins
	Fee005 uint24 = 500    // 0.05% - stable pairs
	Fee030 uint24 = 3000   // 0.30% - standard
	Fee100 uint24 = 10000  // 1.00% - exotic pairs
	FeeMax uint24 = 100000 // 10% max fee
)

// FeeDynamic is the flag bit on PoolKey.Fee marking a pool whose fee is
// computed by a hook rather than fixed at creation. The remaining bits
// carry the pool's nominal base fee.
const FeeDynamic uint24 = 0x800000

// IsDynamicFee returns true if [fee] carries the dynamic-fee flag.
func IsDynamicFee(fee uint24) bool {
	return fee&FeeDynamic != 0
}

// BaseFee returns [fee] with the dynamic-fee flag cleared.
func BaseFee(fee uint24) uint24 {
	return fee &^ FeeDynamic
}

// Errors
var (
	ErrMustUseDynamicFee = errors.New("pool must use dynamic fee")
	ErrSlippageExceeded  = errors.New("slippage exceeded")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidPoolKey    = errors.New("invalid pool key data length")
	ErrTickUnavailable   = errors.New("pool tick unavailable")
)

// Currency represents a token (native or ERC20).
// Address(0) represents the native asset.
type Currency struct {
	Address common.Address
}

// IsNative returns true if this currency is the native asset.
func (c Currency) IsNative() bool {
	return c.Address == common.Address{}
}

// ToBytes serializes currency for storage
func (c Currency) ToBytes() []byte {
	return c.Address.Bytes()
}

// CurrencyFromBytes deserializes currency from storage
func CurrencyFromBytes(data []byte) Currency {
	return Currency{Address: common.BytesToAddress(data)}
}

// PoolKey uniquely identifies a pool.
// Sorted by currency address (currency0 < currency1).
type PoolKey struct {
	Currency0   Currency       // Lower address token
	Currency1   Currency       // Higher address token
	Fee         uint24         // Nominal fee, with FeeDynamic flag when hooked
	TickSpacing int24          // Tick spacing for concentrated liquidity
	Hooks       common.Address // Hook contract address (zero = no hooks)
}

// ID computes the unique pool identifier. The hook treats it as an opaque
// key; it is derived by the pool manager and only consumed here.
func (pk PoolKey) ID() [32]byte {
	h := blake3.New()
	h.Write(pk.Currency0.ToBytes())
	h.Write(pk.Currency1.ToBytes())

	var feeBytes [4]byte
	binary.BigEndian.PutUint32(feeBytes[:], uint32(pk.Fee))
	h.Write(feeBytes[1:]) // uint24

	var tickBytes [4]byte
	binary.BigEndian.PutUint32(tickBytes[:], uint32(pk.TickSpacing))
	h.Write(tickBytes[1:]) // int24

	h.Write(pk.Hooks.Bytes())

	var id [32]byte
	h.Digest().Read(id[:])
	return id
}

// poolKeySize is the packed wire size of a PoolKey.
const poolKeySize = 20 + 20 + 3 + 3 + 20

// ToBytes serializes the pool key for the packed call convention.
func (pk PoolKey) ToBytes() []byte {
	data := make([]byte, poolKeySize)
	copy(data[0:20], pk.Currency0.ToBytes())
	copy(data[20:40], pk.Currency1.ToBytes())

	var feeBytes [4]byte
	binary.BigEndian.PutUint32(feeBytes[:], uint32(pk.Fee))
	copy(data[40:43], feeBytes[1:])

	var tickBytes [4]byte
	binary.BigEndian.PutUint32(tickBytes[:], uint32(pk.TickSpacing))
	copy(data[43:46], tickBytes[1:])

	copy(data[46:66], pk.Hooks.Bytes())
	return data
}

// PoolKeyFromBytes deserializes a pool key from the packed call convention.
func PoolKeyFromBytes(data []byte) (PoolKey, error) {
	if len(data) < poolKeySize {
		return PoolKey{}, ErrInvalidPoolKey
	}
	pk := PoolKey{}
	pk.Currency0 = CurrencyFromBytes(data[0:20])
	pk.Currency1 = CurrencyFromBytes(data[20:40])

	var feeBytes [4]byte
	copy(feeBytes[1:], data[40:43])
	pk.Fee = uint24(binary.BigEndian.Uint32(feeBytes[:]))

	var tickBytes [4]byte
	copy(tickBytes[1:], data[43:46])
	pk.TickSpacing = signExtend24(binary.BigEndian.Uint32(tickBytes[:]))

	pk.Hooks = common.BytesToAddress(data[46:66])
	return pk, nil
}

// signExtend24 widens a 24-bit two's complement value to int32.
func signExtend24(v uint32) int32 {
	if v&0x800000 != 0 {
		v |= 0xff000000
	}
	return int32(v)
}

// SwapParams contains the caller-declared parameters of a swap.
type SwapParams struct {
	ZeroForOne        bool     // true = swap currency0 for currency1
	AmountSpecified   *big.Int // Positive = exact input, Negative = exact output
	SqrtPriceLimitX96 *big.Int // Price limit (sqrt(price) * 2^96)
	MaxSlippage       uint32   // Max tolerated recent price impact (percent)
}

// swapParamsSize is the packed wire size of SwapParams.
const swapParamsSize = 1 + 32 + 32 + 4

// ToBytes serializes swap params for the packed call convention.
func (sp SwapParams) ToBytes() []byte {
	data := make([]byte, swapParamsSize)
	if sp.ZeroForOne {
		data[0] = 1
	}
	if sp.AmountSpecified != nil {
		new(big.Int).Abs(sp.AmountSpecified).FillBytes(data[1:33])
		if sp.AmountSpecified.Sign() < 0 {
			data[0] |= 0x80 // exact-output marker
		}
	}
	if sp.SqrtPriceLimitX96 != nil {
		sp.SqrtPriceLimitX96.FillBytes(data[33:65])
	}
	binary.BigEndian.PutUint32(data[65:69], sp.MaxSlippage)
	return data
}

// SwapParamsFromBytes deserializes swap params from the packed call
// convention.
func SwapParamsFromBytes(data []byte) (SwapParams, error) {
	if len(data) < swapParamsSize {
		return SwapParams{}, ErrInvalidInput
	}
	sp := SwapParams{
		ZeroForOne:        data[0]&0x01 != 0,
		AmountSpecified:   new(big.Int).SetBytes(data[1:33]),
		SqrtPriceLimitX96: new(big.Int).SetBytes(data[33:65]),
		MaxSlippage:       binary.BigEndian.Uint32(data[65:69]),
	}
	if data[0]&0x80 != 0 {
		sp.AmountSpecified.Neg(sp.AmountSpecified)
	}
	return sp, nil
}
