// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package volfee

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"

	"github.com/CodeBlocker52/Technical-Test-DefiEdge/contract"
)

// DefaultGateLookback is how many blocks before the in-progress block the
// admission check starts reading history from. The in-progress block's
// tick has not been recorded yet, so the gate compares the two most
// recent completed observations: heights h-1 and h-2.
//
// The post-swap fee recomputation instead compares h and h-1 (the tick it
// just wrote against the prior block). The two offsets are independent.
const DefaultGateLookback uint64 = 1

// PoolStateReader answers the hook's one query into host state: the
// pool's authoritative tick after the swap that just executed.
type PoolStateReader interface {
	PoolTick(state contract.StateDB, poolID [32]byte) (int24, error)
}

// VolatilityHook is the fee/slippage engine. It owns the tick history and
// fee schedule exclusively; the pool manager invokes it around swap
// execution and anyone may read the scheduled fee.
type VolatilityHook struct {
	// poolManager is the single trusted caller of the restricted entry
	// points. Every other caller is rejected before state is touched.
	poolManager common.Address

	store     *HookStore
	poolState PoolStateReader

	gateLookback uint64
}

// NewVolatilityHook creates a hook trusting [poolManager], persisting
// history in [db], and reading post-swap ticks through [poolState].
func NewVolatilityHook(poolManager common.Address, db database.Database, poolState PoolStateReader) *VolatilityHook {
	return &VolatilityHook{
		poolManager:  poolManager,
		store:        NewHookStore(db),
		poolState:    poolState,
		gateLookback: DefaultGateLookback,
	}
}

// Permissions returns the extension points this hook participates in.
func (h *VolatilityHook) Permissions() HookPermissions {
	return HookPermissions{
		BeforeInitialize: true,
		BeforeSwap:       true,
		AfterSwap:        true,
	}
}

// SetGateLookback overrides the admission check's history offset.
func (h *VolatilityHook) SetGateLookback(lookback uint64) {
	h.gateLookback = lookback
}

// SetPoolManager updates the trusted caller.
func (h *VolatilityHook) SetPoolManager(poolManager common.Address) {
	h.poolManager = poolManager
}

func (h *VolatilityHook) authorize(caller common.Address) error {
	if caller != h.poolManager {
		return fmt.Errorf("%w: caller %s is not the pool manager", ErrUnauthorized, caller.Hex())
	}
	return nil
}

// BeforeInitialize validates that a pool registering this hook was
// configured for a dynamic fee. No state is written.
func (h *VolatilityHook) BeforeInitialize(caller common.Address, key PoolKey) error {
	if err := h.authorize(caller); err != nil {
		return err
	}
	if !IsDynamicFee(key.Fee) {
		return fmt.Errorf("%w: pool fee %#x lacks the dynamic flag", ErrMustUseDynamicFee, key.Fee)
	}
	return nil
}

// BeforeSwap is the admission check, invoked immediately before a swap
// executes at [height]. It compares the price impact across the two most
// recent completed observations against the swap's declared tolerance and
// rejects the swap when the impact strictly exceeds it. Read-only.
func (h *VolatilityHook) BeforeSwap(caller common.Address, height uint64, key PoolKey, params SwapParams) error {
	if err := h.authorize(caller); err != nil {
		return err
	}

	impact, err := h.recentImpact(key.ID(), height)
	if err != nil {
		return err
	}
	if impact > params.MaxSlippage {
		return fmt.Errorf("%w: recent price impact %d%% exceeds tolerance %d%%",
			ErrSlippageExceeded, impact, params.MaxSlippage)
	}
	return nil
}

// recentImpact computes the price impact between the observations at
// height-gateLookback and height-gateLookback-1. Heights with no recorded
// swap read as zero, which PriceImpact treats as insufficient history.
func (h *VolatilityHook) recentImpact(poolID [32]byte, height uint64) (uint32, error) {
	if height <= h.gateLookback {
		return 0, nil
	}

	current, err := h.store.Tick(poolID, height-h.gateLookback)
	if err != nil {
		return 0, err
	}

	var previous int24
	if height > h.gateLookback+1 {
		previous, err = h.store.Tick(poolID, height-h.gateLookback-1)
		if err != nil {
			return 0, err
		}
	}

	return PriceImpact(current, previous), nil
}

// AfterSwap records the pool's post-swap tick at [height] and recomputes
// the fee for the block: the pool's base fee, raised by the tick movement
// since the prior block when one was observed. The last swap in a block
// determines the recorded tick and fee for that height.
func (h *VolatilityHook) AfterSwap(state contract.StateDB, caller common.Address, height uint64, key PoolKey, params SwapParams) error {
	if err := h.authorize(caller); err != nil {
		return err
	}
	if h.poolState == nil {
		return ErrTickUnavailable
	}

	poolID := key.ID()
	tick, err := h.poolState.PoolTick(state, poolID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTickUnavailable, err)
	}
	if err := h.store.PutTick(poolID, height, tick); err != nil {
		return err
	}

	var previous int24
	if height > 0 {
		previous, err = h.store.Tick(poolID, height-1)
		if err != nil {
			return err
		}
	}

	fee := BaseFee(key.Fee)
	if previous != 0 {
		fee += uint24(PriceImpact(tick, previous) / 100)
		if fee > FeeMax {
			fee = FeeMax
		}
	}

	return h.store.PutFee(poolID, height, fee)
}

// Fee returns the fee scheduled for [key] at [height]. Callable by
// anyone. A zero return means no swap has computed a fee at this height:
// initialization guarantees a nonzero base fee, so zero never means a
// computed fee of zero.
func (h *VolatilityHook) Fee(height uint64, key PoolKey) (uint24, error) {
	return h.store.Fee(key.ID(), height)
}

// =========================================================================
// Host pool state
// =========================================================================

// poolStatePrefix matches the pool manager's storage namespace for pool
// state, so the hook can read the tick the manager wrote after the swap.
var poolStatePrefix = []byte("pool")

// ManagerStateReader reads a pool's current tick out of the pool
// manager's own storage slots.
type ManagerStateReader struct {
	manager common.Address
}

var _ PoolStateReader = (*ManagerStateReader)(nil)

// NewManagerStateReader creates a reader for the manager at [manager].
func NewManagerStateReader(manager common.Address) *ManagerStateReader {
	return &ManagerStateReader{manager: manager}
}

// PoolTick returns the tick stored for [poolID] by the pool manager.
func (r *ManagerStateReader) PoolTick(state contract.StateDB, poolID [32]byte) (int24, error) {
	slot := makeStorageKey(poolStatePrefix, append(poolID[:], []byte("tick")...))
	value := state.GetState(r.manager, slot)
	return int24(binary.BigEndian.Uint32(value[28:32])), nil
}

// makeStorageKey creates a storage slot key from prefix and identifier
func makeStorageKey(prefix []byte, id []byte) common.Hash {
	h := blake3.New()
	h.Write(prefix)
	h.Write(id)
	var key common.Hash
	h.Digest().Read(key[:])
	return key
}
