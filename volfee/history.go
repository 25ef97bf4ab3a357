// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package volfee

import (
	"encoding/binary"
	"errors"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
)

// Store key namespaces
var (
	tickHistoryPrefix = []byte("vtck")
	feeSchedulePrefix = []byte("vfee")
)

// HookStore persists the hook's per-pool, per-height state: the tick
// observed after each swap and the fee computed for each block. Both maps
// are exclusively owned by the hook engine; entries are written by the
// post-swap recorder and never mutated by later blocks.
//
// Keys are poolID || bigEndian(height). Reads for never-written heights
// return the zero value, which all arithmetic treats as "no prior data".
type HookStore struct {
	ticks database.Database
	fees  database.Database
}

// NewHookStore namespaces [db] into tick-history and fee-schedule stores.
func NewHookStore(db database.Database) *HookStore {
	return &HookStore{
		ticks: prefixdb.New(tickHistoryPrefix, db),
		fees:  prefixdb.New(feeSchedulePrefix, db),
	}
}

// historyKey builds the compound (pool, height) store key.
func historyKey(poolID [32]byte, height uint64) []byte {
	key := make([]byte, 40)
	copy(key[:32], poolID[:])
	binary.BigEndian.PutUint64(key[32:], height)
	return key
}

// Tick returns the tick recorded for [poolID] at [height], or zero if no
// swap was recorded at that height.
func (s *HookStore) Tick(poolID [32]byte, height uint64) (int24, error) {
	data, err := s.ticks.Get(historyKey(poolID, height))
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(data) != 4 {
		return 0, ErrInvalidInput
	}
	return int24(binary.BigEndian.Uint32(data)), nil
}

// PutTick records [tick] for [poolID] at [height]. A later swap in the
// same block overwrites the entry; later blocks never do.
func (s *HookStore) PutTick(poolID [32]byte, height uint64, tick int24) error {
	var data [4]byte
	binary.BigEndian.PutUint32(data[:], uint32(tick))
	return s.ticks.Put(historyKey(poolID, height), data[:])
}

// Fee returns the fee scheduled for [poolID] at [height], or zero if no
// swap has computed a fee for that height.
func (s *HookStore) Fee(poolID [32]byte, height uint64) (uint24, error) {
	data, err := s.fees.Get(historyKey(poolID, height))
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(data) != 4 {
		return 0, ErrInvalidInput
	}
	return uint24(binary.BigEndian.Uint32(data)), nil
}

// PutFee schedules [fee] for [poolID] at [height].
func (s *HookStore) PutFee(poolID [32]byte, height uint64, fee uint24) error {
	var data [4]byte
	binary.BigEndian.PutUint32(data[:], uint32(fee))
	return s.fees.Put(historyKey(poolID, height), data[:])
}
