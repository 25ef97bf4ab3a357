// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package volfee

import (
	"testing"

	"github.com/luxfi/database/memdb"
	"github.com/stretchr/testify/require"
)

func TestHookStoreUnwrittenReadsZero(t *testing.T) {
	store := NewHookStore(memdb.New())
	poolID := [32]byte{1}

	tick, err := store.Tick(poolID, 100)
	require.NoError(t, err)
	require.Zero(t, tick)

	fee, err := store.Fee(poolID, 100)
	require.NoError(t, err)
	require.Zero(t, fee)
}

func TestHookStoreRoundTrip(t *testing.T) {
	store := NewHookStore(memdb.New())
	poolID := [32]byte{1}

	require.NoError(t, store.PutTick(poolID, 100, -887272))
	require.NoError(t, store.PutFee(poolID, 100, 3017))

	tick, err := store.Tick(poolID, 100)
	require.NoError(t, err)
	require.Equal(t, int24(-887272), tick)

	fee, err := store.Fee(poolID, 100)
	require.NoError(t, err)
	require.Equal(t, uint24(3017), fee)
}

func TestHookStoreKeysAreIsolated(t *testing.T) {
	store := NewHookStore(memdb.New())
	poolA := [32]byte{0xaa}
	poolB := [32]byte{0xbb}

	require.NoError(t, store.PutTick(poolA, 100, 500))
	require.NoError(t, store.PutTick(poolA, 101, 600))
	require.NoError(t, store.PutTick(poolB, 100, -700))

	// Tick and fee namespaces do not collide even for the same key.
	require.NoError(t, store.PutFee(poolA, 100, 3000))

	tick, err := store.Tick(poolA, 100)
	require.NoError(t, err)
	require.Equal(t, int24(500), tick)

	tick, err = store.Tick(poolA, 101)
	require.NoError(t, err)
	require.Equal(t, int24(600), tick)

	tick, err = store.Tick(poolB, 100)
	require.NoError(t, err)
	require.Equal(t, int24(-700), tick)

	tick, err = store.Tick(poolB, 101)
	require.NoError(t, err)
	require.Zero(t, tick)
}

func TestHookStoreSameHeightOverwrite(t *testing.T) {
	store := NewHookStore(memdb.New())
	poolID := [32]byte{1}

	require.NoError(t, store.PutTick(poolID, 100, 500))
	require.NoError(t, store.PutTick(poolID, 100, 900))

	tick, err := store.Tick(poolID, 100)
	require.NoError(t, err)
	require.Equal(t, int24(900), tick)
}
