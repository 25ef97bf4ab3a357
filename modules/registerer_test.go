// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package modules

import (
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

func TestReservedAddress(t *testing.T) {
	require.True(t, ReservedAddress(common.HexToAddress("0x0000000000000000000000000000000000009000")))
	require.True(t, ReservedAddress(common.HexToAddress("0x0000000000000000000000000000000000009015")))
	require.True(t, ReservedAddress(common.HexToAddress("0x0000000000000000000000000000000000009fff")))

	require.False(t, ReservedAddress(common.HexToAddress("0x0000000000000000000000000000000000008fff")))
	require.False(t, ReservedAddress(common.HexToAddress("0x000000000000000000000000000000000000a000")))
	require.False(t, ReservedAddress(common.Address{}))
}

func TestRegisterModule(t *testing.T) {
	saved := registeredModules
	defer func() { registeredModules = saved }()
	registeredModules = make([]Module, 0)

	moduleA := Module{
		ConfigKey: "aConfig",
		Address:   common.HexToAddress("0x0000000000000000000000000000000000009200"),
	}
	moduleB := Module{
		ConfigKey: "bConfig",
		Address:   common.HexToAddress("0x0000000000000000000000000000000000009100"),
	}

	require.NoError(t, RegisterModule(moduleA))
	require.NoError(t, RegisterModule(moduleB))

	// Duplicate config key rejected.
	err := RegisterModule(Module{
		ConfigKey: "aConfig",
		Address:   common.HexToAddress("0x0000000000000000000000000000000000009300"),
	})
	require.ErrorContains(t, err, "already used")

	// Duplicate address rejected.
	err = RegisterModule(Module{
		ConfigKey: "cConfig",
		Address:   moduleA.Address,
	})
	require.ErrorContains(t, err, "already used")

	// Out-of-range address rejected.
	err = RegisterModule(Module{
		ConfigKey: "dConfig",
		Address:   common.HexToAddress("0x0000000000000000000000000000000000000100"),
	})
	require.ErrorContains(t, err, "not in a reserved range")

	// Lookups by key and address.
	got, ok := GetPrecompileModule("bConfig")
	require.True(t, ok)
	require.Equal(t, moduleB.Address, got.Address)

	got, ok = GetPrecompileModuleByAddress(moduleA.Address)
	require.True(t, ok)
	require.Equal(t, "aConfig", got.ConfigKey)

	_, ok = GetPrecompileModule("missing")
	require.False(t, ok)

	// Iteration order is sorted by address, not registration order.
	all := RegisteredModules()
	require.Len(t, all, 2)
	require.Equal(t, moduleB.Address, all[0].Address)
	require.Equal(t, moduleA.Address, all[1].Address)
}
