// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package volfee

import (
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/CodeBlocker52/Technical-Test-DefiEdge/modules"
	"github.com/CodeBlocker52/Technical-Test-DefiEdge/precompileconfig"
)

func TestModuleRegistered(t *testing.T) {
	m, ok := modules.GetPrecompileModule(ConfigKey)
	require.True(t, ok)
	require.Equal(t, ContractVolFeeAddress, m.Address)
	require.Equal(t, VolFeePrecompile, m.Contract)

	m, ok = modules.GetPrecompileModuleByAddress(ContractVolFeeAddress)
	require.True(t, ok)
	require.Equal(t, ConfigKey, m.ConfigKey)
}

func TestConfigKeyAndVerify(t *testing.T) {
	cfg := &Config{}
	require.Equal(t, ConfigKey, cfg.Key())
	require.NoError(t, cfg.Verify(nil))
	require.False(t, cfg.IsDisabled())
	require.Nil(t, cfg.Timestamp())

	ts := uint64(1000)
	cfg = &Config{Upgrade: precompileconfig.Upgrade{BlockTimestamp: &ts, Disable: true}}
	require.True(t, cfg.IsDisabled())
	require.Equal(t, &ts, cfg.Timestamp())
}

func TestConfigEqual(t *testing.T) {
	ts := uint64(1000)
	mgr := common.HexToAddress("0x0000000000000000000000000000000000009010")

	base := func() *Config {
		return &Config{
			Upgrade:      precompileconfig.Upgrade{BlockTimestamp: &ts},
			PoolManager:  mgr,
			GateLookback: 1,
		}
	}

	require.True(t, base().Equal(base()))
	require.False(t, base().Equal(nil))
	require.False(t, base().Equal(&Config{}))

	other := base()
	other.PoolManager = common.HexToAddress("0x01")
	require.False(t, base().Equal(other))

	other = base()
	other.GateLookback = 2
	require.False(t, base().Equal(other))

	otherTS := uint64(2000)
	other = base()
	other.Upgrade = precompileconfig.Upgrade{BlockTimestamp: &otherTS}
	require.False(t, base().Equal(other))
}

func TestConfigureAppliesOverrides(t *testing.T) {
	prevManager := VolFeePrecompile.hook.poolManager
	prevState := VolFeePrecompile.hook.poolState
	prevLookback := VolFeePrecompile.hook.gateLookback
	defer func() {
		VolFeePrecompile.hook.poolManager = prevManager
		VolFeePrecompile.hook.poolState = prevState
		VolFeePrecompile.hook.gateLookback = prevLookback
	}()

	c := &configurator{}
	require.IsType(t, &Config{}, c.MakeConfig())

	newManager := common.HexToAddress("0x0000000000000000000000000000000000009011")
	err := c.Configure(nil, &Config{PoolManager: newManager, GateLookback: 3}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, newManager, VolFeePrecompile.hook.poolManager)
	require.Equal(t, uint64(3), VolFeePrecompile.hook.gateLookback)

	// A zero-value config leaves the defaults untouched.
	err = c.Configure(nil, &Config{}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, newManager, VolFeePrecompile.hook.poolManager)
	require.Equal(t, uint64(3), VolFeePrecompile.hook.gateLookback)

	// A config of the wrong type is rejected.
	err = c.Configure(nil, wrongConfig{}, nil, nil)
	require.Error(t, err)
}

// wrongConfig satisfies precompileconfig.Config but is not this module's
// Config type.
type wrongConfig struct {
	precompileconfig.Config
}
