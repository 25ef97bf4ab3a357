// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package volfee

import (
	"fmt"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/geth/common"

	"github.com/CodeBlocker52/Technical-Test-DefiEdge/contract"
	"github.com/CodeBlocker52/Technical-Test-DefiEdge/modules"
	"github.com/CodeBlocker52/Technical-Test-DefiEdge/precompileconfig"
)

var _ contract.Configurator = (*configurator)(nil)

// ConfigKey is the key used in json config files to specify this precompile config.
const ConfigKey = "volatilityFeeConfig"

// Contract addresses. The pool manager host is the singleton at 0x...9010;
// this hook engine lives at 0x...9015.
var (
	ContractPoolManagerAddress = common.HexToAddress("0x0000000000000000000000000000000000009010")
	ContractVolFeeAddress      = common.HexToAddress("0x0000000000000000000000000000000000009015")
)

// VolFeePrecompile is the singleton instance.
var VolFeePrecompile = &VolFeeContract{
	hook: NewVolatilityHook(
		ContractPoolManagerAddress,
		memdb.New(),
		NewManagerStateReader(ContractPoolManagerAddress),
	),
}

// Module is the precompile module.
var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      ContractVolFeeAddress,
	Contract:     VolFeePrecompile,
	Configurator: &configurator{},
}

func init() {
	if err := modules.RegisterModule(Module); err != nil {
		panic(err)
	}
}

type configurator struct{}

func (*configurator) MakeConfig() precompileconfig.Config {
	return new(Config)
}

func (*configurator) Configure(
	chainConfig precompileconfig.ChainConfig,
	cfg precompileconfig.Config,
	state contract.StateDB,
	blockContext contract.ConfigurationBlockContext,
) error {
	config, ok := cfg.(*Config)
	if !ok {
		return fmt.Errorf("expected config type %T, got %T: %v", &Config{}, cfg, cfg)
	}

	if config.PoolManager != (common.Address{}) {
		VolFeePrecompile.hook.SetPoolManager(config.PoolManager)
		VolFeePrecompile.hook.poolState = NewManagerStateReader(config.PoolManager)
	}
	if config.GateLookback != 0 {
		VolFeePrecompile.hook.SetGateLookback(config.GateLookback)
	}

	return nil
}

// Config implements the precompileconfig.Config interface.
type Config struct {
	Upgrade precompileconfig.Upgrade `json:"upgrade,omitempty"`
	// PoolManager overrides the trusted pool manager address.
	PoolManager common.Address `json:"poolManager,omitempty"`
	// GateLookback overrides how many blocks before the in-progress block
	// the admission check reads history from.
	GateLookback uint64 `json:"gateLookback,omitempty"`
}

func (c *Config) Key() string {
	return ConfigKey
}

func (c *Config) Timestamp() *uint64 {
	return c.Upgrade.Timestamp()
}

func (c *Config) IsDisabled() bool {
	return c.Upgrade.Disable
}

func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := cfg.(*Config)
	if !ok {
		return false
	}
	return c.Upgrade.Equal(&other.Upgrade) &&
		c.PoolManager == other.PoolManager &&
		c.GateLookback == other.GateLookback
}

func (c *Config) Verify(chainConfig precompileconfig.ChainConfig) error {
	return nil
}
