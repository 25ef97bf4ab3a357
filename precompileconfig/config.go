// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompileconfig defines the configuration interfaces implemented
// by every stateful precompile module in this repository.
package precompileconfig

import (
	"github.com/luxfi/geth/common"
)

// Config is implemented by each precompile module's configuration struct.
// Instances are parsed from the chain's JSON upgrade config and handed to
// the module's Configurator at activation time.
type Config interface {
	// Key returns the unique json key used to identify this config.
	Key() string
	// Timestamp returns the timestamp this config activates at, or nil if
	// the config is not scheduled.
	Timestamp() *uint64
	// IsDisabled returns true if this config disables the precompile.
	IsDisabled() bool
	// Equal reports whether this config is equivalent to [other].
	Equal(other Config) bool
	// Verify checks the config is internally consistent before activation.
	Verify(chainConfig ChainConfig) error
}

// ChainConfig provides the subset of chain configuration a precompile
// configurator may consult during activation.
type ChainConfig interface {
	// IsPrecompileEnabled reports whether the precompile at [addr] is
	// active at [timestamp].
	IsPrecompileEnabled(addr common.Address, timestamp uint64) bool
}
