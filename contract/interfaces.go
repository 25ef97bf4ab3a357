// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract defines the boundary between stateful precompiled
// contracts and the hosting EVM: the state they may touch, the block
// context they may read, and the execution entry point they implement.
package contract

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/CodeBlocker52/Technical-Test-DefiEdge/precompileconfig"
)

// Gas errors shared by all precompiles.
var (
	ErrOutOfGas        = errors.New("out of gas")
	ErrWriteProtection = errors.New("write protection")
)

// StateDB is the subset of EVM state accessible to precompiles.
type StateDB interface {
	GetState(addr common.Address, key common.Hash) common.Hash
	SetState(addr common.Address, key common.Hash, value common.Hash)
	GetBalance(addr common.Address) *uint256.Int
	Exist(addr common.Address) bool
	CreateAccount(addr common.Address)
}

// BlockContext provides block-level data to precompiles.
type BlockContext interface {
	// Number returns the height of the block being executed.
	Number() *big.Int
	// Timestamp returns the timestamp of the block being executed.
	Timestamp() uint64
}

// AccessibleState exposes the state and context a precompile may access
// during execution.
type AccessibleState interface {
	GetStateDB() StateDB
	GetBlockContext() BlockContext
}

// ConfigurationBlockContext is the block context available while a
// precompile is being configured (activated or deactivated).
type ConfigurationBlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

// StatefulPrecompiledContract is the interface every precompile implements.
type StatefulPrecompiledContract interface {
	// Run executes the precompile with the given input, returning the
	// output, the remaining gas, and any error. When readOnly is true the
	// precompile must not modify state.
	Run(
		accessibleState AccessibleState,
		caller common.Address,
		addr common.Address,
		input []byte,
		suppliedGas uint64,
		readOnly bool,
	) ([]byte, uint64, error)
}

// Configurator applies a precompile's config when it activates.
type Configurator interface {
	MakeConfig() precompileconfig.Config
	Configure(
		chainConfig precompileconfig.ChainConfig,
		cfg precompileconfig.Config,
		state StateDB,
		blockContext ConfigurationBlockContext,
	) error
}

// DeductGas subtracts [requiredGas] from [suppliedGas], failing with
// ErrOutOfGas if the supply is insufficient.
func DeductGas(suppliedGas uint64, requiredGas uint64) (uint64, error) {
	if suppliedGas < requiredGas {
		return 0, ErrOutOfGas
	}
	return suppliedGas - requiredGas, nil
}
