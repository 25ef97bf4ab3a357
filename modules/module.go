// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package modules

import (
	"bytes"

	"github.com/luxfi/geth/common"

	"github.com/CodeBlocker52/Technical-Test-DefiEdge/contract"
)

// Module wires a stateful precompile to its address, its config key, and
// the configurator that applies its config at activation.
type Module struct {
	// ConfigKey is the json key identifying this module's config.
	ConfigKey string
	// Address is the address the precompile is registered at.
	Address common.Address
	// Contract is the precompile implementation.
	Contract contract.StatefulPrecompiledContract
	// Configurator applies the module's config when it activates.
	Configurator contract.Configurator
}

type moduleArray []Module

func (m moduleArray) Len() int      { return len(m) }
func (m moduleArray) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m moduleArray) Less(i, j int) bool {
	return bytes.Compare(m[i].Address.Bytes(), m[j].Address.Bytes()) < 0
}
