// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testruntime builds in-memory runtimes for tests.
package testruntime

import (
	"github.com/vechain/nftstake/genesis"
	"github.com/vechain/nftstake/lvldb"
	"github.com/vechain/nftstake/runtime"
)

// New returns a runtime over an in-memory store, initialized with gen.
func New(gen *genesis.Genesis) (*runtime.Runtime, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	rt, err := runtime.New(db, 64)
	if err != nil {
		return nil, err
	}
	if err := rt.Init(gen.Apply); err != nil {
		return nil, err
	}
	return rt, nil
}

// NewDefault returns a runtime initialized with the devnet genesis.
func NewDefault() (*runtime.Runtime, error) {
	return New(genesis.Devnet())
}
