// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/thor"
)

// Config is the engine configuration.
type Config struct {
	Admin              thor.Address      `json:"admin"`
	Creator            *thor.Address     `json:"creator,omitempty"`
	ContractCollection *nft.CollectionID `json:"contractCollection,omitempty"`
	Locked             bool              `json:"locked"`
	Reserve            thor.Address      `json:"reserve"`
	ContractCount      uint32            `json:"contractCount"`
	Limits             Limits            `json:"limits"`
}

type Limits struct {
	MaxClauses     uint32 `json:"maxClauses"`
	MaxRewards     uint32 `json:"maxRewards"`
	MaxStakeAmount uint32 `json:"maxStakeAmount"`
	MaxContracts   uint32 `json:"maxContracts"`
}

type SetCreatorRequest struct {
	Caller  thor.Address `json:"caller"`
	Creator thor.Address `json:"creator"`
}

type SetCollectionRequest struct {
	Caller     thor.Address      `json:"caller"`
	Collection *nft.CollectionID `json:"collection,omitempty"`
}

type SetLockedRequest struct {
	Caller thor.Address `json:"caller"`
	Locked bool         `json:"locked"`
}
