// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/thor"
)

// Contract is a contract with its runtime state at the head block.
type Contract struct {
	ID          contract.ID        `json:"id"`
	Phase       contract.Phase     `json:"phase"`
	Holder      *thor.Address      `json:"holder,omitempty"`
	AcceptedAt  *uint32            `json:"acceptedAt,omitempty"`
	StakedItems []nft.Address      `json:"stakedItems,omitempty"`
	Contract    *contract.Contract `json:"contract"`
}

// CallRequest is the body of cancel, claim and snipe.
type CallRequest struct {
	Caller thor.Address `json:"caller"`
}

type CreateRequest struct {
	Caller   thor.Address       `json:"caller"`
	Contract *contract.Contract `json:"contract"`
}

type AcceptRequest struct {
	Caller thor.Address  `json:"caller"`
	Stakes []nft.Address `json:"stakes"`
	Fees   []nft.Address `json:"fees"`
}
