// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nftstake

import (
	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/thor"
)

type EventKind string

const (
	EventCreated               EventKind = "Created"
	EventAccepted              EventKind = "Accepted"
	EventCancelled             EventKind = "Cancelled"
	EventClaimed               EventKind = "Claimed"
	EventSniped                EventKind = "Sniped"
	EventCreatorSet            EventKind = "CreatorSet"
	EventContractCollectionSet EventKind = "ContractCollectionSet"
	EventLockedStateSet        EventKind = "LockedStateSet"
)

// Event is emitted by a successful call. Account is the acting account,
// except for CreatorSet where it is the new creator.
type Event struct {
	Kind       EventKind          `json:"kind"`
	Contract   *contract.ID       `json:"contract,omitempty"`
	Account    thor.Address       `json:"account"`
	Staker     *thor.Address      `json:"staker,omitempty"`
	Stakes     []nft.Address      `json:"stakes,omitempty"`
	Fees       []nft.Address      `json:"fees,omitempty"`
	Rewards    []*contract.Reward `json:"rewards,omitempty"`
	Collection *nft.CollectionID  `json:"collection,omitempty"`
	Locked     *bool              `json:"locked,omitempty"`
}
