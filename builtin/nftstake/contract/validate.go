// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"fmt"

	"github.com/vechain/nftstake/builtin/nftstake/reverts"
)

// Limits bounds the size of a contract.
type Limits struct {
	MaxClauses     uint32
	MaxRewards     uint32
	MaxStakeAmount uint32
}

// Validate checks the contract against the limits.
func (c *Contract) Validate(limits Limits) error {
	if uint32(len(c.StakeClauses)) > limits.MaxClauses {
		return reverts.New(reverts.IncorrectNumberOfClauses, fmt.Sprintf("%d stake clauses", len(c.StakeClauses)))
	}
	if uint32(len(c.FeeClauses)) > limits.MaxClauses {
		return reverts.New(reverts.IncorrectNumberOfClauses, fmt.Sprintf("%d fee clauses", len(c.FeeClauses)))
	}
	if len(c.Rewards) == 0 || uint32(len(c.Rewards)) > limits.MaxRewards {
		return reverts.New(reverts.IncorrectNumberOfRewards, fmt.Sprintf("%d rewards", len(c.Rewards)))
	}
	if c.NFTStakeAmount == 0 || uint32(c.NFTStakeAmount) > limits.MaxStakeAmount {
		return reverts.New(reverts.InvalidNFTStakeAmount, fmt.Sprintf("stake amount %d", c.NFTStakeAmount))
	}
	if uint32(c.NFTFeeAmount) > limits.MaxStakeAmount {
		return reverts.New(reverts.InvalidNFTFeeAmount, fmt.Sprintf("fee amount %d", c.NFTFeeAmount))
	}
	for i, cl := range c.StakeClauses {
		if cl == nil {
			return reverts.New(reverts.IncorrectNumberOfClauses, fmt.Sprintf("nil stake clause %d", i))
		}
		if err := cl.Validate(c.NFTStakeAmount); err != nil {
			return err
		}
	}
	for i, cl := range c.FeeClauses {
		if cl == nil {
			return reverts.New(reverts.IncorrectNumberOfClauses, fmt.Sprintf("nil fee clause %d", i))
		}
		if err := cl.Validate(c.NFTFeeAmount); err != nil {
			return err
		}
	}

	nfts := make(map[string]bool)
	for i, r := range c.Rewards {
		if r == nil {
			return reverts.New(reverts.IncorrectNumberOfRewards, fmt.Sprintf("nil reward %d", i))
		}
		switch r.Kind {
		case RewardTokens:
			if r.Amount == nil || r.Amount.Sign() <= 0 {
				return reverts.New(reverts.InvalidContract, "token reward must be positive")
			}
		case RewardNFT:
			key := r.NFT.String()
			if nfts[key] {
				return reverts.New(reverts.InvalidContract, "duplicated nft reward "+key)
			}
			nfts[key] = true
		default:
			return reverts.New(reverts.InvalidContract, fmt.Sprintf("unknown reward kind %d", r.Kind))
		}
	}
	if c.Fee().Sign() < 0 {
		return reverts.New(reverts.InvalidContract, "negative cancel fee")
	}
	if c.CancelPolicy > Burn {
		return reverts.New(reverts.InvalidContract, fmt.Sprintf("unknown cancel policy %d", c.CancelPolicy))
	}
	return nil
}
