// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake/clause"
	"github.com/vechain/nftstake/thor"
)

// ID identifies a contract. It is also the item id of the contract certificate.
type ID uint32

func (id ID) Bytes() []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(id))
	return b[:]
}

// Item returns the certificate item id.
func (id ID) Item() nft.ItemID {
	return nft.ItemID(id)
}

type RewardKind uint8

const (
	RewardTokens RewardKind = iota
	RewardNFT
)

// Reward is either an amount of tokens or one NFT.
type Reward struct {
	Kind   RewardKind
	Amount *big.Int
	NFT    nft.Address
}

func TokensReward(amount *big.Int) *Reward {
	return &Reward{Kind: RewardTokens, Amount: amount}
}

func NFTReward(addr nft.Address) *Reward {
	return &Reward{Kind: RewardNFT, Amount: new(big.Int), NFT: addr}
}

func (r *Reward) String() string {
	if r.Kind == RewardNFT {
		return "nft(" + r.NFT.String() + ")"
	}
	return "tokens(" + r.Amount.String() + ")"
}

type rewardJSON struct {
	Tokens *big.Int     `json:"tokens,omitempty"`
	NFT    *nft.Address `json:"nft,omitempty"`
}

func (r *Reward) MarshalJSON() ([]byte, error) {
	if r.Kind == RewardNFT {
		return json.Marshal(&rewardJSON{NFT: &r.NFT})
	}
	return json.Marshal(&rewardJSON{Tokens: r.Amount})
}

func (r *Reward) UnmarshalJSON(data []byte) error {
	var v rewardJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch {
	case v.Tokens != nil && v.NFT == nil:
		*r = *TokensReward(v.Tokens)
	case v.NFT != nil && v.Tokens == nil:
		*r = *NFTReward(*v.NFT)
	default:
		return fmt.Errorf("reward must be either tokens or nft")
	}
	return nil
}

// CancelPolicy decides the destination of the escrowed reward when a staker cancels.
type CancelPolicy uint8

const (
	// Refund returns the reward to the creator.
	Refund CancelPolicy = iota
	// Burn destroys the reward.
	Burn
)

func (p CancelPolicy) MarshalText() ([]byte, error) {
	switch p {
	case Refund:
		return []byte("refund"), nil
	case Burn:
		return []byte("burn"), nil
	}
	return nil, fmt.Errorf("unknown cancel policy %d", uint8(p))
}

func (p *CancelPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "refund", "":
		*p = Refund
	case "burn":
		*p = Burn
	default:
		return fmt.Errorf("unknown cancel policy %q", text)
	}
	return nil
}

// Contract is a staking offer.
type Contract struct {
	Creator        thor.Address             `json:"creator"`
	Activation     *uint32                  `json:"activation,omitempty"`
	ActiveDuration uint32                   `json:"activeDuration"`
	StakeDuration  uint32                   `json:"stakeDuration"`
	ClaimDuration  uint32                   `json:"claimDuration"`
	StakeClauses   []*clause.ContractClause `json:"stakeClauses"`
	FeeClauses     []*clause.ContractClause `json:"feeClauses"`
	NFTStakeAmount uint8                    `json:"nftStakeAmount"`
	NFTFeeAmount   uint8                    `json:"nftFeeAmount"`
	Rewards        []*Reward                `json:"rewards"`
	CancelFee      *big.Int                 `json:"cancelFee,omitempty"`
	BurnFees       bool                     `json:"burnFees"`
	IsSnipeable    bool                     `json:"isSnipeable"`
	CancelPolicy   CancelPolicy             `json:"cancelPolicy"`
}

// Fee returns the cancel fee, zero when unset.
func (c *Contract) Fee() *big.Int {
	if c.CancelFee == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(c.CancelFee)
}

// EvaluateStakes reports whether the addresses fulfil the stake clauses.
func (c *Contract) EvaluateStakes(addresses []nft.Address, src clause.Source) bool {
	return clause.Satisfied(c.StakeClauses, c.NFTStakeAmount, addresses, src)
}

// EvaluateFees reports whether the addresses fulfil the fee clauses.
func (c *Contract) EvaluateFees(addresses []nft.Address, src clause.Source) bool {
	return clause.Satisfied(c.FeeClauses, c.NFTFeeAmount, addresses, src)
}
