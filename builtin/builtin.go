// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/nftstake/builtin/currency"
	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake"
	"github.com/vechain/nftstake/state"
)

// Builtin contracts binding.
var (
	Currency = &currencyContract{newContract("Currency")}
	NFT      = &nftContract{newContract("NFT")}
	NftStake = &nftStakeContract{newContract("NftStake")}
)

type (
	currencyContract struct{ *contract }
	nftContract      struct{ *contract }
	nftStakeContract struct{ *contract }
)

func (c *currencyContract) Native(state *state.State) *currency.Currency {
	return currency.New(c.Address, state)
}

func (n *nftContract) Native(state *state.State) *nft.NFT {
	return nft.New(n.Address, state)
}

func (n *nftStakeContract) Native(state *state.State) *nftstake.NftStake {
	return nftstake.New(n.Address, state, NFT.Native(state), Currency.Native(state))
}
