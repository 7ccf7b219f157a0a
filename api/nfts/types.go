// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nfts

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/thor"
)

type Collection struct {
	ID        nft.CollectionID `json:"id"`
	Owner     thor.Address     `json:"owner"`
	Admin     thor.Address     `json:"admin"`
	MaxSupply uint32           `json:"maxSupply"`
	Minted    uint32           `json:"minted"`
	Supply    uint32           `json:"supply"`
}

type Item struct {
	Address nft.Address  `json:"address"`
	Owner   thor.Address `json:"owner"`
}

type Attribute struct {
	Namespace string        `json:"namespace"`
	Key       hexutil.Bytes `json:"key"`
	Value     hexutil.Bytes `json:"value"`
}
