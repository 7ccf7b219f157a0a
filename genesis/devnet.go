// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"

	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/thor"
)

// DevAccounts returns the admin, creator and two user accounts of the devnet.
func DevAccounts() []thor.Address {
	return []thor.Address{
		thor.BytesToAddress([]byte("dev-admin")),
		thor.BytesToAddress([]byte("dev-creator")),
		thor.BytesToAddress([]byte("dev-alice")),
		thor.BytesToAddress([]byte("dev-bob")),
	}
}

// Devnet is the genesis used when no genesis file is given.
func Devnet() *Genesis {
	accounts := DevAccounts()
	admin, creator := accounts[0], accounts[1]

	gen := &Genesis{
		Admin:              admin,
		Creator:            &creator,
		ContractCollection: true,
		Collections: []Collection{
			{Owner: creator},
		},
	}
	tokens, _ := new(big.Int).SetString("1000000000000000000000000", 10)
	for _, acc := range accounts[1:] {
		gen.Balances = append(gen.Balances, Balance{Address: acc, Amount: new(big.Int).Set(tokens)})
	}
	// five items per user, tagged with a system "tier" attribute
	for i, acc := range accounts[2:] {
		for j := range 5 {
			gen.Collections[0].Items = append(gen.Collections[0].Items, Item{
				ID:    nft.ItemID(i*5 + j),
				Owner: acc,
				Attributes: []Attribute{
					{Namespace: "system", Key: []byte("tier"), Value: []byte{byte(j % 3)}},
				},
			})
		}
	}
	return gen
}
