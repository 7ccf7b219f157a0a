// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/nftstake/builtin/nftstake/accounts"
	"github.com/vechain/nftstake/builtin/nftstake/contract"
)

// Account is the balances and staking activity of an account.
type Account struct {
	Free      *math.HexOrDecimal256 `json:"free"`
	Reserved  *math.HexOrDecimal256 `json:"reserved"`
	Contracts []contract.ID         `json:"contracts"`
	Stats     *accounts.Stats       `json:"stats"`
}
