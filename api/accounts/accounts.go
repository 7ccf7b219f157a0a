// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/api/utils"
	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/builtin/nftstake"
	"github.com/vechain/nftstake/runtime"
	"github.com/vechain/nftstake/thor"
	"github.com/vechain/nftstake/xenv"
)

type Accounts struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Accounts {
	return &Accounts{rt}
}

func (a *Accounts) getAccount(addr thor.Address) (*Account, error) {
	acc := &Account{}
	err := a.rt.View(func(env *xenv.Environment, engine *nftstake.NftStake) error {
		ledger := builtin.Currency.Native(env.State())
		free, err := ledger.FreeBalance(addr)
		if err != nil {
			return err
		}
		reserved, err := ledger.ReservedBalance(addr)
		if err != nil {
			return err
		}
		acc.Free = (*math.HexOrDecimal256)(free)
		acc.Reserved = (*math.HexOrDecimal256)(reserved)

		if acc.Contracts, err = engine.AccountContracts(addr); err != nil {
			return err
		}
		acc.Stats, err = engine.Stats(addr)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	acc, err := a.getAccount(*addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}
