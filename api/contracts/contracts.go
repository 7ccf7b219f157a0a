// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/api/utils"
	"github.com/vechain/nftstake/builtin/nftstake"
	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/builtin/nftstake/reverts"
	"github.com/vechain/nftstake/runtime"
	"github.com/vechain/nftstake/thor"
	"github.com/vechain/nftstake/xenv"
)

type Contracts struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Contracts {
	return &Contracts{rt}
}

func parseID(req *http.Request) (contract.ID, error) {
	id, err := utils.ParseUint32(mux.Vars(req)["id"])
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "id"))
	}
	return contract.ID(id), nil
}

func (c *Contracts) handleGetContract(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(req)
	if err != nil {
		return err
	}

	var res *Contract
	if err := c.rt.View(func(env *xenv.Environment, engine *nftstake.NftStake) error {
		ct, err := engine.Contract(id)
		if err != nil || ct == nil {
			return err
		}
		phase, err := engine.Phase(id, env.BlockContext().Number)
		if err != nil {
			return err
		}
		res = &Contract{ID: id, Phase: phase, Contract: ct}

		holder, ok, err := engine.Holder(id)
		if err != nil {
			return err
		}
		if ok {
			res.Holder = &holder
		}
		if res.AcceptedAt, err = engine.AcceptedAt(id); err != nil {
			return err
		}
		res.StakedItems, err = engine.StakedItems(id)
		return err
	}); err != nil {
		return err
	}
	if res == nil {
		return utils.NotFound(reverts.New(reverts.UnknownContract, ""))
	}
	return utils.WriteJSON(w, res)
}

func (c *Contracts) handleCreate(w http.ResponseWriter, req *http.Request) error {
	var body CreateRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Contract == nil {
		return utils.BadRequest(errors.New("body: missing contract"))
	}
	receipt, err := c.rt.Execute(body.Caller, func(env *xenv.Environment, engine *nftstake.NftStake) error {
		_, err := engine.Create(env.Caller(), env.BlockContext().Number, body.Contract)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteReceipt(w, receipt)
}

func (c *Contracts) handleAccept(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(req)
	if err != nil {
		return err
	}
	var body AcceptRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := c.rt.Execute(body.Caller, func(env *xenv.Environment, engine *nftstake.NftStake) error {
		return engine.Accept(env.Caller(), env.BlockContext().Number, id, body.Stakes, body.Fees)
	})
	if err != nil {
		return err
	}
	return utils.WriteReceipt(w, receipt)
}

// settleFunc is one of Cancel, Claim and Snipe.
type settleFunc func(engine *nftstake.NftStake, caller thor.Address, now uint32, id contract.ID) error

func (c *Contracts) handleSettle(settle settleFunc) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		id, err := parseID(req)
		if err != nil {
			return err
		}
		var body CallRequest
		if err := utils.ParseJSON(req.Body, &body); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
		receipt, err := c.rt.Execute(body.Caller, func(env *xenv.Environment, engine *nftstake.NftStake) error {
			return settle(engine, env.Caller(), env.BlockContext().Number, id)
		})
		if err != nil {
			return err
		}
		return utils.WriteReceipt(w, receipt)
	}
}

func (c *Contracts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /contracts").
		HandlerFunc(utils.WrapHandlerFunc(c.handleCreate))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("GET /contracts/{id}").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetContract))
	sub.Path("/{id}/accept").
		Methods(http.MethodPost).
		Name("POST /contracts/{id}/accept").
		HandlerFunc(utils.WrapHandlerFunc(c.handleAccept))
	sub.Path("/{id}/cancel").
		Methods(http.MethodPost).
		Name("POST /contracts/{id}/cancel").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSettle((*nftstake.NftStake).Cancel)))
	sub.Path("/{id}/claim").
		Methods(http.MethodPost).
		Name("POST /contracts/{id}/claim").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSettle((*nftstake.NftStake).Claim)))
	sub.Path("/{id}/snipe").
		Methods(http.MethodPost).
		Name("POST /contracts/{id}/snipe").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSettle((*nftstake.NftStake).Snipe)))
}
