// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package engine serves the configuration of the staking engine.
package engine

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/api/utils"
	"github.com/vechain/nftstake/builtin/nftstake"
	"github.com/vechain/nftstake/runtime"
	"github.com/vechain/nftstake/xenv"
)

type Engine struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Engine {
	return &Engine{rt}
}

func (e *Engine) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	cfg := &Config{
		Limits: Limits{
			MaxClauses:     nftstake.MaxClauses.Get(),
			MaxRewards:     nftstake.MaxRewards.Get(),
			MaxStakeAmount: nftstake.MaxStakeAmount.Get(),
			MaxContracts:   nftstake.MaxContracts.Get(),
		},
	}
	if err := e.rt.View(func(_ *xenv.Environment, engine *nftstake.NftStake) error {
		var err error
		if cfg.Admin, err = engine.Admin(); err != nil {
			return err
		}
		creator, ok, err := engine.Creator()
		if err != nil {
			return err
		}
		if ok {
			cfg.Creator = &creator
		}
		collection, ok, err := engine.ContractCollectionID()
		if err != nil {
			return err
		}
		if ok {
			cfg.ContractCollection = &collection
		}
		if cfg.Locked, err = engine.IsLocked(); err != nil {
			return err
		}
		cfg.Reserve = engine.Reserve()
		cfg.ContractCount, err = engine.ContractCount()
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, cfg)
}

func (e *Engine) handleSetCreator(w http.ResponseWriter, req *http.Request) error {
	var body SetCreatorRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := e.rt.Execute(body.Caller, func(env *xenv.Environment, engine *nftstake.NftStake) error {
		return engine.SetCreator(env.Caller(), body.Creator)
	})
	if err != nil {
		return err
	}
	return utils.WriteReceipt(w, receipt)
}

// handleSetCollection selects an existing collection, or creates one when none is given.
func (e *Engine) handleSetCollection(w http.ResponseWriter, req *http.Request) error {
	var body SetCollectionRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := e.rt.Execute(body.Caller, func(env *xenv.Environment, engine *nftstake.NftStake) error {
		if body.Collection != nil {
			return engine.SetContractCollectionID(env.Caller(), *body.Collection)
		}
		_, err := engine.CreateContractCollection(env.Caller())
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteReceipt(w, receipt)
}

func (e *Engine) handleSetLocked(w http.ResponseWriter, req *http.Request) error {
	var body SetLockedRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := e.rt.Execute(body.Caller, func(env *xenv.Environment, engine *nftstake.NftStake) error {
		return engine.SetLockedState(env.Caller(), body.Locked)
	})
	if err != nil {
		return err
	}
	return utils.WriteReceipt(w, receipt)
}

func (e *Engine) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /engine").
		HandlerFunc(utils.WrapHandlerFunc(e.handleGetConfig))
	sub.Path("/creator").
		Methods(http.MethodPost).
		Name("POST /engine/creator").
		HandlerFunc(utils.WrapHandlerFunc(e.handleSetCreator))
	sub.Path("/collection").
		Methods(http.MethodPost).
		Name("POST /engine/collection").
		HandlerFunc(utils.WrapHandlerFunc(e.handleSetCollection))
	sub.Path("/locked").
		Methods(http.MethodPost).
		Name("POST /engine/locked").
		HandlerFunc(utils.WrapHandlerFunc(e.handleSetLocked))
}
