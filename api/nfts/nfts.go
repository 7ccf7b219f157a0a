// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package nfts serves the NFT registry, read only.
package nfts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/api/utils"
	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake"
	"github.com/vechain/nftstake/runtime"
	"github.com/vechain/nftstake/xenv"
)

type NFTs struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *NFTs {
	return &NFTs{rt}
}

func parseCollection(req *http.Request) (nft.CollectionID, error) {
	id, err := utils.ParseUint32(mux.Vars(req)["collection"])
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "collection"))
	}
	return nft.CollectionID(id), nil
}

func parseAddress(req *http.Request) (nft.Address, error) {
	collection, err := parseCollection(req)
	if err != nil {
		return nft.Address{}, err
	}
	item, err := utils.ParseUint32(mux.Vars(req)["item"])
	if err != nil {
		return nft.Address{}, utils.BadRequest(errors.WithMessage(err, "item"))
	}
	return nft.NewAddress(collection, nft.ItemID(item)), nil
}

// view runs fn against the registry at the head block.
func (n *NFTs) view(fn func(registry *nft.NFT) error) error {
	return n.rt.View(func(env *xenv.Environment, _ *nftstake.NftStake) error {
		return fn(builtin.NFT.Native(env.State()))
	})
}

func (n *NFTs) handleGetCollection(w http.ResponseWriter, req *http.Request) error {
	id, err := parseCollection(req)
	if err != nil {
		return err
	}
	var c *nft.Collection
	if err := n.view(func(registry *nft.NFT) error {
		c, err = registry.Collection(id)
		return err
	}); err != nil {
		return err
	}
	if c == nil {
		return utils.NotFound(nft.ErrUnknownCollection)
	}
	return utils.WriteJSON(w, &Collection{
		ID:        id,
		Owner:     c.Owner,
		Admin:     c.Admin,
		MaxSupply: c.MaxSupply,
		Minted:    c.Minted,
		Supply:    c.Supply,
	})
}

func (n *NFTs) handleGetItem(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	res := &Item{Address: addr}
	var ok bool
	if err := n.view(func(registry *nft.NFT) error {
		res.Owner, ok, err = registry.Owner(addr.Collection, addr.Item)
		return err
	}); err != nil {
		return err
	}
	if !ok {
		return utils.NotFound(nft.ErrUnknownItem)
	}
	return utils.WriteJSON(w, res)
}

// handleGetAttribute reads an attribute, in the system namespace unless ?namespace=collectionOwner.
func (n *NFTs) handleGetAttribute(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	key, err := hexutil.Decode(mux.Vars(req)["key"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "key"))
	}
	namespace := req.URL.Query().Get("namespace")
	if namespace == "" {
		namespace = "system"
	}

	var (
		value []byte
		ok    bool
	)
	if err := n.view(func(registry *nft.NFT) error {
		switch namespace {
		case "system":
			value, ok, err = registry.SystemAttribute(addr.Collection, addr.Item, key)
		case "collectionOwner":
			value, ok, err = registry.Attribute(addr.Collection, addr.Item, key)
		default:
			return utils.BadRequest(errors.Errorf("namespace: unknown %q", namespace))
		}
		return err
	}); err != nil {
		return err
	}
	if !ok {
		return utils.NotFound(errors.New("attribute not found"))
	}
	return utils.WriteJSON(w, &Attribute{Namespace: namespace, Key: key, Value: value})
}

func (n *NFTs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{collection}").
		Methods(http.MethodGet).
		Name("GET /nfts/{collection}").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetCollection))
	sub.Path("/{collection}/{item}").
		Methods(http.MethodGet).
		Name("GET /nfts/{collection}/{item}").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetItem))
	sub.Path("/{collection}/{item}/attributes/{key}").
		Methods(http.MethodGet).
		Name("GET /nfts/{collection}/{item}/attributes/{key}").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetAttribute))
}
