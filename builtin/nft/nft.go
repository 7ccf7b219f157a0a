// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package nft implements the native non-fungible token registry.
// Items live in collections, and carry attributes in two namespaces: system
// attributes written by trusted built-in contracts only, and owner attributes
// written by the collection owner.
package nft

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
)

const (
	MaxKeyLength   = 64
	MaxValueLength = 256
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnknownItem       = errors.New("unknown item")
	ErrItemExists        = errors.New("item already exists")
	ErrNoPermission      = errors.New("no permission")
	ErrMaxSupply         = errors.New("collection max supply reached")
	ErrKeyLimit          = errors.New("attribute key too long")
	ErrValueLimit        = errors.New("attribute value too long")

	slotCollections      = thor.BytesToBytes32([]byte("collections"))
	slotItems            = thor.BytesToBytes32([]byte("items"))
	slotAttributes       = thor.BytesToBytes32([]byte("attributes"))
	slotNextCollectionID = thor.BytesToBytes32([]byte("next-collection-id"))

	bigOne = big.NewInt(1)
)

// NFT implements native methods of `NFT` contract.
type NFT struct {
	collections      *solidity.Mapping[CollectionID, *Collection]
	items            *solidity.Mapping[Address, *item]
	attributes       *solidity.Mapping[attributeKey, []byte]
	nextCollectionID *solidity.Uint256
}

func New(addr thor.Address, state *state.State) *NFT {
	sctx := solidity.NewContext(addr, state)
	return &NFT{
		collections:      solidity.NewMapping[CollectionID, *Collection](sctx, slotCollections),
		items:            solidity.NewMapping[Address, *item](sctx, slotItems),
		attributes:       solidity.NewMapping[attributeKey, []byte](sctx, slotAttributes),
		nextCollectionID: solidity.NewUint256(sctx, slotNextCollectionID),
	}
}

// Collection returns the collection record, nil if the collection does not exist.
func (n *NFT) Collection(id CollectionID) (*Collection, error) {
	exists, err := n.collections.Exists(id)
	if err != nil {
		return nil, errors.Wrap(err, "collection exists")
	}
	if !exists {
		return nil, nil
	}
	c, err := n.collections.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "get collection")
	}
	return c, nil
}

func (n *NFT) existingCollection(id CollectionID) (*Collection, error) {
	c, err := n.Collection(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrUnknownCollection
	}
	return c, nil
}

// CollectionOwner returns the owner of a collection.
func (n *NFT) CollectionOwner(id CollectionID) (thor.Address, bool, error) {
	c, err := n.Collection(id)
	if err != nil || c == nil {
		return thor.Address{}, false, err
	}
	return c.Owner, true, nil
}

// CreateCollection allocates the next collection id.
func (n *NFT) CreateCollection(owner, admin thor.Address, config CollectionConfig) (CollectionID, error) {
	next, err := n.nextCollectionID.Get()
	if err != nil {
		return 0, errors.Wrap(err, "get next collection id")
	}
	if !next.IsUint64() || next.Uint64() > uint64(^uint32(0)) {
		return 0, errors.New("collection id overflow")
	}
	id := CollectionID(next.Uint64())

	if err := n.collections.Set(id, &Collection{
		Owner:     owner,
		Admin:     admin,
		MaxSupply: config.MaxSupply,
	}); err != nil {
		return 0, errors.Wrap(err, "set collection")
	}
	next.Add(next, bigOne)
	n.nextCollectionID.Set(next)
	return id, nil
}

// Owner returns the owner of an item, false if the item does not exist.
func (n *NFT) Owner(collection CollectionID, itemID ItemID) (thor.Address, bool, error) {
	addr := NewAddress(collection, itemID)
	exists, err := n.items.Exists(addr)
	if err != nil {
		return thor.Address{}, false, errors.Wrap(err, "item exists")
	}
	if !exists {
		return thor.Address{}, false, nil
	}
	it, err := n.items.Get(addr)
	if err != nil {
		return thor.Address{}, false, errors.Wrap(err, "get item")
	}
	if it.Burned {
		return thor.Address{}, false, nil
	}
	return it.Owner, true, nil
}

// MintInto creates an item owned by `owner`.
func (n *NFT) MintInto(collection CollectionID, itemID ItemID, owner thor.Address) error {
	c, err := n.existingCollection(collection)
	if err != nil {
		return err
	}
	if c.MaxSupply != 0 && c.Minted >= c.MaxSupply {
		return ErrMaxSupply
	}
	addr := NewAddress(collection, itemID)
	exists, err := n.items.Exists(addr)
	if err != nil {
		return errors.Wrap(err, "item exists")
	}
	if exists {
		return ErrItemExists
	}
	if err := n.items.Set(addr, &item{Owner: owner}); err != nil {
		return errors.Wrap(err, "set item")
	}
	c.Minted++
	c.Supply++
	return n.collections.Set(collection, c)
}

// Transfer moves an item to a new owner. Authorization is left to the caller.
func (n *NFT) Transfer(collection CollectionID, itemID ItemID, to thor.Address) error {
	if _, ok, err := n.Owner(collection, itemID); err != nil {
		return err
	} else if !ok {
		return ErrUnknownItem
	}
	if err := n.items.Set(NewAddress(collection, itemID), &item{Owner: to}); err != nil {
		return errors.Wrap(err, "set item")
	}
	return nil
}

// Burn destroys an item. When checkOwner is given, the item must be owned by it.
func (n *NFT) Burn(collection CollectionID, itemID ItemID, checkOwner *thor.Address) error {
	owner, ok, err := n.Owner(collection, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownItem
	}
	if checkOwner != nil && *checkOwner != owner {
		return ErrNoPermission
	}
	c, err := n.existingCollection(collection)
	if err != nil {
		return err
	}
	if err := n.items.Set(NewAddress(collection, itemID), &item{Owner: owner, Burned: true}); err != nil {
		return errors.Wrap(err, "set item")
	}
	c.Supply--
	return n.collections.Set(collection, c)
}

func (n *NFT) attribute(namespace byte, collection CollectionID, itemID ItemID, key []byte) ([]byte, bool, error) {
	k := attributeKey{address: NewAddress(collection, itemID), namespace: namespace, key: key}
	exists, err := n.attributes.Exists(k)
	if err != nil {
		return nil, false, errors.Wrap(err, "attribute exists")
	}
	if !exists {
		return nil, false, nil
	}
	value, err := n.attributes.Get(k)
	if err != nil {
		return nil, false, errors.Wrap(err, "get attribute")
	}
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

func (n *NFT) setAttribute(namespace byte, collection CollectionID, itemID ItemID, key, value []byte) error {
	if len(key) > MaxKeyLength {
		return ErrKeyLimit
	}
	if len(value) > MaxValueLength {
		return ErrValueLimit
	}
	if _, ok, err := n.Owner(collection, itemID); err != nil {
		return err
	} else if !ok {
		return ErrUnknownItem
	}
	k := attributeKey{address: NewAddress(collection, itemID), namespace: namespace, key: key}
	if err := n.attributes.Set(k, value); err != nil {
		return errors.Wrap(err, "set attribute")
	}
	return nil
}

// SystemAttribute reads an attribute of the system namespace.
func (n *NFT) SystemAttribute(collection CollectionID, itemID ItemID, key []byte) ([]byte, bool, error) {
	return n.attribute(namespaceSystem, collection, itemID, key)
}

// Attribute reads an attribute of the collection owner namespace.
func (n *NFT) Attribute(collection CollectionID, itemID ItemID, key []byte) ([]byte, bool, error) {
	return n.attribute(namespaceOwner, collection, itemID, key)
}

// SetSystemAttribute writes an attribute of the system namespace. Only built-in contracts call it.
func (n *NFT) SetSystemAttribute(collection CollectionID, itemID ItemID, key, value []byte) error {
	return n.setAttribute(namespaceSystem, collection, itemID, key, value)
}

// SetAttribute writes an attribute of the collection owner namespace on behalf of `who`,
// who must own or administrate the collection.
func (n *NFT) SetAttribute(who thor.Address, collection CollectionID, itemID ItemID, key, value []byte) error {
	c, err := n.existingCollection(collection)
	if err != nil {
		return err
	}
	if who != c.Owner && who != c.Admin {
		return ErrNoPermission
	}
	return n.setAttribute(namespaceOwner, collection, itemID, key, value)
}
