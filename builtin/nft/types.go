// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nft

import (
	"encoding/binary"
	"fmt"

	"github.com/vechain/nftstake/thor"
)

type (
	CollectionID uint32
	ItemID       uint32
)

// Address identifies one non-fungible item.
type Address struct {
	Collection CollectionID `json:"collection"`
	Item       ItemID       `json:"item"`
}

func NewAddress(collection CollectionID, item ItemID) Address {
	return Address{Collection: collection, Item: item}
}

// Bytes returns the big endian encoding of collection id followed by item id.
func (a Address) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint32(b[:4], uint32(a.Collection))
	binary.BigEndian.PutUint32(b[4:], uint32(a.Item))
	return b[:]
}

func (a Address) String() string {
	return fmt.Sprintf("%d/%d", a.Collection, a.Item)
}

func (id CollectionID) Bytes() []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(id))
	return b[:]
}

// CollectionConfig is the creation time configuration of a collection.
type CollectionConfig struct {
	MaxSupply uint32 // zero means unbounded
}

// Collection is the stored collection record.
type Collection struct {
	Owner     thor.Address
	Admin     thor.Address
	MaxSupply uint32
	Minted    uint32
	Supply    uint32
}

// item records are kept as tombstones after burn, so a burned id is never minted again
// and its attributes never resurface.
type item struct {
	Owner  thor.Address
	Burned bool
}

type attributeKey struct {
	address   Address
	namespace byte
	key       []byte
}

func (k attributeKey) Bytes() []byte {
	b := make([]byte, 0, 9+len(k.key))
	b = append(b, k.address.Bytes()...)
	b = append(b, k.namespace)
	return append(b, k.key...)
}

const (
	namespaceSystem byte = iota
	namespaceOwner
)
