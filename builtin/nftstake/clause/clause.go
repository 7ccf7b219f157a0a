// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clause implements the attribute predicates a staking contract
// declares over the NFTs supplied by a staker.
package clause

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake/reverts"
)

// MaxAttributes bounds the key list of a single clause.
const MaxAttributes = 10

type Kind uint8

const (
	HasAttribute Kind = iota
	HasAllAttributes
	HasAnyAttributes
	HasAttributeWithValue
	HasAllAttributesWithValues
	HasAnyAttributesWithValues
)

var kindNames = map[Kind]string{
	HasAttribute:               "hasAttribute",
	HasAllAttributes:           "hasAllAttributes",
	HasAnyAttributes:           "hasAnyAttributes",
	HasAttributeWithValue:      "hasAttributeWithValue",
	HasAllAttributesWithValues: "hasAllAttributesWithValues",
	HasAnyAttributesWithValues: "hasAnyAttributesWithValues",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown clause kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown clause kind %q", text)
}

func (k Kind) withValues() bool {
	return k >= HasAttributeWithValue
}

func (k Kind) single() bool {
	return k == HasAttribute || k == HasAttributeWithValue
}

// Clause is a predicate on the attributes of one NFT, pinned to one collection.
// Values is parallel to Keys and only used by the *WithValue(s) kinds.
type Clause struct {
	Kind       Kind             `json:"kind"`
	Collection nft.CollectionID `json:"collection"`
	Keys       []hexutil.Bytes  `json:"keys"`
	Values     []hexutil.Bytes  `json:"values,omitempty"`
}

// Attribute is a key/value pair used to build value-matching clauses.
type Attribute struct {
	Key   []byte
	Value []byte
}

func toBytes(in [][]byte) []hexutil.Bytes {
	out := make([]hexutil.Bytes, len(in))
	for i, b := range in {
		out[i] = b
	}
	return out
}

func withValues(kind Kind, collection nft.CollectionID, attrs []Attribute) *Clause {
	c := &Clause{Kind: kind, Collection: collection}
	for _, a := range attrs {
		c.Keys = append(c.Keys, a.Key)
		c.Values = append(c.Values, a.Value)
	}
	return c
}

func NewHasAttribute(collection nft.CollectionID, key []byte) *Clause {
	return &Clause{Kind: HasAttribute, Collection: collection, Keys: toBytes([][]byte{key})}
}

func NewHasAllAttributes(collection nft.CollectionID, keys ...[]byte) *Clause {
	return &Clause{Kind: HasAllAttributes, Collection: collection, Keys: toBytes(keys)}
}

func NewHasAnyAttributes(collection nft.CollectionID, keys ...[]byte) *Clause {
	return &Clause{Kind: HasAnyAttributes, Collection: collection, Keys: toBytes(keys)}
}

func NewHasAttributeWithValue(collection nft.CollectionID, key, value []byte) *Clause {
	return withValues(HasAttributeWithValue, collection, []Attribute{{key, value}})
}

func NewHasAllAttributesWithValues(collection nft.CollectionID, attrs ...Attribute) *Clause {
	return withValues(HasAllAttributesWithValues, collection, attrs)
}

func NewHasAnyAttributesWithValues(collection nft.CollectionID, attrs ...Attribute) *Clause {
	return withValues(HasAnyAttributesWithValues, collection, attrs)
}

// Validate checks the shape of the clause.
func (c *Clause) Validate() error {
	if _, ok := kindNames[c.Kind]; !ok {
		return reverts.New(reverts.IncorrectNumberOfClauses, fmt.Sprintf("unknown clause kind %d", uint8(c.Kind)))
	}
	n := len(c.Keys)
	if n == 0 || n > MaxAttributes || (c.Kind.single() && n != 1) {
		return reverts.New(reverts.IncorrectNumberOfClauses, fmt.Sprintf("%v with %d keys", c.Kind, n))
	}
	if c.Kind.withValues() && len(c.Values) != n {
		return reverts.New(reverts.IncorrectNumberOfClauses, fmt.Sprintf("%v with %d keys and %d values", c.Kind, n, len(c.Values)))
	}
	if !c.Kind.withValues() && len(c.Values) != 0 {
		return reverts.New(reverts.IncorrectNumberOfClauses, fmt.Sprintf("%v carries values", c.Kind))
	}
	for i, key := range c.Keys {
		if len(key) > nft.MaxKeyLength {
			return reverts.New(reverts.IncorrectNumberOfClauses, fmt.Sprintf("key %d too long", i))
		}
	}
	for i, value := range c.Values {
		if len(value) > nft.MaxValueLength {
			return reverts.New(reverts.IncorrectNumberOfClauses, fmt.Sprintf("value %d too long", i))
		}
	}
	return nil
}

// AttributeReader returns the attribute value stored under key, false if absent.
type AttributeReader func(collection nft.CollectionID, item nft.ItemID, key []byte) ([]byte, bool)

// Evaluate reports whether the target satisfies the clause.
// A target outside the clause collection fails without reading any attribute.
func (c *Clause) Evaluate(target nft.Address, read AttributeReader) bool {
	if target.Collection != c.Collection {
		return false
	}

	match := func(i int) bool {
		value, ok := read(target.Collection, target.Item, c.Keys[i])
		if !ok {
			return false
		}
		if !c.Kind.withValues() {
			return true
		}
		return i < len(c.Values) && bytes.Equal(value, c.Values[i])
	}

	switch c.Kind {
	case HasAttribute, HasAttributeWithValue:
		return len(c.Keys) > 0 && match(0)
	case HasAllAttributes, HasAllAttributesWithValues:
		for i := range c.Keys {
			if !match(i) {
				return false
			}
		}
		return true
	case HasAnyAttributes, HasAnyAttributesWithValues:
		for i := range c.Keys {
			if match(i) {
				return true
			}
		}
		return false
	}
	return false
}
