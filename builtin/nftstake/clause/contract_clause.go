// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clause

import (
	"fmt"

	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake/reverts"
)

// Namespace selects the attribute store a clause reads from.
type Namespace uint8

const (
	// System attributes are written by built-in contracts only.
	System Namespace = iota
	// CollectionOwner attributes are written by the owner of the collection.
	CollectionOwner
)

func (n Namespace) String() string {
	switch n {
	case System:
		return "system"
	case CollectionOwner:
		return "collectionOwner"
	}
	return fmt.Sprintf("namespace(%d)", uint8(n))
}

func (n Namespace) MarshalText() ([]byte, error) {
	if n > CollectionOwner {
		return nil, fmt.Errorf("unknown namespace %d", uint8(n))
	}
	return []byte(n.String()), nil
}

func (n *Namespace) UnmarshalText(text []byte) error {
	switch string(text) {
	case "system":
		*n = System
	case "collectionOwner":
		*n = CollectionOwner
	default:
		return fmt.Errorf("unknown namespace %q", text)
	}
	return nil
}

// Source gives access to both attribute namespaces of the NFT registry.
type Source interface {
	SystemAttribute(collection nft.CollectionID, item nft.ItemID, key []byte) ([]byte, bool)
	OwnerAttribute(collection nft.CollectionID, item nft.ItemID, key []byte) ([]byte, bool)
}

func (n Namespace) reader(src Source) AttributeReader {
	switch n {
	case System:
		return src.SystemAttribute
	case CollectionOwner:
		return src.OwnerAttribute
	}
	return func(nft.CollectionID, nft.ItemID, []byte) ([]byte, bool) { return nil, false }
}

// ContractClause applies a clause to one position of the addresses supplied by a staker.
type ContractClause struct {
	Namespace   Namespace `json:"namespace"`
	TargetIndex uint8     `json:"targetIndex"`
	Clause      *Clause   `json:"clause"`
}

// Validate checks the clause against the number of addresses it will be applied to.
func (c *ContractClause) Validate(amount uint8) error {
	if c == nil {
		return reverts.New(reverts.IncorrectNumberOfClauses, "nil clause")
	}
	if c.Namespace > CollectionOwner {
		return reverts.New(reverts.IncorrectNumberOfClauses, fmt.Sprintf("unknown namespace %d", uint8(c.Namespace)))
	}
	if c.Clause == nil {
		return reverts.New(reverts.IncorrectNumberOfClauses, "missing clause")
	}
	if c.TargetIndex >= amount {
		return reverts.New(reverts.InvalidTargetIndex, fmt.Sprintf("target %d of %d addresses", c.TargetIndex, amount))
	}
	return c.Clause.Validate()
}

// Evaluate reports whether addresses[TargetIndex] satisfies the clause.
func (c *ContractClause) Evaluate(addresses []nft.Address, src Source) bool {
	if c == nil || c.Clause == nil || int(c.TargetIndex) >= len(addresses) {
		return false
	}
	return c.Clause.Evaluate(addresses[c.TargetIndex], c.Namespace.reader(src))
}

// Satisfied checks the exact address count first, then every clause.
func Satisfied(clauses []*ContractClause, amount uint8, addresses []nft.Address, src Source) bool {
	if len(addresses) != int(amount) {
		return false
	}
	for _, c := range clauses {
		if !c.Evaluate(addresses, src) {
			return false
		}
	}
	return true
}
