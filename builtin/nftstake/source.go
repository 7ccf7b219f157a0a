// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nftstake

import (
	"github.com/vechain/nftstake/builtin/nft"
)

// attributeSource adapts the registry to the clause evaluator, which has no error path.
// The first storage failure is kept and must be checked after evaluation.
type attributeSource struct {
	registry Registry
	err      error
}

func (s *attributeSource) read(value []byte, ok bool, err error) ([]byte, bool) {
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return nil, false
	}
	return value, ok
}

func (s *attributeSource) SystemAttribute(collection nft.CollectionID, item nft.ItemID, key []byte) ([]byte, bool) {
	return s.read(s.registry.SystemAttribute(collection, item, key))
}

func (s *attributeSource) OwnerAttribute(collection nft.CollectionID, item nft.ItemID, key []byte) ([]byte, bool) {
	return s.read(s.registry.Attribute(collection, item, key))
}
