// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/kv"
)

// Stage abstracts changes on the storage.
type Stage struct {
	store   kv.Store
	cache   *lru.Cache
	changes map[storageKey]rlp.RawValue
}

// Len returns the number of changed storage slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes into the store atomically.
func (s *Stage) Commit() error {
	batch := s.store.NewBatch()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = batch.Delete(k.Bytes())
		} else {
			err = batch.Put(k.Bytes(), v)
		}
		if err != nil {
			return errors.Wrap(err, "stage storage")
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit storage")
	}
	metricStorageAccess().AddWithLabel(int64(len(s.changes)), map[string]string{"type": "write"})

	for k, v := range s.changes {
		s.cache.Add(k.String(), v)
	}
	return nil
}
