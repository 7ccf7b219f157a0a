// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/nftstake/kv"
)

const (
	defaultCacheSize = 4096

	storageBucket = kv.Bucket("s")
)

// Stater is the state creator.
// States created by the same stater share the committed-value cache.
type Stater struct {
	store kv.Store
	cache *lru.Cache
}

// NewStater create a new stater. cacheSize <= 0 selects the default size.
func NewStater(db kv.Store, cacheSize int) *Stater {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		// lru.New only throws an error if the number is less than 1
		panic(fmt.Errorf("failed to create storage cache: %v", err))
	}
	return &Stater{
		store: storageBucket.NewStore(db),
		cache: cache,
	}
}

// NewState create a new state object.
func (s *Stater) NewState() *State {
	return newState(s.store, s.cache)
}
