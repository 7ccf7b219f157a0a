// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/lvldb"
)

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	a := kv.Bucket("a").NewStore(db)
	b := kv.Bucket("b").NewStore(db)

	assert.NoError(t, a.Put([]byte("k1"), []byte("v1")))
	assert.NoError(t, b.Put([]byte("k1"), []byte("other")))

	v, err := a.Get([]byte("k1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	raw, err := db.Get([]byte("ak1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), raw)

	_, err = a.Get([]byte("k2"))
	assert.True(t, a.IsNotFound(err))

	has, err := b.Has([]byte("k1"))
	assert.NoError(t, err)
	assert.True(t, has)

	assert.NoError(t, a.Delete([]byte("k1")))
	has, err = a.Has([]byte("k1"))
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestBucketBatchAndIterate(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	a := kv.Bucket("a").NewStore(db)
	require.NoError(t, kv.Bucket("b").NewStore(db).Put([]byte("x"), []byte("y")))

	batch := a.NewBatch()
	assert.NoError(t, batch.Put([]byte("1"), []byte("one")))
	assert.NoError(t, batch.Put([]byte("2"), []byte("two")))
	assert.NoError(t, batch.Put([]byte("3"), []byte("three")))
	assert.Equal(t, 3, batch.Len())
	assert.NoError(t, batch.Write())

	it := a.Iterate(kv.Range{})
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.NoError(t, it.Error())
	assert.Equal(t, []string{"1", "2", "3"}, keys)
}
