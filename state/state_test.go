// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/lvldb"
	"github.com/vechain/nftstake/thor"
)

func newStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db, 16)
}

func TestStateReadWrite(t *testing.T) {
	st := newStater(t).NewState()

	addr := thor.BytesToAddress([]byte("account"))
	key := thor.BytesToBytes32([]byte("key"))

	v, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())

	value := thor.BytesToBytes32([]byte("value"))
	st.SetStorage(addr, key, value)

	v, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, v)

	st.SetStorage(addr, key, thor.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStateRevert(t *testing.T) {
	st := newStater(t).NewState()

	addr := thor.BytesToAddress([]byte("account"))
	key := thor.BytesToBytes32([]byte("key"))

	st.SetStorage(addr, key, thor.BytesToBytes32([]byte{1}))
	chk := st.NewCheckpoint()
	st.SetStorage(addr, key, thor.BytesToBytes32([]byte{2}))
	st.SetStorage(addr, thor.BytesToBytes32([]byte("other")), thor.BytesToBytes32([]byte{3}))

	st.RevertTo(chk)

	v, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, thor.BytesToBytes32([]byte{1}), v)

	v, err = st.GetStorage(addr, thor.BytesToBytes32([]byte("other")))
	assert.NoError(t, err)
	assert.True(t, v.IsZero())

	assert.Equal(t, 1, st.Stage().Len())
}

func TestStageCommit(t *testing.T) {
	stater := newStater(t)
	addr := thor.BytesToAddress([]byte("account"))
	k1 := thor.BytesToBytes32([]byte("k1"))
	k2 := thor.BytesToBytes32([]byte("k2"))

	st := stater.NewState()
	st.SetStorage(addr, k1, thor.BytesToBytes32([]byte("v1")))
	st.SetStorage(addr, k2, thor.BytesToBytes32([]byte("v2")))
	require.NoError(t, st.Stage().Commit())

	// a fresh state sees committed values
	st = stater.NewState()
	v, err := st.GetStorage(addr, k1)
	assert.NoError(t, err)
	assert.Equal(t, thor.BytesToBytes32([]byte("v1")), v)

	// deletion is committed as well
	st.SetStorage(addr, k2, thor.Bytes32{})
	require.NoError(t, st.Stage().Commit())

	st = stater.NewState()
	v, err = st.GetStorage(addr, k2)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())

	// uncommitted changes are dropped with the state
	st.SetStorage(addr, k1, thor.BytesToBytes32([]byte("dirty")))
	st = stater.NewState()
	v, err = st.GetStorage(addr, k1)
	assert.NoError(t, err)
	assert.Equal(t, thor.BytesToBytes32([]byte("v1")), v)
}

func TestStructuredStorage(t *testing.T) {
	st := newStater(t).NewState()
	addr := thor.BytesToAddress([]byte("account"))
	key := thor.BytesToBytes32([]byte("list"))

	type item struct {
		A uint32
		B []byte
	}
	in := item{A: 7, B: []byte("abc")}

	assert.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&in)
	}))

	var out item
	assert.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &out)
	}))
	assert.Equal(t, in, out)

	// list values are hashed when read as a word
	word, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.False(t, word.IsZero())

	err = st.DecodeStorage(addr, key, func(raw []byte) error {
		var n uint64
		return rlp.DecodeBytes(raw, &n)
	})
	assert.Error(t, err)
	var stateErr *Error
	assert.ErrorAs(t, err, &stateErr)
}
