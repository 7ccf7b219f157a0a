// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake"
	"github.com/vechain/nftstake/lvldb"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
)

const sample = `
admin: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
creator: "0xd3ae78222beadb038203be21ed5ce7c9b1bff602"
contractCollection: true
locked: true
balances:
  - address: "0xd3ae78222beadb038203be21ed5ce7c9b1bff602"
    amount: 1000
  - address: "0x733b7269443c70de16bbf9b0615307884bcc5636"
    amount: "1000000000000000000000"
collections:
  - owner: "0xd3ae78222beadb038203be21ed5ce7c9b1bff602"
    items:
      - id: 3
        owner: "0x733b7269443c70de16bbf9b0615307884bcc5636"
        attributes:
          - key: "0x04"
            value: "0x07"
          - namespace: collectionOwner
            key: "0x09"
            value: "0x01"
config:
  maxContracts: 7
`

var (
	sampleAdmin   = thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	sampleCreator = thor.MustParseAddress("0xd3ae78222beadb038203be21ed5ce7c9b1bff602")
	sampleUser    = thor.MustParseAddress("0x733b7269443c70de16bbf9b0615307884bcc5636")
)

func TestParse(t *testing.T) {
	gen, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, sampleAdmin, gen.Admin)
	require.NotNil(t, gen.Creator)
	assert.Equal(t, sampleCreator, *gen.Creator)
	assert.True(t, gen.ContractCollection)
	assert.True(t, gen.Locked)

	require.Len(t, gen.Balances, 2)
	assert.Equal(t, big.NewInt(1000), gen.Balances[0].Amount)
	assert.Equal(t, "1000000000000000000000", gen.Balances[1].Amount.String())

	require.Len(t, gen.Collections, 1)
	require.Len(t, gen.Collections[0].Items, 1)
	item := gen.Collections[0].Items[0]
	assert.Equal(t, nft.ItemID(3), item.ID)
	assert.Equal(t, sampleUser, item.Owner)
	require.Len(t, item.Attributes, 2)
	assert.Equal(t, []byte{4}, []byte(item.Attributes[0].Key))
	assert.Equal(t, "collectionOwner", item.Attributes[1].Namespace)

	assert.Equal(t, uint32(7), gen.Config.MaxContracts)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing admin", `creator: "0xd3ae78222beadb038203be21ed5ce7c9b1bff602"`},
		{"bad address", `admin: "0x1234"`},
		{"unknown field", "admin: \"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed\"\ngasLimit: 1"},
		{"negative balance", "admin: \"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed\"\nbalances:\n  - address: \"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed\"\n    amount: -1"},
		{"bad namespace", `
admin: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
collections:
  - owner: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
    items:
      - id: 0
        owner: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
        attributes:
          - namespace: pallet
            key: "0x01"
            value: "0x01"
`},
		{"not yaml", "admin: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	gen, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sampleAdmin, gen.Admin)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func newState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	return state.New(db)
}

func TestApply(t *testing.T) {
	gen, err := Parse([]byte(sample))
	require.NoError(t, err)

	st := newState(t)
	require.NoError(t, gen.Apply(st))

	ledger := builtin.Currency.Native(st)
	balance, err := ledger.FreeBalance(sampleCreator)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance.Int64())

	registry := builtin.NFT.Native(st)
	owner, ok, err := registry.Owner(0, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleUser, owner)

	value, ok, err := registry.SystemAttribute(0, 3, []byte{4})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{7}, value)

	value, ok, err = registry.Attribute(0, 3, []byte{9})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{1}, value)

	engine := builtin.NftStake.Native(st)
	admin, err := engine.Admin()
	require.NoError(t, err)
	assert.Equal(t, sampleAdmin, admin)

	creator, ok, err := engine.Creator()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleCreator, creator)

	collection, ok, err := engine.ContractCollectionID()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, nft.CollectionID(1), collection)

	collectionOwner, ok, err := registry.CollectionOwner(collection)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, engine.Reserve(), collectionOwner)

	locked, err := engine.IsLocked()
	require.NoError(t, err)
	assert.True(t, locked)

	slot, err := st.GetStorage(builtin.NftStake.Address, nftstake.MaxContracts.Slot())
	require.NoError(t, err)
	assert.Equal(t, thor.BytesToBytes32([]byte{7}), slot)
}

func TestApplyTwice(t *testing.T) {
	gen := &Genesis{Admin: sampleAdmin}
	st := newState(t)
	require.NoError(t, gen.Apply(st))
	assert.Error(t, gen.Apply(st))
}

func TestDevnet(t *testing.T) {
	gen := Devnet()
	st := newState(t)
	require.NoError(t, gen.Apply(st))

	accounts := DevAccounts()
	registry := builtin.NFT.Native(st)
	for id := nft.ItemID(0); id < 10; id++ {
		owner, ok, err := registry.Owner(0, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, accounts[2:], owner)
	}
}
