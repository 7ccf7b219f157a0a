// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nftstake

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin/currency"
	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake/clause"
	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/builtin/nftstake/reverts"
	"github.com/vechain/nftstake/lvldb"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
)

func newBareEngine(t *testing.T) (*NftStake, *nft.NFT, *currency.Currency) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)
	registry := nft.New(thor.BytesToAddress([]byte("NFT")), st)
	ledger := currency.New(thor.BytesToAddress([]byte("Currency")), st)
	return New(engineAddr, st, registry, ledger), registry, ledger
}

func TestReserveAccount(t *testing.T) {
	assert.Equal(t, ReserveAccount(engineAddr), ReserveAccount(engineAddr))
	assert.NotEqual(t, engineAddr, ReserveAccount(engineAddr))
	assert.NotEqual(t, ReserveAccount(admin), ReserveAccount(engineAddr))

	engine, _, _ := newBareEngine(t)
	assert.Equal(t, ReserveAccount(engineAddr), engine.Reserve())
}

func TestInitialize(t *testing.T) {
	engine, _, _ := newBareEngine(t)

	assertRevert(t, engine.SetCreator(admin, creator), reverts.BadOrigin)
	assert.Error(t, engine.Initialize(thor.Address{}))
	require.NoError(t, engine.Initialize(admin))
	assert.Error(t, engine.Initialize(creator))

	got, err := engine.Admin()
	require.NoError(t, err)
	assert.Equal(t, admin, got)
}

func TestAdmin(t *testing.T) {
	engine, registry, _ := newBareEngine(t)
	require.NoError(t, engine.Initialize(admin))

	_, ok, err := engine.Creator()
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = engine.ContractCollectionID()
	require.NoError(t, err)
	assert.False(t, ok)

	assertRevert(t, engine.SetCreator(creator, creator), reverts.BadOrigin)
	assertRevert(t, engine.SetLockedState(creator, true), reverts.BadOrigin)
	assertRevert(t, engine.SetContractCollectionID(creator, 0), reverts.BadOrigin)
	_, err = engine.CreateContractCollection(creator)
	assertRevert(t, err, reverts.BadOrigin)
	assert.Empty(t, engine.Events())

	require.NoError(t, engine.SetCreator(admin, creator))
	who, ok, err := engine.Creator()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, creator, who)

	collection, err := engine.CreateContractCollection(admin)
	require.NoError(t, err)
	got, ok, err := engine.ContractCollectionID()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, collection, got)
	owner, _, err := registry.CollectionOwner(collection)
	require.NoError(t, err)
	assert.Equal(t, engine.Reserve(), owner)

	require.NoError(t, engine.SetContractCollectionID(admin, 42))
	got, _, err = engine.ContractCollectionID()
	require.NoError(t, err)
	assert.Equal(t, nft.CollectionID(42), got)

	require.NoError(t, engine.SetLockedState(admin, true))
	locked, err := engine.IsLocked()
	require.NoError(t, err)
	assert.True(t, locked)

	events := engine.Events()
	require.Len(t, events, 4)
	assert.Equal(t, EventCreatorSet, events[0].Kind)
	assert.Equal(t, creator, events[0].Account)
	assert.Equal(t, EventContractCollectionSet, events[1].Kind)
	assert.Equal(t, collection, *events[1].Collection)
	assert.Equal(t, EventContractCollectionSet, events[2].Kind)
	assert.Equal(t, EventLockedStateSet, events[3].Kind)
	assert.True(t, *events[3].Locked)
}

func TestLocked(t *testing.T) {
	env := newTestEnv(t)
	stake := env.stakeItem(t, staker)
	fee := env.feeItem(t, staker)
	id, err := env.engine.Create(creator, 0, env.newOffer())
	require.NoError(t, err)
	require.NoError(t, env.engine.SetLockedState(admin, true))

	_, err = env.engine.Create(creator, 0, env.newOffer())
	assertRevert(t, err, reverts.PalletLocked)
	assertRevert(t, env.engine.Accept(staker, 1, id, []nft.Address{stake}, []nft.Address{fee}), reverts.PalletLocked)
	assertRevert(t, env.engine.Cancel(staker, 1, id), reverts.PalletLocked)
	assertRevert(t, env.engine.Claim(staker, 1, id), reverts.PalletLocked)
	assertRevert(t, env.engine.Snipe(sniper, 1, id), reverts.PalletLocked)

	// admin calls stay available
	require.NoError(t, env.engine.SetCreator(admin, creator))
	require.NoError(t, env.engine.SetLockedState(admin, false))
	require.NoError(t, env.engine.Accept(staker, 1, id, []nft.Address{stake}, []nft.Address{fee}))
}

func TestCreate_Guards(t *testing.T) {
	engine, _, ledger := newBareEngine(t)
	require.NoError(t, engine.Initialize(admin))
	require.NoError(t, ledger.Mint(creator, big.NewInt(100)))
	env := &testEnv{engine: engine}

	_, err := engine.Create(creator, 0, env.newOffer())
	assertRevert(t, err, reverts.UnknownCreator)

	require.NoError(t, engine.SetCreator(admin, creator))
	_, err = engine.Create(staker, 0, env.newOffer())
	assertRevert(t, err, reverts.CreatorOwnership)

	_, err = engine.Create(creator, 0, env.newOffer())
	assertRevert(t, err, reverts.UnknownContractCollection)

	_, err = engine.CreateContractCollection(admin)
	require.NoError(t, err)

	// 135 tokens reward with 100 available
	_, err = engine.Create(creator, 0, env.newOffer())
	assertRevert(t, err, reverts.InsufficientBalance)

	offer := env.newOffer()
	offer.Rewards = nil
	_, err = engine.Create(creator, 0, offer)
	assertRevert(t, err, reverts.IncorrectNumberOfRewards)

	offer = env.newOffer()
	offer.StakeClauses = append(offer.StakeClauses, make([]*clause.ContractClause, MaxClauses.Get())...)
	_, err = engine.Create(creator, 0, offer)
	assertRevert(t, err, reverts.IncorrectNumberOfClauses)

	// null list entries decoded from a request body
	offer = env.newOffer()
	offer.Rewards = []*contract.Reward{nil}
	_, err = engine.Create(creator, 0, offer)
	assertRevert(t, err, reverts.IncorrectNumberOfRewards)

	offer = env.newOffer()
	offer.StakeClauses = append(offer.StakeClauses, nil)
	_, err = engine.Create(creator, 0, offer)
	assertRevert(t, err, reverts.IncorrectNumberOfClauses)

	count, err := engine.ContractCount()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), count)
	free, err := ledger.FreeBalance(creator)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), free)
}

func TestCreate(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.engine.Create(creator, 7, env.newOffer())
	require.NoError(t, err)
	second, err := env.engine.Create(creator, 8, env.newOffer())
	require.NoError(t, err)
	assert.Equal(t, contract.ID(0), first)
	assert.Equal(t, contract.ID(1), second)

	c, err := env.engine.Contract(first)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, creator, c.Creator)
	require.NotNil(t, c.Activation)
	assert.Equal(t, uint32(7), *c.Activation)
	assert.True(t, c.IsSnipeable)
	assert.Equal(t, big.NewInt(135), c.Rewards[0].Amount)

	missing, err := env.engine.Contract(9)
	require.NoError(t, err)
	assert.Nil(t, missing)

	holder, ok, err := env.engine.Holder(first)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, creator, holder)

	phase, err := env.engine.Phase(first, 7)
	require.NoError(t, err)
	assert.Equal(t, contract.Active, phase)

	AssertAccount(env, creator).Free(1000 - 2*135).Assert(t)
	AssertAccount(env, env.engine.Reserve()).Free(0).Reserved(2 * 135).Assert(t)

	count, err := env.engine.ContractCount()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), count)

	events := env.engine.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventCreated, events[0].Kind)
	assert.Equal(t, first, *events[0].Contract)
	assert.Equal(t, second, *events[1].Contract)
}
