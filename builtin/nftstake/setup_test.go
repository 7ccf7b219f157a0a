// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nftstake

import (
	"math/big"
	"sync"
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

var (
	engineAddr = thor.BytesToAddress([]byte("NftStake"))

	admin   = thor.BytesToAddress([]byte("admin"))
	creator = thor.BytesToAddress([]byte("creator"))
	staker  = thor.BytesToAddress([]byte("staker"))
	sniper  = thor.BytesToAddress([]byte("sniper"))

	stakeKey   = []byte{4}
	stakeValue = []byte{7}
	feeKey     = []byte{9}
)

type testEnv struct {
	state    *state.State
	registry *nft.NFT
	ledger   *currency.Currency
	engine   *NftStake

	items    nft.CollectionID
	nextItem nft.ItemID
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, func(r *nft.NFT) Registry { return r })
}

func newTestEnvWith(t *testing.T, wrap func(*nft.NFT) Registry) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)

	env := &testEnv{
		state:    st,
		registry: nft.New(thor.BytesToAddress([]byte("NFT")), st),
		ledger:   currency.New(thor.BytesToAddress([]byte("Currency")), st),
	}
	env.engine = New(engineAddr, st, wrap(env.registry), env.ledger)

	env.items, err = env.registry.CreateCollection(creator, creator, nft.CollectionConfig{})
	require.NoError(t, err)

	require.NoError(t, env.engine.Initialize(admin))
	require.NoError(t, env.engine.SetCreator(admin, creator))
	_, err = env.engine.CreateContractCollection(admin)
	require.NoError(t, err)
	env.engine.Events()

	require.NoError(t, env.ledger.Mint(creator, big.NewInt(1000)))
	require.NoError(t, env.ledger.Mint(staker, big.NewInt(100)))
	return env
}

// mint creates an item of the stake collection owned by owner, with the given system attributes.
func (e *testEnv) mint(t *testing.T, owner thor.Address, attrs ...clause.Attribute) nft.Address {
	id := e.nextItem
	e.nextItem++
	require.NoError(t, e.registry.MintInto(e.items, id, owner))
	for _, a := range attrs {
		require.NoError(t, e.registry.SetSystemAttribute(e.items, id, a.Key, a.Value))
	}
	return nft.NewAddress(e.items, id)
}

// stakeItem mints an item fulfilling the stake clause of newOffer.
func (e *testEnv) stakeItem(t *testing.T, owner thor.Address) nft.Address {
	return e.mint(t, owner, clause.Attribute{Key: stakeKey, Value: stakeValue})
}

// feeItem mints an item fulfilling the fee clause of newOffer.
func (e *testEnv) feeItem(t *testing.T, owner thor.Address) nft.Address {
	addr := e.mint(t, owner)
	require.NoError(t, e.registry.SetAttribute(creator, addr.Collection, addr.Item, feeKey, []byte{1}))
	return addr
}

func (e *testEnv) owner(t *testing.T, addr nft.Address) (thor.Address, bool) {
	who, ok, err := e.registry.Owner(addr.Collection, addr.Item)
	require.NoError(t, err)
	return who, ok
}

func (e *testEnv) free(t *testing.T, addr thor.Address) int64 {
	b, err := e.ledger.FreeBalance(addr)
	require.NoError(t, err)
	return b.Int64()
}

func (e *testEnv) reserved(t *testing.T, addr thor.Address) int64 {
	b, err := e.ledger.ReservedBalance(addr)
	require.NoError(t, err)
	return b.Int64()
}

func (e *testEnv) issuance(t *testing.T) int64 {
	b, err := e.ledger.TotalIssuance()
	require.NoError(t, err)
	return b.Int64()
}

// newOffer returns a contract with one stake, one fee, a lock of 4 blocks, a claim window of 3 blocks,
// and 135 tokens reward.
func (e *testEnv) newOffer() *contract.Contract {
	return &contract.Contract{
		ActiveDuration: 10,
		StakeDuration:  4,
		ClaimDuration:  3,
		StakeClauses: []*clause.ContractClause{
			{Namespace: clause.System, TargetIndex: 0, Clause: clause.NewHasAttributeWithValue(e.items, stakeKey, stakeValue)},
		},
		FeeClauses: []*clause.ContractClause{
			{Namespace: clause.CollectionOwner, TargetIndex: 0, Clause: clause.NewHasAttribute(e.items, feeKey)},
		},
		NFTStakeAmount: 1,
		NFTFeeAmount:   1,
		Rewards:        []*contract.Reward{contract.TokensReward(big.NewInt(135))},
		CancelFee:      big.NewInt(5),
		IsSnipeable:    true,
	}
}

func assertRevert(t *testing.T, err error, kind reverts.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, reverts.Is(err, kind), "expected %s, got %v", kind, err)
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	env *testEnv

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(env *testEnv) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), env: env}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) Create(c *contract.Contract, block uint32, id *contract.ID) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		got, err := st.env.engine.Create(creator, block, c)
		if err != nil {
			t.Fatalf("failed to create contract at block %d: %v", block, err)
		}
		*id = got
		t.Logf("created contract %d", got)
	})
}

func (st *TestSequence) Accept(caller thor.Address, block uint32, id *contract.ID, stakes, fees []nft.Address) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.engine.Accept(caller, block, *id, stakes, fees); err != nil {
			t.Fatalf("failed to accept contract %d at block %d: %v", *id, block, err)
		}
		t.Logf("accepted contract %d by %s", *id, caller)
	})
}

func (st *TestSequence) Cancel(caller thor.Address, block uint32, id *contract.ID) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.engine.Cancel(caller, block, *id); err != nil {
			t.Fatalf("failed to cancel contract %d at block %d: %v", *id, block, err)
		}
		t.Logf("cancelled contract %d", *id)
	})
}

func (st *TestSequence) Claim(caller thor.Address, block uint32, id *contract.ID) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.engine.Claim(caller, block, *id); err != nil {
			t.Fatalf("failed to claim contract %d at block %d: %v", *id, block, err)
		}
		t.Logf("claimed contract %d", *id)
	})
}

func (st *TestSequence) Snipe(caller thor.Address, block uint32, id *contract.ID) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.engine.Snipe(caller, block, *id); err != nil {
			t.Fatalf("failed to snipe contract %d at block %d: %v", *id, block, err)
		}
		t.Logf("sniped contract %d", *id)
	})
}

func (st *TestSequence) ExpectRevert(kind reverts.Kind, call func(*NftStake) error) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		assertRevert(t, call(st.env.engine), kind)
	})
}

func (st *TestSequence) ExpectPhase(id *contract.ID, block uint32, expected contract.Phase) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		phase, err := st.env.engine.Phase(*id, block)
		require.NoError(t, err)
		assert.Equal(t, expected, phase, "contract %d phase at block %d", *id, block)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}

	t.Logf("All test functions executed successfully")
}

type AccountAssertions struct {
	env  *testEnv
	addr thor.Address

	free      *int64
	reserved  *int64
	contracts []contract.ID
	stats     *StatsExpectation
}

type StatsExpectation struct {
	Staked, Claimed, Sniped, Cancelled, Lost uint64
}

func AssertAccount(env *testEnv, addr thor.Address) *AccountAssertions {
	return &AccountAssertions{env: env, addr: addr}
}

func (aa *AccountAssertions) Free(expected int64) *AccountAssertions {
	aa.free = &expected
	return aa
}

func (aa *AccountAssertions) Reserved(expected int64) *AccountAssertions {
	aa.reserved = &expected
	return aa
}

func (aa *AccountAssertions) Contracts(expected ...contract.ID) *AccountAssertions {
	aa.contracts = append([]contract.ID{}, expected...)
	return aa
}

func (aa *AccountAssertions) Stats(expected StatsExpectation) *AccountAssertions {
	aa.stats = &expected
	return aa
}

func (aa *AccountAssertions) Assert(t *testing.T) {
	if aa.free != nil {
		assert.Equal(t, *aa.free, aa.env.free(t, aa.addr), "account %s free balance mismatch", aa.addr)
	}
	if aa.reserved != nil {
		assert.Equal(t, *aa.reserved, aa.env.reserved(t, aa.addr), "account %s reserved balance mismatch", aa.addr)
	}
	if aa.contracts != nil {
		ids, err := aa.env.engine.AccountContracts(aa.addr)
		require.NoError(t, err)
		if len(aa.contracts) == 0 {
			assert.Empty(t, ids, "account %s contracts mismatch", aa.addr)
		} else {
			assert.Equal(t, aa.contracts, ids, "account %s contracts mismatch", aa.addr)
		}
	}
	if aa.stats != nil {
		stats, err := aa.env.engine.Stats(aa.addr)
		require.NoError(t, err)
		got := StatsExpectation{stats.Staked, stats.Claimed, stats.Sniped, stats.Cancelled, stats.Lost}
		assert.Equal(t, *aa.stats, got, "account %s stats mismatch", aa.addr)
	}
}
