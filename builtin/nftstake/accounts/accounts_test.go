// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/builtin/nftstake/reverts"
	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/lvldb"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
)

var staker = thor.BytesToAddress([]byte("staker"))

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	return New(solidity.NewContext(thor.BytesToAddress([]byte("nftstake")), state.New(db)))
}

func TestOpenClose(t *testing.T) {
	svc := newService(t)

	require.NoError(t, svc.Open(staker, 1, 3))
	require.NoError(t, svc.Open(staker, 2, 3))
	require.NoError(t, svc.Open(staker, 3, 3))

	err := svc.Open(staker, 4, 3)
	assert.True(t, reverts.Is(err, reverts.MaxContracts))

	ids, err := svc.Contracts(staker)
	require.NoError(t, err)
	assert.Equal(t, []contract.ID{1, 2, 3}, ids)

	require.NoError(t, svc.Close(staker, 2))
	ids, err = svc.Contracts(staker)
	require.NoError(t, err)
	assert.Equal(t, []contract.ID{1, 3}, ids)

	assert.Error(t, svc.Close(staker, 2))
	require.NoError(t, svc.Open(staker, 4, 3))

	require.NoError(t, svc.Close(staker, 1))
	require.NoError(t, svc.Close(staker, 3))
	require.NoError(t, svc.Close(staker, 4))
	ids, err = svc.Contracts(staker)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStats(t *testing.T) {
	svc := newService(t)

	stats, err := svc.Stats(staker)
	require.NoError(t, err)
	assert.Equal(t, &Stats{}, stats)

	require.NoError(t, svc.Staked(staker))
	require.NoError(t, svc.Staked(staker))
	require.NoError(t, svc.Staked(staker))
	require.NoError(t, svc.Claimed(staker))
	require.NoError(t, svc.Sniped(staker))
	require.NoError(t, svc.Cancelled(staker))

	stats, err = svc.Stats(staker)
	require.NoError(t, err)
	assert.Equal(t, &Stats{Staked: 3, Claimed: 1, Sniped: 1, Cancelled: 1, Lost: 2}, stats)
}
