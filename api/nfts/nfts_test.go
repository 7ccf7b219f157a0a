// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nfts_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/api/nfts"
	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake"
	"github.com/vechain/nftstake/builtin/nftstake/clause"
	"github.com/vechain/nftstake/client/common"
	"github.com/vechain/nftstake/client/httpclient"
	"github.com/vechain/nftstake/genesis"
	"github.com/vechain/nftstake/test/testruntime"
)

var (
	ts      *httptest.Server
	tclient *httpclient.Client
)

func TestNFTs(t *testing.T) {
	initNFTsServer(t)
	defer ts.Close()

	t.Run("getCollection", testGetCollection)
	t.Run("getContractCollection", testGetContractCollection)
	t.Run("getUnknownCollection", testGetUnknownCollection)
	t.Run("getItem", testGetItem)
	t.Run("getUnknownItem", testGetUnknownItem)
	t.Run("getAttribute", testGetAttribute)
	t.Run("getAttributeBadRequest", testGetAttributeBadRequest)
}

func initNFTsServer(t *testing.T) {
	rt, err := testruntime.NewDefault()
	require.NoError(t, err)

	router := mux.NewRouter()
	nfts.New(rt).Mount(router, "/nfts")
	ts = httptest.NewServer(router)
	tclient = httpclient.New(ts.URL)
}

func testGetCollection(t *testing.T) {
	c, err := tclient.GetCollection(0)
	require.NoError(t, err)

	creator := genesis.DevAccounts()[1]
	assert.Equal(t, nft.CollectionID(0), c.ID)
	assert.Equal(t, creator, c.Owner)
	assert.Equal(t, creator, c.Admin)
	assert.Equal(t, uint32(10), c.Minted)
	assert.Equal(t, uint32(10), c.Supply)
}

func testGetContractCollection(t *testing.T) {
	c, err := tclient.GetCollection(1)
	require.NoError(t, err)
	assert.Equal(t, nftstake.ReserveAccount(builtin.NftStake.Address), c.Owner)
	assert.Equal(t, uint32(0), c.Supply)
}

func testGetUnknownCollection(t *testing.T) {
	_, err := tclient.GetCollection(100)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func testGetItem(t *testing.T) {
	item, err := tclient.GetItem(nft.NewAddress(0, 7))
	require.NoError(t, err)
	assert.Equal(t, nft.NewAddress(0, 7), item.Address)
	assert.Equal(t, genesis.DevAccounts()[3], item.Owner)
}

func testGetUnknownItem(t *testing.T) {
	_, err := tclient.GetItem(nft.NewAddress(0, 10))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func testGetAttribute(t *testing.T) {
	attr, err := tclient.GetAttribute(nft.NewAddress(0, 4), clause.System, []byte("tier"))
	require.NoError(t, err)
	assert.Equal(t, "system", attr.Namespace)
	assert.Equal(t, hexutil.Bytes("tier"), attr.Key)
	assert.Equal(t, hexutil.Bytes{1}, attr.Value)

	// devnet only sets system attributes
	_, err = tclient.GetAttribute(nft.NewAddress(0, 4), clause.CollectionOwner, []byte("tier"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func testGetAttributeBadRequest(t *testing.T) {
	for _, path := range []string{
		"/nfts/0/4/attributes/tier",
		"/nfts/0/4/attributes/0x74696572?namespace=other",
		"/nfts/0/x/attributes/0x74696572",
	} {
		_, code, err := tclient.RawHTTPGet(path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, code, path)
	}
}
