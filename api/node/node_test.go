// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/api/node"
	"github.com/vechain/nftstake/client/httpclient"
	"github.com/vechain/nftstake/test/testruntime"
)

func TestNode(t *testing.T) {
	rt, err := testruntime.NewDefault()
	require.NoError(t, err)

	router := mux.NewRouter()
	node.New(rt, node.Info{Version: "1.0.0", BlockInterval: 10}).Mount(router, "/node")
	ts := httptest.NewServer(router)
	defer ts.Close()
	tclient := httpclient.New(ts.URL)

	info, err := tclient.GetNodeInfo()
	require.NoError(t, err)
	assert.Equal(t, &node.Info{Version: "1.0.0", BlockInterval: 10}, info)

	head, err := tclient.GetHead()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), head.Number)

	now := time.Unix(1_700_000_000, 0)
	_, err = rt.Advance(now)
	require.NoError(t, err)

	head, err = tclient.GetHead()
	require.NoError(t, err)
	assert.Equal(t, &node.Head{Number: 1, Timestamp: uint64(now.Unix())}, head)
}
