// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/api/subscriptions"
	"github.com/vechain/nftstake/builtin/nftstake"
	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/client/wsclient"
	"github.com/vechain/nftstake/genesis"
	"github.com/vechain/nftstake/runtime"
	"github.com/vechain/nftstake/test/testruntime"
	"github.com/vechain/nftstake/thor"
	"github.com/vechain/nftstake/xenv"
)

var (
	admin = genesis.DevAccounts()[0]
	alice = genesis.DevAccounts()[2]
)

func initSubscriptionsServer(t *testing.T) (*runtime.Runtime, *subscriptions.Subscriptions, *httptest.Server) {
	rt, err := testruntime.NewDefault()
	require.NoError(t, err)

	router := mux.NewRouter()
	subs := subscriptions.New(rt, []string{"http://allowed.example"})
	subs.Mount(router, "/subscriptions")
	return rt, subs, httptest.NewServer(router)
}

func setLocked(t *testing.T, rt *runtime.Runtime, locked bool) {
	receipt, err := rt.Execute(admin, func(env *xenv.Environment, engine *nftstake.NftStake) error {
		return engine.SetLockedState(env.Caller(), locked)
	})
	require.NoError(t, err)
	require.False(t, receipt.Reverted)
}

func TestSubscribeEvents(t *testing.T) {
	rt, subs, ts := initSubscriptionsServer(t)
	defer ts.Close()
	defer subs.Close()

	client, err := wsclient.NewClient(ts.URL)
	require.NoError(t, err)
	sub, err := client.SubscribeEvents("kind=" + string(nftstake.EventLockedStateSet))
	require.NoError(t, err)

	// the handler subscribes to the runtime after the upgrade, retry until an event gets through
	var msg *subscriptions.EventMessage
	deadline := time.After(2 * time.Second)
	for msg == nil {
		_, err := rt.Execute(admin, func(env *xenv.Environment, engine *nftstake.NftStake) error {
			return engine.SetCreator(env.Caller(), alice)
		})
		require.NoError(t, err)
		setLocked(t, rt, true)

		select {
		case ev := <-sub.EventChan:
			require.NoError(t, ev.Error)
			msg = ev.Data
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("no event received")
		}
	}

	assert.Equal(t, nftstake.EventLockedStateSet, msg.Event.Kind)
	assert.Equal(t, admin, msg.Caller)
	require.NotNil(t, msg.Event.Locked)
	assert.True(t, *msg.Event.Locked)
	assert.NoError(t, sub.Unsubscribe())
}

func TestSubscribeBadQuery(t *testing.T) {
	_, subs, ts := initSubscriptionsServer(t)
	defer ts.Close()
	defer subs.Close()

	for _, query := range []string{"contract=abc", "account=0x01"} {
		res, err := http.Get(ts.URL + "/subscriptions/event?" + query)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, query)
	}
}

func TestSubscribeOrigin(t *testing.T) {
	_, subs, ts := initSubscriptionsServer(t)
	defer ts.Close()
	defer subs.Close()

	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/event"}

	header := http.Header{"Origin": []string{"http://denied.example"}}
	_, res, err := websocket.DefaultDialer.Dial(u.String(), header)
	assert.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	header = http.Header{"Origin": []string{"http://Allowed.example"}}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	require.NoError(t, err)
	conn.Close()
}

func TestCloseDisconnects(t *testing.T) {
	_, subs, ts := initSubscriptionsServer(t)
	defer ts.Close()

	client, err := wsclient.NewClient(ts.URL)
	require.NoError(t, err)
	sub, err := client.SubscribeEvents("")
	require.NoError(t, err)

	subs.Close()

	select {
	case ev := <-sub.EventChan:
		assert.Error(t, ev.Error)
	case <-time.After(time.Second):
		t.Fatal("connection not closed")
	}
}

func TestEventFilter(t *testing.T) {
	id := contract.ID(3)
	staker := thor.BytesToAddress([]byte("staker"))

	accepted := &nftstake.Event{Kind: nftstake.EventAccepted, Contract: &id, Account: staker, Staker: &staker}
	sniped := &nftstake.Event{Kind: nftstake.EventSniped, Contract: &id, Account: alice, Staker: &staker}
	locked := &nftstake.Event{Kind: nftstake.EventLockedStateSet, Account: admin}

	tests := []struct {
		name   string
		query  url.Values
		event  *nftstake.Event
		expect bool
	}{
		{"empty", url.Values{}, locked, true},
		{"kind", url.Values{"kind": {"Accepted"}}, accepted, true},
		{"kind mismatch", url.Values{"kind": {"Accepted"}}, sniped, false},
		{"contract", url.Values{"contract": {"3"}}, accepted, true},
		{"contract mismatch", url.Values{"contract": {"4"}}, accepted, false},
		{"contract on engine event", url.Values{"contract": {"3"}}, locked, false},
		{"account", url.Values{"account": {alice.String()}}, sniped, true},
		{"staker", url.Values{"account": {staker.String()}}, sniped, true},
		{"account mismatch", url.Values{"account": {admin.String()}}, sniped, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := subscriptions.ParseEventFilter(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, filter.Match(tt.event))
		})
	}
}
