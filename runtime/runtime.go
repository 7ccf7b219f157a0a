// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes calls against the built-in contracts. Calls are
// serialized, each one runs on a state checkpoint and is committed on success.
package runtime

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/builtin/nftstake"
	"github.com/vechain/nftstake/builtin/nftstake/reverts"
	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
	"github.com/vechain/nftstake/xenv"
)

var (
	logger = log.WithContext("pkg", "runtime")

	metaBucket = kv.Bucket("m")
	headKey    = []byte("head")
	genesisKey = []byte("genesis")
)

// Call is the body of a call, run against the engine bound to the call state.
type Call func(env *xenv.Environment, engine *nftstake.NftStake) error

// Receipt is the outcome of an executed call.
type Receipt struct {
	Caller   thor.Address      `json:"caller"`
	Block    uint32            `json:"block"`
	Reverted bool              `json:"reverted"`
	Kind     reverts.Kind      `json:"kind,omitempty"`
	Error    string            `json:"error,omitempty"`
	Events   []*nftstake.Event `json:"events"`
}

// Runtime owns the state and the head block.
type Runtime struct {
	mu     sync.Mutex
	stater *state.Stater
	meta   kv.Store
	head   xenv.BlockContext

	feed  receiptFeed
	scope event.SubscriptionScope
}

// New create a Runtime over the given store, restoring the head block.
func New(db kv.Store, cacheSize int) (*Runtime, error) {
	rt := &Runtime{
		stater: state.NewStater(db, cacheSize),
		meta:   metaBucket.NewStore(db),
	}
	data, err := rt.meta.Get(headKey)
	if err != nil {
		if !rt.meta.IsNotFound(err) {
			return nil, errors.Wrap(err, "load head")
		}
		return rt, nil
	}
	if err := rlp.DecodeBytes(data, &rt.head); err != nil {
		return nil, errors.Wrap(err, "decode head")
	}
	return rt, nil
}

// Head returns the current block.
func (rt *Runtime) Head() xenv.BlockContext {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.head
}

// Advance moves to the next block.
func (rt *Runtime) Advance(now time.Time) (xenv.BlockContext, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	next := xenv.BlockContext{Number: rt.head.Number + 1, Time: uint64(now.Unix())}
	data, err := rlp.EncodeToBytes(&next)
	if err != nil {
		return rt.head, errors.Wrap(err, "encode head")
	}
	if err := rt.meta.Put(headKey, data); err != nil {
		return rt.head, errors.Wrap(err, "save head")
	}
	rt.head = next
	metricHead().Set(int64(next.Number))
	return next, nil
}

// Initialized returns whether genesis has been applied.
func (rt *Runtime) Initialized() (bool, error) {
	return rt.meta.Has(genesisKey)
}

// Init applies fn to an empty state and commits it. It can only succeed once.
func (rt *Runtime) Init(fn func(st *state.State) error) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	done, err := rt.meta.Has(genesisKey)
	if err != nil {
		return errors.Wrap(err, "check genesis")
	}
	if done {
		return errors.New("genesis already applied")
	}
	st := rt.stater.NewState()
	if err := fn(st); err != nil {
		return err
	}
	if err := st.Stage().Commit(); err != nil {
		return err
	}
	return rt.meta.Put(genesisKey, []byte{1})
}

// Execute runs a call at the head block on behalf of caller. A reverted call
// yields a receipt and no state change, any other failure is returned as error.
func (rt *Runtime) Execute(caller thor.Address, call Call) (*Receipt, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	defer func() {
		metricExecuteDuration().Observe(time.Since(start).Microseconds())
	}()

	st := rt.stater.NewState()
	head := rt.head
	env := xenv.New(st, &head, caller)
	engine := builtin.NftStake.Native(st)

	receipt := &Receipt{Caller: caller, Block: head.Number}

	checkpoint := st.NewCheckpoint()
	if err := call(env, engine); err != nil {
		st.RevertTo(checkpoint)
		if !reverts.IsRevertErr(err) {
			logger.Warn("call failed", "caller", caller, "block", head.Number, "error", err)
			return nil, err
		}
		receipt.Reverted = true
		receipt.Kind = reverts.KindOf(err)
		receipt.Error = err.Error()
		metricReceipts().AddWithLabel(1, map[string]string{"status": "reverted"})
		return receipt, nil
	}

	stage := st.Stage()
	if err := stage.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	receipt.Events = engine.Events()
	logger.Debug("call executed", "caller", caller, "block", head.Number, "changes", stage.Len(), "events", len(receipt.Events))
	metricReceipts().AddWithLabel(1, map[string]string{"status": "ok"})

	// send never blocks, so receipts reach subscribers in commit order
	if len(receipt.Events) > 0 {
		rt.feed.send(receipt)
	}
	return receipt, nil
}

// View runs a read-only call at the head block. Changes are discarded.
func (rt *Runtime) View(call Call) error {
	rt.mu.Lock()
	head := rt.head
	st := rt.stater.NewState()
	rt.mu.Unlock()

	return call(xenv.New(st, &head, thor.Address{}), builtin.NftStake.Native(st))
}

// SubscribeReceipts delivers the receipts of calls which emitted events. A subscriber
// falling more than receiptQueueSize receipts behind is dropped and its Err channel
// yields errSubscriberTooSlow.
func (rt *Runtime) SubscribeReceipts(ch chan *Receipt) event.Subscription {
	return rt.scope.Track(rt.feed.subscribe(ch))
}

// Close unsubscribes all subscribers.
func (rt *Runtime) Close() {
	rt.scope.Close()
}
