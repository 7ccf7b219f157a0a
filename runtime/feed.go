// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"
)

const receiptQueueSize = 128

var errSubscriberTooSlow = errors.New("receipt subscriber too slow")

type receiptQueue struct {
	ch      chan *Receipt
	dropped chan struct{}
}

// receiptFeed fans receipts out to subscribers. Every subscriber has its own bounded
// queue, and a subscriber whose queue is full is dropped, so send never blocks.
type receiptFeed struct {
	mu   sync.Mutex
	subs map[*receiptQueue]struct{}
}

func (f *receiptFeed) subscribe(ch chan<- *Receipt) event.Subscription {
	q := &receiptQueue{
		ch:      make(chan *Receipt, receiptQueueSize),
		dropped: make(chan struct{}),
	}
	f.mu.Lock()
	if f.subs == nil {
		f.subs = make(map[*receiptQueue]struct{})
	}
	f.subs[q] = struct{}{}
	f.mu.Unlock()

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer f.remove(q)
		for {
			select {
			case receipt := <-q.ch:
				select {
				case ch <- receipt:
				case <-q.dropped:
					return errSubscriberTooSlow
				case <-quit:
					return nil
				}
			case <-q.dropped:
				return errSubscriberTooSlow
			case <-quit:
				return nil
			}
		}
	})
}

func (f *receiptFeed) send(receipt *Receipt) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for q := range f.subs {
		select {
		case q.ch <- receipt:
		default:
			delete(f.subs, q)
			close(q.dropped)
			logger.Warn("receipt subscriber dropped", "queued", receiptQueueSize)
		}
	}
}

func (f *receiptFeed) remove(q *receiptQueue) {
	f.mu.Lock()
	delete(f.subs, q)
	f.mu.Unlock()
}
