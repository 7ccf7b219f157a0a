// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/url"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/api/utils"
	"github.com/vechain/nftstake/builtin/nftstake"
	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/thor"
)

// EventMessage is one engine event, pushed to subscribers.
type EventMessage struct {
	Block  uint32          `json:"block"`
	Caller thor.Address    `json:"caller"`
	Event  *nftstake.Event `json:"event"`
}

// EventFilter selects events. Unset fields match everything.
type EventFilter struct {
	Contract *contract.ID
	Account  *thor.Address
	Kind     nftstake.EventKind
}

func parseEventFilter(query url.Values) (*EventFilter, error) {
	filter := &EventFilter{Kind: nftstake.EventKind(query.Get("kind"))}
	if s := query.Get("contract"); s != "" {
		id, err := utils.ParseUint32(s)
		if err != nil {
			return nil, errors.WithMessage(err, "contract")
		}
		cid := contract.ID(id)
		filter.Contract = &cid
	}
	if s := query.Get("account"); s != "" {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return nil, errors.WithMessage(err, "account")
		}
		filter.Account = addr
	}
	return filter, nil
}

// Match returns whether ev passes the filter. An account matches the acting account or the staker.
func (f *EventFilter) Match(ev *nftstake.Event) bool {
	if f.Kind != "" && ev.Kind != f.Kind {
		return false
	}
	if f.Contract != nil && (ev.Contract == nil || *ev.Contract != *f.Contract) {
		return false
	}
	if f.Account != nil && ev.Account != *f.Account && (ev.Staker == nil || *ev.Staker != *f.Account) {
		return false
	}
	return true
}
