// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/builtin/nftstake/reverts"
	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/thor"
)

var (
	slotAccountContracts = thor.BytesToBytes32([]byte("account-contracts"))
	slotAccountStats     = thor.BytesToBytes32([]byte("account-stats"))
)

// Stats are monotonic per-account counters.
type Stats struct {
	Staked    uint64 `json:"staked"`
	Claimed   uint64 `json:"claimed"`
	Sniped    uint64 `json:"sniped"`
	Cancelled uint64 `json:"cancelled"`
	Lost      uint64 `json:"lost"`
}

// Service indexes the open contracts of every staker and keeps their stats.
type Service struct {
	contracts *solidity.Mapping[thor.Address, []contract.ID]
	stats     *solidity.Mapping[thor.Address, *Stats]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		contracts: solidity.NewMapping[thor.Address, []contract.ID](sctx, slotAccountContracts),
		stats:     solidity.NewMapping[thor.Address, *Stats](sctx, slotAccountStats),
	}
}

// Contracts returns the open contracts of an account, in acceptance order.
func (s *Service) Contracts(addr thor.Address) ([]contract.ID, error) {
	ids, err := s.contracts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "get account contracts")
	}
	return ids, nil
}

// Open appends a contract to the account list, which holds at most capacity entries.
func (s *Service) Open(addr thor.Address, id contract.ID, capacity uint32) error {
	ids, err := s.Contracts(addr)
	if err != nil {
		return err
	}
	if uint32(len(ids)) >= capacity {
		return reverts.New(reverts.MaxContracts, fmt.Sprintf("account holds %d contracts", len(ids)))
	}
	if err := s.contracts.Set(addr, append(ids, id)); err != nil {
		return errors.Wrap(err, "set account contracts")
	}
	return nil
}

// Close removes a contract from the account list.
func (s *Service) Close(addr thor.Address, id contract.ID) error {
	ids, err := s.Contracts(addr)
	if err != nil {
		return err
	}
	idx := slices.Index(ids, id)
	if idx < 0 {
		return errors.Errorf("contract %d not open for %s", id, addr)
	}
	ids = slices.Delete(ids, idx, idx+1)
	if len(ids) == 0 {
		s.contracts.Delete(addr)
		return nil
	}
	if err := s.contracts.Set(addr, ids); err != nil {
		return errors.Wrap(err, "set account contracts")
	}
	return nil
}

func (s *Service) Stats(addr thor.Address) (*Stats, error) {
	stats, err := s.stats.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "get account stats")
	}
	return stats, nil
}

func (s *Service) update(addr thor.Address, fn func(*Stats)) error {
	stats, err := s.Stats(addr)
	if err != nil {
		return err
	}
	fn(stats)
	if err := s.stats.Set(addr, stats); err != nil {
		return errors.Wrap(err, "set account stats")
	}
	return nil
}

func (s *Service) Staked(addr thor.Address) error {
	return s.update(addr, func(st *Stats) { st.Staked++ })
}

func (s *Service) Claimed(addr thor.Address) error {
	return s.update(addr, func(st *Stats) { st.Claimed++ })
}

// Sniped records a staker whose reward was taken by a sniper.
func (s *Service) Sniped(addr thor.Address) error {
	return s.update(addr, func(st *Stats) {
		st.Sniped++
		st.Lost++
	})
}

// Cancelled records a staker who gave up the reward.
func (s *Service) Cancelled(addr thor.Address) error {
	return s.update(addr, func(st *Stats) {
		st.Cancelled++
		st.Lost++
	})
}
