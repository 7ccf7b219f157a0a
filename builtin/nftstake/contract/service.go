// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/thor"
)

var (
	slotContracts   = thor.BytesToBytes32([]byte("contracts"))
	slotAcceptedAt  = thor.BytesToBytes32([]byte("accepted-at"))
	slotStakedItems = thor.BytesToBytes32([]byte("staked-items"))
	slotNextID      = thor.BytesToBytes32([]byte("next-contract-id"))

	bigOne = big.NewInt(1)
)

// Service stores contract definitions and their runtime state.
type Service struct {
	contracts   *solidity.Mapping[ID, *Contract]
	acceptedAt  *solidity.Mapping[ID, uint32]
	stakedItems *solidity.Mapping[ID, []nft.Address]
	nextID      *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		contracts:   solidity.NewMapping[ID, *Contract](sctx, slotContracts),
		acceptedAt:  solidity.NewMapping[ID, uint32](sctx, slotAcceptedAt),
		stakedItems: solidity.NewMapping[ID, []nft.Address](sctx, slotStakedItems),
		nextID:      solidity.NewUint256(sctx, slotNextID),
	}
}

// NextID allocates a contract id.
func (s *Service) NextID() (ID, error) {
	next, err := s.nextID.Get()
	if err != nil {
		return 0, errors.Wrap(err, "get next contract id")
	}
	if !next.IsUint64() || next.Uint64() > uint64(^uint32(0)) {
		return 0, errors.New("contract id overflow")
	}
	id := ID(next.Uint64())
	s.nextID.Set(next.Add(next, bigOne))
	return id, nil
}

// Count returns the number of contracts ever created.
func (s *Service) Count() (uint32, error) {
	next, err := s.nextID.Get()
	if err != nil {
		return 0, errors.Wrap(err, "get next contract id")
	}
	return uint32(next.Uint64()), nil
}

// Get returns the contract, nil if unknown.
func (s *Service) Get(id ID) (*Contract, error) {
	exists, err := s.contracts.Exists(id)
	if err != nil {
		return nil, errors.Wrap(err, "contract exists")
	}
	if !exists {
		return nil, nil
	}
	c, err := s.contracts.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "get contract")
	}
	return c, nil
}

func (s *Service) Set(id ID, c *Contract) error {
	if err := s.contracts.Set(id, c); err != nil {
		return errors.Wrap(err, "set contract")
	}
	return nil
}

// AcceptedAt returns the acceptance block, nil if the contract is not accepted.
func (s *Service) AcceptedAt(id ID) (*uint32, error) {
	exists, err := s.acceptedAt.Exists(id)
	if err != nil {
		return nil, errors.Wrap(err, "accepted exists")
	}
	if !exists {
		return nil, nil
	}
	at, err := s.acceptedAt.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "get accepted")
	}
	return &at, nil
}

func (s *Service) StakedItems(id ID) ([]nft.Address, error) {
	items, err := s.stakedItems.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "get staked items")
	}
	return items, nil
}

// Accepted records the runtime state of an accepted contract.
func (s *Service) Accepted(id ID, at uint32, items []nft.Address) error {
	if err := s.acceptedAt.Set(id, at); err != nil {
		return errors.Wrap(err, "set accepted")
	}
	if err := s.stakedItems.Set(id, items); err != nil {
		return errors.Wrap(err, "set staked items")
	}
	return nil
}

// Settled clears the runtime state.
func (s *Service) Settled(id ID) {
	s.acceptedAt.Delete(id)
	s.stakedItems.Delete(id)
}
