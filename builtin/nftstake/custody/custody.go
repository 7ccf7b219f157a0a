// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package custody moves tokens and NFTs between creators, stakers and the
// reserve account. A failed move leaves earlier moves of the same call in
// place, so callers run a whole call on one state checkpoint.
package custody

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/currency"
	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/builtin/nftstake/reverts"
	"github.com/vechain/nftstake/thor"
)

// Registry is the part of the NFT registry custody needs.
type Registry interface {
	Owner(collection nft.CollectionID, item nft.ItemID) (thor.Address, bool, error)
	MintInto(collection nft.CollectionID, item nft.ItemID, owner thor.Address) error
	Transfer(collection nft.CollectionID, item nft.ItemID, to thor.Address) error
	Burn(collection nft.CollectionID, item nft.ItemID, checkOwner *thor.Address) error
}

// Ledger is the part of the currency ledger custody needs.
type Ledger interface {
	FreeBalance(addr thor.Address) (*big.Int, error)
	Transfer(from, to thor.Address, amount *big.Int) error
	Reserve(addr thor.Address, amount *big.Int) error
	RepatriateReserved(from, to thor.Address, amount *big.Int) error
	CanSlash(addr thor.Address, amount *big.Int) (bool, error)
	SlashReserved(addr thor.Address, amount *big.Int) error
}

// Manager performs asset moves on behalf of the reserve account.
type Manager struct {
	registry Registry
	ledger   Ledger
	reserve  thor.Address
}

func New(registry Registry, ledger Ledger, reserve thor.Address) *Manager {
	return &Manager{
		registry: registry,
		ledger:   ledger,
		reserve:  reserve,
	}
}

// Reserve returns the custody account.
func (m *Manager) Reserve() thor.Address {
	return m.reserve
}

func ledgerErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, currency.ErrInsufficientBalance):
		return reverts.New(reverts.InsufficientBalance, op)
	case errors.Is(err, currency.ErrInsufficientReserved):
		return reverts.New(reverts.InsufficientReserveFunds, op)
	}
	return errors.Wrap(err, op)
}

// CheckOwnership requires every address to exist, be owned by `owner` and appear once.
func (m *Manager) CheckOwnership(owner thor.Address, addresses []nft.Address) error {
	seen := make(map[nft.Address]bool, len(addresses))
	for _, addr := range addresses {
		if seen[addr] {
			return reverts.New(reverts.Ownership, "duplicated nft "+addr.String())
		}
		seen[addr] = true

		holder, ok, err := m.registry.Owner(addr.Collection, addr.Item)
		if err != nil {
			return errors.Wrap(err, "nft owner")
		}
		if !ok || holder != owner {
			return reverts.New(reverts.Ownership, "nft "+addr.String()+" not owned by "+owner.String())
		}
	}
	return nil
}

func (m *Manager) transfer(addr nft.Address, to thor.Address) error {
	if err := m.registry.Transfer(addr.Collection, addr.Item, to); err != nil {
		return errors.Wrap(err, "transfer nft "+addr.String())
	}
	return nil
}

// EscrowRewards moves the rewards from the creator into the reserve.
// Tokens are held as reserved balance of the reserve account.
func (m *Manager) EscrowRewards(creator thor.Address, rewards []*contract.Reward) error {
	total := new(big.Int)
	for _, r := range rewards {
		if r.Kind == contract.RewardTokens {
			total.Add(total, r.Amount)
		}
	}
	if total.Sign() > 0 {
		free, err := m.ledger.FreeBalance(creator)
		if err != nil {
			return errors.Wrap(err, "free balance")
		}
		if free.Cmp(total) < 0 {
			return reverts.New(reverts.InsufficientBalance, "reward tokens "+total.String())
		}
	}

	for _, r := range rewards {
		switch r.Kind {
		case contract.RewardTokens:
			if err := ledgerErr(m.ledger.Transfer(creator, m.reserve, r.Amount), "escrow tokens"); err != nil {
				return err
			}
			if err := ledgerErr(m.ledger.Reserve(m.reserve, r.Amount), "reserve tokens"); err != nil {
				return err
			}
		case contract.RewardNFT:
			if err := m.CheckOwnership(creator, []nft.Address{r.NFT}); err != nil {
				return err
			}
			if err := m.transfer(r.NFT, m.reserve); err != nil {
				return err
			}
		}
	}
	return nil
}

// PayRewards hands the escrowed rewards to `to`.
func (m *Manager) PayRewards(rewards []*contract.Reward, to thor.Address) error {
	for _, r := range rewards {
		switch r.Kind {
		case contract.RewardTokens:
			if err := ledgerErr(m.ledger.RepatriateReserved(m.reserve, to, r.Amount), "pay tokens"); err != nil {
				return err
			}
		case contract.RewardNFT:
			if err := m.requireReserved(r.NFT); err != nil {
				return err
			}
			if err := m.transfer(r.NFT, to); err != nil {
				return err
			}
		}
	}
	return nil
}

// DestroyRewards burns the escrowed rewards.
func (m *Manager) DestroyRewards(rewards []*contract.Reward) error {
	for _, r := range rewards {
		switch r.Kind {
		case contract.RewardTokens:
			if err := ledgerErr(m.ledger.SlashReserved(m.reserve, r.Amount), "burn tokens"); err != nil {
				return err
			}
		case contract.RewardNFT:
			if err := m.requireReserved(r.NFT); err != nil {
				return err
			}
			if err := m.registry.Burn(r.NFT.Collection, r.NFT.Item, &m.reserve); err != nil {
				return errors.Wrap(err, "burn nft "+r.NFT.String())
			}
		}
	}
	return nil
}

// ReleaseRewards settles the rewards of a cancelled contract according to its policy.
func (m *Manager) ReleaseRewards(c *contract.Contract) error {
	switch c.CancelPolicy {
	case contract.Refund:
		return m.PayRewards(c.Rewards, c.Creator)
	case contract.Burn:
		return m.DestroyRewards(c.Rewards)
	}
	return fmt.Errorf("unknown cancel policy %d", c.CancelPolicy)
}

func (m *Manager) requireReserved(addr nft.Address) error {
	holder, ok, err := m.registry.Owner(addr.Collection, addr.Item)
	if err != nil {
		return errors.Wrap(err, "nft owner")
	}
	if !ok || holder != m.reserve {
		return reverts.New(reverts.InsufficientReserveFunds, "nft "+addr.String()+" not in reserve")
	}
	return nil
}

// LockStakes moves the stakes into the reserve.
func (m *Manager) LockStakes(addresses []nft.Address) error {
	for _, addr := range addresses {
		if err := m.transfer(addr, m.reserve); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseStakes returns locked stakes to the staker.
func (m *Manager) ReleaseStakes(addresses []nft.Address, staker thor.Address) error {
	for _, addr := range addresses {
		if err := m.requireReserved(addr); err != nil {
			return err
		}
		if err := m.transfer(addr, staker); err != nil {
			return err
		}
	}
	return nil
}

// PayFees hands fee NFTs to the creator, or burns them.
func (m *Manager) PayFees(addresses []nft.Address, creator thor.Address, burn bool) error {
	for _, addr := range addresses {
		if burn {
			if err := m.registry.Burn(addr.Collection, addr.Item, nil); err != nil {
				return errors.Wrap(err, "burn fee "+addr.String())
			}
			continue
		}
		if err := m.transfer(addr, creator); err != nil {
			return err
		}
	}
	return nil
}

// ChargeCancelFee moves the cancel fee from the staker to the creator.
func (m *Manager) ChargeCancelFee(staker, creator thor.Address, fee *big.Int) error {
	if fee.Sign() == 0 {
		return nil
	}
	ok, err := m.ledger.CanSlash(staker, fee)
	if err != nil {
		return errors.Wrap(err, "can slash")
	}
	if !ok {
		return reverts.New(reverts.InsufficientBalance, "cancel fee "+fee.String())
	}
	return ledgerErr(m.ledger.Transfer(staker, creator, fee), "charge cancel fee")
}

// Certificate returns the holder of a contract certificate, false once burned.
func (m *Manager) Certificate(collection nft.CollectionID, id contract.ID) (thor.Address, bool, error) {
	holder, ok, err := m.registry.Owner(collection, id.Item())
	if err != nil {
		return thor.Address{}, false, errors.Wrap(err, "certificate owner")
	}
	return holder, ok, nil
}

func (m *Manager) MintCertificate(collection nft.CollectionID, id contract.ID, owner thor.Address) error {
	if err := m.registry.MintInto(collection, id.Item(), owner); err != nil {
		return errors.Wrap(err, "mint certificate")
	}
	return nil
}

func (m *Manager) TransferCertificate(collection nft.CollectionID, id contract.ID, to thor.Address) error {
	if err := m.registry.Transfer(collection, id.Item(), to); err != nil {
		return errors.Wrap(err, "transfer certificate")
	}
	return nil
}

func (m *Manager) BurnCertificate(collection nft.CollectionID, id contract.ID, holder thor.Address) error {
	if err := m.registry.Burn(collection, id.Item(), &holder); err != nil {
		return errors.Wrap(err, "burn certificate")
	}
	return nil
}
