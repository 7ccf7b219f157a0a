// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nftstake

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/builtin/nftstake/reverts"
	"github.com/vechain/nftstake/thor"
)

func (n *NftStake) ensureUnlocked() error {
	locked, err := n.locked.Get()
	if err != nil {
		return err
	}
	if locked {
		return reverts.New(reverts.PalletLocked, "")
	}
	return nil
}

func (n *NftStake) requireCollection() (nft.CollectionID, error) {
	collection, ok, err := n.ContractCollectionID()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, reverts.New(reverts.UnknownContractCollection, "")
	}
	return collection, nil
}

// load returns the contract and the certificate collection of an existing contract.
func (n *NftStake) load(id contract.ID) (*contract.Contract, nft.CollectionID, error) {
	if err := n.ensureUnlocked(); err != nil {
		return nil, 0, err
	}
	c, err := n.contractService.Get(id)
	if err != nil {
		return nil, 0, err
	}
	if c == nil {
		return nil, 0, reverts.New(reverts.UnknownContract, fmt.Sprintf("contract %d", id))
	}
	collection, err := n.requireCollection()
	if err != nil {
		return nil, 0, err
	}
	return c, collection, nil
}

// staked returns the certificate holder and the acceptance block of a contract in the
// Staking, Claimable or Snipeable phase. Offers fail with Available, settled contracts
// with ContractOwnership.
func (n *NftStake) staked(id contract.ID, collection nft.CollectionID) (thor.Address, uint32, error) {
	holder, ok, err := n.custody.Certificate(collection, id)
	if err != nil {
		return thor.Address{}, 0, err
	}
	if !ok {
		return thor.Address{}, 0, reverts.New(reverts.ContractOwnership, fmt.Sprintf("contract %d settled", id))
	}
	acceptedAt, err := n.contractService.AcceptedAt(id)
	if err != nil {
		return thor.Address{}, 0, err
	}
	if acceptedAt == nil {
		return thor.Address{}, 0, reverts.New(reverts.Available, fmt.Sprintf("contract %d not accepted", id))
	}
	return holder, *acceptedAt, nil
}

// rejectCertificates keeps contract certificates out of custody, their holder must
// stay in step with the contract state.
func rejectCertificates(collection nft.CollectionID, addresses []nft.Address) error {
	for _, addr := range addresses {
		if addr.Collection == collection {
			return reverts.New(reverts.Ownership, "contract certificate "+addr.String())
		}
	}
	return nil
}

// settle clears the runtime state of an accepted contract.
func (n *NftStake) settle(id contract.ID, collection nft.CollectionID, staker thor.Address) error {
	if err := n.custody.BurnCertificate(collection, id, staker); err != nil {
		return err
	}
	n.contractService.Settled(id)
	return n.accountService.Close(staker, id)
}

// Create publishes a new contract on behalf of the designated creator and escrows its rewards.
func (n *NftStake) Create(caller thor.Address, now uint32, c *contract.Contract) (contract.ID, error) {
	logger.Debug("create", "caller", caller, "block", now)

	var id contract.ID
	err := n.atomic("create", func() error {
		if err := n.ensureUnlocked(); err != nil {
			return err
		}
		creator, ok, err := n.Creator()
		if err != nil {
			return err
		}
		if !ok {
			return reverts.New(reverts.UnknownCreator, "")
		}
		if caller != creator {
			return reverts.New(reverts.CreatorOwnership, caller.String())
		}
		collection, err := n.requireCollection()
		if err != nil {
			return err
		}

		stored := *c
		stored.Creator = caller
		if stored.Activation == nil {
			activation := now
			stored.Activation = &activation
		}
		if err := stored.Validate(limits()); err != nil {
			return err
		}
		var prizes []nft.Address
		for _, r := range stored.Rewards {
			if r.Kind == contract.RewardNFT {
				prizes = append(prizes, r.NFT)
			}
		}
		if err := rejectCertificates(collection, prizes); err != nil {
			return err
		}

		if id, err = n.contractService.NextID(); err != nil {
			return err
		}
		if err := n.custody.EscrowRewards(caller, stored.Rewards); err != nil {
			return err
		}
		if err := n.custody.MintCertificate(collection, id, caller); err != nil {
			return err
		}
		if err := n.contractService.Set(id, &stored); err != nil {
			return err
		}

		metricContracts().Add(1)
		logger.Info("contract created", "id", id, "creator", caller, "activation", *stored.Activation)
		n.emit(&Event{Kind: EventCreated, Contract: &id, Account: caller, Rewards: stored.Rewards})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Accept stakes the given NFTs into an active offer and pays its fees.
func (n *NftStake) Accept(caller thor.Address, now uint32, id contract.ID, stakes, fees []nft.Address) error {
	logger.Debug("accept", "caller", caller, "id", id, "block", now, "stakes", len(stakes), "fees", len(fees))

	return n.atomic("accept", func() error {
		c, collection, err := n.load(id)
		if err != nil {
			return err
		}

		holder, ok, err := n.custody.Certificate(collection, id)
		if err != nil {
			return err
		}
		acceptedAt, err := n.contractService.AcceptedAt(id)
		if err != nil {
			return err
		}
		if !ok || holder != c.Creator || acceptedAt != nil {
			return reverts.New(reverts.ContractOwnership, fmt.Sprintf("contract %d already taken", id))
		}

		phase, err := c.PhaseAt(now, nil)
		if err != nil {
			return err
		}
		if phase != contract.Active {
			return reverts.New(reverts.Inactive, phase.String())
		}

		if len(stakes) != int(c.NFTStakeAmount) {
			return reverts.New(reverts.InvalidNFTStakeAmount, fmt.Sprintf("%d stakes, want %d", len(stakes), c.NFTStakeAmount))
		}
		if len(fees) != int(c.NFTFeeAmount) {
			return reverts.New(reverts.InvalidNFTFeeAmount, fmt.Sprintf("%d fees, want %d", len(fees), c.NFTFeeAmount))
		}
		all := make([]nft.Address, 0, len(stakes)+len(fees))
		all = append(append(all, stakes...), fees...)
		if err := rejectCertificates(collection, all); err != nil {
			return err
		}
		if err := n.custody.CheckOwnership(caller, all); err != nil {
			return err
		}

		src := &attributeSource{registry: n.registry}
		stakesOK := c.EvaluateStakes(stakes, src)
		if src.err != nil {
			return errors.Wrap(src.err, "evaluate stakes")
		}
		if !stakesOK {
			return reverts.New(reverts.UnfulfilledStakingClause, "")
		}
		feesOK := c.EvaluateFees(fees, src)
		if src.err != nil {
			return errors.Wrap(src.err, "evaluate fees")
		}
		if !feesOK {
			return reverts.New(reverts.UnfulfilledFeeClause, "")
		}

		if err := n.accountService.Open(caller, id, MaxContracts.Get()); err != nil {
			return err
		}
		if err := n.custody.LockStakes(stakes); err != nil {
			return err
		}
		if err := n.custody.PayFees(fees, c.Creator, c.BurnFees); err != nil {
			return err
		}
		if err := n.custody.TransferCertificate(collection, id, caller); err != nil {
			return err
		}
		if err := n.contractService.Accepted(id, now, stakes); err != nil {
			return err
		}
		if err := n.accountService.Staked(caller); err != nil {
			return err
		}

		logger.Info("contract accepted", "id", id, "staker", caller, "block", now)
		n.emit(&Event{Kind: EventAccepted, Contract: &id, Account: caller, Stakes: stakes, Fees: fees})
		return nil
	})
}

// Cancel gives up a contract during its lock. Stakes go back to the holder, who pays
// the cancel fee to the creator, and the reward is released by the cancel policy.
func (n *NftStake) Cancel(caller thor.Address, now uint32, id contract.ID) error {
	logger.Debug("cancel", "caller", caller, "id", id, "block", now)

	return n.atomic("cancel", func() error {
		c, collection, err := n.load(id)
		if err != nil {
			return err
		}
		holder, ok, err := n.custody.Certificate(collection, id)
		if err != nil {
			return err
		}
		if !ok || holder != caller {
			return reverts.New(reverts.ContractOwnership, caller.String())
		}
		_, acceptedAt, err := n.staked(id, collection)
		if err != nil {
			return err
		}
		phase, err := c.PhaseAt(now, &acceptedAt)
		if err != nil {
			return err
		}
		if phase != contract.Staking {
			return reverts.New(reverts.Claimable, phase.String())
		}

		items, err := n.contractService.StakedItems(id)
		if err != nil {
			return err
		}
		if err := n.custody.ReleaseStakes(items, caller); err != nil {
			return err
		}
		if err := n.custody.ChargeCancelFee(caller, c.Creator, c.Fee()); err != nil {
			return err
		}
		if err := n.custody.ReleaseRewards(c); err != nil {
			return err
		}
		if err := n.settle(id, collection, caller); err != nil {
			return err
		}
		if err := n.accountService.Cancelled(caller); err != nil {
			return err
		}

		metricSettled().AddWithLabel(1, map[string]string{"path": "cancel"})
		logger.Info("contract cancelled", "id", id, "staker", caller, "block", now)
		n.emit(&Event{Kind: EventCancelled, Contract: &id, Account: caller, Stakes: items})
		return nil
	})
}

// Claim hands the reward and the stakes to the holder once the lock has elapsed.
// It stays valid until someone snipes the contract.
func (n *NftStake) Claim(caller thor.Address, now uint32, id contract.ID) error {
	logger.Debug("claim", "caller", caller, "id", id, "block", now)

	return n.atomic("claim", func() error {
		c, collection, err := n.load(id)
		if err != nil {
			return err
		}
		holder, ok, err := n.custody.Certificate(collection, id)
		if err != nil {
			return err
		}
		if !ok || holder != caller {
			return reverts.New(reverts.ContractOwnership, caller.String())
		}
		_, acceptedAt, err := n.staked(id, collection)
		if err != nil {
			return err
		}
		phase, err := c.PhaseAt(now, &acceptedAt)
		if err != nil {
			return err
		}
		if phase == contract.Staking {
			return reverts.New(reverts.Staking, "")
		}

		items, err := n.contractService.StakedItems(id)
		if err != nil {
			return err
		}
		if err := n.custody.ReleaseStakes(items, caller); err != nil {
			return err
		}
		if err := n.custody.PayRewards(c.Rewards, caller); err != nil {
			return err
		}
		if err := n.settle(id, collection, caller); err != nil {
			return err
		}
		if err := n.accountService.Claimed(caller); err != nil {
			return err
		}

		metricSettled().AddWithLabel(1, map[string]string{"path": "claim"})
		logger.Info("contract claimed", "id", id, "staker", caller, "block", now)
		n.emit(&Event{Kind: EventClaimed, Contract: &id, Account: caller, Stakes: items, Rewards: c.Rewards})
		return nil
	})
}

// Snipe lets anyone take the reward of a snipeable contract left unclaimed past its
// claim window. The stakes go back to the staker.
func (n *NftStake) Snipe(caller thor.Address, now uint32, id contract.ID) error {
	logger.Debug("snipe", "caller", caller, "id", id, "block", now)

	return n.atomic("snipe", func() error {
		c, collection, err := n.load(id)
		if err != nil {
			return err
		}
		if !c.IsSnipeable {
			return reverts.New(reverts.Unsnipeable, "")
		}
		staker, acceptedAt, err := n.staked(id, collection)
		if err != nil {
			return err
		}
		phase, err := c.PhaseAt(now, &acceptedAt)
		if err != nil {
			return err
		}
		switch phase {
		case contract.Staking:
			return reverts.New(reverts.Staking, "")
		case contract.Claimable:
			return reverts.New(reverts.Claimable, "")
		}

		items, err := n.contractService.StakedItems(id)
		if err != nil {
			return err
		}
		if err := n.custody.ReleaseStakes(items, staker); err != nil {
			return err
		}
		if err := n.custody.PayRewards(c.Rewards, caller); err != nil {
			return err
		}
		if err := n.settle(id, collection, staker); err != nil {
			return err
		}
		if err := n.accountService.Sniped(staker); err != nil {
			return err
		}

		metricSettled().AddWithLabel(1, map[string]string{"path": "snipe"})
		logger.Info("contract sniped", "id", id, "staker", staker, "sniper", caller, "block", now)
		n.emit(&Event{Kind: EventSniped, Contract: &id, Account: caller, Staker: &staker, Stakes: items, Rewards: c.Rewards})
		return nil
	})
}
