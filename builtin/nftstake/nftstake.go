// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nftstake

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake/accounts"
	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/builtin/nftstake/custody"
	"github.com/vechain/nftstake/builtin/nftstake/reverts"
	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
)

var (
	logger = log.WithContext("pkg", "nftstake")

	MaxClauses     = solidity.NewConfigVariable("nftstake-max-clauses", 10)
	MaxRewards     = solidity.NewConfigVariable("nftstake-max-rewards", 10)
	MaxStakeAmount = solidity.NewConfigVariable("nftstake-max-stake-amount", 10)
	MaxContracts   = solidity.NewConfigVariable("nftstake-max-contracts", 100)

	slotAdmin              = thor.BytesToBytes32([]byte("admin"))
	slotCreator            = thor.BytesToBytes32([]byte("creator"))
	slotContractCollection = thor.BytesToBytes32([]byte("contract-collection"))
	slotCollectionSet      = thor.BytesToBytes32([]byte("contract-collection-set"))
	slotLocked             = thor.BytesToBytes32([]byte("locked"))
)

func SetLogger(l log.Logger) {
	logger = l
}

// Registry is the NFT registry consumed by the engine.
type Registry interface {
	custody.Registry
	CreateCollection(owner, admin thor.Address, config nft.CollectionConfig) (nft.CollectionID, error)
	SystemAttribute(collection nft.CollectionID, item nft.ItemID, key []byte) ([]byte, bool, error)
	Attribute(collection nft.CollectionID, item nft.ItemID, key []byte) ([]byte, bool, error)
}

// Ledger is the currency ledger consumed by the engine.
type Ledger interface {
	custody.Ledger
}

// ReserveAccount returns the custody account of the engine deployed at addr.
// No key controls it.
func ReserveAccount(addr thor.Address) thor.Address {
	return thor.DeriveAddress(addr, "reserve")
}

// NftStake implements native methods of `NftStake` contract.
type NftStake struct {
	state    *state.State
	registry Registry

	contractService *contract.Service
	accountService  *accounts.Service
	custody         *custody.Manager

	admin              *solidity.Address
	creator            *solidity.Address
	contractCollection *solidity.Uint256
	collectionSet      *solidity.Bool
	locked             *solidity.Bool

	events []*Event
}

// New create a new instance.
func New(addr thor.Address, state *state.State, registry Registry, ledger Ledger) *NftStake {
	sctx := solidity.NewContext(addr, state)

	// debug overrides for testing
	MaxClauses.Override(sctx)
	MaxRewards.Override(sctx)
	MaxStakeAmount.Override(sctx)
	MaxContracts.Override(sctx)

	return &NftStake{
		state:    state,
		registry: registry,

		contractService: contract.New(sctx),
		accountService:  accounts.New(sctx),
		custody:         custody.New(registry, ledger, ReserveAccount(addr)),

		admin:              solidity.NewAddress(sctx, slotAdmin),
		creator:            solidity.NewAddress(sctx, slotCreator),
		contractCollection: solidity.NewUint256(sctx, slotContractCollection),
		collectionSet:      solidity.NewBool(sctx, slotCollectionSet),
		locked:             solidity.NewBool(sctx, slotLocked),
	}
}

func limits() contract.Limits {
	return contract.Limits{
		MaxClauses:     MaxClauses.Get(),
		MaxRewards:     MaxRewards.Get(),
		MaxStakeAmount: MaxStakeAmount.Get(),
	}
}

// Events returns the events emitted by successful calls since the last call to Events.
func (n *NftStake) Events() []*Event {
	events := n.events
	n.events = nil
	return events
}

func (n *NftStake) emit(ev *Event) {
	n.events = append(n.events, ev)
}

// atomic runs fn on a state checkpoint, which is reverted when fn fails.
func (n *NftStake) atomic(op string, fn func() error) error {
	revision := n.state.NewCheckpoint()
	pending := len(n.events)
	if err := fn(); err != nil {
		n.state.RevertTo(revision)
		n.events = n.events[:pending]
		result := "error"
		if reverts.IsRevertErr(err) {
			result = string(reverts.KindOf(err))
		}
		metricCalls().AddWithLabel(1, map[string]string{"op": op, "result": result})
		logger.Info("call failed", "op", op, "error", err)
		return err
	}
	metricCalls().AddWithLabel(1, map[string]string{"op": op, "result": "ok"})
	return nil
}

//
// Getters - no state change
//

// Admin returns the account allowed to change the configuration.
func (n *NftStake) Admin() (thor.Address, error) {
	return n.admin.Get()
}

// Creator returns the designated contract creator, false if unset.
func (n *NftStake) Creator() (thor.Address, bool, error) {
	creator, err := n.creator.Get()
	if err != nil {
		return thor.Address{}, false, err
	}
	return creator, !creator.IsZero(), nil
}

// ContractCollectionID returns the certificate collection, false if unset.
func (n *NftStake) ContractCollectionID() (nft.CollectionID, bool, error) {
	set, err := n.collectionSet.Get()
	if err != nil || !set {
		return 0, false, err
	}
	id, err := n.contractCollection.Get()
	if err != nil {
		return 0, false, err
	}
	return nft.CollectionID(id.Uint64()), true, nil
}

func (n *NftStake) IsLocked() (bool, error) {
	return n.locked.Get()
}

// Contract returns a contract definition, nil if unknown.
func (n *NftStake) Contract(id contract.ID) (*contract.Contract, error) {
	return n.contractService.Get(id)
}

// ContractCount returns the number of contracts ever created.
func (n *NftStake) ContractCount() (uint32, error) {
	return n.contractService.Count()
}

// AcceptedAt returns the acceptance block, nil unless the contract is staked.
func (n *NftStake) AcceptedAt(id contract.ID) (*uint32, error) {
	return n.contractService.AcceptedAt(id)
}

// StakedItems returns the NFTs locked by an accepted contract.
func (n *NftStake) StakedItems(id contract.ID) ([]nft.Address, error) {
	return n.contractService.StakedItems(id)
}

// Holder returns the current certificate holder, false once the contract is settled.
func (n *NftStake) Holder(id contract.ID) (thor.Address, bool, error) {
	collection, ok, err := n.ContractCollectionID()
	if err != nil || !ok {
		return thor.Address{}, false, err
	}
	return n.custody.Certificate(collection, id)
}

// Phase returns the phase of a contract at block now.
func (n *NftStake) Phase(id contract.ID, now uint32) (contract.Phase, error) {
	c, err := n.contractService.Get(id)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, reverts.New(reverts.UnknownContract, "")
	}
	_, ok, err := n.Holder(id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return contract.Settled, nil
	}
	acceptedAt, err := n.contractService.AcceptedAt(id)
	if err != nil {
		return 0, err
	}
	return c.PhaseAt(now, acceptedAt)
}

// AccountContracts returns the contracts an account currently stakes in.
func (n *NftStake) AccountContracts(addr thor.Address) ([]contract.ID, error) {
	return n.accountService.Contracts(addr)
}

func (n *NftStake) Stats(addr thor.Address) (*accounts.Stats, error) {
	return n.accountService.Stats(addr)
}

// Reserve returns the custody account.
func (n *NftStake) Reserve() thor.Address {
	return n.custody.Reserve()
}

//
// Admin - configuration changes
//

// Initialize sets the admin account. It can only be called once, at genesis.
func (n *NftStake) Initialize(admin thor.Address) error {
	current, err := n.admin.Get()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return errors.New("admin already initialized")
	}
	if admin.IsZero() {
		return errors.New("zero admin")
	}
	n.admin.Set(&admin)
	return nil
}

func (n *NftStake) ensureAdmin(origin thor.Address) error {
	admin, err := n.admin.Get()
	if err != nil {
		return err
	}
	if admin.IsZero() || origin != admin {
		return reverts.New(reverts.BadOrigin, origin.String())
	}
	return nil
}

// SetCreator designates the account allowed to create contracts.
func (n *NftStake) SetCreator(origin, creator thor.Address) error {
	return n.atomic("setCreator", func() error {
		if err := n.ensureAdmin(origin); err != nil {
			return err
		}
		n.creator.Set(&creator)
		logger.Info("creator set", "creator", creator)
		n.emit(&Event{Kind: EventCreatorSet, Account: creator})
		return nil
	})
}

// SetContractCollectionID points the engine at an existing certificate collection.
func (n *NftStake) SetContractCollectionID(origin thor.Address, collection nft.CollectionID) error {
	return n.atomic("setContractCollectionID", func() error {
		if err := n.ensureAdmin(origin); err != nil {
			return err
		}
		n.setContractCollection(collection)
		n.emit(&Event{Kind: EventContractCollectionSet, Account: origin, Collection: &collection})
		return nil
	})
}

func (n *NftStake) setContractCollection(collection nft.CollectionID) {
	n.contractCollection.Set(new(big.Int).SetUint64(uint64(collection)))
	n.collectionSet.Set(true)
	logger.Info("contract collection set", "collection", collection)
}

// CreateContractCollection creates a certificate collection owned by the reserve account and selects it.
func (n *NftStake) CreateContractCollection(origin thor.Address) (nft.CollectionID, error) {
	var collection nft.CollectionID
	err := n.atomic("createContractCollection", func() error {
		if err := n.ensureAdmin(origin); err != nil {
			return err
		}
		var err error
		collection, err = n.registry.CreateCollection(n.Reserve(), n.Reserve(), nft.CollectionConfig{})
		if err != nil {
			return errors.Wrap(err, "create contract collection")
		}
		n.setContractCollection(collection)
		n.emit(&Event{Kind: EventContractCollectionSet, Account: origin, Collection: &collection})
		return nil
	})
	return collection, err
}

// SetLockedState pauses or resumes every contract operation.
func (n *NftStake) SetLockedState(origin thor.Address, locked bool) error {
	return n.atomic("setLockedState", func() error {
		if err := n.ensureAdmin(origin); err != nil {
			return err
		}
		n.locked.Set(locked)
		logger.Info("locked state set", "locked", locked)
		n.emit(&Event{Kind: EventLockedStateSet, Account: origin, Locked: &locked})
		return nil
	})
}
