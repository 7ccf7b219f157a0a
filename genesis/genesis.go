// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes and applies the initial state of a node.
package genesis

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake"
	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
)

var logger = log.WithContext("pkg", "genesis")

//go:embed genesis.schema.json
var schemaJSON []byte

const schemaURL = "genesis.schema.json"

// Genesis is the initial state of a node.
type Genesis struct {
	Admin              thor.Address  `yaml:"admin" json:"admin"`
	Creator            *thor.Address `yaml:"creator,omitempty" json:"creator,omitempty"`
	Locked             bool          `yaml:"locked,omitempty" json:"locked,omitempty"`
	ContractCollection bool          `yaml:"contractCollection,omitempty" json:"contractCollection,omitempty"`
	Balances           []Balance     `yaml:"balances,omitempty" json:"balances,omitempty"`
	Collections        []Collection  `yaml:"collections,omitempty" json:"collections,omitempty"`
	Config             Config        `yaml:"config,omitempty" json:"config,omitempty"`
}

// Balance is a free balance minted at genesis.
type Balance struct {
	Address thor.Address `yaml:"address" json:"address"`
	Amount  *big.Int     `yaml:"amount" json:"amount"`
}

// Collection is an NFT collection created at genesis, with its items.
type Collection struct {
	Owner     thor.Address  `yaml:"owner" json:"owner"`
	Admin     *thor.Address `yaml:"admin,omitempty" json:"admin,omitempty"`
	MaxSupply uint32        `yaml:"maxSupply,omitempty" json:"maxSupply,omitempty"`
	Items     []Item        `yaml:"items,omitempty" json:"items,omitempty"`
}

// Item is a minted NFT.
type Item struct {
	ID         nft.ItemID   `yaml:"id" json:"id"`
	Owner      thor.Address `yaml:"owner" json:"owner"`
	Attributes []Attribute  `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// Attribute is an item attribute. An empty namespace means system.
type Attribute struct {
	Namespace string        `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Key       hexutil.Bytes `yaml:"key" json:"key"`
	Value     hexutil.Bytes `yaml:"value" json:"value"`
}

// Config overrides the engine constants. Zero keeps the default.
type Config struct {
	MaxClauses     uint32 `yaml:"maxClauses,omitempty" json:"maxClauses,omitempty"`
	MaxRewards     uint32 `yaml:"maxRewards,omitempty" json:"maxRewards,omitempty"`
	MaxStakeAmount uint32 `yaml:"maxStakeAmount,omitempty" json:"maxStakeAmount,omitempty"`
	MaxContracts   uint32 `yaml:"maxContracts,omitempty" json:"maxContracts,omitempty"`
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
}

// Parse validates a YAML (or JSON) genesis document and decodes it.
func Parse(data []byte) (*Genesis, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, errors.Wrap(err, "compile genesis schema")
	}

	// the schema validator expects json values
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := schema.Validate(value); err != nil {
		return nil, errors.Wrap(err, "invalid genesis")
	}

	var gen Genesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// Load reads a genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return Parse(data)
}

func (c Config) overrides() []struct {
	variable *solidity.ConfigVariable
	value    uint32
} {
	return []struct {
		variable *solidity.ConfigVariable
		value    uint32
	}{
		{nftstake.MaxClauses, c.MaxClauses},
		{nftstake.MaxRewards, c.MaxRewards},
		{nftstake.MaxStakeAmount, c.MaxStakeAmount},
		{nftstake.MaxContracts, c.MaxContracts},
	}
}

// Apply writes the genesis into an empty state.
func (g *Genesis) Apply(st *state.State) error {
	// overrides must be in place before the engine is bound
	for _, o := range g.Config.overrides() {
		if o.value == 0 {
			continue
		}
		st.SetStorage(builtin.NftStake.Address, o.variable.Slot(), thor.BytesToBytes32(new(big.Int).SetUint64(uint64(o.value)).Bytes()))
	}

	registry := builtin.NFT.Native(st)
	ledger := builtin.Currency.Native(st)
	engine := builtin.NftStake.Native(st)

	for _, b := range g.Balances {
		if b.Amount == nil || b.Amount.Sign() < 0 {
			return fmt.Errorf("%s: balance must be a non-negative integer", b.Address)
		}
		if err := ledger.Mint(b.Address, b.Amount); err != nil {
			return errors.Wrapf(err, "mint %s", b.Address)
		}
	}

	for i, c := range g.Collections {
		admin := c.Owner
		if c.Admin != nil {
			admin = *c.Admin
		}
		id, err := registry.CreateCollection(c.Owner, admin, nft.CollectionConfig{MaxSupply: c.MaxSupply})
		if err != nil {
			return errors.Wrapf(err, "collection %d", i)
		}
		for _, item := range c.Items {
			if err := registry.MintInto(id, item.ID, item.Owner); err != nil {
				return errors.Wrapf(err, "item %s", nft.NewAddress(id, item.ID))
			}
			for _, a := range item.Attributes {
				switch a.Namespace {
				case "", "system":
					err = registry.SetSystemAttribute(id, item.ID, a.Key, a.Value)
				case "collectionOwner":
					err = registry.SetAttribute(c.Owner, id, item.ID, a.Key, a.Value)
				default:
					err = fmt.Errorf("unknown namespace %q", a.Namespace)
				}
				if err != nil {
					return errors.Wrapf(err, "attribute %s of %s", a.Key, nft.NewAddress(id, item.ID))
				}
			}
		}
		logger.Debug("collection created", "id", id, "owner", c.Owner, "items", len(c.Items))
	}

	if err := engine.Initialize(g.Admin); err != nil {
		return err
	}
	if g.Creator != nil {
		if err := engine.SetCreator(g.Admin, *g.Creator); err != nil {
			return err
		}
	}
	if g.ContractCollection {
		id, err := engine.CreateContractCollection(g.Admin)
		if err != nil {
			return err
		}
		logger.Debug("contract collection created", "id", id)
	}
	if g.Locked {
		if err := engine.SetLockedState(g.Admin, true); err != nil {
			return err
		}
	}
	logger.Info("genesis applied", "admin", g.Admin, "balances", len(g.Balances), "collections", len(g.Collections))
	return nil
}
