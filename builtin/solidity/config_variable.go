// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"sync"

	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/thor"
)

var logger = log.WithContext("pkg", "solidity")

// ConfigVariable is an engine limit with a default value. A non-zero uint32 stored
// at its slot replaces the default, read once per process. It is safe for concurrent use.
type ConfigVariable struct {
	mu     sync.Mutex
	name   string
	slot   thor.Bytes32
	value  uint32
	loaded bool
}

func NewConfigVariable(name string, defaultValue uint32) *ConfigVariable {
	return &ConfigVariable{
		name:  name,
		slot:  thor.BytesToBytes32([]byte(name)),
		value: defaultValue,
	}
}

func (c *ConfigVariable) Get() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *ConfigVariable) Name() string       { return c.name }
func (c *ConfigVariable) Slot() thor.Bytes32 { return c.slot }

// Override loads the stored value of the contract bound to ctx. Only the first
// successful read counts.
func (c *ConfigVariable) Override(ctx *Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return
	}
	word, err := ctx.state.GetStorage(ctx.address, c.slot)
	if err != nil {
		logger.Warn("failed to read config value", "name", c.name, "err", err)
		return
	}
	c.loaded = true

	stored := new(big.Int).SetBytes(word.Bytes())
	if stored.Sign() == 0 || !stored.IsUint64() || stored.Uint64() > uint64(^uint32(0)) {
		logger.Debug("using default config value", "name", c.name, "value", c.value)
		return
	}
	c.value = uint32(stored.Uint64())
	logger.Debug("config value overridden", "name", c.name, "value", c.value)
}
