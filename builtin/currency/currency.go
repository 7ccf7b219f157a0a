// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package currency implements the native fungible token ledger.
// Every account has a free balance, which can be transferred, and a reserved
// balance, which is held on behalf of another party until repatriated or released.
package currency

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
)

var (
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInsufficientReserved = errors.New("insufficient reserved balance")
	ErrNegativeAmount       = errors.New("negative amount")

	slotAccounts      = thor.BytesToBytes32([]byte("accounts"))
	slotTotalIssuance = thor.BytesToBytes32([]byte("total-issuance"))
)

type account struct {
	Free     *big.Int
	Reserved *big.Int
}

func (a *account) normalize() *account {
	if a.Free == nil {
		a.Free = new(big.Int)
	}
	if a.Reserved == nil {
		a.Reserved = new(big.Int)
	}
	return a
}

func (a *account) IsEmpty() bool {
	return a.Free.Sign() == 0 && a.Reserved.Sign() == 0
}

// Currency implements native methods of `Currency` contract.
type Currency struct {
	accounts      *solidity.Mapping[thor.Address, *account]
	totalIssuance *solidity.Uint256
}

func New(addr thor.Address, state *state.State) *Currency {
	sctx := solidity.NewContext(addr, state)
	return &Currency{
		accounts:      solidity.NewMapping[thor.Address, *account](sctx, slotAccounts),
		totalIssuance: solidity.NewUint256(sctx, slotTotalIssuance),
	}
}

func (c *Currency) getAccount(addr thor.Address) (*account, error) {
	acc, err := c.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "get account")
	}
	return acc.normalize(), nil
}

func (c *Currency) setAccount(addr thor.Address, acc *account) error {
	if acc.IsEmpty() {
		c.accounts.Delete(addr)
		return nil
	}
	if err := c.accounts.Set(addr, acc); err != nil {
		return errors.Wrap(err, "set account")
	}
	return nil
}

// FreeBalance returns the transferable balance of an account.
func (c *Currency) FreeBalance(addr thor.Address) (*big.Int, error) {
	acc, err := c.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Free, nil
}

// ReservedBalance returns the held balance of an account.
func (c *Currency) ReservedBalance(addr thor.Address) (*big.Int, error) {
	acc, err := c.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Reserved, nil
}

// TotalIssuance returns the amount of tokens in existence.
func (c *Currency) TotalIssuance() (*big.Int, error) {
	return c.totalIssuance.Get()
}

// Mint creates new tokens into the free balance of an account.
func (c *Currency) Mint(addr thor.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	acc, err := c.getAccount(addr)
	if err != nil {
		return err
	}
	acc.Free.Add(acc.Free, amount)
	if err := c.setAccount(addr, acc); err != nil {
		return err
	}
	return c.totalIssuance.Add(amount)
}

// Transfer moves free balance between accounts.
func (c *Currency) Transfer(from, to thor.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	src, err := c.getAccount(from)
	if err != nil {
		return err
	}
	if src.Free.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if from == to {
		return nil
	}
	src.Free.Sub(src.Free, amount)
	if err := c.setAccount(from, src); err != nil {
		return err
	}

	dst, err := c.getAccount(to)
	if err != nil {
		return err
	}
	dst.Free.Add(dst.Free, amount)
	return c.setAccount(to, dst)
}

// Reserve moves free balance of an account into its reserved balance.
func (c *Currency) Reserve(addr thor.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	acc, err := c.getAccount(addr)
	if err != nil {
		return err
	}
	if acc.Free.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	acc.Free.Sub(acc.Free, amount)
	acc.Reserved.Add(acc.Reserved, amount)
	return c.setAccount(addr, acc)
}

// RepatriateReserved moves reserved balance of `from` into the free balance of `to`.
func (c *Currency) RepatriateReserved(from, to thor.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	src, err := c.getAccount(from)
	if err != nil {
		return err
	}
	if src.Reserved.Cmp(amount) < 0 {
		return ErrInsufficientReserved
	}
	src.Reserved.Sub(src.Reserved, amount)
	if from == to {
		src.Free.Add(src.Free, amount)
		return c.setAccount(from, src)
	}
	if err := c.setAccount(from, src); err != nil {
		return err
	}

	dst, err := c.getAccount(to)
	if err != nil {
		return err
	}
	dst.Free.Add(dst.Free, amount)
	return c.setAccount(to, dst)
}

// CanSlash returns whether the free balance of an account covers the amount.
func (c *Currency) CanSlash(addr thor.Address, amount *big.Int) (bool, error) {
	acc, err := c.getAccount(addr)
	if err != nil {
		return false, err
	}
	return acc.Free.Cmp(amount) >= 0, nil
}

// SlashReserved destroys reserved balance of an account.
func (c *Currency) SlashReserved(addr thor.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	acc, err := c.getAccount(addr)
	if err != nil {
		return err
	}
	if acc.Reserved.Cmp(amount) < 0 {
		return ErrInsufficientReserved
	}
	acc.Reserved.Sub(acc.Reserved, amount)
	if err := c.setAccount(addr, acc); err != nil {
		return err
	}
	return c.totalIssuance.Sub(amount)
}
