// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package soundtoken provides Go bindings for the SoundToken (SRT) contract,
// the ERC-20 reward token whose minting role is held by SoundRise.
package soundtoken

import (
	"errors"
	"math/big"
	"strings"

	"github.com/GetomG/soundrise-project/contracts/soundtoken/contract"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrNoTransactor is returned by write methods of a read-only binding.
var ErrNoTransactor = errors.New("soundtoken: binding has no transaction options")

// SoundToken is a high-level wrapper around the on-chain SoundToken contract.
type SoundToken struct {
	abi          abi.ABI
	address      common.Address
	contract     *bind.BoundContract
	transactOpts *bind.TransactOpts
}

// NewSoundToken connects to an already-deployed SoundToken contract. A nil
// opts yields a read-only binding.
func NewSoundToken(opts *bind.TransactOpts, addr common.Address, backend bind.ContractBackend) (*SoundToken, error) {
	parsed, err := abi.JSON(strings.NewReader(contract.SoundTokenABI))
	if err != nil {
		return nil, err
	}
	return &SoundToken{
		abi:          parsed,
		address:      addr,
		contract:     bind.NewBoundContract(addr, parsed, backend, backend, backend),
		transactOpts: opts,
	}, nil
}

// Address returns the contract address the binding targets.
func (t *SoundToken) Address() common.Address { return t.address }

func (t *SoundToken) transact(method string, params ...interface{}) (*types.Transaction, error) {
	if t.transactOpts == nil {
		return nil, ErrNoTransactor
	}
	return t.contract.Transact(t.transactOpts, method, params...)
}

func (t *SoundToken) callBig(method string, params ...interface{}) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{}, &out, method, params...); err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Transfer moves value tokens from the sender to to.
func (t *SoundToken) Transfer(to common.Address, value *big.Int) (*types.Transaction, error) {
	return t.transact("transfer", to, value)
}

// Approve lets spender move up to value of the sender's tokens.
func (t *SoundToken) Approve(spender common.Address, value *big.Int) (*types.Transaction, error) {
	return t.transact("approve", spender, value)
}

// TransferFrom moves value tokens from from to to using the sender's allowance.
func (t *SoundToken) TransferFrom(from, to common.Address, value *big.Int) (*types.Transaction, error) {
	return t.transact("transferFrom", from, to, value)
}

// Mint creates new tokens (owner-only).
func (t *SoundToken) Mint(to common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.transact("mint", to, amount)
}

// TransferOwnership hands the minting role to newOwner (owner-only).
func (t *SoundToken) TransferOwnership(newOwner common.Address) (*types.Transaction, error) {
	return t.transact("transferOwnership", newOwner)
}

// BalanceOf returns the token balance of account.
func (t *SoundToken) BalanceOf(account common.Address) (*big.Int, error) {
	return t.callBig("balanceOf", account)
}

// TotalSupply returns the number of tokens in existence.
func (t *SoundToken) TotalSupply() (*big.Int, error) {
	return t.callBig("totalSupply")
}

// Allowance returns how much spender may still move out of owner's balance.
func (t *SoundToken) Allowance(owner, spender common.Address) (*big.Int, error) {
	return t.callBig("allowance", owner, spender)
}

// Owner returns the account holding the minting role.
func (t *SoundToken) Owner() (common.Address, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{}, &out, "owner"); err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}
