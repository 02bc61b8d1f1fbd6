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

// Package token implements the SoundRise reward token (SRT): an ERC-20 style
// balance and allowance store whose supply can only be increased by its owner.
// The marketplace consumes it through allowance-based transfers and a minting
// capability handed over at configuration time.
package token

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// Token metadata.
const (
	Name     = "SoundRise Token"
	Symbol   = "SRT"
	Decimals = 18
)

// unit is one whole SRT expressed in the smallest denomination.
var unit = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// Errors returned by ledger operations.
var (
	ErrUnauthorizedAccount   = errors.New("token: unauthorized account")
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
	ErrInvalidReceiver       = errors.New("token: invalid receiver")
	ErrInvalidOwner          = errors.New("token: invalid owner")
	ErrInvalidAmount         = errors.New("token: amount cannot be negative")
)

// Units converts a whole-token amount into the ledger's smallest unit.
func Units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), unit)
}

// Ledger is the SRT balance table. It is not safe for concurrent use; the
// node serialises every access.
type Ledger struct {
	owner      common.Address
	supply     *big.Int
	balances   map[common.Address]*big.Int
	allowances map[common.Address]map[common.Address]*big.Int
}

// New creates a ledger owned by owner and mints initialSupply (in the smallest
// unit) to it.
func New(owner common.Address, initialSupply *big.Int) (*Ledger, error) {
	if owner == (common.Address{}) {
		return nil, ErrInvalidOwner
	}
	l := &Ledger{
		owner:      owner,
		supply:     new(big.Int),
		balances:   make(map[common.Address]*big.Int),
		allowances: make(map[common.Address]map[common.Address]*big.Int),
	}
	if initialSupply != nil && initialSupply.Sign() > 0 {
		l.credit(owner, initialSupply)
		l.supply.Add(l.supply, initialSupply)
	}
	return l, nil
}

// Owner returns the account currently holding the minting role.
func (l *Ledger) Owner() common.Address { return l.owner }

// TotalSupply returns the number of tokens in existence.
func (l *Ledger) TotalSupply() *big.Int { return new(big.Int).Set(l.supply) }

// BalanceOf returns the token balance of account.
func (l *Ledger) BalanceOf(account common.Address) *big.Int {
	if bal, ok := l.balances[account]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

// Allowance returns how much spender may still move out of owner's balance.
func (l *Ledger) Allowance(owner, spender common.Address) *big.Int {
	if amount, ok := l.allowances[owner][spender]; ok {
		return new(big.Int).Set(amount)
	}
	return new(big.Int)
}

// Transfer moves amount from the caller to to.
func (l *Ledger) Transfer(ctx context.Context, caller, to common.Address, amount *big.Int) error {
	return l.move(caller, to, amount)
}

// Approve sets the allowance of spender over the caller's tokens, replacing
// any previous value.
func (l *Ledger) Approve(ctx context.Context, caller, spender common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if spender == (common.Address{}) {
		return fmt.Errorf("token: invalid spender %s", spender.Hex())
	}
	if l.allowances[caller] == nil {
		l.allowances[caller] = make(map[common.Address]*big.Int)
	}
	l.allowances[caller][spender] = new(big.Int).Set(amount)
	log.Debug("Token allowance set", "owner", caller.Hex(), "spender", spender.Hex(), "amount", amount)
	return nil
}

// TransferFrom moves amount from from to to on behalf of spender, consuming
// spender's allowance. The allowance is checked before the balance.
func (l *Ledger) TransferFrom(ctx context.Context, spender, from, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	allowed := l.Allowance(from, spender)
	if allowed.Cmp(amount) < 0 {
		return fmt.Errorf("%w: spender %s has %s, needs %s", ErrInsufficientAllowance, spender.Hex(), allowed, amount)
	}
	if err := l.move(from, to, amount); err != nil {
		return err
	}
	l.allowances[from][spender] = allowed.Sub(allowed, amount)
	return nil
}

// Mint creates amount new tokens for to. Only the owner may mint.
func (l *Ledger) Mint(caller, to common.Address, amount *big.Int) error {
	if caller != l.owner {
		return fmt.Errorf("%w: %s", ErrUnauthorizedAccount, caller.Hex())
	}
	if to == (common.Address{}) {
		return ErrInvalidReceiver
	}
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	l.credit(to, amount)
	l.supply.Add(l.supply, amount)
	log.Debug("Tokens minted", "to", to.Hex(), "amount", amount, "supply", l.supply)
	return nil
}

// TransferOwnership hands the minting role to newOwner. Only the current
// owner may call it.
func (l *Ledger) TransferOwnership(caller, newOwner common.Address) error {
	if caller != l.owner {
		return fmt.Errorf("%w: %s", ErrUnauthorizedAccount, caller.Hex())
	}
	if newOwner == (common.Address{}) {
		return ErrInvalidOwner
	}
	log.Info("Token ownership transferred", "from", l.owner.Hex(), "to", newOwner.Hex())
	l.owner = newOwner
	return nil
}

func (l *Ledger) move(from, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if to == (common.Address{}) {
		return ErrInvalidReceiver
	}
	bal := l.BalanceOf(from)
	if bal.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, from.Hex(), bal, amount)
	}
	l.balances[from] = bal.Sub(bal, amount)
	l.credit(to, amount)
	return nil
}

func (l *Ledger) credit(account common.Address, amount *big.Int) {
	bal, ok := l.balances[account]
	if !ok {
		bal = new(big.Int)
		l.balances[account] = bal
	}
	bal.Add(bal, amount)
}
