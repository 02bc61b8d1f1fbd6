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

// Package bank holds native-currency balances. Balances live in a go-ethereum
// StateDB over an in-memory database, which gives nested snapshots and exact
// reverts for free.
package bank

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/log"
)

var (
	ErrInsufficientFunds = errors.New("bank: insufficient funds")
	ErrNegativeAmount    = errors.New("bank: amount cannot be negative")
	ErrReceiveRejected   = errors.New("bank: receiver rejected transfer")
)

// ReceiveHook runs when an account receives a transfer. It models an account
// with code: the hook may call back into whatever initiated the transfer, and
// a non-nil error reverts the transfer.
type ReceiveHook func(ctx context.Context, from common.Address, amount *big.Int) error

// Bank is the native-currency ledger. It is not safe for concurrent use.
type Bank struct {
	state *state.StateDB
	hooks map[common.Address]ReceiveHook
	known map[common.Address]struct{}
}

// New creates an empty ledger.
func New() (*Bank, error) {
	statedb, err := state.New(common.Hash{}, state.NewDatabase(rawdb.NewMemoryDatabase()), nil)
	if err != nil {
		return nil, fmt.Errorf("bank: open state: %v", err)
	}
	return &Bank{
		state: statedb,
		hooks: make(map[common.Address]ReceiveHook),
		known: make(map[common.Address]struct{}),
	}, nil
}

// Credit adds amount to account out of thin air. It is used for genesis
// allocations and restores.
func (b *Bank) Credit(account common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	b.state.AddBalance(account, amount)
	b.known[account] = struct{}{}
	return nil
}

// BalanceOf returns the balance of account.
func (b *Bank) BalanceOf(account common.Address) *big.Int {
	return new(big.Int).Set(b.state.GetBalance(account))
}

// SetReceiveHook installs hook for account. A nil hook removes it.
func (b *Bank) SetReceiveHook(account common.Address, hook ReceiveHook) {
	if hook == nil {
		delete(b.hooks, account)
		return
	}
	b.hooks[account] = hook
}

// Transfer moves amount from from to to and runs the receiver's hook, if any.
// The transfer is undone when the hook fails.
func (b *Bank) Transfer(ctx context.Context, from, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if bal := b.state.GetBalance(from); bal.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientFunds, from.Hex(), bal, amount)
	}
	snap := b.state.Snapshot()
	b.state.SubBalance(from, amount)
	b.state.AddBalance(to, amount)

	if hook, ok := b.hooks[to]; ok {
		if err := hook(ctx, from, amount); err != nil {
			b.state.RevertToSnapshot(snap)
			log.Debug("Transfer rejected by receiver", "from", from.Hex(), "to", to.Hex(), "err", err)
			return fmt.Errorf("%w: %w", ErrReceiveRejected, err)
		}
	}
	b.known[to] = struct{}{}
	return nil
}

// Snapshot returns an identifier for the current balances.
func (b *Bank) Snapshot() int { return b.state.Snapshot() }

// RevertToSnapshot discards every change made since the snapshot was taken.
func (b *Bank) RevertToSnapshot(id int) { b.state.RevertToSnapshot(id) }

// Finalise folds pending changes into the state and drops the revert journal.
// Snapshot identifiers taken before the call become invalid.
func (b *Bank) Finalise() { b.state.Finalise(false) }

// Accounts returns every account with a non-zero balance. Accounts whose
// funds were reverted away are left out.
func (b *Bank) Accounts() map[common.Address]*big.Int {
	out := make(map[common.Address]*big.Int, len(b.known))
	for account := range b.known {
		if bal := b.BalanceOf(account); bal.Sign() > 0 {
			out[account] = bal
		}
	}
	return out
}

// Addresses returns the accounts with a non-zero balance in ascending order.
func (b *Bank) Addresses() []common.Address {
	out := make([]common.Address, 0, len(b.known))
	for account := range b.known {
		if b.state.GetBalance(account).Sign() > 0 {
			out = append(out, account)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hex() < out[j].Hex() })
	return out
}
