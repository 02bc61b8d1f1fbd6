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

package token

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Allowance is a single (owner, spender) approval.
type Allowance struct {
	Owner   common.Address `json:"owner"`
	Spender common.Address `json:"spender"`
	Amount  *big.Int       `json:"amount"`
}

// State is a point-in-time copy of the ledger used for persistence.
type State struct {
	Owner      common.Address              `json:"owner"`
	Supply     *big.Int                    `json:"supply"`
	Balances   map[common.Address]*big.Int `json:"balances"`
	Allowances []Allowance                 `json:"allowances"`
}

// Export copies the ledger contents. Zero balances and allowances are skipped.
func (l *Ledger) Export() *State {
	st := &State{
		Owner:    l.owner,
		Supply:   new(big.Int).Set(l.supply),
		Balances: make(map[common.Address]*big.Int, len(l.balances)),
	}
	for account, bal := range l.balances {
		if bal.Sign() > 0 {
			st.Balances[account] = new(big.Int).Set(bal)
		}
	}
	for owner, spenders := range l.allowances {
		for spender, amount := range spenders {
			if amount.Sign() > 0 {
				st.Allowances = append(st.Allowances, Allowance{Owner: owner, Spender: spender, Amount: new(big.Int).Set(amount)})
			}
		}
	}
	return st
}

// Restore rebuilds a ledger from an exported state.
func Restore(st *State) (*Ledger, error) {
	if st == nil {
		return nil, errors.New("token: nil state")
	}
	l, err := New(st.Owner, nil)
	if err != nil {
		return nil, err
	}
	l.load(st)
	return l, nil
}

// Reset replaces the ledger contents with an exported state in place.
func (l *Ledger) Reset(st *State) error {
	if st == nil {
		return errors.New("token: nil state")
	}
	if st.Owner == (common.Address{}) {
		return ErrInvalidOwner
	}
	l.owner = st.Owner
	l.supply = new(big.Int)
	l.balances = make(map[common.Address]*big.Int)
	l.allowances = make(map[common.Address]map[common.Address]*big.Int)
	l.load(st)
	return nil
}

func (l *Ledger) load(st *State) {
	if st.Supply != nil {
		l.supply.Set(st.Supply)
	}
	for account, bal := range st.Balances {
		l.credit(account, bal)
	}
	for _, a := range st.Allowances {
		if l.allowances[a.Owner] == nil {
			l.allowances[a.Owner] = make(map[common.Address]*big.Int)
		}
		l.allowances[a.Owner][a.Spender] = new(big.Int).Set(a.Amount)
	}
}
