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
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Capability is the delegated right to mint on a ledger as a fixed holder
// account. Minting through it only succeeds while holder owns the ledger.
type Capability struct {
	ledger *Ledger
	holder common.Address
}

// MintCapability returns a capability that mints on l as holder.
func MintCapability(l *Ledger, holder common.Address) *Capability {
	return &Capability{ledger: l, holder: holder}
}

// Holder returns the account the capability mints as.
func (c *Capability) Holder() common.Address { return c.holder }

// Active reports whether the holder currently owns the ledger.
func (c *Capability) Active() bool { return c.ledger.Owner() == c.holder }

// Mint creates amount tokens for to.
func (c *Capability) Mint(ctx context.Context, to common.Address, amount *big.Int) error {
	return c.ledger.Mint(c.holder, to, amount)
}
