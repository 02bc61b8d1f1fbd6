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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner   = common.HexToAddress("0x1000000000000000000000000000000000000001")
	alice   = common.HexToAddress("0x2000000000000000000000000000000000000002")
	bob     = common.HexToAddress("0x3000000000000000000000000000000000000003")
	spender = common.HexToAddress("0x4000000000000000000000000000000000000004")
)

func newLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New(owner, Units(1000000))
	require.NoError(t, err)
	return l
}

func TestInitialSupply(t *testing.T) {
	l := newLedger(t)
	assert.Equal(t, Units(1000000), l.TotalSupply())
	assert.Equal(t, Units(1000000), l.BalanceOf(owner))
	assert.Equal(t, 0, l.BalanceOf(alice).Sign())
	assert.Equal(t, "1000000000000000000", Units(1).String())
}

func TestNewRejectsZeroOwner(t *testing.T) {
	_, err := New(common.Address{}, Units(1))
	assert.ErrorIs(t, err, ErrInvalidOwner)
}

func TestTransfer(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Transfer(ctx, owner, alice, Units(1000)))
	assert.Equal(t, Units(1000), l.BalanceOf(alice))
	assert.Equal(t, Units(999000), l.BalanceOf(owner))

	err := l.Transfer(ctx, alice, bob, Units(1001))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, Units(1000), l.BalanceOf(alice))

	assert.ErrorIs(t, l.Transfer(ctx, alice, common.Address{}, Units(1)), ErrInvalidReceiver)
	assert.ErrorIs(t, l.Transfer(ctx, alice, bob, big.NewInt(-1)), ErrInvalidAmount)
}

func TestTransferFromConsumesAllowance(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	require.NoError(t, l.Transfer(ctx, owner, alice, Units(1000)))

	err := l.TransferFrom(ctx, spender, alice, bob, Units(100))
	assert.ErrorIs(t, err, ErrInsufficientAllowance)

	require.NoError(t, l.Approve(ctx, alice, spender, Units(150)))
	require.NoError(t, l.TransferFrom(ctx, spender, alice, bob, Units(100)))
	assert.Equal(t, Units(900), l.BalanceOf(alice))
	assert.Equal(t, Units(100), l.BalanceOf(bob))
	assert.Equal(t, Units(50), l.Allowance(alice, spender))

	err = l.TransferFrom(ctx, spender, alice, bob, Units(100))
	assert.ErrorIs(t, err, ErrInsufficientAllowance)
	assert.Equal(t, Units(50), l.Allowance(alice, spender))
}

func TestTransferFromInsufficientBalanceKeepsAllowance(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	require.NoError(t, l.Transfer(ctx, owner, alice, Units(10)))
	require.NoError(t, l.Approve(ctx, alice, spender, Units(100)))

	err := l.TransferFrom(ctx, spender, alice, bob, Units(50))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, Units(100), l.Allowance(alice, spender))
	assert.Equal(t, Units(10), l.BalanceOf(alice))
}

func TestMintRestrictedToOwner(t *testing.T) {
	l := newLedger(t)

	err := l.Mint(alice, bob, Units(10))
	assert.ErrorIs(t, err, ErrUnauthorizedAccount)
	assert.Equal(t, 0, l.BalanceOf(bob).Sign())

	require.NoError(t, l.Mint(owner, bob, Units(10)))
	assert.Equal(t, Units(10), l.BalanceOf(bob))
	assert.Equal(t, Units(1000010), l.TotalSupply())
}

func TestTransferOwnership(t *testing.T) {
	l := newLedger(t)

	assert.ErrorIs(t, l.TransferOwnership(alice, alice), ErrUnauthorizedAccount)
	assert.ErrorIs(t, l.TransferOwnership(owner, common.Address{}), ErrInvalidOwner)

	require.NoError(t, l.TransferOwnership(owner, spender))
	assert.Equal(t, spender, l.Owner())
	assert.ErrorIs(t, l.Mint(owner, bob, Units(1)), ErrUnauthorizedAccount)
	assert.NoError(t, l.Mint(spender, bob, Units(1)))
}

func TestMintCapability(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	capability := MintCapability(l, spender)

	assert.False(t, capability.Active())
	assert.ErrorIs(t, capability.Mint(ctx, alice, Units(5)), ErrUnauthorizedAccount)

	require.NoError(t, l.TransferOwnership(owner, spender))
	assert.True(t, capability.Active())
	require.NoError(t, capability.Mint(ctx, alice, Units(5)))
	assert.Equal(t, Units(5), l.BalanceOf(alice))
}

func TestExportRestore(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	require.NoError(t, l.Transfer(ctx, owner, alice, Units(1000)))
	require.NoError(t, l.Approve(ctx, alice, spender, Units(300)))
	require.NoError(t, l.TransferOwnership(owner, spender))

	restored, err := Restore(l.Export())
	require.NoError(t, err)
	assert.Equal(t, spender, restored.Owner())
	assert.Equal(t, l.TotalSupply(), restored.TotalSupply())
	assert.Equal(t, Units(1000), restored.BalanceOf(alice))
	assert.Equal(t, Units(999000), restored.BalanceOf(owner))
	assert.Equal(t, Units(300), restored.Allowance(alice, spender))
}

func TestResetInPlace(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	require.NoError(t, l.Transfer(ctx, owner, alice, Units(1000)))
	st := l.Export()

	require.NoError(t, l.Transfer(ctx, alice, bob, Units(400)))
	require.NoError(t, l.Approve(ctx, alice, spender, Units(300)))
	require.NoError(t, l.Mint(owner, bob, Units(5)))
	require.NoError(t, l.TransferOwnership(owner, spender))

	require.NoError(t, l.Reset(st))
	assert.Equal(t, owner, l.Owner())
	assert.Equal(t, Units(1000), l.BalanceOf(alice))
	assert.Equal(t, 0, l.BalanceOf(bob).Sign())
	assert.Equal(t, 0, l.Allowance(alice, spender).Sign())
	assert.Equal(t, st.Supply.String(), l.TotalSupply().String())

	assert.Error(t, l.Reset(nil))
}
