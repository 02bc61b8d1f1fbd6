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

package bank

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x2000000000000000000000000000000000000002")
	bob   = common.HexToAddress("0x3000000000000000000000000000000000000003")
	carol = common.HexToAddress("0x5000000000000000000000000000000000000005")
)

func newBank(t *testing.T) *Bank {
	t.Helper()
	b, err := New()
	require.NoError(t, err)
	require.NoError(t, b.Credit(alice, big.NewInt(1000)))
	return b
}

func TestTransfer(t *testing.T) {
	b := newBank(t)
	ctx := context.Background()

	require.NoError(t, b.Transfer(ctx, alice, bob, big.NewInt(400)))
	assert.Equal(t, "600", b.BalanceOf(alice).String())
	assert.Equal(t, "400", b.BalanceOf(bob).String())

	err := b.Transfer(ctx, bob, alice, big.NewInt(401))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, "400", b.BalanceOf(bob).String())

	assert.ErrorIs(t, b.Transfer(ctx, alice, bob, big.NewInt(-1)), ErrNegativeAmount)
	assert.ErrorIs(t, b.Credit(alice, big.NewInt(-1)), ErrNegativeAmount)
}

func TestBalanceOfReturnsCopy(t *testing.T) {
	b := newBank(t)
	bal := b.BalanceOf(alice)
	bal.SetInt64(0)
	assert.Equal(t, "1000", b.BalanceOf(alice).String())
}

func TestSnapshotRevert(t *testing.T) {
	b := newBank(t)
	ctx := context.Background()

	snap := b.Snapshot()
	require.NoError(t, b.Transfer(ctx, alice, bob, big.NewInt(250)))
	require.NoError(t, b.Transfer(ctx, bob, carol, big.NewInt(50)))
	b.RevertToSnapshot(snap)

	assert.Equal(t, "1000", b.BalanceOf(alice).String())
	assert.Equal(t, 0, b.BalanceOf(bob).Sign())
	assert.Equal(t, 0, b.BalanceOf(carol).Sign())
}

func TestReceiveHookRejectionReverts(t *testing.T) {
	b := newBank(t)
	ctx := context.Background()
	refuse := errors.New("not accepting")

	b.SetReceiveHook(bob, func(ctx context.Context, from common.Address, amount *big.Int) error {
		return refuse
	})
	err := b.Transfer(ctx, alice, bob, big.NewInt(10))
	assert.ErrorIs(t, err, ErrReceiveRejected)
	assert.Equal(t, "1000", b.BalanceOf(alice).String())
	assert.Equal(t, 0, b.BalanceOf(bob).Sign())

	b.SetReceiveHook(bob, nil)
	assert.NoError(t, b.Transfer(ctx, alice, bob, big.NewInt(10)))
}

func TestReceiveHookNestedTransferRevertedWithOuter(t *testing.T) {
	b := newBank(t)
	ctx := context.Background()

	// bob forwards half of what he receives to carol, then fails
	b.SetReceiveHook(bob, func(ctx context.Context, from common.Address, amount *big.Int) error {
		half := new(big.Int).Div(amount, big.NewInt(2))
		if err := b.Transfer(ctx, bob, carol, half); err != nil {
			return err
		}
		return errors.New("late failure")
	})
	err := b.Transfer(ctx, alice, bob, big.NewInt(100))
	require.Error(t, err)
	assert.Equal(t, "1000", b.BalanceOf(alice).String())
	assert.Equal(t, 0, b.BalanceOf(bob).Sign())
	assert.Equal(t, 0, b.BalanceOf(carol).Sign())
}

func TestAccounts(t *testing.T) {
	b := newBank(t)
	require.NoError(t, b.Transfer(context.Background(), alice, bob, big.NewInt(1)))
	b.Finalise()

	accounts := b.Accounts()
	assert.Len(t, accounts, 2)
	assert.Equal(t, "999", accounts[alice].String())
	assert.Equal(t, []common.Address{alice, bob}, b.Addresses())
}

func TestAccountsSkipRevertedRecipients(t *testing.T) {
	b := newBank(t)
	ctx := context.Background()
	b.SetReceiveHook(bob, func(ctx context.Context, from common.Address, amount *big.Int) error {
		return errors.New("refused")
	})
	require.ErrorIs(t, b.Transfer(ctx, alice, bob, big.NewInt(10)), ErrReceiveRejected)

	snap := b.Snapshot()
	require.NoError(t, b.Transfer(ctx, alice, carol, big.NewInt(10)))
	b.RevertToSnapshot(snap)
	b.Finalise()

	accounts := b.Accounts()
	assert.Len(t, accounts, 1)
	assert.Equal(t, "1000", accounts[alice].String())
	assert.Equal(t, []common.Address{alice}, b.Addresses())
}
