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

package soundrise

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/GetomG/soundrise-project/bank"
	"github.com/GetomG/soundrise-project/token"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rejectAll(ctx context.Context, from common.Address, amount *big.Int) error {
	return errors.New("payment refused")
}

// reentrantToken wraps a ledger and calls back into the marketplace from
// inside TransferFrom, the way a malicious token contract would.
type reentrantToken struct {
	*token.Ledger
	reenter func(ctx context.Context) error
	err     error
}

func (r *reentrantToken) TransferFrom(ctx context.Context, spender, from, to common.Address, amount *big.Int) error {
	if r.reenter != nil {
		r.err = r.reenter(ctx)
	}
	return r.Ledger.TransferFrom(ctx, spender, from, to, amount)
}

func TestReentrantPurchaseRejected(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, false)

	var reentryErr error
	e.bank.SetReceiveHook(artist, func(ctx context.Context, from common.Address, amount *big.Int) error {
		// the artist account tries to buy on the buyer's behalf mid-payment
		reentryErr = e.market.PurchaseSong(ctx, buyer, ether(1), id)
		return nil
	})

	require.NoError(t, e.market.PurchaseSong(e.ctx, buyer, ether(1), id))
	assert.ErrorIs(t, reentryErr, ErrReentrantCall)
	assert.True(t, e.market.HasPurchased(id, buyer))
	assert.Equal(t, ether(99).String(), e.bank.BalanceOf(buyer).String())
	assert.Equal(t, ether(101).String(), e.bank.BalanceOf(artist).String())
	assert.Len(t, logsNamed(t, e.market, EventSongPurchased), 1)
}

func TestReentrantPlayFailsWholeOperation(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, false)
	require.NoError(t, e.market.PurchaseSong(e.ctx, buyer, ether(1), id))

	// the receiver propagates the reentrancy failure, which aborts the play
	e.bank.SetReceiveHook(artist, func(ctx context.Context, from common.Address, amount *big.Int) error {
		return e.market.PlaySong(ctx, buyer, ether(1), id)
	})
	err := e.market.PlaySong(e.ctx, buyer, ether(1), id)
	assert.ErrorIs(t, err, ErrReentrantCall)

	song, _ := e.market.Song(id)
	assert.Equal(t, uint64(0), song.PlayCount)
	assert.Equal(t, 0, e.market.Retained().Sign())
	assert.Equal(t, ether(99).String(), e.bank.BalanceOf(buyer).String())
}

func TestReentrantRedeemRejected(t *testing.T) {
	rt := &reentrantToken{}
	e := newEnv(t, func(cfg *Config) {
		rt.Ledger = cfg.Token.(*token.Ledger)
		cfg.Token = rt
	})
	e.register(t)
	id := e.upload(t, true)
	e.fundBuyer(t)

	rt.reenter = func(ctx context.Context) error {
		return e.market.RedeemExclusiveContent(ctx, buyer, id)
	}
	require.NoError(t, e.market.RedeemExclusiveContent(e.ctx, buyer, id))
	assert.ErrorIs(t, rt.err, ErrReentrantCall)
	assert.Equal(t, token.Units(900), e.token.BalanceOf(buyer))
	assert.Len(t, logsNamed(t, e.market, EventExclusiveContentAccessGranted), 1)
}

func TestFlagsCommittedBeforeTransfer(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, false)

	// the purchase record already exists when the artist is paid
	var seen bool
	e.bank.SetReceiveHook(artist, func(ctx context.Context, from common.Address, amount *big.Int) error {
		seen = e.market.HasPurchased(id, buyer)
		return nil
	})
	require.NoError(t, e.market.PurchaseSong(e.ctx, buyer, ether(1), id))
	assert.True(t, seen)
}

func TestOperationsAfterReentrancyStillWork(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, false)
	e.bank.SetReceiveHook(artist, func(ctx context.Context, from common.Address, amount *big.Int) error {
		return e.market.RegisterArtist(ctx, from, "sneaky")
	})
	require.Error(t, e.market.PurchaseSong(e.ctx, buyer, ether(1), id))

	// the lock was released by the failed operation
	e.bank.SetReceiveHook(artist, nil)
	require.NoError(t, e.market.PurchaseSong(e.ctx, buyer, ether(1), id))
	_, ok := e.market.Artist(marketAddr)
	assert.False(t, ok)
}

// within fails the test if fn does not return in time.
func within(t *testing.T, d time.Duration, fn func() error) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-time.After(d):
		t.Fatal("operation did not return")
		return nil
	}
}

func TestReceiverQueriesDuringTransfer(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, false)

	var (
		purchased bool
		canPlay   bool
		count     uint64
	)
	e.bank.SetReceiveHook(artist, func(ctx context.Context, from common.Address, amount *big.Int) error {
		purchased = e.market.HasPurchased(id, buyer)
		canPlay = e.market.CanPlay(id, buyer)
		count = e.market.SongCount()
		return nil
	})
	err := within(t, 2*time.Second, func() error {
		return e.market.PurchaseSong(e.ctx, buyer, ether(1), id)
	})
	require.NoError(t, err)
	assert.True(t, purchased)
	assert.True(t, canPlay)
	assert.Equal(t, id, count)
}

func TestReentrantCallWithFreshContext(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, false)
	require.NoError(t, e.bank.Credit(unauthorized, ether(5)))

	var reentryErr error
	e.bank.SetReceiveHook(artist, func(ctx context.Context, from common.Address, amount *big.Int) error {
		reentryErr = e.market.PurchaseSong(context.Background(), unauthorized, ether(1), id)
		return nil
	})
	err := within(t, 2*time.Second, func() error {
		return e.market.PurchaseSong(e.ctx, buyer, ether(1), id)
	})
	require.NoError(t, err)
	assert.ErrorIs(t, reentryErr, ErrReentrantCall)
	assert.True(t, e.market.HasPurchased(id, buyer))
	assert.False(t, e.market.HasPurchased(id, unauthorized))
	assert.Equal(t, ether(5).String(), e.bank.BalanceOf(unauthorized).String())
}

func TestRejectedReceiverQueryRollsBack(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, false)

	// the receiver sees the pending purchase, then refuses the payment
	var seen bool
	e.bank.SetReceiveHook(artist, func(ctx context.Context, from common.Address, amount *big.Int) error {
		seen = e.market.HasPurchased(id, buyer)
		return errors.New("payment refused")
	})
	err := within(t, 2*time.Second, func() error {
		return e.market.PurchaseSong(e.ctx, buyer, ether(1), id)
	})
	assert.ErrorIs(t, err, bank.ErrReceiveRejected)
	assert.True(t, seen)
	assert.False(t, e.market.HasPurchased(id, buyer))
	assert.Equal(t, ether(100).String(), e.bank.BalanceOf(buyer).String())
}
