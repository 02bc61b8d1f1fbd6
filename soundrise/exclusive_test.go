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
	"testing"

	"github.com/GetomG/soundrise-project/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fundBuyer gives buyer 1000 SRT and approves the marketplace for all of it.
func (e *env) fundBuyer(t *testing.T) {
	t.Helper()
	require.NoError(t, e.token.Transfer(e.ctx, deployer, buyer, token.Units(1000)))
	require.NoError(t, e.token.Approve(e.ctx, buyer, marketAddr, token.Units(1000)))
}

func TestRedeemExclusiveContent(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, true)
	e.fundBuyer(t)

	require.NoError(t, e.market.RedeemExclusiveContent(e.ctx, buyer, id))
	assert.Equal(t, token.Units(900), e.token.BalanceOf(buyer))
	assert.Equal(t, token.Units(100), e.token.BalanceOf(artist))
	assert.Equal(t, token.Units(900), e.token.Allowance(buyer, marketAddr))
	assert.True(t, e.market.HasExclusiveAccess(id, buyer))
	assert.False(t, e.market.HasPurchased(id, buyer))
	assert.True(t, e.market.CanPlay(id, buyer))

	err := e.market.RedeemExclusiveContent(e.ctx, buyer, id)
	assert.ErrorIs(t, err, ErrAlreadyUnlocked)
	assert.Equal(t, token.Units(900), e.token.BalanceOf(buyer))
}

func TestRedeemedSongCanBePlayed(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, true)
	e.fundBuyer(t)
	require.NoError(t, e.market.RedeemExclusiveContent(e.ctx, buyer, id))

	require.NoError(t, e.market.PlaySong(e.ctx, buyer, ether(1), id))
	song, _ := e.market.Song(id)
	assert.Equal(t, uint64(1), song.PlayCount)
}

func TestRedeemInsufficientBalance(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, true)
	e.fundBuyer(t)
	require.NoError(t, e.token.Transfer(e.ctx, buyer, unauthorized, token.Units(950)))

	err := e.market.RedeemExclusiveContent(e.ctx, buyer, id)
	assert.ErrorIs(t, err, ErrInsufficientTokenBalance)
	assert.Equal(t, InsufficientValue, KindOf(err))
	assert.Equal(t, token.Units(50), e.token.BalanceOf(buyer))
	assert.False(t, e.market.HasExclusiveAccess(id, buyer))
}

func TestRedeemWithoutAllowance(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, true)
	require.NoError(t, e.token.Transfer(e.ctx, deployer, buyer, token.Units(1000)))

	err := e.market.RedeemExclusiveContent(e.ctx, buyer, id)
	assert.ErrorIs(t, err, token.ErrInsufficientAllowance)
	assert.Equal(t, InsufficientValue, KindOf(err))
	assert.Equal(t, token.Units(1000), e.token.BalanceOf(buyer))
	assert.False(t, e.market.HasExclusiveAccess(id, buyer))
	assert.Empty(t, logsNamed(t, e.market, EventExclusiveContentAccessGranted))
}

func TestRedeemNonExclusiveSong(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, false)
	e.fundBuyer(t)

	err := e.market.RedeemExclusiveContent(e.ctx, buyer, id)
	assert.ErrorIs(t, err, ErrNotExclusive)
	assert.Equal(t, token.Units(1000), e.token.BalanceOf(buyer))

	err = e.market.RedeemExclusiveContent(e.ctx, buyer, 42)
	assert.ErrorIs(t, err, ErrUnknownSong)
}

func TestRedeemDoesNotAllowRating(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, true)
	e.fundBuyer(t)
	require.NoError(t, e.market.RedeemExclusiveContent(e.ctx, buyer, id))

	err := e.market.RateSong(e.ctx, buyer, id, 5)
	assert.ErrorIs(t, err, ErrNotPurchased)
}
