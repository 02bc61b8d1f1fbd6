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
	"time"

	binding "github.com/GetomG/soundrise-project/contracts/soundrise"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T) *binding.SoundRise {
	t.Helper()
	p, err := binding.NewEventParser()
	require.NoError(t, err)
	return p
}

// logsNamed returns the committed logs of the named event.
func logsNamed(t *testing.T, m *Market, name string) []*types.Log {
	t.Helper()
	p := newParser(t)
	var out []*types.Log
	for _, l := range m.Logs() {
		got, err := p.EventName(*l)
		require.NoError(t, err)
		if got == name {
			out = append(out, l)
		}
	}
	return out
}

func TestSongUploadedEvent(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, false)

	logs := logsNamed(t, e.market, EventSongUploaded)
	require.Len(t, logs, 1)
	ev, err := newParser(t).ParseSongUploaded(*logs[0])
	require.NoError(t, err)
	assert.Equal(t, id, ev.SongId.Uint64())
	assert.Equal(t, "Test Song", ev.Title)
	assert.Equal(t, artist, ev.Artist)
	assert.Equal(t, ether(1).String(), ev.Price.String())
	assert.Equal(t, uint8(10), ev.Royalty)
	assert.Equal(t, marketAddr, logs[0].Address)
}

func TestSettlementEvents(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	id := e.upload(t, false)
	exclusive := e.upload(t, true)
	e.fundBuyer(t)
	p := newParser(t)

	require.NoError(t, e.market.PurchaseSong(e.ctx, buyer, ether(1), id))
	require.NoError(t, e.market.PlaySong(e.ctx, buyer, ether(2), id))
	require.NoError(t, e.market.RateSong(e.ctx, buyer, id, 3))
	require.NoError(t, e.market.RedeemExclusiveContent(e.ctx, buyer, exclusive))

	purchased, err := p.ParseSongPurchased(*logsNamed(t, e.market, EventSongPurchased)[0])
	require.NoError(t, err)
	assert.Equal(t, id, purchased.SongId.Uint64())
	assert.Equal(t, buyer, purchased.Buyer)

	played, err := p.ParseSongPlayed(*logsNamed(t, e.market, EventSongPlayed)[0])
	require.NoError(t, err)
	assert.Equal(t, buyer, played.Listener)
	assert.Equal(t, ether(2).String(), played.Payment.String())
	assert.Equal(t, "200000000000000000", played.RoyaltyAmount.String())

	rated, err := p.ParseSongRated(*logsNamed(t, e.market, EventSongRated)[0])
	require.NoError(t, err)
	assert.Equal(t, buyer, rated.Rater)
	assert.Equal(t, uint8(3), rated.Rating)

	granted, err := p.ParseExclusiveContentAccessGranted(*logsNamed(t, e.market, EventExclusiveContentAccessGranted)[0])
	require.NoError(t, err)
	assert.Equal(t, buyer, granted.User)
	assert.Equal(t, exclusive, granted.SongId.Uint64())
}

func TestLogsCarryCommitOrder(t *testing.T) {
	e := newEnv(t)
	e.register(t)
	e.upload(t, false)
	_ = e.market.RegisterArtist(e.ctx, artist, "again")

	logs := e.market.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, uint64(1), logs[0].BlockNumber)
	assert.Equal(t, uint64(2), logs[1].BlockNumber)
	assert.Equal(t, uint(0), logs[0].Index)
	assert.Equal(t, uint(1), logs[1].Index)
	assert.NotEqual(t, logs[0].TxHash, logs[1].TxHash)

	ev, err := newParser(t).ParseLog(*logs[0])
	require.NoError(t, err)
	registered, ok := ev.(*binding.SoundRiseArtistRegistered)
	require.True(t, ok)
	assert.Equal(t, "Test Artist", registered.Name)
	assert.Equal(t, artist, registered.Artist)
}

func TestSubscribeLogs(t *testing.T) {
	e := newEnv(t)
	ch := make(chan *types.Log, 4)
	sub := e.market.SubscribeLogs(ch)
	defer sub.Unsubscribe()

	e.register(t)

	select {
	case l := <-ch:
		name, err := newParser(t).EventName(*l)
		require.NoError(t, err)
		assert.Equal(t, EventArtistRegistered, name)
	case <-time.After(time.Second):
		t.Fatal("no log delivered")
	}
	// failed operations publish nothing
	_ = e.market.RegisterArtist(e.ctx, artist, "again")
	select {
	case l := <-ch:
		t.Fatalf("unexpected log %v", l)
	default:
	}
}
