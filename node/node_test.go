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


package node

import (
	"context"
	"math/big"
	"testing"

	"github.com/GetomG/soundrise-project/soundrise"
	"github.com/GetomG/soundrise-project/storage"
	"github.com/GetomG/soundrise-project/token"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	marketAddr = common.HexToAddress("0x000000000000000000000000000000000000c0de")
	owner      = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	artist     = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	buyer      = common.HexToAddress("0x00000000000000000000000000000000000000b1")
)

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(params.Ether))
}

func testConfig() Config {
	return Config{
		Market: marketAddr,
		Owner:  owner,
		Genesis: Genesis{
			InitialSupply: token.Units(1000000),
			Native: map[common.Address]*big.Int{
				artist: ether(100),
				buyer:  ether(100),
			},
			Tokens:      map[common.Address]*big.Int{buyer: token.Units(1000)},
			GrantMinter: true,
		},
	}
}

func newTestNode(t *testing.T, store *storage.Store) *Node {
	t.Helper()
	n, err := New(context.Background(), testConfig(), store)
	require.NoError(t, err)
	return n
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// seed registers the artist and uploads a plain and an exclusive song.
func seed(t *testing.T, n *Node) (plain, exclusive uint64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, n.RegisterArtist(ctx, artist, "Test Artist"))
	plain, err := n.UploadSong(ctx, artist, soundrise.SongParams{
		Title: "Open", Price: ether(1), ContentURI: "ipfs://open", Royalty: 10,
	})
	require.NoError(t, err)
	exclusive, err = n.UploadSong(ctx, artist, soundrise.SongParams{
		Title: "Vault", Price: ether(1), ContentURI: "ipfs://vault", Royalty: 10,
		Exclusive: true, UnlockCost: token.Units(100),
	})
	require.NoError(t, err)
	return plain, exclusive
}

func TestGenesis(t *testing.T) {
	n := newTestNode(t, nil)
	assert.Equal(t, ether(100).String(), n.NativeBalance(buyer).String())
	assert.Equal(t, token.Units(1000), n.TokenBalance(buyer))
	assert.Equal(t, token.Units(999000), n.TokenBalance(owner))

	info := n.TokenInfo()
	assert.Equal(t, "SRT", info.Symbol)
	assert.Equal(t, uint8(18), info.Decimals)
	assert.Equal(t, marketAddr, info.Owner)
	assert.Equal(t, token.Units(1000000), info.TotalSupply)
}

func TestEndToEnd(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()
	plain, exclusive := seed(t, n)

	require.NoError(t, n.PurchaseSong(ctx, buyer, ether(1), plain))
	assert.Equal(t, ether(101).String(), n.NativeBalance(artist).String())

	require.NoError(t, n.RateSong(ctx, buyer, plain, 3))
	assert.Equal(t, token.Units(1005), n.TokenBalance(buyer))
	assert.ErrorIs(t, n.RateSong(ctx, buyer, plain, 4), soundrise.ErrAlreadyRated)

	require.NoError(t, n.Approve(ctx, buyer, marketAddr, token.Units(100)))
	require.NoError(t, n.RedeemExclusiveContent(ctx, buyer, exclusive))
	assert.Equal(t, token.Units(905), n.TokenBalance(buyer))
	assert.Equal(t, 0, n.Allowance(buyer, marketAddr).Sign())

	require.NoError(t, n.PlaySong(ctx, buyer, ether(1), exclusive))
	assert.Equal(t, "900000000000000000", n.Market().Retained().String())

	amount, err := n.WithdrawRetained(ctx, owner, owner)
	require.NoError(t, err)
	assert.Equal(t, "900000000000000000", amount.String())
	assert.Equal(t, "900000000000000000", n.NativeBalance(owner).String())
}

func TestFailedOperationLeavesBalances(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()
	plain, _ := seed(t, n)

	err := n.PurchaseSong(ctx, buyer, big.NewInt(1), plain)
	assert.ErrorIs(t, err, soundrise.ErrInsufficientPayment)
	assert.Equal(t, ether(100).String(), n.NativeBalance(buyer).String())
	assert.Equal(t, 0, n.NativeBalance(marketAddr).Sign())

	// the bank journal was reset, later operations still revert cleanly
	require.NoError(t, n.PurchaseSong(ctx, buyer, ether(1), plain))
	assert.ErrorIs(t, n.PurchaseSong(ctx, buyer, ether(1), plain), soundrise.ErrAlreadyPurchased)
	assert.Equal(t, ether(99).String(), n.NativeBalance(buyer).String())
}

func TestTokenOperations(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()

	require.NoError(t, n.TransferTokens(ctx, buyer, artist, token.Units(10)))
	assert.Equal(t, token.Units(10), n.TokenBalance(artist))

	// the marketplace holds the minting role after genesis
	assert.ErrorIs(t, n.MintTokens(ctx, owner, owner, token.Units(1)), token.ErrUnauthorizedAccount)
	require.NoError(t, n.MintTokens(ctx, marketAddr, owner, token.Units(1)))
	require.NoError(t, n.TransferTokenOwnership(ctx, marketAddr, owner))
	assert.Equal(t, owner, n.TokenInfo().Owner)

	require.NoError(t, n.TransferNative(ctx, buyer, artist, ether(1)))
	assert.Equal(t, ether(101).String(), n.NativeBalance(artist).String())
}

func TestPersistAndRestore(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	n := newTestNode(t, store)
	plain, exclusive := seed(t, n)
	require.NoError(t, n.PurchaseSong(ctx, buyer, ether(1), plain))
	require.NoError(t, n.RateSong(ctx, buyer, plain, 5))
	require.NoError(t, n.Approve(ctx, buyer, marketAddr, token.Units(100)))
	require.NoError(t, n.RedeemExclusiveContent(ctx, buyer, exclusive))
	require.NoError(t, n.PlaySong(ctx, buyer, ether(2), plain))

	// a different genesis is ignored once state exists
	cfg := testConfig()
	cfg.Genesis.Native = map[common.Address]*big.Int{buyer: ether(5)}
	restored, err := New(ctx, cfg, store)
	require.NoError(t, err)

	m := restored.Market()
	assert.Equal(t, uint64(2), m.SongCount())
	assert.True(t, m.HasPurchased(plain, buyer))
	assert.True(t, m.HasRated(plain, buyer))
	assert.True(t, m.HasExclusiveAccess(exclusive, buyer))
	song, err := m.Song(plain)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), song.Rating)
	assert.Equal(t, uint64(1), song.PlayCount)
	assert.Equal(t, "1800000000000000000", m.Retained().String())

	assert.Equal(t, n.NativeBalance(buyer).String(), restored.NativeBalance(buyer).String())
	assert.Equal(t, n.TokenBalance(buyer), restored.TokenBalance(buyer))
	assert.Equal(t, marketAddr, restored.TokenInfo().Owner)

	// the restored node keeps enforcing the same rules
	assert.ErrorIs(t, restored.RateSong(ctx, buyer, plain, 1), soundrise.ErrAlreadyRated)
	id, err := restored.UploadSong(ctx, artist, soundrise.SongParams{Title: "Third", Price: ether(1)})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)
}

func TestFlushWithoutStore(t *testing.T) {
	n := newTestNode(t, nil)
	assert.ErrorIs(t, n.Flush(context.Background()), ErrNoStore)
}

func TestUnpersistedWriteIsUndone(t *testing.T) {
	store := openStore(t)
	n := newTestNode(t, store)
	ctx := context.Background()
	plain, _ := seed(t, n)
	logs := len(n.Market().Logs())
	require.NoError(t, store.Close())

	err := n.RegisterArtist(ctx, buyer, "Buyer")
	require.Error(t, err)
	_, ok := n.Market().Artist(buyer)
	assert.False(t, ok)

	err = n.PurchaseSong(ctx, buyer, ether(1), plain)
	require.Error(t, err)
	assert.NotErrorIs(t, err, soundrise.ErrAlreadyPurchased)
	assert.False(t, n.Market().HasPurchased(plain, buyer))
	assert.Equal(t, ether(100).String(), n.NativeBalance(buyer).String())
	assert.Equal(t, ether(100).String(), n.NativeBalance(artist).String())

	require.Error(t, n.Approve(ctx, buyer, marketAddr, token.Units(100)))
	assert.Equal(t, 0, n.Allowance(buyer, marketAddr).Sign())
	assert.Len(t, n.Market().Logs(), logs)

	// a retry reports the storage failure again, not a duplicate
	err = n.RegisterArtist(ctx, buyer, "Buyer")
	assert.NotErrorIs(t, err, soundrise.ErrAlreadyRegistered)
}
