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

// Package soundrise implements the SoundRise marketplace state machine:
// artist registration, the song catalog, native-currency purchases and
// royalty-bearing plays, SRT redemption of exclusive songs and the rating
// reward.
//
// Every operation runs as one atomic unit. The attached native value is
// escrowed to the marketplace account first, all record flags are written
// before any outbound transfer, and a failure anywhere restores the exact
// prior state of both the marketplace and the native ledger. Events become
// visible only once the operation commits.
package soundrise

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/GetomG/soundrise-project/contracts/soundrise/contract"
	"github.com/GetomG/soundrise-project/token"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

// DefaultReward is the SRT amount minted to a rater: 5 whole tokens.
var DefaultReward = token.Units(5)

// NativeLedger moves native currency. Snapshots must nest.
type NativeLedger interface {
	BalanceOf(account common.Address) *big.Int
	Transfer(ctx context.Context, from, to common.Address, amount *big.Int) error
	Snapshot() int
	RevertToSnapshot(id int)
}

// TokenLedger is the part of the SRT ledger the marketplace reads and spends
// through.
type TokenLedger interface {
	BalanceOf(account common.Address) *big.Int
	TransferFrom(ctx context.Context, spender, from, to common.Address, amount *big.Int) error
}

// Minter is the delegated right to mint rating rewards.
type Minter interface {
	Mint(ctx context.Context, to common.Address, amount *big.Int) error
}

// Config wires a marketplace to its collaborators.
type Config struct {
	// Address is the marketplace's own account: it holds escrowed payments
	// and the retained play remainder, and is the SRT spender on redemption.
	Address common.Address

	// Owner may withdraw the retained play remainder.
	Owner common.Address

	Native NativeLedger
	Token  TokenLedger

	// Minter mints rating rewards. Without one every rating fails with
	// ErrRewardMintFailed.
	Minter Minter

	RatingPolicy RatingPolicy // defaults to LatestRating
	Reward       *big.Int     // defaults to DefaultReward
}

// Market is the marketplace state machine. Writes must be serialised by the
// caller: a write that starts while another is in flight fails with
// ErrReentrantCall. Queries may run at any time, including from receivers
// invoked by a write's outbound transfers.
type Market struct {
	address common.Address
	owner   common.Address
	native  NativeLedger
	token   TokenLedger
	minter  Minter
	policy  RatingPolicy
	reward  *big.Int
	abi     abi.ABI

	active    atomic.Pointer[frame] // running write, nil when idle
	mu        sync.RWMutex
	artists   map[common.Address]*Artist
	songs     map[uint64]*Song
	songCount uint64
	purchases recordSet
	access    recordSet
	ratings   recordSet
	retained  *big.Int
	seq       uint64 // committed operations, used as the log block number
	logs      []*types.Log

	feed event.Feed
}

// New creates an empty marketplace.
func New(cfg Config) (*Market, error) {
	if cfg.Native == nil || cfg.Token == nil {
		return nil, errors.New("soundrise: native and token ledgers are required")
	}
	if cfg.Address == (common.Address{}) {
		return nil, errors.New("soundrise: marketplace address is required")
	}
	parsed, err := abi.JSON(strings.NewReader(contract.SoundRiseABI))
	if err != nil {
		return nil, err
	}
	m := &Market{
		address:   cfg.Address,
		owner:     cfg.Owner,
		native:    cfg.Native,
		token:     cfg.Token,
		minter:    cfg.Minter,
		policy:    cfg.RatingPolicy,
		reward:    DefaultReward,
		abi:       parsed,
		artists:   make(map[common.Address]*Artist),
		songs:     make(map[uint64]*Song),
		purchases: make(recordSet),
		access:    make(recordSet),
		ratings:   make(recordSet),
		retained:  new(big.Int),
	}
	if m.policy == nil {
		m.policy = LatestRating
	}
	if cfg.Reward != nil {
		m.reward = new(big.Int).Set(cfg.Reward)
	}
	return m, nil
}

// Address returns the marketplace account.
func (m *Market) Address() common.Address { return m.address }

// Owner returns the account allowed to withdraw retained funds.
func (m *Market) Owner() common.Address { return m.owner }

// Reward returns the SRT amount minted per accepted rating.
func (m *Market) Reward() *big.Int { return new(big.Int).Set(m.reward) }

// ──────────────────────────────────────────────
//  Queries
// ──────────────────────────────────────────────

// Artist returns the artist record of account.
func (m *Market) Artist(account common.Address) (Artist, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.artists[account]
	if !ok {
		return Artist{Account: account}, false
	}
	return *a, true
}

// Song returns a copy of the song with the given identifier.
func (m *Market) Song(id uint64) (*Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.songs[id]
	if !ok {
		return nil, ErrUnknownSong
	}
	return s.copy(), nil
}

// SongCount returns the identifier of the most recently uploaded song.
func (m *Market) SongCount() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.songCount
}

// HasPurchased reports whether account bought the song with native currency.
func (m *Market) HasPurchased(id uint64, account common.Address) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.purchases.has(id, account)
}

// HasExclusiveAccess reports whether account unlocked the song with SRT.
func (m *Market) HasExclusiveAccess(id uint64, account common.Address) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access.has(id, account)
}

// HasRated reports whether account rated the song.
func (m *Market) HasRated(id uint64, account common.Address) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ratings.has(id, account)
}

// CanPlay reports whether account may play the song through either record.
func (m *Market) CanPlay(id uint64, account common.Address) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entitled(id, account)
}

func (m *Market) entitled(id uint64, account common.Address) bool {
	return m.purchases.has(id, account) || m.access.has(id, account)
}

// Retained returns the play remainder held by the marketplace.
func (m *Market) Retained() *big.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return new(big.Int).Set(m.retained)
}

// Logs returns every committed event log in emission order.
func (m *Market) Logs() []*types.Log {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*types.Log, len(m.logs))
	copy(out, m.logs)
	return out
}

// SubscribeLogs delivers committed event logs to ch.
func (m *Market) SubscribeLogs(ch chan<- *types.Log) event.Subscription {
	return m.feed.Subscribe(ch)
}
