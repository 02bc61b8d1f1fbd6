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


// Package node wires the native-currency bank, the SoundToken ledger and the
// marketplace into a single service. It serialises every operation, persists
// the combined state after each committed write and exposes a read-only
// JSON-RPC API.
package node

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/GetomG/soundrise-project/bank"
	"github.com/GetomG/soundrise-project/soundrise"
	"github.com/GetomG/soundrise-project/storage"
	"github.com/GetomG/soundrise-project/token"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// Genesis describes the state of a fresh deployment.
type Genesis struct {
	// TokenOwner receives the initial token supply and the minting role.
	// Defaults to the marketplace owner.
	TokenOwner    common.Address
	InitialSupply *big.Int // smallest token unit

	Native map[common.Address]*big.Int // native balances credited at start
	Tokens map[common.Address]*big.Int // transferred out of TokenOwner's supply

	// GrantMinter hands token ownership to the marketplace account so that
	// rating rewards can be minted.
	GrantMinter bool
}

// Config configures a node.
type Config struct {
	Market       common.Address
	Owner        common.Address
	RatingPolicy soundrise.RatingPolicy
	Reward       *big.Int
	Genesis      Genesis
}

// Node owns the ledgers and the marketplace.
type Node struct {
	mu     sync.Mutex // guards bank and token, and orders writes
	bank   *bank.Bank
	token  *token.Ledger
	market *soundrise.Market
	store  *storage.Store // nil for a purely in-memory node
}

// New builds a node. When store holds a saved state it is restored and the
// genesis section of cfg is ignored; otherwise genesis is applied and saved.
func New(ctx context.Context, cfg Config, store *storage.Store) (*Node, error) {
	var snap *storage.Snapshot
	if store != nil {
		var err error
		if snap, err = store.Load(ctx); err != nil {
			return nil, err
		}
	}
	n := &Node{store: store}

	var err error
	if snap != nil {
		err = n.restore(cfg, snap)
	} else {
		err = n.genesis(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}
	if snap == nil {
		if err := n.persist(ctx); err != nil {
			return nil, err
		}
	}
	log.Info("Marketplace node ready", "market", cfg.Market.Hex(), "owner", cfg.Owner.Hex(),
		"songs", n.market.SongCount(), "tokenOwner", n.token.Owner().Hex(), "restored", snap != nil)
	return n, nil
}

func (n *Node) genesis(ctx context.Context, cfg Config) error {
	g := cfg.Genesis
	b, err := bank.New()
	if err != nil {
		return err
	}
	for account, amount := range g.Native {
		if err := b.Credit(account, amount); err != nil {
			return fmt.Errorf("node: genesis balance for %s: %w", account.Hex(), err)
		}
	}
	b.Finalise()

	owner := g.TokenOwner
	if owner == (common.Address{}) {
		owner = cfg.Owner
	}
	l, err := token.New(owner, g.InitialSupply)
	if err != nil {
		return fmt.Errorf("node: genesis token: %w", err)
	}
	for account, amount := range g.Tokens {
		if err := l.Transfer(ctx, owner, account, amount); err != nil {
			return fmt.Errorf("node: genesis tokens for %s: %w", account.Hex(), err)
		}
	}
	if g.GrantMinter {
		if err := l.TransferOwnership(owner, cfg.Market); err != nil {
			return fmt.Errorf("node: grant minter: %w", err)
		}
	}
	n.bank, n.token = b, l
	n.market, err = newMarket(cfg, b, l)
	return err
}

func (n *Node) restore(cfg Config, snap *storage.Snapshot) error {
	b, err := bank.New()
	if err != nil {
		return err
	}
	for account, amount := range snap.Native {
		if err := b.Credit(account, amount); err != nil {
			return fmt.Errorf("node: restore balance for %s: %w", account.Hex(), err)
		}
	}
	b.Finalise()

	l, err := token.Restore(snap.Token)
	if err != nil {
		return err
	}
	m, err := newMarket(cfg, b, l)
	if err != nil {
		return err
	}
	if err := m.Restore(snap.Market); err != nil {
		return err
	}
	n.bank, n.token, n.market = b, l, m
	return nil
}

func newMarket(cfg Config, b *bank.Bank, l *token.Ledger) (*soundrise.Market, error) {
	return soundrise.New(soundrise.Config{
		Address:      cfg.Market,
		Owner:        cfg.Owner,
		Native:       b,
		Token:        l,
		Minter:       token.MintCapability(l, cfg.Market),
		RatingPolicy: cfg.RatingPolicy,
		Reward:       cfg.Reward,
	})
}

// write runs fn under the node lock and persists the result when it succeeds.
// If the result cannot be persisted the write is undone in memory as well, so
// a failed call never leaves a committed change behind.
func (n *Node) write(ctx context.Context, fn func() error) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	var (
		market *soundrise.State
		tokens *token.State
	)
	if n.store != nil {
		market, tokens = n.market.Export(), n.token.Export()
	}
	snap := n.bank.Snapshot()

	if err := fn(); err != nil {
		n.bank.Finalise()
		return err
	}
	if err := n.persist(ctx); err != nil {
		n.bank.RevertToSnapshot(snap)
		if rerr := n.market.Revert(market); rerr != nil {
			log.Error("Failed to undo unpersisted marketplace write", "err", rerr)
		}
		if rerr := n.token.Reset(tokens); rerr != nil {
			log.Error("Failed to undo unpersisted token write", "err", rerr)
		}
		n.bank.Finalise()
		return err
	}
	n.bank.Finalise()
	return nil
}

func (n *Node) persist(ctx context.Context) error {
	if n.store == nil {
		return nil
	}
	err := n.store.Save(ctx, &storage.Snapshot{
		Market: n.market.Export(),
		Token:  n.token.Export(),
		Native: n.bank.Accounts(),
	})
	if err != nil {
		log.Error("Failed to persist ledger state", "err", err)
		return fmt.Errorf("node: persist: %w", err)
	}
	return nil
}

// ErrNoStore is returned by Flush on a node without storage.
var ErrNoStore = errors.New("node: no storage configured")

// Flush saves the current state.
func (n *Node) Flush(ctx context.Context) error {
	if n.store == nil {
		return ErrNoStore
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.persist(ctx)
}

// Market returns the marketplace for direct queries. Writes must go through
// the node.
func (n *Node) Market() *soundrise.Market { return n.market }

// RegisterArtist registers caller as an artist.
func (n *Node) RegisterArtist(ctx context.Context, caller common.Address, name string) error {
	return n.write(ctx, func() error {
		return n.market.RegisterArtist(ctx, caller, name)
	})
}

// UploadSong adds a song to the catalog.
func (n *Node) UploadSong(ctx context.Context, caller common.Address, p soundrise.SongParams) (id uint64, err error) {
	err = n.write(ctx, func() error {
		var err error
		id, err = n.market.UploadSong(ctx, caller, p)
		return err
	})
	return id, err
}

// PurchaseSong buys a song with value wei.
func (n *Node) PurchaseSong(ctx context.Context, caller common.Address, value *big.Int, id uint64) error {
	return n.write(ctx, func() error {
		return n.market.PurchaseSong(ctx, caller, value, id)
	})
}

// PlaySong pays value wei for a play.
func (n *Node) PlaySong(ctx context.Context, caller common.Address, value *big.Int, id uint64) error {
	return n.write(ctx, func() error {
		return n.market.PlaySong(ctx, caller, value, id)
	})
}

// RedeemExclusiveContent unlocks an exclusive song with tokens.
func (n *Node) RedeemExclusiveContent(ctx context.Context, caller common.Address, id uint64) error {
	return n.write(ctx, func() error {
		return n.market.RedeemExclusiveContent(ctx, caller, id)
	})
}

// RateSong rates a purchased song and mints the reward.
func (n *Node) RateSong(ctx context.Context, caller common.Address, id uint64, rating uint8) error {
	return n.write(ctx, func() error {
		return n.market.RateSong(ctx, caller, id, rating)
	})
}

// WithdrawRetained sweeps the retained play remainder to to.
func (n *Node) WithdrawRetained(ctx context.Context, caller, to common.Address) (amount *big.Int, err error) {
	err = n.write(ctx, func() error {
		var err error
		amount, err = n.market.WithdrawRetained(ctx, caller, to)
		return err
	})
	return amount, err
}

// Approve sets spender's token allowance over caller's balance.
func (n *Node) Approve(ctx context.Context, caller, spender common.Address, amount *big.Int) error {
	return n.write(ctx, func() error {
		return n.token.Approve(ctx, caller, spender, amount)
	})
}

// TransferTokens moves tokens from caller to to.
func (n *Node) TransferTokens(ctx context.Context, caller, to common.Address, amount *big.Int) error {
	return n.write(ctx, func() error {
		return n.token.Transfer(ctx, caller, to, amount)
	})
}

// MintTokens mints as caller, which must own the token ledger.
func (n *Node) MintTokens(ctx context.Context, caller, to common.Address, amount *big.Int) error {
	return n.write(ctx, func() error {
		return n.token.Mint(caller, to, amount)
	})
}

// TransferTokenOwnership hands the minting role to newOwner.
func (n *Node) TransferTokenOwnership(ctx context.Context, caller, newOwner common.Address) error {
	return n.write(ctx, func() error {
		return n.token.TransferOwnership(caller, newOwner)
	})
}

// TransferNative moves native currency from caller to to.
func (n *Node) TransferNative(ctx context.Context, caller, to common.Address, amount *big.Int) error {
	return n.write(ctx, func() error {
		return n.bank.Transfer(ctx, caller, to, amount)
	})
}

// NativeBalance returns account's native balance in wei.
func (n *Node) NativeBalance(account common.Address) *big.Int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.bank.BalanceOf(account)
}

// TokenBalance returns account's token balance.
func (n *Node) TokenBalance(account common.Address) *big.Int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.token.BalanceOf(account)
}

// Allowance returns the tokens spender may still move for owner.
func (n *Node) Allowance(owner, spender common.Address) *big.Int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.token.Allowance(owner, spender)
}

// TokenInfo is the token ledger summary.
type TokenInfo struct {
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Decimals    uint8          `json:"decimals"`
	TotalSupply *big.Int       `json:"total_supply"`
	Owner       common.Address `json:"owner"`
}

// TokenInfo summarises the token ledger.
func (n *Node) TokenInfo() TokenInfo {
	n.mu.Lock()
	defer n.mu.Unlock()
	return TokenInfo{
		Name:        token.Name,
		Symbol:      token.Symbol,
		Decimals:    token.Decimals,
		TotalSupply: n.token.TotalSupply(),
		Owner:       n.token.Owner(),
	}
}
