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

// Package soundrise provides high-level Go bindings for the SoundRise
// marketplace contract: artist registration, song publishing, native-currency
// purchases and plays, SRT redemption of exclusive songs and rating rewards.
package soundrise

import (
	"errors"
	"math/big"
	"strings"

	"github.com/GetomG/soundrise-project/contracts/soundrise/contract"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrNoTransactor is returned by write methods of a binding created without
// transaction options.
var ErrNoTransactor = errors.New("soundrise: binding has no transaction options")

// SoundRise is a high-level wrapper around the on-chain SoundRise contract.
type SoundRise struct {
	abi             abi.ABI
	address         common.Address
	contract        *bind.BoundContract
	contractBackend bind.ContractBackend
	transactOpts    *bind.TransactOpts
}

// NewSoundRise connects to an already-deployed SoundRise contract. A nil
// backend yields a binding that can only parse logs.
func NewSoundRise(opts *bind.TransactOpts, addr common.Address, backend bind.ContractBackend) (*SoundRise, error) {
	parsed, err := abi.JSON(strings.NewReader(contract.SoundRiseABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(addr, parsed, backend, backend, backend)
	return &SoundRise{
		abi:             parsed,
		address:         addr,
		contract:        bound,
		contractBackend: backend,
		transactOpts:    opts,
	}, nil
}

// NewEventParser returns a backend-less binding for decoding SoundRise logs.
func NewEventParser() (*SoundRise, error) {
	return NewSoundRise(nil, common.Address{}, nil)
}

// Address returns the contract address the binding targets.
func (c *SoundRise) Address() common.Address { return c.address }

// ABI returns the parsed contract ABI.
func (c *SoundRise) ABI() abi.ABI { return c.abi }

// ──────────────────────────────────────────────
//  Write methods
// ──────────────────────────────────────────────

func (c *SoundRise) transact(value *big.Int, method string, params ...interface{}) (*types.Transaction, error) {
	if c.transactOpts == nil {
		return nil, ErrNoTransactor
	}
	opts := *c.transactOpts
	opts.Value = value
	return c.contract.Transact(&opts, method, params...)
}

// RegisterArtist binds the sender to a display name.
func (c *SoundRise) RegisterArtist(name string) (*types.Transaction, error) {
	return c.transact(nil, "registerArtist", name)
}

// UploadSong publishes a song owned by the sender.
func (c *SoundRise) UploadSong(title string, price *big.Int, contentURI string, royalty uint8, classified, exclusive bool, unlockCost *big.Int) (*types.Transaction, error) {
	return c.transact(nil, "uploadSong", title, price, contentURI, royalty, classified, exclusive, unlockCost)
}

// PurchaseSong buys a non-exclusive song, attaching value wei.
func (c *SoundRise) PurchaseSong(songId *big.Int, value *big.Int) (*types.Transaction, error) {
	return c.transact(value, "purchaseSong", songId)
}

// PlaySong pays for one play, attaching value wei.
func (c *SoundRise) PlaySong(songId *big.Int, value *big.Int) (*types.Transaction, error) {
	return c.transact(value, "playSong", songId)
}

// RedeemExclusiveContent unlocks an exclusive song with pre-approved SRT.
func (c *SoundRise) RedeemExclusiveContent(songId *big.Int) (*types.Transaction, error) {
	return c.transact(nil, "redeemExclusiveContent", songId)
}

// RateSong rates a purchased song and collects the SRT reward.
func (c *SoundRise) RateSong(songId *big.Int, rating uint8) (*types.Transaction, error) {
	return c.transact(nil, "rateSong", songId, rating)
}

// ──────────────────────────────────────────────
//  Read methods
// ──────────────────────────────────────────────

// ArtistInfo holds the on-chain artist record.
type ArtistInfo struct {
	Name         string
	IsRegistered bool
}

// Artists reads the artist record of an account.
func (c *SoundRise) Artists(account common.Address) (*ArtistInfo, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{}, &out, "artists", account)
	if err != nil {
		return nil, err
	}
	return &ArtistInfo{
		Name:         out[0].(string),
		IsRegistered: out[1].(bool),
	}, nil
}

// SongInfo holds the on-chain song record.
type SongInfo struct {
	ID          *big.Int
	Title       string
	Artist      common.Address
	Price       *big.Int
	IpfsHash    string
	Royalty     uint8
	Classified  bool
	IsExclusive bool
	SrtPrice    *big.Int
	Rating      uint8
}

// Songs reads a song record by identifier.
func (c *SoundRise) Songs(songId *big.Int) (*SongInfo, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{}, &out, "songs", songId)
	if err != nil {
		return nil, err
	}
	return &SongInfo{
		ID:          out[0].(*big.Int),
		Title:       out[1].(string),
		Artist:      out[2].(common.Address),
		Price:       out[3].(*big.Int),
		IpfsHash:    out[4].(string),
		Royalty:     out[5].(uint8),
		Classified:  out[6].(bool),
		IsExclusive: out[7].(bool),
		SrtPrice:    out[8].(*big.Int),
		Rating:      out[9].(uint8),
	}, nil
}

// SongPurchased reports whether buyer holds a purchase record for the song.
func (c *SoundRise) SongPurchased(songId *big.Int, buyer common.Address) (bool, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{}, &out, "songPurchased", songId, buyer)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

// SongCount returns the identifier of the most recently uploaded song.
func (c *SoundRise) SongCount() (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{}, &out, "songCount")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}
