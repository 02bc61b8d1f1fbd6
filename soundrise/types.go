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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Artist is a registered identity.
type Artist struct {
	Account    common.Address `json:"account"`
	Name       string         `json:"name"`
	Registered bool           `json:"registered"`
}

// Song is a catalog entry. Only the rating fields and the play count change
// after upload.
type Song struct {
	ID         uint64         `json:"id"`
	Title      string         `json:"title"`
	Artist     common.Address `json:"artist"`
	Price      *big.Int       `json:"price"`       // wei
	ContentURI string         `json:"content_uri"` // opaque locator, e.g. "ipfs://…"
	Royalty    uint8          `json:"royalty"`     // percent of each play payment owed to the artist
	Classified bool           `json:"classified"`  // caller-defined classification bit, no behaviour attached
	Exclusive  bool           `json:"exclusive"`
	UnlockCost *big.Int       `json:"unlock_cost"` // SRT smallest unit, meaningful only when Exclusive

	// Rating is the stored rating as computed by the marketplace's
	// RatingPolicy; zero until the first rating.
	Rating      uint8  `json:"rating"`
	RatingCount uint64 `json:"rating_count"`
	RatingTotal uint64 `json:"rating_total"`

	PlayCount uint64 `json:"play_count"`
}

func (s *Song) copy() *Song {
	cpy := *s
	cpy.Price = copyBig(s.Price)
	cpy.UnlockCost = copyBig(s.UnlockCost)
	return &cpy
}

func copyBig(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(x)
}

// SongParams is the input to UploadSong.
type SongParams struct {
	Title      string   `json:"title"`
	Price      *big.Int `json:"price"`
	ContentURI string   `json:"content_uri"`
	Royalty    uint8    `json:"royalty"`
	Classified bool     `json:"classified"`
	Exclusive  bool     `json:"exclusive"`
	UnlockCost *big.Int `json:"unlock_cost"`
}

// Record marks a (song, account) pair: a purchase, an exclusive unlock or a
// rating.
type Record struct {
	SongID  uint64         `json:"song_id"`
	Account common.Address `json:"account"`
}

// recordSet is a set of (song, account) pairs.
type recordSet map[Record]struct{}

func (s recordSet) has(id uint64, account common.Address) bool {
	_, ok := s[Record{SongID: id, Account: account}]
	return ok
}
