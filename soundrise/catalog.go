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
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// RegisterArtist binds the caller to a display name. An account registers at
// most once and the name never changes afterwards.
func (m *Market) RegisterArtist(ctx context.Context, caller common.Address, name string) (err error) {
	_, f, err := m.begin(ctx, "registerArtist", caller, nil)
	if err != nil {
		return err
	}
	defer func() { f.end(err) }()

	if _, ok := m.artists[caller]; ok {
		return ErrAlreadyRegistered
	}
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	m.artists[caller] = &Artist{Account: caller, Name: name, Registered: true}
	f.journal(func() { delete(m.artists, caller) })

	if err := f.emit(EventArtistRegistered, caller, name); err != nil {
		return err
	}
	log.Info("Artist registered", "account", caller.Hex(), "name", name)
	return nil
}

// UploadSong adds a song owned by the caller to the catalog and returns its
// identifier. Identifiers start at 1 and are never reused.
func (m *Market) UploadSong(ctx context.Context, caller common.Address, p SongParams) (id uint64, err error) {
	_, f, err := m.begin(ctx, "uploadSong", caller, nil)
	if err != nil {
		return 0, err
	}
	defer func() { f.end(err) }()

	if a, ok := m.artists[caller]; !ok || !a.Registered {
		return 0, ErrNotRegisteredArtist
	}
	if p.Price == nil || p.Price.Sign() <= 0 {
		return 0, ErrInvalidPrice
	}
	if p.Royalty > MaxRoyalty {
		return 0, ErrInvalidRoyalty
	}
	unlockCost := new(big.Int)
	if p.UnlockCost != nil {
		if p.UnlockCost.Sign() < 0 {
			return 0, ErrInvalidUnlockCost
		}
		unlockCost.Set(p.UnlockCost)
	}

	m.songCount++
	id = m.songCount
	m.songs[id] = &Song{
		ID:         id,
		Title:      p.Title,
		Artist:     caller,
		Price:      new(big.Int).Set(p.Price),
		ContentURI: p.ContentURI,
		Royalty:    p.Royalty,
		Classified: p.Classified,
		Exclusive:  p.Exclusive,
		UnlockCost: unlockCost,
	}
	f.journal(func() {
		delete(m.songs, id)
		m.songCount--
	})

	if err := f.emit(EventSongUploaded, songIDArg(id), p.Title, caller, p.Price, p.Royalty); err != nil {
		return 0, err
	}
	log.Info("Song uploaded", "id", id, "title", p.Title, "artist", caller.Hex(), "price", p.Price,
		"royalty", p.Royalty, "exclusive", p.Exclusive)
	return id, nil
}

func songIDArg(id uint64) *big.Int {
	return new(big.Int).SetUint64(id)
}
