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
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// PurchaseSong buys a non-exclusive song with the attached native value. The
// whole value, including any excess over the price, is forwarded to the
// song's artist.
func (m *Market) PurchaseSong(ctx context.Context, caller common.Address, value *big.Int, id uint64) (err error) {
	ctx, f, err := m.begin(ctx, "purchaseSong", caller, value)
	if err != nil {
		return err
	}
	defer func() { f.end(err) }()

	song, err := m.song(id)
	if err != nil {
		return err
	}
	if song.Exclusive {
		return ErrExclusiveNotPurchasable
	}
	if value == nil || value.Cmp(song.Price) < 0 {
		return fmt.Errorf("%w: price is %s wei", ErrInsufficientPayment, song.Price)
	}
	if m.purchases.has(id, caller) {
		return ErrAlreadyPurchased
	}
	f.setRecord(m.purchases, id, caller)

	if err := f.outbound(func() error { return m.native.Transfer(ctx, m.address, song.Artist, value) }); err != nil {
		return fmt.Errorf("soundrise: pay artist: %w", err)
	}
	if err := f.emit(EventSongPurchased, songIDArg(id), caller); err != nil {
		return err
	}
	log.Info("Song purchased", "id", id, "buyer", caller.Hex(), "value", value, "artist", song.Artist.Hex())
	return nil
}

// PlaySong pays for one play of a song the caller bought or unlocked. The
// artist receives the royalty share of the attached value and the marketplace
// retains the rest. Plays are unbounded.
func (m *Market) PlaySong(ctx context.Context, caller common.Address, value *big.Int, id uint64) (err error) {
	ctx, f, err := m.begin(ctx, "playSong", caller, value)
	if err != nil {
		return err
	}
	defer func() { f.end(err) }()

	song, err := m.song(id)
	if err != nil {
		return err
	}
	if !m.entitled(id, caller) {
		return ErrNotEntitled
	}
	if value == nil || value.Sign() == 0 {
		return fmt.Errorf("%w: a play requires a payment", ErrInsufficientPayment)
	}
	share, rest, err := RoyaltySplit(value, song.Royalty)
	if err != nil {
		return err
	}
	song.PlayCount++
	f.journal(func() { song.PlayCount-- })
	f.addRetained(rest)

	if share.Sign() > 0 {
		if err := f.outbound(func() error { return m.native.Transfer(ctx, m.address, song.Artist, share) }); err != nil {
			return fmt.Errorf("soundrise: pay royalty: %w", err)
		}
	}
	if err := f.emit(EventSongPlayed, songIDArg(id), caller, value, share); err != nil {
		return err
	}
	log.Info("Song played", "id", id, "listener", caller.Hex(), "payment", value, "royalty", share, "retained", rest)
	return nil
}

// WithdrawRetained sends the whole retained play remainder to to. Only the
// marketplace owner may call it.
func (m *Market) WithdrawRetained(ctx context.Context, caller, to common.Address) (amount *big.Int, err error) {
	ctx, f, err := m.begin(ctx, "withdrawRetained", caller, nil)
	if err != nil {
		return nil, err
	}
	defer func() { f.end(err) }()

	if caller != m.owner {
		return nil, ErrNotOwner
	}
	if m.retained.Sign() == 0 {
		return nil, ErrNothingRetained
	}
	amount = new(big.Int).Set(m.retained)
	f.addRetained(new(big.Int).Neg(amount))

	if err := f.outbound(func() error { return m.native.Transfer(ctx, m.address, to, amount) }); err != nil {
		return nil, fmt.Errorf("soundrise: withdraw: %w", err)
	}
	if err := f.emit(EventRetainedWithdrawn, to, amount); err != nil {
		return nil, err
	}
	log.Info("Retained funds withdrawn", "to", to.Hex(), "amount", amount)
	return amount, nil
}
