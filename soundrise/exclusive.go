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

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// RedeemExclusiveContent unlocks an exclusive song by moving its unlock cost
// in SRT from the caller to the artist. The caller must have approved the
// marketplace as spender beforehand; allowance failures surface as token
// ledger errors.
func (m *Market) RedeemExclusiveContent(ctx context.Context, caller common.Address, id uint64) (err error) {
	ctx, f, err := m.begin(ctx, "redeemExclusiveContent", caller, nil)
	if err != nil {
		return err
	}
	defer func() { f.end(err) }()

	song, err := m.song(id)
	if err != nil {
		return err
	}
	if !song.Exclusive {
		return ErrNotExclusive
	}
	if m.access.has(id, caller) {
		return ErrAlreadyUnlocked
	}
	cost := song.UnlockCost
	if bal := m.token.BalanceOf(caller); bal.Cmp(cost) < 0 {
		return fmt.Errorf("%w: have %s, need %s", ErrInsufficientTokenBalance, bal, cost)
	}
	f.setRecord(m.access, id, caller)

	if err := f.emit(EventExclusiveContentAccessGranted, caller, songIDArg(id)); err != nil {
		return err
	}
	if err := f.outbound(func() error { return m.token.TransferFrom(ctx, m.address, caller, song.Artist, cost) }); err != nil {
		return fmt.Errorf("soundrise: redeem song %d: %w", id, err)
	}
	log.Info("Exclusive content unlocked", "id", id, "user", caller.Hex(), "cost", cost, "artist", song.Artist.Hex())
	return nil
}
