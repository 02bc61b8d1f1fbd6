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
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
)

// frame is one running operation. While a frame is active the marketplace
// refuses every other write, whatever context it arrives with, so a receiver
// calling back into the marketplace fails with ErrReentrantCall. The state
// lock is released around outbound calls so receivers may still query.
type frame struct {
	m        *Market
	op       string
	caller   common.Address
	snapshot int
	undo     []func()
	logs     []*types.Log
}

// begin opens a frame: it rejects re-entry, snapshots the native ledger,
// escrows the attached value and takes the state lock.
func (m *Market) begin(ctx context.Context, op string, caller common.Address, value *big.Int) (context.Context, *frame, error) {
	if value != nil && value.Sign() < 0 {
		return ctx, nil, ErrInvalidValue
	}
	f := &frame{m: m, op: op, caller: caller}
	if !m.active.CompareAndSwap(nil, f) {
		if outer := m.active.Load(); outer != nil {
			log.Debug("Reentrant marketplace call rejected", "op", op, "outer", outer.op, "caller", caller.Hex())
		}
		return ctx, nil, ErrReentrantCall
	}
	f.snapshot = m.native.Snapshot()

	if value != nil && value.Sign() > 0 {
		if err := m.native.Transfer(ctx, caller, m.address, value); err != nil {
			m.native.RevertToSnapshot(f.snapshot)
			m.active.Store(nil)
			return ctx, nil, fmt.Errorf("soundrise: escrow payment: %w", err)
		}
	}
	m.mu.Lock()
	return ctx, f, nil
}

// outbound runs a call that may execute receiver code. Record flags written
// so far are visible to queries made from inside the call.
func (f *frame) outbound(call func() error) error {
	f.m.mu.Unlock()
	defer f.m.mu.Lock()
	return call()
}

// end commits the frame when err is nil and rolls everything back otherwise.
// Committed logs are published after the lock is released.
func (f *frame) end(err error) {
	m := f.m
	if err != nil {
		for i := len(f.undo) - 1; i >= 0; i-- {
			f.undo[i]()
		}
		m.native.RevertToSnapshot(f.snapshot)
		m.mu.Unlock()
		m.active.Store(nil)
		log.Debug("Marketplace operation rejected", "op", f.op, "caller", f.caller.Hex(), "err", err)
		return
	}
	m.seq++
	txHash := crypto.Keccak256Hash(m.address.Bytes(), f.caller.Bytes(), new(big.Int).SetUint64(m.seq).Bytes())
	for i, l := range f.logs {
		l.BlockNumber = m.seq
		l.TxHash = txHash
		l.Index = uint(len(m.logs))
		l.TxIndex = uint(i)
		m.logs = append(m.logs, l)
	}
	m.mu.Unlock()
	m.active.Store(nil)

	for _, l := range f.logs {
		m.feed.Send(l)
	}
}

// journal registers an undo step for a state write.
func (f *frame) journal(undo func()) {
	f.undo = append(f.undo, undo)
}

func (f *frame) setRecord(set recordSet, id uint64, account common.Address) {
	key := Record{SongID: id, Account: account}
	set[key] = struct{}{}
	f.journal(func() { delete(set, key) })
}

func (f *frame) addRetained(amount *big.Int) {
	prev := new(big.Int).Set(f.m.retained)
	f.m.retained.Add(f.m.retained, amount)
	f.journal(func() { f.m.retained.Set(prev) })
}

// emit encodes an event; it is recorded only if the frame commits.
func (f *frame) emit(name string, args ...interface{}) error {
	l, err := f.m.encodeLog(name, args...)
	if err != nil {
		return err
	}
	f.logs = append(f.logs, l)
	return nil
}

// song looks up a song for mutation. Must hold the operation lock.
func (m *Market) song(id uint64) (*Song, error) {
	s, ok := m.songs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSong, id)
	}
	return s, nil
}
