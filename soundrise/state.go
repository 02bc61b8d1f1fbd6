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
	"errors"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// State is a point-in-time copy of the marketplace used for persistence.
// Event logs are not part of it.
type State struct {
	Artists   []Artist `json:"artists"`
	Songs     []Song   `json:"songs"`
	SongCount uint64   `json:"song_count"`
	Purchases []Record `json:"purchases"`
	Access    []Record `json:"access"`
	Ratings   []Record `json:"ratings"`
	Retained  *big.Int `json:"retained"`
	Sequence  uint64   `json:"sequence"`
}

// Export copies the marketplace state. Slices are sorted so that two exports
// of the same state are identical.
func (m *Market) Export() *State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := &State{
		SongCount: m.songCount,
		Retained:  new(big.Int).Set(m.retained),
		Sequence:  m.seq,
		Purchases: sortedRecords(m.purchases),
		Access:    sortedRecords(m.access),
		Ratings:   sortedRecords(m.ratings),
	}
	for _, a := range m.artists {
		st.Artists = append(st.Artists, *a)
	}
	sort.Slice(st.Artists, func(i, j int) bool {
		return st.Artists[i].Account.Hex() < st.Artists[j].Account.Hex()
	})
	for id := uint64(1); id <= m.songCount; id++ {
		if s, ok := m.songs[id]; ok {
			st.Songs = append(st.Songs, *s.copy())
		}
	}
	return st
}

// Restore loads an exported state into an empty marketplace.
func (m *Market) Restore(st *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.songCount != 0 || len(m.artists) != 0 || m.seq != 0 {
		return errors.New("soundrise: restore into a non-empty marketplace")
	}
	return m.load(st)
}

// Revert replaces the marketplace contents with an earlier export and drops
// the logs committed after it. Logs already delivered to subscribers are not
// recalled.
func (m *Market) Revert(st *State) error {
	if m.active.Load() != nil {
		return ErrReentrantCall
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if st.Sequence > m.seq {
		return errors.New("soundrise: revert to a later state")
	}
	m.artists = make(map[common.Address]*Artist)
	m.songs = make(map[uint64]*Song)
	m.purchases = make(recordSet)
	m.access = make(recordSet)
	m.ratings = make(recordSet)
	m.retained = new(big.Int)

	keep := len(m.logs)
	for keep > 0 && m.logs[keep-1].BlockNumber > st.Sequence {
		keep--
	}
	m.logs = m.logs[:keep]
	return m.load(st)
}

func (m *Market) load(st *State) error {
	for i := range st.Artists {
		a := st.Artists[i]
		m.artists[a.Account] = &a
	}
	for i := range st.Songs {
		s := st.Songs[i].copy()
		if s.ID == 0 || s.ID > st.SongCount {
			return errors.New("soundrise: restored song identifier out of range")
		}
		m.songs[s.ID] = s
	}
	for _, r := range st.Purchases {
		m.purchases[r] = struct{}{}
	}
	for _, r := range st.Access {
		m.access[r] = struct{}{}
	}
	for _, r := range st.Ratings {
		m.ratings[r] = struct{}{}
	}
	m.songCount = st.SongCount
	m.seq = st.Sequence
	if st.Retained != nil {
		m.retained.Set(st.Retained)
	}
	return nil
}

func sortedRecords(set recordSet) []Record {
	out := make([]Record, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SongID != out[j].SongID {
			return out[i].SongID < out[j].SongID
		}
		return out[i].Account.Hex() < out[j].Account.Hex()
	})
	return out
}
