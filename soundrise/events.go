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
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Event names, as declared in the SoundRise ABI.
const (
	EventArtistRegistered              = "ArtistRegistered"
	EventSongUploaded                  = "SongUploaded"
	EventSongPurchased                 = "SongPurchased"
	EventSongPlayed                    = "SongPlayed"
	EventSongRated                     = "SongRated"
	EventExclusiveContentAccessGranted = "ExclusiveContentAccessGranted"
	EventRetainedWithdrawn             = "RetainedWithdrawn"
)

// encodeLog builds a log the way the EVM would for the named event: topic 0
// is the event ID, indexed arguments follow as topics and the rest is ABI
// encoded into the data field. args must follow the ABI input order.
func (m *Market) encodeLog(name string, args ...interface{}) (*types.Log, error) {
	ev, ok := m.abi.Events[name]
	if !ok {
		return nil, fmt.Errorf("soundrise: unknown event %q", name)
	}
	if len(args) != len(ev.Inputs) {
		return nil, fmt.Errorf("soundrise: event %s takes %d arguments, got %d", name, len(ev.Inputs), len(args))
	}
	var (
		indexed [][]interface{}
		data    []interface{}
	)
	for i, input := range ev.Inputs {
		if input.Indexed {
			indexed = append(indexed, []interface{}{args[i]})
		} else {
			data = append(data, args[i])
		}
	}
	topics := []common.Hash{ev.ID}
	if len(indexed) > 0 {
		rules, err := abi.MakeTopics(indexed...)
		if err != nil {
			return nil, fmt.Errorf("soundrise: event %s topics: %v", name, err)
		}
		for _, rule := range rules {
			topics = append(topics, rule[0])
		}
	}
	packed, err := ev.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		return nil, fmt.Errorf("soundrise: event %s data: %v", name, err)
	}
	return &types.Log{
		Address: m.address,
		Topics:  topics,
		Data:    packed,
	}, nil
}
