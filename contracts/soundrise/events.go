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

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrUnknownEvent is returned by ParseLog for logs that are not SoundRise
// events.
var ErrUnknownEvent = errors.New("soundrise: unknown event")

// SoundRiseArtistRegistered is an ArtistRegistered event.
type SoundRiseArtistRegistered struct {
	Artist common.Address
	Name   string
	Raw    types.Log
}

// SoundRiseSongUploaded is a SongUploaded event.
type SoundRiseSongUploaded struct {
	SongId  *big.Int
	Title   string
	Artist  common.Address
	Price   *big.Int
	Royalty uint8
	Raw     types.Log
}

// SoundRiseSongPurchased is a SongPurchased event.
type SoundRiseSongPurchased struct {
	SongId *big.Int
	Buyer  common.Address
	Raw    types.Log
}

// SoundRiseSongPlayed is a SongPlayed event.
type SoundRiseSongPlayed struct {
	SongId        *big.Int
	Listener      common.Address
	Payment       *big.Int
	RoyaltyAmount *big.Int
	Raw           types.Log
}

// SoundRiseSongRated is a SongRated event.
type SoundRiseSongRated struct {
	SongId *big.Int
	Rater  common.Address
	Rating uint8
	Raw    types.Log
}

// SoundRiseExclusiveContentAccessGranted is an ExclusiveContentAccessGranted
// event.
type SoundRiseExclusiveContentAccessGranted struct {
	User   common.Address
	SongId *big.Int
	Raw    types.Log
}

// SoundRiseRetainedWithdrawn is a RetainedWithdrawn event.
type SoundRiseRetainedWithdrawn struct {
	To     common.Address
	Amount *big.Int
	Raw    types.Log
}

// ParseArtistRegistered decodes an ArtistRegistered log.
func (c *SoundRise) ParseArtistRegistered(log types.Log) (*SoundRiseArtistRegistered, error) {
	event := new(SoundRiseArtistRegistered)
	if err := c.contract.UnpackLog(event, "ArtistRegistered", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}

// ParseSongUploaded decodes a SongUploaded log.
func (c *SoundRise) ParseSongUploaded(log types.Log) (*SoundRiseSongUploaded, error) {
	event := new(SoundRiseSongUploaded)
	if err := c.contract.UnpackLog(event, "SongUploaded", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}

// ParseSongPurchased decodes a SongPurchased log.
func (c *SoundRise) ParseSongPurchased(log types.Log) (*SoundRiseSongPurchased, error) {
	event := new(SoundRiseSongPurchased)
	if err := c.contract.UnpackLog(event, "SongPurchased", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}

// ParseSongPlayed decodes a SongPlayed log.
func (c *SoundRise) ParseSongPlayed(log types.Log) (*SoundRiseSongPlayed, error) {
	event := new(SoundRiseSongPlayed)
	if err := c.contract.UnpackLog(event, "SongPlayed", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}

// ParseSongRated decodes a SongRated log.
func (c *SoundRise) ParseSongRated(log types.Log) (*SoundRiseSongRated, error) {
	event := new(SoundRiseSongRated)
	if err := c.contract.UnpackLog(event, "SongRated", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}

// ParseExclusiveContentAccessGranted decodes an ExclusiveContentAccessGranted log.
func (c *SoundRise) ParseExclusiveContentAccessGranted(log types.Log) (*SoundRiseExclusiveContentAccessGranted, error) {
	event := new(SoundRiseExclusiveContentAccessGranted)
	if err := c.contract.UnpackLog(event, "ExclusiveContentAccessGranted", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}

// ParseRetainedWithdrawn decodes a RetainedWithdrawn log.
func (c *SoundRise) ParseRetainedWithdrawn(log types.Log) (*SoundRiseRetainedWithdrawn, error) {
	event := new(SoundRiseRetainedWithdrawn)
	if err := c.contract.UnpackLog(event, "RetainedWithdrawn", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}

// EventName returns the name of the SoundRise event a log carries.
func (c *SoundRise) EventName(log types.Log) (string, error) {
	if len(log.Topics) == 0 {
		return "", ErrUnknownEvent
	}
	ev, err := c.abi.EventByID(log.Topics[0])
	if err != nil {
		return "", ErrUnknownEvent
	}
	return ev.Name, nil
}

// ParseLog decodes any SoundRise log into its typed event.
func (c *SoundRise) ParseLog(log types.Log) (interface{}, error) {
	name, err := c.EventName(log)
	if err != nil {
		return nil, err
	}
	switch name {
	case "ArtistRegistered":
		return c.ParseArtistRegistered(log)
	case "SongUploaded":
		return c.ParseSongUploaded(log)
	case "SongPurchased":
		return c.ParseSongPurchased(log)
	case "SongPlayed":
		return c.ParseSongPlayed(log)
	case "SongRated":
		return c.ParseSongRated(log)
	case "ExclusiveContentAccessGranted":
		return c.ParseExclusiveContentAccessGranted(log)
	case "RetainedWithdrawn":
		return c.ParseRetainedWithdrawn(log)
	}
	return nil, ErrUnknownEvent
}
