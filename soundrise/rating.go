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

// Accepted rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// RatingPolicy computes a song's stored rating after a new submission. song
// holds the state before the submission is counted.
type RatingPolicy func(song Song, submitted uint8) uint8

// LatestRating stores the most recent submission.
func LatestRating(song Song, submitted uint8) uint8 {
	return submitted
}

// AverageRating stores the mean of all accepted submissions, rounded half up.
func AverageRating(song Song, submitted uint8) uint8 {
	total := song.RatingTotal + uint64(submitted)
	count := song.RatingCount + 1
	return uint8((2*total + count) / (2 * count))
}

// RatingPolicyByName resolves a configured policy name: "latest" (or empty)
// and "average".
func RatingPolicyByName(name string) (RatingPolicy, error) {
	switch name {
	case "", "latest":
		return LatestRating, nil
	case "average":
		return AverageRating, nil
	default:
		return nil, fmt.Errorf("soundrise: unknown rating policy %q", name)
	}
}

// RateSong records the caller's rating of a purchased song and mints the
// rating reward to the caller. Each account may rate a song once; unlocking
// an exclusive song does not qualify.
func (m *Market) RateSong(ctx context.Context, caller common.Address, id uint64, rating uint8) (err error) {
	ctx, f, err := m.begin(ctx, "rateSong", caller, nil)
	if err != nil {
		return err
	}
	defer func() { f.end(err) }()

	song, err := m.song(id)
	if err != nil {
		return err
	}
	if !m.purchases.has(id, caller) {
		return ErrNotPurchased
	}
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	if m.ratings.has(id, caller) {
		return ErrAlreadyRated
	}
	f.setRecord(m.ratings, id, caller)

	prevRating, prevCount, prevTotal := song.Rating, song.RatingCount, song.RatingTotal
	song.Rating = m.policy(*song, rating)
	song.RatingCount++
	song.RatingTotal += uint64(rating)
	f.journal(func() {
		song.Rating, song.RatingCount, song.RatingTotal = prevRating, prevCount, prevTotal
	})

	if err := f.emit(EventSongRated, songIDArg(id), caller, rating); err != nil {
		return err
	}
	if m.minter == nil {
		return fmt.Errorf("%w: no minting capability configured", ErrRewardMintFailed)
	}
	if err := f.outbound(func() error { return m.minter.Mint(ctx, caller, m.reward) }); err != nil {
		return fmt.Errorf("%w: %w", ErrRewardMintFailed, err)
	}
	log.Info("Song rated", "id", id, "rater", caller.Hex(), "rating", rating, "stored", song.Rating, "reward", m.reward)
	return nil
}
