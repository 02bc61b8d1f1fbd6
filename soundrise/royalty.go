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
)

// MaxRoyalty caps the royalty percentage at 100%.
const MaxRoyalty = 100

// percentBase is the denominator for royalty math.
var percentBase = big.NewInt(100)

// RoyaltySplit divides a play payment between the song's artist and the
// marketplace. The artist receives floor(payment * royalty / 100) and the
// marketplace retains the remainder, so rounding always favours retention.
func RoyaltySplit(payment *big.Int, royalty uint8) (artistShare, retained *big.Int, err error) {
	if payment.Sign() < 0 {
		return nil, nil, ErrInvalidValue
	}
	if royalty > MaxRoyalty {
		return nil, nil, ErrInvalidRoyalty
	}
	// artistShare = payment * royalty / 100
	artistShare = new(big.Int).Mul(payment, big.NewInt(int64(royalty)))
	artistShare.Div(artistShare, percentBase)

	retained = new(big.Int).Sub(payment, artistShare)
	return artistShare, retained, nil
}
