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


package storage

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"

	"github.com/GetomG/soundrise-project/soundrise"
	"github.com/GetomG/soundrise-project/token"
	"github.com/ethereum/go-ethereum/common"
)

func marketRows(st *soundrise.State) ([]Artist, []Song, []Record) {
	artists := make([]Artist, 0, len(st.Artists))
	for _, a := range st.Artists {
		artists = append(artists, Artist{Account: a.Account.Hex(), Name: a.Name})
	}
	songs := make([]Song, 0, len(st.Songs))
	for _, s := range st.Songs {
		songs = append(songs, Song{
			ID:          s.ID,
			Title:       s.Title,
			Artist:      s.Artist.Hex(),
			Price:       formatBig(s.Price),
			ContentURI:  s.ContentURI,
			Royalty:     s.Royalty,
			Classified:  s.Classified,
			Exclusive:   s.Exclusive,
			UnlockCost:  formatBig(s.UnlockCost),
			Rating:      s.Rating,
			RatingCount: s.RatingCount,
			RatingTotal: s.RatingTotal,
			PlayCount:   s.PlayCount,
		})
	}
	var records []Record
	add := func(kind string, set []soundrise.Record) {
		for _, r := range set {
			records = append(records, Record{Kind: kind, SongID: r.SongID, Account: r.Account.Hex()})
		}
	}
	add(KindPurchase, st.Purchases)
	add(KindAccess, st.Access)
	add(KindRating, st.Ratings)
	return artists, songs, records
}

func ledgerRows(tok *token.State, native map[common.Address]*big.Int) ([]Balance, []Allowance) {
	var balances []Balance
	for _, account := range sortedAccounts(native) {
		balances = append(balances, Balance{Ledger: LedgerNative, Account: account.Hex(), Amount: formatBig(native[account])})
	}
	for _, account := range sortedAccounts(tok.Balances) {
		balances = append(balances, Balance{Ledger: LedgerToken, Account: account.Hex(), Amount: formatBig(tok.Balances[account])})
	}
	allowances := make([]Allowance, 0, len(tok.Allowances))
	for _, a := range tok.Allowances {
		allowances = append(allowances, Allowance{Owner: a.Owner.Hex(), Spender: a.Spender.Hex(), Amount: formatBig(a.Amount)})
	}
	return balances, allowances
}

func decode(metas []Meta, artists []Artist, songs []Song, records []Record, balances []Balance, allowances []Allowance) (*Snapshot, error) {
	values := make(map[string]string, len(metas))
	for _, m := range metas {
		values[m.Name] = m.Value
	}
	market := &soundrise.State{}
	tok := &token.State{Balances: make(map[common.Address]*big.Int)}
	native := make(map[common.Address]*big.Int)

	var err error
	if market.SongCount, err = strconv.ParseUint(values[metaSongCount], 10, 64); err != nil {
		return nil, fmt.Errorf("invalid %s: %v", metaSongCount, err)
	}
	if market.Sequence, err = strconv.ParseUint(values[metaSequence], 10, 64); err != nil {
		return nil, fmt.Errorf("invalid %s: %v", metaSequence, err)
	}
	if market.Retained, err = parseBig(values[metaRetained]); err != nil {
		return nil, err
	}
	if tok.Owner, err = parseAddress(values[metaTokenOwner]); err != nil {
		return nil, err
	}
	if tok.Supply, err = parseBig(values[metaTokenSupply]); err != nil {
		return nil, err
	}

	for _, row := range artists {
		account, err := parseAddress(row.Account)
		if err != nil {
			return nil, err
		}
		market.Artists = append(market.Artists, soundrise.Artist{Account: account, Name: row.Name, Registered: true})
	}
	for _, row := range songs {
		s, err := decodeSong(row)
		if err != nil {
			return nil, fmt.Errorf("song %d: %w", row.ID, err)
		}
		market.Songs = append(market.Songs, s)
	}
	for _, row := range records {
		account, err := parseAddress(row.Account)
		if err != nil {
			return nil, err
		}
		r := soundrise.Record{SongID: row.SongID, Account: account}
		switch row.Kind {
		case KindPurchase:
			market.Purchases = append(market.Purchases, r)
		case KindAccess:
			market.Access = append(market.Access, r)
		case KindRating:
			market.Ratings = append(market.Ratings, r)
		default:
			return nil, fmt.Errorf("unknown record kind %q", row.Kind)
		}
	}
	for _, row := range balances {
		account, err := parseAddress(row.Account)
		if err != nil {
			return nil, err
		}
		amount, err := parseBig(row.Amount)
		if err != nil {
			return nil, err
		}
		switch row.Ledger {
		case LedgerNative:
			native[account] = amount
		case LedgerToken:
			tok.Balances[account] = amount
		default:
			return nil, fmt.Errorf("unknown ledger %q", row.Ledger)
		}
	}
	for _, row := range allowances {
		owner, err := parseAddress(row.Owner)
		if err != nil {
			return nil, err
		}
		spender, err := parseAddress(row.Spender)
		if err != nil {
			return nil, err
		}
		amount, err := parseBig(row.Amount)
		if err != nil {
			return nil, err
		}
		tok.Allowances = append(tok.Allowances, token.Allowance{Owner: owner, Spender: spender, Amount: amount})
	}
	return &Snapshot{Market: market, Token: tok, Native: native}, nil
}

func decodeSong(row Song) (soundrise.Song, error) {
	artist, err := parseAddress(row.Artist)
	if err != nil {
		return soundrise.Song{}, err
	}
	price, err := parseBig(row.Price)
	if err != nil {
		return soundrise.Song{}, err
	}
	unlock, err := parseBig(row.UnlockCost)
	if err != nil {
		return soundrise.Song{}, err
	}
	return soundrise.Song{
		ID:          row.ID,
		Title:       row.Title,
		Artist:      artist,
		Price:       price,
		ContentURI:  row.ContentURI,
		Royalty:     row.Royalty,
		Classified:  row.Classified,
		Exclusive:   row.Exclusive,
		UnlockCost:  unlock,
		Rating:      row.Rating,
		RatingCount: row.RatingCount,
		RatingTotal: row.RatingTotal,
		PlayCount:   row.PlayCount,
	}, nil
}

func formatBig(x *big.Int) string {
	if x == nil {
		return "0"
	}
	return x.String()
}

func parseBig(s string) (*big.Int, error) {
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return x, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func sortedAccounts(m map[common.Address]*big.Int) []common.Address {
	out := make([]common.Address, 0, len(m))
	for account := range m {
		out = append(out, account)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hex() < out[j].Hex() })
	return out
}
