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

// Artist is a row of the artists table.
type Artist struct {
	Account string `gorm:"column:account;primaryKey;size:42"`
	Name    string `gorm:"column:name;not null"`
}

func (Artist) TableName() string { return "artists" }

// Song is a row of the songs table. Amounts are decimal strings so that
// 256-bit values survive every driver unchanged.
type Song struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	Title       string `gorm:"column:title;not null"`
	Artist      string `gorm:"column:artist;size:42;index;not null"`
	Price       string `gorm:"column:price;size:78;not null"`
	ContentURI  string `gorm:"column:content_uri"`
	Royalty     uint8  `gorm:"column:royalty;not null"`
	Classified  bool   `gorm:"column:classified;not null;default:false"`
	Exclusive   bool   `gorm:"column:exclusive;not null;default:false"`
	UnlockCost  string `gorm:"column:unlock_cost;size:78;not null"`
	Rating      uint8  `gorm:"column:rating;not null;default:0"`
	RatingCount uint64 `gorm:"column:rating_count;not null;default:0"`
	RatingTotal uint64 `gorm:"column:rating_total;not null;default:0"`
	PlayCount   uint64 `gorm:"column:play_count;not null;default:0"`
}

func (Song) TableName() string { return "songs" }

// Record kinds.
const (
	KindPurchase = "purchase"
	KindAccess   = "access"
	KindRating   = "rating"
)

// Record is a (song, account) flag: a purchase, an exclusive unlock or a
// rating.
type Record struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Kind    string `gorm:"column:kind;size:16;not null;uniqueIndex:idx_records_kind_song_account,priority:1"`
	SongID  uint64 `gorm:"column:song_id;not null;uniqueIndex:idx_records_kind_song_account,priority:2"`
	Account string `gorm:"column:account;size:42;not null;uniqueIndex:idx_records_kind_song_account,priority:3"`
}

func (Record) TableName() string { return "records" }

// Ledger names.
const (
	LedgerNative = "native"
	LedgerToken  = "token"
)

// Balance is an account balance on one of the two ledgers.
type Balance struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Ledger  string `gorm:"column:ledger;size:16;not null;uniqueIndex:idx_balances_ledger_account,priority:1"`
	Account string `gorm:"column:account;size:42;not null;uniqueIndex:idx_balances_ledger_account,priority:2"`
	Amount  string `gorm:"column:amount;size:78;not null"`
}

func (Balance) TableName() string { return "balances" }

// Allowance is a token approval.
type Allowance struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Owner   string `gorm:"column:owner;size:42;not null;uniqueIndex:idx_allowances_owner_spender,priority:1"`
	Spender string `gorm:"column:spender;size:42;not null;uniqueIndex:idx_allowances_owner_spender,priority:2"`
	Amount  string `gorm:"column:amount;size:78;not null"`
}

func (Allowance) TableName() string { return "allowances" }

// Meta holds scalar ledger values keyed by name.
type Meta struct {
	Name  string `gorm:"column:name;primaryKey;size:32"`
	Value string `gorm:"column:value;not null"`
}

func (Meta) TableName() string { return "meta" }

// Meta keys.
const (
	metaSongCount   = "song_count"
	metaRetained    = "retained"
	metaSequence    = "sequence"
	metaTokenOwner  = "token_owner"
	metaTokenSupply = "token_supply"
)
