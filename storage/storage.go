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


// Package storage persists marketplace, token and native-currency state in a
// SQL database through gorm. Every save rewrites the full state inside one
// transaction.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/GetomG/soundrise-project/soundrise"
	"github.com/GetomG/soundrise-project/token"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Snapshot is the complete persisted state.
type Snapshot struct {
	Market *soundrise.State
	Token  *token.State
	Native map[common.Address]*big.Int
}

// Store reads and writes snapshots.
type Store struct {
	db *gorm.DB
}

// Open connects to the database and migrates the schema. Supported drivers
// are "sqlite" and "postgres".
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: connect: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dialector.Name() == "sqlite" {
		// a single connection keeps in-memory databases alive and shared
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	s := New(db)
	if err := s.AutoMigrate(); err != nil {
		return nil, err
	}
	log.Info("Database connected", "driver", dialector.Name())
	return s, nil
}

// New wraps an existing connection. The schema is not migrated.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the tables.
func (s *Store) AutoMigrate() error {
	err := s.db.AutoMigrate(
		&Artist{},
		&Song{},
		&Record{},
		&Balance{},
		&Allowance{},
		&Meta{},
	)
	if err != nil {
		return fmt.Errorf("storage: migrate: %w", err)
	}
	return nil
}

// DB returns the underlying connection.
func (s *Store) DB() *gorm.DB { return s.db }

// Close releases the connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save replaces the stored state with snap.
func (s *Store) Save(ctx context.Context, snap *Snapshot) error {
	if snap == nil || snap.Market == nil || snap.Token == nil {
		return errors.New("storage: incomplete snapshot")
	}
	artists, songs, records := marketRows(snap.Market)
	balances, allowances := ledgerRows(snap.Token, snap.Native)
	metas := []Meta{
		{Name: metaSongCount, Value: strconv.FormatUint(snap.Market.SongCount, 10)},
		{Name: metaRetained, Value: formatBig(snap.Market.Retained)},
		{Name: metaSequence, Value: strconv.FormatUint(snap.Market.Sequence, 10)},
		{Name: metaTokenOwner, Value: snap.Token.Owner.Hex()},
		{Name: metaTokenSupply, Value: formatBig(snap.Token.Supply)},
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&Artist{}, &Song{}, &Record{}, &Balance{}, &Allowance{}, &Meta{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if err := createAll(tx, artists); err != nil {
			return err
		}
		if err := createAll(tx, songs); err != nil {
			return err
		}
		if err := createAll(tx, records); err != nil {
			return err
		}
		if err := createAll(tx, balances); err != nil {
			return err
		}
		if err := createAll(tx, allowances); err != nil {
			return err
		}
		return tx.Create(&metas).Error
	})
	if err != nil {
		return fmt.Errorf("storage: save: %w", err)
	}
	log.Debug("Persisted ledger state", "songs", len(songs), "records", len(records), "balances", len(balances), "sequence", snap.Market.Sequence)
	return nil
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// Load reads the stored state. It returns nil without error when nothing has
// been saved yet.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	db := s.db.WithContext(ctx)

	var metas []Meta
	if err := db.Find(&metas).Error; err != nil {
		return nil, fmt.Errorf("storage: load meta: %w", err)
	}
	if len(metas) == 0 {
		return nil, nil
	}
	var (
		artists    []Artist
		songs      []Song
		records    []Record
		balances   []Balance
		allowances []Allowance
	)
	if err := db.Order("account").Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("storage: load artists: %w", err)
	}
	if err := db.Order("id").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("storage: load songs: %w", err)
	}
	if err := db.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("storage: load records: %w", err)
	}
	if err := db.Order("id").Find(&balances).Error; err != nil {
		return nil, fmt.Errorf("storage: load balances: %w", err)
	}
	if err := db.Order("id").Find(&allowances).Error; err != nil {
		return nil, fmt.Errorf("storage: load allowances: %w", err)
	}
	snap, err := decode(metas, artists, songs, records, balances, allowances)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return snap, nil
}
