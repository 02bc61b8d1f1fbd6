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


package node

import (
	"fmt"
	"math/big"

	"github.com/GetomG/soundrise-project/soundrise"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Namespace is the JSON-RPC namespace of the marketplace API.
const Namespace = "soundrise"

// API exposes marketplace queries over JSON-RPC. Writes need an
// authenticated caller and are only served over HTTP.
type API struct {
	node *Node
}

// NewAPI creates a JSON-RPC API backed by the given node.
func NewAPI(node *Node) *API {
	return &API{node: node}
}

// NewRPCServer returns a JSON-RPC server with the API registered.
func NewRPCServer(node *Node) (*rpc.Server, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName(Namespace, NewAPI(node)); err != nil {
		return nil, err
	}
	return srv, nil
}

// SongCount handles "soundrise_songCount" RPC calls.
func (api *API) SongCount() hexutil.Uint64 {
	return hexutil.Uint64(api.node.Market().SongCount())
}

// GetSong handles "soundrise_getSong" RPC calls.
func (api *API) GetSong(id hexutil.Uint64) (*soundrise.Song, error) {
	return api.node.Market().Song(uint64(id))
}

// GetArtist handles "soundrise_getArtist" RPC calls. Unregistered accounts
// come back with Registered unset.
func (api *API) GetArtist(account common.Address) soundrise.Artist {
	a, _ := api.node.Market().Artist(account)
	return a
}

// Entitlements is the per-account view of a song.
type Entitlements struct {
	Purchased       bool `json:"purchased"`
	ExclusiveAccess bool `json:"exclusiveAccess"`
	Rated           bool `json:"rated"`
	CanPlay         bool `json:"canPlay"`
}

// GetEntitlements handles "soundrise_getEntitlements" RPC calls.
func (api *API) GetEntitlements(id hexutil.Uint64, account common.Address) Entitlements {
	m := api.node.Market()
	return Entitlements{
		Purchased:       m.HasPurchased(uint64(id), account),
		ExclusiveAccess: m.HasExclusiveAccess(uint64(id), account),
		Rated:           m.HasRated(uint64(id), account),
		CanPlay:         m.CanPlay(uint64(id), account),
	}
}

// GetBalance handles "soundrise_getBalance" RPC calls and returns the native
// balance in wei.
func (api *API) GetBalance(account common.Address) *hexutil.Big {
	return (*hexutil.Big)(api.node.NativeBalance(account))
}

// GetTokenBalance handles "soundrise_getTokenBalance" RPC calls.
func (api *API) GetTokenBalance(account common.Address) *hexutil.Big {
	return (*hexutil.Big)(api.node.TokenBalance(account))
}

// GetRetained handles "soundrise_getRetained" RPC calls.
func (api *API) GetRetained() *hexutil.Big {
	return (*hexutil.Big)(api.node.Market().Retained())
}

// QuotePlay handles "soundrise_quotePlay" RPC calls: the artist's share and
// the retained remainder of a play payment.
func (api *API) QuotePlay(id hexutil.Uint64, paymentWei string) (map[string]string, error) {
	payment, ok := new(big.Int).SetString(paymentWei, 10)
	if !ok {
		return nil, fmt.Errorf("invalid payment: %s", paymentWei)
	}
	song, err := api.node.Market().Song(uint64(id))
	if err != nil {
		return nil, err
	}
	share, retained, err := soundrise.RoyaltySplit(payment, song.Royalty)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"artistShare": share.String(),
		"retained":    retained.String(),
	}, nil
}
