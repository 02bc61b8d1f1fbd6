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

// Package contract contains the ABI of the SoundRise marketplace program.
// Regenerate the typed bindings with:
//   abigen --sol contract/soundrise.sol --pkg contract --out contract/soundrise_gen.go
package contract

// SoundRiseABI is the ABI of the SoundRise contract.
const SoundRiseABI = `[
	{
		"constant": false,
		"inputs": [{"name": "_name", "type": "string"}],
		"name": "registerArtist",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_title",      "type": "string"},
			{"name": "_price",      "type": "uint256"},
			{"name": "_ipfsHash",   "type": "string"},
			{"name": "_royalty",    "type": "uint8"},
			{"name": "_classified", "type": "bool"},
			{"name": "_isExclusive", "type": "bool"},
			{"name": "_srtPrice",   "type": "uint256"}
		],
		"name": "uploadSong",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [{"name": "_songId", "type": "uint256"}],
		"name": "purchaseSong",
		"outputs": [],
		"payable": true,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [{"name": "_songId", "type": "uint256"}],
		"name": "playSong",
		"outputs": [],
		"payable": true,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [{"name": "_songId", "type": "uint256"}],
		"name": "redeemExclusiveContent",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_songId", "type": "uint256"},
			{"name": "_rating", "type": "uint8"}
		],
		"name": "rateSong",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "", "type": "address"}],
		"name": "artists",
		"outputs": [
			{"name": "name",         "type": "string"},
			{"name": "isRegistered", "type": "bool"}
		],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "", "type": "uint256"}],
		"name": "songs",
		"outputs": [
			{"name": "id",          "type": "uint256"},
			{"name": "title",       "type": "string"},
			{"name": "artist",      "type": "address"},
			{"name": "price",       "type": "uint256"},
			{"name": "ipfsHash",    "type": "string"},
			{"name": "royalty",     "type": "uint8"},
			{"name": "classified",  "type": "bool"},
			{"name": "isExclusive", "type": "bool"},
			{"name": "srtPrice",    "type": "uint256"},
			{"name": "rating",      "type": "uint8"}
		],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [
			{"name": "", "type": "uint256"},
			{"name": "", "type": "address"}
		],
		"name": "songPurchased",
		"outputs": [{"name": "", "type": "bool"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "songCount",
		"outputs": [{"name": "", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "artist", "type": "address"},
			{"indexed": false, "name": "name",   "type": "string"}
		],
		"name": "ArtistRegistered",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "songId",  "type": "uint256"},
			{"indexed": false, "name": "title",   "type": "string"},
			{"indexed": true,  "name": "artist",  "type": "address"},
			{"indexed": false, "name": "price",   "type": "uint256"},
			{"indexed": false, "name": "royalty", "type": "uint8"}
		],
		"name": "SongUploaded",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "songId", "type": "uint256"},
			{"indexed": true, "name": "buyer",  "type": "address"}
		],
		"name": "SongPurchased",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "songId",        "type": "uint256"},
			{"indexed": true,  "name": "listener",      "type": "address"},
			{"indexed": false, "name": "payment",       "type": "uint256"},
			{"indexed": false, "name": "royaltyAmount", "type": "uint256"}
		],
		"name": "SongPlayed",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "songId", "type": "uint256"},
			{"indexed": true,  "name": "rater",  "type": "address"},
			{"indexed": false, "name": "rating", "type": "uint8"}
		],
		"name": "SongRated",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "user",   "type": "address"},
			{"indexed": true, "name": "songId", "type": "uint256"}
		],
		"name": "ExclusiveContentAccessGranted",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "to",     "type": "address"},
			{"indexed": false, "name": "amount", "type": "uint256"}
		],
		"name": "RetainedWithdrawn",
		"type": "event"
	}
]`
