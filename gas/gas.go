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


// Package gas quotes the native-currency cost of marketplace transactions
// from measured gas usage.
package gas

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// Operation names, matching the marketplace's on-chain method names.
const (
	OpRegisterArtist = "registerArtist"
	OpUploadSong     = "uploadSong"
	OpPurchaseSong   = "purchaseSong"
	OpPlaySong       = "playSong"
	OpRateSong       = "rateSong"
	OpRedeem         = "redeemExclusiveContent"
	OpOwnerMint      = "mint"
)

// DefaultOperationGas is the gas measured per operation on a local devnet.
var DefaultOperationGas = map[string]uint64{
	OpRegisterArtist: 70755,
	OpUploadSong:     195241,
	OpPurchaseSong:   78384,
	OpPlaySong:       58417,
	OpRateSong:       117507,
	OpRedeem:         90060,
	OpOwnerMint:      54210,
}

// Scenario is a named sequence of operations quoted together.
type Scenario struct {
	Label string
	Ops   []string
}

// DefaultScenarios covers every single operation plus the full onboarding flow.
var DefaultScenarios = []Scenario{
	{"Artist registration", []string{OpRegisterArtist}},
	{"Upload new song", []string{OpUploadSong}},
	{"Purchase song", []string{OpPurchaseSong}},
	{"Play song and pay royalty", []string{OpPlaySong}},
	{"Rate song and mint reward", []string{OpRateSong}},
	{"Redeem exclusive content", []string{OpRedeem}},
	{"Owner mint", []string{OpOwnerMint}},
	{"Full flow: register, upload, purchase", []string{OpRegisterArtist, OpUploadSong, OpPurchaseSong}},
}

var (
	ErrNegativeGasPrice = errors.New("gas: gas price cannot be negative")
	ErrNegativeUSDPrice = errors.New("gas: fiat price cannot be negative")
	ErrUnknownOperation = errors.New("gas: unknown operation")
)

var (
	weiPerGwei  = new(big.Float).SetInt64(params.GWei)
	weiPerEther = new(big.Float).SetInt64(params.Ether)
)

// Cost is the price of a single transaction.
type Cost struct {
	GasUsed  uint64   `json:"gas_used"`
	GasPrice *big.Int `json:"gas_price_wei"`
	Wei      *big.Int `json:"cost_wei"`
	Ether    string   `json:"cost_eth"`
	USD      float64  `json:"cost_usd,omitempty"`
}

// Summary is the priced total of a sequence of transactions.
type Summary struct {
	Label   string   `json:"label"`
	Steps   []Cost   `json:"steps"`
	GasUsed uint64   `json:"gas_used"`
	Wei     *big.Int `json:"cost_wei"`
	Ether   string   `json:"cost_eth"`
	USD     float64  `json:"cost_usd,omitempty"`
}

// Calculator prices gas at a fixed gas price and, optionally, converts the
// result to US dollars.
type Calculator struct {
	gasPrice *big.Int // wei per gas
	usdPrice float64  // dollars per ether, zero disables conversion
}

// NewCalculator creates a calculator for a gas price given in gwei. A zero
// usdPrice leaves fiat amounts out of every quote.
func NewCalculator(gasPriceGwei, usdPrice float64) (*Calculator, error) {
	if gasPriceGwei < 0 {
		return nil, ErrNegativeGasPrice
	}
	if usdPrice < 0 {
		return nil, ErrNegativeUSDPrice
	}
	wei, _ := new(big.Float).Mul(big.NewFloat(gasPriceGwei), weiPerGwei).Int(nil)
	return &Calculator{gasPrice: wei, usdPrice: usdPrice}, nil
}

// GasPrice returns the gas price in wei.
func (c *Calculator) GasPrice() *big.Int { return new(big.Int).Set(c.gasPrice) }

// Quote prices a single transaction.
func (c *Calculator) Quote(gasUsed uint64) Cost {
	wei := new(big.Int).Mul(new(big.Int).SetUint64(gasUsed), c.gasPrice)
	return Cost{
		GasUsed:  gasUsed,
		GasPrice: c.GasPrice(),
		Wei:      wei,
		Ether:    FormatEther(wei),
		USD:      c.usd(wei),
	}
}

// QuoteAll prices a sequence of transactions and totals them.
func (c *Calculator) QuoteAll(label string, gasUsed []uint64) Summary {
	sum := Summary{Label: label, Wei: new(big.Int)}
	for _, g := range gasUsed {
		cost := c.Quote(g)
		sum.Steps = append(sum.Steps, cost)
		sum.GasUsed += g
		sum.Wei.Add(sum.Wei, cost.Wei)
	}
	sum.Ether = FormatEther(sum.Wei)
	sum.USD = c.usd(sum.Wei)
	return sum
}

// QuoteScenario prices a scenario using the gas table.
func (c *Calculator) QuoteScenario(s Scenario, table map[string]uint64) (Summary, error) {
	gasUsed := make([]uint64, 0, len(s.Ops))
	for _, op := range s.Ops {
		g, ok := table[op]
		if !ok {
			return Summary{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
		}
		gasUsed = append(gasUsed, g)
	}
	return c.QuoteAll(s.Label, gasUsed), nil
}

func (c *Calculator) usd(wei *big.Int) float64 {
	if c.usdPrice == 0 {
		return 0
	}
	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEther).Float64()
	return eth * c.usdPrice
}

// FormatEther renders a wei amount in ether with eight decimals.
func FormatEther(wei *big.Int) string {
	f := new(big.Float).SetPrec(256).SetInt(wei)
	return f.Quo(f, weiPerEther).Text('f', 8)
}

// Print writes a human-readable breakdown of the summary.
func Print(w io.Writer, sum Summary) {
	fmt.Fprintf(w, "\n%s:\n", sum.Label)
	for i, step := range sum.Steps {
		fmt.Fprintf(w, "Step %d:\n", i+1)
		fmt.Fprintf(w, "  Gas Used: %d\n", step.GasUsed)
		fmt.Fprintf(w, "  Gas Price: %s wei\n", step.GasPrice)
		fmt.Fprintf(w, "  Cost: %s ETH\n", step.Ether)
		if step.USD != 0 {
			fmt.Fprintf(w, "  Cost: $%.2f USD\n", step.USD)
		}
	}
	fmt.Fprintf(w, "Total for %s:\n", sum.Label)
	fmt.Fprintf(w, "  Total Gas Used: %d\n", sum.GasUsed)
	fmt.Fprintf(w, "  Total Cost: %s ETH\n", sum.Ether)
	if sum.USD != 0 {
		fmt.Fprintf(w, "  Total Cost: $%.2f USD\n", sum.USD)
	}
}
