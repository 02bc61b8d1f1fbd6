// Copyright 2018 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.


// soundrise runs the SoundRise music marketplace.
//
// The default command serves the marketplace over HTTP with persisted state.
// Other commands read a deployed on-chain marketplace, print gas cost quotes
// and issue API tokens.
//
// Usage:
//   soundrise [--config <file>] [--env <file>] [command]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GetomG/soundrise-project/api"
	"github.com/GetomG/soundrise-project/config"
	"github.com/GetomG/soundrise-project/contracts/soundrise"
	"github.com/GetomG/soundrise-project/contracts/soundtoken"
	"github.com/GetomG/soundrise-project/gas"
	"github.com/GetomG/soundrise-project/node"
	"github.com/GetomG/soundrise-project/storage"
	"github.com/GetomG/soundrise-project/token"
	"github.com/ethereum/go-ethereum/cmd/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	app = cli.NewApp()

	// Flags
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "Path to the YAML configuration file (default: ./config.yaml if present)",
	}
	envFlag = cli.StringFlag{
		Name:  "env",
		Usage: "Path to a .env file loaded before the environment is read",
		Value: ".env",
	}
	listenFlag = cli.StringFlag{
		Name:  "listen",
		Usage: "HTTP listen address, overrides server.listen",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "Log level (crit, error, warn, info, debug, trace), overrides server.log_level",
	}
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "Account the token authenticates",
	}
	ttlFlag = cli.DurationFlag{
		Name:  "ttl",
		Usage: "Token lifetime",
		Value: 24 * time.Hour,
	}
)

func init() {
	app.Name = "soundrise"
	app.Usage = "SoundRise music marketplace service"
	app.Version = "0.1.0"
	app.Action = serve
	app.Flags = []cli.Flag{
		configFlag,
		envFlag,
		listenFlag,
		logLevelFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:   "serve",
			Usage:  "Serve the marketplace over HTTP (default)",
			Action: serve,
			Flags:  []cli.Flag{listenFlag, logLevelFlag},
		},
		{
			Name:   "info",
			Usage:  "Print on-chain marketplace and token information",
			Action: infoCmd,
		},
		{
			Name:   "quote",
			Usage:  "Print gas cost quotes for every marketplace operation",
			Action: quoteCmd,
		},
		{
			Name:   "issue-token",
			Usage:  "Issue an API bearer token for an account",
			Action: issueTokenCmd,
			Flags:  []cli.Flag{accountFlag, ttlFlag},
		},
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and installs the log handler.
func loadConfig(ctx *cli.Context) *config.Config {
	cfg, err := config.Load(ctx.GlobalString(configFlag.Name), ctx.GlobalString(envFlag.Name))
	if err != nil {
		utils.Fatalf("%v", err)
	}
	if lvl := flagString(ctx, logLevelFlag.Name); lvl != "" {
		cfg.Server.LogLevel = lvl
	}
	if listen := flagString(ctx, listenFlag.Name); listen != "" {
		cfg.Server.Listen = listen
	}
	lvl, err := cfg.LogLevel()
	if err != nil {
		utils.Fatalf("Invalid log level: %v", err)
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.TerminalFormat(true))))
	return cfg
}

// flagString reads a flag given either before or after the command name.
func flagString(ctx *cli.Context, name string) string {
	if v := ctx.String(name); v != "" {
		return v
	}
	return ctx.GlobalString(name)
}

func serve(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	if cfg.Server.JWTSecret == "" {
		utils.Fatalf("server.jwt_secret (SOUNDRISE_SERVER_JWT_SECRET) is required")
	}
	nodeCfg, err := cfg.Node()
	if err != nil {
		utils.Fatalf("%v", err)
	}
	calc, err := gas.NewCalculator(cfg.Gas.PriceGwei, cfg.Gas.USDPrice)
	if err != nil {
		utils.Fatalf("%v", err)
	}
	store, err := storage.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		utils.Fatalf("%v", err)
	}
	defer store.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := node.New(runCtx, nodeCfg, store)
	if err != nil {
		utils.Fatalf("Failed to start marketplace node: %v", err)
	}
	opts := api.Options{JWTSecret: []byte(cfg.Server.JWTSecret)}
	if cfg.Server.RPC {
		rpcSrv, err := node.NewRPCServer(n)
		if err != nil {
			utils.Fatalf("Failed to register JSON-RPC API: %v", err)
		}
		defer rpcSrv.Stop()
		opts.RPC = rpcSrv
	}
	log.Info("SoundRise service starting",
		"listen", cfg.Server.Listen,
		"database", cfg.Database.Driver,
		"market", nodeCfg.Market.Hex(),
		"ratingPolicy", cfg.Market.RatingPolicy,
		"gasPriceGwei", cfg.Gas.PriceGwei,
	)
	return api.New(n, calc, opts).Run(runCtx, cfg.Server.Listen)
}

func infoCmd(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	if !common.IsHexAddress(cfg.Chain.SoundRise) {
		utils.Fatalf("chain.soundrise must hold the deployed marketplace address")
	}
	client, err := ethclient.Dial(cfg.Chain.RPC)
	if err != nil {
		utils.Fatalf("Failed to connect to %s: %v", cfg.Chain.RPC, err)
	}
	defer client.Close()

	market, err := soundrise.NewSoundRise(nil, common.HexToAddress(cfg.Chain.SoundRise), client)
	if err != nil {
		return err
	}
	count, err := market.SongCount()
	if err != nil {
		return fmt.Errorf("read song count: %v", err)
	}
	log.Info("SoundRise contract info", "address", market.Address().Hex(), "rpc", cfg.Chain.RPC, "songs", count)

	if !common.IsHexAddress(cfg.Chain.SoundToken) {
		return nil
	}
	tok, err := soundtoken.NewSoundToken(nil, common.HexToAddress(cfg.Chain.SoundToken), client)
	if err != nil {
		return err
	}
	supply, err := tok.TotalSupply()
	if err != nil {
		return fmt.Errorf("read total supply: %v", err)
	}
	owner, err := tok.Owner()
	if err != nil {
		return fmt.Errorf("read token owner: %v", err)
	}
	log.Info("SoundToken contract info", "address", tok.Address().Hex(), "symbol", token.Symbol,
		"supply", supply, "owner", owner.Hex(), "marketMints", owner == market.Address())
	return nil
}

func quoteCmd(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	calc, err := gas.NewCalculator(cfg.Gas.PriceGwei, cfg.Gas.USDPrice)
	if err != nil {
		utils.Fatalf("%v", err)
	}
	for _, sc := range gas.DefaultScenarios {
		sum, err := calc.QuoteScenario(sc, gas.DefaultOperationGas)
		if err != nil {
			return err
		}
		gas.Print(os.Stdout, sum)
	}
	return nil
}

func issueTokenCmd(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	account := ctx.String(accountFlag.Name)
	if !common.IsHexAddress(account) {
		utils.Fatalf("--account must be a hex address")
	}
	tok, err := api.IssueToken([]byte(cfg.Server.JWTSecret), common.HexToAddress(account), ctx.Duration(ttlFlag.Name))
	if err != nil {
		utils.Fatalf("%v", err)
	}
	fmt.Println(tok)
	return nil
}
