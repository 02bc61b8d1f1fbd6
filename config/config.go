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


// Package config loads service settings from config.yaml, a .env file and
// SOUNDRISE_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/GetomG/soundrise-project/node"
	"github.com/GetomG/soundrise-project/soundrise"
	"github.com/GetomG/soundrise-project/token"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "SOUNDRISE"

type Config struct {
	Server struct {
		Listen    string `mapstructure:"listen"`
		JWTSecret string `mapstructure:"jwt_secret"`
		LogLevel  string `mapstructure:"log_level"`
		RPC       bool   `mapstructure:"rpc"` // mount the JSON-RPC API at /rpc
	} `mapstructure:"server"`
	Database struct {
		Driver string `mapstructure:"driver"` // sqlite or postgres
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"database"`
	Market struct {
		Address       string `mapstructure:"address"`
		Owner         string `mapstructure:"owner"`
		TokenOwner    string `mapstructure:"token_owner"`
		InitialSupply string `mapstructure:"initial_supply"` // whole SRT
		Reward        string `mapstructure:"reward"`         // whole SRT
		RatingPolicy  string `mapstructure:"rating_policy"`
		GrantMinter   bool   `mapstructure:"grant_minter"`
	} `mapstructure:"market"`
	Gas struct {
		PriceGwei float64 `mapstructure:"price_gwei"`
		USDPrice  float64 `mapstructure:"usd_price"`
	} `mapstructure:"gas"`
	Genesis struct {
		Native map[string]string `mapstructure:"native"` // address -> ether
		Tokens map[string]string `mapstructure:"tokens"` // address -> whole SRT
	} `mapstructure:"genesis"`
	Chain struct {
		RPC        string `mapstructure:"rpc"`
		SoundRise  string `mapstructure:"soundrise"`
		SoundToken string `mapstructure:"soundtoken"`
	} `mapstructure:"chain"`
}

var envKeys = []string{
	"server.listen",
	"server.jwt_secret",
	"server.log_level",
	"server.rpc",
	"database.driver",
	"database.dsn",
	"market.address",
	"market.owner",
	"market.token_owner",
	"market.initial_supply",
	"market.reward",
	"market.rating_policy",
	"market.grant_minter",
	"gas.price_gwei",
	"gas.usd_price",
	"chain.rpc",
	"chain.soundrise",
	"chain.soundtoken",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen", ":8550")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.rpc", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "soundrise.db")
	v.SetDefault("market.initial_supply", "1000000")
	v.SetDefault("market.reward", "5")
	v.SetDefault("market.rating_policy", "latest")
	v.SetDefault("market.grant_minter", true)
	v.SetDefault("gas.price_gwei", 15)
	v.SetDefault("gas.usd_price", 0)
	v.SetDefault("chain.rpc", "http://localhost:8545")
}

// Load reads the configuration. An empty file searches for config.yaml in
// the working directory and its parent; a missing file is not an error.
// envFile, when it exists, is loaded into the process environment first.
func Load(file, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		v.BindEnv(key)
	}
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("../")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
		log.Debug("No config file found, using environment only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() (log.Lvl, error) {
	return log.LvlFromString(c.Server.LogLevel)
}

// Node converts the market and genesis sections into a node configuration.
func (c *Config) Node() (node.Config, error) {
	var cfg node.Config
	var err error
	if cfg.Market, err = requireAddress("market.address", c.Market.Address); err != nil {
		return cfg, err
	}
	if cfg.Owner, err = requireAddress("market.owner", c.Market.Owner); err != nil {
		return cfg, err
	}
	if c.Market.TokenOwner != "" {
		if cfg.Genesis.TokenOwner, err = requireAddress("market.token_owner", c.Market.TokenOwner); err != nil {
			return cfg, err
		}
	}
	if cfg.RatingPolicy, err = soundrise.RatingPolicyByName(c.Market.RatingPolicy); err != nil {
		return cfg, err
	}
	if cfg.Reward, err = ParseUnits(c.Market.Reward, token.Decimals); err != nil {
		return cfg, fmt.Errorf("config: market.reward: %w", err)
	}
	if cfg.Genesis.InitialSupply, err = ParseUnits(c.Market.InitialSupply, token.Decimals); err != nil {
		return cfg, fmt.Errorf("config: market.initial_supply: %w", err)
	}
	cfg.Genesis.GrantMinter = c.Market.GrantMinter

	if cfg.Genesis.Native, err = allocations("genesis.native", c.Genesis.Native); err != nil {
		return cfg, err
	}
	if cfg.Genesis.Tokens, err = allocations("genesis.tokens", c.Genesis.Tokens); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func requireAddress(key, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("config: %s: invalid address %q", key, value)
	}
	return common.HexToAddress(value), nil
}

func allocations(key string, in map[string]string) (map[common.Address]*big.Int, error) {
	out := make(map[common.Address]*big.Int, len(in))
	for account, amount := range in {
		addr, err := requireAddress(key, account)
		if err != nil {
			return nil, err
		}
		// both ledgers use 18 decimals
		value, err := ParseUnits(amount, token.Decimals)
		if err != nil {
			return nil, fmt.Errorf("config: %s.%s: %w", key, account, err)
		}
		out[addr] = value
	}
	return out, nil
}

// ParseUnits converts a decimal string such as "1.5" into an integer amount
// with the given number of decimals.
func ParseUnits(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty amount")
	}
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimals", s, decimals)
	}
	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	x, ok := new(big.Int).SetString(digits, 10)
	if !ok || x.Sign() < 0 || strings.ContainsAny(digits, "+-") {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return x, nil
}
