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


package api

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"net/http"
	"strconv"

	"github.com/GetomG/soundrise-project/gas"
	"github.com/GetomG/soundrise-project/soundrise"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

var errBadRequest = errors.New("bad request")

// statusFor maps an error kind onto an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, errBadRequest) {
		return http.StatusBadRequest
	}
	switch soundrise.KindOf(err) {
	case soundrise.ValidationError:
		return http.StatusBadRequest
	case soundrise.AuthorizationError:
		return http.StatusForbidden
	case soundrise.NotFound:
		return http.StatusNotFound
	case soundrise.PreconditionViolation:
		return http.StatusConflict
	case soundrise.InsufficientValue:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{
		"error":      err.Error(),
		"kind":       soundrise.KindOf(err).String(),
		"request_id": c.GetString(requestIDKey),
	})
}

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func addressParam(c *gin.Context, name string) (common.Address, error) {
	v := c.Param(name)
	if !common.IsHexAddress(v) {
		return common.Address{}, badRequest("invalid address %q", v)
	}
	return common.HexToAddress(v), nil
}

func songParam(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, badRequest("invalid song id %q", c.Param("id"))
	}
	return id, nil
}

// parseAmount reads a non-negative decimal integer. An empty string is zero.
func parseAmount(field, v string) (*big.Int, error) {
	if v == "" {
		return new(big.Int), nil
	}
	x, ok := new(big.Int).SetString(v, 10)
	if !ok || x.Sign() < 0 {
		return nil, badRequest("invalid %s %q", field, v)
	}
	return x, nil
}

func parseAddress(field, v string) (common.Address, error) {
	if !common.IsHexAddress(v) {
		return common.Address{}, badRequest("invalid %s %q", field, v)
	}
	return common.HexToAddress(v), nil
}

// Reads

func (s *Server) getMarket(c *gin.Context) {
	m := s.node.Market()
	c.JSON(http.StatusOK, gin.H{
		"address":    m.Address(),
		"owner":      m.Owner(),
		"song_count": m.SongCount(),
		"retained":   m.Retained().String(),
		"reward":     m.Reward().String(),
	})
}

func (s *Server) getToken(c *gin.Context) {
	info := s.node.TokenInfo()
	c.JSON(http.StatusOK, gin.H{
		"name":         info.Name,
		"symbol":       info.Symbol,
		"decimals":     info.Decimals,
		"total_supply": info.TotalSupply.String(),
		"owner":        info.Owner,
	})
}

func (s *Server) getArtist(c *gin.Context) {
	account, err := addressParam(c, "address")
	if err != nil {
		fail(c, err)
		return
	}
	a, ok := s.node.Market().Artist(account)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "artist not registered"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// songView renders amounts as decimal strings.
type songView struct {
	ID          uint64         `json:"id"`
	Title       string         `json:"title"`
	Artist      common.Address `json:"artist"`
	Price       string         `json:"price"`
	ContentURI  string         `json:"content_uri"`
	Royalty     uint8          `json:"royalty"`
	Classified  bool           `json:"classified"`
	Exclusive   bool           `json:"exclusive"`
	UnlockCost  string         `json:"unlock_cost"`
	Rating      uint8          `json:"rating"`
	RatingCount uint64         `json:"rating_count"`
	PlayCount   uint64         `json:"play_count"`
}

func newSongView(s *soundrise.Song) songView {
	return songView{
		ID:          s.ID,
		Title:       s.Title,
		Artist:      s.Artist,
		Price:       s.Price.String(),
		ContentURI:  s.ContentURI,
		Royalty:     s.Royalty,
		Classified:  s.Classified,
		Exclusive:   s.Exclusive,
		UnlockCost:  s.UnlockCost.String(),
		Rating:      s.Rating,
		RatingCount: s.RatingCount,
		PlayCount:   s.PlayCount,
	}
}

func (s *Server) listSongs(c *gin.Context) {
	m := s.node.Market()
	count := m.SongCount()
	songs := make([]songView, 0, count)
	for id := uint64(1); id <= count; id++ {
		song, err := m.Song(id)
		if err != nil {
			continue
		}
		songs = append(songs, newSongView(song))
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs, "count": count})
}

func (s *Server) getSong(c *gin.Context) {
	id, err := songParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	song, err := s.node.Market().Song(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSongView(song))
}

func (s *Server) getAccess(c *gin.Context) {
	id, err := songParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	account, err := addressParam(c, "address")
	if err != nil {
		fail(c, err)
		return
	}
	m := s.node.Market()
	c.JSON(http.StatusOK, gin.H{
		"purchased":        m.HasPurchased(id, account),
		"exclusive_access": m.HasExclusiveAccess(id, account),
		"rated":            m.HasRated(id, account),
		"can_play":         m.CanPlay(id, account),
	})
}

func (s *Server) getAccount(c *gin.Context) {
	account, err := addressParam(c, "address")
	if err != nil {
		fail(c, err)
		return
	}
	_, registered := s.node.Market().Artist(account)
	c.JSON(http.StatusOK, gin.H{
		"address":          account,
		"native":           s.node.NativeBalance(account).String(),
		"token":            s.node.TokenBalance(account).String(),
		"market_allowance": s.node.Allowance(account, s.node.Market().Address()).String(),
		"artist":           registered,
	})
}

func (s *Server) listQuotes(c *gin.Context) {
	out := make([]gas.Summary, 0, len(gas.DefaultScenarios))
	for _, sc := range gas.DefaultScenarios {
		sum, err := s.gas.QuoteScenario(sc, gas.DefaultOperationGas)
		if err != nil {
			fail(c, err)
			return
		}
		out = append(out, sum)
	}
	c.JSON(http.StatusOK, gin.H{"gas_price_wei": s.gas.GasPrice().String(), "quotes": out})
}

func (s *Server) getQuote(c *gin.Context) {
	op := c.Param("op")
	used, ok := gas.DefaultOperationGas[op]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown operation %q", op)})
		return
	}
	c.JSON(http.StatusOK, s.gas.Quote(used))
}

// Writes

type registerRequest struct {
	Name string `json:"name"`
}

func (s *Server) registerArtist(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("%v", err))
		return
	}
	err := s.node.RegisterArtist(c.Request.Context(), caller(c), req.Name)
	s.metrics.observe("registerArtist", err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"account": caller(c), "name": req.Name})
}

type uploadRequest struct {
	Title      string `json:"title"`
	Price      string `json:"price"` // wei
	ContentURI string `json:"content_uri"`
	Royalty    int    `json:"royalty"`
	Classified bool   `json:"classified"`
	Exclusive  bool   `json:"exclusive"`
	UnlockCost string `json:"unlock_cost"` // smallest SRT unit
}

func (s *Server) uploadSong(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("%v", err))
		return
	}
	price, err := parseAmount("price", req.Price)
	if err != nil {
		fail(c, err)
		return
	}
	unlock, err := parseAmount("unlock_cost", req.UnlockCost)
	if err != nil {
		fail(c, err)
		return
	}
	if req.Royalty < 0 || req.Royalty > math.MaxUint8 {
		fail(c, fmt.Errorf("%w: %d", soundrise.ErrInvalidRoyalty, req.Royalty))
		return
	}
	id, err := s.node.UploadSong(c.Request.Context(), caller(c), soundrise.SongParams{
		Title:      req.Title,
		Price:      price,
		ContentURI: req.ContentURI,
		Royalty:    uint8(req.Royalty),
		Classified: req.Classified,
		Exclusive:  req.Exclusive,
		UnlockCost: unlock,
	})
	s.metrics.observe("uploadSong", err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type paymentRequest struct {
	Value string `json:"value"` // wei
}

func (s *Server) payment(c *gin.Context) (uint64, *big.Int, bool) {
	id, err := songParam(c)
	if err != nil {
		fail(c, err)
		return 0, nil, false
	}
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("%v", err))
		return 0, nil, false
	}
	value, err := parseAmount("value", req.Value)
	if err != nil {
		fail(c, err)
		return 0, nil, false
	}
	return id, value, true
}

func (s *Server) purchaseSong(c *gin.Context) {
	id, value, ok := s.payment(c)
	if !ok {
		return
	}
	err := s.node.PurchaseSong(c.Request.Context(), caller(c), value, id)
	s.metrics.observe("purchaseSong", err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "purchased": true})
}

func (s *Server) playSong(c *gin.Context) {
	id, value, ok := s.payment(c)
	if !ok {
		return
	}
	err := s.node.PlaySong(c.Request.Context(), caller(c), value, id)
	s.metrics.observe("playSong", err)
	if err != nil {
		fail(c, err)
		return
	}
	song, err := s.node.Market().Song(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "play_count": song.PlayCount})
}

func (s *Server) redeemSong(c *gin.Context) {
	id, err := songParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	err = s.node.RedeemExclusiveContent(c.Request.Context(), caller(c), id)
	s.metrics.observe("redeemExclusiveContent", err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "exclusive_access": true})
}

type rateRequest struct {
	Rating int `json:"rating"`
}

func (s *Server) rateSong(c *gin.Context) {
	id, err := songParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("%v", err))
		return
	}
	if req.Rating < 0 || req.Rating > math.MaxUint8 {
		fail(c, fmt.Errorf("%w: %d", soundrise.ErrInvalidRating, req.Rating))
		return
	}
	err = s.node.RateSong(c.Request.Context(), caller(c), id, uint8(req.Rating))
	s.metrics.observe("rateSong", err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "reward": s.node.Market().Reward().String()})
}

type tokenRequest struct {
	To      string `json:"to"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

func (s *Server) approve(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("%v", err))
		return
	}
	spender, err := parseAddress("spender", req.Spender)
	if err != nil {
		fail(c, err)
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	err = s.node.Approve(c.Request.Context(), caller(c), spender, amount)
	s.metrics.observe("approve", err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spender": spender, "amount": amount.String()})
}

func (s *Server) transferTokens(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("%v", err))
		return
	}
	to, err := parseAddress("to", req.To)
	if err != nil {
		fail(c, err)
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	err = s.node.TransferTokens(c.Request.Context(), caller(c), to, amount)
	s.metrics.observe("transfer", err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"to": to, "amount": amount.String()})
}

type withdrawRequest struct {
	To string `json:"to"`
}

func (s *Server) withdraw(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("%v", err))
		return
	}
	to, err := parseAddress("to", req.To)
	if err != nil {
		fail(c, err)
		return
	}
	amount, err := s.node.WithdrawRetained(c.Request.Context(), caller(c), to)
	s.metrics.observe("withdrawRetained", err)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"to": to, "amount": amount.String()})
}
