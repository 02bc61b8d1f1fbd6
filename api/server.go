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


// Package api serves the marketplace over HTTP. Reads are public; writes
// require a bearer token whose subject is the calling account.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/GetomG/soundrise-project/gas"
	"github.com/GetomG/soundrise-project/node"
	"github.com/ethereum/go-ethereum/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures a Server.
type Options struct {
	JWTSecret []byte
	Debug     bool

	// RPC, when set, is mounted at /rpc.
	RPC http.Handler

	// Registry collects the server's metrics. A fresh registry is used when
	// nil.
	Registry *prometheus.Registry
}

// Server is the HTTP front end of a node.
type Server struct {
	node    *node.Node
	gas     *gas.Calculator
	secret  []byte
	metrics *Metrics
	router  *gin.Engine
}

// New builds the router.
func New(n *node.Node, calc *gas.Calculator, opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		node:    n,
		gas:     calc,
		secret:  opts.JWTSecret,
		metrics: NewMetrics(reg),
		router:  gin.New(),
	}
	s.setupMiddleware()
	s.setupRoutes(reg, opts.RPC)
	return s
}

func (s *Server) setupMiddleware() {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}

	s.router.Use(gin.Recovery(), RequestID(), s.metrics.middleware(), cors.New(corsConfig))
}

func (s *Server) setupRoutes(reg *prometheus.Registry, rpcHandler http.Handler) {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "soundrise"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	if rpcHandler != nil {
		s.router.POST("/rpc", gin.WrapH(rpcHandler))
	}

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/market", s.getMarket)
		v1.GET("/token", s.getToken)
		v1.GET("/artists/:address", s.getArtist)
		v1.GET("/songs", s.listSongs)
		v1.GET("/songs/:id", s.getSong)
		v1.GET("/songs/:id/access/:address", s.getAccess)
		v1.GET("/accounts/:address", s.getAccount)
		v1.GET("/quotes", s.listQuotes)
		v1.GET("/quotes/:op", s.getQuote)
	}
	auth := v1.Group("", RequireAuth(s.secret))
	{
		auth.POST("/artists", s.registerArtist)
		auth.POST("/songs", s.uploadSong)
		auth.POST("/songs/:id/purchase", s.purchaseSong)
		auth.POST("/songs/:id/play", s.playSong)
		auth.POST("/songs/:id/redeem", s.redeemSong)
		auth.POST("/songs/:id/rate", s.rateSong)
		auth.POST("/token/approve", s.approve)
		auth.POST("/token/transfer", s.transferTokens)
		auth.POST("/market/withdraw", s.withdraw)
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info("HTTP server started", "listen", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		log.Info("HTTP server stopped")
		return nil
	}
}
