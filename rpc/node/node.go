// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - RPC information about the running node
package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fractiond/counter"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/market"
	"github.com/bitmark-inc/fractiond/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	events  *event.Log
	market  *market.Market
	counter *counter.Counter
}

// New - create the node service
func New(log *logger.L, start time.Time, version string, clients *counter.Counter, events *event.Log, m *market.Market) *Node {
	return &Node{
		Log:     log,
		Limiter: ratelimit.New(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		events:  events,
		market:  m,
		counter: clients,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	RPCs        uint64 `json:"rpcs"`
	LastEvent   uint64 `json:"lastEvent,string"`
	Trades      uint64 `json:"trades"`
	Volume      uint64 `json:"volume"`
	Listings    uint64 `json:"listings"`
	MarketPause bool   `json:"marketPaused"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	last, err := node.events.Last()
	if nil != err {
		return err
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).Truncate(time.Second).String()
	reply.RPCs = node.counter.Uint64()
	reply.LastEvent = last

	// an uninitialised marketplace still allows node info
	if s, err := node.market.Stats(); nil == err {
		reply.Trades = s.TotalTrades
		reply.Volume = s.TotalVolume
		reply.Listings = s.TotalListings
		reply.MarketPause = s.Paused
	}
	return nil
}
