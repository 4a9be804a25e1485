// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - the set of RPC services offered by a node
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/counter"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/ledger"
	"github.com/bitmark-inc/fractiond/market"
	"github.com/bitmark-inc/fractiond/oracle"
	"github.com/bitmark-inc/fractiond/payment"
	"github.com/bitmark-inc/fractiond/registry"
	"github.com/bitmark-inc/fractiond/rpc/assets"
	"github.com/bitmark-inc/fractiond/rpc/events"
	"github.com/bitmark-inc/fractiond/rpc/marketplace"
	"github.com/bitmark-inc/fractiond/rpc/node"
	"github.com/bitmark-inc/fractiond/rpc/payments"
	"github.com/bitmark-inc/fractiond/rpc/shares"
	"github.com/bitmark-inc/fractiond/rpc/valuation"
)

// Services - the components exposed over RPC
type Services struct {
	Registry  *registry.Assets
	Shares    *ledger.Ledger
	Market    *market.Market
	Committee *oracle.Committee
	Payments  *payment.Table
	Events    *event.Log
	Start     time.Time
	Version   string
	Clients   *counter.Counter
}

// Create - an RPC server with every service registered
func Create(log *logger.L, s *Services) *rpc.Server {
	server := rpc.NewServer()

	_ = server.Register(assets.New(log, s.Registry))
	_ = server.Register(shares.New(log, s.Shares))
	_ = server.Register(marketplace.New(log, s.Market))
	_ = server.Register(valuation.New(log, s.Committee))
	_ = server.Register(payments.New(log, s.Payments))
	_ = server.Register(events.New(log, s.Events))
	_ = server.Register(node.New(log, s.Start, s.Version, s.Clients, s.Events, s.Market))

	return server
}
