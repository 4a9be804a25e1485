// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/rpc/fixtures"
	"github.com/bitmark-inc/fractiond/rpc/node"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestInfo(t *testing.T) {
	n, err := fixtures.NewNode()
	assert.Nil(t, err, "fixture node")
	defer n.Close()

	s := n.Services
	s.Clients.Increment()
	s.Clients.Increment()

	nd := node.New(logger.New(fixtures.LogCategory), s.Start, s.Version, s.Clients, s.Events, s.Market)

	_, err = s.Market.CreateListing(fixtures.Owner, n.Asset, 10, 100)
	assert.Nil(t, err, "listing")
	_, err = s.Payments.Deposit(fixtures.Buyer, 1000)
	assert.Nil(t, err, "deposit")
	_, err = s.Market.BuyShares(fixtures.Buyer, 1, 40)
	assert.Nil(t, err, "buy")

	var reply node.InfoReply
	err = nd.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "info")
	assert.Equal(t, "test", reply.Version, "version")
	assert.Equal(t, uint64(2), reply.RPCs, "clients")
	assert.Equal(t, uint64(1), reply.Trades, "trades")
	assert.Equal(t, uint64(400), reply.Volume, "volume")
	assert.Equal(t, uint64(1), reply.Listings, "listings")
	assert.False(t, reply.MarketPause, "running")

	last, err := s.Events.Last()
	assert.Nil(t, err, "last event")
	assert.Equal(t, last, reply.LastEvent, "last event id")
}
