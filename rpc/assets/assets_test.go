// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/rpc/assets"
	"github.com/bitmark-inc/fractiond/rpc/fixtures"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestRegisterAndGet(t *testing.T) {
	n, err := fixtures.NewNode()
	assert.Nil(t, err, "fixture node")
	defer n.Close()

	r := assets.New(logger.New(fixtures.LogCategory), n.Services.Registry)

	var reply assets.RegisterReply
	err = r.Register(&assets.RegisterArguments{
		Owner:            fixtures.Buyer,
		Domain:           "second.example",
		FractionalSupply: 500,
	}, &reply)
	assert.Nil(t, err, "register")
	assert.Equal(t, asset.NewRef("second.example"), reply.Asset, "reference")

	err = r.Register(&assets.RegisterArguments{
		Owner:            fixtures.Owner,
		Domain:           "second.example",
		FractionalSupply: 500,
	}, &reply)
	assert.Equal(t, fault.AssetAlreadyRegistered, err, "duplicate")

	var get assets.GetReply
	err = r.Get(&assets.GetArguments{Asset: n.Asset}, &get)
	assert.Nil(t, err, "get")
	assert.Equal(t, fixtures.Domain, get.Info.Name, "name")
	assert.Equal(t, fixtures.Owner, get.Info.Owner, "owner")
	assert.True(t, get.Info.TradingEnabled, "trading")
	assert.Equal(t, fixtures.Supply, get.Info.FractionalSupply, "supply")
	assert.Equal(t, uint64(0), get.Valuation.Score, "not yet valued")

	err = r.Get(&assets.GetArguments{Asset: asset.NewRef("missing.example")}, &get)
	assert.Equal(t, fault.AssetNotFound, err, "missing")
}

func TestSetTrading(t *testing.T) {
	n, err := fixtures.NewNode()
	assert.Nil(t, err, "fixture node")
	defer n.Close()

	r := assets.New(logger.New(fixtures.LogCategory), n.Services.Registry)

	var reply assets.TradingReply
	err = r.SetTrading(&assets.TradingArguments{Owner: fixtures.Buyer, Asset: n.Asset}, &reply)
	assert.Equal(t, fault.OwnerRequired, err, "not owner")

	err = r.SetTrading(&assets.TradingArguments{Owner: fixtures.Owner, Asset: n.Asset, Enabled: false}, &reply)
	assert.Nil(t, err, "disable")
	assert.False(t, reply.Enabled, "reply state")

	var get assets.GetReply
	err = r.Get(&assets.GetArguments{Asset: n.Asset}, &get)
	assert.Nil(t, err, "get")
	assert.False(t, get.Info.TradingEnabled, "trading disabled")
}
