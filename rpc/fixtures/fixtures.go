// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for RPC tests
package fixtures

import (
	"os"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/counter"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/guard"
	"github.com/bitmark-inc/fractiond/ledger"
	"github.com/bitmark-inc/fractiond/market"
	"github.com/bitmark-inc/fractiond/oracle"
	"github.com/bitmark-inc/fractiond/payment"
	"github.com/bitmark-inc/fractiond/registry"
	"github.com/bitmark-inc/fractiond/rpc/server"
	"github.com/bitmark-inc/fractiond/storage"
)

// test constants
const (
	LogCategory = "testing"
	Domain      = "fixture.example"
	Supply      = uint64(1000000)
	Fee         = uint64(250)

	testingDirName = "testing"
)

// well known accounts
var (
	Owner     = account.Address{0x01}
	Buyer     = account.Address{0x02}
	Admin     = account.Address{0x03}
	Collector = account.Address{0x04}
	OracleOne = account.Address{0x0a}
	OracleTwo = account.Address{0x0b}

	Now = time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
)

// SetupTestLogger - file logger in a local testing directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// Node - a complete set of components over an in-memory store
type Node struct {
	Store    *storage.Store
	Services *server.Services
	Asset    asset.Ref
}

// NewNode - registered asset with an initialised ledger, a running
// marketplace and a two oracle committee requiring both votes
func NewNode() (*Node, error) {
	store, err := storage.OpenMemory()
	if nil != err {
		return nil, err
	}

	clock := func() time.Time { return Now }

	events := event.New(store)
	assets := registry.NewAssets(store, events, nil)
	assets.SetClock(clock)

	ref, err := assets.Register(Owner, Domain, Supply)
	if nil != err {
		return nil, err
	}
	if err := assets.SetTrading(Owner, ref, true); nil != err {
		return nil, err
	}

	shares := ledger.New(store, assets, events)
	shares.SetClock(clock)
	if err := shares.Initialise(Owner, ref, Supply); nil != err {
		return nil, err
	}

	table := payment.NewTable(store, events)

	m := market.New(store, assets, shares, table, guard.New(), events)
	m.SetClock(clock)
	if err := m.Initialise(Admin, Collector, Fee); nil != err {
		return nil, err
	}

	committee := oracle.New(store, assets, events)
	committee.SetClock(clock)
	if err := committee.Initialise(Admin, []account.Address{OracleOne, OracleTwo}, 2, time.Hour); nil != err {
		return nil, err
	}

	return &Node{
		Store: store,
		Services: &server.Services{
			Registry:  assets,
			Shares:    shares,
			Market:    m,
			Committee: committee,
			Payments:  table,
			Events:    events,
			Start:     Now,
			Version:   "test",
			Clients:   new(counter.Counter),
		},
		Asset: ref,
	}, nil
}

// Close - release the store
func (n *Node) Close() {
	n.Store.Close()
}
