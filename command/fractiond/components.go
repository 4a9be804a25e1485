// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"

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

// build every component on the one store
func newServices(log *logger.L, store *storage.Store, verifyDomains bool) *server.Services {
	events := event.New(store)

	var verifier registry.Verifier
	if verifyDomains {
		verifier = registry.NewDNSVerifier(nil)
	} else {
		log.Warn("domain ownership verification is disabled")
	}
	assets := registry.NewAssets(store, events, verifier)
	shares := ledger.New(store, assets, events)
	payments := payment.NewTable(store, events)

	return &server.Services{
		Registry:  assets,
		Shares:    shares,
		Market:    market.New(store, assets, shares, payments, guard.New(), events),
		Committee: oracle.New(store, assets, events),
		Payments:  payments,
		Events:    events,
		Start:     time.Now(),
		Version:   version,
		Clients:   new(counter.Counter),
	}
}
