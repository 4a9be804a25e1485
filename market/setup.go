// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/guard"
	"github.com/bitmark-inc/fractiond/ledger"
	"github.com/bitmark-inc/fractiond/payment"
	"github.com/bitmark-inc/fractiond/registry"
	"github.com/bitmark-inc/fractiond/storage"
)

// maximum listings in one batch buy
const MaximumBatchSize = 100

// Market - the listing book
type Market struct {
	log      *logger.L
	store    *storage.Store
	registry registry.Registry
	shares   *ledger.Ledger
	payment  payment.Ledger
	guard    *guard.Guard
	events   event.Emitter
	now      func() time.Time
}

// New - create the marketplace component
func New(store *storage.Store, reg registry.Registry, shares *ledger.Ledger, pay payment.Ledger, g *guard.Guard, events event.Emitter) *Market {
	return &Market{
		log:      logger.New("market"),
		store:    store,
		registry: reg,
		shares:   shares,
		payment:  pay,
		guard:    g,
		events:   events,
		now:      time.Now,
	}
}

// SetClock - replace the time source
func (m *Market) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Market) timestamp() time.Time {
	return m.now().UTC().Truncate(time.Second)
}

// Initialise - create the marketplace singleton
func (m *Market) Initialise(admin account.Address, feeCollector account.Address, feeBasisPoints uint64) error {
	err := m.store.Update(func(trx storage.Transaction) error {
		if trx.Has(m.store.Pool.MarketState, stateKey) {
			return fault.AlreadyInitialised
		}
		if admin.IsZero() || feeCollector.IsZero() {
			return fault.InvalidAddress
		}
		if feeBasisPoints > MaximumFee {
			return fault.FeeTooHigh
		}
		m.writeState(trx, &State{
			FeeBasisPoints: feeBasisPoints,
			FeeCollector:   feeCollector,
			Admin:          admin,
		})
		m.events.Emit(trx, event.Record{
			Kind:      event.MarketplaceInitialised,
			Actor:     admin,
			Target:    feeCollector,
			Fee:       feeBasisPoints,
			Timestamp: m.timestamp(),
		})
		return nil
	})
	if nil != err {
		return err
	}
	m.log.Infof("initialised: admin: %s  fee collector: %s  fee: %d bps", admin, feeCollector, feeBasisPoints)
	return nil
}

// writable state for an operation that requires the marketplace running
func (m *Market) runningState(trx storage.Transaction) (*State, error) {
	s, err := m.readState(trx)
	if nil != err {
		return nil, err
	}
	if err := guard.NotPaused(s.Paused, fault.MarketplacePaused); nil != err {
		return nil, err
	}
	return s, nil
}
