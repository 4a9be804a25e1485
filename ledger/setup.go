// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/guard"
	"github.com/bitmark-inc/fractiond/registry"
	"github.com/bitmark-inc/fractiond/storage"
)

// maximum recipients in one batch transfer
const MaximumBatchSize = 100

// Ledger - the share ledgers of all assets
type Ledger struct {
	log      *logger.L
	store    *storage.Store
	registry registry.Registry
	events   event.Emitter
	now      func() time.Time
}

// New - create the share ledger component
func New(store *storage.Store, reg registry.Registry, events event.Emitter) *Ledger {
	return &Ledger{
		log:      logger.New("ledger"),
		store:    store,
		registry: reg,
		events:   events,
		now:      time.Now,
	}
}

// SetClock - replace the time source
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
}

func (l *Ledger) timestamp() time.Time {
	return l.now().UTC().Truncate(time.Second)
}

// Initialise - create the ledger of an asset with the whole supply held by owner
//
// owner must own the asset in the registry and totalShares must equal
// the fractional supply configured there
func (l *Ledger) Initialise(owner account.Address, ref asset.Ref, totalShares uint64) error {
	err := l.store.Update(func(trx storage.Transaction) error {
		if !l.registry.AssetExists(trx, ref) {
			return fault.AssetNotFound
		}
		if err := guard.IsOwner(l.registry.IsOwner(trx, ref, owner)); nil != err {
			return err
		}
		if trx.Has(l.store.Pool.ShareLedgers, ref[:]) {
			return fault.LedgerAlreadyExists
		}
		supply := l.registry.FractionalSupply(trx, ref)
		if 0 == supply {
			return fault.FractionalSupplyNotFound
		}
		if supply != totalShares {
			return fault.InvalidSupply
		}

		now := l.timestamp()
		l.writeHeader(trx, ref, &header{
			total:     totalShares,
			issuer:    owner,
			createdAt: now,
		})
		l.setBalance(trx, ref, owner, totalShares)

		l.events.Emit(trx, event.Record{
			Kind:   event.LedgerInitialised,
			Asset:  ref,
			Actor:  owner,
			Amount: totalShares,
			Balances: []event.Balance{
				{Account: owner, Before: 0, After: totalShares},
			},
			Timestamp: now,
		})
		return nil
	})
	if nil != err {
		l.log.Debugf("initialise: asset: %s  error: %s", ref, err)
		return err
	}

	l.log.Infof("initialised: asset: %s  owner: %s  shares: %d", ref, owner, totalShares)
	return nil
}
