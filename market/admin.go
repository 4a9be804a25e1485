// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/guard"
	"github.com/bitmark-inc/fractiond/storage"
)

// SetFee - change the fee rate
func (m *Market) SetFee(admin account.Address, feeBasisPoints uint64) error {
	return m.adminUpdate(admin, event.FeeUpdated, func(trx storage.Transaction, s *State, r *event.Record) error {
		if feeBasisPoints > MaximumFee {
			return fault.FeeTooHigh
		}
		s.FeeBasisPoints = feeBasisPoints
		r.Fee = feeBasisPoints
		return nil
	})
}

// SetFeeCollector - change the account receiving fees
func (m *Market) SetFeeCollector(admin account.Address, collector account.Address) error {
	return m.adminUpdate(admin, event.FeeCollectorUpdated, func(trx storage.Transaction, s *State, r *event.Record) error {
		if collector.IsZero() {
			return fault.InvalidAddress
		}
		s.FeeCollector = collector
		r.Target = collector
		return nil
	})
}

// Pause - stop listing and trading
func (m *Market) Pause(admin account.Address) error {
	return m.adminUpdate(admin, event.MarketplacePaused, func(trx storage.Transaction, s *State, r *event.Record) error {
		s.Paused = true
		return nil
	})
}

// Unpause - resume listing and trading
func (m *Market) Unpause(admin account.Address) error {
	return m.adminUpdate(admin, event.MarketplaceUnpaused, func(trx storage.Transaction, s *State, r *event.Record) error {
		s.Paused = false
		return nil
	})
}

// TransferAdmin - hand the admin role to another account
func (m *Market) TransferAdmin(admin account.Address, newAdmin account.Address) error {
	return m.adminUpdate(admin, event.MarketplaceAdmin, func(trx storage.Transaction, s *State, r *event.Record) error {
		if newAdmin.IsZero() {
			return fault.InvalidAddress
		}
		s.Admin = newAdmin
		r.Target = newAdmin
		return nil
	})
}

// EmergencyDeactivate - freeze every active listing of an asset
//
// share and payment balances are not touched; returns the number frozen
func (m *Market) EmergencyDeactivate(admin account.Address, ref asset.Ref) (uint64, error) {
	frozen := uint64(0)
	err := m.adminUpdate(admin, event.EmergencyDeactivated, func(trx storage.Transaction, s *State, r *event.Record) error {
		now := m.timestamp()
		for _, l := range m.activeListings(trx, ref, 0) {
			m.unindex(trx, l)
			l.Status = StatusFrozen
			l.UpdatedAt = now
			m.writeListing(trx, l)
			frozen += 1
		}
		r.Asset = ref
		r.Amount = frozen
		return nil
	})
	if nil != err {
		return 0, err
	}
	m.log.Warnf("emergency deactivate: asset: %s  listings: %d", ref, frozen)
	return frozen, nil
}

// common admin operation
func (m *Market) adminUpdate(admin account.Address, kind event.Kind, f func(storage.Transaction, *State, *event.Record) error) error {
	err := m.store.Update(func(trx storage.Transaction) error {
		s, err := m.readState(trx)
		if nil != err {
			return err
		}
		if err := guard.IsAdmin(admin, s.Admin); nil != err {
			return err
		}
		r := event.Record{
			Kind:      kind,
			Actor:     admin,
			Timestamp: m.timestamp(),
		}
		if err := f(trx, s, &r); nil != err {
			return err
		}
		m.writeState(trx, s)
		m.events.Emit(trx, r)
		return nil
	})
	if nil != err {
		m.log.Debugf("%s: admin: %s  error: %s", kind, admin, err)
		return err
	}
	m.log.Infof("%s: by: %s", kind, admin)
	return nil
}
