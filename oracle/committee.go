// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracle

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

const (
	// ProposalLifetime - time allowed to reach consensus
	ProposalLifetime = 24 * time.Hour

	// MaximumHistory - applied valuations kept per asset
	MaximumHistory = 50
)

// Committee - the oracle committee
type Committee struct {
	log      *logger.L
	store    *storage.Store
	registry registry.Registry
	events   event.Emitter
	now      func() time.Time
}

// New - create the committee component
func New(store *storage.Store, reg registry.Registry, events event.Emitter) *Committee {
	return &Committee{
		log:      logger.New("oracle"),
		store:    store,
		registry: reg,
		events:   events,
		now:      time.Now,
	}
}

// SetClock - replace the time source
func (c *Committee) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Committee) timestamp() time.Time {
	return c.now().UTC().Truncate(time.Second)
}

// Initialise - create the committee singleton
func (c *Committee) Initialise(admin account.Address, oracles []account.Address, minConsensus uint64, updateFrequency time.Duration) error {
	err := c.store.Update(func(trx storage.Transaction) error {
		if trx.Has(c.store.Pool.Committee, stateKey) {
			return fault.AlreadyInitialised
		}
		if admin.IsZero() {
			return fault.InvalidAddress
		}
		if 0 == len(oracles) {
			return fault.MissingParameters
		}
		if minConsensus < 1 || minConsensus > uint64(len(oracles)) {
			return fault.InvalidMinimumConsensus
		}

		now := c.timestamp()
		for _, o := range oracles {
			if o.IsZero() {
				return fault.InvalidAddress
			}
			if c.isOracle(trx, o) {
				return fault.OracleAlreadyAuthorised
			}
			trx.Put(c.store.Pool.Oracles, o[:], storage.Uint64Bytes(asset.TimeToUint64(now)))
		}

		c.writeState(trx, &State{
			Admin:           admin,
			MinConsensus:    minConsensus,
			UpdateFrequency: updateFrequency.Truncate(time.Second),
			OracleCount:     uint64(len(oracles)),
		})
		c.events.Emit(trx, event.Record{
			Kind:      event.CommitteeInitialised,
			Actor:     admin,
			Amount:    minConsensus,
			Timestamp: now,
		})
		return nil
	})
	if nil != err {
		return err
	}
	c.log.Infof("initialised: admin: %s  oracles: %d  consensus: %d  frequency: %s", admin, len(oracles), minConsensus, updateFrequency)
	return nil
}

// AddOracle - authorise a new oracle
func (c *Committee) AddOracle(admin account.Address, oracle account.Address) error {
	return c.adminUpdate(admin, event.OracleAdded, func(trx storage.Transaction, s *State, r *event.Record) error {
		if oracle.IsZero() {
			return fault.InvalidAddress
		}
		if c.isOracle(trx, oracle) {
			return fault.OracleAlreadyAuthorised
		}
		trx.Put(c.store.Pool.Oracles, oracle[:], storage.Uint64Bytes(asset.TimeToUint64(r.Timestamp)))
		s.OracleCount += 1
		r.Target = oracle
		return nil
	})
}

// RemoveOracle - withdraw an oracle's authorisation
//
// rejected if fewer oracles than the minimum consensus would remain
func (c *Committee) RemoveOracle(admin account.Address, oracle account.Address) error {
	return c.adminUpdate(admin, event.OracleRemoved, func(trx storage.Transaction, s *State, r *event.Record) error {
		if !c.isOracle(trx, oracle) {
			return fault.OracleNotAuthorised
		}
		if s.OracleCount-1 < s.MinConsensus {
			return fault.RemoveBelowConsensus
		}
		trx.Delete(c.store.Pool.Oracles, oracle[:])
		s.OracleCount -= 1
		r.Target = oracle
		return nil
	})
}

// UpdateSettings - change the consensus threshold and update throttle
func (c *Committee) UpdateSettings(admin account.Address, minConsensus uint64, updateFrequency time.Duration) error {
	return c.adminUpdate(admin, event.SettingsUpdated, func(trx storage.Transaction, s *State, r *event.Record) error {
		if minConsensus < 1 || minConsensus > s.OracleCount {
			return fault.InvalidMinimumConsensus
		}
		s.MinConsensus = minConsensus
		s.UpdateFrequency = updateFrequency.Truncate(time.Second)
		r.Amount = minConsensus
		r.Detail = s.UpdateFrequency.String()
		return nil
	})
}

// Pause - stop proposals and votes
func (c *Committee) Pause(admin account.Address) error {
	return c.adminUpdate(admin, event.CommitteePaused, func(trx storage.Transaction, s *State, r *event.Record) error {
		s.Paused = true
		return nil
	})
}

// Unpause - resume proposals and votes
func (c *Committee) Unpause(admin account.Address) error {
	return c.adminUpdate(admin, event.CommitteeUnpaused, func(trx storage.Transaction, s *State, r *event.Record) error {
		s.Paused = false
		return nil
	})
}

// TransferAdmin - hand the admin role to another account
func (c *Committee) TransferAdmin(admin account.Address, newAdmin account.Address) error {
	return c.adminUpdate(admin, event.CommitteeAdmin, func(trx storage.Transaction, s *State, r *event.Record) error {
		if newAdmin.IsZero() {
			return fault.InvalidAddress
		}
		s.Admin = newAdmin
		r.Target = newAdmin
		return nil
	})
}

func (c *Committee) adminUpdate(admin account.Address, kind event.Kind, f func(storage.Transaction, *State, *event.Record) error) error {
	err := c.store.Update(func(trx storage.Transaction) error {
		s, err := c.readState(trx)
		if nil != err {
			return err
		}
		if err := guard.IsAdmin(admin, s.Admin); nil != err {
			return err
		}
		r := event.Record{
			Kind:      kind,
			Actor:     admin,
			Timestamp: c.timestamp(),
		}
		if err := f(trx, s, &r); nil != err {
			return err
		}
		c.writeState(trx, s)
		c.events.Emit(trx, r)
		return nil
	})
	if nil != err {
		c.log.Debugf("%s: admin: %s  error: %s", kind, admin, err)
		return err
	}
	c.log.Infof("%s: by: %s", kind, admin)
	return nil
}
