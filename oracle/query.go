// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracle

import (
	"math/bits"
	"time"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/storage"
)

// maximum oracles returned by one call
const maximumOracles = 1000

// Direction - sign of a valuation change
type Direction string

// valuation directions
const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

// Trend - movement of market value across the kept history
type Trend struct {
	Asset             asset.Ref `json:"asset"`
	First             uint64    `json:"first"`
	Last              uint64    `json:"last"`
	ChangeBasisPoints uint64    `json:"changeBasisPoints"`
	Direction         Direction `json:"direction"`
	ElapsedDays       uint64    `json:"elapsedDays"`
	Samples           int       `json:"samples"`
}

// CurrentValuation - the valuation held by the registry
func (c *Committee) CurrentValuation(ref asset.Ref) (asset.Valuation, error) {
	var v asset.Valuation
	err := c.store.View(func(trx storage.Transaction) error {
		var err error
		v, err = c.registry.GetValuation(trx, ref)
		return err
	})
	return v, err
}

// Pending - the open proposal for an asset
func (c *Committee) Pending(ref asset.Ref) (*Pending, error) {
	var p *Pending
	err := c.store.View(func(trx storage.Transaction) error {
		var err error
		p, err = c.readPending(trx, ref)
		return err
	})
	return p, err
}

// TimeUntilNextUpdate - zero when a proposal may be submitted now
func (c *Committee) TimeUntilNextUpdate(ref asset.Ref) (time.Duration, error) {
	remaining := time.Duration(0)
	err := c.store.View(func(trx storage.Transaction) error {
		s, err := c.readState(trx)
		if nil != err {
			return err
		}
		if !c.registry.AssetExists(trx, ref) {
			return fault.AssetNotFound
		}
		last := c.registry.GetValuationUpdatedAt(trx, ref)
		if last.IsZero() {
			return nil
		}
		if d := last.Add(s.UpdateFrequency).Sub(c.timestamp()); d > 0 {
			remaining = d
		}
		return nil
	})
	return remaining, err
}

// History - applied valuations, oldest first
func (c *Committee) History(ref asset.Ref) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := c.store.View(func(trx storage.Transaction) error {
		if !c.registry.AssetExists(trx, ref) {
			return fault.AssetNotFound
		}
		entries = c.readHistory(trx, ref)
		return nil
	})
	return entries, err
}

// Trend - compare the two most recent valuations
func (c *Committee) Trend(ref asset.Ref) (Trend, error) {
	entries, err := c.History(ref)
	if nil != err {
		return Trend{}, err
	}
	if len(entries) < 2 {
		return Trend{}, fault.InsufficientHistory
	}

	first := entries[len(entries)-2]
	last := entries[len(entries)-1]
	t := Trend{
		Asset:       ref,
		First:       first.Valuation.MarketValue,
		Last:        last.Valuation.MarketValue,
		Direction:   Flat,
		ElapsedDays: uint64(last.Timestamp.Sub(first.Timestamp) / (24 * time.Hour)),
		Samples:     len(entries),
	}

	diff := uint64(0)
	switch {
	case t.Last > t.First:
		diff = t.Last - t.First
		t.Direction = Up
	case t.Last < t.First:
		diff = t.First - t.Last
		t.Direction = Down
	}
	hi, lo := bits.Mul64(diff, 10000)
	t.ChangeBasisPoints, _ = bits.Div64(hi, lo, t.First)
	return t, nil
}

// Committee - current settings and counters
func (c *Committee) Committee() (State, error) {
	var s State
	err := c.store.View(func(trx storage.Transaction) error {
		state, err := c.readState(trx)
		if nil != err {
			return err
		}
		s = *state
		return nil
	})
	return s, err
}

// IsOracle - check an address is authorised
func (c *Committee) IsOracle(a account.Address) bool {
	authorised := false
	_ = c.store.View(func(trx storage.Transaction) error {
		authorised = c.isOracle(trx, a)
		return nil
	})
	return authorised
}

// Oracles - authorised addresses in order
func (c *Committee) Oracles() ([]account.Address, error) {
	var oracles []account.Address
	err := c.store.View(func(trx storage.Transaction) error {
		if _, err := c.readState(trx); nil != err {
			return err
		}
		for _, e := range trx.Fetch(c.store.Pool.Oracles, nil, maximumOracles) {
			var a account.Address
			copy(a[:], e.Key)
			oracles = append(oracles, a)
		}
		return nil
	})
	return oracles, err
}

// PendingAssets - assets with an open proposal
func (c *Committee) PendingAssets(count int) ([]asset.Ref, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}
	var refs []asset.Ref
	err := c.store.View(func(trx storage.Transaction) error {
		for _, e := range trx.Fetch(c.store.Pool.Pending, nil, count) {
			var ref asset.Ref
			copy(ref[:], e.Key)
			refs = append(refs, ref)
		}
		return nil
	})
	return refs, err
}
