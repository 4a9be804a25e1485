// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"encoding/binary"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/storage"
)

// MaximumFee - 100% in basis points
const MaximumFee = 10000

// State - marketplace settings and running totals
type State struct {
	FeeBasisPoints uint64          `json:"feeBasisPoints"`
	FeeCollector   account.Address `json:"feeCollector"`
	Admin          account.Address `json:"admin"`
	Paused         bool            `json:"paused"`
	TotalVolume    uint64          `json:"totalVolume"`
	TotalTrades    uint64          `json:"totalTrades"`
	TotalListings  uint64          `json:"totalListings"`
	NextListingId  uint64          `json:"nextListingId"`
	NextTrackingId uint64          `json:"nextTrackingId"`
	NextTradeId    uint64          `json:"nextTradeId"`
}

var stateKey = []byte("state")

const (
	feeStart        = 0
	feeFinish       = feeStart + 8
	collectorStart  = feeFinish
	collectorFinish = collectorStart + len(account.Address{})
	adminStart      = collectorFinish
	adminFinish     = adminStart + len(account.Address{})
	pausedStart     = adminFinish
	pausedFinish    = pausedStart + 1
	volumeStart     = pausedFinish
	tradesStart     = volumeStart + 8
	listingsStart   = tradesStart + 8
	nextListStart   = listingsStart + 8
	nextTrackStart  = nextListStart + 8
	nextTradeStart  = nextTrackStart + 8
	stateLength     = nextTradeStart + 8
)

func (s *State) pack() []byte {
	buffer := make([]byte, stateLength)
	binary.BigEndian.PutUint64(buffer[feeStart:feeFinish], s.FeeBasisPoints)
	copy(buffer[collectorStart:collectorFinish], s.FeeCollector[:])
	copy(buffer[adminStart:adminFinish], s.Admin[:])
	if s.Paused {
		buffer[pausedStart] = 1
	}
	binary.BigEndian.PutUint64(buffer[volumeStart:], s.TotalVolume)
	binary.BigEndian.PutUint64(buffer[tradesStart:], s.TotalTrades)
	binary.BigEndian.PutUint64(buffer[listingsStart:], s.TotalListings)
	binary.BigEndian.PutUint64(buffer[nextListStart:], s.NextListingId)
	binary.BigEndian.PutUint64(buffer[nextTrackStart:], s.NextTrackingId)
	binary.BigEndian.PutUint64(buffer[nextTradeStart:], s.NextTradeId)
	return buffer
}

func unpackState(buffer []byte) *State {
	if stateLength != len(buffer) {
		fault.Panicf("market: state length: %d  expected: %d", len(buffer), stateLength)
	}
	s := &State{
		FeeBasisPoints: binary.BigEndian.Uint64(buffer[feeStart:feeFinish]),
		Paused:         0 != buffer[pausedStart],
		TotalVolume:    binary.BigEndian.Uint64(buffer[volumeStart:]),
		TotalTrades:    binary.BigEndian.Uint64(buffer[tradesStart:]),
		TotalListings:  binary.BigEndian.Uint64(buffer[listingsStart:]),
		NextListingId:  binary.BigEndian.Uint64(buffer[nextListStart:]),
		NextTrackingId: binary.BigEndian.Uint64(buffer[nextTrackStart:]),
		NextTradeId:    binary.BigEndian.Uint64(buffer[nextTradeStart:]),
	}
	copy(s.FeeCollector[:], buffer[collectorStart:collectorFinish])
	copy(s.Admin[:], buffer[adminStart:adminFinish])
	return s
}

func (m *Market) readState(trx storage.Transaction) (*State, error) {
	buffer := trx.Get(m.store.Pool.MarketState, stateKey)
	if nil == buffer {
		return nil, fault.MarketplaceNotInitialised
	}
	return unpackState(buffer), nil
}

func (m *Market) writeState(trx storage.Transaction, s *State) {
	trx.Put(m.store.Pool.MarketState, stateKey, s.pack())
}
