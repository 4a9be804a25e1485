// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracle

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/storage"
)

// State - committee settings and counters
type State struct {
	Admin           account.Address `json:"admin"`
	MinConsensus    uint64          `json:"minConsensus"`
	UpdateFrequency time.Duration   `json:"updateFrequency"`
	Paused          bool            `json:"paused"`
	OracleCount     uint64          `json:"oracleCount"`
	TotalProposals  uint64          `json:"totalProposals"`
	TotalValuations uint64          `json:"totalValuations"`
	NextValuationId uint64          `json:"nextValuationId"`
}

// Pending - a proposal collecting votes
type Pending struct {
	Asset       asset.Ref         `json:"asset"`
	Proposed    asset.Valuation   `json:"proposed"`
	Voters      []account.Address `json:"voters"`
	Votes       uint64            `json:"votes"`
	ExpiresAt   time.Time         `json:"expiresAt"`
	CreatedAt   time.Time         `json:"createdAt"`
	ValuationId uint64            `json:"valuationId"`
	Initiator   account.Address   `json:"initiator"`
}

// HistoryEntry - one applied valuation
type HistoryEntry struct {
	Valuation      asset.Valuation `json:"valuation"`
	Timestamp      time.Time       `json:"timestamp"`
	ValuationId    uint64          `json:"valuationId"`
	ConsensusCount uint64          `json:"consensusCount"`
}

var stateKey = []byte("state")

const addressLength = len(account.Address{})

// state: admin ⧺ min ⧺ frequency ⧺ paused ⧺ oracles ⧺ proposals ⧺ valuations ⧺ next id
const (
	adminStart       = 0
	adminFinish      = adminStart + addressLength
	minStart         = adminFinish
	frequencyStart   = minStart + 8
	pausedStart      = frequencyStart + 8
	oracleCountStart = pausedStart + 1
	proposalsStart   = oracleCountStart + 8
	valuationsStart  = proposalsStart + 8
	nextIdStart      = valuationsStart + 8
	stateLength      = nextIdStart + 8
)

func (s *State) pack() []byte {
	buffer := make([]byte, stateLength)
	copy(buffer[adminStart:adminFinish], s.Admin[:])
	binary.BigEndian.PutUint64(buffer[minStart:], s.MinConsensus)
	binary.BigEndian.PutUint64(buffer[frequencyStart:], uint64(s.UpdateFrequency/time.Second))
	if s.Paused {
		buffer[pausedStart] = 1
	}
	binary.BigEndian.PutUint64(buffer[oracleCountStart:], s.OracleCount)
	binary.BigEndian.PutUint64(buffer[proposalsStart:], s.TotalProposals)
	binary.BigEndian.PutUint64(buffer[valuationsStart:], s.TotalValuations)
	binary.BigEndian.PutUint64(buffer[nextIdStart:], s.NextValuationId)
	return buffer
}

func unpackState(buffer []byte) *State {
	if stateLength != len(buffer) {
		fault.Panicf("oracle: state length: %d  expected: %d", len(buffer), stateLength)
	}
	s := &State{
		MinConsensus:    binary.BigEndian.Uint64(buffer[minStart:]),
		UpdateFrequency: time.Duration(binary.BigEndian.Uint64(buffer[frequencyStart:])) * time.Second,
		Paused:          0 != buffer[pausedStart],
		OracleCount:     binary.BigEndian.Uint64(buffer[oracleCountStart:]),
		TotalProposals:  binary.BigEndian.Uint64(buffer[proposalsStart:]),
		TotalValuations: binary.BigEndian.Uint64(buffer[valuationsStart:]),
		NextValuationId: binary.BigEndian.Uint64(buffer[nextIdStart:]),
	}
	copy(s.Admin[:], buffer[adminStart:adminFinish])
	return s
}

// pending: valuation ⧺ votes ⧺ expires ⧺ created ⧺ id ⧺ initiator ⧺ voter...
const (
	proposedStart  = 0
	votesStart     = proposedStart + asset.ValuationPackLength
	expiresStart   = votesStart + 8
	createdStart   = expiresStart + 8
	idStart        = createdStart + 8
	initiatorStart = idStart + 8
	votersStart    = initiatorStart + addressLength
)

func (p *Pending) pack() []byte {
	buffer := make([]byte, votersStart, votersStart+len(p.Voters)*addressLength)
	copy(buffer[proposedStart:], p.Proposed.Pack())
	binary.BigEndian.PutUint64(buffer[votesStart:], p.Votes)
	binary.BigEndian.PutUint64(buffer[expiresStart:], asset.TimeToUint64(p.ExpiresAt))
	binary.BigEndian.PutUint64(buffer[createdStart:], asset.TimeToUint64(p.CreatedAt))
	binary.BigEndian.PutUint64(buffer[idStart:], p.ValuationId)
	copy(buffer[initiatorStart:votersStart], p.Initiator[:])
	for _, v := range p.Voters {
		buffer = append(buffer, v[:]...)
	}
	return buffer
}

func unpackPending(ref asset.Ref, buffer []byte) *Pending {
	if len(buffer) < votersStart || 0 != (len(buffer)-votersStart)%addressLength {
		fault.Panicf("oracle: asset: %s  pending length: %d", ref, len(buffer))
	}
	proposed, err := asset.UnpackValuation(buffer[proposedStart:votesStart])
	fault.PanicIfError("oracle: pending valuation", err)

	p := &Pending{
		Asset:       ref,
		Proposed:    proposed,
		Votes:       binary.BigEndian.Uint64(buffer[votesStart:]),
		ExpiresAt:   asset.Uint64ToTime(binary.BigEndian.Uint64(buffer[expiresStart:])),
		CreatedAt:   asset.Uint64ToTime(binary.BigEndian.Uint64(buffer[createdStart:])),
		ValuationId: binary.BigEndian.Uint64(buffer[idStart:]),
	}
	copy(p.Initiator[:], buffer[initiatorStart:votersStart])
	for i := votersStart; i < len(buffer); i += addressLength {
		var a account.Address
		copy(a[:], buffer[i:i+addressLength])
		p.Voters = append(p.Voters, a)
	}
	return p
}

// history entry: valuation ⧺ timestamp ⧺ id ⧺ consensus
const (
	entryTimestampStart = asset.ValuationPackLength
	entryIdStart        = entryTimestampStart + 8
	entryCountStart     = entryIdStart + 8
	entryLength         = entryCountStart + 8
)

func packHistory(entries []HistoryEntry) []byte {
	buffer := make([]byte, 0, len(entries)*entryLength)
	for _, e := range entries {
		item := make([]byte, entryLength)
		copy(item, e.Valuation.Pack())
		binary.BigEndian.PutUint64(item[entryTimestampStart:], asset.TimeToUint64(e.Timestamp))
		binary.BigEndian.PutUint64(item[entryIdStart:], e.ValuationId)
		binary.BigEndian.PutUint64(item[entryCountStart:], e.ConsensusCount)
		buffer = append(buffer, item...)
	}
	return buffer
}

func unpackHistory(ref asset.Ref, buffer []byte) []HistoryEntry {
	if 0 != len(buffer)%entryLength || len(buffer)/entryLength > MaximumHistory {
		fault.Panicf("oracle: asset: %s  %s  length: %d", ref, fault.TooManyHistoryItems, len(buffer))
	}
	entries := make([]HistoryEntry, 0, len(buffer)/entryLength)
	for i := 0; i < len(buffer); i += entryLength {
		item := buffer[i : i+entryLength]
		v, err := asset.UnpackValuation(item[:entryTimestampStart])
		fault.PanicIfError("oracle: history valuation", err)
		entries = append(entries, HistoryEntry{
			Valuation:      v,
			Timestamp:      asset.Uint64ToTime(binary.BigEndian.Uint64(item[entryTimestampStart:])),
			ValuationId:    binary.BigEndian.Uint64(item[entryIdStart:]),
			ConsensusCount: binary.BigEndian.Uint64(item[entryCountStart:]),
		})
	}
	return entries
}

func (c *Committee) readState(trx storage.Transaction) (*State, error) {
	buffer := trx.Get(c.store.Pool.Committee, stateKey)
	if nil == buffer {
		return nil, fault.CommitteeNotInitialised
	}
	return unpackState(buffer), nil
}

func (c *Committee) writeState(trx storage.Transaction, s *State) {
	trx.Put(c.store.Pool.Committee, stateKey, s.pack())
}

func (c *Committee) readPending(trx storage.Transaction, ref asset.Ref) (*Pending, error) {
	buffer := trx.Get(c.store.Pool.Pending, ref[:])
	if nil == buffer {
		return nil, fault.PendingNotFound
	}
	return unpackPending(ref, buffer), nil
}

func (c *Committee) readHistory(trx storage.Transaction, ref asset.Ref) []HistoryEntry {
	return unpackHistory(ref, trx.Get(c.store.Pool.History, ref[:]))
}

// append keeping only the newest MaximumHistory entries
func (c *Committee) appendHistory(trx storage.Transaction, ref asset.Ref, e HistoryEntry) {
	entries := append(c.readHistory(trx, ref), e)
	if len(entries) > MaximumHistory {
		entries = entries[len(entries)-MaximumHistory:]
	}
	trx.Put(c.store.Pool.History, ref[:], packHistory(entries))
}

func (c *Committee) isOracle(trx storage.Transaction, a account.Address) bool {
	return trx.Has(c.store.Pool.Oracles, a[:])
}
