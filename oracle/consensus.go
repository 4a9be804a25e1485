// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracle

import (
	"strconv"
	"time"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/guard"
	"github.com/bitmark-inc/fractiond/storage"
)

// Result - state of a proposal after a submission or vote
type Result struct {
	Asset       asset.Ref `json:"asset"`
	ValuationId uint64    `json:"valuationId"`
	Votes       uint64    `json:"votes"`
	Required    uint64    `json:"required"`
	Applied     bool      `json:"applied"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// SubmitProposal - start a new valuation proposal with the proposer's vote counted
func (c *Committee) SubmitProposal(oracle account.Address, ref asset.Ref, proposed asset.Valuation) (Result, error) {
	var result Result
	err := c.store.Update(func(trx storage.Transaction) error {
		s, err := c.authorised(trx, oracle)
		if nil != err {
			return err
		}
		if !c.registry.AssetExists(trx, ref) {
			return fault.AssetNotFound
		}
		if trx.Has(c.store.Pool.Pending, ref[:]) {
			return fault.PendingAlreadyExists
		}

		now := c.timestamp()
		if err := proposed.Validate(now); nil != err {
			return err
		}
		last := c.registry.GetValuationUpdatedAt(trx, ref)
		if !last.IsZero() && now.Sub(last) < s.UpdateFrequency {
			return fault.UpdateTooFrequent
		}

		s.NextValuationId += 1
		s.TotalProposals += 1
		p := &Pending{
			Asset:       ref,
			Proposed:    proposed,
			Voters:      []account.Address{oracle},
			Votes:       1,
			ExpiresAt:   now.Add(ProposalLifetime),
			CreatedAt:   now,
			ValuationId: s.NextValuationId,
			Initiator:   oracle,
		}
		c.events.Emit(trx, event.Record{
			Kind:        event.ProposalSubmitted,
			Asset:       ref,
			Actor:       oracle,
			Amount:      proposed.MarketValue,
			ReferenceId: p.ValuationId,
			Timestamp:   now,
		})

		result, err = c.count(trx, s, p, now)
		return err
	})
	if nil != err {
		c.log.Debugf("submit: asset: %s  oracle: %s  error: %s", ref, oracle, err)
		return Result{}, err
	}
	c.log.Infof("submit: asset: %s  id: %d  votes: %d/%d  applied: %t", ref, result.ValuationId, result.Votes, result.Required, result.Applied)
	return result, nil
}

// Vote - add an oracle's vote to the pending proposal
func (c *Committee) Vote(oracle account.Address, ref asset.Ref) (Result, error) {
	var result Result
	err := c.store.Update(func(trx storage.Transaction) error {
		s, err := c.authorised(trx, oracle)
		if nil != err {
			return err
		}
		p, err := c.readPending(trx, ref)
		if nil != err {
			return err
		}

		now := c.timestamp()
		if now.After(p.ExpiresAt) {
			return fault.ProposalExpired
		}
		for _, v := range p.Voters {
			if v == oracle {
				return fault.AlreadyVoted
			}
		}

		p.Voters = append(p.Voters, oracle)
		p.Votes += 1
		c.events.Emit(trx, event.Record{
			Kind:        event.VoteCast,
			Asset:       ref,
			Actor:       oracle,
			Amount:      p.Votes,
			ReferenceId: p.ValuationId,
			Timestamp:   now,
		})

		result, err = c.count(trx, s, p, now)
		return err
	})
	if nil != err {
		c.log.Debugf("vote: asset: %s  oracle: %s  error: %s", ref, oracle, err)
		return Result{}, err
	}
	c.log.Infof("vote: asset: %s  id: %d  votes: %d/%d  applied: %t", ref, result.ValuationId, result.Votes, result.Required, result.Applied)
	return result, nil
}

// CleanupExpired - remove a proposal that has passed its deadline
//
// anyone may call this; returns false and changes nothing if the
// proposal is still open
func (c *Committee) CleanupExpired(caller account.Address, ref asset.Ref) (bool, error) {
	removed := false
	err := c.store.Update(func(trx storage.Transaction) error {
		if _, err := c.readState(trx); nil != err {
			return err
		}
		p, err := c.readPending(trx, ref)
		if nil != err {
			return err
		}
		now := c.timestamp()
		if !now.After(p.ExpiresAt) {
			return nil
		}

		trx.Delete(c.store.Pool.Pending, ref[:])
		c.events.Emit(trx, event.Record{
			Kind:        event.ProposalExpired,
			Asset:       ref,
			Actor:       caller,
			Target:      p.Initiator,
			Amount:      p.Votes,
			ReferenceId: p.ValuationId,
			Timestamp:   now,
		})
		removed = true
		return nil
	})
	if nil != err {
		return false, err
	}
	if removed {
		c.log.Infof("expired: asset: %s  removed by: %s", ref, caller)
	}
	return removed, nil
}

// committee state for an authorised oracle on an unpaused committee
func (c *Committee) authorised(trx storage.Transaction, oracle account.Address) (*State, error) {
	s, err := c.readState(trx)
	if nil != err {
		return nil, err
	}
	if err := guard.NotPaused(s.Paused, fault.CommitteePaused); nil != err {
		return nil, err
	}
	if err := guard.IsOracle(c.isOracle(trx, oracle)); nil != err {
		return nil, err
	}
	return s, nil
}

// store the proposal, or apply it once the votes reach consensus
func (c *Committee) count(trx storage.Transaction, s *State, p *Pending, now time.Time) (Result, error) {
	result := Result{
		Asset:       p.Asset,
		ValuationId: p.ValuationId,
		Votes:       p.Votes,
		Required:    s.MinConsensus,
		ExpiresAt:   p.ExpiresAt,
	}
	if p.Votes < s.MinConsensus {
		trx.Put(c.store.Pool.Pending, p.Asset[:], p.pack())
		c.writeState(trx, s)
		return result, nil
	}

	if err := c.apply(trx, s, p, now); nil != err {
		return Result{}, err
	}
	result.Applied = true
	return result, nil
}

func (c *Committee) apply(trx storage.Transaction, s *State, p *Pending, now time.Time) error {
	v := p.Proposed
	v.UpdatedAt = now
	if err := c.registry.SetValuation(trx, p.Asset, v); nil != err {
		return err
	}
	c.appendHistory(trx, p.Asset, HistoryEntry{
		Valuation:      v,
		Timestamp:      now,
		ValuationId:    p.ValuationId,
		ConsensusCount: p.Votes,
	})

	s.TotalValuations += 1
	c.writeState(trx, s)
	trx.Delete(c.store.Pool.Pending, p.Asset[:])

	c.events.Emit(trx, event.Record{
		Kind:        event.ValuationApplied,
		Asset:       p.Asset,
		Actor:       p.Initiator,
		Amount:      v.MarketValue,
		ReferenceId: p.ValuationId,
		Detail:      "score:" + strconv.FormatUint(v.Score, 10),
		Timestamp:   now,
	})
	return nil
}
