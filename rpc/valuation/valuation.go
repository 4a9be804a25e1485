// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package valuation - RPC access to the oracle committee
package valuation

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/oracle"
	"github.com/bitmark-inc/fractiond/rpc/ratelimit"
)

const (
	rateLimitOracle = 100
	rateBurstOracle = 50
)

// Oracle - type for RPC
type Oracle struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Consensus *oracle.Committee
}

// New - create the oracle service
func New(log *logger.L, committee *oracle.Committee) *Oracle {
	return &Oracle{
		Log:       log,
		Limiter:   ratelimit.New(rateLimitOracle, rateBurstOracle),
		Consensus: committee,
	}
}

// Empty - reply for calls with no result data
type Empty struct{}

// SubmitArguments - a proposed valuation
type SubmitArguments struct {
	Oracle    account.Address `json:"oracle"`
	Asset     asset.Ref       `json:"asset"`
	Valuation asset.Valuation `json:"valuation"`
}

// Submit - open a proposal with the submitter's vote
func (o *Oracle) Submit(arguments *SubmitArguments, reply *oracle.Result) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}

	o.Log.Infof("Oracle.Submit: %+v", arguments)

	r, err := o.Consensus.SubmitProposal(arguments.Oracle, arguments.Asset, arguments.Valuation)
	if nil != err {
		return err
	}
	*reply = r
	return nil
}

// VoteArguments - caller and the asset whose proposal is voted on
type VoteArguments struct {
	Oracle account.Address `json:"oracle"`
	Asset  asset.Ref       `json:"asset"`
}

// Vote - agree with the pending proposal
func (o *Oracle) Vote(arguments *VoteArguments, reply *oracle.Result) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}

	o.Log.Infof("Oracle.Vote: %+v", arguments)

	r, err := o.Consensus.Vote(arguments.Oracle, arguments.Asset)
	if nil != err {
		return err
	}
	*reply = r
	return nil
}

// CleanupReply - whether an expired proposal was removed
type CleanupReply struct {
	Removed bool `json:"removed"`
}

// Cleanup - remove an expired proposal, any caller
func (o *Oracle) Cleanup(arguments *VoteArguments, reply *CleanupReply) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}

	removed, err := o.Consensus.CleanupExpired(arguments.Oracle, arguments.Asset)
	if nil != err {
		return err
	}
	reply.Removed = removed
	return nil
}

// AssetArguments - asset to query
type AssetArguments struct {
	Asset asset.Ref `json:"asset"`
}

// Pending - the open proposal
func (o *Oracle) Pending(arguments *AssetArguments, reply *oracle.Pending) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}

	p, err := o.Consensus.Pending(arguments.Asset)
	if nil != err {
		return err
	}
	*reply = *p
	return nil
}

// CurrentReply - valuation and throttle state
type CurrentReply struct {
	Valuation asset.Valuation `json:"valuation"`
	NextIn    string          `json:"nextIn"`
}

// Current - applied valuation and time until another may be proposed
func (o *Oracle) Current(arguments *AssetArguments, reply *CurrentReply) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}

	v, err := o.Consensus.CurrentValuation(arguments.Asset)
	if nil != err {
		return err
	}
	d, err := o.Consensus.TimeUntilNextUpdate(arguments.Asset)
	if nil != err {
		return err
	}
	reply.Valuation = v
	reply.NextIn = d.Truncate(time.Second).String()
	return nil
}

// HistoryReply - applied valuations, oldest first
type HistoryReply struct {
	History []oracle.HistoryEntry `json:"history"`
}

// History - kept valuation history
func (o *Oracle) History(arguments *AssetArguments, reply *HistoryReply) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}

	h, err := o.Consensus.History(arguments.Asset)
	if nil != err {
		return err
	}
	reply.History = h
	return nil
}

// Trend - market value movement across the history
func (o *Oracle) Trend(arguments *AssetArguments, reply *oracle.Trend) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}

	t, err := o.Consensus.Trend(arguments.Asset)
	if nil != err {
		return err
	}
	*reply = t
	return nil
}

// CommitteeArguments - empty arguments
type CommitteeArguments struct{}

// CommitteeReply - settings and authorised oracles
type CommitteeReply struct {
	State   oracle.State      `json:"state"`
	Oracles []account.Address `json:"oracles"`
}

// Committee - settings, counters and members
func (o *Oracle) Committee(_ *CommitteeArguments, reply *CommitteeReply) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}

	s, err := o.Consensus.Committee()
	if nil != err {
		return err
	}
	oracles, err := o.Consensus.Oracles()
	if nil != err {
		return err
	}
	reply.State = s
	reply.Oracles = oracles
	return nil
}

// AdminArguments - admin action; only the fields for the call are used
type AdminArguments struct {
	Admin           account.Address `json:"admin"`
	Target          account.Address `json:"target,omitempty"`
	MinConsensus    uint64          `json:"minConsensus,omitempty"`
	UpdateFrequency uint64          `json:"updateFrequency,omitempty"` // seconds
}

// AddOracle - authorise Target
func (o *Oracle) AddOracle(arguments *AdminArguments, reply *Empty) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}
	o.Log.Infof("Oracle.AddOracle: %+v", arguments)
	return o.Consensus.AddOracle(arguments.Admin, arguments.Target)
}

// RemoveOracle - withdraw Target's authorisation
func (o *Oracle) RemoveOracle(arguments *AdminArguments, reply *Empty) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}
	o.Log.Infof("Oracle.RemoveOracle: %+v", arguments)
	return o.Consensus.RemoveOracle(arguments.Admin, arguments.Target)
}

// UpdateSettings - change consensus threshold and throttle
func (o *Oracle) UpdateSettings(arguments *AdminArguments, reply *Empty) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}
	o.Log.Infof("Oracle.UpdateSettings: %+v", arguments)
	frequency := time.Duration(arguments.UpdateFrequency) * time.Second
	return o.Consensus.UpdateSettings(arguments.Admin, arguments.MinConsensus, frequency)
}

// Pause - stop proposals and votes
func (o *Oracle) Pause(arguments *AdminArguments, reply *Empty) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}
	o.Log.Infof("Oracle.Pause: %+v", arguments)
	return o.Consensus.Pause(arguments.Admin)
}

// Unpause - resume proposals and votes
func (o *Oracle) Unpause(arguments *AdminArguments, reply *Empty) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}
	o.Log.Infof("Oracle.Unpause: %+v", arguments)
	return o.Consensus.Unpause(arguments.Admin)
}

// TransferAdmin - hand the admin role to Target
func (o *Oracle) TransferAdmin(arguments *AdminArguments, reply *Empty) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}
	o.Log.Infof("Oracle.TransferAdmin: %+v", arguments)
	return o.Consensus.TransferAdmin(arguments.Admin, arguments.Target)
}
