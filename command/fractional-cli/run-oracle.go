// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/oracle"
	"github.com/bitmark-inc/fractiond/rpc/valuation"
)

func runPropose(c *cli.Context) error {
	o, err := checkActor(meta(c))
	if nil != err {
		return err
	}
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	mv, err := checkAmount(c.Uint64("market-value"))
	if nil != err {
		return err
	}

	arguments := valuation.SubmitArguments{
		Oracle: o,
		Asset:  ref,
		Valuation: asset.Valuation{
			Score:           c.Uint64("score"),
			MarketValue:     mv,
			SEOAuthority:    c.Uint64("seo"),
			TrafficEstimate: c.Uint64("traffic"),
			Brandability:    c.Uint64("brand"),
			TLDRarity:       c.Uint64("tld"),
		},
	}
	var reply oracle.Result
	return call(c, "Oracle.Submit", &arguments, &reply)
}

func runVote(c *cli.Context) error {
	o, err := checkActor(meta(c))
	if nil != err {
		return err
	}
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	var reply oracle.Result
	return call(c, "Oracle.Vote", &valuation.VoteArguments{Oracle: o, Asset: ref}, &reply)
}

// current value always; history and trend once there are entries
func runValuation(c *cli.Context) error {
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	arguments := valuation.AssetArguments{Asset: ref}

	var current valuation.CurrentReply
	if err := call(c, "Oracle.Current", &arguments, &current); nil != err {
		return err
	}

	var history valuation.HistoryReply
	if err := call(c, "Oracle.History", &arguments, &history); nil != err {
		return err
	}

	var trend oracle.Trend
	err = call(c, "Oracle.Trend", &arguments, &trend)
	if nil != err && fault.InsufficientHistory.Error() != err.Error() {
		return err
	}
	return nil
}

func runCommittee(c *cli.Context) error {
	var reply valuation.CommitteeReply
	return call(c, "Oracle.Committee", &valuation.CommitteeArguments{}, &reply)
}
