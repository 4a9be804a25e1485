// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/fractiond/rpc/assets"
	"github.com/bitmark-inc/fractiond/rpc/payments"
	"github.com/bitmark-inc/fractiond/rpc/shares"
)

func runRegister(c *cli.Context) error {
	owner, err := checkActor(meta(c))
	if nil != err {
		return err
	}
	domain := c.String("domain")
	if "" == domain {
		return ErrRequiredDomain
	}
	supply, err := checkAmount(c.Uint64("supply"))
	if nil != err {
		return err
	}

	arguments := assets.RegisterArguments{
		Owner:            owner,
		Domain:           domain,
		FractionalSupply: supply,
	}
	var reply assets.RegisterReply
	return call(c, "Registry.Register", &arguments, &reply)
}

func runAsset(c *cli.Context) error {
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	var reply assets.GetReply
	return call(c, "Registry.Get", &assets.GetArguments{Asset: ref}, &reply)
}

func runTrading(c *cli.Context) error {
	owner, err := checkActor(meta(c))
	if nil != err {
		return err
	}
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}

	arguments := assets.TradingArguments{
		Owner:   owner,
		Asset:   ref,
		Enabled: !c.Bool("disable"),
	}
	var reply assets.TradingReply
	return call(c, "Registry.SetTrading", &arguments, &reply)
}

func runMint(c *cli.Context) error {
	owner, err := checkActor(meta(c))
	if nil != err {
		return err
	}
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	total, err := checkAmount(c.Uint64("shares"))
	if nil != err {
		return err
	}

	arguments := shares.InitialiseArguments{
		Owner:       owner,
		Asset:       ref,
		TotalShares: total,
	}
	var reply shares.Empty
	return call(c, "Shares.Initialise", &arguments, &reply)
}

func runTransfer(c *cli.Context) error {
	from, err := checkActor(meta(c))
	if nil != err {
		return err
	}
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	to, err := checkAddress(c.String("to"))
	if nil != err {
		return err
	}
	amount, err := checkAmount(c.Uint64("amount"))
	if nil != err {
		return err
	}

	arguments := shares.TransferArguments{
		From:   from,
		Asset:  ref,
		To:     to,
		Amount: amount,
	}
	var reply shares.BalanceReply
	return call(c, "Shares.Transfer", &arguments, &reply)
}

func runApprove(c *cli.Context) error {
	owner, err := checkActor(meta(c))
	if nil != err {
		return err
	}
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	spender, err := checkAddress(c.String("spender"))
	if nil != err {
		return err
	}

	arguments := shares.ApproveArguments{
		Owner:   owner,
		Asset:   ref,
		Spender: spender,
		Amount:  c.Uint64("amount"),
	}
	var reply shares.Empty
	return call(c, "Shares.Approve", &arguments, &reply)
}

func runBalance(c *cli.Context) error {
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}

	owner := meta(c).actor
	if s := c.String("owner"); "" != s {
		owner, err = checkAddress(s)
		if nil != err {
			return err
		}
	} else if owner.IsZero() {
		return ErrRequiredAccount
	}

	var reply shares.HoldingReply
	return call(c, "Shares.Balance", &shares.HolderArguments{Asset: ref, Owner: owner}, &reply)
}

func runHolders(c *cli.Context) error {
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	var reply shares.HoldersReply
	return call(c, "Shares.Holders", &shares.HoldersArguments{Asset: ref, Count: c.Int("count")}, &reply)
}

func runDeposit(c *cli.Context) error {
	a, err := checkActor(meta(c))
	if nil != err {
		return err
	}
	amount, err := checkAmount(c.Uint64("amount"))
	if nil != err {
		return err
	}
	var reply payments.BalanceReply
	return call(c, "Payments.Deposit", &payments.DepositArguments{Account: a, Amount: amount}, &reply)
}
