// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payments - RPC access to the payment balances
package payments

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/payment"
	"github.com/bitmark-inc/fractiond/rpc/ratelimit"
)

const (
	rateLimitPayments = 100
	rateBurstPayments = 50
)

// Payments - type for RPC
type Payments struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Table   *payment.Table
}

// New - create the payments service
func New(log *logger.L, table *payment.Table) *Payments {
	return &Payments{
		Log:     log,
		Limiter: ratelimit.New(rateLimitPayments, rateBurstPayments),
		Table:   table,
	}
}

// DepositArguments - credit an account
type DepositArguments struct {
	Account account.Address `json:"account"`
	Amount  uint64          `json:"amount"`
}

// BalanceReply - the account balance
type BalanceReply struct {
	Balance uint64 `json:"balance"`
}

// Deposit - add funds received outside the node
func (p *Payments) Deposit(arguments *DepositArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	p.Log.Infof("Payments.Deposit: %+v", arguments)

	n, err := p.Table.Deposit(arguments.Account, arguments.Amount)
	if nil != err {
		return err
	}
	reply.Balance = n
	return nil
}

// BalanceArguments - account to query
type BalanceArguments struct {
	Account account.Address `json:"account"`
}

// Balance - funds available for purchases
func (p *Payments) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	n, err := p.Table.Balance(arguments.Account)
	if nil != err {
		return err
	}
	reply.Balance = n
	return nil
}
