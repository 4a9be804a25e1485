// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package shares_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/ledger"
	"github.com/bitmark-inc/fractiond/rpc/fixtures"
	"github.com/bitmark-inc/fractiond/rpc/shares"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setup(t *testing.T) (*fixtures.Node, *shares.Shares) {
	n, err := fixtures.NewNode()
	assert.Nil(t, err, "fixture node")
	return n, shares.New(logger.New(fixtures.LogCategory), n.Services.Shares)
}

func TestTransferAndBalance(t *testing.T) {
	n, s := setup(t)
	defer n.Close()

	var reply shares.BalanceReply
	err := s.Transfer(&shares.TransferArguments{
		From:   fixtures.Owner,
		Asset:  n.Asset,
		To:     fixtures.Buyer,
		Amount: 250000,
	}, &reply)
	assert.Nil(t, err, "transfer")
	assert.Equal(t, uint64(750000), reply.Balance, "sender balance")

	var holding shares.HoldingReply
	err = s.Balance(&shares.HolderArguments{Asset: n.Asset, Owner: fixtures.Buyer}, &holding)
	assert.Nil(t, err, "balance")
	assert.Equal(t, uint64(250000), holding.Balance, "buyer balance")
	assert.Equal(t, uint64(2500), holding.BasisPoints, "buyer share")

	err = s.Transfer(&shares.TransferArguments{
		From:   fixtures.Buyer,
		Asset:  n.Asset,
		To:     fixtures.Owner,
		Amount: 250001,
	}, &reply)
	assert.Equal(t, fault.InsufficientShares, err, "overdraw")
}

func TestAllowance(t *testing.T) {
	n, s := setup(t)
	defer n.Close()

	var empty shares.Empty
	err := s.Approve(&shares.ApproveArguments{
		Owner:   fixtures.Owner,
		Asset:   n.Asset,
		Spender: fixtures.Buyer,
		Amount:  1000,
	}, &empty)
	assert.Nil(t, err, "approve")

	var reply shares.BalanceReply
	err = s.TransferFrom(&shares.TransferFromArguments{
		Spender: fixtures.Buyer,
		Asset:   n.Asset,
		From:    fixtures.Owner,
		To:      fixtures.Collector,
		Amount:  600,
	}, &reply)
	assert.Nil(t, err, "transfer from")
	assert.Equal(t, fixtures.Supply-600, reply.Balance, "owner balance")

	var allowance shares.AllowanceReply
	err = s.Allowance(&shares.AllowanceArguments{
		Asset:   n.Asset,
		Owner:   fixtures.Owner,
		Spender: fixtures.Buyer,
	}, &allowance)
	assert.Nil(t, err, "allowance")
	assert.Equal(t, uint64(400), allowance.Allowance, "remaining allowance")

	err = s.TransferFrom(&shares.TransferFromArguments{
		Spender: fixtures.Buyer,
		Asset:   n.Asset,
		From:    fixtures.Owner,
		To:      fixtures.Collector,
		Amount:  401,
	}, &reply)
	assert.Equal(t, fault.InsufficientAllowance, err, "beyond allowance")
}

func TestBatchAndHolders(t *testing.T) {
	n, s := setup(t)
	defer n.Close()

	var reply shares.BalanceReply
	err := s.BatchTransfer(&shares.BatchArguments{
		From:       fixtures.Owner,
		Asset:      n.Asset,
		Recipients: []account.Address{fixtures.Buyer, fixtures.Collector},
		Amounts:    []uint64{100, 200},
	}, &reply)
	assert.Nil(t, err, "batch")
	assert.Equal(t, fixtures.Supply-300, reply.Balance, "sender balance")

	err = s.BatchTransfer(&shares.BatchArguments{
		From:       fixtures.Owner,
		Asset:      n.Asset,
		Recipients: []account.Address{fixtures.Buyer},
		Amounts:    []uint64{1, 2},
	}, &reply)
	assert.Equal(t, fault.LengthMismatch, err, "mismatched batch")

	var holders shares.HoldersReply
	err = s.Holders(&shares.HoldersArguments{Asset: n.Asset, Count: 10}, &holders)
	assert.Nil(t, err, "holders")
	assert.Equal(t, []ledger.Holding{
		{Owner: fixtures.Owner, Balance: fixtures.Supply - 300},
		{Owner: fixtures.Buyer, Balance: 100},
		{Owner: fixtures.Collector, Balance: 200},
	}, holders.Holders, "holders in address order")

	var summary ledger.Summary
	err = s.Summary(&shares.SummaryArguments{Asset: n.Asset}, &summary)
	assert.Nil(t, err, "summary")
	assert.Equal(t, fixtures.Supply, summary.TotalShares, "total shares")
	assert.Equal(t, fixtures.Owner, summary.Issuer, "issuer")
}

func TestInitialiseTwice(t *testing.T) {
	n, s := setup(t)
	defer n.Close()

	var empty shares.Empty
	err := s.Initialise(&shares.InitialiseArguments{
		Owner:       fixtures.Owner,
		Asset:       n.Asset,
		TotalShares: fixtures.Supply,
	}, &empty)
	assert.True(t, fault.IsErrExists(err), "second initialise: %v", err)
}
