// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package shares - RPC access to the share ledger
package shares

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/ledger"
	"github.com/bitmark-inc/fractiond/rpc/ratelimit"
)

const (
	rateLimitShares = 200
	rateBurstShares = 100

	// MaximumHoldersCount - holders returned by one call
	MaximumHoldersCount = 100
)

// Shares - type for RPC
type Shares struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Ledger  *ledger.Ledger
}

// New - create the shares service
func New(log *logger.L, l *ledger.Ledger) *Shares {
	return &Shares{
		Log:     log,
		Limiter: ratelimit.New(rateLimitShares, rateBurstShares),
		Ledger:  l,
	}
}

// Empty - reply for calls with no result data
type Empty struct{}

// InitialiseArguments - create the ledger for an asset
type InitialiseArguments struct {
	Owner       account.Address `json:"owner"`
	Asset       asset.Ref       `json:"asset"`
	TotalShares uint64          `json:"totalShares"`
}

// Initialise - mint the full supply to the asset owner
func (s *Shares) Initialise(arguments *InitialiseArguments, reply *Empty) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	s.Log.Infof("Shares.Initialise: %+v", arguments)

	return s.Ledger.Initialise(arguments.Owner, arguments.Asset, arguments.TotalShares)
}

// TransferArguments - move shares between accounts
type TransferArguments struct {
	From   account.Address `json:"from"`
	Asset  asset.Ref       `json:"asset"`
	To     account.Address `json:"to"`
	Amount uint64          `json:"amount"`
}

// BalanceReply - the sender's balance after the operation
type BalanceReply struct {
	Balance uint64 `json:"balance"`
}

// Transfer - move shares from the caller
func (s *Shares) Transfer(arguments *TransferArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	s.Log.Infof("Shares.Transfer: %+v", arguments)

	if err := s.Ledger.Transfer(arguments.From, arguments.Asset, arguments.To, arguments.Amount); nil != err {
		return err
	}
	return s.balance(arguments.Asset, arguments.From, reply)
}

// ApproveArguments - set a spender's allowance
type ApproveArguments struct {
	Owner   account.Address `json:"owner"`
	Asset   asset.Ref       `json:"asset"`
	Spender account.Address `json:"spender"`
	Amount  uint64          `json:"amount"`
}

// Approve - replace the allowance, zero removes it
func (s *Shares) Approve(arguments *ApproveArguments, reply *Empty) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	s.Log.Infof("Shares.Approve: %+v", arguments)

	return s.Ledger.Approve(arguments.Owner, arguments.Asset, arguments.Spender, arguments.Amount)
}

// TransferFromArguments - spend an allowance
type TransferFromArguments struct {
	Spender account.Address `json:"spender"`
	Asset   asset.Ref       `json:"asset"`
	From    account.Address `json:"from"`
	To      account.Address `json:"to"`
	Amount  uint64          `json:"amount"`
}

// TransferFrom - move shares on behalf of their owner
func (s *Shares) TransferFrom(arguments *TransferFromArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	s.Log.Infof("Shares.TransferFrom: %+v", arguments)

	err := s.Ledger.TransferFrom(arguments.Spender, arguments.Asset, arguments.From, arguments.To, arguments.Amount)
	if nil != err {
		return err
	}
	return s.balance(arguments.Asset, arguments.From, reply)
}

// BatchArguments - one sender, many recipients
type BatchArguments struct {
	From       account.Address   `json:"from"`
	Asset      asset.Ref         `json:"asset"`
	Recipients []account.Address `json:"recipients"`
	Amounts    []uint64          `json:"amounts"`
}

// BatchTransfer - all transfers succeed or none do
func (s *Shares) BatchTransfer(arguments *BatchArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	s.Log.Infof("Shares.BatchTransfer: %+v", arguments)

	err := s.Ledger.BatchTransfer(arguments.From, arguments.Asset, arguments.Recipients, arguments.Amounts)
	if nil != err {
		return err
	}
	return s.balance(arguments.Asset, arguments.From, reply)
}

// HolderArguments - one account's position
type HolderArguments struct {
	Asset asset.Ref       `json:"asset"`
	Owner account.Address `json:"owner"`
}

// HoldingReply - balance and ownership share
type HoldingReply struct {
	Balance     uint64 `json:"balance"`
	BasisPoints uint64 `json:"basisPoints"`
}

// Balance - shares held and percentage of supply
func (s *Shares) Balance(arguments *HolderArguments, reply *HoldingReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	balance, err := s.Ledger.BalanceOf(arguments.Asset, arguments.Owner)
	if nil != err {
		return err
	}
	bps, err := s.Ledger.SharePercentage(arguments.Asset, arguments.Owner)
	if nil != err {
		return err
	}
	reply.Balance = balance
	reply.BasisPoints = bps
	return nil
}

// AllowanceArguments - owner and spender pair
type AllowanceArguments struct {
	Asset   asset.Ref       `json:"asset"`
	Owner   account.Address `json:"owner"`
	Spender account.Address `json:"spender"`
}

// AllowanceReply - remaining allowance
type AllowanceReply struct {
	Allowance uint64 `json:"allowance"`
}

// Allowance - amount a spender may still move
func (s *Shares) Allowance(arguments *AllowanceArguments, reply *AllowanceReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	n, err := s.Ledger.Allowance(arguments.Asset, arguments.Owner, arguments.Spender)
	if nil != err {
		return err
	}
	reply.Allowance = n
	return nil
}

// SummaryArguments - asset to summarise
type SummaryArguments struct {
	Asset asset.Ref `json:"asset"`
}

// Summary - ledger totals
func (s *Shares) Summary(arguments *SummaryArguments, reply *ledger.Summary) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	summary, err := s.Ledger.Summary(arguments.Asset)
	if nil != err {
		return err
	}
	*reply = summary
	return nil
}

// HoldersArguments - page through holders
type HoldersArguments struct {
	Asset asset.Ref       `json:"asset"`
	Start account.Address `json:"start"`
	Count int             `json:"count"`
}

// HoldersReply - one page of holders
type HoldersReply struct {
	Holders []ledger.Holding `json:"holders"`
}

// Holders - balances in address order from start
func (s *Shares) Holders(arguments *HoldersArguments, reply *HoldersReply) error {
	if err := ratelimit.LimitN(s.Limiter, arguments.Count, MaximumHoldersCount); nil != err {
		return err
	}

	holders, err := s.Ledger.Holders(arguments.Asset, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	reply.Holders = holders
	return nil
}

func (s *Shares) balance(ref asset.Ref, owner account.Address, reply *BalanceReply) error {
	n, err := s.Ledger.BalanceOf(ref, owner)
	if nil != err {
		return err
	}
	reply.Balance = n
	return nil
}
