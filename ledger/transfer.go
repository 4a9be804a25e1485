// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/guard"
	"github.com/bitmark-inc/fractiond/storage"
)

// Movement - balances of both parties around a share transfer
type Movement struct {
	From event.Balance
	To   event.Balance
}

// Transfer - move shares from one holder to another
func (l *Ledger) Transfer(from account.Address, ref asset.Ref, to account.Address, amount uint64) error {
	err := l.store.Update(func(trx storage.Transaction) error {
		h, err := l.checkTransfer(trx, from, ref, to, amount)
		if nil != err {
			return err
		}
		m := l.move(trx, ref, h, from, to, amount)
		l.writeHeader(trx, ref, h)

		l.events.Emit(trx, event.Record{
			Kind:      event.Transfer,
			Asset:     ref,
			Actor:     from,
			Target:    to,
			Amount:    amount,
			Balances:  []event.Balance{m.From, m.To},
			Timestamp: l.timestamp(),
		})
		return nil
	})
	if nil != err {
		l.log.Debugf("transfer: asset: %s  from: %s  to: %s  amount: %d  error: %s", ref, from, to, amount, err)
	}
	return err
}

// Approve - set the number of shares spender may move from owner's balance
//
// a zero amount removes the allowance
func (l *Ledger) Approve(owner account.Address, ref asset.Ref, spender account.Address, amount uint64) error {
	err := l.store.Update(func(trx storage.Transaction) error {
		if err := guard.NotSelf(owner, spender); nil != err {
			return err
		}
		if spender.IsZero() {
			return fault.InvalidAddress
		}
		if _, err := l.readHeader(trx, ref); nil != err {
			return err
		}
		before := l.allowance(trx, ref, owner, spender)
		l.setAllowance(trx, ref, owner, spender, amount)

		l.events.Emit(trx, event.Record{
			Kind:   event.Approval,
			Asset:  ref,
			Actor:  owner,
			Target: spender,
			Amount: amount,
			Balances: []event.Balance{
				{Account: spender, Before: before, After: amount},
			},
			Timestamp: l.timestamp(),
		})
		return nil
	})
	if nil != err {
		l.log.Debugf("approve: asset: %s  owner: %s  spender: %s  error: %s", ref, owner, spender, err)
	}
	return err
}

// TransferFrom - spender moves shares out of from's balance using an allowance
func (l *Ledger) TransferFrom(spender account.Address, ref asset.Ref, from account.Address, to account.Address, amount uint64) error {
	err := l.store.Update(func(trx storage.Transaction) error {
		if err := guard.NotSelf(spender, from); nil != err {
			return err
		}
		h, err := l.checkTransfer(trx, from, ref, to, amount)
		if nil != err {
			return err
		}
		allowed := l.allowance(trx, ref, from, spender)
		if err := guard.Sufficient(allowed, amount, fault.InsufficientAllowance); nil != err {
			return err
		}

		l.setAllowance(trx, ref, from, spender, allowed-amount)
		m := l.move(trx, ref, h, from, to, amount)
		l.writeHeader(trx, ref, h)

		l.events.Emit(trx, event.Record{
			Kind:      event.Transfer,
			Asset:     ref,
			Actor:     spender,
			Target:    to,
			Amount:    amount,
			Balances:  []event.Balance{m.From, m.To},
			Detail:    "allowance",
			Timestamp: l.timestamp(),
		})
		return nil
	})
	if nil != err {
		l.log.Debugf("transfer from: asset: %s  spender: %s  from: %s  error: %s", ref, spender, from, err)
	}
	return err
}

// BatchTransfer - send shares to several recipients, all or nothing
//
// every recipient and amount is checked before any balance changes
func (l *Ledger) BatchTransfer(from account.Address, ref asset.Ref, recipients []account.Address, amounts []uint64) error {
	err := l.store.Update(func(trx storage.Transaction) error {
		if len(recipients) != len(amounts) {
			return fault.LengthMismatch
		}
		if 0 == len(recipients) {
			return fault.EmptyBatch
		}
		if len(recipients) > MaximumBatchSize {
			return fault.BatchTooLarge
		}

		h, err := l.readHeader(trx, ref)
		if nil != err {
			return err
		}
		if !l.registry.TradingEnabled(trx, ref) {
			return fault.TradingDisabled
		}

		seen := make(map[account.Address]struct{}, len(recipients))
		sum := uint64(0)
		for i, to := range recipients {
			if to.IsZero() {
				return fault.InvalidAddress
			}
			if err := guard.NotSelf(from, to); nil != err {
				return err
			}
			if _, ok := seen[to]; ok {
				return fault.DuplicateRecipient
			}
			seen[to] = struct{}{}

			if err := guard.NonZero(amounts[i]); nil != err {
				return err
			}
			if sum+amounts[i] < sum {
				return fault.Overflow
			}
			sum += amounts[i]
		}

		available := l.balance(trx, ref, from)
		if err := guard.Sufficient(available, sum, fault.InsufficientShares); nil != err {
			return err
		}

		balances := make([]event.Balance, 0, len(recipients)+1)
		balances = append(balances, event.Balance{Account: from, Before: available, After: available - sum})
		for i, to := range recipients {
			m := l.move(trx, ref, h, from, to, amounts[i])
			balances = append(balances, m.To)
		}
		l.writeHeader(trx, ref, h)

		l.events.Emit(trx, event.Record{
			Kind:      event.BatchTransfer,
			Asset:     ref,
			Actor:     from,
			Amount:    sum,
			Balances:  balances,
			Timestamp: l.timestamp(),
		})
		return nil
	})
	if nil != err {
		l.log.Debugf("batch transfer: asset: %s  from: %s  recipients: %d  error: %s", ref, from, len(recipients), err)
	}
	return err
}

// SettlementTransfer - share movement of a trade
//
// joins the marketplace's transaction and is only accepted while the
// settlement guard is held; no event is written since the trade
// record covers it
func (l *Ledger) SettlementTransfer(trx storage.Transaction, g *guard.Guard, from account.Address, ref asset.Ref, to account.Address, amount uint64) (Movement, error) {
	if nil == g || !g.IsLocked() {
		return Movement{}, fault.NotInCriticalSection
	}
	h, err := l.checkTransfer(trx, from, ref, to, amount)
	if nil != err {
		return Movement{}, err
	}
	m := l.move(trx, ref, h, from, to, amount)
	l.writeHeader(trx, ref, h)
	return m, nil
}

// common transfer validation
func (l *Ledger) checkTransfer(trx storage.Transaction, from account.Address, ref asset.Ref, to account.Address, amount uint64) (*header, error) {
	if err := guard.NonZero(amount); nil != err {
		return nil, err
	}
	if err := guard.NotSelf(from, to); nil != err {
		return nil, err
	}
	if to.IsZero() {
		return nil, fault.InvalidAddress
	}
	h, err := l.readHeader(trx, ref)
	if nil != err {
		return nil, err
	}
	if !l.registry.TradingEnabled(trx, ref) {
		return nil, fault.TradingDisabled
	}
	if err := guard.Sufficient(l.balance(trx, ref, from), amount, fault.InsufficientShares); nil != err {
		return nil, err
	}
	return h, nil
}

// move shares after validation, the caller writes the header
func (l *Ledger) move(trx storage.Transaction, ref asset.Ref, h *header, from account.Address, to account.Address, amount uint64) Movement {
	fromBefore := l.balance(trx, ref, from)
	toBefore := l.balance(trx, ref, to)

	if fromBefore < amount || toBefore+amount < toBefore {
		fault.Panicf("ledger: asset: %s  move: %d  from balance: %d  to balance: %d", ref, amount, fromBefore, toBefore)
	}

	l.setBalance(trx, ref, from, fromBefore-amount)
	l.setBalance(trx, ref, to, toBefore+amount)
	h.transfers += 1

	return Movement{
		From: event.Balance{Account: from, Before: fromBefore, After: fromBefore - amount},
		To:   event.Balance{Account: to, Before: toBefore, After: toBefore + amount},
	}
}
