// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/storage"
)

//go:generate mockgen -source=payment.go -destination=../mocks/payment.go -package=mocks -mock_names=Ledger=MockLedger

// Ledger - currency balance and transfer
type Ledger interface {
	BalanceOf(storage.Transaction, account.Address) uint64
	Transfer(storage.Transaction, account.Address, account.Address, uint64) error
}

// Table - storage backed Ledger
type Table struct {
	log    *logger.L
	store  *storage.Store
	events event.Emitter
}

// NewTable - balances held in the payment pool
func NewTable(store *storage.Store, events event.Emitter) *Table {
	return &Table{
		log:    logger.New("payment"),
		store:  store,
		events: events,
	}
}

// BalanceOf - zero for unknown accounts
func (p *Table) BalanceOf(trx storage.Transaction, address account.Address) uint64 {
	balance, _ := trx.GetN(p.store.Pool.Payments, address[:])
	return balance
}

// Transfer - move amount between accounts
//
// a zero amount is accepted and changes nothing
func (p *Table) Transfer(trx storage.Transaction, from account.Address, to account.Address, amount uint64) error {
	if 0 == amount || from == to {
		return nil
	}
	pool := p.store.Pool.Payments

	fromBalance, _ := trx.GetN(pool, from[:])
	if fromBalance < amount {
		return fault.InsufficientPayment
	}
	toBalance, _ := trx.GetN(pool, to[:])
	if toBalance+amount < toBalance {
		return fault.Overflow
	}

	put(trx, pool, from, fromBalance-amount)
	put(trx, pool, to, toBalance+amount)
	return nil
}

// Deposit - credit an account
func (p *Table) Deposit(address account.Address, amount uint64) (uint64, error) {
	if 0 == amount {
		return 0, fault.ZeroAmount
	}
	if address.IsZero() {
		return 0, fault.InvalidAddress
	}

	balance := uint64(0)
	err := p.store.Update(func(trx storage.Transaction) error {
		pool := p.store.Pool.Payments
		before, _ := trx.GetN(pool, address[:])
		if before+amount < before {
			return fault.Overflow
		}
		balance = before + amount
		put(trx, pool, address, balance)

		p.events.Emit(trx, event.Record{
			Kind:   event.Deposit,
			Actor:  address,
			Amount: amount,
			Balances: []event.Balance{
				{Account: address, Before: before, After: balance},
			},
			Timestamp: time.Now().UTC().Truncate(time.Second),
		})
		return nil
	})
	if nil != err {
		return 0, err
	}
	p.log.Debugf("deposit: %s  amount: %d  balance: %d", address, amount, balance)
	return balance, nil
}

// Balance - current balance outside any other transaction
func (p *Table) Balance(address account.Address) (uint64, error) {
	balance := uint64(0)
	err := p.store.View(func(trx storage.Transaction) error {
		balance = p.BalanceOf(trx, address)
		return nil
	})
	return balance, err
}

// zero balances are not stored
func put(trx storage.Transaction, pool *storage.PoolHandle, address account.Address, balance uint64) {
	if 0 == balance {
		trx.Delete(pool, address[:])
	} else {
		trx.PutN(pool, address[:], balance)
	}
}
