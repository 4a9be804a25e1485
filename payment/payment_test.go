// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/payment"
	"github.com/bitmark-inc/fractiond/storage"
)

const testingDirName = "testing"

var (
	alice = account.Address{0x0a}
	bob   = account.Address{0x0b}
)

func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
	os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	result := m.Run()

	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(result)
}

func setupTable(t *testing.T) (*storage.Store, *payment.Table) {
	store, err := storage.OpenMemory()
	assert.Nil(t, err, "open store")
	return store, payment.NewTable(store, event.New(store))
}

func TestDepositAndTransfer(t *testing.T) {
	store, table := setupTable(t)
	defer store.Close()

	balance, err := table.Deposit(alice, 1000)
	assert.Nil(t, err, "deposit")
	assert.Equal(t, uint64(1000), balance, "balance after deposit")

	_, err = table.Deposit(alice, 0)
	assert.Equal(t, fault.ZeroAmount, err, "zero deposit")

	err = store.Update(func(trx storage.Transaction) error {
		return table.Transfer(trx, alice, bob, 400)
	})
	assert.Nil(t, err, "transfer")

	a, _ := table.Balance(alice)
	b, _ := table.Balance(bob)
	assert.Equal(t, uint64(600), a, "alice")
	assert.Equal(t, uint64(400), b, "bob")

	err = store.Update(func(trx storage.Transaction) error {
		return table.Transfer(trx, bob, alice, 401)
	})
	assert.Equal(t, fault.InsufficientPayment, err, "overdraw")
	assert.True(t, fault.IsErrInsufficient(err), "insufficient class")

	b, _ = table.Balance(bob)
	assert.Equal(t, uint64(400), b, "unchanged after failure")
}

func TestTransferAllRemovesEntry(t *testing.T) {
	store, table := setupTable(t)
	defer store.Close()

	_, _ = table.Deposit(alice, 10)
	_ = store.Update(func(trx storage.Transaction) error {
		return table.Transfer(trx, alice, bob, 10)
	})

	_ = store.View(func(trx storage.Transaction) error {
		assert.False(t, trx.Has(store.Pool.Payments, alice[:]), "zero balance not stored")
		assert.Equal(t, uint64(0), table.BalanceOf(trx, alice), "zero")
		return nil
	})
}
