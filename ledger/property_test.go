// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/bitmark-inc/fractiond/account"
)

var holders = []account.Address{issuer, alice, bob, charlie}

// any sequence of transfers, allowance spends and batches keeps the supply
func TestConservation(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	rapid.Check(t, func(rt *rapid.T) {
		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i += 1 {
			from := holders[rapid.IntRange(0, len(holders)-1).Draw(rt, "from")]
			to := holders[rapid.IntRange(0, len(holders)-1).Draw(rt, "to")]
			amount := rapid.Uint64Range(0, testSupply/2).Draw(rt, "amount")

			switch rapid.IntRange(0, 2).Draw(rt, "operation") {
			case 0:
				_ = f.ledger.Transfer(from, f.ref, to, amount)
			case 1:
				spender := holders[rapid.IntRange(0, len(holders)-1).Draw(rt, "spender")]
				_ = f.ledger.Approve(from, f.ref, spender, amount)
				_ = f.ledger.TransferFrom(spender, f.ref, from, to, amount/2)
			case 2:
				_ = f.ledger.BatchTransfer(from, f.ref, []account.Address{to, charlie}, []uint64{amount, 1})
			}

			if testSupply != f.sumBalances(t) {
				rt.Fatalf("sum of balances: %d  expected: %d", f.sumBalances(t), testSupply)
			}
		}
	})
}

// a failed transfer leaves both balances unchanged
func TestFailedTransferUnchanged(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	err := f.ledger.Transfer(issuer, f.ref, alice, 500)
	assert.Nil(t, err, "seed alice")

	rapid.Check(t, func(rt *rapid.T) {
		excess := rapid.Uint64Range(1, testSupply).Draw(rt, "excess")
		before := f.balance(t, alice)
		bobBefore := f.balance(t, bob)

		err := f.ledger.Transfer(alice, f.ref, bob, before+excess)
		if nil == err {
			rt.Fatalf("overdraw of %d succeeded", before+excess)
		}
		if before != f.balance(t, alice) || bobBefore != f.balance(t, bob) {
			rt.Fatalf("balances changed by failed transfer")
		}
	})
}
