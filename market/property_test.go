// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/market"
)

func TestSplitFeeExact(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		total := rapid.Uint64().Draw(rt, "total")
		bps := rapid.Uint64Range(0, market.MaximumFee).Draw(rt, "bps")

		fee, seller := market.SplitFee(total, bps)
		if fee+seller != total {
			rt.Fatalf("fee: %d + seller: %d != total: %d", fee, seller, total)
		}
		if fee > total {
			rt.Fatalf("fee: %d exceeds total: %d", fee, total)
		}
		if total < 1<<40 && fee != total*bps/market.MaximumFee {
			rt.Fatalf("fee: %d  expected floor: %d", fee, total*bps/market.MaximumFee)
		}
	})
}

// trades never create or destroy shares or payment units
func TestTradeConservation(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	traders := []account.Address{owner, buyer, buyer2, seller2}
	const cash = uint64(1000000000)
	for _, a := range traders {
		f.deposit(t, a, cash)
	}
	totalCash := cash * uint64(len(traders))

	rapid.Check(t, func(rt *rapid.T) {
		seller := traders[rapid.IntRange(0, len(traders)-1).Draw(rt, "seller")]
		purchaser := traders[rapid.IntRange(0, len(traders)-1).Draw(rt, "buyer")]
		price := rapid.Uint64Range(1, 1000).Draw(rt, "price")
		listed := rapid.Uint64Range(1, 100).Draw(rt, "listed")
		bought := rapid.Uint64Range(1, 120).Draw(rt, "bought")

		id, err := f.market.CreateListing(seller, f.ref, price, listed)
		if nil != err {
			return
		}
		before, _ := f.market.GetListing(id)

		trade, err := f.market.BuyShares(purchaser, id, bought)
		after, _ := f.market.GetListing(id)

		if nil == err {
			if trade.Fee+trade.SellerAmount != price*bought {
				rt.Fatalf("fee split does not add up")
			}
			if after.SharesAvailable != before.SharesAvailable-bought {
				rt.Fatalf("available: %d  expected: %d", after.SharesAvailable, before.SharesAvailable-bought)
			}
		} else if after.SharesAvailable != before.SharesAvailable {
			rt.Fatalf("failed trade changed the listing")
		}
		if 0 == after.SharesAvailable && after.Active {
			rt.Fatalf("sold out listing still active")
		}

		shares := uint64(0)
		money := f.cash(t, collector)
		for _, a := range traders {
			shares += f.sharesOf(t, a)
			money += f.cash(t, a)
		}
		if testSupply != shares {
			rt.Fatalf("shares: %d  expected: %d", shares, testSupply)
		}
		if totalCash != money {
			rt.Fatalf("payment units: %d  expected: %d", money, totalCash)
		}
		if f.guard.IsLocked() {
			rt.Fatalf("guard left locked")
		}
	})
}
