// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/market"
)

// list 100000 at 1000000 with a 250 bps fee, buy 50000 then the rest
func TestTradeScenario(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	f.deposit(t, buyer, 60000000000)
	f.deposit(t, buyer2, 60000000000)

	id, err := f.market.CreateListing(owner, f.ref, 1000000, 100000)
	assert.Nil(t, err, "create listing")
	assert.Equal(t, uint64(1), id, "first listing id")

	trade, err := f.market.BuyShares(buyer, id, 50000)
	assert.Nil(t, err, "first buy")
	assert.Equal(t, uint64(50000000000), trade.TotalAmount, "total")
	assert.Equal(t, uint64(1250000000), trade.Fee, "fee")
	assert.Equal(t, uint64(48750000000), trade.SellerAmount, "seller amount")
	assert.Equal(t, uint64(1), trade.TradeId, "trade id")
	assert.Equal(t, uint64(50000), trade.BuyerShares, "buyer shares after")
	assert.Equal(t, testSupply-50000, trade.SellerShares, "seller shares after")

	assert.Equal(t, uint64(48750000000), f.cash(t, owner), "seller paid")
	assert.Equal(t, uint64(1250000000), f.cash(t, collector), "collector paid")
	assert.Equal(t, uint64(10000000000), f.cash(t, buyer), "buyer charged")

	l, err := f.market.GetListing(id)
	assert.Nil(t, err, "get listing")
	assert.Equal(t, uint64(50000), l.SharesAvailable, "remaining")
	assert.True(t, l.Active, "still active")
	assert.True(t, f.indexed(t, id), "still indexed")

	trade, err = f.market.BuyShares(buyer2, id, 50000)
	assert.Nil(t, err, "second buy")
	assert.Equal(t, uint64(2), trade.TradeId, "monotonic trade id")
	assert.Equal(t, uint64(0), trade.SharesRemaining, "sold out")

	l, _ = f.market.GetListing(id)
	assert.False(t, l.Active, "inactive")
	assert.Equal(t, market.StatusSoldOut, l.Status, "sold out")
	assert.False(t, f.indexed(t, id), "removed from index")

	stats, err := f.market.Stats()
	assert.Nil(t, err, "stats")
	assert.Equal(t, uint64(2), stats.TotalTrades, "total trades")
	assert.Equal(t, uint64(100000000000), stats.TotalVolume, "total volume")
	assert.Equal(t, uint64(1), stats.TotalListings, "total listings")

	assert.Equal(t, uint64(50000), f.sharesOf(t, buyer), "buyer shares")
	assert.Equal(t, uint64(50000), f.sharesOf(t, buyer2), "buyer2 shares")
	assert.False(t, f.guard.IsLocked(), "guard released")

	_, err = f.market.BuyShares(buyer, id, 1)
	assert.Equal(t, fault.ListingNotActive, err, "buy from sold out")

	records, _ := f.events.Since(0, 0)
	last := records[len(records)-1]
	assert.Equal(t, event.Trade, last.Kind, "trade record")
	assert.Equal(t, uint64(2), last.ReferenceId, "trade id in record")
	assert.Equal(t, buyer2, last.Actor, "buyer")
	assert.Equal(t, owner, last.Target, "seller")
}

func TestCreateListingFailures(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	_, err := f.market.CreateListing(owner, f.ref, 0, 10)
	assert.Equal(t, fault.InvalidPrice, err, "zero price")

	_, err = f.market.CreateListing(owner, f.ref, 10, 0)
	assert.Equal(t, fault.ZeroAmount, err, "zero shares")

	_, err = f.market.CreateListing(buyer, f.ref, 10, 1)
	assert.Equal(t, fault.InsufficientShares, err, "no shares")

	_, err = f.market.CreateListing(owner, f.ref, 10, testSupply+1)
	assert.Equal(t, fault.InsufficientShares, err, "too many shares")

	assert.Nil(t, f.market.Pause(admin), "pause")
	_, err = f.market.CreateListing(owner, f.ref, 10, 1)
	assert.Equal(t, fault.MarketplacePaused, err, "paused")
	assert.True(t, fault.IsErrPaused(err), "paused class")
	assert.Nil(t, f.market.Unpause(admin), "unpause")

	assert.Nil(t, f.assets.SetTrading(owner, f.ref, false), "disable trading")
	_, err = f.market.CreateListing(owner, f.ref, 10, 1)
	assert.Equal(t, fault.TradingDisabled, err, "trading disabled")

	stats, _ := f.market.Stats()
	assert.Equal(t, uint64(0), stats.TotalListings, "nothing listed")
}

func TestBuyFailures(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	f.deposit(t, buyer, 1000)

	id, err := f.market.CreateListing(owner, f.ref, 100, 50)
	assert.Nil(t, err, "create")

	_, err = f.market.BuyShares(owner, id, 1)
	assert.Equal(t, fault.SelfOperation, err, "buyer is seller")

	_, err = f.market.BuyShares(buyer, id, 51)
	assert.Equal(t, fault.InsufficientSharesListed, err, "more than listed")

	_, err = f.market.BuyShares(buyer, id, 11)
	assert.Equal(t, fault.InsufficientPayment, err, "cannot pay")

	_, err = f.market.BuyShares(buyer, id, 0)
	assert.Equal(t, fault.ZeroAmount, err, "zero")

	_, err = f.market.BuyShares(buyer, 99, 1)
	assert.Equal(t, fault.ListingNotFound, err, "unknown listing")

	assert.Equal(t, uint64(1000), f.cash(t, buyer), "buyer unchanged")
	assert.Equal(t, testSupply, f.sharesOf(t, owner), "owner unchanged")
	assert.False(t, f.guard.IsLocked(), "guard released")

	// seller moved the shares away after listing
	assert.Nil(t, f.shares.Transfer(owner, f.ref, seller2, testSupply), "move all")
	_, err = f.market.BuyShares(buyer, id, 1)
	assert.Equal(t, fault.InsufficientShares, err, "seller lacks shares")
	assert.Equal(t, uint64(1000), f.cash(t, buyer), "payment rolled back")
	assert.Equal(t, uint64(0), f.cash(t, owner), "seller not paid")
	assert.False(t, f.guard.IsLocked(), "guard released after failure")
}

func TestListingLifecycle(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	id, _ := f.market.CreateListing(owner, f.ref, 100, 50)
	first, _ := f.market.GetListing(id)

	err := f.market.DeactivateListing(buyer, id)
	assert.Equal(t, fault.SellerRequired, err, "not seller")

	err = f.market.DeactivateListing(owner, id)
	assert.Nil(t, err, "deactivate")
	assert.False(t, f.indexed(t, id), "unindexed")

	err = f.market.DeactivateListing(owner, id)
	assert.Equal(t, fault.ListingNotActive, err, "already inactive")

	err = f.market.UpdateListingPrice(owner, id, 200)
	assert.Equal(t, fault.ListingNotActive, err, "price of inactive")

	err = f.market.ActivateListing(owner, id)
	assert.Nil(t, err, "activate")
	assert.True(t, f.indexed(t, id), "reindexed")

	l, _ := f.market.GetListing(id)
	assert.True(t, l.TrackingId > first.TrackingId, "new tracking id")
	assert.Equal(t, market.StatusActive, l.Status, "active")

	err = f.market.ActivateListing(owner, id)
	assert.Equal(t, fault.ListingAlreadyActive, err, "already active")

	err = f.market.UpdateListingPrice(owner, id, 0)
	assert.Equal(t, fault.InvalidPrice, err, "zero price")

	err = f.market.UpdateListingPrice(owner, id, 300)
	assert.Nil(t, err, "update price")
	best, _ := f.market.BestAsk(f.ref)
	assert.Equal(t, uint64(300), best.PricePerShare, "reindexed at new price")

	err = f.market.CancelListing(owner, id)
	assert.Nil(t, err, "cancel")
	assert.False(t, f.indexed(t, id), "cancel unindexes")

	err = f.market.ActivateListing(owner, id)
	assert.Equal(t, fault.ListingCancelled, err, "cancel is permanent")

	err = f.market.CancelListing(owner, id)
	assert.Equal(t, fault.ListingCancelled, err, "cancel twice")

	l, _ = f.market.GetListing(id)
	assert.Equal(t, market.StatusCancelled, l.Status, "record persists")
}

func TestActivateNeedsShares(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	id, _ := f.market.CreateListing(owner, f.ref, 100, 50)
	assert.Nil(t, f.market.DeactivateListing(owner, id), "deactivate")

	assert.Nil(t, f.shares.Transfer(owner, f.ref, seller2, testSupply-10), "move most shares")

	err := f.market.ActivateListing(owner, id)
	assert.Equal(t, fault.InsufficientShares, err, "balance below available")
	assert.False(t, f.indexed(t, id), "still inactive")
}

func TestPriceTimePriority(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	assert.Nil(t, f.shares.Transfer(owner, f.ref, seller2, 1000), "fund seller2")

	a, _ := f.market.CreateListing(owner, f.ref, 200, 10)
	b, _ := f.market.CreateListing(seller2, f.ref, 100, 10)
	c, _ := f.market.CreateListing(owner, f.ref, 100, 10)
	d, _ := f.market.CreateListing(seller2, f.ref, 300, 10)

	listings, err := f.market.ActiveListings(f.ref, 0)
	assert.Nil(t, err, "active listings")
	order := []uint64{}
	for _, l := range listings {
		order = append(order, l.ListingId)
	}
	assert.Equal(t, []uint64{b, c, a, d}, order, "price then time")

	// deactivating and activating moves b behind c
	assert.Nil(t, f.market.DeactivateListing(seller2, b), "deactivate")
	assert.Nil(t, f.market.ActivateListing(seller2, b), "activate")

	best, _ := f.market.BestAsk(f.ref)
	assert.Equal(t, c, best.ListingId, "c now first")

	liquidity, _ := f.market.LiquidityAtPrice(f.ref, 100)
	assert.Equal(t, uint64(20), liquidity, "two listings at 100")

	r, err := f.market.PriceRange(f.ref)
	assert.Nil(t, err, "price range")
	assert.Equal(t, market.PriceRange{Lowest: 100, Highest: 300, Spread: 200}, r, "range")

	capitalisation, err := f.market.MarketCap(f.ref)
	assert.Nil(t, err, "market cap")
	assert.Equal(t, 100*testSupply, capitalisation, "lowest ask times supply")

	summary, _ := f.market.Summary(f.ref)
	assert.Equal(t, uint64(4), summary.ActiveListings, "listing count")
	assert.Equal(t, uint64(40), summary.SharesListed, "shares listed")

	bySeller, _ := f.market.ListingsBySeller(seller2, 0)
	assert.Equal(t, 2, len(bySeller), "seller2 listings")
	assert.Equal(t, b, bySeller[0].ListingId, "oldest first")
}

func TestMarketBuy(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	assert.Nil(t, f.shares.Transfer(owner, f.ref, seller2, 1000), "fund seller2")
	f.deposit(t, buyer, 100000)

	cheap, _ := f.market.CreateListing(seller2, f.ref, 100, 10)
	mid, _ := f.market.CreateListing(owner, f.ref, 150, 10)
	dear, _ := f.market.CreateListing(seller2, f.ref, 500, 10)

	_, err := f.market.MarketBuy(buyer, f.ref, 25, 200)
	assert.Equal(t, fault.InsufficientLiquidity, err, "ceiling leaves too few")
	assert.Equal(t, uint64(100000), f.cash(t, buyer), "all or nothing")

	trades, err := f.market.MarketBuy(buyer, f.ref, 15, 0)
	assert.Nil(t, err, "market buy")
	assert.Equal(t, 2, len(trades), "two fills")
	assert.Equal(t, cheap, trades[0].ListingId, "cheapest first")
	assert.Equal(t, uint64(10), trades[0].Shares, "all of cheapest")
	assert.Equal(t, mid, trades[1].ListingId, "then next price")
	assert.Equal(t, uint64(5), trades[1].Shares, "part of next")
	assert.Equal(t, uint64(15), f.sharesOf(t, buyer), "buyer shares")
	assert.Equal(t, uint64(100000-1000-750), f.cash(t, buyer), "buyer paid")

	// own listings are skipped
	f.deposit(t, seller2, 1000)
	_, err = f.market.MarketBuy(seller2, f.ref, 1, 0)
	assert.Nil(t, err, "seller2 buys from owner")
	l, _ := f.market.GetListing(mid)
	assert.Equal(t, uint64(4), l.SharesAvailable, "took from owner listing")

	_, err = f.market.MarketBuy(buyer, f.ref, 0, 0)
	assert.Equal(t, fault.ZeroAmount, err, "zero")

	l, _ = f.market.GetListing(dear)
	assert.Equal(t, uint64(10), l.SharesAvailable, "dear untouched")
}

func TestLimitBuy(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	f.deposit(t, buyer, 100000)

	_, _ = f.market.CreateListing(owner, f.ref, 100, 10)
	_, _ = f.market.CreateListing(owner, f.ref, 500, 10)

	trades, err := f.market.LimitBuy(buyer, f.ref, 25, 200)
	assert.Nil(t, err, "partial fill")
	assert.Equal(t, 1, len(trades), "one fill")
	assert.Equal(t, uint64(10), f.sharesOf(t, buyer), "filled what was available")

	_, err = f.market.LimitBuy(buyer, f.ref, 5, 200)
	assert.Equal(t, fault.NoListingsAvailable, err, "nothing at or below limit")

	_, err = f.market.LimitBuy(buyer, f.ref, 5, 0)
	assert.Equal(t, fault.InvalidPrice, err, "zero limit")
}

func TestLimitBuyBoundedByFunds(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	f.deposit(t, buyer, 500)
	first, _ := f.market.CreateListing(owner, f.ref, 100, 10)

	trades, err := f.market.LimitBuy(buyer, f.ref, 10, 100)
	assert.Nil(t, err, "fills what the buyer can pay for")
	assert.Equal(t, 1, len(trades), "one fill")
	assert.Equal(t, uint64(5), trades[0].Shares, "500 buys 5 at 100")
	assert.Equal(t, uint64(5), f.sharesOf(t, buyer), "buyer shares")
	assert.Equal(t, uint64(0), f.cash(t, buyer), "all funds spent")

	l, _ := f.market.GetListing(first)
	assert.Equal(t, uint64(5), l.SharesAvailable, "rest still listed")

	_, err = f.market.LimitBuy(buyer, f.ref, 1, 100)
	assert.Equal(t, fault.InsufficientPayment, err, "nothing affordable")

	// funds run out part way along the book
	f.deposit(t, buyer, 1250)
	_, _ = f.market.CreateListing(owner, f.ref, 150, 10)
	trades, err = f.market.LimitBuy(buyer, f.ref, 20, 200)
	assert.Nil(t, err, "limit buy")
	assert.Equal(t, 2, len(trades), "two fills")
	assert.Equal(t, uint64(5), trades[0].Shares, "rest of the cheapest")
	assert.Equal(t, uint64(5), trades[1].Shares, "750 buys 5 at 150")
	assert.Equal(t, uint64(0), f.cash(t, buyer), "remaining funds")
}

func TestBatchBuy(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	f.deposit(t, buyer, 10000)

	a, _ := f.market.CreateListing(owner, f.ref, 100, 10)
	b, _ := f.market.CreateListing(owner, f.ref, 200, 10)

	trades, err := f.market.BatchBuy(buyer, []uint64{a, b}, []uint64{5, 5})
	assert.Nil(t, err, "batch buy")
	assert.Equal(t, 2, len(trades), "two trades")
	assert.Equal(t, uint64(8500), f.cash(t, buyer), "paid 500 + 1000")

	_, err = f.market.BatchBuy(buyer, []uint64{a, b}, []uint64{5, 6})
	assert.Equal(t, fault.InsufficientSharesListed, err, "second fails")
	assert.Equal(t, uint64(8500), f.cash(t, buyer), "first rolled back")
	l, _ := f.market.GetListing(a)
	assert.Equal(t, uint64(5), l.SharesAvailable, "listing a unchanged")

	_, err = f.market.BatchBuy(buyer, []uint64{a}, []uint64{1, 2})
	assert.Equal(t, fault.LengthMismatch, err, "length mismatch")

	_, err = f.market.BatchBuy(buyer, nil, nil)
	assert.Equal(t, fault.EmptyBatch, err, "empty")
}

func TestAdmin(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	err := f.market.Initialise(admin, collector, 1)
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")

	err = f.market.SetFee(buyer, 100)
	assert.Equal(t, fault.AdminRequired, err, "not admin")
	assert.True(t, fault.IsErrUnauthorised(err), "unauthorised class")

	err = f.market.SetFee(admin, market.MaximumFee+1)
	assert.Equal(t, fault.FeeTooHigh, err, "fee above 100%")

	assert.Nil(t, f.market.SetFee(admin, 500), "set fee")
	assert.Nil(t, f.market.SetFeeCollector(admin, buyer2), "set collector")

	err = f.market.SetFeeCollector(admin, account.Zero)
	assert.Equal(t, fault.InvalidAddress, err, "zero collector")

	assert.Nil(t, f.market.TransferAdmin(admin, buyer2), "transfer admin")
	assert.Equal(t, fault.AdminRequired, f.market.Pause(admin), "old admin")
	assert.Nil(t, f.market.Pause(buyer2), "new admin pauses")

	stats, _ := f.market.Stats()
	assert.Equal(t, uint64(500), stats.FeeBasisPoints, "fee")
	assert.Equal(t, buyer2, stats.FeeCollector, "collector")
	assert.Equal(t, buyer2, stats.Admin, "admin")
	assert.True(t, stats.Paused, "paused")
}

func TestEmergencyDeactivate(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	a, _ := f.market.CreateListing(owner, f.ref, 100, 10)
	b, _ := f.market.CreateListing(owner, f.ref, 200, 10)

	_, err := f.market.EmergencyDeactivate(owner, f.ref)
	assert.Equal(t, fault.AdminRequired, err, "not admin")

	n, err := f.market.EmergencyDeactivate(admin, f.ref)
	assert.Nil(t, err, "emergency")
	assert.Equal(t, uint64(2), n, "two frozen")

	for _, id := range []uint64{a, b} {
		l, _ := f.market.GetListing(id)
		assert.Equal(t, market.StatusFrozen, l.Status, "frozen")
		assert.Equal(t, uint64(10), l.SharesAvailable, "shares untouched")
	}
	assert.Equal(t, testSupply, f.sharesOf(t, owner), "balances untouched")

	_, err = f.market.BestAsk(f.ref)
	assert.Equal(t, fault.NoListingsAvailable, err, "book empty")

	assert.Nil(t, f.market.ActivateListing(owner, a), "seller reactivates")
}

func TestListedSharesOverflow(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	ref, err := f.assets.Register(owner, "huge.example", math.MaxUint64)
	assert.Nil(t, err, "register")
	assert.Nil(t, f.assets.SetTrading(owner, ref, true), "enable trading")
	assert.Nil(t, f.shares.Initialise(owner, ref, math.MaxUint64), "initialise ledger")

	// each listing is within the seller's balance, together they are not
	_, err = f.market.CreateListing(owner, ref, 1, math.MaxUint64)
	assert.Nil(t, err, "first listing")
	_, err = f.market.CreateListing(owner, ref, 1, math.MaxUint64)
	assert.Nil(t, err, "second listing")

	_, err = f.market.Summary(ref)
	assert.Equal(t, fault.Overflow, err, "summary")

	_, err = f.market.LiquidityAtPrice(ref, 1)
	assert.Equal(t, fault.Overflow, err, "liquidity")
}

func TestWithdrawWhilePaused(t *testing.T) {
	f := setupFixture(t)
	defer f.store.Close()

	a, _ := f.market.CreateListing(owner, f.ref, 100, 10)
	b, _ := f.market.CreateListing(owner, f.ref, 200, 10)
	assert.Nil(t, f.market.Pause(admin), "pause")

	assert.Equal(t, fault.MarketplacePaused, f.market.UpdateListingPrice(owner, a, 150), "no reprice")

	assert.Nil(t, f.market.DeactivateListing(owner, a), "deactivate while paused")
	assert.Nil(t, f.market.CancelListing(owner, b), "cancel while paused")
	assert.False(t, f.indexed(t, a), "a withdrawn")
	assert.False(t, f.indexed(t, b), "b withdrawn")

	assert.Equal(t, fault.MarketplacePaused, f.market.ActivateListing(owner, a), "no reactivation")

	assert.Nil(t, f.market.Unpause(admin), "unpause")
	assert.Nil(t, f.market.ActivateListing(owner, a), "reactivate")
	assert.True(t, f.indexed(t, a), "a back in the book")
}
