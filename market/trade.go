// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"math/bits"
	"time"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/guard"
	"github.com/bitmark-inc/fractiond/ledger"
	"github.com/bitmark-inc/fractiond/storage"
)

// Trade - the result of one settled purchase
type Trade struct {
	TradeId         uint64          `json:"tradeId"`
	ListingId       uint64          `json:"listingId"`
	Asset           asset.Ref       `json:"asset"`
	Buyer           account.Address `json:"buyer"`
	Seller          account.Address `json:"seller"`
	Shares          uint64          `json:"shares"`
	PricePerShare   uint64          `json:"pricePerShare"`
	TotalAmount     uint64          `json:"totalAmount"`
	Fee             uint64          `json:"fee"`
	SellerAmount    uint64          `json:"sellerAmount"`
	BuyerShares     uint64          `json:"buyerShares"`
	SellerShares    uint64          `json:"sellerShares"`
	SharesRemaining uint64          `json:"sharesRemaining"`
	Timestamp       time.Time       `json:"timestamp"`
}

// SplitFee - fee is floor(total × bps ÷ 10000), the seller gets the rest
func SplitFee(total uint64, feeBasisPoints uint64) (uint64, uint64) {
	hi, lo := bits.Mul64(total, feeBasisPoints)
	fee, _ := bits.Div64(hi, lo, MaximumFee)
	return fee, total - fee
}

// BuyShares - buy from one listing
func (m *Market) BuyShares(buyer account.Address, id uint64, shares uint64) (Trade, error) {
	var trade Trade
	err := m.store.Update(func(trx storage.Transaction) error {
		s, err := m.runningState(trx)
		if nil != err {
			return err
		}
		l, err := m.readListing(trx, id)
		if nil != err {
			return err
		}
		trade, err = m.buy(trx, s, buyer, l, shares)
		if nil != err {
			return err
		}
		m.writeState(trx, s)
		return nil
	})
	if nil != err {
		m.log.Debugf("buy: listing: %d  buyer: %s  shares: %d  error: %s", id, buyer, shares, err)
		return Trade{}, err
	}
	m.log.Infof("trade: %d  listing: %d  shares: %d  total: %d  fee: %d", trade.TradeId, id, shares, trade.TotalAmount, trade.Fee)
	return trade, nil
}

// MarketBuy - buy exactly shares from the cheapest listings
//
// listings above maxPrice are not used, zero means no ceiling; fails
// with nothing bought unless the whole quantity can be filled
func (m *Market) MarketBuy(buyer account.Address, ref asset.Ref, shares uint64, maxPrice uint64) ([]Trade, error) {
	if err := guard.NonZero(shares); nil != err {
		return nil, err
	}
	trades, err := m.sweep(buyer, ref, shares, maxPrice, true)
	if nil != err {
		m.log.Debugf("market buy: asset: %s  buyer: %s  shares: %d  error: %s", ref, buyer, shares, err)
	}
	return trades, err
}

// LimitBuy - buy up to shares from listings priced at or below limitPrice
//
// fills what it can and fails only if nothing can be bought
func (m *Market) LimitBuy(buyer account.Address, ref asset.Ref, shares uint64, limitPrice uint64) ([]Trade, error) {
	if err := guard.NonZero(shares); nil != err {
		return nil, err
	}
	if 0 == limitPrice {
		return nil, fault.InvalidPrice
	}
	trades, err := m.sweep(buyer, ref, shares, limitPrice, false)
	if nil != err {
		m.log.Debugf("limit buy: asset: %s  buyer: %s  shares: %d  error: %s", ref, buyer, shares, err)
	}
	return trades, err
}

// BatchBuy - buy from several listings, all or nothing
func (m *Market) BatchBuy(buyer account.Address, ids []uint64, amounts []uint64) ([]Trade, error) {
	if len(ids) != len(amounts) {
		return nil, fault.LengthMismatch
	}
	if 0 == len(ids) {
		return nil, fault.EmptyBatch
	}
	if len(ids) > MaximumBatchSize {
		return nil, fault.BatchTooLarge
	}

	trades := make([]Trade, 0, len(ids))
	err := m.store.Update(func(trx storage.Transaction) error {
		s, err := m.runningState(trx)
		if nil != err {
			return err
		}
		for i, id := range ids {
			l, err := m.readListing(trx, id)
			if nil != err {
				return err
			}
			trade, err := m.buy(trx, s, buyer, l, amounts[i])
			if nil != err {
				return err
			}
			trades = append(trades, trade)
		}
		m.writeState(trx, s)
		return nil
	})
	if nil != err {
		m.log.Debugf("batch buy: buyer: %s  listings: %d  error: %s", buyer, len(ids), err)
		return nil, err
	}
	return trades, nil
}

// walk the asset's book in price-time order
func (m *Market) sweep(buyer account.Address, ref asset.Ref, shares uint64, ceiling uint64, allOrNothing bool) ([]Trade, error) {
	var trades []Trade
	err := m.store.Update(func(trx storage.Transaction) error {
		s, err := m.runningState(trx)
		if nil != err {
			return err
		}

		remaining := shares
		candidates := 0
		unfunded := false
		for _, l := range m.activeListings(trx, ref, 0) {
			if 0 == remaining {
				break
			}
			if 0 != ceiling && l.PricePerShare > ceiling {
				break
			}
			if buyer == l.Seller {
				continue
			}
			candidates += 1

			// a seller may have moved shares away since listing
			take := smallest(remaining, l.SharesAvailable, m.shares.BalanceIn(trx, ref, l.Seller))
			if !allOrNothing {
				// prices only rise from here, so the buyer's funds end the walk
				affordable := m.payment.BalanceOf(trx, buyer) / l.PricePerShare
				if 0 == affordable {
					unfunded = true
					break
				}
				take = smallest(take, affordable)
			}
			if 0 == take {
				continue
			}
			trade, err := m.buy(trx, s, buyer, l, take)
			if nil != err {
				return err
			}
			trades = append(trades, trade)
			remaining -= take
		}

		if 0 == candidates {
			return fault.NoListingsAvailable
		}
		if 0 == len(trades) && unfunded {
			return fault.InsufficientPayment
		}
		if 0 == len(trades) || (allOrNothing && 0 != remaining) {
			return fault.InsufficientLiquidity
		}
		m.writeState(trx, s)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return trades, nil
}

// settle one purchase, the caller writes the state
func (m *Market) buy(trx storage.Transaction, s *State, buyer account.Address, l *Listing, shares uint64) (Trade, error) {
	if StatusActive != l.Status {
		return Trade{}, fault.ListingNotActive
	}
	if err := guard.NonZero(shares); nil != err {
		return Trade{}, err
	}
	if err := guard.Sufficient(l.SharesAvailable, shares, fault.InsufficientSharesListed); nil != err {
		return Trade{}, err
	}
	if err := guard.NotSelf(buyer, l.Seller); nil != err {
		return Trade{}, err
	}
	if !m.registry.TradingEnabled(trx, l.Asset) {
		return Trade{}, fault.TradingDisabled
	}

	hi, total := bits.Mul64(l.PricePerShare, shares)
	if 0 != hi {
		return Trade{}, fault.Overflow
	}
	if err := guard.Sufficient(m.payment.BalanceOf(trx, buyer), total, fault.InsufficientPayment); nil != err {
		return Trade{}, err
	}
	fee, sellerAmount := SplitFee(total, s.FeeBasisPoints)

	movement, err := m.settle(trx, s, buyer, l, shares, fee, sellerAmount)
	if nil != err {
		return Trade{}, err
	}

	now := m.timestamp()
	l.SharesAvailable -= shares
	l.UpdatedAt = now
	if 0 == l.SharesAvailable {
		m.unindex(trx, l)
		l.Status = StatusSoldOut
	}
	m.writeListing(trx, l)

	if s.TotalVolume+total < s.TotalVolume {
		return Trade{}, fault.Overflow
	}
	s.TotalVolume += total
	s.TotalTrades += 1
	s.NextTradeId += 1

	trade := Trade{
		TradeId:         s.NextTradeId,
		ListingId:       l.ListingId,
		Asset:           l.Asset,
		Buyer:           buyer,
		Seller:          l.Seller,
		Shares:          shares,
		PricePerShare:   l.PricePerShare,
		TotalAmount:     total,
		Fee:             fee,
		SellerAmount:    sellerAmount,
		BuyerShares:     movement.To.After,
		SellerShares:    movement.From.After,
		SharesRemaining: l.SharesAvailable,
		Timestamp:       now,
	}

	m.events.Emit(trx, event.Record{
		Kind:        event.Trade,
		Asset:       l.Asset,
		Actor:       buyer,
		Target:      l.Seller,
		Amount:      shares,
		Price:       l.PricePerShare,
		Fee:         fee,
		ReferenceId: trade.TradeId,
		Balances:    []event.Balance{movement.From, movement.To},
		Timestamp:   now,
	})
	return trade, nil
}

// pay seller, pay fee collector, move shares: all under the guard
func (m *Market) settle(trx storage.Transaction, s *State, buyer account.Address, l *Listing, shares uint64, fee uint64, sellerAmount uint64) (movement ledger.Movement, err error) {
	if err := m.guard.Acquire(buyer); nil != err {
		return movement, err
	}
	defer func() {
		if e := m.guard.Release(buyer); nil != e && nil == err {
			err = e
		}
	}()

	if err := m.payment.Transfer(trx, buyer, l.Seller, sellerAmount); nil != err {
		return movement, err
	}
	if 0 != fee {
		if err := m.payment.Transfer(trx, buyer, s.FeeCollector, fee); nil != err {
			return movement, err
		}
	}
	return m.shares.SettlementTransfer(trx, m.guard, l.Seller, l.Asset, buyer, shares)
}

func smallest(values ...uint64) uint64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
