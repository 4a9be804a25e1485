// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package marketplace - RPC access to the listing book
package marketplace

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/market"
	"github.com/bitmark-inc/fractiond/rpc/ratelimit"
)

const (
	rateLimitMarket = 200
	rateBurstMarket = 100

	// MaximumListingsCount - listings returned by one call
	MaximumListingsCount = 100
)

// Market - type for RPC
type Market struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Market  *market.Market
}

// New - create the market service
func New(log *logger.L, m *market.Market) *Market {
	return &Market{
		Log:     log,
		Limiter: ratelimit.New(rateLimitMarket, rateBurstMarket),
		Market:  m,
	}
}

// Empty - reply for calls with no result data
type Empty struct{}

// Listings
// --------

// CreateArguments - offer shares for sale
type CreateArguments struct {
	Seller        account.Address `json:"seller"`
	Asset         asset.Ref       `json:"asset"`
	PricePerShare uint64          `json:"pricePerShare"`
	Shares        uint64          `json:"shares"`
}

// CreateReply - the new listing
type CreateReply struct {
	ListingId uint64 `json:"listingId"`
}

// CreateListing - list shares the seller holds
func (m *Market) CreateListing(arguments *CreateArguments, reply *CreateReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	m.Log.Infof("Market.CreateListing: %+v", arguments)

	id, err := m.Market.CreateListing(arguments.Seller, arguments.Asset, arguments.PricePerShare, arguments.Shares)
	if nil != err {
		return err
	}
	reply.ListingId = id
	return nil
}

// SellerArguments - seller action on a listing
type SellerArguments struct {
	Seller        account.Address `json:"seller"`
	ListingId     uint64          `json:"listingId"`
	PricePerShare uint64          `json:"pricePerShare,omitempty"`
}

// CancelListing - withdraw a listing permanently
func (m *Market) CancelListing(arguments *SellerArguments, reply *Empty) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	m.Log.Infof("Market.CancelListing: %+v", arguments)
	return m.Market.CancelListing(arguments.Seller, arguments.ListingId)
}

// DeactivateListing - pause a listing
func (m *Market) DeactivateListing(arguments *SellerArguments, reply *Empty) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	m.Log.Infof("Market.DeactivateListing: %+v", arguments)
	return m.Market.DeactivateListing(arguments.Seller, arguments.ListingId)
}

// ActivateListing - resume a paused listing
func (m *Market) ActivateListing(arguments *SellerArguments, reply *Empty) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	m.Log.Infof("Market.ActivateListing: %+v", arguments)
	return m.Market.ActivateListing(arguments.Seller, arguments.ListingId)
}

// UpdatePrice - change the asking price
func (m *Market) UpdatePrice(arguments *SellerArguments, reply *Empty) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	m.Log.Infof("Market.UpdatePrice: %+v", arguments)
	return m.Market.UpdateListingPrice(arguments.Seller, arguments.ListingId, arguments.PricePerShare)
}

// Trading
// -------

// BuyArguments - purchase from a single listing
type BuyArguments struct {
	Buyer     account.Address `json:"buyer"`
	ListingId uint64          `json:"listingId"`
	Shares    uint64          `json:"shares"`
}

// TradesReply - settled trades
type TradesReply struct {
	Trades []market.Trade `json:"trades"`
}

// Buy - purchase shares from one listing
func (m *Market) Buy(arguments *BuyArguments, reply *TradesReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	m.Log.Infof("Market.Buy: %+v", arguments)

	trade, err := m.Market.BuyShares(arguments.Buyer, arguments.ListingId, arguments.Shares)
	if nil != err {
		return err
	}
	reply.Trades = []market.Trade{trade}
	return nil
}

// SweepArguments - purchase across the book
//
// Price is the ceiling for MarketBuy (zero for none) or the limit for LimitBuy
type SweepArguments struct {
	Buyer  account.Address `json:"buyer"`
	Asset  asset.Ref       `json:"asset"`
	Shares uint64          `json:"shares"`
	Price  uint64          `json:"price"`
}

// MarketBuy - fill the whole amount from the cheapest listings or nothing
func (m *Market) MarketBuy(arguments *SweepArguments, reply *TradesReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	m.Log.Infof("Market.MarketBuy: %+v", arguments)

	trades, err := m.Market.MarketBuy(arguments.Buyer, arguments.Asset, arguments.Shares, arguments.Price)
	if nil != err {
		return err
	}
	reply.Trades = trades
	return nil
}

// LimitBuy - fill as much as possible at or below the limit
func (m *Market) LimitBuy(arguments *SweepArguments, reply *TradesReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	m.Log.Infof("Market.LimitBuy: %+v", arguments)

	trades, err := m.Market.LimitBuy(arguments.Buyer, arguments.Asset, arguments.Shares, arguments.Price)
	if nil != err {
		return err
	}
	reply.Trades = trades
	return nil
}

// BatchBuyArguments - several listings at once
type BatchBuyArguments struct {
	Buyer      account.Address `json:"buyer"`
	ListingIds []uint64        `json:"listingIds"`
	Shares     []uint64        `json:"shares"`
}

// BatchBuy - buy from every listing or none
func (m *Market) BatchBuy(arguments *BatchBuyArguments, reply *TradesReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	m.Log.Infof("Market.BatchBuy: %+v", arguments)

	trades, err := m.Market.BatchBuy(arguments.Buyer, arguments.ListingIds, arguments.Shares)
	if nil != err {
		return err
	}
	reply.Trades = trades
	return nil
}

// Queries
// -------

// ListingArguments - a single listing
type ListingArguments struct {
	ListingId uint64 `json:"listingId"`
}

// Listing - fetch one listing
func (m *Market) Listing(arguments *ListingArguments, reply *market.Listing) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	l, err := m.Market.GetListing(arguments.ListingId)
	if nil != err {
		return err
	}
	*reply = l
	return nil
}

// ListingsArguments - asset or seller to list
type ListingsArguments struct {
	Asset  asset.Ref       `json:"asset"`
	Seller account.Address `json:"seller"`
	Count  int             `json:"count"`
}

// ListingsReply - listings found
type ListingsReply struct {
	Listings []market.Listing `json:"listings"`
}

// Active - active listings of an asset in price-time order
func (m *Market) Active(arguments *ListingsArguments, reply *ListingsReply) error {
	if err := ratelimit.LimitN(m.Limiter, arguments.Count, MaximumListingsCount); nil != err {
		return err
	}

	listings, err := m.Market.ActiveListings(arguments.Asset, arguments.Count)
	if nil != err {
		return err
	}
	reply.Listings = listings
	return nil
}

// BySeller - listings created by a seller
func (m *Market) BySeller(arguments *ListingsArguments, reply *ListingsReply) error {
	if err := ratelimit.LimitN(m.Limiter, arguments.Count, MaximumListingsCount); nil != err {
		return err
	}

	listings, err := m.Market.ListingsBySeller(arguments.Seller, arguments.Count)
	if nil != err {
		return err
	}
	reply.Listings = listings
	return nil
}

// AssetArguments - asset to query
type AssetArguments struct {
	Asset asset.Ref `json:"asset"`
	Price uint64    `json:"price,omitempty"`
}

// Summary - market overview of an asset
func (m *Market) Summary(arguments *AssetArguments, reply *market.Summary) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	s, err := m.Market.Summary(arguments.Asset)
	if nil != err {
		return err
	}
	*reply = s
	return nil
}

// BestAsk - the cheapest active listing
func (m *Market) BestAsk(arguments *AssetArguments, reply *market.Listing) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	l, err := m.Market.BestAsk(arguments.Asset)
	if nil != err {
		return err
	}
	*reply = l
	return nil
}

// LiquidityReply - shares available at one price
type LiquidityReply struct {
	Shares uint64 `json:"shares"`
}

// Liquidity - total shares listed at exactly the given price
func (m *Market) Liquidity(arguments *AssetArguments, reply *LiquidityReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	n, err := m.Market.LiquidityAtPrice(arguments.Asset, arguments.Price)
	if nil != err {
		return err
	}
	reply.Shares = n
	return nil
}

// StatsArguments - empty arguments
type StatsArguments struct{}

// Stats - marketplace settings and totals
func (m *Market) Stats(_ *StatsArguments, reply *market.State) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	s, err := m.Market.Stats()
	if nil != err {
		return err
	}
	*reply = s
	return nil
}

// Administration
// --------------

// AdminArguments - admin action; only the fields for the call are used
type AdminArguments struct {
	Admin          account.Address `json:"admin"`
	FeeBasisPoints uint64          `json:"feeBasisPoints,omitempty"`
	Target         account.Address `json:"target,omitempty"`
	Asset          asset.Ref       `json:"asset,omitempty"`
}

// FrozenReply - listings frozen by an emergency stop
type FrozenReply struct {
	Frozen uint64 `json:"frozen"`
}

// SetFee - change the fee in basis points
func (m *Market) SetFee(arguments *AdminArguments, reply *Empty) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	m.Log.Infof("Market.SetFee: %+v", arguments)
	return m.Market.SetFee(arguments.Admin, arguments.FeeBasisPoints)
}

// SetFeeCollector - change the fee recipient to Target
func (m *Market) SetFeeCollector(arguments *AdminArguments, reply *Empty) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	m.Log.Infof("Market.SetFeeCollector: %+v", arguments)
	return m.Market.SetFeeCollector(arguments.Admin, arguments.Target)
}

// Pause - stop all listing and trading
func (m *Market) Pause(arguments *AdminArguments, reply *Empty) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	m.Log.Infof("Market.Pause: %+v", arguments)
	return m.Market.Pause(arguments.Admin)
}

// Unpause - resume listing and trading
func (m *Market) Unpause(arguments *AdminArguments, reply *Empty) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	m.Log.Infof("Market.Unpause: %+v", arguments)
	return m.Market.Unpause(arguments.Admin)
}

// TransferAdmin - hand the admin role to Target
func (m *Market) TransferAdmin(arguments *AdminArguments, reply *Empty) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	m.Log.Infof("Market.TransferAdmin: %+v", arguments)
	return m.Market.TransferAdmin(arguments.Admin, arguments.Target)
}

// EmergencyDeactivate - freeze every active listing of Asset
func (m *Market) EmergencyDeactivate(arguments *AdminArguments, reply *FrozenReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	m.Log.Warnf("Market.EmergencyDeactivate: %+v", arguments)

	n, err := m.Market.EmergencyDeactivate(arguments.Admin, arguments.Asset)
	if nil != err {
		return err
	}
	reply.Frozen = n
	return nil
}
