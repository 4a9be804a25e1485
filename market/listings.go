// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/guard"
	"github.com/bitmark-inc/fractiond/storage"
)

// CreateListing - offer shares for sale, returns the new listing id
func (m *Market) CreateListing(seller account.Address, ref asset.Ref, pricePerShare uint64, shares uint64) (uint64, error) {
	id := uint64(0)
	err := m.store.Update(func(trx storage.Transaction) error {
		s, err := m.runningState(trx)
		if nil != err {
			return err
		}
		if 0 == pricePerShare {
			return fault.InvalidPrice
		}
		if err := guard.NonZero(shares); nil != err {
			return err
		}
		if _, err := m.shares.SupplyIn(trx, ref); nil != err {
			return err
		}
		if !m.registry.TradingEnabled(trx, ref) {
			return fault.TradingDisabled
		}
		if err := guard.Sufficient(m.shares.BalanceIn(trx, ref, seller), shares, fault.InsufficientShares); nil != err {
			return err
		}

		now := m.timestamp()
		s.NextListingId += 1
		s.TotalListings += 1
		l := &Listing{
			ListingId:       s.NextListingId,
			Asset:           ref,
			Seller:          seller,
			PricePerShare:   pricePerShare,
			SharesAvailable: shares,
			OriginalShares:  shares,
			CreatedAt:       now,
			UpdatedAt:       now,
			Status:          StatusActive,
		}
		m.index(trx, s, l)
		m.writeListing(trx, l)
		trx.Put(m.store.Pool.SellerListings, sellerKey(seller, l.ListingId), nil)
		m.writeState(trx, s)

		m.events.Emit(trx, event.Record{
			Kind:        event.ListingCreated,
			Asset:       ref,
			Actor:       seller,
			Amount:      shares,
			Price:       pricePerShare,
			ReferenceId: l.ListingId,
			Timestamp:   now,
		})
		id = l.ListingId
		return nil
	})
	if nil != err {
		m.log.Debugf("create listing: asset: %s  seller: %s  error: %s", ref, seller, err)
		return 0, err
	}
	m.log.Infof("listing: %d  asset: %s  price: %d  shares: %d", id, ref, pricePerShare, shares)
	return id, nil
}

// CancelListing - withdraw a listing permanently
//
// allowed while the marketplace is paused
func (m *Market) CancelListing(seller account.Address, id uint64) error {
	return m.sellerUpdate(seller, id, event.ListingCancelled, func(trx storage.Transaction, s *State, l *Listing) error {
		if StatusCancelled == l.Status {
			return fault.ListingCancelled
		}
		if StatusActive == l.Status {
			m.unindex(trx, l)
		}
		l.Status = StatusCancelled
		return nil
	})
}

// DeactivateListing - withdraw an active listing, it may be activated later
//
// allowed while the marketplace is paused
func (m *Market) DeactivateListing(seller account.Address, id uint64) error {
	return m.sellerUpdate(seller, id, event.ListingDeactivated, func(trx storage.Transaction, s *State, l *Listing) error {
		if StatusActive != l.Status {
			return fault.ListingNotActive
		}
		m.unindex(trx, l)
		l.Status = StatusDeactivated
		return nil
	})
}

// ActivateListing - return a withdrawn listing to the book at the back of its price level
func (m *Market) ActivateListing(seller account.Address, id uint64) error {
	return m.sellerUpdate(seller, id, event.ListingActivated, func(trx storage.Transaction, s *State, l *Listing) error {
		switch l.Status {
		case StatusActive:
			return fault.ListingAlreadyActive
		case StatusCancelled:
			return fault.ListingCancelled
		}
		if err := guard.NotPaused(s.Paused, fault.MarketplacePaused); nil != err {
			return err
		}
		if 0 == l.SharesAvailable {
			return fault.InsufficientSharesListed
		}
		if !m.registry.TradingEnabled(trx, l.Asset) {
			return fault.TradingDisabled
		}
		if err := guard.Sufficient(m.shares.BalanceIn(trx, l.Asset, seller), l.SharesAvailable, fault.InsufficientShares); nil != err {
			return err
		}
		l.Status = StatusActive
		m.index(trx, s, l)
		return nil
	})
}

// UpdateListingPrice - change the price of an active listing
//
// the listing keeps its tracking id and so its place among equal prices
func (m *Market) UpdateListingPrice(seller account.Address, id uint64, pricePerShare uint64) error {
	return m.sellerUpdate(seller, id, event.ListingPriceUpdated, func(trx storage.Transaction, s *State, l *Listing) error {
		if err := guard.NotPaused(s.Paused, fault.MarketplacePaused); nil != err {
			return err
		}
		if StatusActive != l.Status {
			return fault.ListingNotActive
		}
		if 0 == pricePerShare {
			return fault.InvalidPrice
		}
		m.unindex(trx, l)
		l.PricePerShare = pricePerShare
		trx.Put(m.store.Pool.ActiveListings, indexKey(l), storage.Uint64Bytes(l.ListingId))
		return nil
	})
}

// common seller operation on one listing
func (m *Market) sellerUpdate(seller account.Address, id uint64, kind event.Kind, f func(storage.Transaction, *State, *Listing) error) error {
	err := m.store.Update(func(trx storage.Transaction) error {
		s, err := m.readState(trx)
		if nil != err {
			return err
		}
		l, err := m.readListing(trx, id)
		if nil != err {
			return err
		}
		if err := guard.IsSeller(seller, l.Seller); nil != err {
			return err
		}
		if err := f(trx, s, l); nil != err {
			return err
		}

		l.UpdatedAt = m.timestamp()
		m.writeListing(trx, l)
		m.writeState(trx, s)

		m.events.Emit(trx, event.Record{
			Kind:        kind,
			Asset:       l.Asset,
			Actor:       seller,
			Amount:      l.SharesAvailable,
			Price:       l.PricePerShare,
			ReferenceId: l.ListingId,
			Detail:      l.Status.String(),
			Timestamp:   l.UpdatedAt,
		})
		return nil
	})
	if nil != err {
		m.log.Debugf("%s: listing: %d  seller: %s  error: %s", kind, id, seller, err)
	}
	return err
}
