// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"encoding/binary"
	"math/bits"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/storage"
)

// maximum listings returned by one call
const maximumListings = 1000

// PriceRange - lowest and highest active ask
type PriceRange struct {
	Lowest  uint64 `json:"lowest"`
	Highest uint64 `json:"highest"`
	Spread  uint64 `json:"spread"`
}

// Summary - per asset market overview
type Summary struct {
	Asset          asset.Ref  `json:"asset"`
	ActiveListings uint64     `json:"activeListings"`
	SharesListed   uint64     `json:"sharesListed"`
	Prices         PriceRange `json:"prices"`
	TotalSupply    uint64     `json:"totalSupply"`
	MarketCap      uint64     `json:"marketCap"`
}

// Stats - marketplace settings and totals
func (m *Market) Stats() (State, error) {
	var s State
	err := m.store.View(func(trx storage.Transaction) error {
		state, err := m.readState(trx)
		if nil != err {
			return err
		}
		s = *state
		return nil
	})
	return s, err
}

// GetListing - any listing, active or not
func (m *Market) GetListing(id uint64) (Listing, error) {
	var l Listing
	err := m.store.View(func(trx storage.Transaction) error {
		listing, err := m.readListing(trx, id)
		if nil != err {
			return err
		}
		l = *listing
		return nil
	})
	return l, err
}

// ActiveListings - an asset's book in price-time order
func (m *Market) ActiveListings(ref asset.Ref, count int) ([]Listing, error) {
	if count <= 0 || count > maximumListings {
		count = maximumListings
	}
	var listings []Listing
	err := m.store.View(func(trx storage.Transaction) error {
		for _, l := range m.activeListings(trx, ref, count) {
			listings = append(listings, *l)
		}
		return nil
	})
	return listings, err
}

// ListingsBySeller - every listing a seller created, oldest first
func (m *Market) ListingsBySeller(seller account.Address, count int) ([]Listing, error) {
	if count <= 0 || count > maximumListings {
		count = maximumListings
	}
	var listings []Listing
	err := m.store.View(func(trx storage.Transaction) error {
		for _, e := range trx.Fetch(m.store.Pool.SellerListings, seller[:], count) {
			id := binary.BigEndian.Uint64(e.Key[len(seller):])
			l, err := m.readListing(trx, id)
			if nil != err {
				return err
			}
			listings = append(listings, *l)
		}
		return nil
	})
	return listings, err
}

// BestAsk - the first listing a buyer would take
func (m *Market) BestAsk(ref asset.Ref) (Listing, error) {
	var best Listing
	err := m.store.View(func(trx storage.Transaction) error {
		listings := m.activeListings(trx, ref, 1)
		if 0 == len(listings) {
			return fault.NoListingsAvailable
		}
		best = *listings[0]
		return nil
	})
	return best, err
}

// LiquidityAtPrice - shares available at exactly price
func (m *Market) LiquidityAtPrice(ref asset.Ref, price uint64) (uint64, error) {
	total := uint64(0)
	err := m.store.View(func(trx storage.Transaction) error {
		for _, l := range m.activeListings(trx, ref, 0) {
			if l.PricePerShare > price {
				break
			}
			if l.PricePerShare == price {
				sum, carry := bits.Add64(total, l.SharesAvailable, 0)
				if 0 != carry {
					return fault.Overflow
				}
				total = sum
			}
		}
		return nil
	})
	return total, err
}

// MarketCap - lowest ask × total supply
func (m *Market) MarketCap(ref asset.Ref) (uint64, error) {
	s, err := m.Summary(ref)
	if nil != err {
		return 0, err
	}
	if 0 == s.ActiveListings {
		return 0, fault.NoListingsAvailable
	}
	return s.MarketCap, nil
}

// PriceRange - lowest, highest and their difference
func (m *Market) PriceRange(ref asset.Ref) (PriceRange, error) {
	s, err := m.Summary(ref)
	if nil != err {
		return PriceRange{}, err
	}
	if 0 == s.ActiveListings {
		return PriceRange{}, fault.NoListingsAvailable
	}
	return s.Prices, nil
}

// Summary - totals over the asset's active listings
func (m *Market) Summary(ref asset.Ref) (Summary, error) {
	s := Summary{
		Asset: ref,
	}
	err := m.store.View(func(trx storage.Transaction) error {
		supply, err := m.shares.SupplyIn(trx, ref)
		if nil != err {
			return err
		}
		s.TotalSupply = supply

		listings := m.activeListings(trx, ref, 0)
		s.ActiveListings = uint64(len(listings))
		if 0 == len(listings) {
			return nil
		}
		for _, l := range listings {
			sum, carry := bits.Add64(s.SharesListed, l.SharesAvailable, 0)
			if 0 != carry {
				return fault.Overflow
			}
			s.SharesListed = sum
		}
		s.Prices.Lowest = listings[0].PricePerShare
		s.Prices.Highest = listings[len(listings)-1].PricePerShare
		s.Prices.Spread = s.Prices.Highest - s.Prices.Lowest

		hi, lo := bits.Mul64(s.Prices.Lowest, supply)
		if 0 != hi {
			return fault.Overflow
		}
		s.MarketCap = lo
		return nil
	})
	return s, err
}
