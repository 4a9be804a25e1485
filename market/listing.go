// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"encoding/binary"
	"time"

	"github.com/google/orderedcode"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/storage"
)

// Status - listing lifecycle state
type Status byte

// listing states
const (
	StatusActive      Status = 1
	StatusSoldOut     Status = 2
	StatusDeactivated Status = 3
	StatusFrozen      Status = 4
	StatusCancelled   Status = 5
)

var statusNames = map[Status]string{
	StatusActive:      "active",
	StatusSoldOut:     "sold-out",
	StatusDeactivated: "deactivated",
	StatusFrozen:      "frozen",
	StatusCancelled:   "cancelled",
}

// String - state name
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText - state name for JSON
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - state from its name
func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fault.InvalidStatus
}

// Listing - an offer to sell shares at a fixed price
type Listing struct {
	ListingId       uint64          `json:"listingId"`
	Asset           asset.Ref       `json:"asset"`
	Seller          account.Address `json:"seller"`
	PricePerShare   uint64          `json:"pricePerShare"`
	SharesAvailable uint64          `json:"sharesAvailable"`
	OriginalShares  uint64          `json:"originalShares"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Active          bool            `json:"active"`
	Status          Status          `json:"status"`
	TrackingId      uint64          `json:"trackingId"`
}

const (
	idStart        = 0
	idFinish       = idStart + 8
	assetStart     = idFinish
	assetFinish    = assetStart + len(asset.Ref{})
	sellerStart    = assetFinish
	sellerFinish   = sellerStart + len(account.Address{})
	priceStart     = sellerFinish
	availableStart = priceStart + 8
	originalStart  = availableStart + 8
	createdStart   = originalStart + 8
	updatedStart   = createdStart + 8
	trackingStart  = updatedStart + 8
	statusStart    = trackingStart + 8
	listingLength  = statusStart + 1
)

func (l *Listing) pack() []byte {
	buffer := make([]byte, listingLength)
	binary.BigEndian.PutUint64(buffer[idStart:idFinish], l.ListingId)
	copy(buffer[assetStart:assetFinish], l.Asset[:])
	copy(buffer[sellerStart:sellerFinish], l.Seller[:])
	binary.BigEndian.PutUint64(buffer[priceStart:], l.PricePerShare)
	binary.BigEndian.PutUint64(buffer[availableStart:], l.SharesAvailable)
	binary.BigEndian.PutUint64(buffer[originalStart:], l.OriginalShares)
	binary.BigEndian.PutUint64(buffer[createdStart:], asset.TimeToUint64(l.CreatedAt))
	binary.BigEndian.PutUint64(buffer[updatedStart:], asset.TimeToUint64(l.UpdatedAt))
	binary.BigEndian.PutUint64(buffer[trackingStart:], l.TrackingId)
	buffer[statusStart] = byte(l.Status)
	return buffer
}

func unpackListing(buffer []byte) *Listing {
	if listingLength != len(buffer) {
		fault.Panicf("market: listing length: %d  expected: %d", len(buffer), listingLength)
	}
	l := &Listing{
		ListingId:       binary.BigEndian.Uint64(buffer[idStart:idFinish]),
		PricePerShare:   binary.BigEndian.Uint64(buffer[priceStart:]),
		SharesAvailable: binary.BigEndian.Uint64(buffer[availableStart:]),
		OriginalShares:  binary.BigEndian.Uint64(buffer[originalStart:]),
		CreatedAt:       asset.Uint64ToTime(binary.BigEndian.Uint64(buffer[createdStart:])),
		UpdatedAt:       asset.Uint64ToTime(binary.BigEndian.Uint64(buffer[updatedStart:])),
		TrackingId:      binary.BigEndian.Uint64(buffer[trackingStart:]),
		Status:          Status(buffer[statusStart]),
	}
	l.Active = StatusActive == l.Status
	copy(l.Asset[:], buffer[assetStart:assetFinish])
	copy(l.Seller[:], buffer[sellerStart:sellerFinish])
	return l
}

func (m *Market) readListing(trx storage.Transaction, id uint64) (*Listing, error) {
	buffer := trx.Get(m.store.Pool.Listings, storage.Uint64Bytes(id))
	if nil == buffer {
		return nil, fault.ListingNotFound
	}
	return unpackListing(buffer), nil
}

func (m *Market) writeListing(trx storage.Transaction, l *Listing) {
	l.Active = StatusActive == l.Status
	trx.Put(m.store.Pool.Listings, storage.Uint64Bytes(l.ListingId), l.pack())
}

// ordered(ref) - common prefix of an asset's index keys
func indexPrefix(ref asset.Ref) []byte {
	key, err := orderedcode.Append(nil, string(ref[:]))
	fault.PanicIfError("market: index prefix", err)
	return key
}

// ordered(ref, price, tracking id)
func indexKey(l *Listing) []byte {
	key, err := orderedcode.Append(nil, string(l.Asset[:]), l.PricePerShare, l.TrackingId)
	fault.PanicIfError("market: index key", err)
	return key
}

// put an active listing in the index with a new tracking id
func (m *Market) index(trx storage.Transaction, s *State, l *Listing) {
	s.NextTrackingId += 1
	l.TrackingId = s.NextTrackingId
	trx.Put(m.store.Pool.ActiveListings, indexKey(l), storage.Uint64Bytes(l.ListingId))
}

func (m *Market) unindex(trx storage.Transaction, l *Listing) {
	trx.Delete(m.store.Pool.ActiveListings, indexKey(l))
}

// active listings of an asset in price-time order
func (m *Market) activeListings(trx storage.Transaction, ref asset.Ref, count int) []*Listing {
	elements := trx.Fetch(m.store.Pool.ActiveListings, indexPrefix(ref), count)
	listings := make([]*Listing, 0, len(elements))
	for _, e := range elements {
		if 8 != len(e.Value) {
			fault.Panicf("market: corrupt index value: %x", e.Value)
		}
		l, err := m.readListing(trx, binary.BigEndian.Uint64(e.Value))
		if nil != err || StatusActive != l.Status {
			fault.Panicf("market: index refers to missing or inactive listing: %x", e.Value)
		}
		listings = append(listings, l)
	}
	return listings
}

// seller ⧺ id
func sellerKey(seller account.Address, id uint64) []byte {
	return storage.Key(seller[:], storage.Uint64Bytes(id))
}
