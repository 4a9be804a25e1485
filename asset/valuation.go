// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/fractiond/fault"
)

// limits of the valuation fields
const (
	MaximumScore       = 1000
	MaximumSubScore    = 100
	MaximumMarketValue = 1000000000000000 // sanity ceiling, exclusive
)

// Valuation - valuation data for one asset
type Valuation struct {
	Score           uint64    `json:"score"`
	MarketValue     uint64    `json:"marketValue"`
	SEOAuthority    uint64    `json:"seoAuthority"`
	TrafficEstimate uint64    `json:"trafficEstimate"`
	Brandability    uint64    `json:"brandability"`
	TLDRarity       uint64    `json:"tldRarity"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// structure of a packed valuation, all fields big endian uint64
const (
	uint64ByteSize = 8

	scoreStart        = 0
	marketValueStart  = scoreStart + uint64ByteSize
	seoStart          = marketValueStart + uint64ByteSize
	trafficStart      = seoStart + uint64ByteSize
	brandabilityStart = trafficStart + uint64ByteSize
	tldRarityStart    = brandabilityStart + uint64ByteSize
	updatedAtStart    = tldRarityStart + uint64ByteSize

	// ValuationPackLength - size of a packed valuation
	ValuationPackLength = updatedAtStart + uint64ByteSize
)

// Validate - range check every field against the current time
func (v *Valuation) Validate(now time.Time) error {
	if v.Score > MaximumScore {
		return fault.InvalidValuationScore
	}
	for _, s := range []uint64{v.SEOAuthority, v.TrafficEstimate, v.Brandability, v.TLDRarity} {
		if s > MaximumSubScore {
			return fault.InvalidValuationSubScore
		}
	}
	if 0 == v.MarketValue || v.MarketValue >= MaximumMarketValue {
		return fault.InvalidValuationMarket
	}
	if v.UpdatedAt.After(now) {
		return fault.InvalidTimestamp
	}
	return nil
}

// Pack - fixed length binary form
func (v *Valuation) Pack() []byte {
	buffer := make([]byte, ValuationPackLength)
	binary.BigEndian.PutUint64(buffer[scoreStart:], v.Score)
	binary.BigEndian.PutUint64(buffer[marketValueStart:], v.MarketValue)
	binary.BigEndian.PutUint64(buffer[seoStart:], v.SEOAuthority)
	binary.BigEndian.PutUint64(buffer[trafficStart:], v.TrafficEstimate)
	binary.BigEndian.PutUint64(buffer[brandabilityStart:], v.Brandability)
	binary.BigEndian.PutUint64(buffer[tldRarityStart:], v.TLDRarity)
	binary.BigEndian.PutUint64(buffer[updatedAtStart:], TimeToUint64(v.UpdatedAt))
	return buffer
}

// UnpackValuation - decode the fixed length binary form
func UnpackValuation(buffer []byte) (Valuation, error) {
	if len(buffer) < ValuationPackLength {
		return Valuation{}, fault.ProcessError("truncated valuation record")
	}
	return Valuation{
		Score:           binary.BigEndian.Uint64(buffer[scoreStart:]),
		MarketValue:     binary.BigEndian.Uint64(buffer[marketValueStart:]),
		SEOAuthority:    binary.BigEndian.Uint64(buffer[seoStart:]),
		TrafficEstimate: binary.BigEndian.Uint64(buffer[trafficStart:]),
		Brandability:    binary.BigEndian.Uint64(buffer[brandabilityStart:]),
		TLDRarity:       binary.BigEndian.Uint64(buffer[tldRarityStart:]),
		UpdatedAt:       Uint64ToTime(binary.BigEndian.Uint64(buffer[updatedAtStart:])),
	}, nil
}

// TimeToUint64 - whole unix seconds, zero time is zero
func TimeToUint64(t time.Time) uint64 {
	if t.IsZero() || t.Unix() <= 0 {
		return 0
	}
	return uint64(t.Unix())
}

// Uint64ToTime - inverse of TimeToUint64
func Uint64ToTime(seconds uint64) time.Time {
	if 0 == seconds {
		return time.Time{}
	}
	return time.Unix(int64(seconds), 0).UTC()
}
