// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/fault"
)

// Info - a registered asset
type Info struct {
	Ref              asset.Ref       `json:"ref"`
	Name             string          `json:"name"`
	Owner            account.Address `json:"owner"`
	TradingEnabled   bool            `json:"tradingEnabled"`
	FractionalSupply uint64          `json:"fractionalSupply"`
	RegisteredAt     time.Time       `json:"registeredAt"`
}

const (
	flagTrading = 0x01
)

// record offsets
const (
	ownerStart        = 0
	ownerFinish       = ownerStart + len(account.Address{})
	flagsStart        = ownerFinish
	flagsFinish       = flagsStart + 1
	supplyStart       = flagsFinish
	supplyFinish      = supplyStart + 8
	registeredStart   = supplyFinish
	registeredFinish  = registeredStart + 8
	nameStart         = registeredFinish
	minimumInfoLength = nameStart
)

// pack the record part of the info, the ref is the key
func (info *Info) pack() []byte {
	buffer := make([]byte, nameStart, nameStart+len(info.Name))
	copy(buffer[ownerStart:ownerFinish], info.Owner[:])
	if info.TradingEnabled {
		buffer[flagsStart] = flagTrading
	}
	binary.BigEndian.PutUint64(buffer[supplyStart:supplyFinish], info.FractionalSupply)
	binary.BigEndian.PutUint64(buffer[registeredStart:registeredFinish], asset.TimeToUint64(info.RegisteredAt))
	return append(buffer, info.Name...)
}

func unpackInfo(ref asset.Ref, buffer []byte) Info {
	if len(buffer) < minimumInfoLength {
		fault.Panicf("registry: asset: %s  record length: %d  is too short", ref, len(buffer))
	}
	info := Info{
		Ref:              ref,
		Name:             string(buffer[nameStart:]),
		TradingEnabled:   0 != buffer[flagsStart]&flagTrading,
		FractionalSupply: binary.BigEndian.Uint64(buffer[supplyStart:supplyFinish]),
		RegisteredAt:     asset.Uint64ToTime(binary.BigEndian.Uint64(buffer[registeredStart:registeredFinish])),
	}
	copy(info.Owner[:], buffer[ownerStart:ownerFinish])
	return info
}
