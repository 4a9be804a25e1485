// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"encoding/binary"
	"math/bits"
	"time"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/storage"
)

// maximum holders returned by one call
const maximumHolders = 1000

// Holding - one holder's balance
type Holding struct {
	Owner   account.Address `json:"owner"`
	Balance uint64          `json:"balance"`
}

// Summary - ledger totals
type Summary struct {
	Asset             asset.Ref       `json:"asset"`
	Issuer            account.Address `json:"issuer"`
	TotalShares       uint64          `json:"totalShares"`
	CirculatingSupply uint64          `json:"circulatingSupply"`
	TransferCount     uint64          `json:"transferCount"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// BalanceIn - balance inside an existing transaction
func (l *Ledger) BalanceIn(trx storage.Transaction, ref asset.Ref, owner account.Address) uint64 {
	return l.balance(trx, ref, owner)
}

// SupplyIn - total shares inside an existing transaction
func (l *Ledger) SupplyIn(trx storage.Transaction, ref asset.Ref) (uint64, error) {
	h, err := l.readHeader(trx, ref)
	if nil != err {
		return 0, err
	}
	return h.total, nil
}

// BalanceOf - shares held by owner
func (l *Ledger) BalanceOf(ref asset.Ref, owner account.Address) (uint64, error) {
	n := uint64(0)
	err := l.store.View(func(trx storage.Transaction) error {
		if _, err := l.readHeader(trx, ref); nil != err {
			return err
		}
		n = l.balance(trx, ref, owner)
		return nil
	})
	return n, err
}

// TotalSupply - shares created at initialisation
func (l *Ledger) TotalSupply(ref asset.Ref) (uint64, error) {
	s, err := l.Summary(ref)
	return s.TotalShares, err
}

// CirculatingSupply - shares not held by the issuer
func (l *Ledger) CirculatingSupply(ref asset.Ref) (uint64, error) {
	s, err := l.Summary(ref)
	return s.CirculatingSupply, err
}

// TransferCount - number of share movements so far
func (l *Ledger) TransferCount(ref asset.Ref) (uint64, error) {
	s, err := l.Summary(ref)
	return s.TransferCount, err
}

// Summary - totals of one ledger
func (l *Ledger) Summary(ref asset.Ref) (Summary, error) {
	var s Summary
	err := l.store.View(func(trx storage.Transaction) error {
		h, err := l.readHeader(trx, ref)
		if nil != err {
			return err
		}
		s = Summary{
			Asset:             ref,
			Issuer:            h.issuer,
			TotalShares:       h.total,
			CirculatingSupply: h.total - l.balance(trx, ref, h.issuer),
			TransferCount:     h.transfers,
			CreatedAt:         h.createdAt,
		}
		return nil
	})
	return s, err
}

// Allowance - remaining shares spender may move for owner
//
// an absent entry is zero
func (l *Ledger) Allowance(ref asset.Ref, owner account.Address, spender account.Address) (uint64, error) {
	n := uint64(0)
	err := l.store.View(func(trx storage.Transaction) error {
		if _, err := l.readHeader(trx, ref); nil != err {
			return err
		}
		n = l.allowance(trx, ref, owner, spender)
		return nil
	})
	return n, err
}

// SharePercentage - owner's share of the supply in basis points
func (l *Ledger) SharePercentage(ref asset.Ref, owner account.Address) (uint64, error) {
	bps := uint64(0)
	err := l.store.View(func(trx storage.Transaction) error {
		h, err := l.readHeader(trx, ref)
		if nil != err {
			return err
		}
		bps = basisPoints(l.balance(trx, ref, owner), h.total)
		return nil
	})
	return bps, err
}

// HasShares - owner holds a non-zero balance
func (l *Ledger) HasShares(ref asset.Ref, owner account.Address) (bool, error) {
	n, err := l.BalanceOf(ref, owner)
	return 0 != n, err
}

// Holders - holders in address order starting at start (inclusive)
func (l *Ledger) Holders(ref asset.Ref, start account.Address, count int) ([]Holding, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}
	if count > maximumHolders {
		count = maximumHolders
	}

	holdings := make([]Holding, 0, count)
	err := l.store.View(func(trx storage.Transaction) error {
		if _, err := l.readHeader(trx, ref); nil != err {
			return err
		}
		elements := trx.Range(l.store.Pool.ShareBalances, balanceKey(ref, start), count)
		for _, e := range elements {
			if !bytes.HasPrefix(e.Key, ref[:]) {
				break
			}
			var owner account.Address
			copy(owner[:], e.Key[len(ref):])
			holdings = append(holdings, Holding{
				Owner:   owner,
				Balance: binary.BigEndian.Uint64(e.Value),
			})
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return holdings, nil
}

// balance × 10000 ÷ total without intermediate overflow
func basisPoints(balance uint64, total uint64) uint64 {
	if 0 == total || balance > total {
		return 0
	}
	hi, lo := bits.Mul64(balance, 10000)
	q, _ := bits.Div64(hi, lo, total)
	return q
}
