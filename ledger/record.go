// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/storage"
)

// ledger header stored under S ⧺ ref
//
// total shares ⧺ transfer count ⧺ issuer ⧺ created at
type header struct {
	total     uint64
	transfers uint64
	issuer    account.Address
	createdAt time.Time
}

const (
	totalStart     = 0
	totalFinish    = totalStart + 8
	transferStart  = totalFinish
	transferFinish = transferStart + 8
	issuerStart    = transferFinish
	issuerFinish   = issuerStart + len(account.Address{})
	createdStart   = issuerFinish
	createdFinish  = createdStart + 8
	headerLength   = createdFinish
)

func (h *header) pack() []byte {
	buffer := make([]byte, headerLength)
	binary.BigEndian.PutUint64(buffer[totalStart:totalFinish], h.total)
	binary.BigEndian.PutUint64(buffer[transferStart:transferFinish], h.transfers)
	copy(buffer[issuerStart:issuerFinish], h.issuer[:])
	binary.BigEndian.PutUint64(buffer[createdStart:createdFinish], asset.TimeToUint64(h.createdAt))
	return buffer
}

func unpackHeader(ref asset.Ref, buffer []byte) *header {
	if headerLength != len(buffer) {
		fault.Panicf("ledger: asset: %s  header length: %d  expected: %d", ref, len(buffer), headerLength)
	}
	h := &header{
		total:     binary.BigEndian.Uint64(buffer[totalStart:totalFinish]),
		transfers: binary.BigEndian.Uint64(buffer[transferStart:transferFinish]),
		createdAt: asset.Uint64ToTime(binary.BigEndian.Uint64(buffer[createdStart:createdFinish])),
	}
	copy(h.issuer[:], buffer[issuerStart:issuerFinish])
	return h
}

func (l *Ledger) readHeader(trx storage.Transaction, ref asset.Ref) (*header, error) {
	buffer := trx.Get(l.store.Pool.ShareLedgers, ref[:])
	if nil == buffer {
		return nil, fault.LedgerNotFound
	}
	return unpackHeader(ref, buffer), nil
}

func (l *Ledger) writeHeader(trx storage.Transaction, ref asset.Ref, h *header) {
	trx.Put(l.store.Pool.ShareLedgers, ref[:], h.pack())
}

// ref ⧺ owner
func balanceKey(ref asset.Ref, owner account.Address) []byte {
	return storage.Key(ref[:], owner[:])
}

// ref ⧺ owner ⧺ spender
func allowanceKey(ref asset.Ref, owner account.Address, spender account.Address) []byte {
	return storage.Key(ref[:], owner[:], spender[:])
}

func (l *Ledger) balance(trx storage.Transaction, ref asset.Ref, owner account.Address) uint64 {
	n, _ := trx.GetN(l.store.Pool.ShareBalances, balanceKey(ref, owner))
	return n
}

func (l *Ledger) setBalance(trx storage.Transaction, ref asset.Ref, owner account.Address, n uint64) {
	key := balanceKey(ref, owner)
	if 0 == n {
		trx.Delete(l.store.Pool.ShareBalances, key)
	} else {
		trx.PutN(l.store.Pool.ShareBalances, key, n)
	}
}

func (l *Ledger) allowance(trx storage.Transaction, ref asset.Ref, owner account.Address, spender account.Address) uint64 {
	n, _ := trx.GetN(l.store.Pool.Allowances, allowanceKey(ref, owner, spender))
	return n
}

func (l *Ledger) setAllowance(trx storage.Transaction, ref asset.Ref, owner account.Address, spender account.Address, n uint64) {
	key := allowanceKey(ref, owner, spender)
	if 0 == n {
		trx.Delete(l.store.Pool.Allowances, key)
	} else {
		trx.PutN(l.store.Pool.Allowances, key, n)
	}
}
