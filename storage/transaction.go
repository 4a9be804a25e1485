// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/fractiond/fault"
)

// Transaction - a unit of work against the store
type Transaction interface {
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Fetch(*PoolHandle, []byte, int) []Element
	Range(*PoolHandle, []byte, int) []Element
	OnCommit(func())
	Commit() error
	Abort()
}

type transaction struct {
	store   *Store
	batch   *leveldb.Batch
	overlay *overlay
	hooks   []func()
	done    bool
}

// Begin - start a transaction, blocking until any other transaction finishes
func (s *Store) Begin() (Transaction, error) {
	if err := s.check(); nil != err {
		return nil, err
	}
	s.Lock()
	if nil == s.db {
		s.Unlock()
		return nil, fault.StoreNotOpen
	}
	return &transaction{
		store:   s,
		batch:   new(leveldb.Batch),
		overlay: newOverlay(),
	}, nil
}

// Update - run f in a transaction, commit if it succeeds
func (s *Store) Update(f func(Transaction) error) error {
	trx, err := s.Begin()
	if nil != err {
		return err
	}
	err = f(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

// View - run f in a transaction that is always discarded
func (s *Store) View(f func(Transaction) error) error {
	trx, err := s.Begin()
	if nil != err {
		return err
	}
	defer trx.Abort()
	return f(trx)
}

func (t *transaction) active() {
	if t.done {
		fault.Panic("storage: transaction already finished")
	}
}

// Get - read a value, nil if absent
func (t *transaction) Get(p *PoolHandle, key []byte) []byte {
	t.active()
	pk := p.prefixKey(key)
	if value, ok := t.overlay.get(pk); ok {
		return value
	}
	value, err := t.store.db.Get(pk, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	if nil != err {
		t.store.log.Criticalf("storage get: error: %s", err)
		fault.Panicf("storage get: error: %s", err)
	}
	return value
}

// GetN - read a big endian uint64
func (t *transaction) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	value := t.Get(p, key)
	if 8 != len(value) {
		return 0, false
	}
	return binary.BigEndian.Uint64(value), true
}

// Has - check for existence of a key
func (t *transaction) Has(p *PoolHandle, key []byte) bool {
	return nil != t.Get(p, key)
}

// Put - store a key/value
func (t *transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.active()
	if t.store.readOnly {
		fault.Panic("storage: write to read only store")
	}
	if nil == value {
		value = []byte{}
	}
	pk := p.prefixKey(key)
	t.batch.Put(pk, value)
	t.overlay.put(pk, value)
}

// PutN - store a big endian uint64
func (t *transaction) PutN(p *PoolHandle, key []byte, n uint64) {
	t.Put(p, key, Uint64Bytes(n))
}

// Delete - remove a key
func (t *transaction) Delete(p *PoolHandle, key []byte) {
	t.active()
	if t.store.readOnly {
		fault.Panic("storage: delete from read only store")
	}
	pk := p.prefixKey(key)
	t.batch.Delete(pk)
	t.overlay.delete(pk)
}

// Fetch - up to count elements whose key starts with prefix, in key order
//
// keys are returned without the pool prefix; count <= 0 means no limit
func (t *transaction) Fetch(p *PoolHandle, prefix []byte, count int) []Element {
	t.active()
	start := p.prefixKey(prefix)
	return t.scan(util.BytesPrefix(start), start, count)
}

// Range - up to count elements of the pool with key >= from, in key order
func (t *transaction) Range(p *PoolHandle, from []byte, count int) []Element {
	t.active()
	r := &util.Range{
		Start: p.prefixKey(from),
		Limit: p.limit,
	}
	return t.scan(r, []byte{p.prefix}, count)
}

// merge the database range with pending writes under overlayPrefix
//
// walks the iterator and the sorted overlay keys together and stops
// as soon as count elements are collected
func (t *transaction) scan(r *util.Range, overlayPrefix []byte, count int) []Element {
	pending := t.overlay.scan(overlayPrefix)
	keys := make([]string, 0, len(pending))
	for k := range pending {
		if bytes.Compare([]byte(k), r.Start) < 0 {
			continue
		}
		if nil != r.Limit && bytes.Compare([]byte(k), r.Limit) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]Element, 0)
	full := func() bool {
		return count > 0 && len(results) >= count
	}
	add := func(key string, value []byte) {
		results = append(results, Element{
			Key:   []byte(key)[1:],
			Value: value,
		})
	}
	// overlay entries before the database key, deletes hide nothing here
	drain := func(before string, all bool) {
		for len(keys) > 0 && !full() && (all || keys[0] < before) {
			e := pending[keys[0]]
			if cacheDelete != e.action {
				add(keys[0], e.value)
			}
			keys = keys[1:]
		}
	}

	iter := t.store.db.NewIterator(r, nil)
	for !full() && iter.Next() {
		k := string(iter.Key())
		drain(k, false)
		if full() {
			break
		}
		if len(keys) > 0 && keys[0] == k {
			e := pending[k]
			keys = keys[1:]
			if cacheDelete != e.action {
				add(k, e.value)
			}
			continue
		}
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		add(k, value)
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		fault.Panicf("storage fetch: error: %s", err)
	}

	drain("", true)
	return results
}

// OnCommit - run f after a successful commit, after the store is released
func (t *transaction) OnCommit(f func()) {
	t.active()
	t.hooks = append(t.hooks, f)
}

// Commit - write all changes atomically and release the store
func (t *transaction) Commit() error {
	t.active()
	t.done = true

	var err error
	if 0 != t.batch.Len() {
		err = t.store.db.Write(t.batch, nil)
	}
	t.batch.Reset()
	t.overlay.clear()
	t.store.Unlock()

	if nil != err {
		t.store.log.Errorf("commit: error: %s", err)
		return err
	}
	for _, f := range t.hooks {
		f()
	}
	return nil
}

// Abort - discard all changes and release the store
func (t *transaction) Abort() {
	if t.done {
		return
	}
	t.done = true
	t.hooks = nil
	t.batch.Reset()
	t.overlay.clear()
	t.store.Unlock()
}
