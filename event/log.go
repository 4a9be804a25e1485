// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/messagebus"
	"github.com/bitmark-inc/fractiond/storage"
)

// maximum records returned by one Since call
const maximumFetch = 1000

var sequenceKey = []byte("event")

// Emitter - append records as part of a transaction
type Emitter interface {
	Emit(storage.Transaction, Record) Record
}

// Log - persistent event log
type Log struct {
	log   *logger.L
	store *storage.Store
	bus   *messagebus.BroadcastQueue
}

// New - create a log over a store, publishing to a new broadcast queue
func New(store *storage.Store) *Log {
	return &Log{
		log:   logger.New("event"),
		store: store,
		bus:   messagebus.NewBroadcast(),
	}
}

// Emit - allocate an id and store the record
//
// subscribers see the record only after the transaction commits
func (l *Log) Emit(trx storage.Transaction, r Record) Record {
	pool := l.store.Pool

	id, _ := trx.GetN(pool.Sequences, sequenceKey)
	id += 1
	trx.PutN(pool.Sequences, sequenceKey, id)

	r.Id = id
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC().Truncate(time.Second)
	}

	data, err := json.Marshal(r)
	fault.PanicIfError("event: marshal", err)

	trx.Put(pool.Events, storage.Uint64Bytes(id), data)

	trx.OnCommit(func() {
		l.log.Debugf("id: %d  kind: %s  asset: %s", r.Id, r.Kind, r.Asset)
		l.bus.Send(string(r.Kind), r)
	})
	return r
}

// Since - records with id > start, oldest first
func (l *Log) Since(start uint64, count int) ([]Record, error) {
	if count <= 0 || count > maximumFetch {
		count = maximumFetch
	}

	records := make([]Record, 0, count)
	err := l.store.View(func(trx storage.Transaction) error {
		elements := trx.Range(l.store.Pool.Events, storage.Uint64Bytes(start+1), count)
		for _, e := range elements {
			var r Record
			if err := json.Unmarshal(e.Value, &r); nil != err {
				l.log.Errorf("id: %d  unmarshal error: %s", binary.BigEndian.Uint64(e.Key), err)
				return err
			}
			records = append(records, r)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return records, nil
}

// Last - id of the most recent record, zero if none
func (l *Log) Last() (uint64, error) {
	last := uint64(0)
	err := l.store.View(func(trx storage.Transaction) error {
		last, _ = trx.GetN(l.store.Pool.Sequences, sequenceKey)
		return nil
	})
	return last, err
}

// Subscribe - receive records as they are committed
//
// Message.Item holds the Record
func (l *Log) Subscribe(size int) <-chan messagebus.Message {
	return l.bus.Chan(size)
}

// Unsubscribe - stop receiving
func (l *Log) Unsubscribe(c <-chan messagebus.Message) {
	l.bus.Release(c)
}

// Dropped - records a full subscriber channel did not receive
func (l *Log) Dropped() uint64 {
	return l.bus.Dropped()
}
