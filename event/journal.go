// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"sync/atomic"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/messagebus"
)

// Journal - background process writing every committed record to the log
type Journal struct {
	log     *logger.L
	events  *Log
	c       <-chan messagebus.Message
	written uint64
}

// NewJournal - subscribe now so no record committed after this is missed
func NewJournal(events *Log, size int) *Journal {
	return &Journal{
		log:    logger.New("journal"),
		events: events,
		c:      events.Subscribe(size),
	}
}

// Run - log records until shutdown, then unsubscribe
func (j *Journal) Run(args interface{}, shutdown <-chan struct{}) {
	defer j.events.Unsubscribe(j.c)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case m, ok := <-j.c:
			if !ok {
				break loop
			}
			r, ok := m.Item.(Record)
			if !ok {
				j.log.Warnf("unexpected item: %T", m.Item)
				continue
			}
			j.log.Infof("id: %d  kind: %s  asset: %s  actor: %s  target: %s  amount: %d  price: %d  fee: %d",
				r.Id, r.Kind, r.Asset, r.Actor, r.Target, r.Amount, r.Price, r.Fee)
			atomic.AddUint64(&j.written, 1)
		}
	}
	if n := j.events.Dropped(); 0 != n {
		j.log.Warnf("records not delivered to slow subscribers: %d", n)
	}
}

// Written - number of records logged
func (j *Journal) Written() uint64 {
	return atomic.LoadUint64(&j.written)
}
