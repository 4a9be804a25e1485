// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"

	"github.com/bitmark-inc/fractiond/counter"
)

// internal constants
const (
	listenerSize = 100
)

// Message - an item on a queue
type Message struct {
	Command string
	Item    interface{}
}

// BroadcastQueue - copy messages to all listeners
type BroadcastQueue struct {
	sync.RWMutex
	listeners map[chan Message]struct{}
	dropped   counter.Counter
}

// NewBroadcast - create a broadcast queue with no listeners
func NewBroadcast() *BroadcastQueue {
	return &BroadcastQueue{
		listeners: make(map[chan Message]struct{}),
	}
}

// Send - deliver to every listener without blocking
//
// a message is dropped for any listener whose channel is full
func (queue *BroadcastQueue) Send(command string, item interface{}) {
	m := Message{
		Command: command,
		Item:    item,
	}

	queue.RLock()
	defer queue.RUnlock()

	for c := range queue.listeners {
		select {
		case c <- m:
		default:
			queue.dropped.Increment()
		}
	}
}

// Chan - add a new listener, size <= 0 selects the default buffer size
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = listenerSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners[c] = struct{}{}
	queue.Unlock()

	return c
}

// Release - remove a listener and close its channel
func (queue *BroadcastQueue) Release(listener <-chan Message) {
	queue.Lock()
	defer queue.Unlock()

	for c := range queue.listeners {
		if (<-chan Message)(c) == listener {
			delete(queue.listeners, c)
			close(c)
			return
		}
	}
}

// Listeners - number of current listeners
func (queue *BroadcastQueue) Listeners() int {
	queue.RLock()
	defer queue.RUnlock()
	return len(queue.listeners)
}

// Dropped - total messages not delivered to a full listener
func (queue *BroadcastQueue) Dropped() uint64 {
	return queue.dropped.Uint64()
}
