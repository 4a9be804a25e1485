// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"sync"
	"testing"

	"github.com/bitmark-inc/fractiond/messagebus"
)

var commands = []string{"c1", "c2", "c3"}

func TestBroadcast(t *testing.T) {
	queue := messagebus.NewBroadcast()

	// nothing listening so these messages should be dropped
	for _, command := range commands {
		queue.Send("ignored:"+command, nil)
	}

	const listeners = 5

	channels := make([]<-chan messagebus.Message, listeners)
	for i := 0; i < listeners; i += 1 {
		channels[i] = queue.Chan(0)
	}
	if listeners != queue.Listeners() {
		t.Fatalf("listeners: %d  expected: %d", queue.Listeners(), listeners)
	}

	var l [listeners]int
	var wg sync.WaitGroup

	for i := 0; i < listeners; i += 1 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for _, command := range commands {
				received := <-channels[n]
				if received.Command != command {
					t.Errorf("actual: %q  expected: %q", received.Command, command)
				} else {
					l[n] += 1
				}
			}
		}(i)
	}

	for _, command := range commands {
		queue.Send(command, nil)
	}

	wg.Wait()
	for i, n := range l {
		if n != len(commands) {
			t.Errorf("listener[%d] received: %d  expected: %d", i, n, len(commands))
		}
	}
}

func TestBroadcastRelease(t *testing.T) {
	queue := messagebus.NewBroadcast()

	c := queue.Chan(1)
	queue.Release(c)

	if 0 != queue.Listeners() {
		t.Errorf("listeners: %d  expected: 0", queue.Listeners())
	}
	if _, ok := <-c; ok {
		t.Error("released channel is still open")
	}

	// must not panic after release
	queue.Send("after", nil)
}

func TestBroadcastDropsForFullListener(t *testing.T) {
	queue := messagebus.NewBroadcast()

	c := queue.Chan(1)
	queue.Send("first", nil)
	queue.Send("second", nil)

	if 1 != queue.Dropped() {
		t.Errorf("dropped: %d  expected: 1", queue.Dropped())
	}
	if m := <-c; "first" != m.Command {
		t.Errorf("actual: %q  expected: %q", m.Command, "first")
	}
}
