// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - start and stop long running goroutines
package background

import (
	"sync"
)

// Process - a background task, Run must return soon after shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a running set of processes
type T struct {
	sync.Mutex
	shutdown chan struct{}
	wg       sync.WaitGroup
	stopped  bool
}

// Start - run each process in its own goroutine
func Start(processes Processes, args interface{}) *T {
	t := &T{
		shutdown: make(chan struct{}),
	}

	for _, p := range processes {
		t.wg.Add(1)
		go func(p Process) {
			defer t.wg.Done()
			p.Run(args, t.shutdown)
		}(p)
	}
	return t
}

// Stop - signal every process and wait for all of them to return
//
// calling Stop more than once is harmless
func (t *T) Stop() {
	if nil == t {
		return
	}

	t.Lock()
	if !t.stopped {
		t.stopped = true
		close(t.shutdown)
	}
	t.Unlock()

	t.wg.Wait()
}
