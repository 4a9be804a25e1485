// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package guard

import (
	"sync"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/fault"
)

// Guard - the global settlement lock
type Guard struct {
	sync.Mutex
	locked bool
	depth  uint64
	holder account.Address
}

// New - an unlocked guard
func New() *Guard {
	return &Guard{}
}

// Acquire - enter the critical section
//
// fails if any caller already holds it, including the same caller
func (g *Guard) Acquire(caller account.Address) error {
	g.Lock()
	defer g.Unlock()

	if g.locked {
		return fault.ReentrancyDetected
	}
	g.locked = true
	g.depth += 1
	g.holder = caller
	return nil
}

// Release - leave the critical section
func (g *Guard) Release(caller account.Address) error {
	g.Lock()
	defer g.Unlock()

	if !g.locked {
		return fault.NotLocked
	}
	if g.holder != caller {
		return fault.NotLockHolder
	}
	g.depth -= 1
	if 0 == g.depth {
		g.locked = false
	}
	return nil
}

// IsLocked - true while a settlement is in progress
func (g *Guard) IsLocked() bool {
	g.Lock()
	defer g.Unlock()
	return g.locked
}

// HeldBy - the caller that last acquired the lock and whether it is still held
func (g *Guard) HeldBy() (account.Address, bool) {
	g.Lock()
	defer g.Unlock()
	return g.holder, g.locked
}

// Depth - current nesting depth
func (g *Guard) Depth() uint64 {
	g.Lock()
	defer g.Unlock()
	return g.depth
}
