// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - lock free counters shared between goroutines
//
// used for RPC connection limits and dropped message totals
package counter

import (
	"sync/atomic"
)

// Counter - 64 bit unsigned value updated atomically
type Counter uint64

// Increment - add 1, returns new value
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Decrement - subtract 1, returns new value
func (c *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// IncrementBelow - add 1 only if the result does not exceed limit
//
// returns false and leaves the counter unchanged when at the limit
func (c *Counter) IncrementBelow(limit uint64) bool {
	for {
		current := atomic.LoadUint64((*uint64)(c))
		if current >= limit {
			return false
		}
		if atomic.CompareAndSwapUint64((*uint64)(c), current, current+1) {
			return true
		}
	}
}

// Uint64 - current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IsZero - check if zero
func (c *Counter) IsZero() bool {
	return 0 == atomic.LoadUint64((*uint64)(c))
}
