// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - token bucket throttling for RPC handlers
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fractiond/fault"
)

// New - a limiter allowing perSecond requests with the given burst
func New(perSecond float64, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Limit - wait for a single request slot
func Limit(limiter *rate.Limiter) error {
	return LimitN(limiter, 1, 1)
}

// LimitN - wait for count slots
//
// a count outside 1..maximumCount is charged as a single request and
// reported as an invalid count
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	invalid := count <= 0 || count > maximumCount
	if invalid {
		count = 1
	}

	r := limiter.ReserveN(time.Now(), count)
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())

	if invalid {
		return fault.InvalidCount
	}
	return nil
}
