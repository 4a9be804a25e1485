// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package guard - authorisation checks and the settlement lock
//
// The check functions return nil or the fault describing the violated
// condition, so a caller can abort before changing anything.
//
// Guard is a single process wide critical section around the
// "pay seller, pay fee collector, move shares" steps of a trade.  It
// records whether it is locked, the nesting depth and the caller that
// holds it.  Nothing is persisted.
package guard
