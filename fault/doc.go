// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Each error belongs to exactly one class so that callers (RPC,
// CLI, tests) can decide what to report without inspecting text:
//
//   NotFoundError      ledger, allowance, listing or proposal absent
//   UnauthorisedError  wrong admin, owner, oracle, seller or spender
//   InvalidError       zero amount, out of range field, bad argument
//   ExistsError        duplicate proposal, vote, ledger or listing state
//   InsufficientError  balance, allowance or shares available too low
//   ExpiredError       pending proposal past its deadline
//   PausedError        marketplace or committee paused, trading disabled
//   ReentrancyError    critical section already held
//   ProcessError       infrastructure failure (storage, configuration)
package fault
