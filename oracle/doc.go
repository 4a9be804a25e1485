// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package oracle - valuation agreement by a committee of oracles
//
// For each asset at most one proposal is pending.  The proposer's vote
// is counted at submission; when the votes reach the minimum consensus
// the valuation is written to the registry, appended to the asset's
// history and the proposal removed.  A proposal not agreed within 24
// hours is expired and must be removed with CleanupExpired before a
// new one can be made.  Expiry never applies or discards anything by
// itself.
package oracle
