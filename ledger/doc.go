// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - fractional share balances and allowances
//
// Each asset has one ledger created with its entire supply credited to
// the issuer.  The supply never changes afterwards, so the balances of
// an asset always sum to its total shares.
//
// Balances and allowances are stored individually and deleted when
// they reach zero, so an absent entry reads as zero and the holders of
// an asset are found by a prefix scan.
package ledger
