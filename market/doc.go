// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - the listing book and trade settlement
//
// A listing offers some of a seller's shares at a fixed price per
// share.  Active listings are indexed by (asset, price, tracking id)
// so that a scan of an asset's index yields the lowest price first
// and, at equal price, the listing that became active first.
//
// Listing states:
//
//   active      - in the index, can be bought
//   sold-out    - shares available reached zero
//   deactivated - withdrawn by the seller, may be activated again
//   frozen      - withdrawn by the admin, may be activated again by the seller
//   cancelled   - withdrawn permanently
//
// A trade pays the seller and the fee collector from the buyer's
// payment balance and moves the shares from seller to buyer, all while
// holding the settlement guard and all within one storage transaction.
package market
