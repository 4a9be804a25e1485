// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - identity and valuation of a tokenized asset
//
// A tokenized asset is a domain name.  Its reference is the SHA3-256
// digest of the normalised name and keys every share ledger, listing
// index and valuation record.
package asset
