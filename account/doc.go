// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - identities of the actors in the system
//
// An address is the 32 byte public key of a share holder, seller,
// buyer, oracle or admin.  The text form is Base58 of:
//
//   key variant (1 byte) ⧺ public key (32 bytes) ⧺ checksum (4 bytes)
//
// where checksum is the first 4 bytes of SHA3-256(variant ⧺ key).
// Signature verification is performed by the relay before an
// operation reaches this system so only the identity is kept here.
package account
