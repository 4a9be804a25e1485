// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Every read and write goes through a Transaction.  Only one
// transaction is open at a time; writes are collected in a LevelDB
// batch and an overlay cache so that later reads in the same
// transaction see them.  Commit writes the batch atomically, Abort
// drops it, so an operation either has all of its effects or none.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ⧺            = concatenation of byte data
// 3. ref          = asset reference (32 bytes SHA3-256 of the domain name)
// 4. address      = account public key (32 bytes)
// 5. id           = big endian uint64 (8 bytes)
// 6. ordered(...) = github.com/google/orderedcode encoding
//
// Registry:
//
//   A ⧺ ref                     - registered asset
//                                 data: owner ⧺ flags ⧺ fractional supply ⧺ domain name
//   V ⧺ ref                     - current valuation
//                                 data: packed asset.Valuation
//
// Payment:
//
//   C ⧺ address                 - payment currency balance
//                                 data: amount
//
// Share ledger:
//
//   S ⧺ ref                     - ledger header
//                                 data: total shares ⧺ transfer count ⧺ issuer
//   Q ⧺ ref ⧺ address           - share balance (deleted if value becomes zero)
//                                 data: quantity
//   W ⧺ ref ⧺ owner ⧺ spender   - allowance (deleted if value becomes zero)
//                                 data: quantity
//
// Marketplace:
//
//   M                           - marketplace state
//   L ⧺ id                      - listing record, kept after it becomes inactive
//   X ⧺ ordered(ref,price,tid)  - active listing index
//                                 data: listing id
//   Y ⧺ seller ⧺ id             - listings created by a seller
//                                 data: empty
//
// Oracle committee:
//
//   O                           - committee state
//   R ⧺ address                 - authorised oracle
//                                 data: time added
//   P ⧺ ref                     - pending valuation proposal
//   H ⧺ ref                     - valuation history (at most 50 entries)
//
// Events:
//
//   E ⧺ id                      - event record (JSON)
//   N ⧺ name                    - sequence counters
//
// Testing:
//   Z ⧺ key                     - testing data
package storage
