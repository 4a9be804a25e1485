// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - client JSON-RPC over TLS
//
// services exposed:
//
//   Registry.*     asset registration and trading switch
//   Shares.*       share ledger transfers and allowances
//   Market.*       listings, purchases and marketplace administration
//   Oracle.*       valuation proposals, votes and committee administration
//   Payments.*     payment balances
//   Events.*       event log replay
//   Node.*         node status
//
// every call carries the acting address in its arguments, callers
// are expected to reach the node through an authenticating relay
package rpc
