// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payment - the payment currency collaborator
//
// Ledger is what the marketplace needs from the currency system: a
// balance and an authenticated transfer that joins the caller's
// storage transaction.  Table is a bookkeeping implementation for the
// daemon and tests; it is credited only by Deposit and does not model
// a real currency.
package payment
