// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package event - the append-only log of state changes
//
// Each state changing operation writes one Record inside its own
// storage transaction, so a record exists exactly when the change was
// committed.  Ids are allocated from a persistent sequence and never
// reused.  After commit the record is published on a broadcast queue
// for subscribers; pollers use Since.
package event
