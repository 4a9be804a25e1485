// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the asset registry collaborator
//
// Registry is the view of the asset registry that the share ledger,
// marketplace and oracle committee depend on.  Every call takes the
// caller's storage transaction so that registry reads and the
// valuation write form part of the same unit of work.
//
// Assets is a small storage backed implementation used by the daemon.
// Registration can be gated by a Verifier that checks a DNS TXT
// record proving control of the domain.
package registry
