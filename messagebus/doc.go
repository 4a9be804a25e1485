// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - broadcast of messages between components
//
// A BroadcastQueue copies each message to every current listener and
// drops it if a listener is not keeping up.
package messagebus
