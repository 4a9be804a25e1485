// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/fractiond/rpc/events"
	"github.com/bitmark-inc/fractiond/rpc/node"
)

func runInfo(c *cli.Context) error {
	var reply node.InfoReply
	return call(c, "Node.Info", &node.InfoArguments{}, &reply)
}

func runEvents(c *cli.Context) error {
	arguments := events.SinceArguments{
		Start: c.Uint64("start"),
		Count: c.Int("count"),
	}
	var reply events.SinceReply
	return call(c, "Events.Since", &arguments, &reply)
}
