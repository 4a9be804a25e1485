// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fractiond/command/fractional-cli/rpccalls"
)

// connect and run one call, printing the reply
func call(c *cli.Context, method string, arguments interface{}, reply interface{}) error {
	m := meta(c)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	if err := client.Call(method, arguments, reply); nil != err {
		return err
	}
	printJson(m.w, reply)
	return nil
}

func printJson(handle io.Writer, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(handle, "error: %s\n", err)
		return
	}
	fmt.Fprintf(handle, "%s\n", b)
}

func meta(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}
