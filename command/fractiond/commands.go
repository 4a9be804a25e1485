// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/oracle"
	"github.com/bitmark-inc/fractiond/registry"
	"github.com/bitmark-inc/fractiond/rpc/certificate"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"

	defaultDumpCount = 100
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.Generate("rpc", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "dns-txt", "txt":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing owner address argument")
		}
		owner, err := account.FromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("owner: %q  error: %s", arguments[0], err)
		}
		fmt.Printf("add this TXT record to the domain before registering:\n\n")
		fmt.Printf("  %q\n\n", registry.ProofText(owner))

	case "start", "run":
		return false // continue processing

	case "events", "e", "pending", "p":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...] (rpc)   - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  dns-txt ADDRESS            (txt)    - display the ownership proof to put in a domain TXT record\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  events [START [COUNT]]     (e)      - dump event records as JSON to stdout\n")
		fmt.Printf("\n")

		fmt.Printf("  pending                    (p)      - list assets with an open valuation proposal\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		if _, err := options.bootstrap(); nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the database is open so these commands can read the stored state
func processDataCommand(log *logger.L, arguments []string, events *event.Log, committee *oracle.Committee) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "events", "e":
		start := uint64(0)
		count := defaultDumpCount
		if len(arguments) >= 1 {
			n, err := strconv.ParseUint(arguments[0], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in start event id: %s", err)
			}
			start = n
		}
		if len(arguments) >= 2 {
			n, err := strconv.Atoi(arguments[1])
			if nil != err || n < 1 {
				exitwithstatus.Message("invalid count: %q", arguments[1])
			}
			count = n
		}

		records, err := events.Since(start, count)
		if nil != err {
			exitwithstatus.Message("events error: %s", err)
		}
		log.Infof("dump events from: %d  count: %d", start, len(records))
		printJSON(records)

	case "pending", "p":
		refs, err := committee.PendingAssets(defaultDumpCount)
		if nil != err {
			exitwithstatus.Message("pending error: %s", err)
		}
		for _, ref := range refs {
			p, err := committee.Pending(ref)
			if nil != err {
				log.Warnf("asset: %s  pending error: %s", ref, err)
				continue
			}
			printJSON(p)
		}

	default:
		exitwithstatus.Message("error: no such command: %q", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

func printJSON(item interface{}) {
	b, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		exitwithstatus.Message("marshal error: %s", err)
	}
	fmt.Printf("%s\n", b)
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
