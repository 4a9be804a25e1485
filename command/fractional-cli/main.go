// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fractiond/account"
)

type metadata struct {
	connect string
	actor   account.Address
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "fractional-cli"
	app.Usage = "client for the fractional share ledger, marketplace and valuation oracle"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2150",
			Usage:  " fractiond `HOST:PORT`",
			EnvVar: "FRACTIOND_CONNECT",
		},
		cli.StringFlag{
			Name:   "as, a",
			Value:  "",
			Usage:  " acting account `ADDRESS` as forwarded by the relay",
			EnvVar: "FRACTIOND_ACCOUNT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "display node information",
			Action: runInfo,
		},
		{
			Name:   "events",
			Usage:  "list event records",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " list records after event `ID`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum records `COUNT`",
				},
			},
			Action: runEvents,
		},
		{
			Name:      "register",
			Usage:     "register a domain as a fractional asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "domain, d",
					Value: "",
					Usage: "*domain `NAME`",
				},
				cli.Uint64Flag{
					Name:  "supply, s",
					Value: 0,
					Usage: "*total fractional `SHARES`",
				},
			},
			Action: runRegister,
		},
		{
			Name:      "asset",
			Usage:     "display an asset and its valuation",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
			},
			Action: runAsset,
		},
		{
			Name:      "trading",
			Usage:     "enable or disable trading of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.BoolFlag{
					Name:  "disable",
					Usage: " disable instead of enable",
				},
			},
			Action: runTrading,
		},
		{
			Name:      "mint",
			Usage:     "create the share ledger of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.Uint64Flag{
					Name:  "shares, s",
					Value: 0,
					Usage: "*total `SHARES`, must match the registered supply",
				},
			},
			Action: runMint,
		},
		{
			Name:      "transfer",
			Usage:     "transfer shares to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*receiving `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "amount, n",
					Value: 0,
					Usage: "*number of `SHARES`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "approve",
			Usage:     "allow another account to move shares",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.StringFlag{
					Name:  "spender, s",
					Value: "",
					Usage: "*spending `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "amount, n",
					Value: 0,
					Usage: " allowance in `SHARES`, zero removes it",
				},
			},
			Action: runApprove,
		},
		{
			Name:      "balance",
			Usage:     "display shares held",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " holder `ADDRESS` [default acting account]",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "holders",
			Usage:     "list holders of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum holders `COUNT`",
				},
			},
			Action: runHolders,
		},
		{
			Name:      "deposit",
			Usage:     "credit the acting account's payment balance",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "amount, n",
					Value: 0,
					Usage: "*payment `UNITS`",
				},
			},
			Action: runDeposit,
		},
		{
			Name:      "sell",
			Usage:     "list shares for sale",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.Uint64Flag{
					Name:  "price, p",
					Value: 0,
					Usage: "*price per share in payment `UNITS`",
				},
				cli.Uint64Flag{
					Name:  "shares, s",
					Value: 0,
					Usage: "*number of `SHARES`",
				},
			},
			Action: runSell,
		},
		{
			Name:      "cancel",
			Usage:     "cancel a listing",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				listingFlag,
			},
			Action: runCancel,
		},
		{
			Name:      "buy",
			Usage:     "buy shares from a listing, or from the book when no listing is given",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				listingFlag,
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "+asset `DOMAIN` or hex reference, buy from the cheapest listings",
				},
				cli.Uint64Flag{
					Name:  "shares, s",
					Value: 0,
					Usage: "*number of `SHARES`",
				},
				cli.Uint64Flag{
					Name:  "max-price, m",
					Value: 0,
					Usage: " highest acceptable `PRICE` per share",
				},
				cli.BoolFlag{
					Name:  "partial",
					Usage: " accept a partial fill up to max-price",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "book",
			Usage:     "list the active listings of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum listings `COUNT`",
				},
			},
			Action: runBook,
		},
		{
			Name:      "propose",
			Usage:     "submit a valuation proposal as an oracle",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.Uint64Flag{Name: "score", Usage: "*overall `SCORE` 0..1000"},
				cli.Uint64Flag{Name: "market-value", Usage: "*market `VALUE`"},
				cli.Uint64Flag{Name: "seo", Usage: " SEO authority `0..100`"},
				cli.Uint64Flag{Name: "traffic", Usage: " traffic estimate `0..100`"},
				cli.Uint64Flag{Name: "brand", Usage: " brandability `0..100`"},
				cli.Uint64Flag{Name: "tld", Usage: " TLD rarity `0..100`"},
			},
			Action: runPropose,
		},
		{
			Name:      "vote",
			Usage:     "vote for the pending valuation of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
			},
			Action: runVote,
		},
		{
			Name:      "valuation",
			Usage:     "display the current valuation, history and trend",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
			},
			Action: runValuation,
		},
		{
			Name:   "committee",
			Usage:  "display oracle committee settings",
			Action: runCommittee,
		},
		{
			Name:  "version",
			Usage: "display fractional-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		m := &metadata{
			connect: c.GlobalString("connect"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}

		if s := c.GlobalString("as"); "" != s {
			a, err := account.FromBase58(s)
			if nil != err {
				return err
			}
			m.actor = a
		}

		c.App.Metadata["config"] = m
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
