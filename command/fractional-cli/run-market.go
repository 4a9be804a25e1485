// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/fractiond/rpc/marketplace"
)

func runSell(c *cli.Context) error {
	seller, err := checkActor(meta(c))
	if nil != err {
		return err
	}
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	price := c.Uint64("price")
	if 0 == price {
		return ErrRequiredPrice
	}
	n, err := checkAmount(c.Uint64("shares"))
	if nil != err {
		return err
	}

	arguments := marketplace.CreateArguments{
		Seller:        seller,
		Asset:         ref,
		PricePerShare: price,
		Shares:        n,
	}
	var reply marketplace.CreateReply
	return call(c, "Market.CreateListing", &arguments, &reply)
}

func runCancel(c *cli.Context) error {
	seller, err := checkActor(meta(c))
	if nil != err {
		return err
	}
	id := c.Uint64("listing")
	if 0 == id {
		return ErrRequiredListing
	}
	var reply marketplace.Empty
	return call(c, "Market.CancelListing", &marketplace.SellerArguments{Seller: seller, ListingId: id}, &reply)
}

// one listing, or sweep the book: all or nothing unless partial
func runBuy(c *cli.Context) error {
	buyer, err := checkActor(meta(c))
	if nil != err {
		return err
	}
	n, err := checkAmount(c.Uint64("shares"))
	if nil != err {
		return err
	}

	var reply marketplace.TradesReply

	if id := c.Uint64("listing"); 0 != id {
		arguments := marketplace.BuyArguments{
			Buyer:     buyer,
			ListingId: id,
			Shares:    n,
		}
		return call(c, "Market.Buy", &arguments, &reply)
	}

	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	arguments := marketplace.SweepArguments{
		Buyer:  buyer,
		Asset:  ref,
		Shares: n,
		Price:  c.Uint64("max-price"),
	}
	if c.Bool("partial") {
		if 0 == arguments.Price {
			return ErrRequiredPrice
		}
		return call(c, "Market.LimitBuy", &arguments, &reply)
	}
	return call(c, "Market.MarketBuy", &arguments, &reply)
}

func runBook(c *cli.Context) error {
	ref, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	var reply marketplace.ListingsReply
	return call(c, "Market.Active", &marketplace.ListingsArguments{Asset: ref, Count: c.Int("count")}, &reply)
}
