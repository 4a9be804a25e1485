// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/fault"
)

// common errors - keep in alphabetic order
var (
	ErrRequiredAccount = fault.InvalidError("acting account is required, use --as")
	ErrRequiredAddress = fault.InvalidError("address is required")
	ErrRequiredAmount  = fault.InvalidError("amount is required")
	ErrRequiredAsset   = fault.InvalidError("asset is required")
	ErrRequiredDomain  = fault.InvalidError("domain is required")
	ErrRequiredListing = fault.InvalidError("listing id is required")
	ErrRequiredPrice   = fault.InvalidError("price is required")
)

var (
	assetFlag = cli.StringFlag{
		Name:  "asset, a",
		Value: "",
		Usage: "*asset `DOMAIN` or hex reference",
	}
	listingFlag = cli.Uint64Flag{
		Name:  "listing, l",
		Value: 0,
		Usage: "*listing `ID`",
	}
)

// the relay supplies the caller, commands that act need one
func checkActor(m *metadata) (account.Address, error) {
	if m.actor.IsZero() {
		return account.Address{}, ErrRequiredAccount
	}
	return m.actor, nil
}

// an asset is either its 64 hex digit reference or a domain name
func checkAsset(s string) (asset.Ref, error) {
	if "" == s {
		return asset.Ref{}, ErrRequiredAsset
	}
	if ref, err := asset.RefFromString(s); nil == err {
		return ref, nil
	}
	return asset.NewRef(s), nil
}

func checkAddress(s string) (account.Address, error) {
	if "" == s {
		return account.Address{}, ErrRequiredAddress
	}
	return account.FromBase58(s)
}

func checkAmount(n uint64) (uint64, error) {
	if 0 == n {
		return 0, ErrRequiredAmount
	}
	return n, nil
}
