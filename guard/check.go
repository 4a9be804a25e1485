// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package guard

import (
	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/fault"
)

// IsAdmin - caller must be the admin
func IsAdmin(caller account.Address, admin account.Address) error {
	if caller != admin {
		return fault.AdminRequired
	}
	return nil
}

// IsOwner - result of a registry ownership lookup
func IsOwner(owner bool) error {
	if !owner {
		return fault.OwnerRequired
	}
	return nil
}

// IsOracle - result of an oracle membership lookup
func IsOracle(authorised bool) error {
	if !authorised {
		return fault.OracleNotAuthorised
	}
	return nil
}

// IsSeller - caller must be the listing seller
func IsSeller(caller account.Address, seller account.Address) error {
	if caller != seller {
		return fault.SellerRequired
	}
	return nil
}

// NotSelf - the two parties of an operation must differ
func NotSelf(a account.Address, b account.Address) error {
	if a == b {
		return fault.SelfOperation
	}
	return nil
}

// NotPaused - err is the paused fault of the particular subsystem
func NotPaused(paused bool, err error) error {
	if paused {
		return err
	}
	return nil
}

// NonZero - amounts must be positive
func NonZero(amount uint64) error {
	if 0 == amount {
		return fault.ZeroAmount
	}
	return nil
}

// Sufficient - have must cover want, err selects balance or allowance
func Sufficient(have uint64, want uint64, err error) error {
	if have < want {
		return err
	}
	return nil
}
