// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
)

func TestCheckAsset(t *testing.T) {
	ref := asset.NewRef("example.com")

	r, err := checkAsset(ref.String())
	assert.Nil(t, err, "hex reference")
	assert.Equal(t, ref, r, "decoded")

	r, err = checkAsset("Example.COM.")
	assert.Nil(t, err, "domain")
	assert.Equal(t, ref, r, "normalised domain")

	_, err = checkAsset("")
	assert.Equal(t, ErrRequiredAsset, err, "blank")
}

func TestCheckActorAndAddress(t *testing.T) {
	_, err := checkActor(&metadata{})
	assert.Equal(t, ErrRequiredAccount, err, "no actor")

	owner := account.Address{0x01}
	a, err := checkActor(&metadata{actor: owner})
	assert.Nil(t, err, "actor")
	assert.Equal(t, owner, a, "actor returned")

	a, err = checkAddress(owner.String())
	assert.Nil(t, err, "address")
	assert.Equal(t, owner, a, "round trip")

	_, err = checkAddress("")
	assert.Equal(t, ErrRequiredAddress, err, "blank")

	_, err = checkAmount(0)
	assert.Equal(t, ErrRequiredAmount, err, "zero")
}
