// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/guard"
)

var (
	alice = account.Address{0x01}
	bob   = account.Address{0x02}
)

func TestAcquireRelease(t *testing.T) {
	g := guard.New()

	assert.False(t, g.IsLocked(), "initially unlocked")

	err := g.Acquire(alice)
	assert.Nil(t, err, "first acquire")
	assert.True(t, g.IsLocked(), "locked")
	assert.Equal(t, uint64(1), g.Depth(), "depth")

	holder, held := g.HeldBy()
	assert.True(t, held, "held")
	assert.Equal(t, alice, holder, "holder")

	err = g.Acquire(alice)
	assert.Equal(t, fault.ReentrancyDetected, err, "nested acquire by same caller")
	assert.True(t, fault.IsErrReentrancy(err), "reentrancy class")

	err = g.Acquire(bob)
	assert.Equal(t, fault.ReentrancyDetected, err, "acquire by other caller")

	err = g.Release(bob)
	assert.Equal(t, fault.NotLockHolder, err, "release by other caller")
	assert.True(t, g.IsLocked(), "still locked")

	err = g.Release(alice)
	assert.Nil(t, err, "release by holder")
	assert.False(t, g.IsLocked(), "unlocked")
	assert.Equal(t, uint64(0), g.Depth(), "depth after release")

	err = g.Release(alice)
	assert.Equal(t, fault.NotLocked, err, "release when unlocked")
}

func TestChecks(t *testing.T) {
	assert.Nil(t, guard.IsAdmin(alice, alice), "admin")
	assert.Equal(t, fault.AdminRequired, guard.IsAdmin(bob, alice), "not admin")

	assert.Nil(t, guard.IsOwner(true), "owner")
	assert.Equal(t, fault.OwnerRequired, guard.IsOwner(false), "not owner")

	assert.Nil(t, guard.IsOracle(true), "oracle")
	assert.Equal(t, fault.OracleNotAuthorised, guard.IsOracle(false), "not oracle")

	assert.Nil(t, guard.IsSeller(alice, alice), "seller")
	assert.Equal(t, fault.SellerRequired, guard.IsSeller(bob, alice), "not seller")

	assert.Nil(t, guard.NotSelf(alice, bob), "different")
	assert.Equal(t, fault.SelfOperation, guard.NotSelf(alice, alice), "same")

	assert.Nil(t, guard.NotPaused(false, fault.MarketplacePaused), "running")
	assert.Equal(t, fault.MarketplacePaused, guard.NotPaused(true, fault.MarketplacePaused), "paused")

	assert.Nil(t, guard.NonZero(1), "non zero")
	assert.Equal(t, fault.ZeroAmount, guard.NonZero(0), "zero")

	assert.Nil(t, guard.Sufficient(10, 10, fault.InsufficientShares), "exact")
	assert.Equal(t, fault.InsufficientAllowance, guard.Sufficient(9, 10, fault.InsufficientAllowance), "short")
}
