// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/background"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/oracle"
)

func TestSweep(t *testing.T) {
	f := setupFixture(t, 2, testFrequency)
	defer f.store.Close()

	other, err := f.assets.Register(owner, "other.example", testSupply)
	assert.Nil(t, err, "register")

	_, err = f.committee.SubmitProposal(oracleA, f.ref, f.valuation(1000))
	assert.Nil(t, err, "first proposal")

	f.advance(12 * time.Hour)
	_, err = f.committee.SubmitProposal(oracleB, other, f.valuation(2000))
	assert.Nil(t, err, "second proposal")

	s := oracle.NewSweeper(f.committee, admin, time.Minute)

	n, err := s.Sweep()
	assert.Nil(t, err, "sweep")
	assert.Equal(t, 0, n, "nothing expired")

	f.advance(12*time.Hour + time.Second)
	n, err = s.Sweep()
	assert.Nil(t, err, "sweep")
	assert.Equal(t, 1, n, "first expired")

	_, err = f.committee.Pending(f.ref)
	assert.Equal(t, fault.PendingNotFound, err, "first removed")
	_, err = f.committee.Pending(other)
	assert.Nil(t, err, "second kept")
}

func TestSweeperStops(t *testing.T) {
	f := setupFixture(t, 2, testFrequency)
	defer f.store.Close()

	s := oracle.NewSweeper(f.committee, admin, time.Millisecond)
	bg := background.Start(background.Processes{s}, nil)
	time.Sleep(10 * time.Millisecond)
	bg.Stop()
}
