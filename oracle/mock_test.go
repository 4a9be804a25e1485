// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracle_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/mocks"
	"github.com/bitmark-inc/fractiond/oracle"
	"github.com/bitmark-inc/fractiond/storage"
)

func setupMockRegistry(t *testing.T) (*oracle.Committee, *storage.Store, *gomock.Controller, *mocks.MockRegistry) {
	store, err := storage.OpenMemory()
	assert.Nil(t, err, "open store")

	ctl := gomock.NewController(t)
	reg := mocks.NewMockRegistry(ctl)

	c := oracle.New(store, reg, event.New(store))
	c.SetClock(func() time.Time { return testTime })
	err = c.Initialise(admin, []account.Address{oracleA, oracleB}, 2, testFrequency)
	assert.Nil(t, err, "initialise")
	return c, store, ctl, reg
}

func TestRegistryFailureKeepsProposal(t *testing.T) {
	c, store, ctl, reg := setupMockRegistry(t)
	defer ctl.Finish()
	defer store.Close()

	ref := asset.NewRef("mock.example")
	v := asset.Valuation{Score: 500, MarketValue: 9000, UpdatedAt: testTime.Add(-time.Hour)}

	reg.EXPECT().AssetExists(gomock.Any(), ref).Return(true)
	reg.EXPECT().GetValuationUpdatedAt(gomock.Any(), ref).Return(time.Time{})

	_, err := c.SubmitProposal(oracleA, ref, v)
	assert.Nil(t, err, "submit")

	failure := errors.New("registry unavailable")
	applied := v
	applied.UpdatedAt = testTime
	reg.EXPECT().SetValuation(gomock.Any(), ref, applied).Return(failure)

	_, err = c.Vote(oracleB, ref)
	assert.Equal(t, failure, err, "registry error returned")

	p, err := c.Pending(ref)
	assert.Nil(t, err, "still pending")
	assert.Equal(t, uint64(1), p.Votes, "vote rolled back")

	reg.EXPECT().AssetExists(gomock.Any(), ref).Return(true)
	h, err := c.History(ref)
	assert.Nil(t, err, "history")
	assert.Equal(t, 0, len(h), "nothing recorded")

	reg.EXPECT().SetValuation(gomock.Any(), ref, applied).Return(nil)
	r, err := c.Vote(oracleB, ref)
	assert.Nil(t, err, "retry")
	assert.True(t, r.Applied, "applied")
}

func TestThrottleUsesRegistryTime(t *testing.T) {
	c, store, ctl, reg := setupMockRegistry(t)
	defer ctl.Finish()
	defer store.Close()

	ref := asset.NewRef("mock.example")
	v := asset.Valuation{Score: 500, MarketValue: 9000, UpdatedAt: testTime}

	reg.EXPECT().AssetExists(gomock.Any(), ref).Return(true)
	reg.EXPECT().GetValuationUpdatedAt(gomock.Any(), ref).Return(testTime.Add(-time.Minute))

	_, err := c.SubmitProposal(oracleA, ref, v)
	assert.Equal(t, fault.UpdateTooFrequent, err, "updated a minute ago")

	reg.EXPECT().AssetExists(gomock.Any(), ref).Return(false)
	_, err = c.SubmitProposal(oracleA, ref, v)
	assert.Equal(t, fault.AssetNotFound, err, "unknown asset")
}
