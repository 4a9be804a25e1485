// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/rpc/fixtures"
	"github.com/bitmark-inc/fractiond/rpc/server"
	"github.com/bitmark-inc/fractiond/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestNewServices(t *testing.T) {
	store, err := storage.OpenMemory()
	assert.Nil(t, err, "open")
	defer store.Close()

	s := newServices(logger.New(fixtures.LogCategory), store, false)
	assert.NotNil(t, s.Registry, "registry")
	assert.NotNil(t, s.Shares, "shares")
	assert.NotNil(t, s.Market, "market")
	assert.NotNil(t, s.Committee, "committee")
	assert.NotNil(t, s.Payments, "payments")
	assert.NotNil(t, s.Events, "events")
	assert.Equal(t, version, s.Version, "version")

	assert.NotNil(t, s.Clients, "client counter")
	assert.Equal(t, uint64(0), s.Clients.Uint64(), "no clients yet")
	assert.True(t, s.Clients.IncrementBelow(1), "first client")
	assert.False(t, s.Clients.IncrementBelow(1), "limit reached")

	// every service registers against the shared components
	assert.NotNil(t, server.Create(logger.New(fixtures.LogCategory), s), "server")
}
