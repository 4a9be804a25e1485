// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/background"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/storage"
)

func TestJournalLogsCommittedRecords(t *testing.T) {
	store, log := setupLog(t)
	defer store.Close()

	j := event.NewJournal(log, 10)
	workers := background.Start(background.Processes{j}, nil)

	for i := 0; i < 3; i += 1 {
		_ = store.Update(func(trx storage.Transaction) error {
			log.Emit(trx, event.Record{Kind: event.Deposit, Amount: uint64(i + 1)})
			return nil
		})
	}

	deadline := time.Now().Add(5 * time.Second)
	for j.Written() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, uint64(3), j.Written(), "records written")

	workers.Stop()

	_ = store.Update(func(trx storage.Transaction) error {
		log.Emit(trx, event.Record{Kind: event.Deposit})
		return nil
	})
	assert.Equal(t, uint64(3), j.Written(), "stopped journal unsubscribed")
	assert.Equal(t, uint64(0), log.Dropped(), "nothing dropped")
}
