// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// background process logging memory use
type memoryStats struct {
	log *logger.L
}

func (m *memoryStats) Run(args interface{}, shutdown <-chan struct{}) {
	if nil == m.log {
		m.log = logger.New("memory")
	}

	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			m.report()
		}
	}
}

func (m *memoryStats) report() {
	var s runtime.MemStats
	runtime.ReadMemStats(&s)

	text, err := json.Marshal(s)
	if nil != err {
		m.log.Errorf("marshal error: %s", err)
	} else {
		m.log.Debugf("stats: %s", text)
	}
	m.log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M  goroutines: %d",
		s.Alloc/mega, s.TotalAlloc/mega, s.Sys/mega, runtime.NumGoroutine())
}
