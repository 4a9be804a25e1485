// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracle

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/account"
)

// most proposals examined in one sweep
const sweepBatch = 500

// Sweeper - background removal of expired proposals
type Sweeper struct {
	log       *logger.L
	committee *Committee
	caller    account.Address
	interval  time.Duration
}

// NewSweeper - create a sweeper acting as caller
func NewSweeper(committee *Committee, caller account.Address, interval time.Duration) *Sweeper {
	return &Sweeper{
		log:       logger.New("sweeper"),
		committee: committee,
		caller:    caller,
		interval:  interval,
	}
}

// Run - background.Process interface
func (s *Sweeper) Run(args interface{}, shutdown <-chan struct{}) {
	s.log.Infof("starting… interval: %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			if n, err := s.Sweep(); nil != err {
				s.log.Errorf("sweep error: %s", err)
			} else if n > 0 {
				s.log.Infof("removed: %d expired proposals", n)
			}
		}
	}
	s.log.Info("shutting down…")
	s.log.Flush()
}

// Sweep - one pass over all pending proposals
func (s *Sweeper) Sweep() (int, error) {
	refs, err := s.committee.PendingAssets(sweepBatch)
	if nil != err {
		return 0, err
	}
	removed := 0
	for _, ref := range refs {
		ok, err := s.committee.CleanupExpired(s.caller, ref)
		if nil != err {
			s.log.Warnf("asset: %s  cleanup error: %s", ref, err)
			continue
		}
		if ok {
			removed += 1
		}
	}
	return removed, nil
}
