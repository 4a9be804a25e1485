// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package events - RPC polling of the event log
package events

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/rpc/ratelimit"
)

const (
	rateLimitEvents = 200
	rateBurstEvents = 1000

	// MaximumEventsCount - records returned by one call
	MaximumEventsCount = 1000
)

// Events - type for RPC
type Events struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Events  *event.Log
}

// New - create the events service
func New(log *logger.L, events *event.Log) *Events {
	return &Events{
		Log:     log,
		Limiter: ratelimit.New(rateLimitEvents, rateBurstEvents),
		Events:  events,
	}
}

// SinceArguments - page after a known id
type SinceArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// SinceReply - records and the value to pass as the next Start
type SinceReply struct {
	Records   []event.Record `json:"records"`
	NextStart uint64         `json:"nextStart,string"`
}

// Since - records with id greater than Start
func (e *Events) Since(arguments *SinceArguments, reply *SinceReply) error {
	if err := ratelimit.LimitN(e.Limiter, arguments.Count, MaximumEventsCount); nil != err {
		return err
	}

	records, err := e.Events.Since(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	reply.Records = records
	reply.NextStart = arguments.Start
	if n := len(records); n > 0 {
		reply.NextStart = records[n-1].Id
	}
	return nil
}
