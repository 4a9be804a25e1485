// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"testing"

	"github.com/bitmark-inc/fractiond/fault"
)

var (
	ErrExistsOne       = fault.ExistsError("exists one ")
	ErrExpiredOne      = fault.ExpiredError("expired one")
	ErrInsufficientOne = fault.InsufficientError("insufficient one")
	ErrInvalidOne      = fault.InvalidError("invalid one")
	ErrNotFoundOne     = fault.NotFoundError("not found one")
	ErrPausedOne       = fault.PausedError("paused one")
	ErrProcessOne      = fault.ProcessError("process one")
	ErrReentrancyOne   = fault.ReentrancyError("reentrancy one")
	ErrUnauthorisedOne = fault.UnauthorisedError("unauthorised one")
)

// test that each error belongs to exactly one class
func TestClasses(t *testing.T) {
	errorList := []struct {
		err          error
		exists       bool
		expired      bool
		insufficient bool
		invalid      bool
		notFound     bool
		paused       bool
		process      bool
		reentrancy   bool
		unauthorised bool
		kind         string
	}{
		{ErrExistsOne, true, false, false, false, false, false, false, false, false, "Conflict"},
		{ErrExpiredOne, false, true, false, false, false, false, false, false, false, "Expired"},
		{ErrInsufficientOne, false, false, true, false, false, false, false, false, false, "InsufficientResource"},
		{ErrInvalidOne, false, false, false, true, false, false, false, false, false, "InvalidInput"},
		{ErrNotFoundOne, false, false, false, false, true, false, false, false, false, "NotFound"},
		{ErrPausedOne, false, false, false, false, false, true, false, false, false, "SystemPaused"},
		{ErrProcessOne, false, false, false, false, false, false, true, false, false, "Process"},
		{ErrReentrancyOne, false, false, false, false, false, false, false, true, false, "ReentrancyDetected"},
		{ErrUnauthorisedOne, false, false, false, false, false, false, false, false, true, "Unauthorized"},
		{errors.New("plain"), false, false, false, false, false, false, false, false, false, "Process"},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrExpired(err) != e.expired {
			t.Errorf("%d: expected 'expired' == %v for err = %v", i, e.expired, err)
		}
		if fault.IsErrInsufficient(err) != e.insufficient {
			t.Errorf("%d: expected 'insufficient' == %v for err = %v", i, e.insufficient, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrPaused(err) != e.paused {
			t.Errorf("%d: expected 'paused' == %v for err = %v", i, e.paused, err)
		}
		if fault.IsErrProcess(err) != e.process && e.kind != "Process" {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrReentrancy(err) != e.reentrancy {
			t.Errorf("%d: expected 'reentrancy' == %v for err = %v", i, e.reentrancy, err)
		}
		if fault.IsErrUnauthorised(err) != e.unauthorised {
			t.Errorf("%d: expected 'unauthorised' == %v for err = %v", i, e.unauthorised, err)
		}
		if kind := fault.Kind(err); kind != e.kind {
			t.Errorf("%d: kind: %q  expected: %q", i, kind, e.kind)
		}
	}
}

func TestKindOfNil(t *testing.T) {
	if kind := fault.Kind(nil); "" != kind {
		t.Errorf("kind of nil: %q  expected empty", kind)
	}
}
