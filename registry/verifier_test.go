// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/registry"
)

func TestDNSVerifier(t *testing.T) {
	records := map[string][]string{
		"good.example": {
			"v=spf1 -all",
			registry.ProofText(owner),
		},
		"other.example": {
			"fractiond-verification=" + other.String(),
		},
		"garbage.example": {
			"fractiond-verification=not-an-address",
		},
	}
	lookup := func(name string) ([]string, error) {
		txts, ok := records[name]
		if !ok {
			return nil, errors.New("NXDOMAIN")
		}
		return txts, nil
	}

	v := registry.NewDNSVerifier(lookup)

	assert.Nil(t, v.Verify("good.example", owner), "matching proof")
	assert.Equal(t, fault.ProofNotFound, v.Verify("other.example", owner), "proof for other owner")
	assert.Equal(t, fault.ProofNotFound, v.Verify("garbage.example", owner), "malformed proof")
	assert.Equal(t, fault.ProofNotFound, v.Verify("missing.example", owner), "lookup failure")
}

func TestRegisterRequiresProof(t *testing.T) {
	lookup := func(name string) ([]string, error) {
		return []string{"fractiond-verification=" + owner.String()}, nil
	}

	store, assets := setupAssets(t, registry.NewDNSVerifier(lookup))
	defer store.Close()

	_, err := assets.Register(other, "proof.example", 10)
	assert.Equal(t, fault.ProofNotFound, err, "wrong owner")

	_, err = assets.Register(owner, "proof.example", 10)
	assert.Nil(t, err, "verified owner")
}
