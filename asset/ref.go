// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/fractiond/fault"
)

// RefLength - number of bytes in a reference
const RefLength = 32

// Ref - stable identifier of one tokenized asset
type Ref [RefLength]byte

// NewRef - reference for a domain name
func NewRef(domain string) Ref {
	return Ref(sha3.Sum256([]byte(NormaliseDomain(domain))))
}

// NormaliseDomain - lower case without surrounding space or trailing dot
func NormaliseDomain(domain string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
}

// RefFromString - decode the hex form
func RefFromString(s string) (Ref, error) {
	var r Ref
	buffer, err := hex.DecodeString(s)
	if nil != err || RefLength != len(buffer) {
		return r, fault.InvalidAssetReference
	}
	copy(r[:], buffer)
	return r, nil
}

// RefFromBytes - reference from raw bytes
func RefFromBytes(b []byte) (Ref, error) {
	var r Ref
	if RefLength != len(b) {
		return r, fault.InvalidAssetReference
	}
	copy(r[:], b)
	return r, nil
}

// Bytes - raw bytes
func (r Ref) Bytes() []byte {
	return r[:]
}

// String - hex form
func (r Ref) String() string {
	return hex.EncodeToString(r[:])
}

// MarshalText - convert to hex JSON form
func (r Ref) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText - convert from hex JSON form
func (r *Ref) UnmarshalText(s []byte) error {
	decoded, err := RefFromString(string(s))
	if nil != err {
		return err
	}
	*r = decoded
	return nil
}
