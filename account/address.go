// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/fractiond/fault"
)

// miscellaneous constants
const (
	AddressLength  = 32
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	ed25519Code   = 0x10

	keyVariant = ed25519Code | publicKeyCode

	encodedLength = 1 + AddressLength + checksumLength
)

// Address - public key of an actor
type Address [AddressLength]byte

// Zero - the unset address
var Zero Address

// FromBase58 - decode and verify a Base58 encoded address
func FromBase58(s string) (Address, error) {
	var a Address

	decoded, err := base58.Decode(s)
	if nil != err || encodedLength != len(decoded) {
		return a, fault.InvalidAddress
	}

	if keyVariant != decoded[0] {
		return a, fault.InvalidAddress
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return a, fault.InvalidChecksum
	}

	copy(a[:], decoded[1:checksumStart])
	return a, nil
}

// FromBytes - address from a raw 32 byte key
func FromBytes(b []byte) (Address, error) {
	var a Address
	if AddressLength != len(b) {
		return a, fault.InvalidAddress
	}
	copy(a[:], b)
	return a, nil
}

// Bytes - raw key bytes
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero - true for the unset address
func (a Address) IsZero() bool {
	return Zero == a
}

// String - Base58 form with variant and checksum
func (a Address) String() string {
	buffer := make([]byte, 0, encodedLength)
	buffer = append(buffer, keyVariant)
	buffer = append(buffer, a[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an address to its Base58 JSON form
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert a Base58 JSON form to an address
func (a *Address) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
