// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
)

// PoolHandle - one prefixed table
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Prefix - the pool prefix byte
func (p *PoolHandle) Prefix() byte {
	return p.prefix
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Key - join key components
func Key(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

// Uint64Bytes - big endian form of a number, used for keys and values
func Uint64Bytes(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}
