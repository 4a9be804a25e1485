// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strings"

	"github.com/patrickmn/go-cache"
)

type cacheAction int

const (
	cacheWrite cacheAction = iota
	cacheDelete
)

type cacheEntry struct {
	action cacheAction
	value  []byte
}

// pending writes of the open transaction, keyed by the prefixed key
type overlay struct {
	c *cache.Cache
}

func newOverlay() *overlay {
	return &overlay{
		c: cache.New(cache.NoExpiration, 0),
	}
}

func (o *overlay) put(key []byte, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	o.c.Set(string(key), cacheEntry{action: cacheWrite, value: v}, cache.NoExpiration)
}

func (o *overlay) delete(key []byte) {
	o.c.Set(string(key), cacheEntry{action: cacheDelete}, cache.NoExpiration)
}

// returns: value, found in overlay
func (o *overlay) get(key []byte) ([]byte, bool) {
	obj, ok := o.c.Get(string(key))
	if !ok {
		return nil, false
	}
	return obj.(cacheEntry).value, true
}

// all overlay entries whose key starts with prefix
func (o *overlay) scan(prefix []byte) map[string]cacheEntry {
	p := string(prefix)
	result := make(map[string]cacheEntry)
	for k, item := range o.c.Items() {
		if strings.HasPrefix(k, p) {
			result[k] = item.Object.(cacheEntry)
		}
	}
	return result
}

func (o *overlay) clear() {
	o.c.Flush()
}
