// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/util"
)

func TestEnsureAbsolute(t *testing.T) {
	tests := []struct {
		directory string
		path      string
		expected  string
	}{
		{"/var/lib/fractiond", "data", "/var/lib/fractiond/data"},
		{"/var/lib/fractiond", "./log/../data", "/var/lib/fractiond/data"},
		{"/var/lib/fractiond", "/etc/fractiond.conf", "/etc/fractiond.conf"},
		{"/var/lib/fractiond", "/tmp//x/", "/tmp/x"},
	}

	for i, item := range tests {
		actual := util.EnsureAbsolute(item.directory, item.path)
		assert.Equal(t, item.expected, actual, "%d: path", i)
	}
}

func TestEnsureFileExists(t *testing.T) {
	dir, err := os.MkdirTemp("", "util-test")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	name := filepath.Join(dir, "present")
	assert.False(t, util.EnsureFileExists(name), "before create")

	err = os.WriteFile(name, []byte("x"), 0600)
	assert.Nil(t, err, "write")
	assert.True(t, util.EnsureFileExists(name), "after create")
}
