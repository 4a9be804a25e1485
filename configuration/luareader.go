// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/fractiond/fault"
)

// ParseConfigurationFile - read and execute a Lua file and assign
// the results to a configuration structure
//
// variables are made available to the script as global strings
func ParseConfigurationFile(fileName string, config interface{}, variables map[string]string) error {
	L := newState(variables)
	defer L.Close()

	// create the global "arg" table
	// arg[0] = config file
	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	if err := L.DoFile(fileName); nil != err {
		return err
	}
	return mapResult(L, config)
}

// ParseConfigurationString - as ParseConfigurationFile but from a string
func ParseConfigurationString(script string, config interface{}, variables map[string]string) error {
	L := newState(variables)
	defer L.Close()

	if err := L.DoString(script); nil != err {
		return err
	}
	return mapResult(L, config)
}

func newState(variables map[string]string) *lua.LState {
	L := lua.NewState()
	L.OpenLibs()
	for k, v := range variables {
		L.SetGlobal(k, lua.LString(v))
	}
	return L
}

// the value left on the stack must be a table
func mapResult(L *lua.LState, config interface{}) error {
	table, ok := L.Get(L.GetTop()).(*lua.LTable)
	if !ok {
		return fault.MissingParameters
	}

	mapperOption := gluamapper.Option{
		NameFunc: func(s string) string {
			return s
		},
		TagName: "gluamapper",
	}
	mapper := gluamapper.Mapper{Option: mapperOption}
	return mapper.Map(table, config)
}
