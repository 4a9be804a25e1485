// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"io/ioutil"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fractiond/counter"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/rpc/certificate"
	"github.com/bitmark-inc/fractiond/rpc/fixtures"
	"github.com/bitmark-inc/fractiond/rpc/listeners"
	"github.com/bitmark-inc/fractiond/rpc/node"
	"github.com/bitmark-inc/fractiond/rpc/server"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func tlsConfig(t *testing.T) (*tls.Config, [32]byte, func()) {
	dir, err := ioutil.TempDir("", "listeners")
	assert.Nil(t, err, "temp dir")

	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")
	err = certificate.Generate("test", cer, key, []string{"127.0.0.1"})
	assert.Nil(t, err, "generate certificate")

	c, fin, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Nil(t, err, "load certificate")
	return c, fin, func() { os.RemoveAll(dir) }
}

func dial(t *testing.T, l listeners.Listener) *rpc.Client {
	addresses := l.Addresses()
	assert.Equal(t, 1, len(addresses), "one address")

	conn, err := tls.Dial("tcp", addresses[0].String(), &tls.Config{InsecureSkipVerify: true})
	assert.Nil(t, err, "dial")
	return jsonrpc.NewClient(conn)
}

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	c, fin, cleanup := tlsConfig(t)
	defer cleanup()

	s := rpc.NewServer()
	assert.Nil(t, s.Register(Add{}), "register")

	count := counter.Counter(0)
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
	}
	l, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), &count, s, c, fin)
	assert.Nil(t, err, "new listener")
	assert.Nil(t, l.Serve(), "serve")
	defer l.Stop()

	client := dial(t, l)
	defer client.Close()

	var reply int
	err = client.Call("Add.Add", &AddArg{A: 2, B: 3}, &reply)
	assert.Nil(t, err, "call")
	assert.Equal(t, 5, reply, "sum")
}

func TestNodeServices(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	n, err := fixtures.NewNode()
	assert.Nil(t, err, "node")
	defer n.Close()

	c, fin, cleanup := tlsConfig(t)
	defer cleanup()

	log := logger.New(fixtures.LogCategory)
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
	}
	l, err := listeners.NewRPC(&con, log, n.Services.Clients, server.Create(log, n.Services), c, fin)
	assert.Nil(t, err, "new listener")
	assert.Nil(t, l.Serve(), "serve")
	defer l.Stop()

	client := dial(t, l)
	defer client.Close()

	var info node.InfoReply
	err = client.Call("Node.Info", &node.InfoArguments{}, &info)
	assert.Nil(t, err, "info")
	assert.Equal(t, "test", info.Version, "version")
	assert.Equal(t, uint64(1), info.RPCs, "this connection")
	assert.True(t, info.LastEvent > 0, "setup events recorded")
}

func TestNewRPCErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	count := counter.Counter(0)
	s := rpc.NewServer()

	for _, tc := range []struct {
		con listeners.RPCConfiguration
		err error
	}{
		{listeners.RPCConfiguration{MaximumConnections: 0, Listen: []string{"127.0.0.1:2130"}}, fault.MissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 5}, fault.MissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 5, Listen: []string{"localhost:2130"}}, fault.InvalidIpAddress},
		{listeners.RPCConfiguration{MaximumConnections: 5, Listen: []string{""}}, fault.InvalidIpAddress},
		{listeners.RPCConfiguration{MaximumConnections: 5, Listen: []string{"*:2130", "[::1]:2130"}}, nil},
	} {
		_, err := listeners.NewRPC(&tc.con, log, &count, s, &tls.Config{}, [32]byte{})
		assert.Equal(t, tc.err, err, "configuration: %+v", tc.con)
	}
}
