// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - TLS JSON-RPC listeners
package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/counter"
	"github.com/bitmark-inc/fractiond/fault"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
)

// Listener - a started or startable server
type Listener interface {
	Serve() error
	Addresses() []net.Addr
	Stop()
}

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

type rpcListener struct {
	sync.Mutex
	log             *logger.L
	listeners       []net.Listener
	count           *counter.Counter
	server          *rpc.Server
	maxConnections  uint64
	tlsConfig       *tls.Config
	ipType          []string
	listenIPAndPort []string
	wg              sync.WaitGroup
}

// NewRPC - validate the configuration and prepare a listener
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	listen := make([]string, len(configuration.Listen))
	copy(listen, configuration.Listen)

	// validate all listen addresses
	ipType, err := parseListenAddress(listen, log)
	if nil != err {
		return nil, err
	}

	return &rpcListener{
		log:             log,
		maxConnections:  configuration.MaximumConnections,
		listenIPAndPort: listen,
		ipType:          ipType,
		server:          server,
		count:           count,
		tlsConfig:       tlsConfig,
	}, nil
}

// Serve - open every listen address and accept in the background
func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for i, listen := range r.listenIPAndPort {
		r.log.Infof("starting RPC server: %s", listen)
		l, err := tls.Listen(r.ipType[i], listen, r.tlsConfig)
		if nil != err {
			r.log.Errorf("rpc server listen error: %s", err)
			for _, opened := range r.listeners {
				_ = opened.Close()
			}
			r.listeners = nil
			return err
		}
		r.listeners = append(r.listeners, l)

		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.accept(l)
		}()
	}
	return nil
}

// Addresses - bound addresses, useful when listening on port zero
func (r *rpcListener) Addresses() []net.Addr {
	r.Lock()
	defer r.Unlock()

	addresses := make([]net.Addr, 0, len(r.listeners))
	for _, l := range r.listeners {
		addresses = append(addresses, l.Addr())
	}
	return addresses
}

// Stop - close the listen sockets and wait for the accept loops
//
// connections already being served run to completion
func (r *rpcListener) Stop() {
	r.Lock()
	for _, l := range r.listeners {
		_ = l.Close()
	}
	r.listeners = nil
	r.Unlock()

	r.wg.Wait()
}

func (r *rpcListener) accept(listen net.Listener) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			r.log.Infof("rpc accept terminated: %s", err)
			break
		}
		if !r.count.IncrementBelow(r.maxConnections) {
			r.log.Warnf("connection limit: %d reached, rejecting: %s", r.maxConnections, conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		go func() {
			r.server.ServeCodec(jsonrpc.NewServerCodec(conn))
			_ = conn.Close()
			r.count.Decrement()
		}()
	}
}

func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		if "" == listen {
			log.Errorf("rpc server listen error: %s", fault.InvalidIpAddress)
			return nil, fault.InvalidIpAddress
		}
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			addrs[i] = "[::]" + ":" + strings.Split(listen, ":")[1]
			listen = "::"
			parsed[i] = "tcp"
		} else if '[' == listen[0] {
			listen = strings.Split(listen[1:], "]:")[0]
			parsed[i] = "tcp6"
		} else {
			listen = strings.Split(listen, ":")[0]
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(listen); nil == ip {
			err := fault.InvalidIpAddress
			log.Errorf("rpc server listen error: %s", err)
			return nil, err
		}
	}

	return parsed, nil
}
