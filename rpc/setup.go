// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/rpc/certificate"
	"github.com/bitmark-inc/fractiond/rpc/listeners"
	"github.com/bitmark-inc/fractiond/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listener listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the client RPC listeners
func Initialise(configuration *listeners.RPCConfiguration, services *server.Services) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, fingerprint, err := certificate.Get(log, tlsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}

	listener, err := listeners.NewRPC(
		configuration,
		log,
		services.Clients,
		server.Create(log, services),
		tlsConfig,
		fingerprint,
	)
	if nil != err {
		return err
	}
	err = listener.Serve()
	if nil != err {
		return err
	}
	globalData.listener = listener

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop accepting connections
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.listener.Stop()
	globalData.listener = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
