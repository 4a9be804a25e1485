// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/background"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/oracle"
	"github.com/bitmark-inc/fractiond/rpc"
	"github.com/bitmark-inc/fractiond/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	variables := map[string]string{
		"version": version,
	}
	theConfiguration, err := getConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	settings, err := theConfiguration.bootstrap()
	if nil != err {
		exitwithstatus.Message("%s: configuration: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)

	// start the data storage
	log.Info("initialise storage")
	store, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer store.Close()

	// components, all sharing the one store
	services := newServices(log, store, theConfiguration.VerifyDomains)
	events := services.Events
	marketplace := services.Market
	committee := services.Committee

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, events, committee) {
		return
	}

	// first start: create the marketplace and the committee
	if !settings.marketAdmin.IsZero() {
		err := marketplace.Initialise(settings.marketAdmin, settings.feeCollector, theConfiguration.Marketplace.FeeBasisPoints)
		if nil != err && fault.AlreadyInitialised != err {
			log.Criticalf("marketplace initialise error: %s", err)
			exitwithstatus.Message("marketplace initialise error: %s", err)
		}
	}
	if !settings.committeeAdmin.IsZero() {
		err := committee.Initialise(settings.committeeAdmin, settings.oracles, theConfiguration.Committee.MinConsensus, settings.updateFrequency)
		if nil != err && fault.AlreadyInitialised != err {
			log.Criticalf("committee initialise error: %s", err)
			exitwithstatus.Message("committee initialise error: %s", err)
		}
	}

	// background processes
	processes := background.Processes{
		event.NewJournal(events, 0),
	}
	if settings.sweepInterval > 0 {
		processes = append(processes, oracle.NewSweeper(committee, settings.sweeper, settings.sweepInterval))
	}
	if len(options["memory-stats"]) > 0 {
		processes = append(processes, &memoryStats{})
	}
	workers := background.Start(processes, nil)
	defer workers.Stop()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, services)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
