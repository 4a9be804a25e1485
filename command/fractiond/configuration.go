// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/configuration"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/rpc/listeners"
	"github.com/bitmark-inc/fractiond/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "fractiond.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "fractiond.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10

	defaultMinConsensus    = 2
	defaultUpdateFrequency = 3600 // seconds
	defaultSweepInterval   = 600  // seconds
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - leveldb location
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// MarketplaceType - first start settings for the marketplace
type MarketplaceType struct {
	Admin          string `gluamapper:"admin" json:"admin"`
	FeeCollector   string `gluamapper:"fee_collector" json:"fee_collector"`
	FeeBasisPoints uint64 `gluamapper:"fee_basis_points" json:"fee_basis_points"`
}

// CommitteeType - first start settings for the oracle committee
type CommitteeType struct {
	Admin           string   `gluamapper:"admin" json:"admin"`
	Oracles         []string `gluamapper:"oracles" json:"oracles"`
	MinConsensus    uint64   `gluamapper:"min_consensus" json:"min_consensus"`
	UpdateFrequency uint64   `gluamapper:"update_frequency" json:"update_frequency"` // seconds
	SweepInterval   uint64   `gluamapper:"sweep_interval" json:"sweep_interval"`     // seconds, zero disables
	Sweeper         string   `gluamapper:"sweeper" json:"sweeper"`
}

// Configuration - the contents of the configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	VerifyDomains bool         `gluamapper:"verify_domains" json:"verify_domains"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	ClientRPC   listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Marketplace MarketplaceType            `gluamapper:"marketplace" json:"marketplace"`
	Committee   CommitteeType              `gluamapper:"committee" json:"committee"`
	Logging     logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// bootstrap settings decoded from their text form
type bootstrap struct {
	marketAdmin     account.Address
	feeCollector    account.Address
	committeeAdmin  account.Address
	oracles         []account.Address
	updateFrequency time.Duration
	sweepInterval   time.Duration
	sweeper         account.Address
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		VerifyDomains: true,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Committee: CommitteeType{
			MinConsensus:    defaultMinConsensus,
			UpdateFrequency: defaultUpdateFrequency,
			SweepInterval:   defaultSweepInterval,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// decode the addresses of the first start settings
//
// blank marketplace or committee admin means that component is
// expected to be initialised already
func (options *Configuration) bootstrap() (*bootstrap, error) {
	b := &bootstrap{
		updateFrequency: time.Duration(options.Committee.UpdateFrequency) * time.Second,
		sweepInterval:   time.Duration(options.Committee.SweepInterval) * time.Second,
	}

	optional := []struct {
		text    string
		address *account.Address
	}{
		{options.Marketplace.Admin, &b.marketAdmin},
		{options.Marketplace.FeeCollector, &b.feeCollector},
		{options.Committee.Admin, &b.committeeAdmin},
		{options.Committee.Sweeper, &b.sweeper},
	}
	for _, item := range optional {
		if "" == item.text {
			continue
		}
		a, err := account.FromBase58(item.text)
		if nil != err {
			return nil, fmt.Errorf("address: %q  error: %s", item.text, err)
		}
		*item.address = a
	}

	if !b.marketAdmin.IsZero() && b.feeCollector.IsZero() {
		return nil, fault.MissingParameters
	}

	for _, s := range options.Committee.Oracles {
		a, err := account.FromBase58(s)
		if nil != err {
			return nil, fmt.Errorf("oracle: %q  error: %s", s, err)
		}
		b.oracles = append(b.oracles, a)
	}
	if !b.committeeAdmin.IsZero() && 0 == len(b.oracles) {
		return nil, fault.MissingParameters
	}

	// the sweeper's identity only appears in events
	if b.sweeper.IsZero() {
		b.sweeper = b.committeeAdmin
	}
	return b, nil
}
