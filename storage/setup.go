// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/logger"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Assets         *PoolHandle `prefix:"A"`
	Valuations     *PoolHandle `prefix:"V"`
	Payments       *PoolHandle `prefix:"C"`
	ShareLedgers   *PoolHandle `prefix:"S"`
	ShareBalances  *PoolHandle `prefix:"Q"`
	Allowances     *PoolHandle `prefix:"W"`
	MarketState    *PoolHandle `prefix:"M"`
	Listings       *PoolHandle `prefix:"L"`
	ActiveListings *PoolHandle `prefix:"X"`
	SellerListings *PoolHandle `prefix:"Y"`
	Committee      *PoolHandle `prefix:"O"`
	Oracles        *PoolHandle `prefix:"R"`
	Pending        *PoolHandle `prefix:"P"`
	History        *PoolHandle `prefix:"H"`
	Events         *PoolHandle `prefix:"E"`
	Sequences      *PoolHandle `prefix:"N"`
	TestData       *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Store - an open database and its pools
type Store struct {
	sync.Mutex // held for the lifetime of a transaction

	log      *logger.L
	db       *leveldb.DB
	readOnly bool

	Pool pools
}

// Open - open up the database connection
//
// this must be called before any pool is accessed
func Open(database string, readOnly bool) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(database, opt)
	if nil != err {
		return nil, err
	}
	return newStore(db, readOnly)
}

// OpenMemory - a store that is lost on Close, used by tests and tools
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return newStore(db, ReadWrite)
}

func newStore(db *leveldb.DB, readOnly bool) (*Store, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	log := logger.New("storage")

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version {
		if readOnly {
			return nil, fmt.Errorf("database is not initialised")
		}
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			return nil, err
		}
	}

	s := &Store{
		log:      log,
		db:       db,
		readOnly: readOnly,
	}

	// this will be a struct type
	poolType := reflect.TypeOf(s.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&s.Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	log.Infof("database open, version: 0x%x", currentDBVersion)

	ok = true // prevent db close
	return s, nil
}

// Close - close the database connection
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

// return the database version or zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// ensure the store is usable
func (s *Store) check() error {
	if nil == s || nil == s.db {
		return fault.StoreNotOpen
	}
	return nil
}
