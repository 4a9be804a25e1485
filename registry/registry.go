// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"time"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/storage"
)

//go:generate mockgen -source=registry.go -destination=../mocks/registry.go -package=mocks

// Registry - read and valuation access to registered assets
type Registry interface {
	AssetExists(storage.Transaction, asset.Ref) bool
	IsOwner(storage.Transaction, asset.Ref, account.Address) bool
	TradingEnabled(storage.Transaction, asset.Ref) bool
	FractionalSupply(storage.Transaction, asset.Ref) uint64
	GetValuation(storage.Transaction, asset.Ref) (asset.Valuation, error)
	SetValuation(storage.Transaction, asset.Ref, asset.Valuation) error
	GetValuationUpdatedAt(storage.Transaction, asset.Ref) time.Time
}
