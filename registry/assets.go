// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/miekg/dns"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/event"
	"github.com/bitmark-inc/fractiond/fault"
	"github.com/bitmark-inc/fractiond/guard"
	"github.com/bitmark-inc/fractiond/storage"
)

// Assets - storage backed registry
type Assets struct {
	log      *logger.L
	store    *storage.Store
	events   event.Emitter
	verifier Verifier
	now      func() time.Time
}

// NewAssets - create a registry, a nil verifier accepts every domain
func NewAssets(store *storage.Store, events event.Emitter, verifier Verifier) *Assets {
	return &Assets{
		log:      logger.New("registry"),
		store:    store,
		events:   events,
		verifier: verifier,
		now:      time.Now,
	}
}

// Register - add a domain owned by owner with a fixed fractional supply
//
// a zero supply registers an asset that cannot be fractionalised
func (a *Assets) Register(owner account.Address, domain string, supply uint64) (asset.Ref, error) {
	name := asset.NormaliseDomain(domain)
	if !validName(name) {
		return asset.Ref{}, fault.InvalidDomainName
	}
	if owner.IsZero() {
		return asset.Ref{}, fault.InvalidAddress
	}

	if nil != a.verifier {
		if err := a.verifier.Verify(name, owner); nil != err {
			a.log.Warnf("domain: %q  owner: %s  verification failed: %s", name, owner, err)
			return asset.Ref{}, err
		}
	}

	ref := asset.NewRef(name)
	now := a.now().UTC().Truncate(time.Second)

	err := a.store.Update(func(trx storage.Transaction) error {
		pool := a.store.Pool.Assets
		if trx.Has(pool, ref[:]) {
			return fault.AssetAlreadyRegistered
		}
		info := Info{
			Ref:              ref,
			Name:             name,
			Owner:            owner,
			FractionalSupply: supply,
			RegisteredAt:     now,
		}
		trx.Put(pool, ref[:], info.pack())

		a.events.Emit(trx, event.Record{
			Kind:      event.AssetRegistered,
			Asset:     ref,
			Actor:     owner,
			Amount:    supply,
			Detail:    name,
			Timestamp: now,
		})
		return nil
	})
	if nil != err {
		return asset.Ref{}, err
	}

	a.log.Infof("registered: %q  ref: %s  supply: %d", name, ref, supply)
	return ref, nil
}

// SetTrading - owner enables or disables share trading
func (a *Assets) SetTrading(owner account.Address, ref asset.Ref, enabled bool) error {
	return a.store.Update(func(trx storage.Transaction) error {
		info, err := a.get(trx, ref)
		if nil != err {
			return err
		}
		if err := guard.IsOwner(info.Owner == owner); nil != err {
			return err
		}
		info.TradingEnabled = enabled
		trx.Put(a.store.Pool.Assets, ref[:], info.pack())

		detail := "disabled"
		if enabled {
			detail = "enabled"
		}
		a.events.Emit(trx, event.Record{
			Kind:      event.TradingUpdated,
			Asset:     ref,
			Actor:     owner,
			Detail:    detail,
			Timestamp: a.now().UTC().Truncate(time.Second),
		})
		return nil
	})
}

// Get - registered asset details
func (a *Assets) Get(ref asset.Ref) (Info, error) {
	var info Info
	err := a.store.View(func(trx storage.Transaction) error {
		var err error
		info, err = a.get(trx, ref)
		return err
	})
	return info, err
}

// Valuation - current valuation outside any other transaction
func (a *Assets) Valuation(ref asset.Ref) (asset.Valuation, error) {
	var v asset.Valuation
	err := a.store.View(func(trx storage.Transaction) error {
		var err error
		v, err = a.GetValuation(trx, ref)
		return err
	})
	return v, err
}

func (a *Assets) get(trx storage.Transaction, ref asset.Ref) (Info, error) {
	buffer := trx.Get(a.store.Pool.Assets, ref[:])
	if nil == buffer {
		return Info{}, fault.AssetNotFound
	}
	return unpackInfo(ref, buffer), nil
}

// AssetExists - registry interface
func (a *Assets) AssetExists(trx storage.Transaction, ref asset.Ref) bool {
	return trx.Has(a.store.Pool.Assets, ref[:])
}

// IsOwner - registry interface
func (a *Assets) IsOwner(trx storage.Transaction, ref asset.Ref, address account.Address) bool {
	info, err := a.get(trx, ref)
	return nil == err && info.Owner == address
}

// TradingEnabled - registry interface
func (a *Assets) TradingEnabled(trx storage.Transaction, ref asset.Ref) bool {
	info, err := a.get(trx, ref)
	return nil == err && info.TradingEnabled
}

// FractionalSupply - registry interface, zero if not configured
func (a *Assets) FractionalSupply(trx storage.Transaction, ref asset.Ref) uint64 {
	info, err := a.get(trx, ref)
	if nil != err {
		return 0
	}
	return info.FractionalSupply
}

// GetValuation - registry interface, zero valuation if none applied yet
func (a *Assets) GetValuation(trx storage.Transaction, ref asset.Ref) (asset.Valuation, error) {
	if !a.AssetExists(trx, ref) {
		return asset.Valuation{}, fault.AssetNotFound
	}
	buffer := trx.Get(a.store.Pool.Valuations, ref[:])
	if nil == buffer {
		return asset.Valuation{}, nil
	}
	return asset.UnpackValuation(buffer)
}

// SetValuation - registry interface
//
// only reachable through the oracle committee, which performs its own
// authorisation
func (a *Assets) SetValuation(trx storage.Transaction, ref asset.Ref, v asset.Valuation) error {
	if !a.AssetExists(trx, ref) {
		return fault.AssetNotFound
	}
	trx.Put(a.store.Pool.Valuations, ref[:], v.Pack())
	return nil
}

// GetValuationUpdatedAt - registry interface, zero time if never valued
func (a *Assets) GetValuationUpdatedAt(trx storage.Transaction, ref asset.Ref) time.Time {
	v, err := a.GetValuation(trx, ref)
	if nil != err {
		return time.Time{}
	}
	return v.UpdatedAt
}

// SetClock - replace the time source
func (a *Assets) SetClock(now func() time.Time) {
	a.now = now
}

// hostname characters only, and acceptable to the DNS library
func validName(name string) bool {
	if "" == name {
		return false
	}
	if _, ok := dns.IsDomainName(name); !ok {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case '-' == c || '.' == c:
		default:
			return false
		}
	}
	return true
}
