// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package assets - RPC access to the asset registry
package assets

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
	"github.com/bitmark-inc/fractiond/registry"
	"github.com/bitmark-inc/fractiond/rpc/ratelimit"
)

const (
	rateLimitRegistry = 200
	rateBurstRegistry = 100
)

// Registry - type for RPC
type Registry struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Assets  *registry.Assets
}

// New - create the registry service
func New(log *logger.L, assets *registry.Assets) *Registry {
	return &Registry{
		Log:     log,
		Limiter: ratelimit.New(rateLimitRegistry, rateBurstRegistry),
		Assets:  assets,
	}
}

// RegisterArguments - a new asset
type RegisterArguments struct {
	Owner            account.Address `json:"owner"`
	Domain           string          `json:"domain"`
	FractionalSupply uint64          `json:"fractionalSupply"`
}

// RegisterReply - reference of the registered asset
type RegisterReply struct {
	Asset asset.Ref `json:"asset"`
}

// Register - record a domain after its ownership proof is verified
func (r *Registry) Register(arguments *RegisterArguments, reply *RegisterReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	r.Log.Infof("Registry.Register: %+v", arguments)

	ref, err := r.Assets.Register(arguments.Owner, arguments.Domain, arguments.FractionalSupply)
	if nil != err {
		return err
	}
	reply.Asset = ref
	return nil
}

// TradingArguments - enable or disable trading
type TradingArguments struct {
	Owner   account.Address `json:"owner"`
	Asset   asset.Ref       `json:"asset"`
	Enabled bool            `json:"enabled"`
}

// TradingReply - the resulting state
type TradingReply struct {
	Enabled bool `json:"enabled"`
}

// SetTrading - owner switches trading on or off
func (r *Registry) SetTrading(arguments *TradingArguments, reply *TradingReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	r.Log.Infof("Registry.SetTrading: %+v", arguments)

	if err := r.Assets.SetTrading(arguments.Owner, arguments.Asset, arguments.Enabled); nil != err {
		return err
	}
	reply.Enabled = arguments.Enabled
	return nil
}

// GetArguments - asset to look up
type GetArguments struct {
	Asset asset.Ref `json:"asset"`
}

// GetReply - registry entry and current valuation
type GetReply struct {
	Info      registry.Info   `json:"info"`
	Valuation asset.Valuation `json:"valuation"`
}

// Get - details of a registered asset
func (r *Registry) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	info, err := r.Assets.Get(arguments.Asset)
	if nil != err {
		return err
	}
	v, err := r.Assets.Valuation(arguments.Asset)
	if nil != err {
		return err
	}
	reply.Info = info
	reply.Valuation = v
	return nil
}
