// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"time"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/asset"
)

// Kind - the operation that produced a record
type Kind string

// share ledger
const (
	LedgerInitialised Kind = "ledger-initialised"
	Transfer          Kind = "transfer"
	Approval          Kind = "approval"
	BatchTransfer     Kind = "batch-transfer"
)

// marketplace
const (
	MarketplaceInitialised Kind = "marketplace-initialised"
	ListingCreated         Kind = "listing-created"
	ListingCancelled       Kind = "listing-cancelled"
	ListingDeactivated     Kind = "listing-deactivated"
	ListingActivated       Kind = "listing-activated"
	ListingPriceUpdated    Kind = "listing-price-updated"
	Trade                  Kind = "trade"
	FeeUpdated             Kind = "fee-updated"
	FeeCollectorUpdated    Kind = "fee-collector-updated"
	MarketplacePaused      Kind = "marketplace-paused"
	MarketplaceUnpaused    Kind = "marketplace-unpaused"
	MarketplaceAdmin       Kind = "marketplace-admin"
	EmergencyDeactivated   Kind = "emergency-deactivated"
)

// oracle committee
const (
	CommitteeInitialised Kind = "committee-initialised"
	ProposalSubmitted    Kind = "proposal-submitted"
	VoteCast             Kind = "vote-cast"
	ValuationApplied     Kind = "valuation-applied"
	ProposalExpired      Kind = "proposal-expired"
	OracleAdded          Kind = "oracle-added"
	OracleRemoved        Kind = "oracle-removed"
	SettingsUpdated      Kind = "settings-updated"
	CommitteePaused      Kind = "committee-paused"
	CommitteeUnpaused    Kind = "committee-unpaused"
	CommitteeAdmin       Kind = "committee-admin"
)

// registry and payment
const (
	AssetRegistered Kind = "asset-registered"
	TradingUpdated  Kind = "trading-updated"
	Deposit         Kind = "deposit"
)

// Balance - an account balance change caused by the operation
type Balance struct {
	Account account.Address `json:"account"`
	Before  uint64          `json:"before"`
	After   uint64          `json:"after"`
}

// Record - one immutable log entry
type Record struct {
	Id          uint64          `json:"id"`
	Kind        Kind            `json:"kind"`
	Asset       asset.Ref       `json:"asset"`
	Actor       account.Address `json:"actor"`
	Target      account.Address `json:"target"`
	Amount      uint64          `json:"amount,omitempty"`
	Price       uint64          `json:"price,omitempty"`
	Fee         uint64          `json:"fee,omitempty"`
	ReferenceId uint64          `json:"referenceId,omitempty"`
	Balances    []Balance       `json:"balances,omitempty"`
	Detail      string          `json:"detail,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}
