// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type ExpiredError GenericError
type InsufficientError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PausedError GenericError
type ProcessError GenericError
type ReentrancyError GenericError
type UnauthorisedError GenericError

// common errors - keep in alphabetic order
var (
	AdminRequired                = UnauthorisedError("caller is not the admin")
	AllowanceNotFound            = NotFoundError("allowance not found")
	AlreadyInitialised           = ExistsError("already initialised")
	AlreadyVoted                 = ExistsError("oracle already voted")
	AssetAlreadyRegistered       = ExistsError("asset already registered")
	AssetNotFound                = NotFoundError("asset not found")
	BatchTooLarge                = InvalidError("batch too large")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	CommitteeNotInitialised      = NotFoundError("committee not initialised")
	CommitteePaused              = PausedError("committee is paused")
	DuplicateRecipient           = InvalidError("duplicate recipient")
	EmptyBatch                   = InvalidError("empty batch")
	FeeTooHigh                   = InvalidError("fee exceeds 10000 basis points")
	FractionalSupplyNotFound     = NotFoundError("fractional supply not configured")
	InsufficientAllowance        = InsufficientError("insufficient allowance")
	InsufficientHistory          = NotFoundError("not enough valuation history")
	InsufficientLiquidity        = InsufficientError("insufficient liquidity")
	InsufficientPayment          = InsufficientError("insufficient payment balance")
	InsufficientShares           = InsufficientError("insufficient shares")
	InsufficientSharesListed     = InsufficientError("insufficient shares available in listing")
	InvalidAddress               = InvalidError("invalid address")
	InvalidAssetReference        = InvalidError("invalid asset reference")
	InvalidChecksum              = InvalidError("address checksum mismatch")
	InvalidCount                 = InvalidError("invalid count")
	InvalidDomainName            = InvalidError("invalid domain name")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidMinimumConsensus      = InvalidError("minimum consensus out of range")
	InvalidPrice                 = InvalidError("price must be greater than zero")
	InvalidStatus                = InvalidError("invalid listing status")
	InvalidSupply                = InvalidError("total shares do not match fractional supply")
	InvalidTimestamp             = InvalidError("timestamp is in the future")
	InvalidValuationMarket       = InvalidError("market value out of range")
	InvalidValuationScore        = InvalidError("valuation score out of range")
	InvalidValuationSubScore     = InvalidError("valuation sub-score out of range")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	LedgerAlreadyExists          = ExistsError("share ledger already exists")
	LedgerNotFound               = NotFoundError("share ledger not initialised")
	LengthMismatch               = InvalidError("recipients and amounts differ in length")
	ListingAlreadyActive         = ExistsError("listing already active")
	ListingCancelled             = ExistsError("listing was cancelled")
	ListingNotActive             = NotFoundError("listing not active")
	ListingNotFound              = NotFoundError("listing not found")
	MarketplaceNotInitialised    = NotFoundError("marketplace not initialised")
	MarketplacePaused            = PausedError("marketplace is paused")
	MissingParameters            = InvalidError("missing parameters")
	NoListingsAvailable          = NotFoundError("no active listings")
	NotInCriticalSection         = UnauthorisedError("settlement outside critical section")
	NotInitialised               = NotFoundError("not initialised")
	NotLockHolder                = UnauthorisedError("caller does not hold the lock")
	NotLocked                    = UnauthorisedError("lock is not held")
	OracleAlreadyAuthorised      = ExistsError("oracle already authorised")
	OracleNotAuthorised          = UnauthorisedError("oracle not authorised")
	OwnerRequired                = UnauthorisedError("caller is not the asset owner")
	Overflow                     = InvalidError("arithmetic overflow")
	PendingAlreadyExists         = ExistsError("valuation proposal already pending")
	PendingNotFound              = NotFoundError("no pending valuation proposal")
	ProofNotFound                = NotFoundError("ownership proof record not found")
	ProposalExpired              = ExpiredError("valuation proposal expired")
	RateLimiting                 = ProcessError("rate limit exceeded")
	ReentrancyDetected           = ReentrancyError("reentrancy detected")
	RemoveBelowConsensus         = InvalidError("removal would drop oracles below minimum consensus")
	SelfOperation                = InvalidError("source and destination are the same")
	SellerRequired               = UnauthorisedError("caller is not the listing seller")
	StoreNotOpen                 = ProcessError("store is not open")
	TooManyHistoryItems          = ProcessError("history record is corrupt")
	TradingDisabled              = PausedError("trading disabled for asset")
	TransactionAlreadyActive     = ProcessError("transaction already active")
	UpdateTooFrequent            = InvalidError("valuation updated too recently")
	ZeroAmount                   = InvalidError("amount must be greater than zero")
)

// the error interface methods
func (e GenericError) Error() string      { return string(e) }
func (e ExistsError) Error() string       { return string(e) }
func (e ExpiredError) Error() string      { return string(e) }
func (e InsufficientError) Error() string { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e PausedError) Error() string       { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e ReentrancyError) Error() string   { return string(e) }
func (e UnauthorisedError) Error() string { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool       { _, ok := e.(ExistsError); return ok }
func IsErrExpired(e error) bool      { _, ok := e.(ExpiredError); return ok }
func IsErrInsufficient(e error) bool { _, ok := e.(InsufficientError); return ok }
func IsErrInvalid(e error) bool      { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool     { _, ok := e.(NotFoundError); return ok }
func IsErrPaused(e error) bool       { _, ok := e.(PausedError); return ok }
func IsErrProcess(e error) bool      { _, ok := e.(ProcessError); return ok }
func IsErrReentrancy(e error) bool   { _, ok := e.(ReentrancyError); return ok }
func IsErrUnauthorised(e error) bool { _, ok := e.(UnauthorisedError); return ok }

// Kind - short class name of an error for reporting
func Kind(e error) string {
	switch e.(type) {
	case nil:
		return ""
	case ExistsError:
		return "Conflict"
	case ExpiredError:
		return "Expired"
	case InsufficientError:
		return "InsufficientResource"
	case InvalidError:
		return "InvalidInput"
	case NotFoundError:
		return "NotFound"
	case PausedError:
		return "SystemPaused"
	case ReentrancyError:
		return "ReentrancyDetected"
	case UnauthorisedError:
		return "Unauthorized"
	default:
		return "Process"
	}
}
