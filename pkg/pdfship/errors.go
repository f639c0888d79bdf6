package pdfship

import "github.com/bft-labs/pdfship/internal/domain"

// Errors returned by New and Run. Match them with errors.Is.
var (
	ErrInvalidConfig = domain.ErrInvalidConfig
	ErrConnection    = domain.ErrConnection
	ErrTransfer      = domain.ErrTransfer
	ErrLedger        = domain.ErrLedger
	ErrNotConnected  = domain.ErrNotConnected
)

// Typed errors, for use with errors.As.
type (
	ConfigError     = domain.ConfigError
	ConnectionError = domain.ConnectionError
	TransferError   = domain.TransferError
)

// Run results.
type (
	Report             = domain.Report
	Verification       = domain.Verification
	VerificationStatus = domain.VerificationStatus
)

const (
	VerifyPresent      = domain.VerifyPresent
	VerifyMissing      = domain.VerifyMissing
	VerifyEmpty        = domain.VerifyEmpty
	VerifySizeMismatch = domain.VerifySizeMismatch
	VerifyUnverified   = domain.VerifyUnverified
)
