package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below match these with errors.Is.
var (
	// ErrInvalidConfig marks missing or invalid settings. Fatal, never retried.
	ErrInvalidConfig = errors.New("pdfship: invalid configuration")

	// ErrConnection marks a failure to dial, authenticate or open the SFTP channel.
	ErrConnection = errors.New("pdfship: connection failed")

	// ErrListing marks a failed remote directory listing.
	ErrListing = errors.New("pdfship: remote listing failed")

	// ErrTransfer marks a failed upload of a single file.
	ErrTransfer = errors.New("pdfship: transfer failed")

	// ErrVerification marks a failed post-transfer check.
	ErrVerification = errors.New("pdfship: verification failed")

	// ErrLedger marks a failure to read or append the transfer ledger.
	ErrLedger = errors.New("pdfship: ledger error")

	// ErrNotConnected is returned when the remote is used after disconnect.
	ErrNotConnected = errors.New("pdfship: not connected")
)

// ConfigError reports one invalid setting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// ConnectionError reports which stage of connection setup failed.
// Stage is one of "host_key", "dial", "handshake" or "sftp".
type ConnectionError struct {
	Host  string
	Port  int
	Stage string
	Err   error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: %s %s:%d: %v", ErrConnection, e.Stage, e.Host, e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() []error { return []error{ErrConnection, e.Err} }

// TransferError reports the file whose upload aborted the run.
type TransferError struct {
	File       string
	RemotePath string
	Err        error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %v", ErrTransfer, e.File, e.RemotePath, e.Err)
}

func (e *TransferError) Unwrap() []error { return []error{ErrTransfer, e.Err} }
