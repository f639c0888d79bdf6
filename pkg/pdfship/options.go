package pdfship

import (
	"github.com/spf13/afero"

	"github.com/bft-labs/pdfship/internal/ports"
	"github.com/bft-labs/pdfship/pkg/log"
)

// Re-exported interfaces so callers can inject their own implementations
// without importing internal packages.
type (
	// Logger is the structured logging facade from pkg/log.
	Logger = log.Logger

	// Connector opens and closes the session to the device.
	Connector = ports.Connector

	// RemoteFS is the file-transfer channel returned by Connector.Connect.
	RemoteFS = ports.RemoteFS

	// Ledger persists the names already sent.
	Ledger = ports.Ledger
)

// Option configures optional behavior of a Shipper.
type Option func(*options)

type options struct {
	logger    ports.Logger
	fs        afero.Fs
	connector ports.Connector
	ledger    ports.Ledger
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
		fs:     afero.NewOsFs(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFs sets the filesystem the source directory and ledger live on.
// Defaults to the OS filesystem. Watch always observes the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithConnector replaces the SSH/SFTP connection, e.g. with a test double.
func WithConnector(c Connector) Option {
	return func(o *options) {
		o.connector = c
	}
}

// WithLedger replaces the file-backed ledger.
func WithLedger(l Ledger) Option {
	return func(o *options) {
		o.ledger = l
	}
}
