// Package pdfship sends new PDF files from a local folder to an e-reader
// over SFTP, remembering what it already sent.
//
// Example usage:
//
//	cfg := pdfship.DefaultConfig()
//	cfg.Host = "192.168.15.244"
//	cfg.Username = "root"
//	cfg.Password = "secret"
//	cfg.SourceDir = "/home/me/books"
//	cfg.DestDir = "/mnt/us/documents"
//	s, err := pdfship.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := s.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package pdfship

import (
	"github.com/bft-labs/pdfship/pkg/pdfship"
)

// Config holds the connection, folder and behavior settings.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = pdfship.Config

// Shipper runs syncs for one configuration.
type Shipper = pdfship.Shipper

// Report summarizes one run.
type Report = pdfship.Report

// Option configures optional behavior of a Shipper.
type Option = pdfship.Option

// New validates cfg and creates a Shipper. No connection is made until Run.
func New(cfg Config, opts ...Option) (*Shipper, error) {
	return pdfship.New(cfg, opts...)
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, set Host, Username, Password, SourceDir and DestDir.
func DefaultConfig() Config {
	return pdfship.DefaultConfig()
}

// WithLogger sets the structured logger. See pkg/log.
func WithLogger(l pdfship.Logger) Option {
	return pdfship.WithLogger(l)
}
