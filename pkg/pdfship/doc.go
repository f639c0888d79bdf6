// Package pdfship sends PDF files from a local folder to a device over SFTP.
//
// Each run lists the local folder, the remote folder and a local ledger of
// names already sent, then uploads every PDF found in neither. A name is
// appended to the ledger as soon as its upload completes, so a file the
// reader later deletes from the device is not sent again.
//
// # Basic Usage
//
//	cfg := pdfship.DefaultConfig()
//	cfg.Host = "192.168.15.244"
//	cfg.Username = "root"
//	cfg.Password = "secret"
//	cfg.SourceDir = "/home/me/books"
//	cfg.DestDir = "/mnt/us/documents"
//
//	s, err := pdfship.New(cfg, pdfship.WithLogger(log.NewZerologAdapter()))
//	if err != nil {
//	    // err matches pdfship.ErrInvalidConfig
//	}
//	report, err := s.Run(ctx)
//
// # Watch Mode
//
// [Shipper.Watch] runs once and then again whenever a PDF appears in the
// source folder.
//
// # Dependency Injection
//
// For testing, the connection, ledger, filesystem and logger can be
// replaced with [WithConnector], [WithLedger], [WithFs] and [WithLogger].
package pdfship
