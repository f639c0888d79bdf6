// Package log provides the logging abstraction used by pdfship components.
//
// The sync engine, the connection manager and the ledger never configure
// log output themselves. They receive a Logger and emit structured events
// through it; the caller decides where those events go.
//
// Use the zerolog adapter:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//
// Or discard everything in tests:
//
//	logger := log.NewNoopLogger()
package log
