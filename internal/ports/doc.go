// Package ports defines the interfaces that connect the sync engine to
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [Connector]: opens and closes the SSH/SFTP session
//   - [RemoteFS]: lists and uploads into the remote directory
//   - [Ledger]: persists the names already sent
//   - [Source]: lists and opens local PDF files
//   - [Logger]: structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters (internal/adapters) implement them with SFTP, afero and zerolog.
package ports
