// Package domain contains the core entities and error taxonomy of pdfship.
//
// It has no dependencies on infrastructure concerns (SSH, file system,
// logging) and contains only the rules a sync run is built from.
//
// # Entities
//
//   - [FileSet]: an unordered set of file names (local, remote or ledger)
//   - [Report]: what one sync run saw, sent and skipped
//   - [Verification]: the post-transfer check of one sent file
//
// # Errors
//
// Failures that leave the core are typed ([ConfigError], [ConnectionError],
// [TransferError]) and match their sentinel with errors.Is. Listing and
// verification failures are recovered inside the engine and only ever
// logged, wrapped in [ErrListing] and [ErrVerification].
package domain
