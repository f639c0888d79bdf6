package ports

import (
	"context"

	"github.com/bft-labs/pdfship/internal/domain"
)

// Ledger is the persisted, append-only record of files already sent.
type Ledger interface {
	// Load returns every recorded name. A missing store is an empty set.
	Load(ctx context.Context) (domain.FileSet, error)

	// Record appends name and makes it durable before returning.
	Record(ctx context.Context, name string) error
}
