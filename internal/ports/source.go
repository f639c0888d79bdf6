package ports

import (
	"context"
	"io"

	"github.com/bft-labs/pdfship/internal/domain"
)

// Source is the local directory PDFs are sent from.
type Source interface {
	// List returns the PDF names currently in the directory.
	List(ctx context.Context) (domain.FileSet, error)

	// Open opens the named file for reading.
	Open(name string) (io.ReadCloser, error)

	// Path returns the local path of name.
	Path(name string) string
}
