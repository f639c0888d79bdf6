package fs

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/bft-labs/pdfship/internal/domain"
	"github.com/bft-labs/pdfship/internal/ports"
)

// SourceDir implements ports.Source over a local directory.
type SourceDir struct {
	fs     afero.Fs
	dir    string
	logger ports.Logger
}

// NewSourceDir creates a source listing PDFs in dir on fs.
func NewSourceDir(fs afero.Fs, dir string, logger ports.Logger) *SourceDir {
	return &SourceDir{fs: fs, dir: dir, logger: logger}
}

// List returns the names in the directory ending in ".pdf", case-insensitively.
// Directories are skipped, as are names with line breaks, which the ledger
// cannot store.
func (s *SourceDir) List(ctx context.Context) (domain.FileSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("list source folder %s: %w", s.dir, err)
	}

	names := domain.NewFileSet()
	for _, e := range entries {
		if e.IsDir() || !IsPDF(e.Name()) {
			continue
		}
		if strings.ContainsAny(e.Name(), "\r\n") {
			s.logger.Warn("skipping file with line break in name", ports.String("file", e.Name()))
			continue
		}
		names.Add(e.Name())
	}
	return names, nil
}

// Open opens name inside the source directory.
func (s *SourceDir) Open(name string) (io.ReadCloser, error) {
	return s.fs.Open(s.Path(name))
}

// Path joins the source directory and name with the local separator.
func (s *SourceDir) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// IsPDF reports whether name carries the PDF extension, ignoring case.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
