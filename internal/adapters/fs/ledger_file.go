package fs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/bft-labs/pdfship/internal/domain"
	"github.com/bft-labs/pdfship/internal/ports"
)

// DefaultLedgerFile is the ledger name used when none is configured.
// Relative paths resolve against the working directory.
const DefaultLedgerFile = "sent_log.txt"

// LedgerFile implements ports.Ledger as a line-oriented text file.
// Each line is one file name; lines are only ever appended.
type LedgerFile struct {
	fs     afero.Fs
	path   string
	logger ports.Logger
}

// NewLedgerFile creates a ledger backed by path on fs.
func NewLedgerFile(fs afero.Fs, path string, logger ports.Logger) *LedgerFile {
	if path == "" {
		path = DefaultLedgerFile
	}
	return &LedgerFile{fs: fs, path: path, logger: logger}
}

// Load reads every recorded name. Only line terminators are stripped, so
// names keep any surrounding spaces they were recorded with.
// Returns an empty set and nil error if the ledger does not exist yet.
func (l *LedgerFile) Load(ctx context.Context) (domain.FileSet, error) {
	f, err := l.fs.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Info("no ledger found, starting fresh", ports.String("ledger", l.path))
			return domain.NewFileSet(), nil
		}
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrLedger, l.path, err)
	}
	defer f.Close()

	names := domain.NewFileSet()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if name := strings.TrimSuffix(sc.Text(), "\r"); name != "" {
			names.Add(name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrLedger, l.path, err)
	}

	l.logger.Debug("ledger loaded", ports.String("ledger", l.path), ports.Int("entries", names.Len()))
	return names, nil
}

// Record appends name as a new line and syncs the file before returning,
// so the ledger on disk never lags behind a completed upload.
func (l *LedgerFile) Record(ctx context.Context, name string) error {
	if name == "" || strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: cannot record name %q", domain.ErrLedger, name)
	}

	f, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", domain.ErrLedger, l.path, err)
	}

	if _, err := f.WriteString(name + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("%w: append %s: %v", domain.ErrLedger, l.path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("%w: sync %s: %v", domain.ErrLedger, l.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", domain.ErrLedger, l.path, err)
	}

	l.logger.Info("ledger updated", ports.String("file", name), ports.String("ledger", l.path))
	return nil
}

// Path returns the ledger file path.
func (l *LedgerFile) Path() string {
	return l.path
}
