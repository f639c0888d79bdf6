package app

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/bft-labs/pdfship/internal/domain"
	"github.com/bft-labs/pdfship/internal/ports"
)

// Verifier checks that uploaded files show up in the remote listing.
// Problems are logged, never returned.
type Verifier struct {
	logger ports.Logger
}

// NewVerifier creates a verifier that logs through logger.
func NewVerifier(logger ports.Logger) *Verifier {
	return &Verifier{logger: logger}
}

// Verify lists destDir once and checks every name in expected against it.
// expected maps each name to the number of bytes uploaded. Results are
// sorted by name.
func (v *Verifier) Verify(ctx context.Context, remote ports.RemoteFS, destDir string, expected map[string]int64) []domain.Verification {
	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]domain.Verification, 0, len(names))

	entries, err := remote.ReadDir(ctx, destDir)
	if err != nil {
		v.logger.Warn("could not verify sent files",
			ports.String("remote_path", destDir),
			ports.Int("files", len(names)),
			ports.Err(fmt.Errorf("%w: %w", domain.ErrVerification, err)),
		)
		for _, name := range names {
			results = append(results, domain.Verification{
				Name:     name,
				Status:   domain.VerifyUnverified,
				Expected: expected[name],
			})
		}
		return results
	}

	listed := sizes(entries)
	for _, name := range names {
		res := domain.Verification{Name: name, Expected: expected[name]}
		size, ok := listed[name]
		res.Size = size

		switch {
		case !ok:
			res.Status = domain.VerifyMissing
			v.logger.Warn("file missing on device", ports.String("file", name))
		case size == 0:
			res.Status = domain.VerifyEmpty
			v.logger.Warn("file is empty on device", ports.String("file", name))
		case size != res.Expected:
			res.Status = domain.VerifySizeMismatch
			v.logger.Warn("file size differs on device",
				ports.String("file", name),
				ports.Int64("bytes", size),
				ports.Int64("expected", res.Expected),
			)
		default:
			res.Status = domain.VerifyPresent
			v.logger.Info("file present on device",
				ports.String("file", name),
				ports.String("size", humanize.IBytes(uint64(size))),
			)
		}
		results = append(results, res)
	}
	return results
}

// sizes indexes a remote listing by name.
func sizes(entries []os.FileInfo) map[string]int64 {
	out := make(map[string]int64, len(entries))
	for _, fi := range entries {
		out[fi.Name()] = fi.Size()
	}
	return out
}
