package app

import (
	"context"
	"fmt"
	"path"

	"github.com/dustin/go-humanize"

	"github.com/bft-labs/pdfship/internal/domain"
	"github.com/bft-labs/pdfship/internal/ports"
)

// EngineConfig contains configuration for a sync run.
type EngineConfig struct {
	// DestDir is the absolute remote directory files are uploaded into.
	DestDir string

	// Verify enables the post-transfer listing check.
	Verify bool

	// DryRun computes the plan without uploading or recording anything.
	DryRun bool
}

// Engine decides which local PDFs to send and transfers them one by one.
type Engine struct {
	config   EngineConfig
	source   ports.Source
	ledger   ports.Ledger
	verifier *Verifier
	logger   ports.Logger
}

// NewEngine creates a new engine with the given dependencies.
func NewEngine(
	config EngineConfig,
	source ports.Source,
	ledger ports.Ledger,
	logger ports.Logger,
) *Engine {
	return &Engine{
		config:   config,
		source:   source,
		ledger:   ledger,
		verifier: NewVerifier(logger),
		logger:   logger,
	}
}

// SendPDFs performs one sync run over an open remote.
//
// Files already listed remotely or recorded in the ledger are skipped. Each
// upload is recorded in the ledger before the next one starts. The first
// failed upload stops the run; files sent before it stay recorded. The
// returned report is filled in as far as the run got, also on error.
func (e *Engine) SendPDFs(ctx context.Context, remote ports.RemoteFS) (domain.Report, error) {
	report := domain.Report{DryRun: e.config.DryRun}

	local, err := e.source.List(ctx)
	if err != nil {
		e.logger.Error("failed to list local files", ports.Err(err))
		return report, err
	}
	report.LocalCount = local.Len()

	remoteSet := e.listRemote(ctx, remote, &report)

	ledger, err := e.ledger.Load(ctx)
	if err != nil {
		e.logger.Error("failed to load ledger", ports.Err(err))
		return report, err
	}
	report.LedgerCount = ledger.Len()

	report.SkippedRemote = local.Intersect(remoteSet).Sorted()
	report.SkippedLedger = local.Minus(remoteSet).Intersect(ledger).Sorted()
	report.ToSend = local.Minus(remoteSet, ledger).Sorted()

	e.logger.Info("sync plan",
		ports.Int("local", report.LocalCount),
		ports.Int("remote", report.RemoteCount),
		ports.Int("ledger", report.LedgerCount),
		ports.Int("to_send", len(report.ToSend)),
	)

	if len(report.ToSend) == 0 {
		e.logger.Info("no new PDF files to send")
		return report, nil
	}

	if e.config.DryRun {
		e.logger.Info("dry run, nothing will be sent", ports.Strings("files", report.ToSend))
		for _, name := range report.ToSend {
			e.logger.Info("would send",
				ports.String("file", name),
				ports.String("remote_path", e.remotePath(name)),
			)
		}
		return report, nil
	}

	expected := make(map[string]int64, len(report.ToSend))
	for _, name := range report.ToSend {
		n, err := e.upload(ctx, remote, name)
		if err != nil {
			return report, err
		}
		report.Sent = append(report.Sent, name)
		report.BytesSent += n
		expected[name] = n

		if err := e.ledger.Record(ctx, name); err != nil {
			e.logger.Error("failed to update ledger",
				ports.String("file", name),
				ports.Err(err),
			)
			return report, err
		}
	}

	e.logger.Info("transfer complete",
		ports.Int("sent", len(report.Sent)),
		ports.String("size", humanize.IBytes(uint64(report.BytesSent))),
	)

	if e.config.Verify {
		report.Verifications = e.verifier.Verify(ctx, remote, e.config.DestDir, expected)
	}
	return report, nil
}

// listRemote returns the names in the destination directory. A failed
// listing is logged and treated as an empty directory.
func (e *Engine) listRemote(ctx context.Context, remote ports.RemoteFS, report *domain.Report) domain.FileSet {
	entries, err := remote.ReadDir(ctx, e.config.DestDir)
	if err != nil {
		e.logger.Warn("could not list remote folder, assuming it is empty",
			ports.String("remote_path", e.config.DestDir),
			ports.Err(fmt.Errorf("%w: %w", domain.ErrListing, err)),
		)
		report.RemoteListingFailed = true
		return domain.NewFileSet()
	}

	names := make(domain.FileSet, len(entries))
	for _, fi := range entries {
		names.Add(fi.Name())
	}
	report.RemoteCount = names.Len()
	return names
}

func (e *Engine) upload(ctx context.Context, remote ports.RemoteFS, name string) (int64, error) {
	remotePath := e.remotePath(name)
	fail := func(err error) (int64, error) {
		e.logger.Error("failed to send file",
			ports.String("file", name),
			ports.String("remote_path", remotePath),
			ports.Err(err),
		)
		return 0, &domain.TransferError{File: name, RemotePath: remotePath, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	src, err := e.source.Open(name)
	if err != nil {
		return fail(err)
	}
	defer src.Close()

	n, err := remote.Upload(ctx, src, remotePath)
	if err != nil {
		return fail(err)
	}

	e.logger.Info("sent file",
		ports.String("file", name),
		ports.String("remote_path", remotePath),
		ports.Int64("bytes", n),
		ports.String("size", humanize.IBytes(uint64(n))),
	)
	return n, nil
}

// remotePath joins with forward slashes regardless of the local OS.
func (e *Engine) remotePath(name string) string {
	return path.Join(e.config.DestDir, name)
}
