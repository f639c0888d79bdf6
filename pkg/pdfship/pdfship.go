package pdfship

import (
	"context"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/bft-labs/pdfship/internal/adapters/fs"
	"github.com/bft-labs/pdfship/internal/adapters/remote"
	"github.com/bft-labs/pdfship/internal/app"
	"github.com/bft-labs/pdfship/internal/ports"
)

// Shipper sends new PDFs from a local directory to the device.
// Use New() to create an instance, then Run() or Watch().
type Shipper struct {
	config    Config
	logger    ports.Logger
	connector ports.Connector
	engine    *app.Engine

	// mu serializes runs.
	mu sync.Mutex
}

// New creates a Shipper. The configuration is validated here, so an
// invalid setting fails before any connection is attempted. The returned
// error matches ErrInvalidConfig and lists every violation.
func New(cfg Config, opts ...Option) (*Shipper, error) {
	cfg.SetDefaults()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(o.fs); err != nil {
		return nil, err
	}

	logger := o.logger

	connector := o.connector
	if connector == nil {
		connector = remote.NewConnection(remote.Config{
			Host:                  cfg.Host,
			Port:                  cfg.Port,
			Username:              cfg.Username,
			Password:              cfg.Password,
			KnownHostsFile:        cfg.KnownHostsFile,
			InsecureIgnoreHostKey: cfg.InsecureIgnoreHostKey,
			Timeout:               cfg.DialTimeout,
		}, logger)
	}

	ledger := o.ledger
	if ledger == nil {
		ledger = fs.NewLedgerFile(o.fs, cfg.LedgerPath, logger)
	}

	source := fs.NewSourceDir(o.fs, cfg.SourceDir, logger)

	engine := app.NewEngine(app.EngineConfig{
		DestDir: cfg.DestDir,
		Verify:  !cfg.SkipVerify,
		DryRun:  cfg.DryRun,
	}, source, ledger, logger)

	return &Shipper{
		config:    cfg,
		logger:    logger,
		connector: connector,
		engine:    engine,
	}, nil
}

// Config returns the configuration the Shipper was built with.
func (s *Shipper) Config() Config {
	return s.config
}

// Run connects, sends every PDF not yet on the device or in the ledger,
// and disconnects. Concurrent calls wait for each other.
//
// The report is returned also on error and holds what was done before the
// failure.
func (s *Shipper) Run(ctx context.Context) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("sync started",
		ports.String("source", s.config.SourceDir),
		ports.String("remote_path", s.config.DestDir),
		ports.Bool("dry_run", s.config.DryRun),
	)

	rfs, err := s.connector.Connect(ctx)
	if err != nil {
		return Report{}, err
	}
	// The connection logs its own release errors.
	defer func() { _ = s.connector.Disconnect() }()

	report, err := s.engine.SendPDFs(ctx, rfs)
	if err != nil {
		return report, err
	}

	s.logger.Info("sync finished",
		ports.Int("sent", len(report.Sent)),
		ports.Int("skipped_remote", len(report.SkippedRemote)),
		ports.Int("skipped_ledger", len(report.SkippedLedger)),
		ports.String("size", humanize.IBytes(uint64(report.BytesSent))),
		ports.Int("unverified", len(report.Unverified())),
	)
	return report, nil
}
