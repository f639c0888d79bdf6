package pdfship

import (
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/bft-labs/pdfship/internal/adapters/fs"
	"github.com/bft-labs/pdfship/internal/domain"
)

const (
	// DefaultPort is the SSH port used when Port is zero.
	DefaultPort = 22

	// DefaultDialTimeout bounds the TCP dial and SSH handshake.
	DefaultDialTimeout = 30 * time.Second

	// DefaultLedgerPath is relative to the working directory.
	DefaultLedgerPath = fs.DefaultLedgerFile
)

// Config holds everything a Shipper needs. It is copied at construction
// and never changed afterwards.
type Config struct {
	// Host is the device address, e.g. the Kindle's IP.
	Host string
	Port int

	Username string
	Password string

	// SourceDir is the local directory PDFs are read from.
	SourceDir string

	// DestDir is the absolute remote directory, e.g. /mnt/us/documents.
	DestDir string

	// LedgerPath is the file recording names already sent.
	LedgerPath string

	// KnownHostsFile pins the device host key. When empty any key is
	// accepted and a warning is logged.
	KnownHostsFile        string
	InsecureIgnoreHostKey bool

	DialTimeout time.Duration

	// SkipVerify turns off the listing check that follows a transfer and
	// reports missing or truncated files.
	SkipVerify bool

	// DryRun logs what would be sent without uploading or recording.
	DryRun bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Port:        DefaultPort,
		LedgerPath:  DefaultLedgerPath,
		DialTimeout: DefaultDialTimeout,
	}
}

// SetDefaults fills zero-valued optional fields.
func (c *Config) SetDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.LedgerPath == "" {
		c.LedgerPath = DefaultLedgerPath
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
}

// Validate checks every field and reports all violations at once. Each
// violation is a *domain.ConfigError; the combined error matches
// domain.ErrInvalidConfig. fsys is used to check SourceDir.
func (c Config) Validate(fsys afero.Fs) error {
	var errs *multierror.Error
	invalid := func(field, reason string) {
		errs = multierror.Append(errs, &domain.ConfigError{Field: field, Reason: reason})
	}

	if strings.TrimSpace(c.Host) == "" {
		invalid("host", "is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		invalid("port", "must be between 1 and 65535")
	}
	if c.Username == "" {
		invalid("username", "is required")
	}
	if c.Password == "" {
		invalid("password", "is required")
	}

	if c.SourceDir == "" {
		invalid("source_folder", "is required")
	} else if ok, err := afero.IsDir(fsys, c.SourceDir); err != nil || !ok {
		invalid("source_folder", "must be an existing directory: "+c.SourceDir)
	}

	switch {
	case c.DestDir == "":
		invalid("dest_folder", "is required")
	case !strings.HasPrefix(c.DestDir, "/"):
		invalid("dest_folder", "must be an absolute remote path starting with /: "+c.DestDir)
	}

	if c.DialTimeout < 0 {
		invalid("dial_timeout", "must not be negative")
	}
	if c.InsecureIgnoreHostKey && c.KnownHostsFile != "" {
		invalid("known_hosts", "cannot be combined with insecure_ignore_host_key")
	}

	return errs.ErrorOrNil()
}
