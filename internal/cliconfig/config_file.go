package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Host                  string `toml:"host"`
	Port                  int    `toml:"port"`
	Username              string `toml:"username"`
	Password              string `toml:"password"`
	SourceFolder          string `toml:"source_folder"`
	DestFolder            string `toml:"dest_folder"`
	LedgerFile            string `toml:"ledger_file"`
	KnownHosts            string `toml:"known_hosts"`
	InsecureIgnoreHostKey *bool  `toml:"insecure_ignore_host_key"`
	DialTimeout           string `toml:"dial_timeout"`
	Verify                *bool  `toml:"verify"`
	DryRun                *bool  `toml:"dry_run"`
	Watch                 *bool  `toml:"watch"`
	Debounce              string `toml:"debounce"`
	LogFile               string `toml:"log_file"`
	LogLevel              string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(fsys afero.Fs, path string) (FileConfig, error) {
	var fc FileConfig
	b, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.pdfship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".pdfship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	s.setString("username", fc.Username, &cfg.Username)
	s.setString("password", fc.Password, &cfg.Password)
	s.setString("source", fc.SourceFolder, &cfg.SourceDir)
	s.setString("dest", fc.DestFolder, &cfg.DestDir)
	s.setString("ledger", fc.LedgerFile, &cfg.LedgerPath)
	s.setString("known-hosts", fc.KnownHosts, &cfg.KnownHostsFile)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("port", fc.Port, &cfg.Port)

	if err := s.setDuration("dial-timeout", fc.DialTimeout, &cfg.DialTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool("insecure-ignore-host-key", fc.InsecureIgnoreHostKey, &cfg.InsecureIgnoreHostKey)
	s.setBool("verify", fc.Verify, &cfg.Verify)
	s.setBool("dry-run", fc.DryRun, &cfg.DryRun)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a regular file exists at the given path.
func FileExists(fsys afero.Fs, p string) bool {
	fi, err := fsys.Stat(p)
	return err == nil && !fi.IsDir()
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(h, p[2:])
}
