package cliconfig

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
)

// Environment variable names. The KINDLE_* and *_FOLDER names are kept
// for compatibility with existing .env files.
const (
	EnvHost                  = "KINDLE_IP"
	EnvPort                  = "KINDLE_PORT"
	EnvUsername              = "KINDLE_USERNAME"
	EnvPassword              = "KINDLE_PASSWORD"
	EnvSourceFolder          = "SOURCE_FOLDER"
	EnvDestFolder            = "DEST_FOLDER"
	EnvLedgerFile            = "PDFSHIP_LEDGER_FILE"
	EnvKnownHosts            = "PDFSHIP_KNOWN_HOSTS"
	EnvInsecureIgnoreHostKey = "PDFSHIP_INSECURE_IGNORE_HOST_KEY"
	EnvDialTimeout           = "PDFSHIP_DIAL_TIMEOUT"
	EnvVerify                = "PDFSHIP_VERIFY"
	EnvDryRun                = "PDFSHIP_DRY_RUN"
	EnvWatch                 = "PDFSHIP_WATCH"
	EnvDebounce              = "PDFSHIP_DEBOUNCE"
	EnvLogFile               = "PDFSHIP_LOG_FILE"
	EnvLogLevel              = "PDFSHIP_LOG_LEVEL"
)

// ApplyEnvConfig applies configuration from environment variables.
// It respects flags that have been explicitly set (changed map).
// Every malformed variable is reported, each error naming its variable.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv(EnvHost), &cfg.Host)
	s.setString("username", os.Getenv(EnvUsername), &cfg.Username)
	s.setString("password", os.Getenv(EnvPassword), &cfg.Password)
	s.setString("source", os.Getenv(EnvSourceFolder), &cfg.SourceDir)
	s.setString("dest", os.Getenv(EnvDestFolder), &cfg.DestDir)
	s.setString("ledger", os.Getenv(EnvLedgerFile), &cfg.LedgerPath)
	s.setString("known-hosts", os.Getenv(EnvKnownHosts), &cfg.KnownHostsFile)
	s.setString("log-file", os.Getenv(EnvLogFile), &cfg.LogFile)
	s.setString("log-level", os.Getenv(EnvLogLevel), &cfg.LogLevel)

	var errs *multierror.Error
	errs = multierror.Append(errs,
		envErr(EnvPort, s.setIntFromString("port", os.Getenv(EnvPort), &cfg.Port)),
		envErr(EnvDialTimeout, s.setDuration("dial-timeout", os.Getenv(EnvDialTimeout), &cfg.DialTimeout)),
		envErr(EnvDebounce, s.setDuration("debounce", os.Getenv(EnvDebounce), &cfg.Debounce)),
		envErr(EnvInsecureIgnoreHostKey, s.setBoolFromString("insecure-ignore-host-key", os.Getenv(EnvInsecureIgnoreHostKey), &cfg.InsecureIgnoreHostKey)),
		envErr(EnvVerify, s.setBoolFromString("verify", os.Getenv(EnvVerify), &cfg.Verify)),
		envErr(EnvDryRun, s.setBoolFromString("dry-run", os.Getenv(EnvDryRun), &cfg.DryRun)),
		envErr(EnvWatch, s.setBoolFromString("watch", os.Getenv(EnvWatch), &cfg.Watch)),
	)
	return errs.ErrorOrNil()
}

func envErr(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", key, err)
}
