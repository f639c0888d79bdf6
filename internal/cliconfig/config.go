package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/bft-labs/pdfship/pkg/pdfship"
)

// Config holds CLI configuration for pdfship.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string

	SourceDir  string
	DestDir    string
	LedgerPath string

	KnownHostsFile        string
	InsecureIgnoreHostKey bool
	DialTimeout           time.Duration

	Verify bool
	DryRun bool

	Watch    bool
	Debounce time.Duration

	LogFile  string
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Port:        pdfship.DefaultPort,
		LedgerPath:  pdfship.DefaultLedgerPath,
		DialTimeout: pdfship.DefaultDialTimeout,
		Verify:      true,
		Debounce:    pdfship.DefaultDebounce,
		LogLevel:    zerolog.LevelInfoValue,
	}
}

// Validate checks the settings only the CLI uses. Connection and folder
// settings are checked by pdfship.New.
func (c *Config) Validate() error {
	var errs *multierror.Error

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("log-level: %w", err))
	}
	if c.Watch && c.Debounce <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("debounce must be positive in watch mode"))
	}

	return errs.ErrorOrNil()
}

// Library converts the CLI configuration to the library configuration.
// Local paths starting with ~/ are expanded.
func (c *Config) Library() pdfship.Config {
	return pdfship.Config{
		Host:                  c.Host,
		Port:                  c.Port,
		Username:              c.Username,
		Password:              c.Password,
		SourceDir:             ExpandHome(c.SourceDir),
		DestDir:               c.DestDir,
		LedgerPath:            ExpandHome(c.LedgerPath),
		KnownHostsFile:        ExpandHome(c.KnownHostsFile),
		InsecureIgnoreHostKey: c.InsecureIgnoreHostKey,
		DialTimeout:           c.DialTimeout,
		SkipVerify:            !c.Verify,
		DryRun:                c.DryRun,
	}
}

// Masked returns a copy safe to log.
func (c Config) Masked() Config {
	if c.Password != "" {
		c.Password = "*****"
	}
	return c
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a positive int from a string and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return fmt.Errorf("parse %s: %d is not positive", flag, i)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts the forms strconv.ParseBool does ("1", "true", "false", ...).
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
