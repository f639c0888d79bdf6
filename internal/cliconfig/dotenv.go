package cliconfig

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/subosito/gotenv"
)

// DefaultEnvFile is loaded from the working directory when present.
const DefaultEnvFile = ".env"

// LoadDotEnv copies KEY=VALUE pairs from a .env file into the process
// environment. Variables that are already set keep their value. A missing
// file is an error only when required is true.
func LoadDotEnv(fsys afero.Fs, path string, required bool) error {
	f, err := fsys.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("open env file %s: %w", path, err)
	}
	defer f.Close()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return fmt.Errorf("parse env file %s: %w", path, err)
	}

	for k, v := range env {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return nil
}
