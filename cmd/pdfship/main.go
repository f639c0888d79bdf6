package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/pdfship/internal/cliconfig"
	"github.com/bft-labs/pdfship/pkg/log"
	"github.com/bft-labs/pdfship/pkg/pdfship"
)

const helpDescription = `
Send new PDFs from a local folder to your e-reader over SFTP.

Highlights:
  - Skips files already on the device or already sent before.
  - Keeps a plain-text ledger (one file name per line) next to you.
  - Checks the device listing after every transfer.
  - Configure via config file, .env, environment, or flags.
`

var exampleUsage = strings.TrimSpace(`
  pdfship --host 192.168.15.244 --password secret --source ~/books --dest /mnt/us/documents
  pdfship --env-file ~/.pdfship/kindle.env --dry-run
  pdfship --watch --debounce 5s
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath, envFile string

	// Replaced once the log level and file are known.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:           "pdfship",
		Short:         "Send new PDFs from a local folder to your e-reader over SFTP",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			osFs := afero.NewOsFs()

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// Config file first (default $HOME/.pdfship/config.toml)
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgPath != "" && !cliconfig.FileExists(osFs, cfgPath) {
				return fmt.Errorf("config file %s not found", cfgPath)
			}
			if cfgFile != "" && cliconfig.FileExists(osFs, cfgFile) {
				fc, err := cliconfig.LoadFileConfig(osFs, cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// .env fills the process environment without overriding it
			dotEnv := envFile
			if dotEnv == "" {
				dotEnv = cliconfig.DefaultEnvFile
			}
			if err := cliconfig.LoadDotEnv(osFs, dotEnv, envFile != ""); err != nil {
				return err
			}

			// Environment overrides file config; flags override both
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			l, closer, err := cliconfig.NewLogger(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			defer closer.Close()
			logger = l

			logger.Debug().Interface("config", cfg.Masked()).Msg("configuration")

			s, err := pdfship.New(cfg.Library(),
				pdfship.WithLogger(log.NewZerologAdapterWithLogger(logger)),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Watch {
				return s.Watch(ctx, cfg.Debounce)
			}
			_, err = s.Run(ctx)
			return err
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.pdfship/config.toml)")
	root.Flags().StringVar(&envFile, "env-file", "", "path to .env file (default: ./.env if present)")

	root.Flags().StringVar(&cfg.Host, "host", cfg.Host, "device address ("+cliconfig.EnvHost+")")
	root.Flags().IntVar(&cfg.Port, "port", cfg.Port, "SSH port ("+cliconfig.EnvPort+")")
	root.Flags().StringVar(&cfg.Username, "username", cfg.Username, "SSH user ("+cliconfig.EnvUsername+")")
	root.Flags().StringVar(&cfg.Password, "password", cfg.Password, "SSH password ("+cliconfig.EnvPassword+")")

	root.Flags().StringVar(&cfg.SourceDir, "source", cfg.SourceDir, "local folder with PDFs ("+cliconfig.EnvSourceFolder+")")
	root.Flags().StringVar(&cfg.DestDir, "dest", cfg.DestDir, "absolute folder on the device ("+cliconfig.EnvDestFolder+")")
	root.Flags().StringVar(&cfg.LedgerPath, "ledger", cfg.LedgerPath, "file recording names already sent")

	root.Flags().StringVar(&cfg.KnownHostsFile, "known-hosts", cfg.KnownHostsFile, "known_hosts file used to pin the device host key")
	root.Flags().BoolVar(&cfg.InsecureIgnoreHostKey, "insecure-ignore-host-key", cfg.InsecureIgnoreHostKey, "accept any host key")
	root.Flags().DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "timeout for connecting and authenticating")

	root.Flags().BoolVar(&cfg.Verify, "verify", cfg.Verify, "check the device listing after sending")
	root.Flags().BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "show what would be sent without sending")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "keep running and send new PDFs as they appear")
	root.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet period before a watch-triggered run")

	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write logs to this file, rotated by size")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")

	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Error().Err(err).Msg("pdfship")
		os.Exit(1)
	}
}
