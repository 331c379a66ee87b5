// Package cli implements the Splinter command-line interface.
//
// CLI state lives in package globals, the usual shape for cobra
// applications: PersistentPreRunE fills them in, PersistentPostRun
// tears them down.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/splinter/internal/config"
	"github.com/mrz1836/splinter/internal/output"
	splerr "github.com/mrz1836/splinter/pkg/errors"
)

var (
	// Persistent flags
	homeDir      string
	outputFormat string
	verbose      bool

	// Filled in by initGlobals before any RunE fires
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "splinter",
	Short: "Split secrets into shares and distribute them to peers",
	Long: `Splinter splits a secret into threshold shares and hands one share to
each holder over a rendezvous relay. Any threshold-sized subset of the
shares reconstructs the secret; fewer reveal nothing.

Example:
  splinter split -n 5 -k 3
  splinter deal --session team-vault -n 5 -k 3
  splinter collect --session team-vault -k 3`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initGlobals()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command and renders any error it returns.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if formatter != nil {
			_ = output.FormatError(os.Stderr, err, formatter.Format())
		} else {
			_ = output.FormatError(os.Stderr, err, output.FormatText)
		}
		return err
	}
	return nil
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	return splerr.ExitCode(err)
}

// initGlobals resolves config, logger, and formatter. Precedence:
// flags over environment over config file over defaults.
func initGlobals() error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	var err error
	cfg, err = config.Load(config.Path(home))
	if err != nil {
		// No config file yet; run on defaults.
		cfg = config.Defaults()
		cfg.Home = home
	}

	config.ApplyEnvironment(cfg)

	if homeDir != "" {
		cfg.Home = homeDir
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" && outputFormat != "auto" {
		cfg.Output.DefaultFormat = outputFormat
	}

	logger, err = config.NewLogger(config.ParseLogLevel(cfg.Logging.Level), cfg.Logging.File)
	if err != nil {
		// An unwritable log file must not block the command.
		logger = config.NullLogger()
	}

	explicit := output.ParseFormat(cfg.Output.DefaultFormat)
	formatter = output.NewFormatter(output.DetectFormat(os.Stdout, explicit), os.Stdout)

	return nil
}

func cleanup() {
	if logger != nil {
		_ = logger.Close()
	}
}

// Config exposes the resolved configuration.
func Config() *config.Config {
	return cfg
}

// Logger exposes the active logger.
func Logger() *config.Logger {
	return logger
}

// Formatter exposes the active output formatter.
func Formatter() *output.Formatter {
	return formatter
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "splinter data directory (default: ~/.splinter)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
