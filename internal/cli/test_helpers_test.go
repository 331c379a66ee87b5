package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mrz1836/splinter/internal/config"
	"github.com/mrz1836/splinter/internal/output"
)

// setupCLI initializes the package globals for a test run and restores
// them on cleanup.
func setupCLI(t *testing.T, format output.Format) {
	t.Helper()

	origCfg, origLogger, origFormatter := cfg, logger, formatter
	t.Cleanup(func() {
		cfg, logger, formatter = origCfg, origLogger, origFormatter
	})

	cfg = config.Defaults()
	cfg.Home = t.TempDir()
	logger = config.NullLogger()
	formatter = output.NewFormatter(format, io.Discard)
}

// newTestCmd builds a command with captured output and the given stdin.
func newTestCmd(stdin string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(bytes.NewBufferString(stdin))
	return cmd, &buf
}

// withMockPrompts replaces prompt functions for testing and restores on cleanup.
func withMockPrompts(t *testing.T, passphrase []byte) {
	t.Helper()
	origPassphrase := promptPassphraseFn
	origExisting := promptExistingPassphraseFn
	origSecret := promptSecretFn
	t.Cleanup(func() {
		promptPassphraseFn = origPassphrase
		promptExistingPassphraseFn = origExisting
		promptSecretFn = origSecret
	})
	promptPassphraseFn = func() ([]byte, error) {
		cp := make([]byte, len(passphrase))
		copy(cp, passphrase)
		return cp, nil
	}
	promptExistingPassphraseFn = func() ([]byte, error) {
		cp := make([]byte, len(passphrase))
		copy(cp, passphrase)
		return cp, nil
	}
	promptSecretFn = func(_ string) ([]byte, error) {
		return []byte("prompted secret"), nil
	}
}
