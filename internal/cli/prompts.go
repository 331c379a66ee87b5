package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	splerr "github.com/mrz1836/splinter/pkg/errors"
)

// Prompt indirection points, swapped out in tests.
//
//nolint:gochecknoglobals // test seam for interactive prompts
var (
	promptPassphraseFn         = promptPassphrase
	promptExistingPassphraseFn = promptExistingPassphrase
	promptSecretFn             = promptSecret
)

// promptSecret prompts for the secret with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptSecret(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	secret, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading secret: %w", err)
	}

	return secret, nil
}

// promptPassphrase prompts for a share protection passphrase with
// confirmation. The caller is responsible for zeroing the returned bytes.
func promptPassphrase() ([]byte, error) {
	passphrase, err := promptSecret("Enter share passphrase: ")
	if err != nil {
		return nil, err
	}

	if len(passphrase) < 8 {
		zeroBytes(passphrase)
		return nil, splerr.WithSuggestion(
			splerr.ErrInvalidInput,
			"passphrase must be at least 8 characters",
		)
	}

	confirm, err := promptSecret("Confirm passphrase: ")
	if err != nil {
		zeroBytes(passphrase)
		return nil, err
	}
	defer zeroBytes(confirm)

	if string(passphrase) != string(confirm) {
		zeroBytes(passphrase)
		return nil, splerr.WithSuggestion(
			splerr.ErrInvalidInput,
			"passphrases do not match",
		)
	}

	return passphrase, nil
}

// promptExistingPassphrase prompts once, for decrypting protected shares.
func promptExistingPassphrase() ([]byte, error) {
	return promptSecret("Enter share passphrase: ")
}

// readSecret obtains the secret to split: from stdin when piped, from a
// hidden prompt when interactive. A trailing newline from piped input is
// stripped so `echo secret | splinter split` behaves as expected.
func readSecret(stdin io.Reader) ([]byte, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // G115: Fd() returns uintptr, safe conversion for term.IsTerminal
		return promptSecretFn("Enter secret: ")
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading secret from stdin: %w", err)
	}
	data = []byte(strings.TrimRight(string(data), "\r\n"))
	return data, nil
}

// readShareLines reads share texts from the reader, one per line, skipping
// blank lines.
func readShareLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading shares: %w", err)
	}
	return lines, nil
}
