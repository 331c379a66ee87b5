package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/splinter/internal/crypto"
	"github.com/mrz1836/splinter/internal/output"
	"github.com/mrz1836/splinter/internal/shamir"
	splerr "github.com/mrz1836/splinter/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// splitShares is the total number of shares to produce.
	splitShares int
	// splitThreshold is the number of shares needed to reconstruct.
	splitThreshold int
	// splitQR renders each share as a terminal QR code.
	splitQR bool
	// splitProtect encrypts each share with a passphrase.
	splitProtect bool
)

// splitCmd splits a secret into shares.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a secret into threshold shares",
	Long: `Split a secret into n shares of which any k reconstruct it.

The secret is read from stdin when piped, or prompted for with hidden
input when run interactively. Each share prints on its own line in
index:payload hex form.

Examples:
  echo -n "launch codes" | splinter split -n 5 -k 3
  splinter split -n 5 -k 3 --qr
  splinter split -n 5 -k 3 --protect`,
	RunE: runSplit,
}

// SplitResponse is the JSON shape of the split command's output.
type SplitResponse struct {
	TotalShares int      `json:"totalShares"`
	Threshold   int      `json:"threshold"`
	Shares      []string `json:"shares"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().IntVarP(&splitShares, "shares", "n", 5, "total number of shares")
	splitCmd.Flags().IntVarP(&splitThreshold, "threshold", "k", 3, "shares needed to reconstruct")
	splitCmd.Flags().BoolVar(&splitQR, "qr", false, "render each share as a QR code")
	splitCmd.Flags().BoolVar(&splitProtect, "protect", false, "encrypt each share with a passphrase")
}

func runSplit(cmd *cobra.Command, _ []string) error {
	raw, err := readSecret(cmd.InOrStdin())
	if err != nil {
		return err
	}

	// Move the secret into locked memory for the window between reading
	// and splitting it.
	secret, err := crypto.SecureBytesFromSlice(raw)
	zeroBytes(raw)
	if err != nil {
		return err
	}
	defer secret.Destroy()

	shares, err := shamir.Split(secret.Bytes(), splitShares, splitThreshold)
	if err != nil {
		return wrapShamirError(err)
	}

	texts := make([]string, len(shares))
	for i, s := range shares {
		texts[i] = s.Encode()
	}

	if splitProtect {
		passphrase, promptErr := promptPassphraseFn()
		if promptErr != nil {
			return promptErr
		}
		defer zeroBytes(passphrase)

		for i, text := range texts {
			armored, encErr := crypto.EncryptArmored([]byte(text), string(passphrase))
			if encErr != nil {
				return fmt.Errorf("protecting share %d: %w", shares[i].Index, encErr)
			}
			texts[i] = armored
		}
	}

	w := cmd.OutOrStdout()

	if formatter.IsJSON() {
		return writeJSON(w, SplitResponse{
			TotalShares: splitShares,
			Threshold:   splitThreshold,
			Shares:      texts,
		})
	}

	out(w, "Split into %d shares, any %d reconstruct\n\n", splitShares, splitThreshold)
	for i, text := range texts {
		outln(w, text)
		if splitQR {
			if qrErr := output.RenderQR(w, text, output.DefaultQRConfig()); qrErr != nil {
				return qrErr
			}
		}
		if i < len(texts)-1 && splitProtect {
			outln(w)
		}
	}

	return nil
}

// wrapShamirError maps share arithmetic failures onto the CLI error
// taxonomy so exit codes and suggestions stay consistent.
func wrapShamirError(err error) error {
	switch {
	case errors.Is(err, shamir.ErrSecretEmpty):
		return splerr.WithSuggestion(splerr.ErrEmptySecret, "provide a non-empty secret on stdin")
	case errors.Is(err, shamir.ErrThresholdInvalid),
		errors.Is(err, shamir.ErrSharesInsufficient),
		errors.Is(err, shamir.ErrSharesExceedMax):
		return splerr.WithDetails(splerr.ErrInvalidThreshold, map[string]string{"cause": err.Error()})
	case errors.Is(err, shamir.ErrMalformedShare), errors.Is(err, shamir.ErrInvalidIndex):
		return splerr.WithSuggestion(splerr.ErrMalformedShare, "shares look like 01:8a2f with a two-digit hex index")
	case errors.Is(err, shamir.ErrNotEnoughShares), errors.Is(err, shamir.ErrNoShares):
		return splerr.WithDetails(splerr.ErrNotEnoughShares, map[string]string{"cause": err.Error()})
	case errors.Is(err, shamir.ErrDuplicateIndex), errors.Is(err, shamir.ErrDivisionByZero):
		return splerr.WithSuggestion(
			splerr.ErrInvalidInput,
			"two shares carry the same index, each share must be distinct",
		)
	case errors.Is(err, shamir.ErrLengthMismatch):
		return splerr.WithSuggestion(splerr.ErrInvalidInput, "all shares of one secret have the same payload length")
	default:
		return err
	}
}
