package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/splinter/internal/crypto"
	"github.com/mrz1836/splinter/internal/shamir"
	splerr "github.com/mrz1836/splinter/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// combineShares holds share texts given on the command line.
	combineShares []string
	// combineProtect decrypts passphrase-protected shares first.
	combineProtect bool
)

// combineCmd reconstructs a secret from locally held shares.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Reconstruct a secret from shares",
	Long: `Reconstruct a secret from shares held locally.

Shares are given with repeated --share flags or piped on stdin, one per
line. Supplying fewer shares than the secret's threshold produces
garbage, not an error, so double-check the count.

Examples:
  splinter combine --share 01:8a2f --share 03:c41b --share 05:77d0
  cat shares.txt | splinter combine
  cat protected.txt | splinter combine --protect`,
	RunE: runCombine,
}

// CombineResponse is the JSON shape of the combine command's output.
type CombineResponse struct {
	Secret string `json:"secret"`
	Shares int    `json:"shares"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().StringArrayVar(&combineShares, "share", nil, "share in index:payload hex form (repeatable)")
	combineCmd.Flags().BoolVar(&combineProtect, "protect", false, "shares are passphrase-protected")
}

func runCombine(cmd *cobra.Command, _ []string) error {
	texts := combineShares
	if len(texts) == 0 {
		var err error
		texts, err = readShareLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}
	if len(texts) == 0 {
		return splerr.WithSuggestion(
			splerr.ErrInvalidInput,
			"supply shares with --share or pipe them on stdin, one per line",
		)
	}

	if combineProtect {
		passphrase, err := promptExistingPassphraseFn()
		if err != nil {
			return err
		}
		defer zeroBytes(passphrase)

		// Protected input arrives as one armored block per share; stdin
		// splitting by line would have broken the armor apart, so rejoin
		// and split on armor boundaries.
		texts = splitArmoredBlocks(texts)
		for i, text := range texts {
			plain, decErr := crypto.DecryptArmored(text, string(passphrase))
			if decErr != nil {
				return splerr.Wrap(splerr.ErrDecryptionFailed, "share %d", i+1)
			}
			texts[i] = string(plain)
		}
	}

	shares := make([]shamir.Share, 0, len(texts))
	for _, text := range texts {
		s, err := shamir.Decode(text)
		if err != nil {
			return wrapShamirError(err)
		}
		shares = append(shares, s)
	}

	if err := shamir.Validate(shares, len(shares)); err != nil {
		return wrapShamirError(err)
	}

	raw, err := shamir.Reconstruct(shares)
	if err != nil {
		return wrapShamirError(err)
	}

	// The recovered secret sits in locked memory until it has been printed.
	secret, err := crypto.SecureBytesFromSlice(raw)
	zeroBytes(raw)
	if err != nil {
		return err
	}
	defer secret.Destroy()

	w := cmd.OutOrStdout()

	if formatter.IsJSON() {
		return writeJSON(w, CombineResponse{Secret: string(secret.Bytes()), Shares: len(shares)})
	}

	out(w, "%s\n", secret.Bytes())
	return nil
}

// splitArmoredBlocks regroups line-split input into whole age armor
// blocks. Non-armored lines pass through untouched.
func splitArmoredBlocks(lines []string) []string {
	const begin = "-----BEGIN AGE ENCRYPTED FILE-----"
	const end = "-----END AGE ENCRYPTED FILE-----"

	var blocks []string
	var current []string
	inBlock := false

	for _, line := range lines {
		switch {
		case line == begin:
			inBlock = true
			current = []string{line}
		case line == end && inBlock:
			current = append(current, line)
			blocks = append(blocks, strings.Join(current, "\n")+"\n")
			current = nil
			inBlock = false
		case inBlock:
			current = append(current, line)
		default:
			blocks = append(blocks, line)
		}
	}
	if inBlock {
		blocks = append(blocks, fmt.Sprintf("%s\n", strings.Join(current, "\n")))
	}
	return blocks
}
