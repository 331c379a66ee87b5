package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrz1836/splinter/internal/crypto"
	"github.com/mrz1836/splinter/internal/output"
	"github.com/mrz1836/splinter/internal/protocol"
	"github.com/mrz1836/splinter/internal/session"
	"github.com/mrz1836/splinter/internal/shamir"
	"github.com/mrz1836/splinter/internal/transport"
	splerr "github.com/mrz1836/splinter/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// dealSession names the rendezvous session.
	dealSession string
	// dealRelay overrides the configured relay URL.
	dealRelay string
	// dealShares is the total number of shares for a fresh split.
	dealShares int
	// dealThreshold is the number of shares needed to reconstruct.
	dealThreshold int
	// dealHeld holds already-issued shares to re-deal during recovery.
	dealHeld []string
)

// dealCmd distributes shares to peers over the relay.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Deal shares to peers through the relay",
	Long: `Deal shares to peers rendezvousing on a session.

Without --share this reads a secret, splits it, and hands one share to
each peer that joins the session: run 'splinter receive' on each holder.
With --share it re-deals already-held shares instead, which is how a
holder feeds a recovery: the collector runs 'splinter collect' on the
same session.

Examples:
  echo -n "launch codes" | splinter deal --session team-vault -n 5 -k 3
  splinter deal --session recover-vault --share 03:c41b -k 3`,
	RunE: runDeal,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(dealCmd)

	dealCmd.Flags().StringVarP(&dealSession, "session", "s", "", "session name peers rendezvous on (required)")
	dealCmd.Flags().StringVar(&dealRelay, "relay", "", "relay URL (default: configured relay)")
	dealCmd.Flags().IntVarP(&dealShares, "shares", "n", 5, "total number of shares")
	dealCmd.Flags().IntVarP(&dealThreshold, "threshold", "k", 3, "shares needed to reconstruct")
	dealCmd.Flags().StringArrayVar(&dealHeld, "share", nil, "held share to re-deal (repeatable)")
	_ = dealCmd.MarkFlagRequired("session")
}

func runDeal(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	topic, err := session.DeriveTopic(dealSession)
	if err != nil {
		return splerr.WithSuggestion(splerr.ErrEmptySessionName, "pass a session name with --session")
	}

	var shares []shamir.Share
	switch {
	case len(dealHeld) > 0:
		for _, text := range dealHeld {
			s, decErr := shamir.Decode(text)
			if decErr != nil {
				return wrapShamirError(decErr)
			}
			shares = append(shares, s)
		}
	default:
		raw, readErr := readSecret(cmd.InOrStdin())
		if readErr != nil {
			return readErr
		}

		secret, secErr := crypto.SecureBytesFromSlice(raw)
		zeroBytes(raw)
		if secErr != nil {
			return secErr
		}
		defer secret.Destroy()

		shares, err = shamir.Split(secret.Bytes(), dealShares, dealThreshold)
		if err != nil {
			return wrapShamirError(err)
		}
	}

	swarm := transport.NewWSSwarm(relayURL(dealRelay))
	dealer := protocol.NewDealer(dealSession, shares, dealThreshold, logger)
	runtime := protocol.NewRuntime(swarm, transport.JoinOptions{Client: true}, logger)

	output.Noticef("Dealing %d shares on session %q, waiting for peers...", len(shares), dealSession)

	if _, err = runtime.Run(ctx, topic, dealer); err != nil {
		return splerr.Wrap(splerr.ErrTransport, "dealing on session %q", dealSession)
	}

	if formatter.IsJSON() {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"session":     dealSession,
			"distributed": dealer.Distributed(),
		})
	}
	output.Successf("All %d shares dealt", dealer.Distributed())
	return nil
}

// relayURL picks the relay endpoint: explicit flag first, then config.
func relayURL(override string) string {
	if override != "" {
		return override
	}
	return cfg.Relay.URL
}
