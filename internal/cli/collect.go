package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrz1836/splinter/internal/output"
	"github.com/mrz1836/splinter/internal/protocol"
	"github.com/mrz1836/splinter/internal/session"
	"github.com/mrz1836/splinter/internal/shamir"
	"github.com/mrz1836/splinter/internal/transport"
	splerr "github.com/mrz1836/splinter/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// collectSession names the rendezvous session.
	collectSession string
	// collectRelay overrides the configured relay URL.
	collectRelay string
	// collectThreshold is the number of unique shares to gather.
	collectThreshold int
	// collectOwn is a share the collector already holds.
	collectOwn string
)

// collectCmd gathers shares from peers and reconstructs the secret.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect shares from peers and reconstruct the secret",
	Long: `Join a session, gather shares from holders, and print the secret
once the threshold number of distinct shares has arrived.

Holders feed the collection by re-dealing their share:
  splinter deal --session <name> --share <their share>

A share the collector holds itself goes in with --share so one fewer
peer is needed.

Examples:
  splinter collect --session recover-vault -k 3
  splinter collect --session recover-vault -k 3 --share 01:8a2f`,
	RunE: runCollect,
}

// CollectResponse is the JSON shape of the collect command's output.
type CollectResponse struct {
	Session string `json:"session"`
	Shares  []int  `json:"shareIndexes"`
	Secret  string `json:"secret"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringVarP(&collectSession, "session", "s", "", "session name peers rendezvous on (required)")
	collectCmd.Flags().StringVar(&collectRelay, "relay", "", "relay URL (default: configured relay)")
	collectCmd.Flags().IntVarP(&collectThreshold, "threshold", "k", 3, "shares needed to reconstruct")
	collectCmd.Flags().StringVar(&collectOwn, "share", "", "share already held by the collector")
	_ = collectCmd.MarkFlagRequired("session")
}

func runCollect(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	topic, err := session.DeriveTopic(collectSession)
	if err != nil {
		return splerr.WithSuggestion(splerr.ErrEmptySessionName, "pass a session name with --session")
	}

	var own *shamir.Share
	if collectOwn != "" {
		s, decErr := shamir.Decode(collectOwn)
		if decErr != nil {
			return wrapShamirError(decErr)
		}
		own = &s
	}

	swarm := transport.NewWSSwarm(relayURL(collectRelay))
	collector := protocol.NewCollector(collectSession, collectThreshold, own, logger)
	runtime := protocol.NewRuntime(swarm, transport.JoinOptions{Server: true}, logger)

	output.Noticef("Collecting %d shares on session %q...", collectThreshold, collectSession)

	secret, err := runtime.Run(ctx, topic, collector)
	if err != nil {
		return splerr.Wrap(splerr.ErrTransport, "collecting on session %q", collectSession)
	}
	defer zeroBytes(secret)

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		indexes := make([]int, 0, collectThreshold)
		for _, idx := range collector.Held()[:collectThreshold] {
			indexes = append(indexes, int(idx))
		}
		return writeJSON(w, CollectResponse{
			Session: collectSession,
			Shares:  indexes,
			Secret:  string(secret),
		})
	}

	out(w, "%s\n", secret)
	return nil
}
