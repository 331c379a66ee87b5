package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrz1836/splinter/internal/relay"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var relayListen string

// relayCmd runs the rendezvous relay server.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run the rendezvous relay server",
	Long: `Run the relay peers use to find each other.

The relay only forwards opaque frames between members of a topic; it
never sees shares in the clear beyond what peers choose to send.

Examples:
  splinter relay
  splinter relay --listen :9400`,
	RunE: runRelay,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(relayCmd)

	relayCmd.Flags().StringVar(&relayListen, "listen", "", "listen address (default: configured relay.listen)")
}

func runRelay(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := relayListen
	if addr == "" {
		addr = cfg.Relay.Listen
	}

	r := relay.New(cfg.Relay.JoinRatePerSecond, cfg.Relay.JoinBurst, logger)

	out(cmd.OutOrStdout(), "Relay listening on %s\n", addr)
	return r.ListenAndServe(ctx, addr)
}
