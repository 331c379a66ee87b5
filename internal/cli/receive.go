package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrz1836/splinter/internal/output"
	"github.com/mrz1836/splinter/internal/protocol"
	"github.com/mrz1836/splinter/internal/session"
	"github.com/mrz1836/splinter/internal/transport"
	splerr "github.com/mrz1836/splinter/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// receiveSession names the rendezvous session.
	receiveSession string
	// receiveRelay overrides the configured relay URL.
	receiveRelay string
	// receiveQR renders the received share as a QR code.
	receiveQR bool
)

// receiveCmd waits for one share from a dealer.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Receive one share from a dealer",
	Long: `Join a session and wait for the dealer to hand over one share.

Each holder runs this during initial distribution. Store the printed
share somewhere safe, it is your stake in the secret.

Examples:
  splinter receive --session team-vault
  splinter receive --session team-vault --qr`,
	RunE: runReceive,
}

// ReceiveResponse is the JSON shape of the receive command's output.
type ReceiveResponse struct {
	Session    string `json:"session"`
	ShareIndex int    `json:"shareIndex"`
	Share      string `json:"share"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(receiveCmd)

	receiveCmd.Flags().StringVarP(&receiveSession, "session", "s", "", "session name peers rendezvous on (required)")
	receiveCmd.Flags().StringVar(&receiveRelay, "relay", "", "relay URL (default: configured relay)")
	receiveCmd.Flags().BoolVar(&receiveQR, "qr", false, "render the received share as a QR code")
	_ = receiveCmd.MarkFlagRequired("session")
}

func runReceive(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	topic, err := session.DeriveTopic(receiveSession)
	if err != nil {
		return splerr.WithSuggestion(splerr.ErrEmptySessionName, "pass a session name with --session")
	}

	swarm := transport.NewWSSwarm(relayURL(receiveRelay))
	receiver := protocol.NewReceiver(receiveSession, logger)
	runtime := protocol.NewRuntime(swarm, transport.JoinOptions{Server: true}, logger)

	output.Noticef("Waiting for a share on session %q...", receiveSession)

	if _, err = runtime.Run(ctx, topic, receiver); err != nil {
		return splerr.Wrap(splerr.ErrTransport, "receiving on session %q", receiveSession)
	}

	share := receiver.Share()
	text := share.Encode()

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, ReceiveResponse{
			Session:    receiveSession,
			ShareIndex: int(share.Index),
			Share:      text,
		})
	}

	out(w, "Received share %d:\n%s\n", share.Index, text)
	if receiveQR {
		return output.RenderQR(w, text, output.DefaultQRConfig())
	}
	return nil
}
