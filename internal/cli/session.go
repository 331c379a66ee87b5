package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/splinter/internal/session"
	splerr "github.com/mrz1836/splinter/pkg/errors"
)

// sessionCmd is the parent command for session operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Work with rendezvous sessions",
	Long:  `Suggest session names and inspect the topics they derive.`,
}

// sessionSuggestCmd suggests a memorable session name.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sessionSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest a random memorable session name",
	Long: `Print a random, memorable session name for peers to agree on
out-of-band.

Example:
  splinter session suggest`,
	RunE: runSessionSuggest,
}

// sessionTopicCmd shows the topic a session name derives to.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sessionTopicCmd = &cobra.Command{
	Use:   "topic <name>",
	Short: "Show the rendezvous topic for a session name",
	Long: `Derive and print the topic a session name maps to. Peers on the
same name always land on the same topic; the name itself never reaches
the relay.

Example:
  splinter session topic team-vault`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionTopic,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionSuggestCmd)
	sessionCmd.AddCommand(sessionTopicCmd)
}

func runSessionSuggest(cmd *cobra.Command, _ []string) error {
	name, err := session.Suggest()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string]string{"session": name})
	}
	outln(w, name)
	return nil
}

func runSessionTopic(cmd *cobra.Command, args []string) error {
	topic, err := session.DeriveTopic(args[0])
	if err != nil {
		return splerr.WithSuggestion(splerr.ErrEmptySessionName, "give the session name as an argument")
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string]string{"session": args[0], "topic": topic.String()})
	}
	outln(w, topic.String())
	return nil
}
