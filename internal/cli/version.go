package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	versionpkg "github.com/mrz1836/splinter/internal/version"
	splerr "github.com/mrz1836/splinter/pkg/errors"
)

const (
	// devVersionString is the string used for development builds.
	devVersionString = "dev"
	// releaseOwner is the GitHub repository owner.
	releaseOwner = "mrz1836"
	// releaseRepo is the GitHub repository name.
	releaseRepo = "splinter"
)

// BuildInfo carries the version metadata stamped in at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// buildInfo holds the values set by SetBuildInfo.
//
//nolint:gochecknoglobals // Populated once from main before Execute
var buildInfo BuildInfo

// SetBuildInfo records the build metadata shown by the version command.
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
}

// versionCheck enables the update check against GitHub releases.
//
//nolint:gochecknoglobals // Cobra flag variables are package-level by convention
var versionCheck bool

// versionCmd prints build information.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Print the splinter version, commit, and build date.

With --check, also query GitHub for the latest release and report
whether a newer version is available.

Example:
  splinter version
  splinter version --check`,
	RunE: runVersion,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

// VersionResponse is the JSON shape of the version command.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Latest  string `json:"latest,omitempty"`
	Newer   bool   `json:"updateAvailable,omitempty"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	resp := VersionResponse{
		Version: currentVersion(),
		Commit:  buildInfo.Commit,
		Date:    buildInfo.Date,
	}

	if versionCheck {
		release, err := versionpkg.GetLatestRelease(cmd.Context(), releaseOwner, releaseRepo)
		if err != nil {
			return splerr.WithSuggestion(
				splerr.Wrap(splerr.ErrTransport, "checking for updates: %v", err),
				"verify network access to api.github.com")
		}
		resp.Latest = strings.TrimPrefix(release.TagName, "v")
		resp.Newer = versionpkg.IsNewerVersion(resp.Version, resp.Latest)
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, resp)
	}

	outln(w, formatVersion(buildInfo))
	if versionCheck {
		if resp.Newer {
			out(w, "A newer version is available: v%s\n", resp.Latest)
		} else {
			outln(w, "You are on the latest version")
		}
	}
	return nil
}

// currentVersion returns the stamped version, or "dev" for local builds.
func currentVersion() string {
	if buildInfo.Version == "" {
		return devVersionString
	}
	return buildInfo.Version
}

// formatVersion renders build metadata for human output.
func formatVersion(info BuildInfo) string {
	version := info.Version
	if version == "" {
		version = devVersionString
	}
	commit := info.Commit
	if commit == "" {
		commit = "unknown"
	}
	date := info.Date
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}
