package cli

import (
	"fmt"
	"os"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	"github.com/mrz1836/splinter/internal/config"
	splerr "github.com/mrz1836/splinter/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify Splinter configuration settings.`,
}

// configInitCmd initializes the configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.splinter/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.

Example:
  splinter config init
  splinter config init --force`,
	RunE: runConfigInit,
}

// configShowCmd shows the current configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the current configuration settings.

Example:
  splinter config show
  splinter config show -o json`,
	RunE: runConfigShow,
}

// configGetCmd gets a specific configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a specific configuration value by key.

Examples:
  splinter config get relay.url
  splinter config get output.default_format
  splinter config get logging.level`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value by key.

The configuration file will be updated immediately.

Examples:
  splinter config set relay.url ws://relay.example.com:9400/join
  splinter config set output.default_format json
  splinter config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.Home)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !configForce {
		return splerr.WithSuggestion(
			splerr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	// Create default config
	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home

	// Write config file
	if err := config.Save(defaultCfg, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - relay.url: The relay endpoint peers dial")
	outln(w, "  - relay.listen: Bind address for 'splinter relay'")
	outln(w, "  - output.default_format: Output format (text/json)")
	outln(w, "  - logging.level: Log level (off/error/info/debug)")

	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	if formatter.IsJSON() {
		values := make(map[string]string, len(config.Keys()))
		for _, key := range config.Keys() {
			v, err := cfg.Get(key)
			if err != nil {
				return err
			}
			values[key] = v
		}
		return writeJSON(w, values)
	}

	for _, key := range config.Keys() {
		v, err := cfg.Get(key)
		if err != nil {
			return err
		}
		out(w, "%-24s %s\n", key, v)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	value, err := cfg.Get(key)
	if err != nil {
		return unknownKeyError(key)
	}

	w := cmd.OutOrStdout()
	outln(w, value)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Load current config from file
	configPath := config.Path(cfg.Home)
	currentCfg, err := config.Load(configPath)
	if err != nil {
		// If file doesn't exist, start with defaults
		currentCfg = config.Defaults()
		currentCfg.Home = cfg.Home
	}

	if err := currentCfg.Set(key, value); err != nil {
		return unknownKeyError(key)
	}

	// Save updated config
	if err := config.Save(currentCfg, configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Set %s = %s\n", key, value)

	return nil
}

// unknownKeyError builds the error for a bad config key, suggesting the
// closest known key when one is plausibly a typo.
func unknownKeyError(key string) error {
	err := splerr.WithDetails(splerr.ErrUnknownConfigKey, map[string]string{"key": key})

	best := ""
	bestDist := 4 // farther than this is not a typo
	for _, candidate := range config.Keys() {
		dist := levenshtein.ComputeDistance(key, candidate)
		if dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	if best != "" {
		return splerr.WithSuggestion(err, fmt.Sprintf("did you mean '%s'?", best))
	}
	return splerr.WithSuggestion(err, "run 'splinter config show' to list keys")
}
