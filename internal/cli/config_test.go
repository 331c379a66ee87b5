package cli

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/splinter/internal/config"
	"github.com/mrz1836/splinter/internal/output"
	splerr "github.com/mrz1836/splinter/pkg/errors"
)

func TestConfigInit(t *testing.T) {
	setupCLI(t, output.FormatText)
	configForce = false

	cmd, buf := newTestCmd("")
	require.NoError(t, runConfigInit(cmd, nil))
	assert.Contains(t, buf.String(), "Configuration initialized")

	_, err := os.Stat(config.Path(cfg.Home))
	require.NoError(t, err)

	// Second init without --force refuses
	cmd, _ = newTestCmd("")
	err = runConfigInit(cmd, nil)
	assert.Error(t, err)

	// --force overwrites
	configForce = true
	t.Cleanup(func() { configForce = false })
	cmd, _ = newTestCmd("")
	require.NoError(t, runConfigInit(cmd, nil))
}

func TestConfigShow_Text(t *testing.T) {
	setupCLI(t, output.FormatText)

	cmd, buf := newTestCmd("")
	require.NoError(t, runConfigShow(cmd, nil))

	for _, key := range config.Keys() {
		assert.Contains(t, buf.String(), key)
	}
}

func TestConfigShow_JSON(t *testing.T) {
	setupCLI(t, output.FormatJSON)

	cmd, buf := newTestCmd("")
	require.NoError(t, runConfigShow(cmd, nil))

	var values map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &values))
	assert.Len(t, values, len(config.Keys()))
	assert.Equal(t, config.DefaultRelayURL, values["relay.url"])
}

func TestConfigSetGet(t *testing.T) {
	setupCLI(t, output.FormatText)

	cmd, _ := newTestCmd("")
	require.NoError(t, runConfigSet(cmd, []string{"relay.url", "ws://relay.example.com/join"}))

	// Set writes through to disk; reload to observe it
	loaded, err := config.Load(config.Path(cfg.Home))
	require.NoError(t, err)
	assert.Equal(t, "ws://relay.example.com/join", loaded.Relay.URL)
}

func TestConfigGet_Known(t *testing.T) {
	setupCLI(t, output.FormatText)
	cfg.Logging.Level = "debug"

	cmd, buf := newTestCmd("")
	require.NoError(t, runConfigGet(cmd, []string{"logging.level"}))
	assert.Equal(t, "debug", strings.TrimSpace(buf.String()))
}

func TestConfigGet_UnknownSuggestsClosest(t *testing.T) {
	setupCLI(t, output.FormatText)

	cmd, _ := newTestCmd("")
	err := runConfigGet(cmd, []string{"relay.ur"})
	require.Error(t, err)
	assert.ErrorIs(t, err, splerr.ErrUnknownConfigKey)

	var se *splerr.SplinterError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Suggestion, "relay.url")
}

func TestConfigSet_UnknownKey(t *testing.T) {
	setupCLI(t, output.FormatText)

	cmd, _ := newTestCmd("")
	err := runConfigSet(cmd, []string{"no.such.key", "v"})
	assert.ErrorIs(t, err, splerr.ErrUnknownConfigKey)
}
