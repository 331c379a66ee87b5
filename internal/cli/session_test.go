package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/splinter/internal/output"
	splerr "github.com/mrz1836/splinter/pkg/errors"
)

func TestSessionSuggest(t *testing.T) {
	setupCLI(t, output.FormatText)

	cmd, buf := newTestCmd("")
	require.NoError(t, runSessionSuggest(cmd, nil))

	name := strings.TrimSpace(buf.String())
	assert.NotEmpty(t, name)
	assert.Len(t, strings.Split(name, "-"), 3)
}

func TestSessionTopic_Deterministic(t *testing.T) {
	setupCLI(t, output.FormatText)

	cmd, buf := newTestCmd("")
	require.NoError(t, runSessionTopic(cmd, []string{"team-vault"}))
	first := strings.TrimSpace(buf.String())
	assert.Len(t, first, 64, "topic prints as 32 hex-encoded bytes")

	cmd, buf = newTestCmd("")
	require.NoError(t, runSessionTopic(cmd, []string{"team-vault"}))
	assert.Equal(t, first, strings.TrimSpace(buf.String()))
}

func TestSessionTopic_JSON(t *testing.T) {
	setupCLI(t, output.FormatJSON)

	cmd, buf := newTestCmd("")
	require.NoError(t, runSessionTopic(cmd, []string{"team-vault"}))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "team-vault", resp["session"])
	assert.Len(t, resp["topic"], 64)
}

func TestSessionTopic_EmptyName(t *testing.T) {
	setupCLI(t, output.FormatText)

	cmd, _ := newTestCmd("")
	err := runSessionTopic(cmd, []string{"   "})
	assert.ErrorIs(t, err, splerr.ErrEmptySessionName)
}
