package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bip39 "github.com/tyler-smith/go-bip39"
)

func TestDeriveTopicDeterministic(t *testing.T) {
	a, err := DeriveTopic("friday-recovery")
	require.NoError(t, err)
	b, err := DeriveTopic("friday-recovery")
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical names must yield identical topics")
	assert.Len(t, a.String(), TopicSize*2)
}

func TestDeriveTopicDistinct(t *testing.T) {
	a, err := DeriveTopic("alpha")
	require.NoError(t, err)
	b, err := DeriveTopic("beta")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "different names must yield different topics")
}

func TestDeriveTopicTrimsWhitespace(t *testing.T) {
	a, err := DeriveTopic("  alpha ")
	require.NoError(t, err)
	b, err := DeriveTopic("alpha")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDeriveTopicEmptyName(t *testing.T) {
	_, err := DeriveTopic("   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestSuggest(t *testing.T) {
	wordSet := make(map[string]bool)
	for _, w := range bip39.GetWordList() {
		wordSet[w] = true
	}

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		name, err := Suggest()
		require.NoError(t, err)

		parts := strings.Split(name, "-")
		require.Len(t, parts, SuggestWords)
		for _, p := range parts {
			assert.True(t, wordSet[p], "word %q not in wordlist", p)
		}

		// Suggested names must be usable as sessions.
		_, err = DeriveTopic(name)
		require.NoError(t, err)

		seen[name] = true
	}

	// 20 draws from 2048^3 combinations repeating would mean broken randomness.
	assert.Greater(t, len(seen), 15)
}
