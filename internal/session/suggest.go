package session

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	bip39 "github.com/tyler-smith/go-bip39"
)

// SuggestWords is the number of words in a suggested session name.
// Three words from a 2048-word list give 33 bits of name entropy, enough
// that unrelated groups will not collide on a rendezvous topic by accident.
const SuggestWords = 3

// Suggest generates a random, memorable session name by drawing words
// from the BIP39 english wordlist, joined with dashes
// (e.g. "ripple-cabin-acoustic"). The name is only a rendezvous label;
// the secrecy of the shared secret never depends on it.
func Suggest() (string, error) {
	words := bip39.GetWordList()
	max := big.NewInt(int64(len(words)))

	picks := make([]string, SuggestWords)
	for i := range picks {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw session word: %w", err)
		}
		picks[i] = words[n.Int64()]
	}

	return strings.Join(picks, "-"), nil
}
