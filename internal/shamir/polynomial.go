package shamir

import (
	"crypto/rand"
	"fmt"
)

// evaluate computes the polynomial with the given coefficients at x using
// Horner's rule over the field. coeffs[0] is the constant term.
// Deterministic, no side effects, O(len(coeffs)).
func evaluate(coeffs []byte, x byte) byte {
	var result byte
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = gfAdd(gfMul(result, x), coeffs[i])
	}
	return result
}

// randomCoefficients fills coeffs[1:] with uniformly random nonzero field
// elements, leaving coeffs[0] (the secret byte) untouched. Zero draws are
// resampled rather than patched to a fixed value, so the polynomial keeps
// degree k-1 exactly without biasing toward any particular element.
func randomCoefficients(coeffs []byte) error {
	for i := 1; i < len(coeffs); i++ {
		c, err := randomNonzero()
		if err != nil {
			return err
		}
		coeffs[i] = c
	}
	return nil
}

// randomNonzero draws a single nonzero field element from crypto/rand.
func randomNonzero() (byte, error) {
	var buf [1]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("failed to generate random coefficient: %w", err)
		}
		if buf[0] != 0 {
			return buf[0], nil
		}
	}
}
