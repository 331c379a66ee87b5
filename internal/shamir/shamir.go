// Package shamir implements Shamir's Secret Sharing over GF(2^8).
// A secret of L bytes is split into n shares of L bytes each such that
// any k of them reconstruct the secret exactly, while any k-1 reveal
// nothing about it.
package shamir

import "fmt"

// Split divides a secret into n shares, any k of which reconstruct it.
// Each byte position gets its own random degree-(k-1) polynomial whose
// constant term is the secret byte, evaluated at x = 1..n; the per-byte
// polynomials are independent so no cross-byte correlation is introduced.
// Shares are returned in index order 1..n.
func Split(secret []byte, n, k int) ([]Share, error) {
	if k < 2 {
		return nil, ErrThresholdInvalid
	}
	if n < k {
		return nil, ErrSharesInsufficient
	}
	if n > 255 {
		return nil, ErrSharesExceedMax
	}
	if len(secret) == 0 {
		return nil, ErrSecretEmpty
	}

	shares := make([]Share, n)
	for i := range shares {
		shares[i] = Share{
			Index:   byte(i + 1),
			Payload: make([]byte, len(secret)),
		}
	}

	coeffs := make([]byte, k)
	for pos, secretByte := range secret {
		coeffs[0] = secretByte
		if err := randomCoefficients(coeffs); err != nil {
			return nil, err
		}

		for i := range shares {
			shares[i].Payload[pos] = evaluate(coeffs, shares[i].Index)
		}
	}

	// The coefficients belong to this call only.
	for i := range coeffs {
		coeffs[i] = 0
	}

	return shares, nil
}

// Reconstruct recovers the secret from the supplied shares by Lagrange
// interpolation at x = 0, one byte position at a time.
//
// Reconstruct does not know the threshold and trusts the caller to supply
// at least k shares with pairwise distinct indices: fewer than k correct
// shares yield a silently incorrect result, not an error. The only input
// defect it detects on its own is a colliding index pair, which surfaces
// as ErrDivisionByZero. Use Validate to gate inputs when k is known.
func Reconstruct(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrNoShares
	}

	secretLen := len(shares[0].Payload)
	for _, s := range shares[1:] {
		if len(s.Payload) != secretLen {
			return nil, ErrLengthMismatch
		}
	}

	// The Lagrange weight of each share at x=0 is the same for every
	// byte position, so compute the weights once.
	weights := make([]byte, len(shares))
	for i, si := range shares {
		numerator := byte(1)
		denominator := byte(1)
		for j, sj := range shares {
			if i == j {
				continue
			}
			numerator = gfMul(numerator, sj.Index)
			denominator = gfMul(denominator, gfAdd(si.Index, sj.Index))
		}

		w, err := gfDiv(numerator, denominator)
		if err != nil {
			return nil, err
		}
		weights[i] = w
	}

	secret := make([]byte, secretLen)
	for pos := range secret {
		var val byte
		for i, s := range shares {
			val = gfAdd(val, gfMul(s.Payload[pos], weights[i]))
		}
		secret[pos] = val
	}

	return secret, nil
}

// Validate checks the preconditions Reconstruct itself does not enforce:
// at least k shares, pairwise distinct nonzero indices, and equal payload
// lengths. It turns the silent wrong answers of an under-threshold or
// colliding ShareSet into explicit errors.
func Validate(shares []Share, k int) error {
	if len(shares) < k {
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughShares, len(shares), k)
	}

	seen := make(map[byte]bool, len(shares))
	secretLen := -1
	for _, s := range shares {
		if s.Index == 0 {
			return ErrInvalidIndex
		}
		if seen[s.Index] {
			return fmt.Errorf("%w: %d", ErrDuplicateIndex, s.Index)
		}
		seen[s.Index] = true

		if secretLen == -1 {
			secretLen = len(s.Payload)
		} else if len(s.Payload) != secretLen {
			return ErrLengthMismatch
		}
	}

	return nil
}
