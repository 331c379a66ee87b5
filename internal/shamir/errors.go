package shamir

import "errors"

var (
	// ErrDivisionByZero is returned when a field division has a zero
	// divisor. During reconstruction this means two shares carried the
	// same index.
	ErrDivisionByZero = errors.New("division by zero in GF(2^8)")

	// ErrThresholdInvalid is returned when k < 2.
	ErrThresholdInvalid = errors.New("threshold k must be at least 2")

	// ErrSharesInsufficient is returned when n < k.
	ErrSharesInsufficient = errors.New("total shares n must be at least k")

	// ErrSharesExceedMax is returned when n > 255.
	ErrSharesExceedMax = errors.New("total shares n cannot exceed 255")

	// ErrSecretEmpty is returned when the secret is empty.
	ErrSecretEmpty = errors.New("secret cannot be empty")

	// ErrNoShares is returned when no shares are provided.
	ErrNoShares = errors.New("no shares provided")

	// ErrMalformedShare is returned when share text cannot be decoded.
	ErrMalformedShare = errors.New("malformed share")

	// ErrInvalidIndex is returned when a share carries index zero.
	ErrInvalidIndex = errors.New("share index must be in [1, 255]")

	// ErrDuplicateIndex is returned by Validate when two shares carry
	// the same index.
	ErrDuplicateIndex = errors.New("duplicate share index")

	// ErrNotEnoughShares is returned by Validate when fewer than k
	// shares are supplied.
	ErrNotEnoughShares = errors.New("insufficient shares")

	// ErrLengthMismatch is returned when shares have conflicting
	// payload lengths.
	ErrLengthMismatch = errors.New("shares have conflicting lengths")
)
