package shamir

import "sync"

// gf256.go implements the GF(2^8) arithmetic underlying the sharing scheme.
// The field is defined by the irreducible polynomial x^8 + x^4 + x^3 + x^2 + 1
// (0x11d), the same field QR codes use, with 2 as the generator.

const (
	// primitivePolynomial reduces products that overflow 8 bits.
	primitivePolynomial = 0x11d

	// fieldSize is the number of elements in the field (2^8).
	fieldSize = 256

	// expTableSize doubles the exponent cycle so gfMul can index
	// log(a)+log(b) directly without a modulo.
	expTableSize = 2*(fieldSize-1) + 1
)

var (
	// expTable stores generator^i for i in [0, 510]; the upper half
	// mirrors the lower so exponent sums never wrap.
	//nolint:gochecknoglobals // precomputed table
	expTable [expTableSize]byte

	// logTable stores log base generator; logTable[0] is unused.
	//nolint:gochecknoglobals // precomputed table
	logTable [fieldSize]byte

	// tablesInit ensures tables are computed only once.
	//nolint:gochecknoglobals // sync.Once guards one-time table construction
	tablesInit sync.Once
)

// initTables builds the exponent and logarithm tables by repeatedly
// multiplying by the generator 2: shift left, and reduce by the primitive
// polynomial whenever the ninth bit appears.
func initTables() {
	tablesInit.Do(func() {
		var x uint16 = 1
		for i := 0; i < fieldSize-1; i++ {
			expTable[i] = byte(x)
			logTable[x] = byte(i)

			x <<= 1
			if x >= fieldSize {
				x ^= primitivePolynomial
			}
		}

		// Mirror exp into [255, 510] so multiply never needs mod 255.
		for i := fieldSize - 1; i < expTableSize; i++ {
			expTable[i] = expTable[i-(fieldSize-1)]
		}
	})
}

// gfAdd adds two field elements. Addition in GF(2^n) is XOR, and
// subtraction is the same operation.
func gfAdd(a, b byte) byte {
	return a ^ b
}

// gfMul multiplies two field elements via the log/exp tables:
// a * b = g^(log(a) + log(b)).
func gfMul(a, b byte) byte {
	initTables()
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[int(logTable[a])+int(logTable[b])]
}

// gfDiv divides two field elements: a / b = g^(log(a) - log(b)).
// Dividing by zero is undefined in the field and reported as
// ErrDivisionByZero rather than a panic, because reconstruction reaches
// this case on colliding share indices and must surface it to the caller.
func gfDiv(a, b byte) (byte, error) {
	initTables()
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	diff := (int(logTable[a]) - int(logTable[b]) + fieldSize - 1) % (fieldSize - 1)
	return expTable[diff], nil
}
