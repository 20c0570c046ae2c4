/*
Package gf2 implements arithmetic on polynomials over GF(2) reduced
modulo the CRC-32 generator polynomial.

A polynomial is encoded as an unsigned integer whose bit i holds the
coefficient of x^i. The generator has degree 32 and needs 33 bits, so
every value is carried in a uint64 to keep the reduction step exact.
*/
package gf2

import (
	"errors"
	"math/bits"
)

// Poly is the CRC-32 generator polynomial,
// x^32 + x^26 + x^23 + x^22 + x^16 + x^12 + x^11 + x^10 + x^8 + x^7 +
// x^5 + x^4 + x^2 + x + 1, in non-reversed form.
const Poly = 0x104c11db7

var (
	// ErrDivideByZero is returned by DivMod for a zero divisor.
	ErrDivideByZero = errors.New("gf2: division by zero")

	// ErrNoReciprocal is returned by ReciprocalMod when the operand
	// and Poly are not coprime.
	ErrNoReciprocal = errors.New("gf2: reciprocal does not exist")
)

// Degree returns the index of the highest set bit of x, or -1 if x is
// zero.
func Degree(x uint64) int {
	return bits.Len64(x) - 1
}

// MulMod returns the product of the polynomials x and y modulo Poly,
// computed by carry-less Russian peasant multiplication. The result is
// bounded to degree below 32.
func MulMod(x, y uint64) uint64 {
	var z uint64
	for y != 0 {
		if y&1 != 0 {
			z ^= x
		}
		y >>= 1
		x <<= 1
		if x>>32&1 != 0 {
			x ^= Poly
		}
	}
	return z
}

// PowMod returns x raised to the power n modulo Poly by binary
// exponentiation. PowMod(x, 0) is 1.
func PowMod(x, n uint64) uint64 {
	z := uint64(1)
	for n != 0 {
		if n&1 != 0 {
			z = MulMod(z, x)
		}
		x = MulMod(x, x)
		n >>= 1
	}
	return z
}

// DivMod returns the quotient and remainder of the polynomial long
// division of x by y.
func DivMod(x, y uint64) (uint64, uint64, error) {
	if y == 0 {
		return 0, 0, ErrDivideByZero
	}
	if x == 0 {
		return 0, 0, nil
	}

	var q uint64
	ydeg := Degree(y)
	for i := Degree(x) - ydeg; i >= 0; i-- {
		if x>>uint(i+ydeg)&1 != 0 {
			x ^= y << uint(i)
			q |= 1 << uint(i)
		}
	}
	return q, x, nil
}

// ReciprocalMod returns the multiplicative inverse of x modulo Poly
// using the extended Euclidean algorithm. Poly is irreducible so the
// inverse exists for any nonzero x of degree below 32, but the
// terminating remainder is still checked.
func ReciprocalMod(x uint64) (uint64, error) {
	y := x
	x = Poly
	var a uint64
	b := uint64(1)

	for y != 0 {
		q, r, err := DivMod(x, y)
		if err != nil {
			return 0, err
		}
		c := a ^ MulMod(q, b)
		x, y = y, r
		a, b = b, c
	}

	if x != 1 {
		return 0, ErrNoReciprocal
	}
	return a, nil
}
