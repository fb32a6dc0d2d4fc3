// Package field implements the finite field arithmetic underneath the curve
// engine.
//
// Two field kinds are supported and they never mix:
//
//   - PrimeField: integers modulo an odd prime q, with an optional fast
//     reduction constant for pseudo-Mersenne moduli q = 2^n - r.
//   - BinaryField: polynomials over GF(2) modulo an irreducible trinomial or
//     pentanomial x^m + x^k3 + x^k2 + x^k1 + 1.
//
// Elements of both kinds satisfy the Element interface. Combining elements of
// different fields is a programming error and panics with an error wrapping
// ErrFieldMismatch.
//
// # Square roots
//
// Sqrt never fails with an error. It returns nil when the element has no
// square root. In prime fields with q ≡ 1 (mod 8) the root is found with a
// randomised Lucas-sequence search bounded by MaxSqrtAttempts.
package field
