package field

import (
	"fmt"
	"math/big"
)

// MaxSqrtAttempts bounds the randomised searches used by prime-field square
// roots (q ≡ 1 mod 8) and even-degree binary quadratic solving.
const MaxSqrtAttempts = 128

// Kind identifies the representation used by a field.
type Kind int

const (
	// Prime is GF(q) for an odd prime q.
	Prime Kind = iota + 1
	// Binary is GF(2^m).
	Binary
)

// String returns a human-readable name for the field kind.
func (k Kind) String() string {
	switch k {
	case Prime:
		return "prime"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// Field describes a finite field. Implementations are immutable and shared by
// reference between all elements, curves and points built on them.
type Field interface {
	// Kind reports whether this is a prime or binary field.
	Kind() Kind
	// Size returns the bit length of field elements.
	Size() int
	// Characteristic returns q for prime fields and 2 for binary fields.
	Characteristic() *big.Int
	// Dimension returns 1 for prime fields and m for binary fields.
	Dimension() int
	// Element builds a range-checked element from x.
	Element(x *big.Int) (Element, error)
	// Zero returns the additive identity.
	Zero() Element
	// One returns the multiplicative identity.
	One() Element
	// Equal reports whether both fields have identical parameters.
	Equal(other Field) bool
}

// Element is a value of a finite field. Elements are immutable; every
// operation returns a fresh value. Operands must belong to the same field.
type Element interface {
	Field() Field
	BigInt() *big.Int
	FieldSize() int

	Add(b Element) Element
	AddOne() Element
	Subtract(b Element) Element
	Multiply(b Element) Element
	Divide(b Element) Element
	Negate() Element
	Square() Element
	Invert() Element
	// Sqrt returns a square root, or nil when none exists.
	Sqrt() Element
	// SquarePow returns this^(2^n).
	SquarePow(n int) Element

	// MultiplyMinusProduct returns this*b - x*y.
	MultiplyMinusProduct(b, x, y Element) Element
	// MultiplyPlusProduct returns this*b + x*y.
	MultiplyPlusProduct(b, x, y Element) Element
	// SquareMinusProduct returns this^2 - x*y.
	SquareMinusProduct(x, y Element) Element
	// SquarePlusProduct returns this^2 + x*y.
	SquarePlusProduct(x, y Element) Element

	IsZero() bool
	IsOne() bool
	// TestBitZero reports the low bit of the canonical integer form.
	TestBitZero() bool
	Equal(b Element) bool

	// EncodedLength is the byte length of Bytes.
	EncodedLength() int
	// Bytes returns the big-endian encoding padded to EncodedLength.
	Bytes() []byte

	String() string

	sealed()
}

func mismatch(a, b Field) error {
	return fmt.Errorf("%w: %s(%d) vs %s(%d)", ErrFieldMismatch, a.Kind(), a.Size(), b.Kind(), b.Size())
}

// padBytes renders x big-endian into exactly n bytes.
func padBytes(x *big.Int, n int) []byte {
	out := make([]byte, n)
	x.FillBytes(out)
	return out
}

// SameField reports whether all elements share one field.
func SameField(elems ...Element) bool {
	if len(elems) == 0 {
		return true
	}
	f := elems[0].Field()
	for _, e := range elems[1:] {
		if !f.Equal(e.Field()) {
			return false
		}
	}
	return true
}
