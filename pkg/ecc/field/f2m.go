package field

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
)

// BinaryField is GF(2^m) represented in polynomial basis modulo
// x^m + x^k3 + x^k2 + x^k1 + 1 (pentanomial) or x^m + x^k + 1 (trinomial).
type BinaryField struct {
	m  int
	ks []int
}

// NewBinaryField returns GF(2^m) with the given reduction terms. ks holds
// either one exponent (trinomial) or three (pentanomial), each in (0, m), and
// the resulting polynomial must be irreducible.
func NewBinaryField(m int, ks ...int) (*BinaryField, error) {
	if m <= 1 {
		return nil, fmt.Errorf("%w: degree must exceed 1", ErrInvalidModulus)
	}
	if len(ks) != 1 && len(ks) != 3 {
		return nil, fmt.Errorf("%w: need a trinomial or pentanomial", ErrInvalidModulus)
	}
	sorted := append([]int(nil), ks...)
	sort.Ints(sorted)
	for i, k := range sorted {
		if k <= 0 || k >= m {
			return nil, fmt.Errorf("%w: reduction term %d outside (0, %d)", ErrInvalidModulus, k, m)
		}
		if i > 0 && sorted[i-1] == k {
			return nil, fmt.Errorf("%w: duplicate reduction term %d", ErrInvalidModulus, k)
		}
	}
	if !isIrreducible(m, sorted) {
		return nil, fmt.Errorf("%w: reduction polynomial is reducible", ErrInvalidModulus)
	}
	return &BinaryField{m: m, ks: sorted}, nil
}

// MustBinaryField is NewBinaryField for package-level parameter tables.
func MustBinaryField(m int, ks ...int) *BinaryField {
	f, err := NewBinaryField(m, ks...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *BinaryField) Kind() Kind               { return Binary }
func (f *BinaryField) Size() int                { return f.m }
func (f *BinaryField) Dimension() int           { return f.m }
func (f *BinaryField) Characteristic() *big.Int { return big.NewInt(2) }

// M returns the extension degree.
func (f *BinaryField) M() int { return f.m }

// ReductionTerms returns a copy of the middle exponents in ascending order.
func (f *BinaryField) ReductionTerms() []int { return append([]int(nil), f.ks...) }

// IsTrinomial reports whether the reduction polynomial has three terms.
func (f *BinaryField) IsTrinomial() bool { return len(f.ks) == 1 }

func (f *BinaryField) Equal(other Field) bool {
	o, ok := other.(*BinaryField)
	if !ok {
		return false
	}
	if f == o {
		return true
	}
	if f.m != o.m || len(f.ks) != len(o.ks) {
		return false
	}
	for i := range f.ks {
		if f.ks[i] != o.ks[i] {
			return false
		}
	}
	return true
}

// Element returns x as a field element. x must have bit length <= m.
func (f *BinaryField) Element(x *big.Int) (Element, error) {
	if x == nil || x.Sign() < 0 || x.BitLen() > f.m {
		return nil, fmt.Errorf("%w: polynomial degree must be below %d", ErrValueOutOfRange, f.m)
	}
	return f.wrap(longArrayFromBig(x, wordsFor(f.m))), nil
}

func (f *BinaryField) Zero() Element { return f.wrap(make(longArray, wordsFor(f.m))) }

func (f *BinaryField) One() Element {
	x := make(longArray, wordsFor(f.m))
	x[0] = 1
	return f.wrap(x)
}

func (f *BinaryField) wrap(x longArray) *F2mElement {
	return &F2mElement{f: f, x: x}
}

// F2mElement is an element of a BinaryField.
type F2mElement struct {
	f *BinaryField
	x longArray
}

func (e *F2mElement) sealed() {}

func (e *F2mElement) Field() Field     { return e.f }
func (e *F2mElement) FieldSize() int   { return e.f.m }
func (e *F2mElement) BigInt() *big.Int { return e.x.toBig() }
func (e *F2mElement) String() string   { return e.BigInt().Text(16) }

func (e *F2mElement) other(b Element) *F2mElement {
	o, ok := b.(*F2mElement)
	if !ok || !e.f.Equal(o.f) {
		panic(mismatch(e.f, b.Field()))
	}
	return o
}

func (e *F2mElement) Add(b Element) Element {
	z := e.x.clone()
	z.xorInto(e.other(b).x)
	return e.f.wrap(z)
}

func (e *F2mElement) AddOne() Element {
	z := e.x.clone()
	z[0] ^= 1
	return e.f.wrap(z)
}

// Subtract is addition in characteristic 2.
func (e *F2mElement) Subtract(b Element) Element { return e.Add(b) }

// Negate is the identity in characteristic 2.
func (e *F2mElement) Negate() Element { return e }

func (e *F2mElement) Multiply(b Element) Element {
	return e.f.wrap(modMultiply(e.x, e.other(b).x, e.f.m, e.f.ks))
}

func (e *F2mElement) MultiplyMinusProduct(b, x, y Element) Element {
	return e.MultiplyPlusProduct(b, x, y)
}

func (e *F2mElement) MultiplyPlusProduct(b, x, y Element) Element {
	ab := modMultiply(e.x, e.other(b).x, e.f.m, e.f.ks)
	ab.xorInto(modMultiply(e.other(x).x, e.other(y).x, e.f.m, e.f.ks))
	return e.f.wrap(ab)
}

func (e *F2mElement) Divide(b Element) Element {
	inv := modInverse(e.other(b).x, e.f.m, e.f.ks)
	return e.f.wrap(modMultiply(e.x, inv, e.f.m, e.f.ks))
}

func (e *F2mElement) Square() Element {
	return e.f.wrap(modSquare(e.x, e.f.m, e.f.ks))
}

func (e *F2mElement) SquareMinusProduct(x, y Element) Element {
	return e.SquarePlusProduct(x, y)
}

func (e *F2mElement) SquarePlusProduct(x, y Element) Element {
	aa := modSquare(e.x, e.f.m, e.f.ks)
	aa.xorInto(modMultiply(e.other(x).x, e.other(y).x, e.f.m, e.f.ks))
	return e.f.wrap(aa)
}

func (e *F2mElement) SquarePow(n int) Element {
	if n <= 0 {
		return e
	}
	z := e.x
	for i := 0; i < n; i++ {
		z = modSquare(z, e.f.m, e.f.ks)
	}
	return e.f.wrap(z)
}

func (e *F2mElement) Invert() Element {
	return e.f.wrap(modInverse(e.x, e.f.m, e.f.ks))
}

// Sqrt returns the unique square root x^(2^(m-1)); squaring is the Frobenius
// automorphism so every element has exactly one root.
func (e *F2mElement) Sqrt() Element {
	if e.IsZero() || e.IsOne() {
		return e
	}
	return e.SquarePow(e.f.m - 1)
}

func (e *F2mElement) IsZero() bool      { return e.x.isZero() }
func (e *F2mElement) IsOne() bool       { return e.x.isOne() }
func (e *F2mElement) TestBitZero() bool { return e.x.testBit(0) }

func (e *F2mElement) Equal(b Element) bool {
	o, ok := b.(*F2mElement)
	return ok && e.f.Equal(o.f) && e.x.equal(o.x)
}

func (e *F2mElement) EncodedLength() int { return (e.f.m + 7) / 8 }
func (e *F2mElement) Bytes() []byte      { return padBytes(e.BigInt(), e.EncodedLength()) }

// Words returns a copy of the little-endian 64-bit word representation.
func (e *F2mElement) Words() []uint64 { return e.x.clone() }

// Trace returns Tr(e) = sum of e^(2^i) for i in [0, m), which is 0 or 1.
func (e *F2mElement) Trace() int {
	t := e.x
	acc := e.x.clone()
	for i := 1; i < e.f.m; i++ {
		t = modSquare(t, e.f.m, e.f.ks)
		acc.xorInto(t)
	}
	if acc.testBit(0) {
		return 1
	}
	return 0
}

// HalfTrace returns sum of e^(2^(2i)) for i in [0, (m-1)/2]. It is only
// defined for odd m.
func (e *F2mElement) HalfTrace() (Element, error) {
	if e.f.m&1 == 0 {
		return nil, fmt.Errorf("%w: half-trace requires odd m", ErrInvalidModulus)
	}
	t := e.x
	acc := e.x.clone()
	for i := 2; i < e.f.m; i += 2 {
		t = modSquare(modSquare(t, e.f.m, e.f.ks), e.f.m, e.f.ks)
		acc.xorInto(t)
	}
	return e.f.wrap(acc), nil
}

// SolveQuadratic returns z with z^2 + z = e, or nil when Tr(e) = 1.
func (e *F2mElement) SolveQuadratic() Element {
	if e.IsZero() {
		return e
	}
	if e.f.m&1 == 1 {
		z, _ := e.HalfTrace()
		if z.Square().Add(z).Equal(e) {
			return z
		}
		return nil
	}

	zero := e.f.Zero()
	for attempt := 0; attempt < MaxSqrtAttempts; attempt++ {
		r, err := rand.Int(rand.Reader, new(big.Int).Lsh(bigOne, uint(e.f.m)))
		if err != nil {
			return nil
		}
		t, _ := e.f.Element(r)
		z := zero
		var w Element = e
		for i := 1; i < e.f.m; i++ {
			w2 := w.Square()
			z = z.Square().Add(w2.Multiply(t))
			w = w2.Add(e)
		}
		if !w.IsZero() {
			return nil
		}
		if !z.Square().Add(z).IsZero() {
			return z
		}
	}
	return nil
}
