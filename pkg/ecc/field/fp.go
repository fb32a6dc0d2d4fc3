package field

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// primalityRounds is the Miller-Rabin round count used on top of the
// Baillie-PSW test that big.Int.ProbablyPrime always runs.
const primalityRounds = 20

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// PrimeField is GF(q) for an odd prime q.
type PrimeField struct {
	q *big.Int
	// r is set when q = 2^n - r with a short r, enabling folded reduction.
	r *big.Int
	n int
}

// NewPrimeField returns the field of integers modulo q. q must be an odd
// prime; composite moduli are rejected with ErrInvalidModulus.
func NewPrimeField(q *big.Int) (*PrimeField, error) {
	if q == nil || q.Sign() <= 0 || q.Bit(0) == 0 || q.Cmp(bigThree) < 0 {
		return nil, fmt.Errorf("%w: prime modulus must be an odd integer >= 3", ErrInvalidModulus)
	}
	if !q.ProbablyPrime(primalityRounds) {
		return nil, fmt.Errorf("%w: modulus is composite", ErrInvalidModulus)
	}
	f := &PrimeField{q: new(big.Int).Set(q), n: q.BitLen()}
	f.r = calculateResidue(f.q)
	return f, nil
}

// MustPrimeField is NewPrimeField for package-level parameter tables.
func MustPrimeField(q *big.Int) *PrimeField {
	f, err := NewPrimeField(q)
	if err != nil {
		panic(err)
	}
	return f
}

// calculateResidue returns r where q = 2^n - r if the top 64 bits of q are all
// set, which makes folded reduction cheaper than a general division.
func calculateResidue(q *big.Int) *big.Int {
	n := q.BitLen()
	if n < 96 {
		return nil
	}
	top := new(big.Int).Rsh(q, uint(n-64))
	if top.Cmp(new(big.Int).SetUint64(^uint64(0))) != 0 {
		return nil
	}
	pow := new(big.Int).Lsh(bigOne, uint(n))
	return pow.Sub(pow, q)
}

func (f *PrimeField) Kind() Kind               { return Prime }
func (f *PrimeField) Size() int                { return f.n }
func (f *PrimeField) Dimension() int           { return 1 }
func (f *PrimeField) Characteristic() *big.Int { return new(big.Int).Set(f.q) }

// Q returns a copy of the modulus.
func (f *PrimeField) Q() *big.Int { return new(big.Int).Set(f.q) }

// Equal reports whether other is a prime field with the same modulus.
func (f *PrimeField) Equal(other Field) bool {
	o, ok := other.(*PrimeField)
	if !ok {
		return false
	}
	return f == o || f.q.Cmp(o.q) == 0
}

// Element returns x as a field element. x must lie in [0, q).
func (f *PrimeField) Element(x *big.Int) (Element, error) {
	if x == nil || x.Sign() < 0 || x.Cmp(f.q) >= 0 {
		return nil, fmt.Errorf("%w: value outside [0, q)", ErrValueOutOfRange)
	}
	return f.wrap(new(big.Int).Set(x)), nil
}

// Reduce maps any integer into the field.
func (f *PrimeField) Reduce(x *big.Int) *FpElement {
	return f.wrap(new(big.Int).Mod(x, f.q))
}

func (f *PrimeField) Zero() Element { return f.wrap(new(big.Int)) }
func (f *PrimeField) One() Element  { return f.wrap(big.NewInt(1)) }

func (f *PrimeField) wrap(x *big.Int) *FpElement {
	return &FpElement{f: f, x: x}
}

// modReduce reduces a non-negative x below q, using folding when r is set.
func (f *PrimeField) modReduce(x *big.Int) *big.Int {
	if x.Sign() < 0 {
		return x.Mod(x, f.q)
	}
	if f.r == nil {
		return x.Mod(x, f.q)
	}
	mask := new(big.Int).Lsh(bigOne, uint(f.n))
	mask.Sub(mask, bigOne)
	hi := new(big.Int)
	for x.BitLen() > f.n {
		hi.Rsh(x, uint(f.n))
		x.And(x, mask)
		hi.Mul(hi, f.r)
		x.Add(x, hi)
	}
	for x.Cmp(f.q) >= 0 {
		x.Sub(x, f.q)
	}
	return x
}

func (f *PrimeField) modAdd(a, b *big.Int) *big.Int {
	z := new(big.Int).Add(a, b)
	if z.Cmp(f.q) >= 0 {
		z.Sub(z, f.q)
	}
	return z
}

func (f *PrimeField) modSub(a, b *big.Int) *big.Int {
	z := new(big.Int).Sub(a, b)
	if z.Sign() < 0 {
		z.Add(z, f.q)
	}
	return z
}

func (f *PrimeField) modMult(a, b *big.Int) *big.Int {
	return f.modReduce(new(big.Int).Mul(a, b))
}

func (f *PrimeField) modDouble(a *big.Int) *big.Int {
	z := new(big.Int).Lsh(a, 1)
	if z.Cmp(f.q) >= 0 {
		z.Sub(z, f.q)
	}
	return z
}

func (f *PrimeField) modInverse(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		panic(ErrDivisionByZero)
	}
	z := new(big.Int).ModInverse(a, f.q)
	if z == nil {
		panic(ErrDivisionByZero)
	}
	return z
}

// modHalfAbs returns |x|/2 for the representative of x with even value.
func (f *PrimeField) modHalfAbs(x *big.Int) *big.Int {
	z := new(big.Int).Set(x)
	if z.Bit(0) == 1 {
		z.Sub(f.q, z)
	}
	return z.Rsh(z, 1)
}

// FpElement is an element of a PrimeField.
type FpElement struct {
	f *PrimeField
	x *big.Int
}

func (e *FpElement) sealed() {}

func (e *FpElement) Field() Field     { return e.f }
func (e *FpElement) FieldSize() int   { return e.f.n }
func (e *FpElement) BigInt() *big.Int { return new(big.Int).Set(e.x) }
func (e *FpElement) String() string   { return e.x.Text(16) }

func (e *FpElement) other(b Element) *FpElement {
	o, ok := b.(*FpElement)
	if !ok || !e.f.Equal(o.f) {
		panic(mismatch(e.f, b.Field()))
	}
	return o
}

func (e *FpElement) Add(b Element) Element {
	return e.f.wrap(e.f.modAdd(e.x, e.other(b).x))
}

func (e *FpElement) AddOne() Element {
	return e.f.wrap(e.f.modAdd(e.x, bigOne))
}

func (e *FpElement) Subtract(b Element) Element {
	return e.f.wrap(e.f.modSub(e.x, e.other(b).x))
}

func (e *FpElement) Multiply(b Element) Element {
	return e.f.wrap(e.f.modMult(e.x, e.other(b).x))
}

func (e *FpElement) MultiplyMinusProduct(b, x, y Element) Element {
	ab := new(big.Int).Mul(e.x, e.other(b).x)
	xy := new(big.Int).Mul(e.other(x).x, e.other(y).x)
	return e.f.wrap(e.f.modReduce(ab.Sub(ab, xy)))
}

func (e *FpElement) MultiplyPlusProduct(b, x, y Element) Element {
	ab := new(big.Int).Mul(e.x, e.other(b).x)
	xy := new(big.Int).Mul(e.other(x).x, e.other(y).x)
	return e.f.wrap(e.f.modReduce(ab.Add(ab, xy)))
}

func (e *FpElement) Divide(b Element) Element {
	return e.f.wrap(e.f.modMult(e.x, e.f.modInverse(e.other(b).x)))
}

func (e *FpElement) Negate() Element {
	if e.x.Sign() == 0 {
		return e
	}
	return e.f.wrap(new(big.Int).Sub(e.f.q, e.x))
}

func (e *FpElement) Square() Element {
	return e.f.wrap(e.f.modMult(e.x, e.x))
}

func (e *FpElement) SquareMinusProduct(x, y Element) Element {
	aa := new(big.Int).Mul(e.x, e.x)
	xy := new(big.Int).Mul(e.other(x).x, e.other(y).x)
	return e.f.wrap(e.f.modReduce(aa.Sub(aa, xy)))
}

func (e *FpElement) SquarePlusProduct(x, y Element) Element {
	aa := new(big.Int).Mul(e.x, e.x)
	xy := new(big.Int).Mul(e.other(x).x, e.other(y).x)
	return e.f.wrap(e.f.modReduce(aa.Add(aa, xy)))
}

func (e *FpElement) SquarePow(n int) Element {
	z := e.x
	for i := 0; i < n; i++ {
		z = e.f.modMult(z, z)
	}
	return e.f.wrap(new(big.Int).Set(z))
}

func (e *FpElement) Invert() Element {
	return e.f.wrap(e.f.modInverse(e.x))
}

func (e *FpElement) IsZero() bool      { return e.x.Sign() == 0 }
func (e *FpElement) IsOne() bool       { return e.x.Cmp(bigOne) == 0 }
func (e *FpElement) TestBitZero() bool { return e.x.Bit(0) == 1 }

func (e *FpElement) Equal(b Element) bool {
	o, ok := b.(*FpElement)
	return ok && e.f.Equal(o.f) && e.x.Cmp(o.x) == 0
}

func (e *FpElement) EncodedLength() int { return (e.f.n + 7) / 8 }
func (e *FpElement) Bytes() []byte      { return padBytes(e.x, e.EncodedLength()) }

// Sqrt returns a square root of e, or nil if e is a quadratic non-residue.
//
// The branch is chosen by q mod 4 and q mod 8. For q ≡ 1 (mod 8) a random
// Lucas-sequence parameter is drawn; the search gives up after
// MaxSqrtAttempts draws and reports no root.
func (e *FpElement) Sqrt() Element {
	if e.IsZero() || e.IsOne() {
		return e
	}
	f := e.f
	q := f.q

	// q ≡ 3 (mod 4): z = x^((q+1)/4)
	if q.Bit(1) == 1 {
		exp := new(big.Int).Rsh(q, 2)
		exp.Add(exp, bigOne)
		return e.checkSqrt(new(big.Int).Exp(e.x, exp, q))
	}

	// q ≡ 5 (mod 8): Atkin's method
	if q.Bit(2) == 1 {
		t1 := new(big.Int).Exp(e.x, new(big.Int).Rsh(q, 3), q)
		t2 := f.modMult(t1, e.x)
		t3 := f.modMult(t2, t1)
		if t3.Cmp(bigOne) == 0 {
			return e.checkSqrt(t2)
		}
		t4 := new(big.Int).Exp(bigTwo, new(big.Int).Rsh(q, 2), q)
		return e.checkSqrt(f.modMult(t2, t4))
	}

	// q ≡ 1 (mod 8)
	legendreExp := new(big.Int).Rsh(q, 1)
	if new(big.Int).Exp(e.x, legendreExp, q).Cmp(bigOne) != 0 {
		return nil
	}
	fourX := f.modDouble(f.modDouble(e.x))
	k := new(big.Int).Add(legendreExp, bigOne)
	qMinusOne := new(big.Int).Sub(q, bigOne)

	for attempt := 0; attempt < MaxSqrtAttempts; attempt++ {
		p, err := rand.Int(rand.Reader, q)
		if err != nil {
			return nil
		}
		d := f.modReduce(new(big.Int).Sub(new(big.Int).Mul(p, p), fourX))
		if new(big.Int).Exp(d, legendreExp, q).Cmp(qMinusOne) != 0 {
			continue
		}
		_, v := f.lucasSequence(p, e.x, k)
		if f.modMult(v, v).Cmp(fourX) == 0 {
			return f.wrap(f.modHalfAbs(v))
		}
	}
	return nil
}

func (e *FpElement) checkSqrt(z *big.Int) Element {
	if e.f.modMult(z, z).Cmp(e.x) == 0 {
		return e.f.wrap(z)
	}
	return nil
}

// lucasSequence returns (U_k, V_k) for parameters (p, q) reduced modulo the
// field prime, using the Joye-Quisquater ladder.
func (f *PrimeField) lucasSequence(p, q, k *big.Int) (*big.Int, *big.Int) {
	n := k.BitLen()
	s := int(k.TrailingZeroBits())

	uh := big.NewInt(1)
	vl := big.NewInt(2)
	vh := new(big.Int).Set(p)
	ql := big.NewInt(1)
	qh := big.NewInt(1)

	for j := n - 1; j >= s+1; j-- {
		ql = f.modMult(ql, qh)
		if k.Bit(j) == 1 {
			qh = f.modMult(ql, q)
			uh = f.modMult(uh, vh)
			vl = f.modReduce(new(big.Int).Sub(new(big.Int).Mul(vh, vl), new(big.Int).Mul(p, ql)))
			vh = f.modReduce(new(big.Int).Sub(new(big.Int).Mul(vh, vh), new(big.Int).Lsh(qh, 1)))
		} else {
			qh = ql
			uh = f.modReduce(new(big.Int).Sub(new(big.Int).Mul(uh, vl), ql))
			vh = f.modReduce(new(big.Int).Sub(new(big.Int).Mul(vh, vl), new(big.Int).Mul(p, ql)))
			vl = f.modReduce(new(big.Int).Sub(new(big.Int).Mul(vl, vl), new(big.Int).Lsh(ql, 1)))
		}
	}

	ql = f.modMult(ql, qh)
	qh = f.modMult(ql, q)
	uh = f.modReduce(new(big.Int).Sub(new(big.Int).Mul(uh, vl), ql))
	vl = f.modReduce(new(big.Int).Sub(new(big.Int).Mul(vh, vl), new(big.Int).Mul(p, ql)))
	ql = f.modMult(ql, qh)

	for j := 1; j <= s; j++ {
		uh = f.modMult(uh, vl)
		vl = f.modReduce(new(big.Int).Sub(new(big.Int).Mul(vl, vl), new(big.Int).Lsh(ql, 1)))
		ql = f.modMult(ql, ql)
	}
	return uh, vl
}
