package ec

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/field"
)

// F2mCurve is y^2 + xy = x^3 + ax^2 + b over GF(2^m).
type F2mCurve struct {
	curveBase
	bf *field.BinaryField

	// Koblitz parameters, derived once from the curve order.
	kobOnce sync.Once
	kob     *koblitzParams
}

// NewF2mCurve builds a binary curve. Koblitz curves (a in {0, 1}, b = 1,
// cofactor 2 or 4) default to lambda-projective coordinates with a width-4
// τ-adic multiplier; other curves default to lambda-projective with wNAF.
func NewF2mCurve(m int, ks []int, a, b, order, cofactor *big.Int) (*F2mCurve, error) {
	f, err := field.NewBinaryField(m, ks...)
	if err != nil {
		return nil, err
	}
	fa, err := f.Element(a)
	if err != nil {
		return nil, fmt.Errorf("coefficient a: %w", err)
	}
	fb, err := f.Element(b)
	if err != nil {
		return nil, fmt.Errorf("coefficient b: %w", err)
	}
	if fb.IsZero() {
		return nil, fmt.Errorf("%w: b must be non-zero", ErrInvalidPoint)
	}
	c := &F2mCurve{bf: f}
	c.f, c.a, c.b = f, fa, fb
	c.order, c.cofactor = copyInt(order), copyInt(cofactor)
	c.coord = LambdaProjective
	c.init(c)
	return c, nil
}

// M returns the extension degree.
func (c *F2mCurve) M() int { return c.bf.M() }

// BinaryField returns the underlying field.
func (c *F2mCurve) BinaryField() *field.BinaryField { return c.bf }

func (c *F2mCurve) String() string {
	return fmt.Sprintf("F2m(%d, %s)", c.bf.M(), c.coord)
}

// IsKoblitz reports whether the curve is an anomalous binary curve with a
// known order, i.e. a in {0, 1}, b = 1 and cofactor 2 or 4.
func (c *F2mCurve) IsKoblitz() bool {
	if c.order == nil || c.cofactor == nil || !c.b.IsOne() {
		return false
	}
	if !c.a.IsZero() && !c.a.IsOne() {
		return false
	}
	h := c.cofactor.Int64()
	return c.cofactor.IsInt64() && (h == 2 || h == 4)
}

// Mu returns μ = (-1)^(1-a) for a Koblitz curve.
func (c *F2mCurve) Mu() (int, error) {
	if !c.IsKoblitz() {
		return 0, ErrNotKoblitz
	}
	return getMu(c.a), nil
}

func (c *F2mCurve) SupportsCoordinateSystem(cs CoordinateSystem) bool {
	switch cs {
	case Affine, LambdaAffine, LambdaProjective:
		return true
	}
	return false
}

func (c *F2mCurve) clone(coord CoordinateSystem, endo Endomorphism, mult Multiplier) Curve {
	n := &F2mCurve{bf: c.bf}
	n.f, n.a, n.b = c.f, c.a, c.b
	n.order, n.cofactor = c.order, c.cofactor
	n.coord, n.endo, n.multiplier = coord, endo, mult
	n.init(n)
	return n
}

func (c *F2mCurve) defaultMultiplier() Multiplier {
	if c.IsKoblitz() {
		return NewWTauNafMultiplier()
	}
	return NewWNafL2RMultiplier()
}

func (c *F2mCurve) lookupElement(b []byte) field.Element {
	e, err := c.bf.Element(new(big.Int).SetBytes(b))
	if err != nil {
		panic(err)
	}
	return e
}

func (c *F2mCurve) fromAffine(x, y field.Element) *Point {
	switch c.coord {
	case LambdaAffine, LambdaProjective:
		l := y
		if !x.IsZero() {
			l = y.Divide(x).Add(x)
		}
		var zs []field.Element
		if c.coord == LambdaProjective {
			zs = []field.Element{c.f.One()}
		}
		return newPoint(c, x, l, zs)
	}
	return newPoint(c, x, y, nil)
}

// affineY recovers y from a normalized point.
func (c *F2mCurve) affineY(p *Point) field.Element {
	switch c.coord {
	case LambdaAffine, LambdaProjective:
		if p.x.IsZero() {
			return p.y
		}
		return p.y.Add(p.x).Multiply(p.x)
	}
	return p.y
}

func (c *F2mCurve) satisfiesEquation(x, y field.Element) bool {
	lhs := y.Add(x).Multiply(y)
	rhs := x.Add(c.a).Multiply(x.Square()).Add(c.b)
	return lhs.Equal(rhs)
}

// satisfiesOrder uses the trace condition for the small cofactors of the
// standard binary curves before falling back to n*p = infinity.
func (c *F2mCurve) satisfiesOrder(p *Point) bool {
	if c.cofactor != nil && c.cofactor.Cmp(bigTwo) == 0 {
		n := p.Normalize()
		x := n.x.(*field.F2mElement)
		ta := c.a.(*field.F2mElement).Trace()
		return x.Trace() == ta
	}
	return satisfiesOrderGeneric(p)
}

func (c *F2mCurve) yTilde(p *Point) bool {
	n := p.Normalize()
	if n.x.IsZero() {
		return false
	}
	return c.affineY(n).Divide(n.x).TestBitZero()
}

// decompress solves z^2 + z = x + a + b/x^2 and sets y = zx, with z chosen
// so that its low bit matches yTilde.
func (c *F2mCurve) decompress(x field.Element, yTilde bool) (*Point, error) {
	if x.IsZero() {
		return c.fromAffine(x, c.b.Sqrt()), nil
	}
	beta := x.Square().Invert().Multiply(c.b).Add(c.a).Add(x)
	z := beta.(*field.F2mElement).SolveQuadratic()
	if z == nil {
		return nil, fmt.Errorf("%w: x is not on the curve", ErrInvalidPoint)
	}
	if z.TestBitZero() != yTilde {
		z = z.AddOne()
	}
	return c.fromAffine(x, z.Multiply(x)), nil
}

func (c *F2mCurve) normalizeWith(p *Point, zInv field.Element) *Point {
	if c.coord != LambdaProjective {
		return p
	}
	x := p.x.Multiply(zInv)
	l := p.y.Multiply(zInv)
	return newPoint(c, x, l, []field.Element{c.f.One()})
}

func (c *F2mCurve) negate(p *Point) *Point {
	switch c.coord {
	case LambdaAffine:
		if p.x.IsZero() {
			return p
		}
		return newPoint(c, p.x, p.y.AddOne(), nil)
	case LambdaProjective:
		if p.x.IsZero() {
			return p
		}
		return newPoint(c, p.x, p.y.Add(p.zs[0]), p.zs)
	}
	return newPoint(c, p.x, p.y.Add(p.x), nil)
}

// orderTwo is the point (0, sqrt(b)), the only affine point with x = 0.
func (c *F2mCurve) orderTwo() *Point {
	return c.fromAffine(c.f.Zero(), c.b.Sqrt())
}

func (c *F2mCurve) add(p, q *Point) *Point {
	switch c.coord {
	case Affine:
		return c.addAffine(p, q)
	}
	if p.x.IsZero() || q.x.IsZero() {
		return c.addViaAffine(p, q)
	}
	if c.coord == LambdaAffine {
		return c.addLambdaAffine(p, q)
	}
	return c.addLambdaProjective(p, q)
}

func (c *F2mCurve) twice(p *Point) *Point {
	switch c.coord {
	case Affine:
		return c.twiceAffine(p)
	}
	if p.x.IsZero() {
		return c.infinity
	}
	if c.coord == LambdaAffine {
		return c.twiceLambdaAffine(p)
	}
	return c.twiceLambdaProjective(p)
}

func (c *F2mCurve) addAffine(p, q *Point) *Point {
	dx := p.x.Add(q.x)
	dy := p.y.Add(q.y)
	if dx.IsZero() {
		if dy.IsZero() {
			return c.twiceAffine(p)
		}
		return c.infinity
	}
	l := dy.Divide(dx)
	x3 := l.Square().Add(l).Add(dx).Add(c.a)
	y3 := l.Multiply(p.x.Add(x3)).Add(x3).Add(p.y)
	return newPoint(c, x3, y3, nil)
}

func (c *F2mCurve) twiceAffine(p *Point) *Point {
	if p.x.IsZero() {
		return c.infinity
	}
	l := p.y.Divide(p.x).Add(p.x)
	x3 := l.Square().Add(l).Add(c.a)
	y3 := p.x.SquarePlusProduct(x3, l.AddOne())
	return newPoint(c, x3, y3, nil)
}

// addViaAffine handles sums involving the order-two point (0, sqrt(b)),
// which has no λ representation.
func (c *F2mCurve) addViaAffine(p, q *Point) *Point {
	pn, qn := p.Normalize(), q.Normalize()
	x1, y1 := pn.x, c.affineY(pn)
	x2, y2 := qn.x, c.affineY(qn)
	dx := x1.Add(x2)
	dy := y1.Add(y2)
	if dx.IsZero() {
		if dy.IsZero() {
			return c.twice(p)
		}
		return c.infinity
	}
	l := dy.Divide(dx)
	x3 := l.Square().Add(l).Add(dx).Add(c.a)
	y3 := l.Multiply(x1.Add(x3)).Add(x3).Add(y1)
	return c.fromAffine(x3, y3)
}

func (c *F2mCurve) addLambdaAffine(p, q *Point) *Point {
	a := p.y.Add(q.y)
	b := p.x.Add(q.x)
	if b.IsZero() {
		if a.IsZero() {
			return c.twiceLambdaAffine(p)
		}
		return c.infinity
	}
	if a.IsZero() {
		return c.orderTwo()
	}
	bb := b.Square()
	x3 := a.Multiply(p.x).Multiply(q.x).Divide(bb)
	t := a.Multiply(q.x).Add(bb)
	l3 := t.Square().Divide(a.Multiply(bb)).Add(p.y).AddOne()
	return newPoint(c, x3, l3, nil)
}

func (c *F2mCurve) twiceLambdaAffine(p *Point) *Point {
	x3 := p.y.Square().Add(p.y).Add(c.a)
	if x3.IsZero() {
		return c.orderTwo()
	}
	l3 := p.x.Square().Divide(x3).Add(x3).Add(p.y).AddOne()
	return newPoint(c, x3, l3, nil)
}

func (c *F2mCurve) addLambdaProjective(p, q *Point) *Point {
	x1, l1, z1 := p.x, p.y, p.zs[0]
	x2, l2, z2 := q.x, q.y, q.zs[0]
	z1IsOne, z2IsOne := z1.IsOne(), z2.IsOne()

	u2, s2 := x2, l2
	if !z1IsOne {
		u2, s2 = u2.Multiply(z1), s2.Multiply(z1)
	}
	u1, s1 := x1, l1
	if !z2IsOne {
		u1, s1 = u1.Multiply(z2), s1.Multiply(z2)
	}
	a := s1.Add(s2)
	b := u1.Add(u2)
	if b.IsZero() {
		if a.IsZero() {
			return c.twiceLambdaProjective(p)
		}
		return c.infinity
	}

	b = b.Square()
	au1 := a.Multiply(u1)
	au2 := a.Multiply(u2)
	x3 := au1.Multiply(au2)
	if x3.IsZero() {
		return c.orderTwo()
	}
	abz2 := a.Multiply(b)
	if !z2IsOne {
		abz2 = abz2.Multiply(z2)
	}
	l3 := au2.Add(b).SquarePlusProduct(abz2, l1.Add(z1))
	z3 := abz2
	if !z1IsOne {
		z3 = z3.Multiply(z1)
	}
	return newPoint(c, x3, l3, []field.Element{z3})
}

func (c *F2mCurve) twiceLambdaProjective(p *Point) *Point {
	x1, l1, z1 := p.x, p.y, p.zs[0]
	z1IsOne := z1.IsOne()

	l1z1, z1Sq, aZ1Sq := l1, z1, c.a
	if !z1IsOne {
		l1z1 = l1.Multiply(z1)
		z1Sq = z1.Square()
		aZ1Sq = c.a.Multiply(z1Sq)
	}
	t := l1.Square().Add(l1z1).Add(aZ1Sq)
	if t.IsZero() {
		return c.orderTwo()
	}
	x3 := t.Square()
	z3 := t
	if !z1IsOne {
		z3 = t.Multiply(z1Sq)
	}
	x1z1 := x1
	if !z1IsOne {
		x1z1 = x1.Multiply(z1)
	}
	l3 := x1z1.SquarePlusProduct(t, l1z1).Add(x3).Add(z3)
	return newPoint(c, x3, l3, []field.Element{z3})
}

// tau applies the Frobenius map (x, y) -> (x^2, y^2), which squares every
// stored coordinate in all supported coordinate systems.
func (c *F2mCurve) tau(p *Point, n int) *Point {
	if p.IsInfinity() || n == 0 {
		return p
	}
	zs := make([]field.Element, len(p.zs))
	for i, z := range p.zs {
		zs[i] = z.SquarePow(n)
	}
	return newPoint(c, p.x.SquarePow(n), p.y.SquarePow(n), zs)
}

// Tau returns the Frobenius image of p. It panics unless p is on a binary
// curve.
func (p *Point) Tau() *Point { return p.TauPow(1) }

// TauPow returns τ^n(p).
func (p *Point) TauPow(n int) *Point {
	c, ok := p.curve.(*F2mCurve)
	if !ok {
		panic(fmt.Errorf("%w: Frobenius map needs a binary curve", ErrNotKoblitz))
	}
	return c.tau(p, n)
}
