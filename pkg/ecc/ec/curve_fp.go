package ec

import (
	"fmt"
	"math/big"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/field"
)

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// FpCurve is y^2 = x^3 + ax + b over a prime field.
type FpCurve struct {
	curveBase
	q         *field.PrimeField
	aIsMinus3 bool
}

// NewFpCurve builds a prime curve in Jacobian-modified coordinates. order
// and cofactor may be nil when unknown.
func NewFpCurve(q, a, b, order, cofactor *big.Int) (*FpCurve, error) {
	f, err := field.NewPrimeField(q)
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
	c := &FpCurve{q: f}
	c.f, c.a, c.b = f, fa, fb
	c.order, c.cofactor = copyInt(order), copyInt(cofactor)
	c.coord = JacobianModified
	c.aIsMinus3 = new(big.Int).Sub(q, bigThree).Cmp(a) == 0
	c.init(c)
	return c, nil
}

func copyInt(x *big.Int) *big.Int {
	if x == nil {
		return nil
	}
	return new(big.Int).Set(x)
}

// Q returns the field prime.
func (c *FpCurve) Q() *big.Int { return c.q.Q() }

func (c *FpCurve) String() string {
	return fmt.Sprintf("Fp(%d bits, %s)", c.f.Size(), c.coord)
}

func (c *FpCurve) SupportsCoordinateSystem(cs CoordinateSystem) bool {
	switch cs {
	case Affine, Homogeneous, Jacobian, JacobianChudnovsky, JacobianModified:
		return true
	}
	return false
}

func (c *FpCurve) clone(coord CoordinateSystem, endo Endomorphism, mult Multiplier) Curve {
	n := &FpCurve{q: c.q, aIsMinus3: c.aIsMinus3}
	n.f, n.a, n.b = c.f, c.a, c.b
	n.order, n.cofactor = c.order, c.cofactor
	n.coord, n.endo, n.multiplier = coord, endo, mult
	n.init(n)
	return n
}

func (c *FpCurve) defaultMultiplier() Multiplier {
	if glv, ok := c.endo.(GLVEndomorphism); ok {
		return NewGLVMultiplier(glv)
	}
	return NewWNafL2RMultiplier()
}

func (c *FpCurve) lookupElement(b []byte) field.Element {
	return c.q.Reduce(new(big.Int).SetBytes(b))
}

func (c *FpCurve) one() field.Element { return c.f.One() }

// initialZs returns the projective coordinates of an affine point.
func (c *FpCurve) initialZs() []field.Element {
	one := c.one()
	switch c.coord {
	case Homogeneous, Jacobian:
		return []field.Element{one}
	case JacobianChudnovsky:
		return []field.Element{one, one, one}
	case JacobianModified:
		return []field.Element{one, c.a}
	}
	return nil
}

func (c *FpCurve) fromAffine(x, y field.Element) *Point {
	return newPoint(c, x, y, c.initialZs())
}

func (c *FpCurve) affineY(p *Point) field.Element { return p.y }

func (c *FpCurve) satisfiesEquation(x, y field.Element) bool {
	lhs := y.Square()
	rhs := x.Square().Add(c.a).Multiply(x).Add(c.b)
	return lhs.Equal(rhs)
}

func (c *FpCurve) satisfiesOrder(p *Point) bool { return satisfiesOrderGeneric(p) }

func (c *FpCurve) yTilde(p *Point) bool { return p.Normalize().y.TestBitZero() }

func (c *FpCurve) decompress(x field.Element, yTilde bool) (*Point, error) {
	rhs := x.Square().Add(c.a).Multiply(x).Add(c.b)
	y := rhs.Sqrt()
	if y == nil {
		return nil, fmt.Errorf("%w: x is not on the curve", ErrInvalidPoint)
	}
	if y.TestBitZero() != yTilde {
		y = y.Negate()
	}
	return c.fromAffine(x, y), nil
}

func (c *FpCurve) normalizeWith(p *Point, zInv field.Element) *Point {
	switch c.coord {
	case Homogeneous:
		return c.fromAffine(p.x.Multiply(zInv), p.y.Multiply(zInv))
	case Jacobian, JacobianChudnovsky, JacobianModified:
		zInv2 := zInv.Square()
		zInv3 := zInv2.Multiply(zInv)
		return c.fromAffine(p.x.Multiply(zInv2), p.y.Multiply(zInv3))
	}
	return p
}

func (c *FpCurve) negate(p *Point) *Point {
	return newPoint(c, p.x, p.y.Negate(), p.zs)
}

func (c *FpCurve) add(p, q *Point) *Point {
	switch c.coord {
	case Affine:
		return c.addAffine(p, q)
	case Homogeneous:
		return c.addHomogeneous(p, q)
	default:
		return c.addJacobian(p, q)
	}
}

func (c *FpCurve) twice(p *Point) *Point {
	switch c.coord {
	case Affine:
		return c.twiceAffine(p)
	case Homogeneous:
		return c.twiceHomogeneous(p)
	case JacobianModified:
		return c.twiceJacobianModified(p)
	default:
		return c.twiceJacobian(p)
	}
}

func (c *FpCurve) addAffine(p, q *Point) *Point {
	dx := q.x.Subtract(p.x)
	dy := q.y.Subtract(p.y)
	if dx.IsZero() {
		if dy.IsZero() {
			return c.twiceAffine(p)
		}
		return c.infinity
	}
	gamma := dy.Divide(dx)
	x3 := gamma.Square().Subtract(p.x).Subtract(q.x)
	y3 := gamma.Multiply(p.x.Subtract(x3)).Subtract(p.y)
	return newPoint(c, x3, y3, nil)
}

func (c *FpCurve) twiceAffine(p *Point) *Point {
	if p.y.IsZero() {
		return c.infinity
	}
	xx := p.x.Square()
	num := xx.Add(xx).Add(xx).Add(c.a)
	gamma := num.Divide(p.y.Add(p.y))
	x3 := gamma.Square().Subtract(p.x.Add(p.x))
	y3 := gamma.Multiply(p.x.Subtract(x3)).Subtract(p.y)
	return newPoint(c, x3, y3, nil)
}

func (c *FpCurve) addHomogeneous(p, q *Point) *Point {
	z1, z2 := p.zs[0], q.zs[0]
	y1z2 := p.y.Multiply(z2)
	x1z2 := p.x.Multiply(z2)
	u := q.y.Multiply(z1).Subtract(y1z2)
	v := q.x.Multiply(z1).Subtract(x1z2)
	if v.IsZero() {
		if u.IsZero() {
			return c.twiceHomogeneous(p)
		}
		return c.infinity
	}
	w := z1.Multiply(z2)
	vv := v.Square()
	vvv := vv.Multiply(v)
	r := vv.Multiply(x1z2)
	a := u.Square().Multiply(w).Subtract(vvv).Subtract(r.Add(r))
	x3 := v.Multiply(a)
	y3 := r.Subtract(a).MultiplyMinusProduct(u, vvv, y1z2)
	z3 := vvv.Multiply(w)
	return newPoint(c, x3, y3, []field.Element{z3})
}

func (c *FpCurve) twiceHomogeneous(p *Point) *Point {
	if p.y.IsZero() {
		return c.infinity
	}
	x, y, z := p.x, p.y, p.zs[0]
	xx := x.Square()
	w := c.a.Multiply(z.Square()).Add(xx.Add(xx).Add(xx))
	s := y.Multiply(z)
	r := y.Multiply(s)
	b := x.Multiply(r)
	b4 := double(double(b))
	h := w.Square().Subtract(double(b4))
	x3 := double(h.Multiply(s))
	y3 := w.Multiply(b4.Subtract(h)).Subtract(double(double(double(r.Square()))))
	z3 := double(double(double(s.Square().Multiply(s))))
	return newPoint(c, x3, y3, []field.Element{z3})
}

// zPowers returns Z, Z^2 and Z^3, read from the cache on Chudnovsky points.
func (c *FpCurve) zPowers(p *Point) (z, zz, zzz field.Element) {
	z = p.zs[0]
	if c.coord == JacobianChudnovsky && len(p.zs) == 3 {
		return z, p.zs[1], p.zs[2]
	}
	zz = z.Square()
	return z, zz, zz.Multiply(z)
}

// addJacobian serves Jacobian, JacobianChudnovsky and JacobianModified;
// cached coordinates of the result are derived from Z3.
func (c *FpCurve) addJacobian(p, q *Point) *Point {
	z1, z1z1, z1z1z1 := c.zPowers(p)
	z2, z2z2, z2z2z2 := c.zPowers(q)
	u1 := p.x.Multiply(z2z2)
	u2 := q.x.Multiply(z1z1)
	s1 := p.y.Multiply(z2z2z2)
	s2 := q.y.Multiply(z1z1z1)
	h := u2.Subtract(u1)
	r := s2.Subtract(s1)
	if h.IsZero() {
		if r.IsZero() {
			return c.twice(p)
		}
		return c.infinity
	}
	hh := h.Square()
	hhh := hh.Multiply(h)
	v := u1.Multiply(hh)
	x3 := r.Square().Subtract(hhh).Subtract(double(v))
	y3 := v.Subtract(x3).MultiplyMinusProduct(r, s1, hhh)
	z3 := z1.Multiply(z2).Multiply(h)
	return newPoint(c, x3, y3, c.jacobianZs(z3))
}

func (c *FpCurve) jacobianZs(z field.Element) []field.Element {
	switch c.coord {
	case JacobianChudnovsky:
		zz := z.Square()
		return []field.Element{z, zz, zz.Multiply(z)}
	case JacobianModified:
		return []field.Element{z, c.a.Multiply(z.Square().Square())}
	}
	return []field.Element{z}
}

func (c *FpCurve) twiceJacobian(p *Point) *Point {
	if p.y.IsZero() {
		return c.infinity
	}
	x, y := p.x, p.y
	z, zz, _ := c.zPowers(p)
	yy := y.Square()
	var m field.Element
	if c.aIsMinus3 {
		t := x.Subtract(zz).Multiply(x.Add(zz))
		m = t.Add(t).Add(t)
	} else {
		xx := x.Square()
		m = xx.Add(xx).Add(xx).Add(c.a.Multiply(zz.Square()))
	}
	s := double(double(x.Multiply(yy)))
	x3 := m.Square().Subtract(double(s))
	y3 := m.Multiply(s.Subtract(x3)).Subtract(double(double(double(yy.Square()))))
	z3 := double(y.Multiply(z))
	return newPoint(c, x3, y3, c.jacobianZs(z3))
}

// twiceJacobianModified reuses the cached W = aZ^4: W3 = 16Y^4 W.
func (c *FpCurve) twiceJacobianModified(p *Point) *Point {
	if p.y.IsZero() {
		return c.infinity
	}
	x, y, z, w := p.x, p.y, p.zs[0], p.zs[1]
	xx := x.Square()
	m := xx.Add(xx).Add(xx).Add(w)
	yy := y.Square()
	s := double(double(x.Multiply(yy)))
	x3 := m.Square().Subtract(double(s))
	u := double(double(double(yy.Square())))
	y3 := m.Multiply(s.Subtract(x3)).Subtract(u)
	z3 := double(y.Multiply(z))
	w3 := double(u.Multiply(w))
	return newPoint(c, x3, y3, []field.Element{z3, w3})
}

func double(x field.Element) field.Element { return x.Add(x) }
