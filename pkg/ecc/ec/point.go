package ec

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/field"
)

// Point is an immutable point on a Curve. The zero value is not usable;
// points come from a curve or from arithmetic on other points.
//
// For every coordinate system except Affine and LambdaAffine the first Z
// coordinate is stored in zs[0]; extra cached values (Z^2, Z^3, aZ^4) follow.
// In lambda coordinates y holds L (or λ), except for points with x = 0,
// where it holds y itself.
type Point struct {
	curve Curve
	x, y  field.Element
	zs    []field.Element

	mu      sync.Mutex
	preComp map[string]PreCompInfo
}

func newPoint(c Curve, x, y field.Element, zs []field.Element) *Point {
	return &Point{curve: c, x: x, y: y, zs: zs}
}

// Curve returns the curve the point belongs to.
func (p *Point) Curve() Curve { return p.curve }

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool { return p.x == nil || p.y == nil }

// RawXCoord returns the stored X coordinate.
func (p *Point) RawXCoord() field.Element { return p.x }

// RawYCoord returns the stored Y (or L) coordinate.
func (p *Point) RawYCoord() field.Element { return p.y }

// ZCoords returns a copy of the stored projective coordinates.
func (p *Point) ZCoords() []field.Element {
	return append([]field.Element(nil), p.zs...)
}

// ZCoord returns the i-th stored projective coordinate, or one when the
// point has none.
func (p *Point) ZCoord(i int) field.Element {
	if i < 0 || i >= len(p.zs) {
		if i == 0 {
			return p.curve.Field().One()
		}
		return nil
	}
	return p.zs[i]
}

// IsNormalized reports whether the stored coordinates are affine.
func (p *Point) IsNormalized() bool {
	if p.IsInfinity() || p.curve.CoordinateSystem().isAffine() {
		return true
	}
	return p.zs[0].IsOne()
}

// Normalize returns p with Z = 1. The coordinate system is unchanged.
func (p *Point) Normalize() *Point {
	if p.IsNormalized() {
		return p
	}
	return p.curve.normalizeWith(p, p.zs[0].Invert())
}

// AffineXCoord returns the affine x coordinate. It panics on infinity.
func (p *Point) AffineXCoord() field.Element {
	p.mustBeFinite()
	return p.Normalize().x
}

// AffineYCoord returns the affine y coordinate. It panics on infinity.
func (p *Point) AffineYCoord() field.Element {
	p.mustBeFinite()
	return p.curve.affineY(p.Normalize())
}

func (p *Point) mustBeFinite() {
	if p.IsInfinity() {
		panic(fmt.Errorf("%w: point at infinity has no affine coordinates", ErrInvalidPoint))
	}
}

// Equal reports whether p and q represent the same point on equal curves.
func (p *Point) Equal(q *Point) bool {
	if q == nil {
		return false
	}
	if p == q {
		return true
	}
	if !p.curve.Equal(q.curve) {
		return false
	}
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	a, b := p.Normalize(), q.Normalize()
	return a.x.Equal(b.x) && a.y.Equal(b.y)
}

// Add returns p + q.
func (p *Point) Add(q *Point) *Point {
	p.curve.base().checkSameCurve(q)
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}
	if p == q {
		return p.curve.twice(p)
	}
	return p.curve.add(p, q)
}

// Subtract returns p - q.
func (p *Point) Subtract(q *Point) *Point {
	if q.IsInfinity() {
		p.curve.base().checkSameCurve(q)
		return p
	}
	return p.Add(q.Negate())
}

// Twice returns 2p.
func (p *Point) Twice() *Point {
	if p.IsInfinity() {
		return p
	}
	return p.curve.twice(p)
}

// TwicePlus returns 2p + q.
func (p *Point) TwicePlus(q *Point) *Point {
	if q.IsInfinity() {
		p.curve.base().checkSameCurve(q)
		return p.Twice()
	}
	if p.IsInfinity() {
		return q
	}
	return p.Twice().Add(q)
}

// ThreeTimes returns 3p.
func (p *Point) ThreeTimes() *Point {
	if p.IsInfinity() {
		return p
	}
	return p.TwicePlus(p)
}

// TimesPow2 returns 2^e * p.
func (p *Point) TimesPow2(e int) *Point {
	if e < 0 {
		panic("ec: negative exponent")
	}
	r := p
	for ; e > 0 && !r.IsInfinity(); e-- {
		r = r.curve.twice(r)
	}
	return r
}

// Negate returns -p.
func (p *Point) Negate() *Point {
	if p.IsInfinity() {
		return p
	}
	return p.curve.negate(p)
}

// ScaleX returns p with its stored X coordinate multiplied by s. On prime
// curves this is the point map (x, y) -> (sx, y) in every coordinate system.
func (p *Point) ScaleX(s field.Element) *Point {
	if p.IsInfinity() {
		return p
	}
	return newPoint(p.curve, p.x.Multiply(s), p.y, p.zs)
}

// ScaleY returns p with its stored Y coordinate multiplied by s.
func (p *Point) ScaleY(s field.Element) *Point {
	if p.IsInfinity() {
		return p
	}
	return newPoint(p.curve, p.x, p.y.Multiply(s), p.zs)
}

// Multiply returns k*p using the curve's default multiplier.
func (p *Point) Multiply(k *big.Int) (*Point, error) {
	return p.curve.Multiplier().Multiply(p, k)
}

// IsValid reports whether p satisfies the curve equation and, for curves
// with a cofactor above one, lies in the prime-order subgroup. The result is
// cached on the point.
func (p *Point) IsValid() bool {
	return p.validity(true)
}

// IsValidPartial only checks the curve equation.
func (p *Point) IsValidPartial() bool {
	return p.validity(false)
}

func (p *Point) String() string {
	if p.IsInfinity() {
		return "INF"
	}
	s := fmt.Sprintf("(%s,%s", p.x, p.y)
	for _, z := range p.zs {
		s += "," + z.String()
	}
	return s + ")"
}

func (p *Point) getPreComp(name string) PreCompInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.preComp == nil {
		return nil
	}
	return p.preComp[name]
}
