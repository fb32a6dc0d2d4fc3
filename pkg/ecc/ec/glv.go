package ec

import (
	"fmt"
	"math/big"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/field"
)

// PointMap is a group homomorphism on the points of a curve.
type PointMap interface {
	Map(p *Point) *Point
}

// ScaleXPointMap is (x, y) -> (s*x, y).
type ScaleXPointMap struct {
	Scale field.Element
}

func (m ScaleXPointMap) Map(p *Point) *Point { return p.ScaleX(m.Scale) }

// Endomorphism is an efficiently computable curve endomorphism.
type Endomorphism interface {
	PointMap() PointMap
	HasEfficientPointMap() bool
}

// GLVEndomorphism additionally splits scalars into two half-length parts.
type GLVEndomorphism interface {
	Endomorphism
	// DecomposeScalar returns (a, b) with a + b*λ ≡ k (mod n).
	DecomposeScalar(k *big.Int) [2]*big.Int
}

// GLVTypeBParameters describe the endomorphism (x, y) -> (βx, y) acting as
// multiplication by λ, together with a reduced lattice basis {V1, V2} of
// {(a, b) : a + bλ ≡ 0 mod n} and the rounding constants
// G1 = round(2^Bits * V2[1] / n), G2 = round(2^Bits * -V1[1] / n).
type GLVTypeBParameters struct {
	Beta   *big.Int
	Lambda *big.Int
	V1     [2]*big.Int
	V2     [2]*big.Int
	G1     *big.Int
	G2     *big.Int
	Bits   int
}

// GLVTypeBEndomorphism implements GLV on prime curves with a = 0.
type GLVTypeBEndomorphism struct {
	params   GLVTypeBParameters
	pointMap PointMap
}

// NewGLVTypeBEndomorphism binds params to the field of c.
func NewGLVTypeBEndomorphism(c Curve, params GLVTypeBParameters) (*GLVTypeBEndomorphism, error) {
	beta, err := c.FromBigInt(params.Beta)
	if err != nil {
		return nil, fmt.Errorf("glv beta: %w", err)
	}
	return &GLVTypeBEndomorphism{params: params, pointMap: ScaleXPointMap{Scale: beta}}, nil
}

func (e *GLVTypeBEndomorphism) PointMap() PointMap         { return e.pointMap }
func (e *GLVTypeBEndomorphism) HasEfficientPointMap() bool { return true }

// Parameters returns the endomorphism's constants.
func (e *GLVTypeBEndomorphism) Parameters() GLVTypeBParameters { return e.params }

func (e *GLVTypeBEndomorphism) DecomposeScalar(k *big.Int) [2]*big.Int {
	p := e.params
	b1 := roundedShift(k, p.G1, p.Bits)
	b2 := roundedShift(k, p.G2, p.Bits)

	a := new(big.Int).Mul(b1, p.V1[0])
	a.Add(a, new(big.Int).Mul(b2, p.V2[0]))
	a.Sub(k, a)

	b := new(big.Int).Mul(b1, p.V1[1])
	b.Add(b, new(big.Int).Mul(b2, p.V2[1]))
	b.Neg(b)
	return [2]*big.Int{a, b}
}

// roundedShift returns round(k*g / 2^t) for k >= 0.
func roundedShift(k, g *big.Int, t int) *big.Int {
	negative := g.Sign() < 0
	b := new(big.Int).Mul(k, new(big.Int).Abs(g))
	extra := b.Bit(t-1) == 1
	b.Rsh(b, uint(t))
	if extra {
		b.Add(b, bigOne)
	}
	if negative {
		b.Neg(b)
	}
	return b
}

// EndoPreCompInfo caches the image of a point under an endomorphism.
type EndoPreCompInfo struct {
	Endomorphism Endomorphism
	MappedPoint  *Point
}

// mapPointWithPrecomp maps p, reusing a cached image. When p carries a
// wNAF table the mapped point inherits the mapped table, saving the odd
// multiple computation.
func mapPointWithPrecomp(e Endomorphism, p *Point) *Point {
	info := p.curve.Precompute(p, PreCompEndo, PreCompFunc(func(existing PreCompInfo) PreCompInfo {
		if prev, ok := existing.(*EndoPreCompInfo); ok && prev.Endomorphism == e && prev.MappedPoint != nil {
			return prev
		}
		return &EndoPreCompInfo{Endomorphism: e, MappedPoint: e.PointMap().Map(p)}
	})).(*EndoPreCompInfo)

	q := info.MappedPoint
	if src, ok := p.getPreComp(PreCompWNaf).(*WNafPreCompInfo); ok && len(src.PreComp) > 0 {
		m := e.PointMap()
		p.curve.Precompute(q, PreCompWNaf, PreCompFunc(func(existing PreCompInfo) PreCompInfo {
			if prev, ok := existing.(*WNafPreCompInfo); ok && len(prev.PreComp) >= len(src.PreComp) {
				return prev
			}
			out := &WNafPreCompInfo{Width: src.Width}
			out.PreComp = make([]*Point, len(src.PreComp))
			for i, pt := range src.PreComp {
				out.PreComp[i] = m.Map(pt)
			}
			out.PreCompNeg = make([]*Point, len(src.PreCompNeg))
			for i, pt := range src.PreCompNeg {
				out.PreCompNeg[i] = m.Map(pt)
			}
			if src.Twice != nil {
				out.Twice = m.Map(src.Twice)
			}
			return out
		}))
	}
	return q
}

// GLVMultiplier decomposes k into two half-length scalars and evaluates
// a*p + b*φ(p) with interleaved window NAFs.
type GLVMultiplier struct {
	endo GLVEndomorphism
}

// NewGLVMultiplier returns a multiplier bound to endo.
func NewGLVMultiplier(endo GLVEndomorphism) *GLVMultiplier {
	return &GLVMultiplier{endo: endo}
}

func (m *GLVMultiplier) checkCurve(c Curve) error {
	if c.Order() == nil {
		return fmt.Errorf("%w: GLV needs the group order", ErrUnsupportedMultiplier)
	}
	if _, ok := c.(*FpCurve); !ok {
		return fmt.Errorf("%w: GLV type B needs a prime curve", ErrUnsupportedMultiplier)
	}
	return nil
}

func (m *GLVMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	if err := m.checkCurve(p.curve); err != nil {
		return nil, err
	}
	return multiply(p, k, func(p *Point, k *big.Int) (*Point, error) {
		n := p.curve.base().order
		ab := m.endo.DecomposeScalar(new(big.Int).Mod(k, n))
		q := mapPointWithPrecomp(m.endo, p)
		return interleavedWNaf([]*Point{p, q}, []*big.Int{ab[0], ab[1]}), nil
	})
}
