package ec

import (
	"errors"
	"math/big"
)

// ShamirsTrick returns k*p + l*q by scanning the joint sparse form of
// (|k|, |l|) once, left to right.
func ShamirsTrick(p *Point, k *big.Int, q *Point, l *big.Int) (*Point, error) {
	q, err := p.curve.ImportPoint(q)
	if err != nil {
		return nil, err
	}
	if k.Sign() < 0 {
		p, k = p.Negate(), new(big.Int).Neg(k)
	}
	if l.Sign() < 0 {
		q, l = q.Negate(), new(big.Int).Neg(l)
	}
	return checkResult(shamirsTrickJSF(p, k, q, l))
}

func shamirsTrickJSF(p *Point, k *big.Int, q *Point, l *big.Int) *Point {
	c := p.curve
	inf := c.Infinity()

	// Non-infinite combinations are normalized together; a zero sum such as
	// p - q for p = q cannot be represented in the batch.
	pts := []*Point{q, p.Subtract(q), p, p.Add(q)}
	var finite []*Point
	var where []int
	for i, pt := range pts {
		if !pt.IsInfinity() {
			finite = append(finite, pt)
			where = append(where, i)
		}
	}
	c.NormalizeAll(finite)
	for j, i := range where {
		pts[i] = finite[j]
	}

	// table[4 + 3*u0 + u1] = u0*p + u1*q
	table := [9]*Point{
		pts[3].Negate(), pts[2].Negate(), pts[1].Negate(), pts[0].Negate(),
		inf,
		pts[0], pts[1], pts[2], pts[3],
	}

	jsf := GenerateJSF(k, l)
	r := inf
	for i := len(jsf) - 1; i >= 0; i-- {
		d := jsf[i]
		r = r.TwicePlus(table[4+3*int(d.U0)+int(d.U1)])
	}
	return r
}

// SumOfTwoMultiplies returns a*p + b*q. On curves with a GLV endomorphism
// both scalars are split and four half-length multiplications are
// interleaved; otherwise Shamir's trick over the joint sparse form is used.
func SumOfTwoMultiplies(p *Point, a *big.Int, q *Point, b *big.Int) (*Point, error) {
	if glv, ok := p.curve.Endomorphism().(GLVEndomorphism); ok {
		return SumOfMultiplies([]*Point{p, q}, []*big.Int{a, b}, WithGLV(glv))
	}
	return ShamirsTrick(p, a, q, b)
}

type sumOptions struct {
	glv GLVEndomorphism
}

// SumOption tunes SumOfMultiplies.
type SumOption func(*sumOptions)

// WithGLV splits each scalar with the endomorphism before interleaving.
func WithGLV(g GLVEndomorphism) SumOption {
	return func(o *sumOptions) { o.glv = g }
}

// SumOfMultiplies returns sum(ks[i]*ps[i]) with interleaved window NAFs so
// that all terms share one chain of doublings.
func SumOfMultiplies(ps []*Point, ks []*big.Int, opts ...SumOption) (*Point, error) {
	if len(ps) != len(ks) || len(ps) == 0 {
		return nil, errors.New("ec: points and scalars must be non-empty and of equal length")
	}
	var o sumOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := ps[0].curve
	points := make([]*Point, 0, 2*len(ps))
	scalars := make([]*big.Int, 0, 2*len(ps))
	for i, p := range ps {
		imported, err := c.ImportPoint(p)
		if err != nil {
			return nil, err
		}
		if o.glv == nil {
			points = append(points, imported)
			scalars = append(scalars, ks[i])
			continue
		}
		ab := o.glv.DecomposeScalar(new(big.Int).Mod(ks[i], c.base().order))
		points = append(points, imported, mapPointWithPrecomp(o.glv, imported))
		scalars = append(scalars, ab[0], ab[1])
	}
	return checkResult(interleavedWNaf(points, scalars))
}

// interleavedWNaf evaluates sum(ks[i]*ps[i]); scalars may be negative.
func interleavedWNaf(ps []*Point, ks []*big.Int) *Point {
	n := len(ps)
	infos := make([]*WNafPreCompInfo, n)
	wnafs := make([][]int32, n)
	neg := make([]bool, n)
	maxLen := 0
	for i := range ps {
		k := ks[i]
		neg[i] = k.Sign() < 0
		k = new(big.Int).Abs(k)
		width := WindowSize(k.BitLen(), MaxWindowWidth)
		infos[i] = PrecomputeWNaf(ps[i], width, true)
		wnafs[i] = GenerateWindowNaf(infos[i].Width, k)
		if len(wnafs[i]) > maxLen {
			maxLen = len(wnafs[i])
		}
	}

	r := ps[0].curve.Infinity()
	for bit := maxLen - 1; bit >= 0; bit-- {
		r = r.Twice()
		for i := range ps {
			if bit >= len(wnafs[i]) {
				continue
			}
			d := int(wnafs[i][bit])
			if d == 0 {
				continue
			}
			pos := d > 0
			if neg[i] {
				pos = !pos
			}
			if d < 0 {
				d = -d
			}
			if pos {
				r = r.Add(infos[i].PreComp[d>>1])
			} else {
				r = r.Add(infos[i].PreCompNeg[d>>1])
			}
		}
	}
	return r
}
