package ec

import (
	"fmt"
	"math/big"
)

// MixedNafR2LMultiplier doubles in one coordinate system and adds in
// another, moving points between the two with ImportPoint.
type MixedNafR2LMultiplier struct {
	additionCoord CoordinateSystem
	doublingCoord CoordinateSystem
}

// NewMixedNafR2LMultiplier defaults to Jacobian additions and
// Jacobian-modified doublings.
func NewMixedNafR2LMultiplier() *MixedNafR2LMultiplier {
	return &MixedNafR2LMultiplier{additionCoord: Jacobian, doublingCoord: JacobianModified}
}

// NewMixedNafR2LMultiplierCoords selects both coordinate systems.
func NewMixedNafR2LMultiplierCoords(addition, doubling CoordinateSystem) *MixedNafR2LMultiplier {
	return &MixedNafR2LMultiplier{additionCoord: addition, doublingCoord: doubling}
}

func (m *MixedNafR2LMultiplier) checkCurve(c Curve) error {
	for _, cs := range []CoordinateSystem{m.additionCoord, m.doublingCoord} {
		if !c.SupportsCoordinateSystem(cs) {
			return fmt.Errorf("%w: %s on %s", ErrUnsupportedCoordinateSystem, cs, c)
		}
	}
	return nil
}

func (m *MixedNafR2LMultiplier) configure(c Curve, cs CoordinateSystem) (Curve, error) {
	if c.CoordinateSystem() == cs {
		return c, nil
	}
	return c.Configure().SetCoordinateSystem(cs).SetMultiplier(nil).Create()
}

func (m *MixedNafR2LMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	if err := m.checkCurve(p.curve); err != nil {
		return nil, err
	}
	return multiply(p, k, func(p *Point, k *big.Int) (*Point, error) {
		orig := p.curve
		addCurve, err := m.configure(orig, m.additionCoord)
		if err != nil {
			return nil, err
		}
		dblCurve, err := m.configure(orig, m.doublingCoord)
		if err != nil {
			return nil, err
		}

		naf := GenerateCompactNaf(k)
		ra := addCurve.Infinity()
		td, err := dblCurve.ImportPoint(p)
		if err != nil {
			return nil, err
		}
		zeroes := 0
		for _, d := range naf {
			zeroes += d.Zeroes()
			td = td.TimesPow2(zeroes)
			tj, err := addCurve.ImportPoint(td)
			if err != nil {
				return nil, err
			}
			if d.Digit() < 0 {
				tj = tj.Negate()
			}
			ra = ra.Add(tj)
			zeroes = 1
		}
		return orig.ImportPoint(ra)
	})
}

// FixedPointPreCompInfo is a comb table for a fixed base point.
type FixedPointPreCompInfo struct {
	// Offset is added after the comb loop to cancel the base point folded
	// into every table entry.
	Offset      *Point
	LookupTable LookupTable
	Width       int
}

// CombSize is the scalar bit length covered by a comb on c.
func CombSize(c Curve) int {
	if n := c.Order(); n != nil {
		return n.BitLen()
	}
	return c.FieldSize() + 1
}

// PrecomputeFixedPoint builds the comb table for p. Entry i holds
// p + sum(2^(j*d) p for each bit j set in i), where d = ceil(size/width),
// so that no entry is the point at infinity.
func PrecomputeFixedPoint(p *Point) (*FixedPointPreCompInfo, error) {
	c := p.curve
	var buildErr error
	info := c.Precompute(p, PreCompFixedPoint, PreCompFunc(func(existing PreCompInfo) PreCompInfo {
		size := CombSize(c)
		minWidth := 5
		if size > 250 {
			minWidth = 6
		}
		if prev, ok := existing.(*FixedPointPreCompInfo); ok && prev.Width >= minWidth && prev.LookupTable != nil {
			return prev
		}

		n := 1 << uint(minWidth)
		bits := (size + minWidth - 1) / minWidth

		pow2 := make([]*Point, minWidth+1)
		pow2[0] = p
		for i := 1; i < minWidth; i++ {
			pow2[i] = pow2[i-1].TimesPow2(bits)
		}
		pow2[minWidth] = pow2[0].Subtract(pow2[1])
		c.NormalizeAll(pow2)

		table := make([]*Point, n)
		table[0] = pow2[0]
		for bit := minWidth - 1; bit >= 0; bit-- {
			step := 1 << uint(bit)
			for i := step; i < n; i += step << 1 {
				table[i] = table[i-step].Add(pow2[bit])
			}
		}

		lt, err := c.CreateCacheSafeLookupTable(table, 0, n)
		if err != nil {
			buildErr = err
			return existing
		}
		return &FixedPointPreCompInfo{Offset: pow2[minWidth], LookupTable: lt, Width: minWidth}
	}))
	if buildErr != nil {
		return nil, buildErr
	}
	return info.(*FixedPointPreCompInfo), nil
}

// FixedPointCombMultiplier multiplies a fixed base point using a comb
// table read through a constant-time lookup. Scalars must not exceed the
// comb size.
type FixedPointCombMultiplier struct{}

func (FixedPointCombMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	return multiply(p, k, func(p *Point, k *big.Int) (*Point, error) {
		c := p.curve
		size := CombSize(c)
		if k.BitLen() > size {
			return nil, fmt.Errorf("%w: %d bits, comb covers %d", ErrScalarTooLarge, k.BitLen(), size)
		}
		info, err := PrecomputeFixedPoint(p)
		if err != nil {
			return nil, err
		}
		width := info.Width
		d := (size + width - 1) / width
		top := d*width - 1

		r := c.Infinity()
		for i := 0; i < d; i++ {
			index := 0
			for j := top - i; j >= 0; j -= d {
				index = index<<1 | int(k.Bit(j))
			}
			r = r.TwicePlus(info.LookupTable.Lookup(index))
		}
		return r.Add(info.Offset), nil
	})
}
