package ec

import "github.com/coinbase/cb-ecc-go/pkg/ecc/field"

// NormalizeAll uses Montgomery's simultaneous inversion so that normalizing
// n points costs one field inversion and 3(n-1) multiplications.
func (c *curveBase) NormalizeAll(ps []*Point) {
	var (
		idx []int
		zs  []field.Element
	)
	for i, p := range ps {
		if p == nil {
			continue
		}
		c.checkSameCurve(p)
		if !p.IsNormalized() {
			idx = append(idx, i)
			zs = append(zs, p.zs[0])
		}
	}
	if len(zs) == 0 {
		return
	}
	montgomeryTrick(zs)
	for j, i := range idx {
		ps[i] = c.self.normalizeWith(ps[i], zs[j])
	}
}

// montgomeryTrick replaces every element of zs by its inverse.
func montgomeryTrick(zs []field.Element) {
	n := len(zs)
	acc := make([]field.Element, n)
	acc[0] = zs[0]
	for i := 1; i < n; i++ {
		acc[i] = acc[i-1].Multiply(zs[i])
	}
	u := acc[n-1].Invert()
	for i := n - 1; i > 0; i-- {
		zi := zs[i]
		zs[i] = acc[i-1].Multiply(u)
		u = u.Multiply(zi)
	}
	zs[0] = u
}
