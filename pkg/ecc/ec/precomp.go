package ec

import "reflect"

// PreCompInfo is a record of precomputed data cached on a point.
type PreCompInfo interface{}

// PreCompCallback computes or extends a precomputation. existing is the
// value currently cached under the same name, or nil.
//
// Callbacks may be invoked concurrently for the same point; the record
// stored last wins, so a callback must only ever produce complete records.
type PreCompCallback interface {
	Precompute(existing PreCompInfo) PreCompInfo
}

// PreCompFunc adapts a function to PreCompCallback.
type PreCompFunc func(existing PreCompInfo) PreCompInfo

func (f PreCompFunc) Precompute(existing PreCompInfo) PreCompInfo { return f(existing) }

// Precompute names.
const (
	PreCompValidity   = "ecc.validity"
	PreCompWNaf       = "ecc.wnaf"
	PreCompFixedPoint = "ecc.fixed-point"
	PreCompEndo       = "ecc.endo"
	PreCompWTauNaf    = "ecc.wtnaf"
)

// Precompute does not hold the point's lock while cb runs, so callbacks may
// themselves precompute on the same point.
func (c *curveBase) Precompute(p *Point, name string, cb PreCompCallback) PreCompInfo {
	existing := p.getPreComp(name)
	result := cb.Precompute(existing)
	if samePreComp(result, existing) {
		return result
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.preComp == nil {
		p.preComp = make(map[string]PreCompInfo, 2)
	}
	p.preComp[name] = result
	return result
}

// samePreComp reports whether a and b are the same pointer. Records of
// non-pointer types never match, which only costs a redundant store.
func samePreComp(a, b PreCompInfo) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || va.Kind() != reflect.Pointer {
		return false
	}
	return va.Pointer() == vb.Pointer()
}

// ValidityPreCompInfo records which validity checks a point has passed.
type ValidityPreCompInfo struct {
	Failed              bool
	CurveEquationPassed bool
	OrderPassed         bool
}

func (p *Point) validity(checkOrder bool) bool {
	if p.IsInfinity() {
		return true
	}
	info := p.curve.Precompute(p, PreCompValidity, PreCompFunc(func(existing PreCompInfo) PreCompInfo {
		var v ValidityPreCompInfo
		if prev, ok := existing.(*ValidityPreCompInfo); ok {
			v = *prev
		}
		if v.Failed || (v.CurveEquationPassed && (!checkOrder || v.OrderPassed)) {
			return existing
		}
		if !v.CurveEquationPassed {
			n := p.Normalize()
			if !p.curve.satisfiesEquation(n.x, p.curve.affineY(n)) {
				v.Failed = true
				return &v
			}
			v.CurveEquationPassed = true
		}
		if checkOrder && !v.OrderPassed {
			if !p.curve.satisfiesOrder(p) {
				v.Failed = true
				return &v
			}
			v.OrderPassed = true
		}
		return &v
	})).(*ValidityPreCompInfo)

	if info.Failed {
		return false
	}
	return info.CurveEquationPassed && (!checkOrder || info.OrderPassed)
}

// satisfiesOrderGeneric checks n*p = infinity with an unchecked ladder.
func satisfiesOrderGeneric(p *Point) bool {
	n := p.curve.base().order
	if n == nil {
		return true
	}
	h := p.curve.base().cofactor
	if h != nil && h.Cmp(bigOne) == 0 {
		return true
	}
	return referenceMultiply(p, n).IsInfinity()
}
