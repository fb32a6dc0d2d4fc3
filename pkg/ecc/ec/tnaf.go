package ec

import (
	"fmt"
	"math/big"
)

// TnafWidth is the window width of the τ-adic multiplier.
const TnafWidth = 4

// approximationPrecision is the number of fractional bits carried by the
// approximate division in PartModReduction.
const approximationPrecision = 10

// alpha holds α_u ≡ u (mod τ^4) for odd u in [1, 7], indexed by u.
var (
	alphaMuMinus = [8]ZTauElement{
		1: {U: big.NewInt(1), V: big.NewInt(0)},
		3: {U: big.NewInt(-3), V: big.NewInt(-1)},
		5: {U: big.NewInt(-1), V: big.NewInt(-1)},
		7: {U: big.NewInt(1), V: big.NewInt(-1)},
	}
	alphaMuPlus = [8]ZTauElement{
		1: {U: big.NewInt(1), V: big.NewInt(0)},
		3: {U: big.NewInt(-3), V: big.NewInt(1)},
		5: {U: big.NewInt(-1), V: big.NewInt(1)},
		7: {U: big.NewInt(1), V: big.NewInt(1)},
	}
)

// Alpha returns the width-4 digit representatives for μ.
func Alpha(mu int) [8]ZTauElement {
	if mu == 1 {
		return alphaMuPlus
	}
	return alphaMuMinus
}

// koblitzParams are the per-curve constants of the τ-adic machinery.
// δ = (τ^m - 1)/(τ - 1) = (S0 + μS1) - S1τ, and N(δ) is the subgroup order.
type koblitzParams struct {
	mu     int
	a      int
	m      int
	s0, s1 *big.Int
	vm     *big.Int
	tw     *big.Int
}

// koblitz derives the curve's τ-adic constants on first use.
func (c *F2mCurve) koblitz() (*koblitzParams, error) {
	if !c.IsKoblitz() {
		return nil, fmt.Errorf("%w: %s", ErrNotKoblitz, c)
	}
	c.kobOnce.Do(func() {
		mu := getMu(c.a)
		m := c.bf.M()
		s0, s1 := deltaComponents(mu, m)
		_, vm := Lucas(mu, m, true)
		a := 0
		if c.a.IsOne() {
			a = 1
		}
		c.kob = &koblitzParams{mu: mu, a: a, m: m, s0: s0, s1: s1, vm: vm, tw: Tw(mu, TnafWidth)}
	})
	return c.kob, nil
}

// deltaComponents divides τ^m - 1 = (-2U_{m-1} - 1) + U_m τ by τ - 1 in
// Z[τ] and returns (s0, s1) with δ = (s0 + μs1) - s1τ.
func deltaComponents(mu, m int) (*big.Int, *big.Int) {
	um1, um := Lucas(mu, m, false)
	a := new(big.Int).Lsh(um1, 1)
	a.Neg(a).Sub(a, bigOne)
	b := um

	// (a + bτ)(conj(τ) - 1) = (a(μ-1) + 2b) - (a + b)τ; N(τ - 1) = 3 - μ.
	n0 := new(big.Int).Mul(a, big.NewInt(int64(mu-1)))
	n0.Add(n0, new(big.Int).Lsh(b, 1))
	n1 := new(big.Int).Add(a, b)
	n1.Neg(n1)
	h := big.NewInt(int64(3 - mu))
	d0 := n0.Quo(n0, h)
	d1 := n1.Quo(n1, h)

	s1 := new(big.Int).Neg(d1)
	s0 := new(big.Int).Sub(d0, new(big.Int).Mul(big.NewInt(int64(mu)), s1))
	return s0, s1
}

// ApproximateDivisionByN returns k*s/n with c fractional bits, where
// n = (2^m + 1 - V_m) / 2^(2-a) is the subgroup order of a Koblitz curve.
// The division is replaced by shifts and one multiplication by V_m.
func ApproximateDivisionByN(k, s, vm *big.Int, a, m, c int) SimpleBigDecimal {
	kk := (m+5)/2 + c
	shift := m - kk - 2 + a
	ns := new(big.Int)
	if shift >= 0 {
		ns.Rsh(k, uint(shift))
	} else {
		ns.Lsh(k, uint(-shift))
	}
	gs := new(big.Int).Mul(s, ns)
	hs := new(big.Int).Rsh(gs, uint(m))
	js := new(big.Int).Mul(vm, hs)
	sum := gs.Add(gs, js)
	ls := new(big.Int).Rsh(sum, uint(kk-c))
	if sum.Bit(kk-c-1) == 1 {
		ls.Add(ls, bigOne)
	}
	return SimpleBigDecimal{v: ls, scale: c}
}

// RoundZTau rounds λ0 + λ1τ to a nearby element of Z[τ] such that the
// remainder has norm below 4/7 of the norm of the divisor.
func RoundZTau(lambda0, lambda1 SimpleBigDecimal, mu int) ZTauElement {
	lambda0.checkScale(lambda1)
	if mu != 1 && mu != -1 {
		panic("ec: mu must be 1 or -1")
	}
	f0 := lambda0.Round()
	f1 := lambda1.Round()
	eta0 := lambda0.SubtractInt(f0)
	eta1 := lambda1.SubtractInt(f1)

	// eta = 2*eta0 + mu*eta1
	eta := eta0.Add(eta0)
	if mu == 1 {
		eta = eta.Add(eta1)
	} else {
		eta = eta.Subtract(eta1)
	}

	// check1 = eta0 - 3*mu*eta1, check2 = eta0 + 4*mu*eta1
	threeEta1 := eta1.Add(eta1).Add(eta1)
	fourEta1 := threeEta1.Add(eta1)
	var check1, check2 SimpleBigDecimal
	if mu == 1 {
		check1 = eta0.Subtract(threeEta1)
		check2 = eta0.Add(fourEta1)
	} else {
		check1 = eta0.Add(threeEta1)
		check2 = eta0.Subtract(fourEta1)
	}

	one, two := big.NewInt(1), big.NewInt(2)
	minusOne, minusTwo := big.NewInt(-1), big.NewInt(-2)
	var h0, h1 int64
	if eta.CmpInt(one) >= 0 {
		if check1.CmpInt(minusOne) < 0 {
			h1 = int64(mu)
		} else {
			h0 = 1
		}
	} else if check2.CmpInt(two) >= 0 {
		h1 = int64(mu)
	}

	if eta.CmpInt(minusOne) < 0 {
		if check1.CmpInt(one) >= 0 {
			h1 = int64(-mu)
		} else {
			h0 = -1
		}
	} else if check2.CmpInt(minusTwo) < 0 {
		h1 = int64(-mu)
	}

	return ZTauElement{
		U: f0.Add(f0, big.NewInt(h0)),
		V: f1.Add(f1, big.NewInt(h1)),
	}
}

// PartModReduction returns ρ ≡ k (mod δ) of small norm, with
// δ = (τ^m - 1)/(τ - 1). For points of the prime-order subgroup ρ*P = k*P.
func PartModReduction(k *big.Int, m, a int, s0, s1, vm *big.Int, mu, c int) ZTauElement {
	d0 := new(big.Int).Set(s0)
	if mu == 1 {
		d0.Add(d0, s1)
	} else {
		d0.Sub(d0, s1)
	}

	lambda0 := ApproximateDivisionByN(k, s0, vm, a, m, c)
	lambda1 := ApproximateDivisionByN(k, s1, vm, a, m, c)
	q := RoundZTau(lambda0, lambda1, mu)

	// r0 = k - d0*q0 - 2*s1*q1
	r0 := new(big.Int).Sub(k, new(big.Int).Mul(d0, q.U))
	r0.Sub(r0, new(big.Int).Lsh(new(big.Int).Mul(s1, q.V), 1))

	// r1 = s1*q0 - s0*q1
	r1 := new(big.Int).Mul(s1, q.U)
	r1.Sub(r1, new(big.Int).Mul(s0, q.V))
	return ZTauElement{U: r0, V: r1}
}

// TauAdicNaf returns the τ-adic NAF of λ, least significant digit first.
// Digits are in {-1, 0, 1} and no two adjacent digits are non-zero.
func TauAdicNaf(mu int, lambda ZTauElement) []int8 {
	r0 := new(big.Int).Set(lambda.U)
	r1 := new(big.Int).Set(lambda.V)
	four := big.NewInt(4)

	var out []int8
	t := new(big.Int)
	for r0.Sign() != 0 || r1.Sign() != 0 {
		var u int8
		if r0.Bit(0) == 1 {
			// u = 2 - ((r0 - 2r1) mod 4)
			t.Lsh(r1, 1)
			t.Sub(r0, t)
			t.Mod(t, four)
			u = int8(2 - t.Int64())
			r0.Sub(r0, big.NewInt(int64(u)))
		}
		out = append(out, u)
		next := DivTau(mu, ZTauElement{U: r0, V: r1})
		r0, r1 = next.U, next.V
	}
	return out
}

// TauAdicWNaf returns the width-w τ-adic NAF of λ, least significant digit
// first. Non-zero digits are odd with |u| < 2^(w-1), and digit u stands for
// α_|u| with the sign of u.
func TauAdicWNaf(mu int, lambda ZTauElement, width int, tw *big.Int, alpha [8]ZTauElement) []int8 {
	if mu != 1 && mu != -1 {
		panic("ec: mu must be 1 or -1")
	}
	pow2w := new(big.Int).Lsh(bigOne, uint(width))
	half := new(big.Int).Rsh(pow2w, 1)

	r0 := new(big.Int).Set(lambda.U)
	r1 := new(big.Int).Set(lambda.V)
	var out []int8
	t := new(big.Int)
	for r0.Sign() != 0 || r1.Sign() != 0 {
		var u int8
		if r0.Bit(0) == 1 {
			// u = r0 + r1*tw mods 2^w
			t.Mul(r1, tw)
			t.Add(t, r0)
			t.Mod(t, pow2w)
			if t.Cmp(half) >= 0 {
				t.Sub(t, pow2w)
			}
			u = int8(t.Int64())
			if u > 0 {
				r0.Sub(r0, alpha[u].U)
				r1.Sub(r1, alpha[u].V)
			} else {
				r0.Add(r0, alpha[-u].U)
				r1.Add(r1, alpha[-u].V)
			}
		}
		out = append(out, u)
		next := DivTau(mu, ZTauElement{U: r0, V: r1})
		r0, r1 = next.U, next.V
	}
	return out
}

// MultiplyFromTnaf evaluates a τ-adic expansion with digits in {-1, 0, 1}
// by Horner's rule in τ.
func MultiplyFromTnaf(p *Point, u []int8) *Point {
	q := p.curve.Infinity()
	neg := p.Negate()
	tauCount := 0
	for i := len(u) - 1; i >= 0; i-- {
		tauCount++
		if u[i] == 0 {
			continue
		}
		q = q.TauPow(tauCount)
		tauCount = 0
		if u[i] > 0 {
			q = q.Add(p)
		} else {
			q = q.Add(neg)
		}
	}
	return q.TauPow(tauCount)
}

// MultiplyRTnaf returns k*p on a Koblitz curve through partial reduction
// followed by a plain τ-adic NAF. p must lie in the prime-order subgroup.
func MultiplyRTnaf(p *Point, k *big.Int) (*Point, error) {
	c, ok := p.curve.(*F2mCurve)
	if !ok {
		return nil, ErrNotKoblitz
	}
	kp, err := c.koblitz()
	if err != nil {
		return nil, err
	}
	return multiply(p, k, func(p *Point, k *big.Int) (*Point, error) {
		rho := PartModReduction(k, kp.m, kp.a, kp.s0, kp.s1, kp.vm, kp.mu, approximationPrecision)
		return MultiplyFromTnaf(p, TauAdicNaf(kp.mu, rho)), nil
	})
}

// WTauNafPreCompInfo caches α_u*p for u = 1, 3, 5, 7 at index u/2.
type WTauNafPreCompInfo struct {
	PreComp []*Point
}

func precomputeWTauNaf(p *Point, mu int) *WTauNafPreCompInfo {
	return p.curve.Precompute(p, PreCompWTauNaf, PreCompFunc(func(existing PreCompInfo) PreCompInfo {
		if prev, ok := existing.(*WTauNafPreCompInfo); ok {
			return prev
		}
		alpha := Alpha(mu)
		pu := make([]*Point, len(alpha)/2)
		pu[0] = p
		for u := 3; u < len(alpha); u += 2 {
			pu[u>>1] = MultiplyFromTnaf(p, TauAdicNaf(mu, alpha[u]))
		}
		p.curve.NormalizeAll(pu)
		return &WTauNafPreCompInfo{PreComp: pu}
	})).(*WTauNafPreCompInfo)
}

// WTauNafMultiplier is the width-4 τ-adic NAF multiplier for Koblitz
// curves. Points must lie in the prime-order subgroup.
type WTauNafMultiplier struct{}

// NewWTauNafMultiplier returns the τ-adic multiplier.
func NewWTauNafMultiplier() *WTauNafMultiplier { return &WTauNafMultiplier{} }

func (m *WTauNafMultiplier) checkCurve(c Curve) error {
	fc, ok := c.(*F2mCurve)
	if !ok || !fc.IsKoblitz() {
		return fmt.Errorf("%w: %s", ErrNotKoblitz, c)
	}
	return nil
}

func (m *WTauNafMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	if err := m.checkCurve(p.curve); err != nil {
		return nil, err
	}
	kp, err := p.curve.(*F2mCurve).koblitz()
	if err != nil {
		return nil, err
	}
	return multiply(p, k, func(p *Point, k *big.Int) (*Point, error) {
		rho := PartModReduction(k, kp.m, kp.a, kp.s0, kp.s1, kp.vm, kp.mu, approximationPrecision)
		u := TauAdicWNaf(kp.mu, rho, TnafWidth, kp.tw, Alpha(kp.mu))
		return multiplyFromWTnaf(p, u, kp.mu), nil
	})
}

func multiplyFromWTnaf(p *Point, u []int8, mu int) *Point {
	pu := precomputeWTauNaf(p, mu).PreComp
	q := p.curve.Infinity()
	tauCount := 0
	for i := len(u) - 1; i >= 0; i-- {
		tauCount++
		ui := u[i]
		if ui == 0 {
			continue
		}
		q = q.TauPow(tauCount)
		tauCount = 0
		if ui > 0 {
			q = q.Add(pu[ui>>1])
		} else {
			q = q.Subtract(pu[(-ui)>>1])
		}
	}
	return q.TauPow(tauCount)
}
