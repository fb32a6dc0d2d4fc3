package ec

import (
	"fmt"
	"math/big"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/field"
)

// ZTauElement is u + vτ in Z[τ], where τ is the Frobenius map of a Koblitz
// curve and satisfies τ^2 = μτ - 2.
type ZTauElement struct {
	U, V *big.Int
}

// NewZTau returns u + vτ.
func NewZTau(u, v *big.Int) ZTauElement {
	return ZTauElement{U: new(big.Int).Set(u), V: new(big.Int).Set(v)}
}

func (z ZTauElement) IsZero() bool { return z.U.Sign() == 0 && z.V.Sign() == 0 }

func (z ZTauElement) String() string { return fmt.Sprintf("%s + %sτ", z.U, z.V) }

// Norm returns N(u + vτ) = u^2 + μuv + 2v^2.
func Norm(mu int, z ZTauElement) *big.Int {
	s1 := new(big.Int).Mul(z.U, z.U)
	s2 := new(big.Int).Mul(z.U, z.V)
	s3 := new(big.Int).Mul(z.V, z.V)
	s3.Lsh(s3, 1)
	if mu == 1 {
		return s1.Add(s1, s2).Add(s1, s3)
	}
	return s1.Sub(s1, s2).Add(s1, s3)
}

// MulTau returns z*τ = -2v + (u + μv)τ.
func MulTau(mu int, z ZTauElement) ZTauElement {
	u := new(big.Int).Lsh(z.V, 1)
	u.Neg(u)
	v := new(big.Int).Set(z.U)
	if mu == 1 {
		v.Add(v, z.V)
	} else {
		v.Sub(v, z.V)
	}
	return ZTauElement{U: u, V: v}
}

// DivTau returns z/τ, which is exact only when u is even.
func DivTau(mu int, z ZTauElement) ZTauElement {
	half := new(big.Int).Rsh(z.U, 1)
	u := new(big.Int).Set(z.V)
	if mu == 1 {
		u.Add(u, half)
	} else {
		u.Sub(u, half)
	}
	return ZTauElement{U: u, V: half.Neg(half)}
}

// getMu maps a curve coefficient a in {0, 1} to μ.
func getMu(a field.Element) int {
	if a.IsZero() {
		return -1
	}
	return 1
}

// Lucas returns (X_{k-1}, X_k) for the sequence X_{i+1} = μX_i - 2X_{i-1}
// starting from U_0 = 0, U_1 = 1, or V_0 = 2, V_1 = μ when doV is set.
// τ^k = U_k τ - 2U_{k-1} and V_k = τ^k + conj(τ)^k.
func Lucas(mu, k int, doV bool) (*big.Int, *big.Int) {
	if mu != 1 && mu != -1 {
		panic("ec: mu must be 1 or -1")
	}
	if k < 1 {
		panic("ec: Lucas index must be positive")
	}
	var u0, u1 *big.Int
	if doV {
		u0, u1 = big.NewInt(2), big.NewInt(int64(mu))
	} else {
		u0, u1 = big.NewInt(0), big.NewInt(1)
	}
	for i := 1; i < k; i++ {
		s := new(big.Int).Set(u1)
		if mu == -1 {
			s.Neg(s)
		}
		s.Sub(s, new(big.Int).Lsh(u0, 1))
		u0, u1 = u1, s
	}
	return u0, u1
}

// Tw returns t_w with τ ≡ t_w (mod τ^w), i.e. 2U_{w-1}/U_w mod 2^w.
func Tw(mu, w int) *big.Int {
	um1, uw := Lucas(mu, w, false)
	mod := new(big.Int).Lsh(bigOne, uint(w))
	inv := new(big.Int).ModInverse(new(big.Int).Mod(uw, mod), mod)
	t := new(big.Int).Lsh(um1, 1)
	t.Mul(t, inv)
	return t.Mod(t, mod)
}
