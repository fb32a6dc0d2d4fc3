package ec

import (
	"math/big"
)

// Multiplier computes scalar multiples of points.
type Multiplier interface {
	// Multiply returns k*p. k may be negative or exceed the group order.
	Multiply(p *Point, k *big.Int) (*Point, error)
}

type positiveFunc func(p *Point, k *big.Int) (*Point, error)

// multiply handles the shared contract: zero and infinity short-circuit,
// negative scalars negate the result and every result is validated.
func multiply(p *Point, k *big.Int, positive positiveFunc) (*Point, error) {
	sign := k.Sign()
	if sign == 0 || p.IsInfinity() {
		return p.curve.Infinity(), nil
	}
	r, err := positive(p, new(big.Int).Abs(k))
	if err != nil {
		return nil, err
	}
	if sign < 0 {
		r = r.Negate()
	}
	return checkResult(r)
}

func checkResult(p *Point) (*Point, error) {
	if !p.IsValidPartial() {
		return nil, ErrPostMultiplyCheck
	}
	return p, nil
}

// referenceMultiply is unchecked right-to-left double-and-add. It backs the
// subgroup check and must not recurse into validation.
func referenceMultiply(p *Point, k *big.Int) *Point {
	x := new(big.Int).Abs(k)
	q := p
	r := p.curve.Infinity()
	for i := 0; i < x.BitLen(); i++ {
		if x.Bit(i) == 1 {
			r = r.Add(q)
		}
		q = q.Twice()
	}
	if k.Sign() < 0 {
		r = r.Negate()
	}
	return r
}

// ReferenceMultiplier is textbook right-to-left double-and-add.
type ReferenceMultiplier struct{}

func (ReferenceMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	return multiply(p, k, func(p *Point, k *big.Int) (*Point, error) {
		return referenceMultiply(p, k), nil
	})
}

// DoubleAddMultiplier is Joye's right-to-left double-add: one doubling and
// one addition per scalar bit regardless of its value.
type DoubleAddMultiplier struct{}

func (DoubleAddMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	return multiply(p, k, func(p *Point, k *big.Int) (*Point, error) {
		r := [2]*Point{p.curve.Infinity(), p}
		for i := 0; i < k.BitLen(); i++ {
			b := k.Bit(i)
			r[1-b] = r[1-b].TwicePlus(r[b])
		}
		return r[0], nil
	})
}

// MontgomeryLadderMultiplier keeps R1 - R0 = p while scanning bits from the
// top.
type MontgomeryLadderMultiplier struct{}

func (MontgomeryLadderMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	return multiply(p, k, func(p *Point, k *big.Int) (*Point, error) {
		r := [2]*Point{p.curve.Infinity(), p}
		for i := k.BitLen() - 1; i >= 0; i-- {
			b := k.Bit(i)
			r[1-b] = r[1-b].Add(r[b])
			r[b] = r[b].Twice()
		}
		return r[0], nil
	})
}

// NafL2RMultiplier scans the NAF of k from the most significant digit.
type NafL2RMultiplier struct{}

func (NafL2RMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	return multiply(p, k, func(p *Point, k *big.Int) (*Point, error) {
		naf := GenerateCompactNaf(k)
		addP := p.Normalize()
		subP := addP.Negate()
		r := p.curve.Infinity()
		for i := len(naf) - 1; i >= 0; i-- {
			digit, zeroes := naf[i].Digit(), naf[i].Zeroes()
			if digit < 0 {
				r = r.TwicePlus(subP)
			} else {
				r = r.TwicePlus(addP)
			}
			r = r.TimesPow2(zeroes)
		}
		return r, nil
	})
}

// NafR2LMultiplier scans the NAF of k from the least significant digit.
type NafR2LMultiplier struct{}

func (NafR2LMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	return multiply(p, k, func(p *Point, k *big.Int) (*Point, error) {
		naf := GenerateCompactNaf(k)
		r0, r1 := p.curve.Infinity(), p
		zeroes := 0
		for _, d := range naf {
			zeroes += d.Zeroes()
			r1 = r1.TimesPow2(zeroes)
			if d.Digit() < 0 {
				r0 = r0.Subtract(r1)
			} else {
				r0 = r0.Add(r1)
			}
			zeroes = 1
		}
		return r0, nil
	})
}
