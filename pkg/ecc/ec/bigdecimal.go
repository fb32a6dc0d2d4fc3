package ec

import (
	"fmt"
	"math/big"
)

// SimpleBigDecimal is a fixed-point number v / 2^scale. Operands of binary
// operations must share a scale.
type SimpleBigDecimal struct {
	v     *big.Int
	scale int
}

// NewSimpleBigDecimal returns v / 2^scale.
func NewSimpleBigDecimal(v *big.Int, scale int) SimpleBigDecimal {
	if scale < 0 {
		panic("ec: negative decimal scale")
	}
	return SimpleBigDecimal{v: new(big.Int).Set(v), scale: scale}
}

// DecimalFromInt returns x with the given scale.
func DecimalFromInt(x *big.Int, scale int) SimpleBigDecimal {
	return SimpleBigDecimal{v: new(big.Int).Lsh(x, uint(scale)), scale: scale}
}

func (d SimpleBigDecimal) Scale() int { return d.scale }

func (d SimpleBigDecimal) checkScale(o SimpleBigDecimal) {
	if d.scale != o.scale {
		panic(fmt.Sprintf("ec: decimal scales differ: %d vs %d", d.scale, o.scale))
	}
}

func (d SimpleBigDecimal) Add(o SimpleBigDecimal) SimpleBigDecimal {
	d.checkScale(o)
	return SimpleBigDecimal{v: new(big.Int).Add(d.v, o.v), scale: d.scale}
}

func (d SimpleBigDecimal) Subtract(o SimpleBigDecimal) SimpleBigDecimal {
	d.checkScale(o)
	return SimpleBigDecimal{v: new(big.Int).Sub(d.v, o.v), scale: d.scale}
}

// SubtractInt returns d - x.
func (d SimpleBigDecimal) SubtractInt(x *big.Int) SimpleBigDecimal {
	return SimpleBigDecimal{v: new(big.Int).Sub(d.v, new(big.Int).Lsh(x, uint(d.scale))), scale: d.scale}
}

func (d SimpleBigDecimal) Negate() SimpleBigDecimal {
	return SimpleBigDecimal{v: new(big.Int).Neg(d.v), scale: d.scale}
}

// Cmp compares d with o.
func (d SimpleBigDecimal) Cmp(o SimpleBigDecimal) int {
	d.checkScale(o)
	return d.v.Cmp(o.v)
}

// CmpInt compares d with the integer x.
func (d SimpleBigDecimal) CmpInt(x *big.Int) int {
	return d.v.Cmp(new(big.Int).Lsh(x, uint(d.scale)))
}

// Floor rounds toward negative infinity.
func (d SimpleBigDecimal) Floor() *big.Int {
	return new(big.Int).Rsh(d.v, uint(d.scale))
}

// Round returns floor(d + 1/2).
func (d SimpleBigDecimal) Round() *big.Int {
	if d.scale == 0 {
		return new(big.Int).Set(d.v)
	}
	half := new(big.Int).Lsh(bigOne, uint(d.scale-1))
	return new(big.Int).Rsh(new(big.Int).Add(d.v, half), uint(d.scale))
}

func (d SimpleBigDecimal) String() string {
	if d.scale == 0 {
		return d.v.String()
	}
	f := new(big.Float).SetInt(d.v)
	f.SetMantExp(f, -d.scale)
	return f.Text('f', -1)
}
