package ec

import (
	"math/big"
)

// MaxWindowWidth bounds the width of window-NAF tables.
const MaxWindowWidth = 16

// windowSizeCutoffs maps scalar bit lengths to window widths: a scalar of
// fewer than windowSizeCutoffs[i] bits uses width i+2.
var windowSizeCutoffs = []int{13, 41, 121, 337, 897, 2305}

// WindowSize returns the wNAF width for a scalar of the given bit length,
// capped at maxWidth.
func WindowSize(bits, maxWidth int) int {
	w := 0
	for ; w < len(windowSizeCutoffs); w++ {
		if bits < windowSizeCutoffs[w] {
			break
		}
	}
	w += 2
	if maxWidth < 2 {
		maxWidth = 2
	}
	if w > maxWidth {
		w = maxWidth
	}
	return w
}

// NafDigit packs a non-zero signed digit with the number of zero digits that
// separate it from the previous (less significant) non-zero digit. The digit
// occupies the high 32 bits and the zero count the low 32 bits.
type NafDigit int64

const nafZeroMask = 1<<32 - 1

func packNaf(digit, zeroes int) NafDigit {
	return NafDigit(int64(digit)<<32 | int64(zeroes)&nafZeroMask)
}

// Digit returns the signed digit.
func (d NafDigit) Digit() int { return int(int64(d) >> 32) }

// Zeroes returns the preceding zero count.
func (d NafDigit) Zeroes() int { return int(int64(d) & nafZeroMask) }

// GenerateNaf returns the non-adjacent form of k >= 0, least significant
// digit first.
func GenerateNaf(k *big.Int) []int32 {
	return GenerateWindowNaf(2, k)
}

// GenerateWindowNaf returns the width-w NAF of k >= 0, least significant
// digit first. Non-zero digits are odd and lie in (-2^(w-1), 2^(w-1)), and
// any w consecutive digits contain at most one non-zero digit.
func GenerateWindowNaf(width int, k *big.Int) []int32 {
	if width < 2 || width > MaxWindowWidth {
		panic("ec: window width out of range")
	}
	if k.Sign() < 0 {
		panic("ec: window NAF of a negative scalar")
	}
	pow := int64(1) << uint(width)
	half := pow >> 1
	mask := big.NewInt(pow - 1)

	r := new(big.Int).Set(k)
	t := new(big.Int)
	out := make([]int32, 0, k.BitLen()+1)
	for r.Sign() > 0 {
		if r.Bit(0) == 1 {
			d := t.And(r, mask).Int64()
			if d >= half {
				d -= pow
			}
			r.Sub(r, t.SetInt64(d))
			out = append(out, int32(d))
		} else {
			out = append(out, 0)
		}
		r.Rsh(r, 1)
	}
	return out
}

// compact folds runs of zero digits into the following non-zero digit.
func compact(digits []int32) []NafDigit {
	out := make([]NafDigit, 0, len(digits)/2+1)
	zeroes := 0
	for _, d := range digits {
		if d == 0 {
			zeroes++
			continue
		}
		out = append(out, packNaf(int(d), zeroes))
		zeroes = 0
	}
	return out
}

// GenerateCompactNaf returns the NAF of k in compact form.
func GenerateCompactNaf(k *big.Int) []NafDigit {
	return compact(GenerateNaf(k))
}

// GenerateCompactWindowNaf returns the width-w NAF of k in compact form.
func GenerateCompactWindowNaf(width int, k *big.Int) []NafDigit {
	return compact(GenerateWindowNaf(width, k))
}

// JSFDigit is one column of a joint sparse form.
type JSFDigit struct {
	U0, U1 int8
}

// GenerateJSF returns the joint sparse form of (k0, k1), both >= 0, least
// significant column first. Among all joint signed-binary expansions the
// JSF minimises the number of non-zero columns.
func GenerateJSF(k0, k1 *big.Int) []JSFDigit {
	if k0.Sign() < 0 || k1.Sign() < 0 {
		panic("ec: joint sparse form of a negative scalar")
	}
	n := k0.BitLen()
	if k1.BitLen() > n {
		n = k1.BitLen()
	}
	out := make([]JSFDigit, 0, n+1)

	a := new(big.Int).Set(k0)
	b := new(big.Int).Set(k1)
	d0, d1 := 0, 0
	low3 := func(x *big.Int) int {
		return int(x.Bit(0)) | int(x.Bit(1))<<1 | int(x.Bit(2))<<2
	}
	for d0 != 0 || d1 != 0 || a.Sign() > 0 || b.Sign() > 0 {
		l0 := (low3(a) + d0) & 7
		l1 := (low3(b) + d1) & 7

		u0 := jsfDigit(l0, l1)
		u1 := jsfDigit(l1, l0)

		if 2*d0 == 1+u0 {
			d0 = 1 - d0
		}
		if 2*d1 == 1+u1 {
			d1 = 1 - d1
		}
		a.Rsh(a, 1)
		b.Rsh(b, 1)
		out = append(out, JSFDigit{U0: int8(u0), U1: int8(u1)})
	}
	return out
}

// jsfDigit picks the digit for l = (k + d) mod 8 given the other row's value.
func jsfDigit(l, other int) int {
	if l&1 == 0 {
		return 0
	}
	u := 1
	if l&3 == 3 {
		u = -1
	}
	if (l == 3 || l == 5) && other&3 == 2 {
		u = -u
	}
	return u
}

// WNafPreCompInfo caches odd multiples of a point: PreComp[i] = (2i+1)p and
// PreCompNeg[i] = -(2i+1)p, all normalized.
type WNafPreCompInfo struct {
	Width      int
	PreComp    []*Point
	PreCompNeg []*Point
	Twice      *Point
}

// PrecomputeWNaf ensures p carries an odd-multiple table of at least
// 2^(width-2) entries and returns it. Existing entries are kept and the
// table is only ever extended.
func PrecomputeWNaf(p *Point, width int, includeNegated bool) *WNafPreCompInfo {
	if width < 2 {
		width = 2
	}
	if width > MaxWindowWidth {
		width = MaxWindowWidth
	}
	req := 1 << uint(width-2)
	c := p.curve

	return c.Precompute(p, PreCompWNaf, PreCompFunc(func(existing PreCompInfo) PreCompInfo {
		prev, _ := existing.(*WNafPreCompInfo)
		if prev != nil && len(prev.PreComp) >= req && (!includeNegated || len(prev.PreCompNeg) >= req) {
			return prev
		}

		info := &WNafPreCompInfo{Width: width}
		var have int
		if prev != nil {
			have = len(prev.PreComp)
			info.Twice = prev.Twice
			if prev.Width > info.Width {
				info.Width = prev.Width
			}
			info.PreComp = append([]*Point(nil), prev.PreComp...)
			info.PreCompNeg = append([]*Point(nil), prev.PreCompNeg...)
		}

		if have < req {
			table := make([]*Point, req)
			copy(table, info.PreComp)
			if have == 0 {
				table[0] = p
			}
			cur := have
			if cur == 0 {
				cur = 1
			}
			if req == 2 && cur == 1 {
				table[1] = p.ThreeTimes()
				cur = 2
			}
			if cur < req {
				if info.Twice == nil {
					info.Twice = table[0].Twice()
				}
				last := table[cur-1]
				for ; cur < req; cur++ {
					last = last.Add(info.Twice)
					table[cur] = last
				}
			}
			tail := table[have:]
			c.NormalizeAll(tail)
			info.PreComp = table
		}

		if includeNegated && len(info.PreCompNeg) < len(info.PreComp) {
			neg := make([]*Point, len(info.PreComp))
			copy(neg, info.PreCompNeg)
			for i := len(info.PreCompNeg); i < len(neg); i++ {
				neg[i] = info.PreComp[i].Negate()
			}
			info.PreCompNeg = neg
		}
		return info
	})).(*WNafPreCompInfo)
}

// WNafL2RMultiplier is left-to-right window NAF with a width chosen from
// the scalar's bit length.
type WNafL2RMultiplier struct {
	maxWidth int
}

// NewWNafL2RMultiplier returns a wNAF multiplier with the default width cap.
func NewWNafL2RMultiplier() *WNafL2RMultiplier {
	return &WNafL2RMultiplier{maxWidth: MaxWindowWidth}
}

// NewWNafL2RMultiplierWidth caps the window width at maxWidth.
func NewWNafL2RMultiplierWidth(maxWidth int) *WNafL2RMultiplier {
	return &WNafL2RMultiplier{maxWidth: maxWidth}
}

func (m *WNafL2RMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	return multiply(p, k, func(p *Point, k *big.Int) (*Point, error) {
		width := WindowSize(k.BitLen(), m.maxWidth)
		info := PrecomputeWNaf(p, width, true)
		wnaf := GenerateCompactWindowNaf(info.Width, k)

		r := p.curve.Infinity()
		for i := len(wnaf) - 1; i >= 0; i-- {
			digit, zeroes := wnaf[i].Digit(), wnaf[i].Zeroes()
			var add *Point
			if digit < 0 {
				add = info.PreCompNeg[(-digit)>>1]
			} else {
				add = info.PreComp[digit>>1]
			}
			r = r.TwicePlus(add)
			r = r.TimesPow2(zeroes)
		}
		return r, nil
	})
}
