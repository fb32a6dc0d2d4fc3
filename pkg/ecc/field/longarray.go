package field

import (
	"math/big"
	"math/bits"
)

// longArray is a polynomial over GF(2) stored little-endian in 64-bit words:
// bit i of word w is the coefficient of x^(64w+i).
type longArray []uint64

func wordsFor(bitLen int) int {
	return (bitLen + 63) >> 6
}

func longArrayFromBig(x *big.Int, words int) longArray {
	buf := make([]byte, words*8)
	x.FillBytes(buf)
	out := make(longArray, words)
	for i := range out {
		off := len(buf) - 8*(i+1)
		for j := 0; j < 8; j++ {
			out[i] |= uint64(buf[off+7-j]) << (8 * uint(j))
		}
	}
	return out
}

func (a longArray) toBig() *big.Int {
	buf := make([]byte, len(a)*8)
	for i, w := range a {
		off := len(buf) - 8*(i+1)
		for j := 0; j < 8; j++ {
			buf[off+7-j] = byte(w >> (8 * uint(j)))
		}
	}
	return new(big.Int).SetBytes(buf)
}

func (a longArray) clone() longArray {
	out := make(longArray, len(a))
	copy(out, a)
	return out
}

func (a longArray) isZero() bool {
	for _, w := range a {
		if w != 0 {
			return false
		}
	}
	return true
}

func (a longArray) isOne() bool {
	if len(a) == 0 || a[0] != 1 {
		return false
	}
	for _, w := range a[1:] {
		if w != 0 {
			return false
		}
	}
	return true
}

func (a longArray) equal(b longArray) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var x, y uint64
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			return false
		}
	}
	return true
}

// degree returns the index of the highest set bit, or -1 for zero.
func (a longArray) degree() int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != 0 {
			return 64*i + 63 - bits.LeadingZeros64(a[i])
		}
	}
	return -1
}

func (a longArray) testBit(n int) bool {
	w := n >> 6
	if w >= len(a) {
		return false
	}
	return (a[w]>>(uint(n)&63))&1 == 1
}

// xorWordAt xors v into a at bit offset pos.
func (a longArray) xorWordAt(v uint64, pos int) {
	w, b := pos>>6, uint(pos)&63
	if w < len(a) {
		a[w] ^= v << b
	}
	if b != 0 && w+1 < len(a) {
		a[w+1] ^= v >> (64 - b)
	}
}

// bitsAt extracts n <= 64 bits starting at bit offset pos.
func (a longArray) bitsAt(pos, n int) uint64 {
	w, b := pos>>6, uint(pos)&63
	var v uint64
	if w < len(a) {
		v = a[w] >> b
	}
	if b != 0 && w+1 < len(a) {
		v |= a[w+1] << (64 - b)
	}
	if n < 64 {
		v &= (uint64(1) << uint(n)) - 1
	}
	return v
}

// xorShifted xors src * x^shift into a.
func (a longArray) xorShifted(src longArray, shift int) {
	for i, w := range src {
		if w != 0 {
			a.xorWordAt(w, 64*i+shift)
		}
	}
}

func (a longArray) xorInto(src longArray) {
	for i, w := range src {
		a[i] ^= w
	}
}

func (a longArray) shiftLeftInPlace(n uint) {
	var carry uint64
	for i := range a {
		w := a[i]
		a[i] = w<<n | carry
		carry = w >> (64 - n)
	}
}

// interleave spreads the 8 bits of a byte into the even bits of a uint16.
var interleave [256]uint16

func init() {
	for i := 0; i < 256; i++ {
		var v uint16
		for j := 0; j < 8; j++ {
			if i&(1<<uint(j)) != 0 {
				v |= 1 << uint(2*j)
			}
		}
		interleave[i] = v
	}
}

func spread32(x uint32) uint64 {
	return uint64(interleave[x&0xFF]) |
		uint64(interleave[(x>>8)&0xFF])<<16 |
		uint64(interleave[(x>>16)&0xFF])<<32 |
		uint64(interleave[x>>24])<<48
}

// reduceInPlace reduces c modulo x^m + sum(x^k for k in ks) + 1, folding up
// to 64 high bits per step. The multiply and square loops call it on at most
// one word of overflow.
func reduceInPlace(c longArray, m int, ks []int) {
	for {
		d := c.degree()
		if d < m {
			return
		}
		lo := d - 63
		if lo < m {
			lo = m
		}
		chunk := c.bitsAt(lo, d-lo+1)
		c.xorWordAt(chunk, lo)
		base := lo - m
		c.xorWordAt(chunk, base)
		for _, k := range ks {
			c.xorWordAt(chunk, base+k)
		}
	}
}

func (a longArray) truncate(words int) longArray {
	out := make(longArray, words)
	copy(out, a)
	return out
}

// modMultiply returns a*b mod f. It walks a in 4-bit windows from the top,
// Horner style, folding the overflow after every window shift so the
// accumulator never exceeds one word beyond the field size.
func modMultiply(a, b longArray, m int, ks []int) longArray {
	words := wordsFor(m)
	var table [16]longArray
	table[0] = make(longArray, words+1)
	table[1] = b.truncate(words + 1)
	for u := 2; u < 16; u++ {
		t := make(longArray, words+1)
		if u&1 == 0 {
			copy(t, table[u>>1])
			t.shiftLeftInPlace(1)
			reduceInPlace(t, m, ks)
		} else {
			copy(t, table[u-1])
			t.xorInto(table[1])
		}
		table[u] = t
	}

	acc := make(longArray, words+1)
	for pos := (m+3)&^3 - 4; pos >= 0; pos -= 4 {
		acc.shiftLeftInPlace(4)
		reduceInPlace(acc, m, ks)
		if u := a.bitsAt(pos, 4); u != 0 {
			acc.xorInto(table[u])
		}
	}
	return acc.truncate(words)
}

// modSquare returns a^2 mod f. Squaring interleaves zero bits, so each
// 32-bit half of a spreads into one 64-bit word of the square; the words are
// accumulated from the top with a fold after every word shift.
func modSquare(a longArray, m int, ks []int) longArray {
	words := wordsFor(m)
	acc := make(longArray, words+1)
	for i := len(a) - 1; i >= 0; i-- {
		for _, half := range [2]uint32{uint32(a[i] >> 32), uint32(a[i])} {
			copy(acc[1:], acc[:words])
			acc[0] = spread32(half)
			reduceInPlace(acc, m, ks)
		}
	}
	return acc.truncate(words)
}

// modInverse returns a^-1 mod f via the binary polynomial extended Euclidean
// algorithm.
func modInverse(a longArray, m int, ks []int) longArray {
	if a.isZero() {
		panic(ErrDivisionByZero)
	}
	words := wordsFor(m+1) + 1

	u := a.truncate(words)
	v := make(longArray, words)
	v.xorWordAt(1, m)
	v.xorWordAt(1, 0)
	for _, k := range ks {
		v.xorWordAt(1, k)
	}
	g1 := make(longArray, words)
	g1[0] = 1
	g2 := make(longArray, words)

	for !u.isOne() {
		if u.isZero() {
			// gcd(a, f) != 1: f is reducible and a is a zero divisor.
			panic(ErrDivisionByZero)
		}
		j := u.degree() - v.degree()
		if j < 0 {
			u, v = v, u
			g1, g2 = g2, g1
			j = -j
		}
		u.xorShifted(v, j)
		g1.xorShifted(g2, j)
	}
	reduceInPlace(g1, m, ks)
	return g1.truncate(wordsFor(m))
}

// reductionPoly returns f = x^m + sum(x^k) + 1.
func reductionPoly(m int, ks []int) longArray {
	f := make(longArray, wordsFor(m+1))
	f.xorWordAt(1, m)
	f.xorWordAt(1, 0)
	for _, k := range ks {
		f.xorWordAt(1, k)
	}
	return f
}

// isIrreducible runs Ben-Or's test: f of degree m is irreducible iff
// gcd(x^(2^i) - x, f) = 1 for every 1 <= i <= m/2.
func isIrreducible(m int, ks []int) bool {
	f := reductionPoly(m, ks)
	x := make(longArray, wordsFor(m))
	x[0] = 2
	h := x.clone()
	for i := 1; i <= m/2; i++ {
		h = modSquare(h, m, ks)
		d := h.clone()
		d.xorInto(x)
		if !polyCoprime(d, f) {
			return false
		}
	}
	return true
}

// polyCoprime reports whether gcd(a, b) = 1 over GF(2).
func polyCoprime(a, b longArray) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	u, v := a.truncate(n), b.truncate(n)
	for {
		if u.isZero() {
			return v.isOne()
		}
		if v.isZero() {
			return u.isOne()
		}
		du, dv := u.degree(), v.degree()
		if du < dv {
			u, v = v, u
			du, dv = dv, du
		}
		u.xorShifted(v, du-dv)
	}
}
