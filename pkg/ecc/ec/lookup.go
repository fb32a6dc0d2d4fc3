package ec

import (
	"crypto/subtle"
	"fmt"
)

// LookupTable is an indexed table of points.
type LookupTable interface {
	// Size is the number of entries.
	Size() int
	// Lookup returns entry i. Its memory access pattern does not depend on i.
	// It panics if i is outside [0, Size()).
	Lookup(i int) *Point
	// LookupVar returns entry i by direct indexing. Only use it with public
	// indices.
	LookupVar(i int) *Point
}

// cacheSafeTable stores normalized affine coordinates as fixed-width byte
// strings: entry i occupies table[2*i*width : 2*(i+1)*width], x first.
type cacheSafeTable struct {
	curve Curve
	n     int
	width int
	table []byte
}

func (c *curveBase) CreateCacheSafeLookupTable(ps []*Point, off, n int) (LookupTable, error) {
	if off < 0 || n <= 0 || off+n > len(ps) {
		return nil, fmt.Errorf("ec: lookup table range [%d, %d) outside %d points", off, off+n, len(ps))
	}
	pts := append([]*Point(nil), ps[off:off+n]...)
	for _, p := range pts {
		if p.IsInfinity() {
			return nil, fmt.Errorf("%w: lookup table cannot hold infinity", ErrInvalidPoint)
		}
	}
	c.NormalizeAll(pts)

	width := (c.f.Size() + 7) / 8
	t := &cacheSafeTable{curve: c.self, n: n, width: width, table: make([]byte, 0, 2*n*width)}
	for _, p := range pts {
		t.table = append(t.table, p.x.Bytes()...)
		t.table = append(t.table, c.self.affineY(p).Bytes()...)
	}
	return t, nil
}

func (t *cacheSafeTable) Size() int { return t.n }

// checkIndex panics if index is outside the table. The table size is public.
func (t *cacheSafeTable) checkIndex(index int) {
	if index < 0 || index >= t.n {
		panic(fmt.Sprintf("ec: lookup index %d outside table of %d", index, t.n))
	}
}

func (t *cacheSafeTable) Lookup(index int) *Point {
	t.checkIndex(index)
	w := t.width
	x := make([]byte, w)
	y := make([]byte, w)
	pos := 0
	for i := 0; i < t.n; i++ {
		mask := byte(-subtle.ConstantTimeEq(int32(i), int32(index)))
		for j := 0; j < w; j++ {
			x[j] ^= t.table[pos+j] & mask
			y[j] ^= t.table[pos+w+j] & mask
		}
		pos += 2 * w
	}
	return t.point(x, y)
}

func (t *cacheSafeTable) LookupVar(index int) *Point {
	pos := 2 * index * t.width
	return t.point(t.table[pos:pos+t.width], t.table[pos+t.width:pos+2*t.width])
}

func (t *cacheSafeTable) point(x, y []byte) *Point {
	return t.curve.fromAffine(t.curve.lookupElement(x), t.curve.lookupElement(y))
}

// simpleTable indexes a slice of points directly.
type simpleTable struct {
	points []*Point
}

// NewSimpleLookupTable wraps ps without copying. Lookup is not constant time.
func NewSimpleLookupTable(ps []*Point) LookupTable {
	return &simpleTable{points: ps}
}

func (t *simpleTable) Size() int              { return len(t.points) }
func (t *simpleTable) Lookup(i int) *Point    { return t.points[i] }
func (t *simpleTable) LookupVar(i int) *Point { return t.points[i] }
