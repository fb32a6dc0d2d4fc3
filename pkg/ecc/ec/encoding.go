package ec

import (
	"fmt"
	"math/big"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/field"
)

// Point encoding tags.
const (
	tagInfinity     = 0x00
	tagCompressed   = 0x02
	tagUncompressed = 0x04
	tagHybrid       = 0x06
)

// Encoded returns the SEC 1 encoding of p: a single 0x00 byte for infinity,
// 0x02|ỹ || X when compressed and 0x04 || X || Y otherwise.
func (p *Point) Encoded(compressed bool) []byte {
	if p.IsInfinity() {
		return []byte{tagInfinity}
	}
	n := p.Normalize()
	x := n.x.Bytes()
	if compressed {
		out := make([]byte, 0, 1+len(x))
		tag := byte(tagCompressed)
		if p.curve.yTilde(n) {
			tag |= 1
		}
		return append(append(out, tag), x...)
	}
	y := p.curve.affineY(n).Bytes()
	out := make([]byte, 0, 1+len(x)+len(y))
	out = append(out, tagUncompressed)
	out = append(out, x...)
	return append(out, y...)
}

// EncodedHybrid returns 0x06|ỹ || X || Y.
func (p *Point) EncodedHybrid() []byte {
	if p.IsInfinity() {
		return []byte{tagInfinity}
	}
	out := p.Encoded(false)
	out[0] = tagHybrid
	if p.curve.yTilde(p.Normalize()) {
		out[0] |= 1
	}
	return out
}

// DecodePoint accepts all four SEC 1 forms. Decoded points must pass the
// full validity check, including subgroup membership.
func (c *curveBase) DecodePoint(encoded []byte) (*Point, error) {
	if len(encoded) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidEncoding)
	}
	flen := (c.f.Size() + 7) / 8
	tag := encoded[0]

	var (
		p   *Point
		err error
	)
	switch tag {
	case tagInfinity:
		if len(encoded) != 1 {
			return nil, fmt.Errorf("%w: infinity must be a single byte", ErrInvalidEncoding)
		}
		return c.infinity, nil

	case tagCompressed, tagCompressed | 1:
		if len(encoded) != 1+flen {
			return nil, fmt.Errorf("%w: compressed length %d, want %d", ErrInvalidEncoding, len(encoded), 1+flen)
		}
		x, xerr := c.coordinate(encoded[1:])
		if xerr != nil {
			return nil, xerr
		}
		p, err = c.self.decompress(x, tag&1 == 1)
		if err != nil {
			return nil, err
		}
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: decompressed point fails validation", ErrInvalidPoint)
		}

	case tagUncompressed, tagHybrid, tagHybrid | 1:
		if len(encoded) != 1+2*flen {
			return nil, fmt.Errorf("%w: uncompressed length %d, want %d", ErrInvalidEncoding, len(encoded), 1+2*flen)
		}
		x, xerr := c.coordinate(encoded[1 : 1+flen])
		if xerr != nil {
			return nil, xerr
		}
		y, yerr := c.coordinate(encoded[1+flen:])
		if yerr != nil {
			return nil, yerr
		}
		p = c.self.fromAffine(x, y)
		if tag != tagUncompressed && c.self.yTilde(p) != (tag&1 == 1) {
			return nil, fmt.Errorf("%w: inconsistent y parity in hybrid encoding", ErrInvalidEncoding)
		}
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: decoded point fails validation", ErrInvalidPoint)
		}

	default:
		return nil, fmt.Errorf("%w: unknown tag 0x%02x", ErrInvalidEncoding, tag)
	}
	return p, nil
}

func (c *curveBase) coordinate(b []byte) (field.Element, error) {
	v, err := c.f.Element(new(big.Int).SetBytes(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return v, nil
}
