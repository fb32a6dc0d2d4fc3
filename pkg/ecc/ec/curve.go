package ec

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/field"
)

// Curve is an elliptic curve over a finite field together with its active
// coordinate system, optional endomorphism and default multiplier.
//
// Curves are immutable. Use Configure to derive a curve with different
// settings.
type Curve interface {
	Field() field.Field
	// FieldSize is the bit length of field elements.
	FieldSize() int
	A() field.Element
	B() field.Element
	// Order is the prime subgroup order, or nil when unknown.
	Order() *big.Int
	// Cofactor is #E / Order, or nil when unknown.
	Cofactor() *big.Int
	CoordinateSystem() CoordinateSystem
	SupportsCoordinateSystem(cs CoordinateSystem) bool
	Endomorphism() Endomorphism

	// Configure returns a builder seeded with this curve's settings.
	Configure() *Config

	// FromBigInt returns x as a range-checked field element.
	FromBigInt(x *big.Int) (field.Element, error)
	// IsValidFieldElement reports whether x is a canonical field value.
	IsValidFieldElement(x *big.Int) bool

	// Infinity returns the point at infinity.
	Infinity() *Point
	// CreatePoint builds a point from affine coordinates without checking
	// the curve equation.
	CreatePoint(x, y *big.Int) (*Point, error)
	// ValidatePoint is CreatePoint followed by a full validity check.
	ValidatePoint(x, y *big.Int) (*Point, error)
	// ImportPoint re-expresses p, which may belong to a differently
	// configured curve over the same field, on this curve.
	ImportPoint(p *Point) (*Point, error)
	// DecodePoint parses an encoded point and validates it.
	DecodePoint(encoded []byte) (*Point, error)

	// NormalizeAll replaces every point in ps by its affine form, using a
	// single field inversion for the whole slice.
	NormalizeAll(ps []*Point)

	// Multiplier returns the curve's default multiplier.
	Multiplier() Multiplier

	// Precompute runs cb against the named precomputation cached on p and
	// stores the result.
	Precompute(p *Point, name string, cb PreCompCallback) PreCompInfo

	// CreateCacheSafeLookupTable packs normalized copies of ps[off:off+n]
	// into a table whose lookups touch every entry.
	CreateCacheSafeLookupTable(ps []*Point, off, n int) (LookupTable, error)

	// Equal reports whether both curves share field, coefficients and
	// coordinate system.
	Equal(other Curve) bool

	String() string

	base() *curveBase
	arithmetic
}

// arithmetic is the per-family point arithmetic. All methods receive points
// that already belong to this curve and are not infinity unless stated.
type arithmetic interface {
	fromAffine(x, y field.Element) *Point
	add(p, q *Point) *Point
	twice(p *Point) *Point
	negate(p *Point) *Point
	normalizeWith(p *Point, zInv field.Element) *Point
	affineY(p *Point) field.Element
	satisfiesEquation(x, y field.Element) bool
	satisfiesOrder(p *Point) bool
	decompress(x field.Element, yTilde bool) (*Point, error)
	yTilde(p *Point) bool
	defaultMultiplier() Multiplier
	clone(coord CoordinateSystem, endo Endomorphism, mult Multiplier) Curve
	lookupElement(b []byte) field.Element
}

// curveBase holds the state and behavior shared by prime and binary curves.
type curveBase struct {
	self     Curve
	f        field.Field
	a, b     field.Element
	order    *big.Int
	cofactor *big.Int
	coord    CoordinateSystem
	endo     Endomorphism
	infinity *Point

	multOnce   sync.Once
	multiplier Multiplier
}

func (c *curveBase) init(self Curve) {
	c.self = self
	c.infinity = &Point{curve: self}
}

func (c *curveBase) base() *curveBase                   { return c }
func (c *curveBase) Field() field.Field                 { return c.f }
func (c *curveBase) FieldSize() int                     { return c.f.Size() }
func (c *curveBase) A() field.Element                   { return c.a }
func (c *curveBase) B() field.Element                   { return c.b }
func (c *curveBase) CoordinateSystem() CoordinateSystem { return c.coord }
func (c *curveBase) Endomorphism() Endomorphism         { return c.endo }
func (c *curveBase) Infinity() *Point                   { return c.infinity }

func (c *curveBase) Order() *big.Int {
	if c.order == nil {
		return nil
	}
	return new(big.Int).Set(c.order)
}

func (c *curveBase) Cofactor() *big.Int {
	if c.cofactor == nil {
		return nil
	}
	return new(big.Int).Set(c.cofactor)
}

func (c *curveBase) Configure() *Config {
	return &Config{curve: c.self, coord: c.coord, endo: c.endo, mult: c.multiplier}
}

func (c *curveBase) FromBigInt(x *big.Int) (field.Element, error) {
	return c.f.Element(x)
}

func (c *curveBase) IsValidFieldElement(x *big.Int) bool {
	_, err := c.f.Element(x)
	return err == nil
}

func (c *curveBase) CreatePoint(x, y *big.Int) (*Point, error) {
	fx, err := c.f.Element(x)
	if err != nil {
		return nil, fmt.Errorf("%w: x: %v", ErrInvalidPoint, err)
	}
	fy, err := c.f.Element(y)
	if err != nil {
		return nil, fmt.Errorf("%w: y: %v", ErrInvalidPoint, err)
	}
	return c.self.fromAffine(fx, fy), nil
}

func (c *curveBase) ValidatePoint(x, y *big.Int) (*Point, error) {
	p, err := c.CreatePoint(x, y)
	if err != nil {
		return nil, err
	}
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: (%s, %s)", ErrInvalidPoint, x.Text(16), y.Text(16))
	}
	return p, nil
}

func (c *curveBase) ImportPoint(p *Point) (*Point, error) {
	if p.curve.Equal(c.self) {
		return p, nil
	}
	if !p.curve.Field().Equal(c.f) {
		return nil, ErrFieldMismatch
	}
	if !p.curve.A().Equal(c.a) || !p.curve.B().Equal(c.b) {
		return nil, fmt.Errorf("%w: %s vs %s", ErrCurveMismatch, p.curve, c.self)
	}
	if p.IsInfinity() {
		return c.infinity, nil
	}
	n := p.Normalize()
	return c.self.fromAffine(n.x, n.curve.affineY(n)), nil
}

func (c *curveBase) Multiplier() Multiplier {
	c.multOnce.Do(func() {
		if c.multiplier == nil {
			c.multiplier = c.self.defaultMultiplier()
		}
	})
	return c.multiplier
}

func (c *curveBase) Equal(other Curve) bool {
	if other == nil {
		return false
	}
	if other == c.self {
		return true
	}
	o := other.base()
	return c.coord == o.coord && c.f.Equal(o.f) && c.a.Equal(o.a) && c.b.Equal(o.b)
}

func (c *curveBase) checkSameCurve(p *Point) {
	if p.curve != c.self && !p.curve.Equal(c.self) {
		panic(fmt.Errorf("%w: %s vs %s", ErrCurveMismatch, p.curve, c.self))
	}
}

// Config is a builder that derives a new curve from an existing one.
type Config struct {
	curve Curve
	coord CoordinateSystem
	endo  Endomorphism
	mult  Multiplier
}

// SetCoordinateSystem selects the coordinate system of the new curve.
func (c *Config) SetCoordinateSystem(cs CoordinateSystem) *Config {
	c.coord = cs
	return c
}

// SetEndomorphism attaches an efficiently computable endomorphism.
func (c *Config) SetEndomorphism(e Endomorphism) *Config {
	c.endo = e
	return c
}

// SetMultiplier overrides the default multiplier.
func (c *Config) SetMultiplier(m Multiplier) *Config {
	c.mult = m
	return c
}

// curveChecker is implemented by multipliers that only serve some curves.
type curveChecker interface {
	checkCurve(c Curve) error
}

// Create builds the configured curve. Points of the source curve stay valid
// and can be moved across with ImportPoint.
func (c *Config) Create() (Curve, error) {
	if !c.curve.SupportsCoordinateSystem(c.coord) {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedCoordinateSystem, c.coord, c.curve)
	}
	nc := c.curve.clone(c.coord, c.endo, c.mult)
	if chk, ok := c.mult.(curveChecker); ok {
		if err := chk.checkCurve(nc); err != nil {
			return nil, err
		}
	}
	return nc, nil
}
