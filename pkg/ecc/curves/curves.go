// Package curves is a registry of standard named curves.
//
// Curves are built on first use and shared afterwards; callers that want a
// different coordinate system or multiplier derive a new curve with
// Curve.Configure.
package curves

import (
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec"
)

// ErrUnknownCurve is returned by ByName for unregistered names.
var ErrUnknownCurve = errors.New("curves: unknown curve")

// Params bundles a curve with its base point and group parameters.
type Params struct {
	Name  string
	Curve ec.Curve
	G     *ec.Point
	N     *big.Int
	H     *big.Int
}

type entry struct {
	once   sync.Once
	build  func() (*Params, error)
	params *Params
	err    error
}

func (e *entry) get() (*Params, error) {
	e.once.Do(func() { e.params, e.err = e.build() })
	return e.params, e.err
}

var registry = map[string]*entry{
	"P-256":     {build: func() (*Params, error) { return fromElliptic("P-256", elliptic.P256().Params()) }},
	"P-384":     {build: func() (*Params, error) { return fromElliptic("P-384", elliptic.P384().Params()) }},
	"secp256k1": {build: buildSecp256k1},
	"sect163k1": {build: binary(sect163k1)},
	"sect163r2": {build: binary(sect163r2)},
	"sect233k1": {build: binary(sect233k1)},
	"sect233r1": {build: binary(sect233r1)},
	"sect283k1": {build: binary(sect283k1)},
}

var aliases = map[string]string{
	"secp256r1":  "P-256",
	"prime256v1": "P-256",
	"secp384r1":  "P-384",
	"K-163":      "sect163k1",
	"B-163":      "sect163r2",
	"K-233":      "sect233k1",
	"B-233":      "sect233r1",
	"K-283":      "sect283k1",
}

// ByName returns the named curve. Both SEC 2 and NIST names are accepted.
func ByName(name string) (*Params, error) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	return e.get()
}

// Names lists the canonical names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func mustGet(name string) *Params {
	p, err := ByName(name)
	if err != nil {
		panic(err)
	}
	return p
}

func P256() *Params      { return mustGet("P-256") }
func P384() *Params      { return mustGet("P-384") }
func Secp256k1() *Params { return mustGet("secp256k1") }
func Sect163k1() *Params { return mustGet("sect163k1") }
func Sect163r2() *Params { return mustGet("sect163r2") }
func Sect233k1() *Params { return mustGet("sect233k1") }
func Sect233r1() *Params { return mustGet("sect233r1") }
func Sect283k1() *Params { return mustGet("sect283k1") }

// fromElliptic lifts a NIST prime curve (a = -3) from the standard library.
func fromElliptic(name string, cp *elliptic.CurveParams) (*Params, error) {
	a := new(big.Int).Sub(cp.P, big.NewInt(3))
	c, err := ec.NewFpCurve(cp.P, a, cp.B, cp.N, big.NewInt(1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return withGenerator(name, c, cp.Gx, cp.Gy, cp.N, big.NewInt(1))
}

func withGenerator(name string, c ec.Curve, gx, gy, n, h *big.Int) (*Params, error) {
	g, err := c.ValidatePoint(gx, gy)
	if err != nil {
		return nil, fmt.Errorf("%s generator: %w", name, err)
	}
	return &Params{Name: name, Curve: c, G: g, N: new(big.Int).Set(n), H: new(big.Int).Set(h)}, nil
}

func fromHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curves: bad hex constant " + s)
	}
	return v
}
