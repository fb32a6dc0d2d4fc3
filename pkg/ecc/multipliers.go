package ecc

import (
	"fmt"
	"sort"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec"
)

type multiplierFactory func(c ec.Curve) (ec.Multiplier, error)

var multiplierFactories = map[string]multiplierFactory{
	"reference":  fixed(ec.ReferenceMultiplier{}),
	"double-add": fixed(ec.DoubleAddMultiplier{}),
	"montgomery": fixed(ec.MontgomeryLadderMultiplier{}),
	"naf-l2r":    fixed(ec.NafL2RMultiplier{}),
	"naf-r2l":    fixed(ec.NafR2LMultiplier{}),
	"wnaf":       func(ec.Curve) (ec.Multiplier, error) { return ec.NewWNafL2RMultiplier(), nil },
	"comb":       fixed(ec.FixedPointCombMultiplier{}),
	"mixed":      newMixed,
	"glv":        newGLV,
	"wtnaf":      func(ec.Curve) (ec.Multiplier, error) { return ec.NewWTauNafMultiplier(), nil },
}

func fixed(m ec.Multiplier) multiplierFactory {
	return func(ec.Curve) (ec.Multiplier, error) { return m, nil }
}

func newMixed(c ec.Curve) (ec.Multiplier, error) {
	if _, ok := c.(*ec.F2mCurve); ok {
		return ec.NewMixedNafR2LMultiplierCoords(ec.LambdaAffine, ec.LambdaProjective), nil
	}
	return ec.NewMixedNafR2LMultiplier(), nil
}

func newGLV(c ec.Curve) (ec.Multiplier, error) {
	glv, ok := c.Endomorphism().(ec.GLVEndomorphism)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no GLV endomorphism", ErrUnsupportedMultiplier, c)
	}
	return ec.NewGLVMultiplier(glv), nil
}

// MultiplierNames lists the names accepted by Config.Multiplier.
func MultiplierNames() []string {
	out := make([]string, 0, len(multiplierFactories))
	for name := range multiplierFactories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func newMultiplier(name string, c ec.Curve) (ec.Multiplier, error) {
	f, ok := multiplierFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMultiplier, name)
	}
	return f(c)
}
