// Package ec implements elliptic curves over prime and binary fields, points
// in several coordinate systems, and a family of scalar multipliers.
//
// # Curves
//
// FpCurve models y^2 = x^3 + ax + b over a prime field and F2mCurve models
// y^2 + xy = x^3 + ax^2 + b over GF(2^m). Curves are immutable. Changing the
// coordinate system, endomorphism or default multiplier goes through
// Configure, which returns a new curve and leaves existing points valid:
//
//	jac, err := curve.Configure().
//	    SetCoordinateSystem(ec.Jacobian).
//	    Create()
//
// # Points
//
// Points are immutable and belong to exactly one curve. Each point owns a
// lazily created cache of precomputed data (odd-multiple tables, comb
// tables, validity results) keyed by name; see Curve.Precompute.
//
// # Multipliers
//
// Every Multiplier follows the same contract: k = 0 or the point at infinity
// yield infinity, negative k multiplies by |k| and negates, and the result
// is re-checked against the curve equation before being returned. A failed
// check returns ErrPostMultiplyCheck and never the point.
//
// Available algorithms: ReferenceMultiplier, DoubleAddMultiplier,
// MontgomeryLadderMultiplier, NafL2RMultiplier, NafR2LMultiplier,
// WNafL2RMultiplier, MixedNafR2LMultiplier, FixedPointCombMultiplier,
// GLVMultiplier and, for Koblitz curves, WTauNafMultiplier.
//
// # Errors
//
// Operations that take external input (point construction, decoding,
// configuration, multiplication) return errors wrapping the sentinels in
// errors.go. Combining points from different curves is a programming error
// and panics with an error wrapping ErrCurveMismatch.
package ec
