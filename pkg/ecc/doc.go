// Package ecc is the entry point to the elliptic-curve arithmetic engine.
//
// An Engine binds a named curve to a coordinate system and a scalar
// multiplier:
//
//	eng, err := ecc.Open(ecc.Config{Curve: "sect233k1", Multiplier: "wtnaf"})
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	p, err := eng.MultiplyBase(ctx, k)
//	enc := p.Encoded(true)
//
// The arithmetic itself lives in the subpackages: field for prime and binary
// field elements, ec for curves, points and multipliers, and curves for the
// registry of standard curves.
//
// # Errors
//
// Failures are reported with sentinel errors wrapped by fmt.Errorf; test
// them with errors.Is. The sentinels of the subpackages are re-exported here.
//
// # Secrets
//
// Scalars passed to an Engine are reduced on a private copy that is wiped
// after use. Callers own their inputs and can clear them with ZeroizeInt and
// ZeroizeBytes.
package ecc
