package curves

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec"
)

// secp256k1GLV holds the endomorphism (x, y) -> (βx, y) = λ(x, y) and a
// reduced basis of the lattice {(a, b) : a + bλ ≡ 0 mod n}.
var secp256k1GLV = ec.GLVTypeBParameters{
	Beta:   fromHex("7ae96a2b657c07106e64479eac3434e99cf0497512f58995c1396c28719501ee"),
	Lambda: fromHex("5363ad4cc05c30e0a5261c028812645a122e22ea20816678df02967c1b23bd72"),
	V1: [2]*big.Int{
		fromHex("3086d221a7d46bcde86c90e49284eb15"),
		new(big.Int).Neg(fromHex("e4437ed6010e88286f547fa90abfe4c3")),
	},
	V2: [2]*big.Int{
		fromHex("114ca50f7a8e2f3f657c1108d9d44cfd8"),
		fromHex("3086d221a7d46bcde86c90e49284eb15"),
	},
	G1:   fromHex("3086d221a7d46bcde86c90e49284eb153dab"),
	G2:   fromHex("e4437ed6010e88286f547fa90abfe4c42212"),
	Bits: 272,
}

// Secp256k1GLVParameters returns a copy of the GLV constants.
func Secp256k1GLVParameters() ec.GLVTypeBParameters { return secp256k1GLV }

func buildSecp256k1() (*Params, error) {
	cp := secp256k1.S256().Params()
	one := big.NewInt(1)
	base, err := ec.NewFpCurve(cp.P, new(big.Int), cp.B, cp.N, one)
	if err != nil {
		return nil, err
	}
	endo, err := ec.NewGLVTypeBEndomorphism(base, secp256k1GLV)
	if err != nil {
		return nil, err
	}
	c, err := base.Configure().SetEndomorphism(endo).Create()
	if err != nil {
		return nil, err
	}
	return withGenerator("secp256k1", c, cp.Gx, cp.Gy, cp.N, one)
}
