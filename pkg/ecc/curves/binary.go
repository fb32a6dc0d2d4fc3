package curves

import (
	"math/big"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec"
)

// binaryDef describes y^2 + xy = x^3 + ax^2 + b over GF(2^m) modulo
// x^m + sum(x^k for k in ks) + 1, using the SEC 2 hex constants.
type binaryDef struct {
	name   string
	m      int
	ks     []int
	a, b   string
	gx, gy string
	n      string
	h      int64
}

var (
	sect163k1 = binaryDef{
		name: "sect163k1", m: 163, ks: []int{3, 6, 7},
		a: "1", b: "1",
		gx: "02FE13C0537BBC11ACAA07D793DE4E6D5E5C94EEE8",
		gy: "0289070FB05D38FF58321F2E800536D538CCDAA3D9",
		n:  "04000000000000000000020108A2E0CC0D99F8A5EF",
		h:  2,
	}
	sect163r2 = binaryDef{
		name: "sect163r2", m: 163, ks: []int{3, 6, 7},
		a: "1", b: "020A601907B8C953CA1481EB10512F78744A3205FD",
		gx: "03F0EBA16286A2D57EA0991168D4994637E8343E36",
		gy: "00D51FBC6C71A0094FA2CDD545B11C5C0C797324F1",
		n:  "040000000000000000000292FE77E70C12A4234C33",
		h:  2,
	}
	sect233k1 = binaryDef{
		name: "sect233k1", m: 233, ks: []int{74},
		a: "0", b: "1",
		gx: "017232BA853A7E731AF129F22FF4149563A419C26BF50A4C9D6EEFAD6126",
		gy: "01DB537DECE819B7F70F555A67C427A8CD9BF18AEB9B56E0C11056FAE6A3",
		n:  "8000000000000000000000000000069D5BB915BCD46EFB1AD5F173ABDF",
		h:  4,
	}
	sect233r1 = binaryDef{
		name: "sect233r1", m: 233, ks: []int{74},
		a: "1", b: "0066647EDE6C332C7F8C0923BB58213B333B20E9CE4281FE115F7D8F90AD",
		gx: "00FAC9DFCBAC8313BB2139F1BB755FEF65BC391F8B36F8F8EB7371FD558B",
		gy: "01006A08A41903350678E58528BEBF8A0BEFF867A7CA36716F7E01F81052",
		n:  "01000000000000000000000000000013E974E72F8A6922031D2603CFE0D7",
		h:  2,
	}
	sect283k1 = binaryDef{
		name: "sect283k1", m: 283, ks: []int{5, 7, 12},
		a: "0", b: "1",
		gx: "0503213F78CA44883F1A3B8162F188E553CD265F23C1567A16876913B0C2AC2458492836",
		gy: "01CCDA380F1C9E318D90F95D07E5426FE87E45C0E8184698E45962364E34116177DD2259",
		n:  "01FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFE9AE2ED07577265DFF7F94451E061E163C61",
		h:  4,
	}
)

func binary(d binaryDef) func() (*Params, error) {
	return func() (*Params, error) {
		n, h := fromHex(d.n), big.NewInt(d.h)
		c, err := ec.NewF2mCurve(d.m, d.ks, fromHex(d.a), fromHex(d.b), n, h)
		if err != nil {
			return nil, err
		}
		return withGenerator(d.name, c, fromHex(d.gx), fromHex(d.gy), n, h)
	}
}
