package ec

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

type koblitzCase struct {
	name   string
	m      int
	ks     []int
	a      int64
	h      int64
	n      string
	gx, gy string
}

var koblitzCases = []koblitzCase{
	{
		name: "sect163k1", m: 163, ks: []int{3, 6, 7}, a: 1, h: 2,
		n:  "04000000000000000000020108A2E0CC0D99F8A5EF",
		gx: "02FE13C0537BBC11ACAA07D793DE4E6D5E5C94EEE8",
		gy: "0289070FB05D38FF58321F2E800536D538CCDAA3D9",
	},
	{
		name: "sect233k1", m: 233, ks: []int{74}, a: 0, h: 4,
		n:  "8000000000000000000000000000069D5BB915BCD46EFB1AD5F173ABDF",
		gx: "017232BA853A7E731AF129F22FF4149563A419C26BF50A4C9D6EEFAD6126",
		gy: "01DB537DECE819B7F70F555A67C427A8CD9BF18AEB9B56E0C11056FAE6A3",
	},
	{
		name: "sect283k1", m: 283, ks: []int{5, 7, 12}, a: 0, h: 4,
		n:  "01FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFE9AE2ED07577265DFF7F94451E061E163C61",
		gx: "0503213F78CA44883F1A3B8162F188E553CD265F23C1567A16876913B0C2AC2458492836",
		gy: "01CCDA380F1C9E318D90F95D07E5426FE87E45C0E8184698E45962364E34116177DD2259",
	},
}

func hexInt(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 16)
	require.True(t, ok)
	return v
}

func (kc koblitzCase) curve(t *testing.T) (*F2mCurve, *Point) {
	t.Helper()
	c, err := NewF2mCurve(kc.m, kc.ks, big.NewInt(kc.a), big.NewInt(1), hexInt(t, kc.n), big.NewInt(kc.h))
	require.NoError(t, err)
	g, err := c.ValidatePoint(hexInt(t, kc.gx), hexInt(t, kc.gy))
	require.NoError(t, err)
	return c, g
}

func TestKoblitzDeltaNormIsOrder(t *testing.T) {
	for _, kc := range koblitzCases {
		t.Run(kc.name, func(t *testing.T) {
			c, _ := kc.curve(t)
			require.True(t, c.IsKoblitz())
			kp, err := c.koblitz()
			require.NoError(t, err)

			wantMu := -1
			if kc.a == 1 {
				wantMu = 1
			}
			require.Equal(t, wantMu, kp.mu)

			d0 := new(big.Int).Set(kp.s0)
			if kp.mu == 1 {
				d0.Add(d0, kp.s1)
			} else {
				d0.Sub(d0, kp.s1)
			}
			delta := ZTauElement{U: d0, V: new(big.Int).Neg(kp.s1)}
			require.Equal(t, 0, Norm(kp.mu, delta).Cmp(c.Order()))

			// n = (2^m + 1 - V_m) / h
			count := new(big.Int).Lsh(bigOne, uint(kc.m))
			count.Add(count, bigOne).Sub(count, kp.vm)
			require.Equal(t, 0, count.Cmp(new(big.Int).Mul(c.Order(), c.Cofactor())))
		})
	}
}

func TestTw(t *testing.T) {
	require.Equal(t, int64(6), Tw(1, 4).Int64())
	require.Equal(t, int64(10), Tw(-1, 4).Int64())
}

func TestLucasPanicsOnNonPositiveIndex(t *testing.T) {
	require.Panics(t, func() { Lucas(1, 0, false) })
	require.Panics(t, func() { Lucas(2, 3, false) })
}

func divisibleByTauPow(mu int, z ZTauElement, w int) bool {
	for i := 0; i < w; i++ {
		if z.U.Bit(0) != 0 {
			return false
		}
		z = DivTau(mu, z)
	}
	return true
}

func TestAlphaCongruences(t *testing.T) {
	for _, mu := range []int{-1, 1} {
		alpha := Alpha(mu)
		for u := 1; u < len(alpha); u += 2 {
			diff := ZTauElement{U: new(big.Int).Sub(alpha[u].U, big.NewInt(int64(u))), V: alpha[u].V}
			require.True(t, divisibleByTauPow(mu, diff, TnafWidth), "mu=%d u=%d", mu, u)
		}
	}
}

func TestMulDivTauRoundTrip(t *testing.T) {
	for _, mu := range []int{-1, 1} {
		z := NewZTau(big.NewInt(-17), big.NewInt(23))
		back := DivTau(mu, MulTau(mu, z))
		require.Equal(t, 0, back.U.Cmp(z.U))
		require.Equal(t, 0, back.V.Cmp(z.V))
		// N(τz) = 2N(z)
		require.Equal(t, 0, Norm(mu, MulTau(mu, z)).Cmp(new(big.Int).Lsh(Norm(mu, z), 1)))
	}
}

func TestTauAdicExpansions(t *testing.T) {
	for _, kc := range koblitzCases {
		t.Run(kc.name, func(t *testing.T) {
			c, g := kc.curve(t)
			kp, err := c.koblitz()
			require.NoError(t, err)
			for i := 0; i < 4; i++ {
				k, err := rand.Int(rand.Reader, c.Order())
				require.NoError(t, err)
				want := referenceMultiply(g, k)

				rho := PartModReduction(k, kp.m, kp.a, kp.s0, kp.s1, kp.vm, kp.mu, approximationPrecision)
				// The reduced element is no larger than the order.
				require.LessOrEqual(t, Norm(kp.mu, rho).BitLen(), c.Order().BitLen()+2)

				naf := TauAdicNaf(kp.mu, rho)
				for j := 1; j < len(naf); j++ {
					require.False(t, naf[j] != 0 && naf[j-1] != 0, "adjacent non-zero digits at %d", j)
				}
				require.True(t, want.Equal(MultiplyFromTnaf(g, naf)))

				wnaf := TauAdicWNaf(kp.mu, rho, TnafWidth, kp.tw, Alpha(kp.mu))
				for _, d := range wnaf {
					if d != 0 {
						require.Equal(t, int8(1), d&1)
						require.Less(t, int(d), 8)
						require.Greater(t, int(d), -8)
					}
				}
				require.True(t, want.Equal(multiplyFromWTnaf(g, wnaf, kp.mu)))
			}
		})
	}
}

func TestNotKoblitz(t *testing.T) {
	b := hexInt(t, "020A601907B8C953CA1481EB10512F78744A3205FD")
	c, err := NewF2mCurve(163, []int{3, 6, 7}, big.NewInt(1), b, hexInt(t, "040000000000000000000292FE77E70C12A4234C33"), big.NewInt(2))
	require.NoError(t, err)
	require.False(t, c.IsKoblitz())
	_, err = c.koblitz()
	require.ErrorIs(t, err, ErrNotKoblitz)
	_, err = c.Mu()
	require.ErrorIs(t, err, ErrNotKoblitz)

	g, err := c.ValidatePoint(
		hexInt(t, "03F0EBA16286A2D57EA0991168D4994637E8343E36"),
		hexInt(t, "00D51FBC6C71A0094FA2CDD545B11C5C0C797324F1"))
	require.NoError(t, err)
	_, err = MultiplyRTnaf(g, big.NewInt(5))
	require.ErrorIs(t, err, ErrNotKoblitz)
}

func TestSimpleBigDecimal(t *testing.T) {
	x := NewSimpleBigDecimal(big.NewInt(13), 2) // 3.25
	require.Equal(t, int64(3), x.Floor().Int64())
	require.Equal(t, int64(3), x.Round().Int64())
	require.Equal(t, "3.25", x.String())

	y := NewSimpleBigDecimal(big.NewInt(-10), 2) // -2.5
	require.Equal(t, int64(-3), y.Floor().Int64())
	require.Equal(t, int64(-2), y.Round().Int64())
	require.Equal(t, 1, x.Cmp(y))
	require.Equal(t, 0, x.Add(y).Cmp(NewSimpleBigDecimal(big.NewInt(3), 2)))
	require.Equal(t, 0, x.Subtract(y).Cmp(NewSimpleBigDecimal(big.NewInt(23), 2)))
	require.Equal(t, -1, x.SubtractInt(big.NewInt(4)).CmpInt(big.NewInt(0)))
	require.Equal(t, 0, DecimalFromInt(big.NewInt(5), 3).CmpInt(big.NewInt(5)))
	require.Equal(t, 0, y.Negate().Cmp(NewSimpleBigDecimal(big.NewInt(10), 2)))

	require.Panics(t, func() { x.Add(DecimalFromInt(big.NewInt(1), 3)) })
	require.Panics(t, func() { NewSimpleBigDecimal(big.NewInt(1), -1) })
}

func TestValidityRecordReusedOnceSettled(t *testing.T) {
	_, g := koblitzCases[0].curve(t)
	require.True(t, g.IsValid())
	first := g.getPreComp(PreCompValidity)
	require.NotNil(t, first)

	require.True(t, g.IsValid())
	require.True(t, g.IsValidPartial())
	require.Same(t, first, g.getPreComp(PreCompValidity))
}
