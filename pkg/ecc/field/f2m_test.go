package field_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/field"
)

// clmulMod is a bit-at-a-time reference for polynomial multiplication.
func clmulMod(a, b *big.Int, m int, ks []int) *big.Int {
	poly := new(big.Int).SetBit(new(big.Int), m, 1)
	poly.SetBit(poly, 0, 1)
	for _, k := range ks {
		poly.SetBit(poly, k, 1)
	}
	prod := new(big.Int)
	for i := 0; i < b.BitLen(); i++ {
		if b.Bit(i) == 1 {
			prod.Xor(prod, new(big.Int).Lsh(a, uint(i)))
		}
	}
	for prod.BitLen() > m {
		shift := prod.BitLen() - 1 - m
		prod.Xor(prod, new(big.Int).Lsh(poly, uint(shift)))
	}
	return prod
}

func randomF2m(t *testing.T, f *field.BinaryField) field.Element {
	t.Helper()
	v, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), uint(f.M())))
	require.NoError(t, err)
	e, err := f.Element(v)
	require.NoError(t, err)
	return e
}

func TestF2mMultiplyMatchesReference(t *testing.T) {
	for _, tc := range []struct {
		m  int
		ks []int
	}{
		{4, []int{1}},
		{4, []int{3}},
		{5, []int{2}},
		{7, []int{3}},
		{163, []int{3, 6, 7}},
		{233, []int{74}},
		{283, []int{5, 7, 12}},
		{409, []int{87}},
		{571, []int{2, 5, 10}},
	} {
		f := field.MustBinaryField(tc.m, tc.ks...)
		for i := 0; i < 10; i++ {
			x, y := randomF2m(t, f), randomF2m(t, f)
			want := clmulMod(x.BigInt(), y.BigInt(), tc.m, tc.ks)
			require.Zero(t, want.Cmp(x.Multiply(y).BigInt()), "m=%d", tc.m)

			wantSq := clmulMod(x.BigInt(), x.BigInt(), tc.m, tc.ks)
			require.Zero(t, wantSq.Cmp(x.Square().BigInt()), "m=%d", tc.m)
		}
	}
}

func TestF2mMultiplyFullWidthOperands(t *testing.T) {
	for _, tc := range []struct {
		m  int
		ks []int
	}{
		{4, []int{3}},
		{64, []int{1, 3, 4}},
		{163, []int{3, 6, 7}},
		{571, []int{2, 5, 10}},
	} {
		f := field.MustBinaryField(tc.m, tc.ks...)
		ones := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(tc.m)), big.NewInt(1))
		top := new(big.Int).Lsh(big.NewInt(1), uint(tc.m-1))
		for _, v := range []*big.Int{ones, top} {
			x, err := f.Element(v)
			require.NoError(t, err)
			want := clmulMod(v, v, tc.m, tc.ks)
			require.Zero(t, want.Cmp(x.Multiply(x).BigInt()), "m=%d", tc.m)
			require.Zero(t, want.Cmp(x.Square().BigInt()), "m=%d", tc.m)
			require.Equal(t, x.Square().Square().BigInt(), x.SquarePow(2).BigInt())
		}
	}
}

func TestF2mAxioms(t *testing.T) {
	f := field.MustBinaryField(283, 5, 7, 12)
	for i := 0; i < 20; i++ {
		x, y, z := randomF2m(t, f), randomF2m(t, f), randomF2m(t, f)

		require.True(t, x.Add(y).Equal(y.Add(x)))
		require.True(t, x.Add(x).IsZero())
		require.True(t, x.Negate().Equal(x))
		require.True(t, x.Multiply(y).Multiply(z).Equal(x.Multiply(y.Multiply(z))))
		require.True(t, x.MultiplyPlusProduct(y, z, x).Equal(x.Multiply(y).Add(z.Multiply(x))))
		require.True(t, x.SquarePlusProduct(y, z).Equal(x.Square().Add(y.Multiply(z))))
		if !x.IsZero() {
			require.True(t, x.Multiply(x.Invert()).IsOne())
			require.True(t, y.Divide(x).Multiply(x).Equal(y))
		}
		root := x.Sqrt()
		require.NotNil(t, root)
		require.True(t, root.Square().Equal(x))
	}
}

func TestF2mExhaustiveSmallField(t *testing.T) {
	f := field.MustBinaryField(4, 1)
	for i := int64(1); i < 16; i++ {
		e, err := f.Element(big.NewInt(i))
		require.NoError(t, err)
		require.True(t, e.Multiply(e.Invert()).IsOne(), "x=%d", i)
		require.True(t, e.Sqrt().Square().Equal(e), "x=%d", i)
	}
}

func TestF2mTraceAndQuadratic(t *testing.T) {
	f := field.MustBinaryField(163, 3, 6, 7)
	for i := 0; i < 20; i++ {
		x := randomF2m(t, f).(*field.F2mElement)
		z := x.SolveQuadratic()
		if x.Trace() == 1 {
			require.Nil(t, z)
			continue
		}
		require.NotNil(t, z)
		require.True(t, z.Square().Add(z).Equal(x))
	}

	// Tr(x^2 + x) = 0 for every x.
	x := randomF2m(t, f)
	require.Equal(t, 0, x.Square().Add(x).(*field.F2mElement).Trace())
}

func TestF2mEvenDegreeQuadratic(t *testing.T) {
	f := field.MustBinaryField(8, 1, 3, 4)
	for i := int64(1); i < 256; i++ {
		e, err := f.Element(big.NewInt(i))
		require.NoError(t, err)
		x := e.(*field.F2mElement)
		z := x.SolveQuadratic()
		if x.Trace() == 1 {
			require.Nil(t, z)
			continue
		}
		require.NotNil(t, z, "x=%d", i)
		require.True(t, z.Square().Add(z).Equal(x), "x=%d", i)
	}
}

func TestF2mRangeChecks(t *testing.T) {
	f := field.MustBinaryField(163, 3, 6, 7)
	_, err := f.Element(new(big.Int).Lsh(big.NewInt(1), 163))
	require.ErrorIs(t, err, field.ErrValueOutOfRange)

	_, err = field.NewBinaryField(163, 3, 6)
	require.ErrorIs(t, err, field.ErrInvalidModulus)

	_, err = field.NewBinaryField(163, 200)
	require.ErrorIs(t, err, field.ErrInvalidModulus)
}

func TestF2mRejectsReduciblePolynomials(t *testing.T) {
	for _, tc := range []struct {
		m  int
		ks []int
	}{
		{4, []int{2}}, // (x^2 + x + 1)^2
		{5, []int{1}}, // (x^2 + x + 1)(x^3 + x^2 + 1)
		{6, []int{2}}, // (x^3 + x + 1)^2
		{8, []int{2}}, // (x^4 + x + 1)^2
	} {
		_, err := field.NewBinaryField(tc.m, tc.ks...)
		require.ErrorIs(t, err, field.ErrInvalidModulus, "m=%d ks=%v", tc.m, tc.ks)
	}

	for _, tc := range []struct {
		m  int
		ks []int
	}{
		{2, []int{1}},
		{4, []int{1}},
		{113, []int{9}},
		{131, []int{2, 3, 8}},
		{233, []int{74}},
	} {
		_, err := field.NewBinaryField(tc.m, tc.ks...)
		require.NoError(t, err, "m=%d ks=%v", tc.m, tc.ks)
	}
}
