package ec_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec"
)

func TestCacheSafeLookupTable(t *testing.T) {
	for _, name := range []string{"P-256", "sect163k1"} {
		t.Run(name, func(t *testing.T) {
			params := mustCurve(t, name)
			ps := make([]*ec.Point, 12)
			acc := params.G
			for i := range ps {
				ps[i] = acc
				acc = acc.Add(params.G)
			}

			table, err := params.Curve.CreateCacheSafeLookupTable(ps, 2, 8)
			require.NoError(t, err)
			require.Equal(t, 8, table.Size())
			for i := 0; i < table.Size(); i++ {
				requireSamePoint(t, ps[2+i], table.Lookup(i))
				requireSamePoint(t, ps[2+i], table.LookupVar(i))
			}
			// The source points are not normalized in place.
			require.False(t, ps[5].IsNormalized())
		})
	}
}

func TestCacheSafeLookupTableErrors(t *testing.T) {
	params := mustCurve(t, "P-256")
	ps := []*ec.Point{params.G, params.G.Twice()}

	_, err := params.Curve.CreateCacheSafeLookupTable(ps, 1, 2)
	require.Error(t, err)
	_, err = params.Curve.CreateCacheSafeLookupTable(ps, 0, 0)
	require.Error(t, err)
	_, err = params.Curve.CreateCacheSafeLookupTable([]*ec.Point{params.Curve.Infinity()}, 0, 1)
	require.ErrorIs(t, err, ec.ErrInvalidPoint)
}

func TestSimpleLookupTable(t *testing.T) {
	params := mustCurve(t, "P-256")
	ps := []*ec.Point{params.G, params.G.Twice(), params.Curve.Infinity()}
	table := ec.NewSimpleLookupTable(ps)
	require.Equal(t, 3, table.Size())
	require.Same(t, ps[1], table.Lookup(1))
	require.True(t, table.LookupVar(2).IsInfinity())
}

func TestWindowSize(t *testing.T) {
	for _, tc := range []struct{ bits, max, want int }{
		{1, 16, 2},
		{12, 16, 2},
		{13, 16, 3},
		{256, 16, 5},
		{337, 16, 6},
		{5000, 16, 8},
		{256, 4, 4},
		{256, 1, 2},
	} {
		require.Equal(t, tc.want, ec.WindowSize(tc.bits, tc.max), "bits=%d max=%d", tc.bits, tc.max)
	}
}

func evalSigned(digits []int32) *big.Int {
	v := new(big.Int)
	for i := len(digits) - 1; i >= 0; i-- {
		v.Lsh(v, 1)
		v.Add(v, big.NewInt(int64(digits[i])))
	}
	return v
}

func TestWindowNaf(t *testing.T) {
	n := mustCurve(t, "P-256").N
	for _, width := range []int{2, 3, 4, 5, 8} {
		for i := 0; i < 10; i++ {
			k := randomScalar(t, n)
			digits := ec.GenerateWindowNaf(width, k)
			require.Equal(t, 0, evalSigned(digits).Cmp(k))

			bound := int32(1) << uint(width-1)
			last := -width
			for j, d := range digits {
				if d == 0 {
					continue
				}
				require.Equal(t, int32(1), d&1)
				require.Less(t, d, bound)
				require.Greater(t, d, -bound)
				require.GreaterOrEqual(t, j-last, width)
				last = j
			}

			// Compact form carries the same digits.
			pos := -1
			for _, cd := range ec.GenerateCompactWindowNaf(width, k) {
				pos += cd.Zeroes() + 1
				require.Equal(t, int(digits[pos]), cd.Digit())
			}
			require.Equal(t, len(digits)-1, pos)
		}
	}
	require.Empty(t, ec.GenerateNaf(new(big.Int)))
	require.Panics(t, func() { ec.GenerateWindowNaf(1, big.NewInt(3)) })
	require.Panics(t, func() { ec.GenerateNaf(big.NewInt(-3)) })
}

func TestJointSparseForm(t *testing.T) {
	n := mustCurve(t, "P-256").N
	for i := 0; i < 20; i++ {
		k0, k1 := randomScalar(t, n), randomScalar(t, n)
		jsf := ec.GenerateJSF(k0, k1)
		u0 := make([]int32, len(jsf))
		u1 := make([]int32, len(jsf))
		nonZero := 0
		for j, d := range jsf {
			u0[j], u1[j] = int32(d.U0), int32(d.U1)
			if d.U0 != 0 || d.U1 != 0 {
				nonZero++
			}
		}
		require.Equal(t, 0, evalSigned(u0).Cmp(k0))
		require.Equal(t, 0, evalSigned(u1).Cmp(k1))
		// The JSF has joint weight about half the length.
		require.Less(t, nonZero, 3*len(jsf)/5)
	}
	require.Empty(t, ec.GenerateJSF(new(big.Int), new(big.Int)))
}

func TestShamirsTrick(t *testing.T) {
	for _, name := range []string{"P-256", "secp256k1", "sect233r1"} {
		t.Run(name, func(t *testing.T) {
			params := mustCurve(t, name)
			p := params.G
			q := referenceMul(t, params.G, big.NewInt(31337))
			for i := 0; i < 4; i++ {
				a := randomScalar(t, params.N)
				b := new(big.Int).Neg(randomScalar(t, params.N))
				want := referenceMul(t, p, a).Add(referenceMul(t, q, b))

				got, err := ec.ShamirsTrick(p, a, q, b)
				require.NoError(t, err)
				requireSamePoint(t, want, got)

				got, err = ec.SumOfTwoMultiplies(p, a, q, b)
				require.NoError(t, err)
				requireSamePoint(t, want, got)
			}

			// p - p cancels inside the table.
			r, err := ec.ShamirsTrick(p, big.NewInt(5), p, big.NewInt(-5))
			require.NoError(t, err)
			require.True(t, r.IsInfinity())
		})
	}
}

func TestSumOfMultiplies(t *testing.T) {
	params := mustCurve(t, "P-256")
	ps := make([]*ec.Point, 5)
	ks := make([]*big.Int, 5)
	want := params.Curve.Infinity()
	acc := params.G
	for i := range ps {
		ps[i] = acc
		ks[i] = randomScalar(t, params.N)
		if i%2 == 1 {
			ks[i].Neg(ks[i])
		}
		want = want.Add(referenceMul(t, ps[i], ks[i]))
		acc = acc.ThreeTimes()
	}
	got, err := ec.SumOfMultiplies(ps, ks)
	require.NoError(t, err)
	requireSamePoint(t, want, got)

	_, err = ec.SumOfMultiplies(ps, ks[:2])
	require.Error(t, err)
	_, err = ec.SumOfMultiplies(nil, nil)
	require.Error(t, err)
}

func TestSumOfMultipliesWithGLV(t *testing.T) {
	params := mustCurve(t, "secp256k1")
	glv, ok := params.Curve.Endomorphism().(ec.GLVEndomorphism)
	require.True(t, ok)

	q := params.G.Twice()
	a, b := randomScalar(t, params.N), randomScalar(t, params.N)
	b.Neg(b)
	want := referenceMul(t, params.G, a).Add(referenceMul(t, q, b))

	got, err := ec.SumOfMultiplies([]*ec.Point{params.G, q}, []*big.Int{a, b}, ec.WithGLV(glv))
	require.NoError(t, err)
	requireSamePoint(t, want, got)
}

func TestCacheSafeLookupOutOfRangePanics(t *testing.T) {
	params := mustCurve(t, "P-256")
	table, err := params.Curve.CreateCacheSafeLookupTable([]*ec.Point{params.G, params.G.Twice()}, 0, 2)
	require.NoError(t, err)
	require.Panics(t, func() { table.Lookup(2) })
	require.Panics(t, func() { table.Lookup(-1) })
}
