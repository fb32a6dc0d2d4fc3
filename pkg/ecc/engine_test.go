package ecc_test

import (
	"context"
	"crypto/elliptic"
	"math/big"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecc-go/pkg/ecc"
	"github.com/coinbase/cb-ecc-go/pkg/ecc/curves"
	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec"
)

func openEngine(t *testing.T, cfg ecc.Config) *ecc.Engine {
	t.Helper()
	eng, err := ecc.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func TestOpenDefaults(t *testing.T) {
	eng := openEngine(t, ecc.DefaultConfig())
	require.Equal(t, "P-256", eng.Name())
	require.Equal(t, ec.JacobianModified, eng.Curve().CoordinateSystem())

	k := big.NewInt(424242)
	p, err := eng.MultiplyBase(context.Background(), k)
	require.NoError(t, err)

	wantX, wantY := elliptic.P256().ScalarBaseMult(k.Bytes())
	p = p.Normalize()
	require.Equal(t, 0, wantX.Cmp(p.AffineXCoord().BigInt()))
	require.Equal(t, 0, wantY.Cmp(p.AffineYCoord().BigInt()))
	require.Equal(t, 0, k.Cmp(big.NewInt(424242)), "caller's scalar is untouched")
}

func TestEveryMultiplierName(t *testing.T) {
	for _, curve := range []string{"P-256", "secp256k1", "sect163k1", "sect233r1"} {
		k := big.NewInt(0)
		k.SetString("123456789abcdef0123456789abcdef", 16)
		want, err := curves.ByName(curve)
		require.NoError(t, err)
		wantP, err := ec.ReferenceMultiplier{}.Multiply(want.G, k)
		require.NoError(t, err)

		for _, name := range ecc.MultiplierNames() {
			eng, err := ecc.Open(ecc.Config{Curve: curve, Multiplier: name})
			switch {
			case name == "glv" && curve != "secp256k1":
				require.ErrorIs(t, err, ecc.ErrUnsupportedMultiplier)
				continue
			case name == "wtnaf" && curve != "sect163k1":
				require.ErrorIs(t, err, ecc.ErrNotKoblitz)
				continue
			}
			require.NoError(t, err, "%s/%s", curve, name)

			got, err := eng.MultiplyBase(context.Background(), k)
			require.NoError(t, err, "%s/%s", curve, name)
			require.True(t, wantP.Normalize().AffineXCoord().Equal(got.Normalize().AffineXCoord()), "%s/%s", curve, name)
			require.NoError(t, eng.Close())
		}
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := ecc.Open(ecc.Config{Curve: "nope"})
	require.ErrorIs(t, err, ecc.ErrUnknownCurve)

	_, err = ecc.Open(ecc.Config{Curve: "P-256", Multiplier: "magic"})
	require.ErrorIs(t, err, ecc.ErrUnknownMultiplier)

	_, err = ecc.Open(ecc.Config{Curve: "P-256", CoordinateSystem: "polar"})
	require.ErrorIs(t, err, ecc.ErrUnknownCoordinateSystem)

	_, err = ecc.Open(ecc.Config{Curve: "P-256", CoordinateSystem: "lambda-affine"})
	require.ErrorIs(t, err, ecc.ErrUnsupportedCoordinateSystem)
}

func TestEngineAcceptsPointsFromOtherConfigurations(t *testing.T) {
	affine := openEngine(t, ecc.Config{Curve: "sect233r1", CoordinateSystem: "affine"})
	proj := openEngine(t, ecc.Config{Curve: "sect233r1"})

	g, err := affine.Generator()
	require.NoError(t, err)
	k := big.NewInt(77)

	a, err := affine.Multiply(context.Background(), g, k)
	require.NoError(t, err)
	b, err := proj.Multiply(context.Background(), g, k)
	require.NoError(t, err)
	require.Equal(t, a.Encoded(true), b.Encoded(true))

	decoded, err := proj.DecodePoint(a.Encoded(false))
	require.NoError(t, err)
	require.True(t, decoded.Equal(b))
}

func TestEngineRejectsForeignPoints(t *testing.T) {
	ctx := context.Background()
	foreign := curves.Sect163r2().G

	for _, mult := range []string{"", "reference"} {
		eng := openEngine(t, ecc.Config{Curve: "sect163k1", Multiplier: mult})
		g, err := eng.Generator()
		require.NoError(t, err)

		_, err = eng.Multiply(ctx, foreign, big.NewInt(5))
		require.ErrorIs(t, err, ecc.ErrCurveMismatch, mult)
		require.NotErrorIs(t, err, ecc.ErrPostMultiplyCheck, mult)

		_, err = eng.SumOfTwoMultiplies(ctx, g, big.NewInt(2), foreign, big.NewInt(3))
		require.ErrorIs(t, err, ecc.ErrCurveMismatch, mult)
	}

	p256 := openEngine(t, ecc.DefaultConfig())
	g, err := p256.Generator()
	require.NoError(t, err)
	off, err := p256.Curve().CreatePoint(g.AffineXCoord().BigInt(), big.NewInt(1))
	require.NoError(t, err)
	_, err = p256.Multiply(ctx, off, big.NewInt(5))
	require.ErrorIs(t, err, ecc.ErrInvalidPoint)
	_, err = p256.SumOfTwoMultiplies(ctx, g, big.NewInt(1), off, big.NewInt(1))
	require.ErrorIs(t, err, ecc.ErrInvalidPoint)

	_, err = p256.Multiply(ctx, curves.Secp256k1().G, big.NewInt(5))
	require.ErrorIs(t, err, ecc.ErrFieldMismatch)
}

func TestSumOfTwoMultiplies(t *testing.T) {
	eng := openEngine(t, ecc.Config{Curve: "secp256k1"})
	g, err := eng.Generator()
	require.NoError(t, err)
	q, err := eng.MultiplyBase(context.Background(), big.NewInt(5))
	require.NoError(t, err)

	// 3G + 4(5G) = 23G
	got, err := eng.SumOfTwoMultiplies(context.Background(), g, big.NewInt(3), q, big.NewInt(4))
	require.NoError(t, err)
	want, err := eng.MultiplyBase(context.Background(), big.NewInt(23))
	require.NoError(t, err)
	require.True(t, want.Equal(got))
}

func TestCloseAndContext(t *testing.T) {
	eng, err := ecc.Open(ecc.DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = eng.MultiplyBase(ctx, big.NewInt(2))
	require.ErrorIs(t, err, context.Canceled)

	require.NoError(t, eng.Close())
	require.ErrorIs(t, eng.Close(), ecc.ErrEngineClosed)

	_, err = eng.MultiplyBase(context.Background(), big.NewInt(2))
	require.ErrorIs(t, err, ecc.ErrEngineClosed)
	_, err = eng.Generator()
	require.ErrorIs(t, err, ecc.ErrEngineClosed)
	_, err = eng.DecodePoint([]byte{0})
	require.ErrorIs(t, err, ecc.ErrEngineClosed)

	var nilEngine *ecc.Engine
	require.NoError(t, nilEngine.Close())
}

func TestConcurrentMultiply(t *testing.T) {
	eng := openEngine(t, ecc.Config{Curve: "P-256", Multiplier: "comb"})
	want, err := eng.MultiplyBase(context.Background(), big.NewInt(1234567))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*ec.Point, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = eng.MultiplyBase(context.Background(), big.NewInt(1234567))
		}(i)
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i])
		require.True(t, want.Equal(results[i]))
	}
}

func TestEngineMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	eng := openEngine(t, ecc.Config{Curve: "P-256", Multiplier: "wnaf", Registerer: reg})
	_, err := eng.MultiplyBase(context.Background(), big.NewInt(9))
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	require.Contains(t, names, "ecc_multiplications_total")
	require.Contains(t, names, "ecc_multiplication_duration_seconds")
}

func TestZeroize(t *testing.T) {
	buf := []byte{1, 2, 3}
	ecc.ZeroizeBytes(buf)
	require.Equal(t, []byte{0, 0, 0}, buf)

	x, _ := new(big.Int).SetString("ffffffffffffffffffffffffffffffffff", 16)
	words := x.Bits()
	ecc.ZeroizeInts(x, nil)
	require.Zero(t, x.Sign())
	for _, w := range words {
		require.Zero(t, w)
	}
}

func TestVersion(t *testing.T) {
	require.NotEmpty(t, ecc.BuildVersion())
	require.NotEmpty(t, ecc.BuildCommit())
}
