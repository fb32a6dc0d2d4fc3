package ec_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/curves"
	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec"
)

func randomScalar(t *testing.T, n *big.Int) *big.Int {
	t.Helper()
	k, err := rand.Int(rand.Reader, n)
	require.NoError(t, err)
	return k
}

func mustCurve(t *testing.T, name string) *curves.Params {
	t.Helper()
	p, err := curves.ByName(name)
	require.NoError(t, err)
	return p
}

func configured(t *testing.T, c ec.Curve, cs ec.CoordinateSystem) ec.Curve {
	t.Helper()
	nc, err := c.Configure().SetCoordinateSystem(cs).Create()
	require.NoError(t, err)
	return nc
}

func importInto(t *testing.T, c ec.Curve, p *ec.Point) *ec.Point {
	t.Helper()
	q, err := c.ImportPoint(p)
	require.NoError(t, err)
	return q
}

// referenceMul is the unoptimised multiplier used as the oracle.
func referenceMul(t *testing.T, p *ec.Point, k *big.Int) *ec.Point {
	t.Helper()
	r, err := ec.ReferenceMultiplier{}.Multiply(p, k)
	require.NoError(t, err)
	return r
}

func requireSamePoint(t *testing.T, want, got *ec.Point) {
	t.Helper()
	require.True(t, want.Equal(got), "want %s, got %s", want, got)
}

var allCurveNames = []string{"P-256", "secp256k1", "sect163k1", "sect163r2", "sect233k1", "sect233r1"}
