package main

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecc-go/pkg/ecc"
	"github.com/coinbase/cb-ecc-go/pkg/ecc/curves"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCurvesCommand(t *testing.T) {
	out, err := run(t, "curves")
	require.NoError(t, err)
	for _, name := range curves.Names() {
		require.Contains(t, out, name)
	}
	require.Contains(t, out, "wtnaf")
}

func TestMulMatchesLibrary(t *testing.T) {
	out, err := run(t, "mul", "--curve", "secp256k1", "--scalar", "0x0123456789abcdef")
	require.NoError(t, err)

	p := curves.Secp256k1()
	k, _ := new(big.Int).SetString("0123456789abcdef", 16)
	want, err := p.G.Multiply(k)
	require.NoError(t, err)
	require.Equal(t, hex.EncodeToString(want.Encoded(true)), strings.TrimSpace(out))

	// Feeding the result back as the point multiplies again.
	out2, err := run(t, "mul", "--curve", "secp256k1", "-k", "02", "-p", strings.TrimSpace(out), "--compressed=false")
	require.NoError(t, err)
	want2 := want.Twice()
	require.Equal(t, hex.EncodeToString(want2.Encoded(false)), strings.TrimSpace(out2))
}

func TestDecodeCommand(t *testing.T) {
	g := curves.Sect163k1().G
	out, err := run(t, "decode", "--curve", "sect163k1", hex.EncodeToString(g.Encoded(true)))
	require.NoError(t, err)
	require.Contains(t, out, "x="+g.AffineXCoord().String())

	_, err = run(t, "decode", "--curve", "sect163k1", "05")
	require.ErrorIs(t, err, ecc.ErrInvalidEncoding)

	_, err = run(t, "decode", "--curve", "sect163k1", "zz")
	require.Error(t, err)
}

func TestConfigFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ecmath.yaml")
	require.NoError(t, os.WriteFile(path, []byte("curve: sect233k1\nmultiplier: wtnaf\n"), 0o600))

	out, err := run(t, "mul", "--config", path, "-k", "05")
	require.NoError(t, err)
	want, err := curves.Sect233k1().G.Multiply(big.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, hex.EncodeToString(want.Encoded(true)), strings.TrimSpace(out))

	t.Setenv("ECMATH_MULTIPLIER", "bogus")
	_, err = run(t, "mul", "-k", "05")
	require.ErrorIs(t, err, ecc.ErrUnknownMultiplier)
}

func TestMulRequiresScalar(t *testing.T) {
	_, err := run(t, "mul")
	require.Error(t, err)

	_, err = run(t, "mul", "-k", "xyz")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, ecc.BuildVersion())
}
