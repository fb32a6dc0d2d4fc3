package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/coinbase/cb-ecc-go/pkg/ecc"
	"github.com/coinbase/cb-ecc-go/pkg/ecc/curves"
	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec"
)

func newCurvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curves",
		Short: "List the registered curves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range curves.Names() {
				p, err := curves.ByName(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-10s %4d bits  %-18s h=%s\n", name, p.Curve.FieldSize(), p.Curve.CoordinateSystem(), p.H)
			}
			fmt.Fprintf(out, "multipliers: %s\n", strings.Join(ecc.MultiplierNames(), ", "))
			return nil
		},
	}
}

func newMulCmd(c *cli) *cobra.Command {
	var (
		scalarHex  string
		pointHex   string
		compressed bool
	)
	cmd := &cobra.Command{
		Use:   "mul",
		Short: "Multiply a point (the generator by default) by a scalar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := parseScalar(scalarHex)
			if err != nil {
				return err
			}
			defer ecc.ZeroizeInt(k)

			eng, err := c.open()
			if err != nil {
				return err
			}
			defer eng.Close()

			var p *ec.Point
			if pointHex == "" {
				p, err = eng.Generator()
			} else {
				p, err = decodeHexPoint(eng, pointHex)
			}
			if err != nil {
				return err
			}

			r, err := eng.Multiply(cmd.Context(), p, k)
			if err != nil {
				return errors.Wrap(err, "multiply")
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(r.Encoded(compressed)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&scalarHex, "scalar", "k", "", "scalar as hex (required)")
	cmd.Flags().StringVarP(&pointHex, "point", "p", "", "SEC 1 encoded point as hex")
	cmd.Flags().BoolVar(&compressed, "compressed", true, "print the compressed encoding")
	_ = cmd.MarkFlagRequired("scalar")
	return cmd
}

func newDecodeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Validate an encoded point and print its affine coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.open()
			if err != nil {
				return err
			}
			defer eng.Close()

			p, err := decodeHexPoint(eng, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if p.IsInfinity() {
				fmt.Fprintln(out, "infinity")
				return nil
			}
			fmt.Fprintf(out, "x=%s\ny=%s\n", p.AffineXCoord(), p.AffineYCoord())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ecmath %s (%s)\n", ecc.BuildVersion(), ecc.BuildCommit())
		},
	}
}

func parseScalar(s string) (*big.Int, error) {
	buf, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "scalar is not hex")
	}
	defer ecc.ZeroizeBytes(buf)
	return new(big.Int).SetBytes(buf), nil
}

func decodeHexPoint(eng *ecc.Engine, s string) (*ec.Point, error) {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "point is not hex")
	}
	p, err := eng.DecodePoint(buf)
	if err != nil {
		return nil, errors.Wrap(err, "decoding point")
	}
	return p, nil
}
