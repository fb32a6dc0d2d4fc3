package ecc

import (
	"errors"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/curves"
	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec"
)

var (
	// ErrEngineClosed is returned by every Engine method after Close.
	ErrEngineClosed = errors.New("ecc: engine closed")
	// ErrUnknownMultiplier is returned by Open for an unrecognised
	// multiplier name.
	ErrUnknownMultiplier = errors.New("ecc: unknown multiplier")
	// ErrUnknownCoordinateSystem is returned by Open for an unrecognised
	// coordinate system name.
	ErrUnknownCoordinateSystem = errors.New("ecc: unknown coordinate system")
)

// Errors surfaced from the arithmetic packages, re-exported so callers only
// need this package for errors.Is checks.
var (
	ErrUnknownCurve                = curves.ErrUnknownCurve
	ErrInvalidPoint                = ec.ErrInvalidPoint
	ErrInvalidEncoding             = ec.ErrInvalidEncoding
	ErrUnsupportedCoordinateSystem = ec.ErrUnsupportedCoordinateSystem
	ErrUnsupportedMultiplier       = ec.ErrUnsupportedMultiplier
	ErrNotKoblitz                  = ec.ErrNotKoblitz
	ErrPostMultiplyCheck           = ec.ErrPostMultiplyCheck
	ErrCurveMismatch               = ec.ErrCurveMismatch
	ErrFieldMismatch               = ec.ErrFieldMismatch
)
