package ec

import "errors"

var (
	// ErrCurveMismatch indicates that two points belong to different curves.
	ErrCurveMismatch = errors.New("ec: points belong to different curves")

	// ErrInvalidPoint indicates coordinates that do not satisfy the curve
	// equation or do not lie in the prime-order subgroup.
	ErrInvalidPoint = errors.New("ec: invalid point")

	// ErrInvalidEncoding indicates a malformed point encoding: unknown tag,
	// wrong length, or inconsistent hybrid parity.
	ErrInvalidEncoding = errors.New("ec: invalid point encoding")

	// ErrUnsupportedCoordinateSystem is returned when a curve is configured
	// with a coordinate system it cannot represent.
	ErrUnsupportedCoordinateSystem = errors.New("ec: unsupported coordinate system")

	// ErrUnsupportedMultiplier is returned when a multiplier cannot serve the
	// curve it is configured on.
	ErrUnsupportedMultiplier = errors.New("ec: multiplier does not support curve")

	// ErrNotKoblitz is returned when a Koblitz-only operation is requested on
	// any other curve.
	ErrNotKoblitz = errors.New("ec: not a Koblitz curve")

	// ErrPostMultiplyCheck is returned when the result of a scalar
	// multiplication does not lie on the curve.
	ErrPostMultiplyCheck = errors.New("ec: scalar multiplication produced an invalid point")

	// ErrScalarTooLarge is returned by multipliers with a bounded scalar
	// range, such as the fixed-point comb.
	ErrScalarTooLarge = errors.New("ec: scalar exceeds multiplier range")

	// ErrFieldMismatch is returned when importing a point whose field differs.
	ErrFieldMismatch = errors.New("ec: curve fields differ")
)
