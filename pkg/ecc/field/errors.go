package field

import "errors"

var (
	// ErrFieldMismatch indicates that two operands belong to different fields.
	ErrFieldMismatch = errors.New("field: operands belong to different fields")

	// ErrValueOutOfRange indicates that a value does not lie in [0, q) for a
	// prime field or has degree >= m for a binary field.
	ErrValueOutOfRange = errors.New("field: value out of range")

	// ErrInvalidModulus indicates that field parameters are unusable.
	ErrInvalidModulus = errors.New("field: invalid modulus")

	// ErrDivisionByZero is raised when inverting zero.
	ErrDivisionByZero = errors.New("field: division by zero")
)
