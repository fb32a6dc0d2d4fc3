package ec

// CoordinateSystem identifies how a point's coordinates are stored.
type CoordinateSystem int

const (
	// Affine stores (x, y).
	Affine CoordinateSystem = iota
	// Homogeneous stores (X, Y, Z) with x = X/Z, y = Y/Z.
	Homogeneous
	// Jacobian stores (X, Y, Z) with x = X/Z^2, y = Y/Z^3.
	Jacobian
	// JacobianChudnovsky stores Jacobian (X, Y, Z) plus Z^2 and Z^3.
	JacobianChudnovsky
	// JacobianModified stores Jacobian (X, Y, Z) plus aZ^4.
	JacobianModified
	// LambdaAffine stores (x, λ) with λ = x + y/x on binary curves.
	LambdaAffine
	// LambdaProjective stores (X, L, Z) with x = X/Z, λ = L/Z.
	LambdaProjective
	// Skewed is reserved for skewed-projective Koblitz arithmetic. No curve
	// currently accepts it.
	Skewed
)

var coordNames = map[CoordinateSystem]string{
	Affine:             "affine",
	Homogeneous:        "homogeneous",
	Jacobian:           "jacobian",
	JacobianChudnovsky: "jacobian-chudnovsky",
	JacobianModified:   "jacobian-modified",
	LambdaAffine:       "lambda-affine",
	LambdaProjective:   "lambda-projective",
	Skewed:             "skewed",
}

// String returns the canonical lower-case name.
func (c CoordinateSystem) String() string {
	if s, ok := coordNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseCoordinateSystem maps a canonical name back to its CoordinateSystem.
func ParseCoordinateSystem(name string) (CoordinateSystem, bool) {
	for c, s := range coordNames {
		if s == name {
			return c, true
		}
	}
	return 0, false
}

// zCount is the number of projective coordinates stored after X and Y.
func (c CoordinateSystem) zCount() int {
	switch c {
	case Affine, LambdaAffine:
		return 0
	case Homogeneous, Jacobian, LambdaProjective, Skewed:
		return 1
	case JacobianModified:
		return 2
	case JacobianChudnovsky:
		return 3
	default:
		return 0
	}
}

// isAffine reports whether points are always stored with Z = 1 implied.
func (c CoordinateSystem) isAffine() bool {
	return c == Affine || c == LambdaAffine
}
