package ecc

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/logging"
)

// Config selects the curve and arithmetic strategy of an Engine. The string
// fields are the names accepted on the command line and in config files.
type Config struct {
	// Curve is a registered curve name such as "P-256" or "sect233k1".
	Curve string `mapstructure:"curve"`

	// CoordinateSystem overrides the curve's default, e.g. "jacobian" or
	// "lambda-projective". Empty keeps the default.
	CoordinateSystem string `mapstructure:"coordinates"`

	// Multiplier overrides the curve's default multiplier. See
	// MultiplierNames. Empty keeps the default.
	Multiplier string `mapstructure:"multiplier"`

	// Logger receives debug records. Nil discards them.
	Logger logging.Logger `mapstructure:"-"`

	// Registerer, when set, receives the multiplication metrics.
	Registerer prometheus.Registerer `mapstructure:"-"`
}

// DefaultConfig is P-256 with its default coordinate system and multiplier.
func DefaultConfig() Config {
	return Config{Curve: "P-256"}
}
