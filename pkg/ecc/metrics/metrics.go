// Package metrics instruments scalar multiplication with Prometheus.
package metrics

import (
	"errors"
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec"
)

const namespace = "ecc"

// Collector owns the multiplication metrics.
type Collector struct {
	multiplies *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewCollector creates the metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		multiplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "multiplications_total",
			Help:      "Scalar multiplications by curve, multiplier and outcome.",
		}, []string{"curve", "multiplier", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "multiplication_duration_seconds",
			Help:      "Latency of scalar multiplications.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 8),
		}, []string{"curve", "multiplier"}),
	}
	if reg != nil {
		for _, m := range []prometheus.Collector{c.multiplies, c.duration} {
			if err := reg.Register(m); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// Instrument wraps m so every call is counted and timed under the given
// labels.
func (c *Collector) Instrument(curve, name string, m ec.Multiplier) *InstrumentedMultiplier {
	return &InstrumentedMultiplier{inner: m, collector: c, curve: curve, name: name}
}

// InstrumentedMultiplier is an ec.Multiplier that records metrics around an
// inner multiplier.
type InstrumentedMultiplier struct {
	inner     ec.Multiplier
	collector *Collector
	curve     string
	name      string
}

// Unwrap returns the wrapped multiplier.
func (m *InstrumentedMultiplier) Unwrap() ec.Multiplier { return m.inner }

func (m *InstrumentedMultiplier) Multiply(p *ec.Point, k *big.Int) (*ec.Point, error) {
	start := time.Now()
	r, err := m.inner.Multiply(p, k)
	m.collector.duration.WithLabelValues(m.curve, m.name).Observe(time.Since(start).Seconds())
	m.collector.multiplies.WithLabelValues(m.curve, m.name, outcome(err)).Inc()
	return r, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ec.ErrPostMultiplyCheck):
		return "post_check_failed"
	case errors.Is(err, ec.ErrUnsupportedMultiplier), errors.Is(err, ec.ErrUnsupportedCoordinateSystem):
		return "unsupported"
	default:
		return "error"
	}
}
