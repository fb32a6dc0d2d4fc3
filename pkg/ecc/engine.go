package ecc

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/coinbase/cb-ecc-go/pkg/ecc/curves"
	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec"
	"github.com/coinbase/cb-ecc-go/pkg/ecc/logging"
	"github.com/coinbase/cb-ecc-go/pkg/ecc/metrics"
)

// Engine is a configured curve with its multiplier. It is safe for
// concurrent use.
type Engine struct {
	mu     sync.RWMutex
	closed bool

	name  string
	order *big.Int
	curve ec.Curve
	g     *ec.Point
	mult  ec.Multiplier
	log   logging.Logger
}

// Open resolves cfg against the curve registry and derives a curve with the
// requested coordinate system and multiplier. The registered curve itself is
// never modified.
func Open(cfg Config) (*Engine, error) {
	params, err := curves.ByName(cfg.Curve)
	if err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	builder := params.Curve.Configure()
	if cfg.CoordinateSystem != "" {
		cs, ok := ec.ParseCoordinateSystem(cfg.CoordinateSystem)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCoordinateSystem, cfg.CoordinateSystem)
		}
		builder.SetCoordinateSystem(cs)
	}
	multName := cfg.Multiplier
	if multName != "" {
		m, err := newMultiplier(multName, params.Curve)
		if err != nil {
			return nil, err
		}
		builder.SetMultiplier(m)
	} else {
		multName = "default"
	}

	c, err := builder.Create()
	if err != nil {
		return nil, fmt.Errorf("configure %s: %w", params.Name, err)
	}
	g, err := c.ImportPoint(params.G)
	if err != nil {
		return nil, err
	}

	mult := c.Multiplier()
	if cfg.Registerer != nil {
		col, err := metrics.NewCollector(cfg.Registerer)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		mult = col.Instrument(params.Name, multName, mult)
	}

	log = log.With("curve", params.Name, "coordinates", c.CoordinateSystem().String(), "multiplier", multName)
	log.Debug(context.Background(), "engine opened")

	return &Engine{
		name:  params.Name,
		order: new(big.Int).Set(params.N),
		curve: c,
		g:     g,
		mult:  mult,
		log:   log,
	}, nil
}

func (e *Engine) check(ctx context.Context) error {
	if e.closed {
		return ErrEngineClosed
	}
	return ctx.Err()
}

// Name returns the registered curve name.
func (e *Engine) Name() string { return e.name }

// Curve returns the configured curve.
func (e *Engine) Curve() ec.Curve { return e.curve }

// Order returns a copy of the subgroup order.
func (e *Engine) Order() *big.Int { return new(big.Int).Set(e.order) }

// Generator returns the base point on the configured curve.
func (e *Engine) Generator() (*ec.Point, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, ErrEngineClosed
	}
	return e.g, nil
}

// Multiply returns k*p. p may come from any configuration of the same
// curve. k is reduced modulo the group order on a private copy that is
// wiped afterwards.
func (e *Engine) Multiply(ctx context.Context, p *ec.Point, k *big.Int) (*ec.Point, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.check(ctx); err != nil {
		return nil, err
	}
	q, err := e.importPoint(p)
	if err != nil {
		return nil, err
	}

	kr := new(big.Int).Mod(k, e.order)
	defer ZeroizeInt(kr)

	e.log.Debug(ctx, "multiply", logging.Redacted("scalar"))
	r, err := e.mult.Multiply(q, kr)
	if err != nil {
		e.log.Error(ctx, "multiply failed", "error", err)
		return nil, err
	}
	return r, nil
}

// importPoint moves p onto the engine's curve and checks the curve equation
// before any scalar arithmetic runs.
func (e *Engine) importPoint(p *ec.Point) (*ec.Point, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil point", ErrInvalidPoint)
	}
	q, err := e.curve.ImportPoint(p)
	if err != nil {
		return nil, err
	}
	if !q.IsValidPartial() {
		return nil, fmt.Errorf("%w: not on %s", ErrInvalidPoint, e.name)
	}
	return q, nil
}

// MultiplyBase returns k*G.
func (e *Engine) MultiplyBase(ctx context.Context, k *big.Int) (*ec.Point, error) {
	return e.Multiply(ctx, e.g, k)
}

// SumOfTwoMultiplies returns a*p + b*q.
func (e *Engine) SumOfTwoMultiplies(ctx context.Context, p *ec.Point, a *big.Int, q *ec.Point, b *big.Int) (*ec.Point, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.check(ctx); err != nil {
		return nil, err
	}
	pp, err := e.importPoint(p)
	if err != nil {
		return nil, err
	}
	qq, err := e.importPoint(q)
	if err != nil {
		return nil, err
	}
	ar, br := new(big.Int).Mod(a, e.order), new(big.Int).Mod(b, e.order)
	defer ZeroizeInts(ar, br)

	e.log.Debug(ctx, "sum of two multiplies", logging.Redacted("scalars"))
	return ec.SumOfTwoMultiplies(pp, ar, qq, br)
}

// DecodePoint parses and fully validates a SEC 1 encoded point.
func (e *Engine) DecodePoint(encoded []byte) (*ec.Point, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, ErrEngineClosed
	}
	return e.curve.DecodePoint(encoded)
}

// Close releases the engine. It returns ErrEngineClosed when called twice.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	e.closed = true
	e.log.Debug(context.Background(), "engine closed")
	return nil
}
