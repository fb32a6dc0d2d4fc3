// Package logging provides the small logging facade used by the engine and
// its command-line tool.
//
// The default implementation wraps log/slog:
//
//	logger := logging.New(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
//	logger.Debug(ctx, "multiply", "curve", "P-256", logging.Redacted("scalar"))
//
// NewZap adapts a go.uber.org/zap logger to the same interface.
//
// Scalars, their NAF recodings and intermediate points derived from secret
// scalars must never be logged. Use Redacted to record that a value was
// omitted.
package logging
