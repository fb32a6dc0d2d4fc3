package logging

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
)

// NewZap adapts a zap logger. Key-value pairs and slog.Attr arguments are
// both accepted.
func NewZap(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &zapLogger{s: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

type zapLogger struct {
	s *zap.SugaredLogger
}

func (z *zapLogger) Debug(_ context.Context, msg string, args ...any) {
	z.s.Debugw(msg, zapArgs(args)...)
}

func (z *zapLogger) Info(_ context.Context, msg string, args ...any) {
	z.s.Infow(msg, zapArgs(args)...)
}

func (z *zapLogger) Warn(_ context.Context, msg string, args ...any) {
	z.s.Warnw(msg, zapArgs(args)...)
}

func (z *zapLogger) Error(_ context.Context, msg string, args ...any) {
	z.s.Errorw(msg, zapArgs(args)...)
}

func (z *zapLogger) With(args ...any) Logger {
	return &zapLogger{s: z.s.With(zapArgs(args)...)}
}

// zapArgs turns slog.Attr values into zap fields so the sugared logger does
// not mistake them for dangling keys.
func zapArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if attr, ok := a.(slog.Attr); ok {
			out[i] = zap.Any(attr.Key, attr.Value.Resolve().Any())
			continue
		}
		out[i] = a
	}
	return out
}
