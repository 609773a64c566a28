package logging

import "context"

type tee []Logger

// Tee returns a Logger that sends every record to all loggers.
func Tee(loggers ...Logger) Logger {
	return tee(loggers)
}

func (t tee) Info(ctx context.Context, msg string, args ...any) {
	for _, l := range t {
		l.Info(ctx, msg, args...)
	}
}

func (t tee) Warn(ctx context.Context, msg string, args ...any) {
	for _, l := range t {
		l.Warn(ctx, msg, args...)
	}
}

func (t tee) Error(ctx context.Context, msg string, args ...any) {
	for _, l := range t {
		l.Error(ctx, msg, args...)
	}
}

func (t tee) With(args ...any) Logger {
	out := make(tee, len(t))
	for i, l := range t {
		out[i] = l.With(args...)
	}
	return out
}
