package logging

import (
	"context"
	"errors"
	"log/slog"
)

// fanout sends each record to every sink that accepts its level: the
// console handler and, when enabled, the rolling JSON file.
type fanout []slog.Handler

// newFanout drops nil sinks and avoids wrapping a single one.
func newFanout(sinks ...slog.Handler) slog.Handler {
	var f fanout
	for _, s := range sinks {
		if s != nil {
			f = append(f, s)
		}
	}

	if len(f) == 1 {
		return f[0]
	}

	return f
}

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range f {
		if s.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle writes to every accepting sink, even after one fails; a full disk
// under the log file must not silence the console.
func (f fanout) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var errs []error

	for _, s := range f {
		if !s.Enabled(ctx, r.Level) {
			continue
		}

		if err := s.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (f fanout) WithGroup(name string) slog.Handler {
	return f.each(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (f fanout) each(fn func(slog.Handler) slog.Handler) fanout {
	out := make(fanout, len(f))
	for i, s := range f {
		out[i] = fn(s)
	}

	return out
}
