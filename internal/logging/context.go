package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerKeyType struct{}

//nolint:gochecknoglobals // Package-level context key is idiomatic
var loggerKey = loggerKeyType{}

// WithLogger attaches logger to ctx so code running under it (worker
// goroutines, formatter invocations) inherits the CLI's log level and
// styling.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached by WithLogger, falling back
// to the package default when none was attached.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
