package logger

import "context"

type loggerCtxKeyType string

const loggerCtxKey loggerCtxKeyType = "logger"

func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// Retrieve the logger stored in the context. If none was set,
// a console logger is returned so callers never have to nil-check.
func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return NewConsoleLogger()
	}

	logger, ok := ctx.Value(loggerCtxKey).(Logger)
	if !ok {
		return NewConsoleLogger()
	}

	return logger
}
