package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context. The request middleware
// uses this to hand the search usecase a logger already tagged with the
// request id, so degradation warnings correlate with the wide event line.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts the request logger from the context. Returns
// zap.NewNop() when absent, which keeps usecases callable from tests
// without logger plumbing.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
