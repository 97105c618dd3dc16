// Package logger carries a *zap.Logger through a context.Context
package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// New builds a development logger when verbose is set, a production logger
// otherwise. A non-empty path sends output there instead of stderr
func New(verbose bool, path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	return cfg.Build()
}

// NewContext returns a copy of ctx carrying l
func NewContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// L returns the logger carried by ctx, or a no-op logger
func L(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return zap.NewNop()
}
