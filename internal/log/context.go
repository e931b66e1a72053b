package log

import "context"

type ctxKey struct{}

// IntoContext attaches l to ctx for retrieval by FromContext. The HTTP layer
// uses this to thread a request-scoped logger into the services it calls.
func IntoContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger attached to ctx, or the process default.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return Default()
}
