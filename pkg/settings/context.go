package settings

import (
	"context"
)

// runContextKey is unexported so only this package can collide with it.
type runContextKey struct{}

// IntoContext returns a context carrying the run parameters.
func IntoContext(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runContextKey{}, r)
}

// FromContext retrieves the run parameters stored by IntoContext. The
// second return is false when the context carries none.
func FromContext(ctx context.Context) (*Run, bool) {
	r, ok := ctx.Value(runContextKey{}).(*Run)
	return r, ok
}
