// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// Command origins recorded in the posting history.
const (
	OriginShell = "shell"
	OriginCLI   = "cli"
)

// OriginKey is the context key for the command origin.
type OriginKey struct{}

// WithOrigin returns a context with the command origin embedded.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, OriginKey{}, origin)
}

// OriginFromContext returns the command origin from context, or empty string if not set.
func OriginFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(OriginKey{}).(string); ok {
		return v
	}
	return ""
}
