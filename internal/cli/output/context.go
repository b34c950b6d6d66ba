package output

import "context"

// rendererKey is the context key for the active renderer.
type rendererKey struct{}

// NewContext returns a context carrying the renderer. The root command
// stores the renderer it built from the resolved output mode here so
// subcommands render through the same instance.
func NewContext(ctx context.Context, r *Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// FromContext retrieves the renderer from the context, if one was stored.
func FromContext(ctx context.Context) (*Renderer, bool) {
	r, ok := ctx.Value(rendererKey{}).(*Renderer)
	return r, ok
}
