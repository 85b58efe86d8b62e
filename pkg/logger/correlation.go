package logger

import (
	"context"
	"log/slog"

	"MockECommerce/pkg/correlation"
)

const CorrelationIDKey = "correlation_id"

// ContextAttr pulls one attribute out of a request context, e.g. the
// correlation id or the authenticated user.
type ContextAttr func(ctx context.Context) (slog.Attr, bool)

func CorrelationAttr(ctx context.Context) (slog.Attr, bool) {
	id := correlation.FromContext(ctx)
	return slog.String(CorrelationIDKey, id), id != ""
}

// ContextHandler adds the attributes found in the record's context before
// passing it on, so order and worker logs can be joined per request.
type ContextHandler struct {
	inner slog.Handler
	attrs []ContextAttr
}

func NewContextHandler(inner slog.Handler, attrs ...ContextAttr) *ContextHandler {
	return &ContextHandler{inner: inner, attrs: attrs}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, extract := range h.attrs {
		if attr, ok := extract(ctx); ok {
			r.AddAttrs(attr)
		}
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs), attrs: h.attrs}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name), attrs: h.attrs}
}
