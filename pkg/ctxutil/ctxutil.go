// Package ctxutil carries the request ID and the authenticated operator
// through context.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type (
	operatorIDKey struct{}
	requestIDKey  struct{}
)

// WithOperatorID stores the authenticated operator's ID in the context.
func WithOperatorID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, operatorIDKey{}, id)
}

// OperatorIDFromCtx returns the operator ID, or uuid.Nil and false when
// none (or the nil UUID) was stored.
func OperatorIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(operatorIDKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns the request ID, or "" if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LogAttrs returns request_id and operator_id as slog attributes,
// skipping whichever is not set.
func LogAttrs(ctx context.Context) []slog.Attr {
	attrs := make([]slog.Attr, 0, 2)
	if id := RequestIDFromCtx(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	if id, ok := OperatorIDFromCtx(ctx); ok {
		attrs = append(attrs, slog.String("operator_id", id.String()))
	}
	return attrs
}
