package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/pkg/ctxutil"
)

// operatorSlot lets RequireOperator, which runs deeper in the chain,
// report the authenticated operator back to Logger.
type operatorSlot struct {
	id uuid.UUID
}

type operatorSlotKey struct{}

func reportOperator(ctx context.Context, id uuid.UUID) {
	if slot, ok := ctx.Value(operatorSlotKey{}).(*operatorSlot); ok {
		slot.id = id
	}
}

// Logger writes one "http.request" line per request. 5xx responses log at
// ERROR and 429 at WARN; operator_id is included once auth has run.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			slot := &operatorSlot{}
			ctx := context.WithValue(r.Context(), operatorSlotKey{}, slot)

			next.ServeHTTP(sw, r.WithContext(ctx))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			operatorID := slot.id
			if operatorID == uuid.Nil {
				operatorID, _ = ctxutil.OperatorIDFromCtx(r.Context())
			}
			if operatorID != uuid.Nil {
				attrs = append(attrs, slog.String("operator_id", operatorID.String()))
			}

			level := slog.LevelInfo
			switch {
			case sw.status >= 500:
				level = slog.LevelError
			case sw.status == http.StatusTooManyRequests:
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}
