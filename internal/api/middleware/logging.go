package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/capturedesk/capturedesk/internal/domain"
)

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// identityHolder lets inner middleware hand the authenticated identity back
// out to the logger. Logging wraps the router ahead of the auth gate, so it
// cannot see context values added further in; instead it plants a mutable
// holder that Authenticate fills once verification succeeds.
type identityHolder struct {
	ident *domain.Identity
}

const identityHolderKey = contextKey("identity_holder")

func recordIdentity(ctx context.Context, ident *domain.Identity) {
	if h, ok := ctx.Value(identityHolderKey).(*identityHolder); ok {
		h.ident = ident
	}
}

// Logging returns middleware that logs each request with structured JSON
// output, including the authenticated tenant and user when present.
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			holder := &identityHolder{}
			r = r.WithContext(context.WithValue(r.Context(), identityHolderKey, holder))

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			requestID := RequestIDFromContext(r.Context())

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", rw.statusCode),
				zap.Int64("bytes", rw.written),
				zap.Duration("duration", duration),
				zap.String("request_id", requestID),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			}
			if holder.ident != nil {
				fields = append(fields,
					zap.String("tenant_id", holder.ident.TenantID.String()),
					zap.String("user_id", holder.ident.UserID.String()),
				)
			}

			logger.Info("http request", fields...)
		})
	}
}
