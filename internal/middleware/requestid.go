// internal/middleware/requestid.go
//
// Request-id and scoped-logger middleware.
//
// Every request gets an id: the caller's X-Request-ID when it looks sane,
// otherwise a fresh UUID.  The id is echoed in the response header and
// baked into a request-scoped logger stored with logger.WithContext, so
// every log line for the request can be correlated.

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yanizio/feedback/internal/logger"
)

// RequestIDHeader is read from requests and written to responses.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the middleware.  base is the parent logger.
func RequestID(base *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if !validRequestID(id) {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			log := base.With("request_id", id, "method", r.Method, "path", r.URL.Path)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			ctx = logger.WithContext(ctx, log)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID returns the id stored by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// validRequestID accepts short printable ASCII ids from upstream proxies.
func validRequestID(id string) bool {
	if id == "" || len(id) > 128 {
		return false
	}
	for i := 0; i < len(id); i++ {
		if c := id[i]; c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}
