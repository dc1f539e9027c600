// internal/middleware/accesslog.go
//
// Access log, request metrics, and panic recovery.
//
// AccessLog writes one INFO line per request through the request-scoped
// logger and counts it by chi route pattern and status.  Recover turns a
// panic into the same generic JSON 500 the submission endpoint uses for
// delivery failures, so a crash never leaks internals.

package middleware

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/yanizio/feedback/internal/logger"
	"github.com/yanizio/feedback/internal/metrics"
	"github.com/yanizio/feedback/internal/relay"
)

// GenericErrorMessage is returned by Recover.
const GenericErrorMessage = relay.FailureMessage

// AccessLog logs and counts each request after it completes.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()

		logger.FromContext(r.Context()).Infow("request",
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"route", route,
		)
	})
}

// Recover converts panics into a JSON 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.FromContext(r.Context()).Errorw("panic recovered",
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"` + GenericErrorMessage + `"}` + "\n"))
		}()
		next.ServeHTTP(w, r)
	})
}
