// internal/middleware/recover.go
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
)

// Recover turns a handler panic into a 500 and reports it to Sentry. Without
// a configured DSN the Sentry hub is a no-op.
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
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			slog.Error("Panic while serving request",
				"error", err,
				"path", r.URL.Path,
				"request_id", RequestIDFromContext(r.Context()),
				"stack", string(debug.Stack()))

			hub := sentry.CurrentHub().Clone()
			hub.Scope().SetTag("request_id", RequestIDFromContext(r.Context()))
			hub.Scope().SetRequest(r)
			hub.Recover(err)

			w.Header().Set("Connection", "close")
			http.Error(w, "Internal server error.", http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}
