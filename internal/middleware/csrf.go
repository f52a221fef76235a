// internal/middleware/csrf.go
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/justinas/nosurf"
)

// NoSurfMiddleware guards every unsafe method with a CSRF token. The token is
// read from the csrf_token form field or the X-CSRF-Token header.
func NoSurfMiddleware(next http.Handler, isProduction bool) http.Handler {
	csrfHandler := nosurf.New(next)

	csrfHandler.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})

	csrfHandler.SetFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Warn("CSRF token check failed", "path", r.URL.Path, "method", r.Method, "reason", nosurf.Reason(r))
		http.Error(w, "Security error: invalid or missing CSRF token.", http.StatusForbidden)
	}))

	return csrfHandler
}
