// internal/middleware/admin_auth.go
package middleware

import (
	"log/slog"
	"net/http"
)

// RequireRole must run after RequireAuthentication.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				slog.Error("RequireRole: no user in context")
				http.Error(w, "Access denied: not authenticated.", http.StatusUnauthorized)
				return
			}
			if user.RoleName == nil {
				slog.Warn("RequireRole: user has no role", "userID", user.ID)
				http.Error(w, "Access denied: role could not be determined.", http.StatusForbidden)
				return
			}
			if !user.HasRole(allowedRoles...) {
				slog.Warn("Access denied: insufficient role", "userID", user.ID, "userRole", *user.RoleName, "requiredRoles", allowedRoles, "path", r.URL.Path)
				http.Error(w, "Access denied: you do not have permission to view this page.", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
