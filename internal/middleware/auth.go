// internal/middleware/auth.go
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"inventory-dashboard/internal/db"
	"inventory-dashboard/internal/models"

	"github.com/alexedwards/scs/v2"
)

type contextKey string

const UserIDContextKey contextKey = "userID"
const IsAuthenticatedContextKey contextKey = "isAuthenticated"
const UserContextKey contextKey = "user"

// LoadUser resolves the session's user id. Tests replace it.
var LoadUser = db.GetUserByID

func RequireAuthentication(sessionManager *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionManager.GetInt64(r.Context(), string(UserIDContextKey))
			if userID == 0 {
				slog.Warn("Access denied: user not authenticated", "path", r.URL.Path)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			user, err := LoadUser(userID)
			if err != nil || user == nil {
				slog.Error("RequireAuthentication: user not found or lookup failed", "userID", userID, "error", err)
				sessionManager.Remove(r.Context(), string(UserIDContextKey))
				http.Redirect(w, r, "/login?err=session_invalid", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
			ctx = context.WithValue(ctx, UserContextKey, user)
			ctx = context.WithValue(ctx, IsAuthenticatedContextKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func InjectUserData(sessionManager *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			isAuthenticated := false

			if userFromAuth, ok := ctx.Value(UserContextKey).(*models.User); ok && userFromAuth != nil {
				isAuthenticated = true
			} else if sessionUserID := sessionManager.GetInt64(ctx, string(UserIDContextKey)); sessionUserID != 0 {
				// public pages still show who is signed in
				userFromDB, err := LoadUser(sessionUserID)
				if err == nil && userFromDB != nil {
					isAuthenticated = true
					ctx = context.WithValue(ctx, UserIDContextKey, sessionUserID)
					ctx = context.WithValue(ctx, UserContextKey, userFromDB)
				} else if err != nil {
					slog.Warn("InjectUserData: error fetching user from session ID", "userID", sessionUserID, "error", err)
				}
			}

			ctx = context.WithValue(ctx, IsAuthenticatedContextKey, isAuthenticated)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user placed by RequireAuthentication or InjectUserData.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}
