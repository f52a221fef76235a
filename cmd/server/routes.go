// cmd/server/routes.go
package main

import (
	"net/http"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/db"
	"inventory-dashboard/internal/handlers"
	adminhandlers "inventory-dashboard/internal/handlers/admin"
	"inventory-dashboard/internal/middleware"
	"inventory-dashboard/internal/models"

	"github.com/alexedwards/scs/v2"
)

func newRouter(cfg *config.Config, sessionManager *scs.SessionManager, appHandlers *handlers.AppHandlers, loginLimiter, controlsLimiter *middleware.IPRateLimiter) http.Handler {
	authHandlers := handlers.NewAuthHandlers(appHandlers)

	injectUser := middleware.InjectUserData(sessionManager)
	requireAuth := middleware.RequireAuthentication(sessionManager)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticPath))))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.DB.PingContext(r.Context()); err != nil {
			http.Error(w, "DB Not Ready", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("OK"))
	})

	// Public
	mux.Handle("/", injectUser(http.HandlerFunc(appHandlers.HomePageHandler)))
	for _, doc := range []string{"about", "privacy", "terms", "contact"} {
		mux.Handle("GET /"+doc, injectUser(appHandlers.InfoPageHandler(doc)))
	}

	// Session
	mux.Handle("GET /login", injectUser(http.HandlerFunc(authHandlers.LoginPageHandler)))
	mux.Handle("POST /api/login", loginLimiter.Middleware(http.HandlerFunc(authHandlers.LoginHandler)))
	mux.HandleFunc("POST /api/logout", authHandlers.LogoutHandler)

	// Dashboard
	mux.Handle("GET /dashboard", requireAuth(http.HandlerFunc(appHandlers.DashboardPageHandler)))
	mux.Handle("GET /api/carousel", requireAuth(http.HandlerFunc(appHandlers.CarouselStateHandler)))
	mux.Handle("POST /dashboard/carousel/next", requireAuth(controlsLimiter.Middleware(http.HandlerFunc(appHandlers.CarouselNextHandler))))
	mux.Handle("POST /dashboard/carousel/prev", requireAuth(controlsLimiter.Middleware(http.HandlerFunc(appHandlers.CarouselPrevHandler))))
	mux.Handle("POST /dashboard/carousel/jump", requireAuth(controlsLimiter.Middleware(http.HandlerFunc(appHandlers.CarouselJumpHandler))))
	mux.Handle("GET /products", requireAuth(http.HandlerFunc(appHandlers.ProductsPageHandler)))

	// Admin
	mux.Handle("GET /users", requireAuth(requireAdmin(adminhandlers.UsersListPageHandler(appHandlers))))

	csrfProtected := middleware.NoSurfMiddleware(mux, cfg.IsProduction())
	return middleware.RequestID(middleware.Recover(sessionManager.LoadAndSave(csrfProtected)))
}
