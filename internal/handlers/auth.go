// internal/handlers/auth.go
package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"inventory-dashboard/internal/auth"
	"inventory-dashboard/internal/carousel"
	"inventory-dashboard/internal/db"
	"inventory-dashboard/internal/middleware"
	"inventory-dashboard/internal/models"
	"inventory-dashboard/internal/validation"

	"github.com/alexedwards/scs/v2"
)

type AuthHandlers struct {
	SessionManager *scs.SessionManager
	Carousels      *carousel.Registry
	Render         func(w http.ResponseWriter, r *http.Request, pageName string, data *PageData)
	NewPageData    func(r *http.Request) *PageData
	FindUser       func(email string) (*models.User, error)
}

func NewAuthHandlers(app *AppHandlers) *AuthHandlers {
	return &AuthHandlers{
		SessionManager: app.SessionManager,
		Carousels:      app.Carousels,
		Render:         app.RenderPage,
		NewPageData:    app.NewPageData,
		FindUser:       db.GetUserByEmail,
	}
}

func (h *AuthHandlers) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	data := h.NewPageData(r)
	data.PageTitle = "Sign in"
	data.Form = models.LoginForm{}
	h.Render(w, r, "login.html", data)
}

func (h *AuthHandlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Error("Failed to parse login form", "error", err)
		http.Error(w, "Server error", http.StatusBadRequest)
		return
	}
	form := models.LoginForm{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}
	if validationErrors := validation.ValidateStruct(form); len(validationErrors) > 0 {
		h.renderLoginError(w, r, form, validationErrors, http.StatusBadRequest)
		return
	}

	user, err := h.FindUser(strings.ToLower(form.Email))
	passwordMatch := false
	if user != nil && err == nil {
		passwordMatch = auth.CheckPasswordHash(form.Password, user.PasswordHash)
	}
	if err != nil || !passwordMatch {
		errs := url.Values{}
		status := http.StatusUnauthorized
		if err == nil || errors.Is(err, sql.ErrNoRows) {
			errs.Add("general", "Invalid email or password.")
		} else {
			slog.Error("User lookup failed during login", "email", form.Email, "error", err)
			errs.Add("general", "Server error while signing in.")
			status = http.StatusInternalServerError
		}
		form.Password = ""
		h.renderLoginError(w, r, form, errs, status)
		return
	}

	if err := h.SessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("Failed to renew session token", "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	h.SessionManager.Put(r.Context(), string(middleware.UserIDContextKey), user.ID)
	slog.Info("User signed in", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandlers) renderLoginError(w http.ResponseWriter, r *http.Request, form models.LoginForm, errs url.Values, status int) {
	data := h.NewPageData(r)
	data.PageTitle = "Sign in"
	data.Form = form
	data.Errors = errs
	w.WriteHeader(status)
	h.Render(w, r, "login.html", data)
}

// LogoutHandler unmounts the user's carousel, which stops its rotation, and
// destroys the session so the stored token is gone.
func (h *AuthHandlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	userID := h.SessionManager.GetInt64(r.Context(), string(middleware.UserIDContextKey))
	if userID != 0 && h.Carousels != nil {
		h.Carousels.Unmount(carouselKey(&models.User{ID: userID}))
	}

	if err := h.SessionManager.Destroy(r.Context()); err != nil {
		slog.Error("Failed to destroy session on logout", "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	slog.Info("User signed out", "user_id", userID)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
