// internal/handlers/carousel_handlers.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"inventory-dashboard/internal/carousel"
	"inventory-dashboard/internal/middleware"
	"inventory-dashboard/internal/models"
	"inventory-dashboard/internal/validation"
)

// mountedCarousel returns the signed-in user's carousel, mounting it if the
// dashboard has not been opened yet (or was swept as idle).
func (h *AppHandlers) mountedCarousel(w http.ResponseWriter, r *http.Request) (*carousel.Carousel, bool) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Not authenticated.", http.StatusUnauthorized)
		return nil, false
	}
	c, err := h.Carousels.Mount(carouselKey(user))
	if err != nil {
		slog.Error("Could not mount carousel", "userID", user.ID, "error", err)
		http.Error(w, "Could not load featured products.", http.StatusInternalServerError)
		return nil, false
	}
	return c, true
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func respondCarousel(w http.ResponseWriter, r *http.Request, c *carousel.Carousel) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, c.View())
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AppHandlers) CarouselNextHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := h.mountedCarousel(w, r)
	if !ok {
		return
	}
	c.Next()
	respondCarousel(w, r, c)
}

func (h *AppHandlers) CarouselPrevHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := h.mountedCarousel(w, r)
	if !ok {
		return
	}
	c.Prev()
	respondCarousel(w, r, c)
}

func (h *AppHandlers) CarouselJumpHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form.", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("index")))
	if err != nil {
		http.Error(w, "Index must be a whole number.", http.StatusBadRequest)
		return
	}
	form := models.CarouselJumpForm{Index: index}
	if errs := validation.ValidateStruct(form); len(errs) > 0 {
		http.Error(w, errs.Get("index"), http.StatusBadRequest)
		return
	}

	c, ok := h.mountedCarousel(w, r)
	if !ok {
		return
	}
	if _, err := c.JumpTo(form.Index); err != nil {
		if errors.Is(err, carousel.ErrIndexOutOfRange) {
			http.Error(w, "No featured product at that position.", http.StatusBadRequest)
			return
		}
		slog.Error("Carousel jump failed", "index", form.Index, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	respondCarousel(w, r, c)
}

// CarouselStateHandler is polled by the dashboard script to follow rotation.
func (h *AppHandlers) CarouselStateHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := h.mountedCarousel(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.View())
}
