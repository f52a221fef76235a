// internal/handlers/pages.go
package handlers

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"inventory-dashboard/internal/carousel"
	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/dashboard"
	"inventory-dashboard/internal/middleware"
	"inventory-dashboard/internal/models"
	"inventory-dashboard/internal/pricing"

	"github.com/alexedwards/scs/v2"
	"github.com/justinas/nosurf"
)

type PageData struct {
	SiteName        string
	CompanyName     string
	CurrentYear     int
	BaseURL         string
	CurrentPath     string
	CSRFToken       string
	RequestID       string
	IsAuthenticated bool
	IsAdmin         bool
	User            *models.User
	UserName        string
	PageTitle       string
	RobotsContent   string
	FlashSuccess    string
	FlashError      string
	Errors          url.Values
	Form            interface{}

	// dashboard
	Overview           *dashboard.Overview
	Carousel           *carousel.View
	CarouselIntervalMs int

	// info pages
	Content template.HTML

	// users list
	Users       []*models.User
	TotalUsers  int
	CurrentPage int
	TotalPages  int
	Limit       int
}

// ProductSource supplies the read-only product sequence for a request.
type ProductSource func(ctx context.Context) ([]models.Product, error)

type AppHandlers struct {
	Config         *config.Config
	BaseTmpl       *template.Template
	PagesPath      string
	SessionManager *scs.SessionManager
	Carousels      *carousel.Registry
	Products       ProductSource
	Chart          dashboard.ChartRenderer
	RenderPageFunc func(w http.ResponseWriter, r *http.Request, pageName string, data *PageData)
}

func parseBaseTemplates(templatesDir string, baseFilename string, appBaseURL string) (*template.Template, error) {
	baseFile := filepath.Join(templatesDir, baseFilename)
	if _, err := os.Stat(baseFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("base template '%s' not found in '%s'", baseFilename, templatesDir)
	}

	partsDir := filepath.Join(templatesDir, "parts")
	partFiles, err := filepath.Glob(filepath.Join(partsDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("glob partial templates in '%s': %w", partsDir, err)
	}

	funcMap := template.FuncMap{
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"hasPrefix":   strings.HasPrefix,
		"base_url":    func() string { return strings.TrimSuffix(appBaseURL, "/") },
		"formatPrice": pricing.FormatPrice,
		"seq": func(start, end int) []int {
			var s []int
			for i := start; i <= end; i++ {
				s = append(s, i)
			}
			return s
		},
	}

	tmpl, err := template.New(filepath.Base(baseFile)).Funcs(funcMap).ParseFiles(baseFile)
	if err != nil {
		return nil, fmt.Errorf("parse base template '%s': %w", baseFile, err)
	}
	if len(partFiles) > 0 {
		tmpl, err = tmpl.ParseFiles(partFiles...)
		if err != nil {
			return nil, fmt.Errorf("parse partial templates from '%s': %w", partsDir, err)
		}
	}
	slog.Info("Base and partial templates loaded", "base_template", baseFile, "parts_dir", partsDir)
	return tmpl, nil
}

func NewAppHandlers(cfg *config.Config, sm *scs.SessionManager, carousels *carousel.Registry, products ProductSource) (*AppHandlers, error) {
	baseTmpl, err := parseBaseTemplates(cfg.TemplatesPath, "base.html", cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base templates: %w", err)
	}

	appH := &AppHandlers{
		Config:         cfg,
		BaseTmpl:       baseTmpl,
		PagesPath:      filepath.Join(cfg.TemplatesPath, "pages"),
		SessionManager: sm,
		Carousels:      carousels,
		Products:       products,
		Chart:          dashboard.BarChart{},
	}
	appH.RenderPageFunc = appH.renderPageInternal
	return appH, nil
}

func (h *AppHandlers) renderPageInternal(w http.ResponseWriter, r *http.Request, pageName string, data *PageData) {
	h.render(w, r, h.BaseTmpl, h.PagesPath, "base.html", pageName, data)
}

func (h *AppHandlers) RenderPage(w http.ResponseWriter, r *http.Request, pageName string, data *PageData) {
	h.RenderPageFunc(w, r, pageName, data)
}

func (h *AppHandlers) NewPageData(r *http.Request) *PageData {
	isAuthenticated, _ := r.Context().Value(middleware.IsAuthenticatedContextKey).(bool)
	currentUser := middleware.UserFromContext(r.Context())
	if currentUser != nil {
		isAuthenticated = true
	}

	userName := "Guest"
	if isAuthenticated && currentUser != nil {
		userName = currentUser.DisplayName()
	}

	return &PageData{
		SiteName:        h.Config.SiteName,
		CompanyName:     h.Config.CompanyName,
		CurrentYear:     time.Now().Year(),
		BaseURL:         strings.TrimSuffix(h.Config.BaseURL, "/"),
		CurrentPath:     r.URL.Path,
		CSRFToken:       nosurf.Token(r),
		RequestID:       middleware.RequestIDFromContext(r.Context()),
		IsAuthenticated: isAuthenticated,
		IsAdmin:         currentUser.HasRole(models.RoleAdmin),
		User:            currentUser,
		UserName:        userName,
		RobotsContent:   "noindex, nofollow",
		FlashSuccess:    h.SessionManager.PopString(r.Context(), "flash_success"),
		FlashError:      h.SessionManager.PopString(r.Context(), "flash_error"),
		Errors:          url.Values{},
	}
}

func (h *AppHandlers) render(w http.ResponseWriter, r *http.Request, baseTmpl *template.Template, pagesDir, baseFile, pageName string, data *PageData) {
	if data == nil {
		data = h.NewPageData(r)
	}
	if baseTmpl == nil {
		slog.Error("Base template is not initialized", "base_file_expected", baseFile)
		http.Error(w, "Internal server error (template)", http.StatusInternalServerError)
		return
	}
	if data.PageTitle == "" {
		data.PageTitle = h.Config.SiteName
	}

	pagePath := filepath.Join(pagesDir, pageName)
	if _, err := os.Stat(pagePath); os.IsNotExist(err) {
		slog.Error("Page template not found", "page", pageName, "path", pagePath)
		http.Error(w, "Internal server error (page template)", http.StatusInternalServerError)
		return
	}

	tmplToExecute, err := baseTmpl.Clone()
	if err != nil {
		slog.Error("Could not clone base template", "base_file", baseFile, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	tmplToExecute, err = tmplToExecute.ParseFiles(pagePath)
	if err != nil {
		slog.Error("Could not parse page template", "page", pageName, "path", pagePath, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	slog.Debug("Rendering page", "page", pageName, "path", r.URL.Path, "authenticated", data.IsAuthenticated)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if err := tmplToExecute.ExecuteTemplate(w, baseFile, data); err != nil {
		slog.Error("Template execution failed", "template", baseFile, "page", pageName, "error", err)
	}
}

// carouselKey identifies the dashboard instance a user has mounted.
func carouselKey(user *models.User) string {
	return strconv.FormatInt(user.ID, 10)
}

func (h *AppHandlers) HomePageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if middleware.UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AppHandlers) DashboardPageHandler(w http.ResponseWriter, r *http.Request) {
	data := h.NewPageData(r)
	data.PageTitle = "Admin Dashboard"
	if data.User == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	products, err := h.Products(r.Context())
	if err != nil {
		slog.Error("DashboardPageHandler: could not load products", "error", err, "request_id", data.RequestID)
		http.Error(w, "Could not load products.", http.StatusInternalServerError)
		return
	}
	overview, err := dashboard.BuildOverview(products, h.Chart)
	if err != nil {
		slog.Error("DashboardPageHandler: could not build products overview", "error", err, "request_id", data.RequestID)
		http.Error(w, "Could not build products overview.", http.StatusInternalServerError)
		return
	}
	data.Overview = overview

	c, err := h.Carousels.Mount(carouselKey(data.User))
	if err != nil {
		slog.Error("DashboardPageHandler: could not mount carousel", "userID", data.User.ID, "error", err)
		http.Error(w, "Could not load featured products.", http.StatusInternalServerError)
		return
	}
	view := c.View()
	data.Carousel = &view
	data.CarouselIntervalMs = h.Config.Carousel.IntervalMs

	h.RenderPage(w, r, "dashboard.html", data)
}

func (h *AppHandlers) ProductsPageHandler(w http.ResponseWriter, r *http.Request) {
	data := h.NewPageData(r)
	data.PageTitle = "Product Management"

	products, err := h.Products(r.Context())
	if err != nil {
		slog.Error("ProductsPageHandler: could not load products", "error", err, "request_id", data.RequestID)
		http.Error(w, "Could not load products.", http.StatusInternalServerError)
		return
	}
	overview, err := dashboard.BuildOverview(products, nil)
	if err != nil {
		slog.Error("ProductsPageHandler: could not build products table", "error", err)
		http.Error(w, "Could not build products table.", http.StatusInternalServerError)
		return
	}
	data.Overview = overview
	h.RenderPage(w, r, "products.html", data)
}
