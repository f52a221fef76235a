// internal/handlers/legal.go
package handlers

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"inventory-dashboard/internal/utils"
)

// infoDocs are the footer pages, keyed by URL slug.
var infoDocs = map[string]string{
	"about":   "About",
	"privacy": "Privacy Policy",
	"terms":   "Terms of Service",
	"contact": "Contact",
}

func (h *AppHandlers) InfoPageHandler(doc string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title, ok := infoDocs[doc]
		if !ok {
			http.NotFound(w, r)
			return
		}
		filePath := filepath.Join(h.Config.TemplatesPath, "info", doc+".html")
		content, err := utils.LoadHTMLContentFromFile(filePath)
		if err != nil {
			slog.Error("Could not load info page", "doc", doc, "path", filePath, "error", err)
			http.Error(w, "Could not load page", http.StatusInternalServerError)
			return
		}

		data := h.NewPageData(r)
		data.PageTitle = title
		data.RobotsContent = "index, follow"
		data.Content = content
		h.RenderPage(w, r, "info.html", data)
	}
}
