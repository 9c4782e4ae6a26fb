package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sourcepage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sourcepage/internal/render"
)

// Page serves the generated page.
func Page(d deps.Deps) http.HandlerFunc {
	path := filepath.Join(d.SiteDir, d.IndexFile)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, path)
	}
}

// SiteFile serves the page or its stylesheet by name. Nothing else in the
// output directory is exposed.
func SiteFile(d deps.Deps) http.HandlerFunc {
	allowed := map[string]bool{
		d.IndexFile:       true,
		render.Stylesheet: true,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "file")
		if !allowed[name] {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, filepath.Join(d.SiteDir, name))
	}
}
