package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sourcepage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sourcepage/internal/httpserver/handlers"
)

func init() { Register(registerSite) }

func registerSite(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Page(d))
	r.Get("/{file}", handlers.SiteFile(d))
}
