package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkoval/markd/internal/httpserver/deps"
	"github.com/mkoval/markd/internal/httpserver/handlers"
)

func init() { Register(registerImportExport) }

func registerImportExport(r chi.Router, d deps.Deps) {
	r.Post("/api/import", handlers.ImportBookmarks(d))
	r.Get("/api/export", handlers.ExportBookmarks(d))
	r.Post("/api/seed/reload", handlers.TriggerSeedReload(d))
}
