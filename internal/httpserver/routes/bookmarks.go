package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkoval/markd/internal/httpserver/deps"
	"github.com/mkoval/markd/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.Get("/", handlers.ListBookmarks(d))
		r.Post("/", handlers.CreateBookmark(d))
		r.Get("/search", handlers.SearchBookmarks(d))
		r.Get("/{id}", handlers.GetBookmark(d))
		r.Put("/{id}", handlers.UpdateBookmark(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
		r.Post("/{id}/visit", handlers.RecordVisit(d))
		r.Post("/{id}/complete", handlers.CompleteReminder(d))
		r.Post("/{id}/snooze", handlers.SnoozeReminder(d))
	})
}
