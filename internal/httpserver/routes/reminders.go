package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkoval/markd/internal/httpserver/deps"
	"github.com/mkoval/markd/internal/httpserver/handlers"
)

func init() { Register(registerReminders) }

func registerReminders(r chi.Router, d deps.Deps) {
	r.Get("/api/reminders", handlers.ListReminders(d))
	r.Post("/api/reminders/check", handlers.TriggerCheck(d))
}
