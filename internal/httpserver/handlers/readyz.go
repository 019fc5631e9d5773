package handlers

import (
	"net/http"

	"github.com/mkoval/markd/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The store is opened before the server starts listening; if we
		// are serving requests, we are ready.
		respondJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
