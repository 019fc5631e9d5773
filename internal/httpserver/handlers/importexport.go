package handlers

import (
	"io"
	"net/http"

	"github.com/mkoval/markd/internal/httpserver/deps"
	"github.com/mkoval/markd/internal/importer"
	"github.com/mkoval/markd/internal/logger"
)

// maxImportSize caps import request bodies; browser exports are a few
// MB at most.
const maxImportSize = 32 << 20

// ImportBookmarks reads a Netscape HTML or JSON bookmark file from the
// request body and creates a bookmark per entry. Entries that fail to
// insert are skipped, mirroring the best-effort semantics of browser
// import.
func ImportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
		if err != nil {
			respondBadRequest(w, "read body: "+err.Error())
			return
		}
		if len(data) == 0 {
			respondBadRequest(w, "empty import body")
			return
		}

		inputs, err := importer.Parse(data)
		if err != nil {
			respondBadRequest(w, err.Error())
			return
		}

		imported := 0
		for _, input := range inputs {
			if _, err := d.Store.Create(r.Context(), input); err != nil {
				d.Logger.Warn("failed to import bookmark",
					logger.String("url", input.URL),
					logger.Error(err))
				continue
			}
			imported++
		}

		d.Logger.Info("bookmarks imported",
			logger.Int("parsed", len(inputs)),
			logger.Int("imported", imported))
		respondJSON(w, http.StatusOK, map[string]int{
			"parsed":   len(inputs),
			"imported": imported,
		})
	}
}

// TriggerSeedReload asks the seed reloader for an immediate re-read of
// the seed file.
func TriggerSeedReload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.SeedReloadTrigger == nil {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "seeding is not configured"})
			return
		}
		select {
		case d.SeedReloadTrigger <- struct{}{}:
			d.Logger.Info("manual seed reload triggered via endpoint")
			respondJSON(w, http.StatusAccepted, map[string]string{"status": "reload triggered"})
		default:
			respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: "reload already in progress"})
		}
	}
}

// ExportBookmarks writes the whole store as a Netscape bookmark file.
func ExportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := d.Store.All(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.html"`)
		if err := importer.ExportNetscape(w, bookmarks); err != nil {
			d.Logger.Warn("failed to write export", logger.Error(err))
		}
	}
}
