package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mkoval/markd/internal/domain"
	"github.com/mkoval/markd/internal/httpserver/deps"
	"github.com/mkoval/markd/internal/logger"
)

func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := d.Store.All(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, bookmarks)
	}
}

func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input domain.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondBadRequest(w, "invalid JSON body: "+err.Error())
			return
		}
		if err := d.Validate.Struct(input); err != nil {
			respondBadRequest(w, err.Error())
			return
		}
		if input.Reminder != nil {
			if err := input.Reminder.Validate(); err != nil {
				respondBadRequest(w, err.Error())
				return
			}
		}

		bm, err := d.Store.Create(r.Context(), input)
		if err != nil {
			respondError(w, err)
			return
		}

		d.Logger.Info("bookmark created",
			logger.Int64("id", bm.ID),
			logger.String("url", bm.URL),
			logger.Bool("has_reminder", bm.Reminder != nil))
		respondJSON(w, http.StatusCreated, bm)
	}
}

func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			respondBadRequest(w, "invalid bookmark id")
			return
		}

		bm, err := d.Store.Get(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, bm)
	}
}

func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			respondBadRequest(w, "invalid bookmark id")
			return
		}

		var input domain.UpdateInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondBadRequest(w, "invalid JSON body: "+err.Error())
			return
		}
		if err := d.Validate.Struct(input); err != nil {
			respondBadRequest(w, err.Error())
			return
		}
		if input.Reminder != nil {
			if err := input.Reminder.Validate(); err != nil {
				respondBadRequest(w, err.Error())
				return
			}
		}

		bm, err := d.Store.Update(r.Context(), id, input)
		if err != nil {
			respondError(w, err)
			return
		}

		d.Logger.Info("bookmark updated", logger.Int64("id", id))
		respondJSON(w, http.StatusOK, bm)
	}
}

func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			respondBadRequest(w, "invalid bookmark id")
			return
		}

		if err := d.Store.Delete(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}

		d.Logger.Info("bookmark deleted", logger.Int64("id", id))
		respondJSON(w, http.StatusNoContent, nil)
	}
}

func SearchBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			respondBadRequest(w, "missing query parameter q")
			return
		}

		bookmarks, err := d.Store.Search(r.Context(), q)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, bookmarks)
	}
}

func RecordVisit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			respondBadRequest(w, "invalid bookmark id")
			return
		}

		if err := d.Store.RecordVisit(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}
