package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mkoval/markd/internal/httpserver/deps"
	"github.com/mkoval/markd/internal/logger"
)

// ListReminders returns every bookmark carrying a reminder, enabled or
// not.
func ListReminders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidates, err := d.Store.Candidates(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, candidates)
	}
}

// CompleteReminder stamps the reminder as done for today.
func CompleteReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			respondBadRequest(w, "invalid bookmark id")
			return
		}

		if err := d.Reminders.Complete(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}

type snoozeRequest struct {
	Minutes int `json:"minutes" validate:"required,gt=0"`
}

// SnoozeReminder pushes next_reminder forward by the requested minutes.
func SnoozeReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			respondBadRequest(w, "invalid bookmark id")
			return
		}

		var req snoozeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondBadRequest(w, "invalid JSON body: "+err.Error())
			return
		}
		if err := d.Validate.Struct(req); err != nil {
			respondBadRequest(w, err.Error())
			return
		}

		if err := d.Reminders.Snooze(r.Context(), id, req.Minutes); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}

// TriggerCheck asks the scheduler for an immediate reminder check.
func TriggerCheck(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.CheckTrigger <- struct{}{}:
			d.Logger.Info("manual reminder check triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			respondJSON(w, http.StatusAccepted, map[string]string{"status": "check triggered"})
		default:
			d.Logger.Warn("reminder check already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: "check already in progress"})
		}
	}
}
