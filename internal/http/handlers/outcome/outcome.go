// Package outcome exposes the outcome history over JSON.
package outcome

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-list/internal/storage"
	"github.com/aanand-mishra/student-list/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/outcomes
// Returns every recorded outcome, newest first. Returns [] (not null)
// when nothing has settled yet.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all outcomes")

		outcomes, err := storage.GetOutcomes()
		if err != nil {
			slog.Error("error getting outcomes", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, outcomes)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/outcomes/{id}
//
// Success response (200 OK):
//
//	{ "mount_id": "01J...", "status": "ok", "count": 10, "settled_at": "..." }
//
// Error responses:
//
//	404 Not Found — no outcome for that mount (unknown, or still loading)
//	500 Internal  — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting an outcome", slog.String("mount_id", id))

		outcome, err := store.GetOutcomeByID(id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error getting outcome",
				slog.String("mount_id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, outcome)
	}
}
