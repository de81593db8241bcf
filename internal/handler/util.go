package handler

import (
	"encoding/json"
	"net/http"

	"github.com/agendape/agenda-api/internal/model"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeEvents writes a query result in the standard list envelope.
func writeEvents(w http.ResponseWriter, events []model.AgendaEvent) {
	if events == nil {
		events = []model.AgendaEvent{}
	}
	writeJSON(w, http.StatusOK, model.ListEventsResponse{
		Events: events,
		Total:  len(events),
	})
}
