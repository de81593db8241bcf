// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agendape/agenda-api/internal/middleware"
	"github.com/agendape/agenda-api/internal/model"
	"github.com/agendape/agenda-api/internal/service"
	"github.com/agendape/agenda-api/pkg/logger"
)

// EventHandler handles agenda event endpoints.
type EventHandler struct {
	service *service.AgendaService
	logger  *logger.Logger
}

// NewEventHandler creates a new event handler.
func NewEventHandler(svc *service.AgendaService, log *logger.Logger) *EventHandler {
	return &EventHandler{
		service: svc,
		logger:  log,
	}
}

// Day handles GET /api/v1/events/day/{date}
func (h *EventHandler) Day(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeEvents(w, h.service.EventsForDay(r.Context(), date))
}

// Week handles GET /api/v1/events/week/{date}
func (h *EventHandler) Week(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeEvents(w, h.service.EventsForWeek(r.Context(), date))
}

// Month handles GET /api/v1/events/month/{date}
func (h *EventHandler) Month(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeEvents(w, h.service.EventsForMonth(r.Context(), date))
}

// Get handles GET /api/v1/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateEventID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ev, ok := h.service.EventByID(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// Create handles POST /api/v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateCreateEvent(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ev := h.service.Create(r.Context(), &req)
	writeJSON(w, http.StatusCreated, ev)
}

// Update handles PUT /api/v1/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateEventID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title != nil {
		if err := middleware.ValidateTitle(*req.Title); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	ev, ok := h.service.Update(r.Context(), id, &req)
	if !ok {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// Delete handles DELETE /api/v1/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateEventID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.service.Delete(r.Context(), id) {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Filter handles POST /api/v1/events/filter
func (h *EventHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var criteria model.FilterCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter criteria")
		return
	}
	writeEvents(w, h.service.Filter(r.Context(), criteria))
}

// Import handles POST /api/v1/events/import
func (h *EventHandler) Import(w http.ResponseWriter, r *http.Request) {
	var records []model.RawEventRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusBadRequest, "no records provided")
		return
	}

	n := h.service.LoadRawRecords(r.Context(), records)
	writeJSON(w, http.StatusAccepted, model.ImportResponse{Imported: n})
}

func parseDateParam(r *http.Request) (time.Time, error) {
	raw := chi.URLParam(r, "date")
	return middleware.ParseDateParam(raw)
}
