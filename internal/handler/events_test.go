package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendape/agenda-api/internal/model"
	"github.com/agendape/agenda-api/internal/service"
	"github.com/agendape/agenda-api/internal/store"
	"github.com/agendape/agenda-api/pkg/logger"
)

func newTestRouter(t *testing.T) (*chi.Mux, *service.AgendaService) {
	t.Helper()
	svc := service.NewAgendaService(store.New(), nil, logger.NewNop())
	h := NewEventHandler(svc, logger.NewNop())

	r := chi.NewRouter()
	r.Route("/events", func(r chi.Router) {
		r.Get("/day/{date}", h.Day)
		r.Get("/week/{date}", h.Week)
		r.Get("/month/{date}", h.Month)
		r.Post("/filter", h.Filter)
		r.Post("/", h.Create)
		r.Post("/import", h.Import)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
	return r, svc
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndGetEvent(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/events/", `{
		"title": "Solicita JPS",
		"requester": "Prefeitura de Cedro",
		"event_date": "2025-03-20"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.AgendaEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Solicita JPS", created.Title)
	assert.Contains(t, created.StartTime, "2025-03-20T08:00")
	assert.Contains(t, created.EndTime, "2025-03-20T17:00")

	rec = doJSON(t, r, http.MethodGet, "/events/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.AgendaEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/events/", `{"title": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRejectsMalformedID(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/events/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUnknownEventIs404(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/events/018f3a2e-0000-7000-8000-000000000000", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDayQueryReturnsEnvelope(t *testing.T) {
	r, svc := newTestRouter(t)

	day := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.Local)
	svc.Create(context.Background(), &model.CreateEventRequest{
		Title:     "Solicita JPS",
		EventDate: model.NewDate(day),
	})

	rec := doJSON(t, r, http.MethodGet, "/events/day/2025-03-20", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ListEventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Events, 1)

	// Empty days still produce the envelope with an empty list, not null.
	rec = doJSON(t, r, http.MethodGet, "/events/day/2024-01-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"events":[],"total":0}`, rec.Body.String())
}

func TestDayQueryRejectsBadDate(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/events/day/20-03-2025", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportAcceptsRawRecords(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/events/import", `[
		{"sei": "3900009117.000165/2025-03", "envio": "2025-01-22 00:00:00",
		 "assunto": "Solicita JPS", "data": "19 a 22/02/2025", "situacao": "ARTICULADO"}
	]`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp model.ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Imported)
}

func TestImportRejectsEmptyBatch(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/events/import", `[]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAndDelete(t *testing.T) {
	r, svc := newTestRouter(t)

	ev := svc.Create(context.Background(), &model.CreateEventRequest{Title: "Solicita JPS"})

	rec := doJSON(t, r, http.MethodPut, "/events/"+ev.ID, `{"title": "Solicita JPE"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.AgendaEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Solicita JPE", updated.Title)

	rec = doJSON(t, r, http.MethodDelete, "/events/"+ev.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/events/"+ev.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFilterEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.Create(context.Background(), &model.CreateEventRequest{
		Title:     "Solicita JPS",
		SEINumber: "3900009117.000165/2025-03",
		Situation: "ARTICULADO",
	})
	svc.Create(context.Background(), &model.CreateEventRequest{
		Title:     "Solicita JPE",
		SEINumber: "1400005489.000005/2025-64",
		Situation: "SOLICITADO",
	})

	rec := doJSON(t, r, http.MethodPost, "/events/filter", `{"sei_number": "390000911"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ListEventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Solicita JPS", resp.Events[0].Title)
}
