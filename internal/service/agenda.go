// Package service provides business logic for the agenda platform.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agendape/agenda-api/internal/model"
	natsclient "github.com/agendape/agenda-api/internal/nats"
	"github.com/agendape/agenda-api/internal/normalize"
	"github.com/agendape/agenda-api/internal/query"
	"github.com/agendape/agenda-api/internal/store"
	"github.com/agendape/agenda-api/pkg/logger"
	"github.com/agendape/agenda-api/pkg/metrics"
)

// LifecyclePublisher publishes store mutations for downstream consumers.
// *nats.StreamManager satisfies it; a nil publisher disables publishing.
type LifecyclePublisher interface {
	PublishLifecycle(ctx context.Context, action string, ev model.AgendaEvent) (uint64, error)
}

// AgendaService owns the event store and answers all boundary operations.
type AgendaService struct {
	store      *store.Store
	engine     *query.Engine
	normalizer *normalize.Normalizer
	publisher  LifecyclePublisher
	logger     *logger.Logger
}

// NewAgendaService creates the agenda service. publisher may be nil.
func NewAgendaService(st *store.Store, publisher LifecyclePublisher, log *logger.Logger) *AgendaService {
	return &AgendaService{
		store:      st,
		engine:     query.New(st),
		normalizer: normalize.New(log),
		publisher:  publisher,
		logger:     log,
	}
}

// LoadRawRecords normalizes and inserts a batch of raw records, returning the
// number ingested. Records are prepended in order, so the first record ends
// up deepest in the history, matching a chronological transcription.
func (s *AgendaService) LoadRawRecords(ctx context.Context, records []model.RawEventRecord) int {
	for _, raw := range records {
		ev := s.normalizer.Normalize(raw)
		s.store.Insert(ev)
		metrics.EventsCreatedTotal.WithLabelValues("import").Inc()
	}
	s.logger.Info("raw records loaded", zap.Int("count", len(records)))
	return len(records)
}

// EventsForDay returns events overlapping the given calendar day.
func (s *AgendaService) EventsForDay(ctx context.Context, date time.Time) []model.AgendaEvent {
	return s.engine.Day(date)
}

// EventsForWeek returns events overlapping the ISO week containing ref.
func (s *AgendaService) EventsForWeek(ctx context.Context, ref time.Time) []model.AgendaEvent {
	return s.engine.Week(ref)
}

// EventsForMonth returns events overlapping the month containing ref.
func (s *AgendaService) EventsForMonth(ctx context.Context, ref time.Time) []model.AgendaEvent {
	return s.engine.Month(ref)
}

// EventByID returns the event, or false when absent.
func (s *AgendaService) EventByID(ctx context.Context, id string) (model.AgendaEvent, bool) {
	return s.store.FindByID(id)
}

// Filter returns events matching the criteria, newest first.
func (s *AgendaService) Filter(ctx context.Context, c model.FilterCriteria) []model.AgendaEvent {
	return s.engine.Filter(c)
}

// Create builds a canonical event from resolved form input and prepends it.
func (s *AgendaService) Create(ctx context.Context, req *model.CreateEventRequest) model.AgendaEvent {
	submissionISO := model.InvalidDate
	if req.SubmissionDate != nil && !req.SubmissionDate.IsZero() {
		submissionISO = normalize.ISO(req.SubmissionDate.Time)
	}

	startISO, endISO := model.InvalidTime, model.InvalidTime
	status := model.DateUndetermined
	if req.EventDate != nil && !req.EventDate.IsZero() {
		startISO, endISO = normalize.EventTimes(req.EventDate.Time, req.EventDate.Time)
		status = model.DateResolved
	}

	eventType := req.Type
	if eventType == "" {
		eventType = model.DefaultActionType
	}

	ev := model.AgendaEvent{
		ID:             uuid.Must(uuid.NewV7()).String(),
		SEINumber:      req.SEINumber,
		SubmissionDate: submissionISO,
		Title:          req.Title,
		Requester:      req.Requester,
		Location:       req.Location,
		FocalPoint:     req.FocalPoint,
		StartTime:      startISO,
		EndTime:        endISO,
		Situation:      normalize.NormalizeSituation(req.Situation),
		DailySEINumber: req.DailySEINumber,
		Description:    req.Description,
		Participants:   req.Participants,
		Type:           eventType,
		DateStatus:     status,
	}

	s.store.Insert(ev)
	metrics.EventsCreatedTotal.WithLabelValues("api").Inc()
	s.publish(ctx, natsclient.ActionCreated, ev)
	s.logger.Info("event created", zap.String("event_id", ev.ID), zap.String("type", ev.Type))
	return ev
}

// Update applies a partial patch. Date-bearing fields are tri-state: absent
// keeps the prior value, explicit null forces the sentinel, a date re-derives
// the stored temporal fields. Returns false when the id is unknown.
func (s *AgendaService) Update(ctx context.Context, id string, req *model.UpdateEventRequest) (model.AgendaEvent, bool) {
	updated, ok := s.store.UpdateByID(id, func(ev *model.AgendaEvent) {
		applyString(&ev.SEINumber, req.SEINumber)
		applyString(&ev.Title, req.Title)
		applyString(&ev.Requester, req.Requester)
		applyString(&ev.Location, req.Location)
		applyString(&ev.FocalPoint, req.FocalPoint)
		applyString(&ev.DailySEINumber, req.DailySEINumber)
		applyString(&ev.Description, req.Description)
		applyString(&ev.Participants, req.Participants)

		if req.Situation != nil {
			ev.Situation = normalize.NormalizeSituation(*req.Situation)
		}
		if req.Type != nil && strings.TrimSpace(*req.Type) != "" {
			ev.Type = *req.Type
		}

		if req.SubmissionDate.Set {
			if req.SubmissionDate.Value == nil {
				ev.SubmissionDate = model.InvalidDate
			} else if !req.SubmissionDate.Value.IsZero() {
				ev.SubmissionDate = normalize.ISO(req.SubmissionDate.Value.Time)
			}
		}

		if req.EventDate.Set {
			if req.EventDate.Value == nil {
				ev.StartTime = model.InvalidTime
				ev.EndTime = model.InvalidTime
				ev.DateStatus = model.DateUndetermined
			} else if !req.EventDate.Value.IsZero() {
				day := req.EventDate.Value.Time
				ev.StartTime, ev.EndTime = normalize.EventTimes(day, day)
				ev.DateStatus = model.DateResolved
			}
		}
	})
	if !ok {
		return model.AgendaEvent{}, false
	}

	metrics.EventsUpdatedTotal.Inc()
	s.publish(ctx, natsclient.ActionUpdated, updated)
	s.logger.Info("event updated", zap.String("event_id", id))
	return updated, true
}

// Delete removes an event, reporting whether it existed.
func (s *AgendaService) Delete(ctx context.Context, id string) bool {
	ok := s.store.DeleteByID(id)
	if !ok {
		return false
	}
	metrics.EventsDeletedTotal.Inc()
	s.publish(ctx, natsclient.ActionDeleted, model.AgendaEvent{ID: id})
	s.logger.Info("event deleted", zap.String("event_id", id))
	return true
}

// publish is best-effort: a broken broker never fails a mutation.
func (s *AgendaService) publish(ctx context.Context, action string, ev model.AgendaEvent) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.PublishLifecycle(ctx, action, ev); err != nil {
		metrics.PublishFailuresTotal.Inc()
		s.logger.Warn("failed to publish lifecycle event",
			zap.String("action", action),
			zap.String("event_id", ev.ID),
			zap.Error(err))
	}
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
