// Package query answers calendar and criteria queries over the event store.
package query

import (
	"slices"
	"time"

	"github.com/agendape/agenda-api/internal/model"
	"github.com/agendape/agenda-api/internal/store"
)

// Engine evaluates queries against a store snapshot.
type Engine struct {
	store *store.Store
}

// New creates an Engine bound to a store.
func New(st *store.Store) *Engine {
	return &Engine{store: st}
}

// Day returns events overlapping the given calendar day, ascending by start.
func (e *Engine) Day(date time.Time) []model.AgendaEvent {
	start := startOfDay(date)
	return e.Interval(start, endOfDay(date))
}

// Week returns events overlapping the ISO week (Monday start) containing ref.
func (e *Engine) Week(ref time.Time) []model.AgendaEvent {
	offset := (int(ref.Weekday()) + 6) % 7
	start := startOfDay(ref).AddDate(0, 0, -offset)
	end := endOfDay(start.AddDate(0, 0, 6))
	return e.Interval(start, end)
}

// Month returns events overlapping the calendar month containing ref.
func (e *Engine) Month(ref time.Time) []model.AgendaEvent {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.Local)
	end := endOfDay(start.AddDate(0, 1, -1))
	return e.Interval(start, end)
}

// Interval returns events overlapping [start, end], ascending by start time.
// Events without a resolvable start fall back to their submission date for
// matching and sort after everything else, in store order.
func (e *Engine) Interval(start, end time.Time) []model.AgendaEvent {
	var out []model.AgendaEvent
	for _, ev := range e.store.Snapshot() {
		if overlaps(&ev, start, end) {
			out = append(out, ev)
		}
	}
	sortAscending(out)
	return out
}

func overlaps(ev *model.AgendaEvent, start, end time.Time) bool {
	evStart, ok := ev.StartAt()
	if !ok {
		sub, ok := ev.SubmittedAt()
		if !ok {
			return false
		}
		return !sub.Before(start) && !sub.After(end)
	}
	evEnd, ok := ev.EndAt()
	if !ok {
		evEnd = evStart
	}
	// Day-floor the event side so multi-day spans overlap whole days.
	s, en := startOfDay(evStart), startOfDay(evEnd)
	return !s.After(end) && !en.Before(start)
}

// sortAscending orders by start time, pushing sentinel-dated events to the
// end while preserving their relative store order.
func sortAscending(events []model.AgendaEvent) {
	slices.SortStableFunc(events, func(a, b model.AgendaEvent) int {
		aStart, aOK := a.StartAt()
		bStart, bOK := b.StartAt()
		switch {
		case !aOK && !bOK:
			return 0
		case !aOK:
			return 1
		case !bOK:
			return -1
		}
		return aStart.Compare(bStart)
	})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
