package query

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/agendape/agenda-api/internal/model"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// Filter returns events matching every provided criterion, sorted by
// effective date descending (newest first). Events whose dates cannot be
// resolved at all sort last.
func (e *Engine) Filter(c model.FilterCriteria) []model.AgendaEvent {
	var out []model.AgendaEvent
	for _, ev := range e.store.Snapshot() {
		if matchesCriteria(&ev, &c) {
			out = append(out, ev)
		}
	}
	slices.SortStableFunc(out, func(a, b model.AgendaEvent) int {
		return effectiveDate(&b).Compare(effectiveDate(&a))
	})
	return out
}

func matchesCriteria(ev *model.AgendaEvent, c *model.FilterCriteria) bool {
	if c.SEINumber != "" {
		want := nonDigitRe.ReplaceAllString(c.SEINumber, "")
		have := nonDigitRe.ReplaceAllString(ev.SEINumber, "")
		if ev.SEINumber == "" || !strings.Contains(have, want) {
			return false
		}
	}

	if filterEnabled(c.ActionType, "TODOS") && !strings.EqualFold(ev.Type, c.ActionType) {
		return false
	}

	if c.StartDate != nil || c.EndDate != nil {
		if !matchesDateRange(ev, c.StartDate, c.EndDate) {
			return false
		}
	}

	if filterEnabled(c.Situation, "TODAS") && !strings.EqualFold(ev.Situation, c.Situation) {
		return false
	}

	if c.FocalPoint != "" && !containsFold(ev.FocalPoint, c.FocalPoint) {
		return false
	}

	if c.Location != "" && !containsFold(ev.Location, c.Location) {
		return false
	}

	return true
}

// matchesDateRange tests the event's effective day (start, or submission when
// the start is the sentinel) against an inclusive [from, to] range. This is a
// single-point test, not a span overlap.
func matchesDateRange(ev *model.AgendaEvent, from, to *model.Date) bool {
	point, ok := ev.StartAt()
	if !ok {
		point, ok = ev.SubmittedAt()
		if !ok {
			return false
		}
	}
	day := startOfDay(point)
	if from != nil && day.Before(startOfDay(from.Time)) {
		return false
	}
	if to != nil && day.After(endOfDay(to.Time)) {
		return false
	}
	return true
}

// effectiveDate is the start time when resolvable, else the submission date,
// else the zero time (which sorts last under descending order).
func effectiveDate(ev *model.AgendaEvent) time.Time {
	if t, ok := ev.StartAt(); ok {
		return t
	}
	if t, ok := ev.SubmittedAt(); ok {
		return t
	}
	return time.Time{}
}

// filterEnabled reports whether an enum criterion is active: non-empty and
// not the "all" sentinel for its field.
func filterEnabled(value, allSentinel string) bool {
	return value != "" && !strings.EqualFold(value, allSentinel) && !strings.EqualFold(value, "all")
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
