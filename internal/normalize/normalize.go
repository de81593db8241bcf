// Package normalize converts raw transcription rows into canonical agenda
// events. Data-quality problems never abort a record; they degrade to the
// sentinel values and are logged.
package normalize

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agendape/agenda-api/internal/dateparse"
	"github.com/agendape/agenda-api/internal/model"
	"github.com/agendape/agenda-api/pkg/logger"
	"github.com/agendape/agenda-api/pkg/metrics"
)

// Default business hours applied when a record carries only a date. These
// encode a business rule, not a formatting choice.
const (
	DefaultStartTime = "08:00"
	DefaultEndTime   = "17:00"
)

var submissionLayouts = []string{
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// Normalizer builds canonical events from raw records.
type Normalizer struct {
	logger *logger.Logger
	now    func() time.Time
}

// New creates a Normalizer.
func New(log *logger.Logger) *Normalizer {
	return &Normalizer{logger: log, now: time.Now}
}

// WithClock overrides the time source; used by tests and the service layer to
// keep placeholder dates deterministic.
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	n.now = now
	return n
}

// Normalize converts one raw record into a canonical event with a fresh id.
func (n *Normalizer) Normalize(raw model.RawEventRecord) model.AgendaEvent {
	subTime, subOK := parseSubmission(raw.Submission)
	submissionISO := model.InvalidDate
	if subOK {
		submissionISO = ISO(subTime)
	} else if raw.Submission != "" && raw.Submission != "-" {
		n.logger.Warn("could not parse submission date", zap.String("value", raw.Submission))
	}

	refYear, refMonth := n.now().Year(), n.now().Month()
	if subOK {
		refYear, refMonth = subTime.Year(), subTime.Month()
	}

	res := dateparse.Parse(raw.EventDate, refYear, refMonth)
	indeterminate := dateparse.IsIndeterminate(raw.EventDate)

	var status model.DateStatus
	startDay, endDay := res.Start, res.End
	switch {
	case res.Status == dateparse.Exact:
		status = model.DateResolved
	case res.Status == dateparse.Approximate:
		status = model.DateApproximate
	case indeterminate:
		status = model.DateUndetermined
	default:
		// Unparseable but not explicitly deferred: fabricate a date one
		// month out so the event still shows up on calendars. The status
		// marks it as unreliable.
		status = model.DatePlaceholder
		startDay = n.now().AddDate(0, 1, 0)
		endDay = startDay
		n.logger.Warn("could not parse event date phrase, using placeholder",
			zap.String("phrase", raw.EventDate),
			zap.String("subject", raw.Subject))
	}
	metrics.DatePhraseOutcomes.WithLabelValues(string(status)).Inc()

	startISO, endISO := model.InvalidTime, model.InvalidTime
	if status != model.DateUndetermined {
		startISO, endISO = EventTimes(startDay, endDay)
	}

	return model.AgendaEvent{
		ID:             uuid.Must(uuid.NewV7()).String(),
		SEINumber:      cleanIdentifier(raw.SEI),
		SubmissionDate: submissionISO,
		Title:          raw.Subject,
		Requester:      raw.Requester,
		Location:       strings.ReplaceAll(raw.Location, "<br>", "\n"),
		FocalPoint:     raw.FocalPoint,
		StartTime:      startISO,
		EndTime:        endISO,
		Situation:      NormalizeSituation(raw.Situation),
		DailySEINumber: cleanIdentifier(raw.DailySEI),
		Type:           inferType(raw.Type, raw.Subject),
		DateStatus:     status,
	}
}

// EventTimes combines start/end calendar days with the default business
// hours. A failed end falls back to the start, keeping the sentinel invariant
// (no defined end without a defined start).
func EventTimes(startDay, endDay time.Time) (string, string) {
	startISO, endISO := model.InvalidTime, model.InvalidTime
	if !startDay.IsZero() {
		startISO = ISO(atClock(startDay, DefaultStartTime))
	}
	if !endDay.IsZero() {
		endISO = ISO(atClock(endDay, DefaultEndTime))
	} else if startISO != model.InvalidTime {
		endISO = startISO
	}
	if startISO == model.InvalidTime {
		endISO = model.InvalidTime
	}
	return startISO, endISO
}

// ISO renders a timestamp the way events carry them on the wire.
func ISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

// NormalizeSituation uppercases and merges the REALIZADA spelling.
func NormalizeSituation(s string) string {
	return strings.ReplaceAll(strings.ToUpper(s), "REALIZADA", "REALIZADO")
}

// cleanIdentifier flattens multi-line SEI numbers into comma-separated form
// and treats the "-" and "Não atendido" markers as absent.
func cleanIdentifier(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || strings.EqualFold(s, "Não atendido") {
		return ""
	}
	s = strings.ReplaceAll(s, "<br>", ", ")
	s = strings.ReplaceAll(s, "\n", ", ")
	return s
}

// inferType keeps an explicit type, otherwise guesses from subject keywords,
// otherwise defaults.
func inferType(explicit, subject string) string {
	if explicit != "" {
		return explicit
	}
	lower := strings.ToLower(subject)
	hasJPS := strings.Contains(lower, "jps")
	hasJPE := strings.Contains(lower, "jpe")
	switch {
	case hasJPS && hasJPE:
		return "JPS E JPE"
	case hasJPS:
		return "JPS"
	case hasJPE:
		return "JPE"
	case strings.Contains(lower, "reunião"):
		return "REUNIÃO"
	case strings.Contains(lower, "governo"):
		return "AÇÃO DE GOVERNO"
	}
	return model.DefaultActionType
}

func parseSubmission(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return time.Time{}, false
	}
	for _, layout := range submissionLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func atClock(day time.Time, clock string) time.Time {
	t, _ := time.ParseInLocation("15:04", clock, time.Local)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}
