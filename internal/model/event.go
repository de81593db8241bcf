// Package model defines data structures for the agenda platform.
package model

import (
	"time"
)

// Sentinel values carried on serialized events when a temporal field could
// not be determined. These are part of the wire contract with existing
// consumers and must not be translated.
const (
	InvalidDate = "Data Inválida"
	InvalidTime = "Hora Inválida"
)

// DateStatus records how an event's start/end dates were obtained.
type DateStatus string

const (
	// DateResolved means the date phrase parsed to an exact calendar date.
	DateResolved DateStatus = "resolved"
	// DateApproximate means only month/year were known; the 15th is used.
	DateApproximate DateStatus = "approximate"
	// DatePlaceholder means parsing failed and a one-month-out date was
	// fabricated. Consumers should treat these dates as unreliable.
	DatePlaceholder DateStatus = "placeholder"
	// DateUndetermined means the phrase explicitly defers the date.
	DateUndetermined DateStatus = "undetermined"
)

// Situation workflow states. Free text passes through uppercased, but these
// are the values the filter UI offers.
var SituationOptions = []string{
	"ARTICULADO",
	"SOLICITADO",
	"REALIZADO",
	"CANCELADO PELO SOLICITANTE",
	"ATENDIDO",
}

// ActionTypes is the recommended (open) enumeration for the type tag.
var ActionTypes = []string{
	"JPS",
	"JPE",
	"REUNIÃO",
	"EVENTO EXTERNO",
	"EVENTO INTERNO",
	"CAPACITAÇÃO",
	"FISCALIZAÇÃO",
	"ATENDIMENTO JURÍDICO",
	"PALESTRA",
	"AÇÃO DE GOVERNO",
	"OUTRO",
}

// DefaultActionType is applied when no type is given and none can be inferred.
const DefaultActionType = "OUTRO"

// AgendaEvent is the canonical event entity. Temporal fields are RFC 3339
// strings in local wall-clock time, or the sentinel values above.
type AgendaEvent struct {
	ID             string     `json:"id"`
	SEINumber      string     `json:"sei_number,omitempty"`
	SubmissionDate string     `json:"submission_date"`
	Title          string     `json:"title"`
	Requester      string     `json:"requester"`
	Location       string     `json:"location"`
	FocalPoint     string     `json:"focal_point"`
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`
	Situation      string     `json:"situation,omitempty"`
	DailySEINumber string     `json:"daily_sei_number,omitempty"`
	Description    string     `json:"description,omitempty"`
	Participants   string     `json:"participants,omitempty"`
	Type           string     `json:"type,omitempty"`
	DateStatus     DateStatus `json:"date_status,omitempty"`
}

// StartAt returns the parsed start time, or false when it is the sentinel or
// otherwise unparseable.
func (e *AgendaEvent) StartAt() (time.Time, bool) {
	return parseTemporal(e.StartTime, InvalidTime)
}

// EndAt returns the parsed end time. When the end is unusable but the start
// resolves, the start is returned, matching the single-day default.
func (e *AgendaEvent) EndAt() (time.Time, bool) {
	if t, ok := parseTemporal(e.EndTime, InvalidTime); ok {
		return t, true
	}
	return e.StartAt()
}

// SubmittedAt returns the parsed submission date, or false on the sentinel.
func (e *AgendaEvent) SubmittedAt() (time.Time, bool) {
	return parseTemporal(e.SubmissionDate, InvalidDate)
}

func parseTemporal(s, sentinel string) (time.Time, bool) {
	if s == "" || s == sentinel {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(time.RFC3339, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RawEventRecord is one manually transcribed agenda row, as ingested from the
// seed dataset or the bulk import endpoint. Field names mirror the source
// spreadsheet columns.
type RawEventRecord struct {
	SEI        string `json:"sei" yaml:"sei"`
	Submission string `json:"envio" yaml:"envio"`
	Subject    string `json:"assunto" yaml:"assunto"`
	Type       string `json:"type,omitempty" yaml:"type"`
	Requester  string `json:"solicitante" yaml:"solicitante"`
	Location   string `json:"local" yaml:"local"`
	FocalPoint string `json:"ponto_focal" yaml:"ponto_focal"`
	EventDate  string `json:"data" yaml:"data"`
	Situation  string `json:"situacao" yaml:"situacao"`
	DailySEI   string `json:"sei_diarias,omitempty" yaml:"sei_diarias"`
}

// FilterCriteria is a sparse set of predicates combined with logical AND.
// Zero values disable a predicate, as do the "TODOS"/"TODAS"/"all" sentinels
// on the enum fields.
type FilterCriteria struct {
	SEINumber  string `json:"sei_number,omitempty"`
	ActionType string `json:"action_type,omitempty"`
	StartDate  *Date  `json:"start_date,omitempty"`
	EndDate    *Date  `json:"end_date,omitempty"`
	Situation  string `json:"situation,omitempty"`
	FocalPoint string `json:"focal_point,omitempty"`
	Location   string `json:"location,omitempty"`
}

// CreateEventRequest carries real dates rather than free-text phrases; the
// form layer has already resolved them.
type CreateEventRequest struct {
	SEINumber      string `json:"sei_number,omitempty"`
	SubmissionDate *Date  `json:"submission_date"`
	EventDate      *Date  `json:"event_date"`
	Title          string `json:"title"`
	Requester      string `json:"requester"`
	Location       string `json:"location"`
	FocalPoint     string `json:"focal_point"`
	Situation      string `json:"situation,omitempty"`
	DailySEINumber string `json:"daily_sei_number,omitempty"`
	Description    string `json:"description,omitempty"`
	Participants   string `json:"participants,omitempty"`
	Type           string `json:"type,omitempty"`
}

// UpdateEventRequest is a partial patch. Nil pointers leave the field
// untouched. The two date fields are tri-state: absent keeps the prior value,
// an explicit null forces the sentinel, a date re-derives the derived fields.
type UpdateEventRequest struct {
	SEINumber      *string      `json:"sei_number,omitempty"`
	SubmissionDate OptionalDate `json:"submission_date,omitempty"`
	EventDate      OptionalDate `json:"event_date,omitempty"`
	Title          *string      `json:"title,omitempty"`
	Requester      *string      `json:"requester,omitempty"`
	Location       *string      `json:"location,omitempty"`
	FocalPoint     *string      `json:"focal_point,omitempty"`
	Situation      *string      `json:"situation,omitempty"`
	DailySEINumber *string      `json:"daily_sei_number,omitempty"`
	Description    *string      `json:"description,omitempty"`
	Participants   *string      `json:"participants,omitempty"`
	Type           *string      `json:"type,omitempty"`
}

// ListEventsResponse is the envelope for every query endpoint.
type ListEventsResponse struct {
	Events []AgendaEvent `json:"events"`
	Total  int           `json:"total"`
}

// ImportResponse reports a bulk ingestion result.
type ImportResponse struct {
	Imported int `json:"imported"`
}
