package middleware

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/agendape/agenda-api/internal/model"
)

// ValidateEventID validates an event ID.
func ValidateEventID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid event ID format")
	}
	return nil
}

// ValidateTitle validates an event title.
func ValidateTitle(title string) error {
	if len(title) == 0 {
		return errors.New("title cannot be empty")
	}
	if len(title) > 512 {
		return errors.New("title exceeds maximum length")
	}
	if !utf8.ValidString(title) {
		return errors.New("title must be valid UTF-8")
	}
	return nil
}

// ValidateCreateEvent checks the structural requirements of a create
// request. Data-quality concerns (unparseable dates) are not errors; they
// degrade to sentinels downstream.
func ValidateCreateEvent(req *model.CreateEventRequest) error {
	if err := ValidateTitle(req.Title); err != nil {
		return err
	}
	for name, v := range map[string]string{
		"requester":   req.Requester,
		"location":    req.Location,
		"focal_point": req.FocalPoint,
	} {
		if !utf8.ValidString(v) {
			return fmt.Errorf("%s must be valid UTF-8", name)
		}
	}
	return nil
}

// ParseDateParam parses a yyyy-MM-dd path parameter in local time.
func ParseDateParam(raw string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-MM-dd", raw)
	}
	return t, nil
}
