package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date (or timestamp) accepted on the write API. It
// unmarshals from "2006-01-02" or RFC 3339, always in local wall-clock time.
type Date struct {
	time.Time
}

// NewDate wraps a time for request construction in tests and callers.
func NewDate(t time.Time) *Date {
	return &Date{Time: t}
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(time.RFC3339))
}

// OptionalDate distinguishes "field absent" from "field explicitly null" in
// patch payloads. Set is false when the key was not present at all.
type OptionalDate struct {
	Set   bool
	Value *Date
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the key
// is present, which is what flips Set.
func (o *OptionalDate) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var d Date
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o OptionalDate) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
