// Package dateparse resolves manually transcribed Portuguese date phrases
// into calendar date ranges. Input quality is poor by nature ("A definir",
// "17, 18 e 19/03/2025", "Fevereiro/25 A definir"), so every rule degrades
// to Unresolved rather than failing.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Status tags how a phrase resolved.
type Status int

const (
	// Unresolved means no rule produced a date.
	Unresolved Status = iota
	// Exact means the phrase named concrete day(s).
	Exact
	// Approximate means only month/year were given; the 15th stands in.
	Approximate
)

// Resolution is the outcome of parsing one phrase. Start and End are zero
// when Status is Unresolved.
type Resolution struct {
	Start  time.Time
	End    time.Time
	Status Status
}

// approximationDay stands in for "sometime that month".
const approximationDay = 15

var monthNames = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var (
	indeterminateRe = regexp.MustCompile(`(?i)a definir|preferencialmente|entre os dias`)

	// Leading "<MonthName>/<yy|yyyy>" on an otherwise indeterminate phrase.
	monthYearPrefixRe = regexp.MustCompile(`(?i)^(\p{L}+)\s*/\s*(\d{2,4})`)

	// "<days...> / <month> [/ <year>]" where days are separated by
	// commas, "e", "a" or whitespace and the month may be numeric or named.
	dayRangeRe = regexp.MustCompile(`(?i)^((?:\d{1,2}\s*(?:,|\be\b|\ba\b)?\s*)+)(?:\bde\b|/)\s*(\d{1,2}|\p{L}+)(?:\s*(?:\bde\b|/)\s*(\d{2,4}))?\s*$`)

	// "<MonthName> de <year>" or "<MonthName>/<year>", optional trailing
	// "A definir".
	monthYearRe = regexp.MustCompile(`(?i)^(\p{L}+)\s*(?:\bde\b|/)\s*(\d{2,4})(?:\s+a\s+definir)?\s*$`)

	dayTokenRe  = regexp.MustCompile(`\d{1,2}`)
	fourDigitRe = regexp.MustCompile(`\d{4}`)
)

// Exact-date layouts, tried in order.
var simpleLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// IsIndeterminate reports whether the phrase explicitly defers the date.
// Callers use this to decide between leaving the date open and fabricating
// a placeholder.
func IsIndeterminate(text string) bool {
	return indeterminateRe.MatchString(text)
}

// Parse resolves one phrase against a reference year/month, used when the
// phrase omits them. Resolution order: indeterminate markers, exact absolute
// dates, day ranges within a month, bare month/year.
func Parse(text string, refYear int, refMonth time.Month) Resolution {
	text = strings.TrimSpace(text)
	if text == "" {
		return Resolution{}
	}

	if IsIndeterminate(text) {
		// "Fevereiro/25 A definir" still pins a month; approximate it.
		if m := monthYearPrefixRe.FindStringSubmatch(text); m != nil {
			if r, ok := approximateMonth(m[1], m[2]); ok {
				return r
			}
		}
		return Resolution{}
	}

	if t, ok := parseSimple(text, refYear); ok {
		return Resolution{Start: t, End: t, Status: Exact}
	}

	if r, ok := parseDayRange(text, refYear, refMonth); ok {
		return r
	}

	if m := monthYearRe.FindStringSubmatch(text); m != nil {
		if r, ok := approximateMonth(m[1], m[2]); ok {
			return r
		}
		return Resolution{}
	}

	return Resolution{}
}

func parseSimple(text string, refYear int) (time.Time, bool) {
	for _, layout := range simpleLayouts {
		t, err := time.ParseInLocation(layout, text, time.Local)
		if err != nil {
			continue
		}
		// Slash-format dates without an explicit 4-digit year inherit the
		// reference year.
		if !fourDigitRe.MatchString(text) && strings.Contains(text, "/") {
			t = time.Date(refYear, t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
		}
		return atMidnight(t), true
	}
	return time.Time{}, false
}

func parseDayRange(text string, refYear int, refMonth time.Month) (Resolution, bool) {
	m := dayRangeRe.FindStringSubmatch(text)
	if m == nil {
		return Resolution{}, false
	}

	var days []int
	for _, tok := range dayTokenRe.FindAllString(m[1], -1) {
		d, err := strconv.Atoi(tok)
		if err != nil || d < 1 || d > 31 {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return Resolution{}, false
	}

	month, ok := monthFromToken(m[2])
	if !ok {
		month = refMonth
	}

	year := refYear
	if m[3] != "" {
		y, err := strconv.Atoi(m[3])
		if err == nil {
			if len(m[3]) == 2 {
				y += 2000
			}
			year = y
		}
	}

	first, last := days[0], days[0]
	for _, d := range days[1:] {
		if d < first {
			first = d
		}
		if d > last {
			last = d
		}
	}

	start := time.Date(year, month, first, 0, 0, 0, 0, time.Local)
	end := time.Date(year, month, last, 0, 0, 0, 0, time.Local)
	// Reject tokens that rolled over, e.g. 31/02.
	if start.Month() != month || end.Month() != month {
		return Resolution{}, false
	}
	return Resolution{Start: start, End: end, Status: Exact}, true
}

func approximateMonth(name, yearStr string) (Resolution, bool) {
	month, ok := monthFromToken(name)
	if !ok {
		return Resolution{}, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return Resolution{}, false
	}
	if year < 100 {
		year += 2000
	}
	t := time.Date(year, month, approximationDay, 0, 0, 0, 0, time.Local)
	return Resolution{Start: t, End: t, Status: Approximate}, true
}

// monthFromToken resolves a numeric month or a Portuguese month name. Names
// match on their first three letters, so abbreviations like "fev" work.
func monthFromToken(tok string) (time.Month, bool) {
	tok = strings.ToLower(strings.TrimSpace(tok))
	if n, err := strconv.Atoi(tok); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	prefix := firstRunes(tok, 3)
	if len(prefix) < 3 {
		return 0, false
	}
	for i, name := range monthNames {
		if firstRunes(name, 3) == prefix {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
