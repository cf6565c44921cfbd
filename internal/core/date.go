package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date pinned to UTC midnight. The zero value marks
// an absent or unparsable date; such transactions drop out of every
// date-bounded view.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Valid reports whether the date parsed.
func (d Date) Valid() bool {
	return !d.IsZero()
}

// dateFormat is one named textual shape a date cell may take. Formats
// are tried in declared order; the first whose pattern matches decides
// the outcome, even if its bounds check then fails.
type dateFormat struct {
	name             string
	re               *regexp.Regexp
	year, month, day int // capture group indexes
}

var dateFormats = []dateFormat{
	{name: "year-first", re: regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`), year: 1, month: 2, day: 3},
	{name: "day-first", re: regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`), year: 3, month: 2, day: 1},
}

// ParseDate converts a raw cell into a calendar date. It never panics
// and never defaults: a cell that matches no format, or whose month is
// outside 1-12 or day outside 1-31, yields ok=false. Days that do not
// exist in their month (31 February) pass the coarse bound and roll
// over into the next month, matching how the source sheet behaves.
func ParseDate(raw string) (Date, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}, false
	}
	for _, f := range dateFormats {
		m := f.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[f.year])
		month, _ := strconv.Atoi(m[f.month])
		day, _ := strconv.Atoi(m[f.day])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return Date{}, false
		}
		return NewDate(year, time.Month(month), day), true
	}
	return Date{}, false
}

// endOfDay returns the last representable instant of the date's
// calendar day, so that an inclusive end bound covers the whole day.
func endOfDay(d Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
