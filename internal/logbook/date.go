package logbook

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

const (
	// ISOLayout is the only format accepted for dates supplied by callers.
	ISOLayout = "2006-01-02"
	// DisplayLayout is the canonical rendering used in every response,
	// e.g. "Thu Jun 01 2023".
	DisplayLayout = "Mon Jan 02 2006"
)

var isoPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a strict YYYY-MM-DD string into its calendar date at
// 00:00 UTC. Values that do not round-trip (e.g. 2023-02-30) are rejected.
func ParseDate(s string) (time.Time, error) {
	return parseISO("", s)
}

func parseISO(field, s string) (time.Time, error) {
	if !isoPattern.MatchString(s) {
		return time.Time{}, invalidDate(field, s)
	}
	t, err := time.ParseInLocation(ISOLayout, s, time.UTC)
	if err != nil || t.Format(ISOLayout) != s {
		return time.Time{}, invalidDate(field, s)
	}
	return t, nil
}

// FormatDate renders a date in DisplayLayout. The UTC calendar day is used
// so the output never shifts with the host time zone.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DisplayLayout)
}

// NormalizeDate converts a stored date representation into its calendar
// date at 00:00 UTC. Accepted forms:
//   - nil, "" or a zero time: today
//   - "YYYY-MM-DD"
//   - a DisplayLayout string, as written by older versions of the service
//   - time.Time (its UTC calendar date)
//   - an 8-digit integer YYYYMMDD
//   - any other integer: milliseconds since the Unix epoch
func (b *Logbook) NormalizeDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return b.Today(), nil
	case string:
		return b.normalizeString(x)
	case time.Time:
		if x.IsZero() {
			return b.Today(), nil
		}
		return calendarDate(x), nil
	case *time.Time:
		if x == nil || x.IsZero() {
			return b.Today(), nil
		}
		return calendarDate(*x), nil
	case int:
		return fromInteger(int64(x))
	case int32:
		return fromInteger(int64(x))
	case int64:
		return fromInteger(x)
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) ||
			x < math.MinInt64 || x >= math.MaxInt64 {
			return time.Time{}, invalidDate("", fmt.Sprint(x))
		}
		return fromInteger(int64(x))
	default:
		return time.Time{}, invalidDate("", fmt.Sprint(v))
	}
}

func (b *Logbook) normalizeString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return b.Today(), nil
	}
	if isoPattern.MatchString(s) {
		return parseISO("", s)
	}
	// time.Parse does not check the weekday, the round-trip does.
	t, err := time.ParseInLocation(DisplayLayout, s, time.UTC)
	if err != nil || t.Format(DisplayLayout) != s {
		return time.Time{}, invalidDate("", s)
	}
	return t, nil
}

// Epoch milliseconds that still render with a four-digit year.
var (
	minEpochMillis = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	maxEpochMillis = time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli() - 1
)

func fromInteger(n int64) (time.Time, error) {
	if n >= 10000000 && n <= 99999999 {
		y, m, d := int(n/10000), time.Month(n/100%100), int(n%100)
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if t.Year() != y || t.Month() != m || t.Day() != d {
			return time.Time{}, invalidDate("", fmt.Sprint(n))
		}
		return t, nil
	}
	if n < minEpochMillis || n > maxEpochMillis {
		return time.Time{}, invalidDate("", fmt.Sprint(n))
	}
	return calendarDate(time.UnixMilli(n)), nil
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
