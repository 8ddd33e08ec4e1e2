package logbook

import (
	"alcyxob/exercise-tracker/internal/domain"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LogQuery carries the raw log request parameters. Empty strings mean
// "not supplied".
type LogQuery struct {
	UserID   string
	Username string
	From     string
	To       string
	Limit    string
}

// NormalizedEntry is one exercise as rendered in a log response.
type NormalizedEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResult is the assembled log for one user. Count always equals len(Log).
type LogResult struct {
	ID       string            `json:"_id"`
	Username string            `json:"username"`
	Count    int               `json:"count"`
	Log      []NormalizedEntry `json:"log"`
}

// window is an inclusive calendar-date range. A zero bound is open.
type window struct {
	from time.Time
	to   time.Time
}

func (w window) contains(d time.Time) bool {
	if !w.from.IsZero() && d.Before(w.from) {
		return false
	}
	if !w.to.IsZero() && d.After(w.to) {
		return false
	}
	return true
}

// ParseLimit parses the optional limit parameter. An empty value means no
// limit and yields 0; anything else must be an integer >= 1. A positive
// integer too large for int cannot cap anything and also yields 0.
func ParseLimit(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) && isDigits(strings.TrimPrefix(s, "+")) {
		return 0, nil
	}
	if err != nil || n < 1 {
		return 0, &Error{Kind: KindInvalidLimit, Field: "limit", Value: raw}
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseBound(field, raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, nil
	}
	return parseISO(field, s)
}

// AssembleLog filters entries to the query window, keeps the first
// q.Limit survivors in store order and renders them.
//
// Any stored date that cannot be normalized fails the whole call with
// an InvalidDateFormat error; partial logs are never returned.
func (b *Logbook) AssembleLog(q LogQuery, entries []domain.Exercise) (LogResult, error) {
	from, err := parseBound("from", q.From)
	if err != nil {
		return LogResult{}, err
	}
	to, err := parseBound("to", q.To)
	if err != nil {
		return LogResult{}, err
	}
	limit, err := ParseLimit(q.Limit)
	if err != nil {
		return LogResult{}, err
	}

	dates := make([]time.Time, len(entries))
	for i, e := range entries {
		d, err := b.NormalizeDate(e.Date)
		if err != nil {
			if le, ok := err.(*Error); ok {
				le.Field = fmt.Sprintf("stored date of exercise %s", e.ID)
			}
			return LogResult{}, err
		}
		dates[i] = d
	}

	w := window{from: from, to: to}
	log := make([]NormalizedEntry, 0, len(entries))
	for i, e := range entries {
		if limit > 0 && len(log) == limit {
			break
		}
		if !w.contains(dates[i]) {
			continue
		}
		log = append(log, NormalizedEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        FormatDate(dates[i]),
		})
	}

	return LogResult{
		ID:       q.UserID,
		Username: q.Username,
		Count:    len(log),
		Log:      log,
	}, nil
}
