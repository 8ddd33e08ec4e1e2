package logbook

import (
	"alcyxob/exercise-tracker/internal/domain"
	"math"
	"strconv"
	"strings"
	"time"
)

// NewExerciseInput is the raw creation input as received from a request.
type NewExerciseInput struct {
	Description string
	Duration    string
	Date        string // optional, YYYY-MM-DD
}

// NewExercise is a validated exercise ready to persist. Date and
// DisplayDate always describe the same calendar day.
type NewExercise struct {
	Description string
	Duration    int
	Date        time.Time
	DisplayDate string
}

// NormalizeNewExercise validates creation input. A missing date defaults
// to today's UTC calendar date.
func (b *Logbook) NormalizeNewExercise(in NewExerciseInput) (NewExercise, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return NewExercise{}, &Error{Kind: KindMissingField, Field: "description"}
	}

	duration, err := parseDuration(in.Duration)
	if err != nil {
		return NewExercise{}, err
	}

	date := b.Today()
	if raw := strings.TrimSpace(in.Date); raw != "" {
		date, err = parseISO("date", raw)
		if err != nil {
			return NewExercise{}, err
		}
	}

	return NewExercise{
		Description: description,
		Duration:    duration,
		Date:        date,
		DisplayDate: FormatDate(date),
	}, nil
}

// Entry builds the store record for userID from the normalized values.
func (n NewExercise) Entry(userID string) *domain.Exercise {
	return &domain.Exercise{
		UserID:      userID,
		Description: n.Description,
		Duration:    n.Duration,
		Date:        n.Date,
	}
}

// parseDuration accepts integral numbers such as "30" or "30.0".
func parseDuration(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &Error{Kind: KindMissingField, Field: "duration"}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, &Error{Kind: KindInvalidDuration, Field: "duration", Value: raw}
	}
	return int(f), nil
}
