package sqlite

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const isoLayout = "2006-01-02"

var _ repository.ExerciseRepository = (*ExerciseRepository)(nil)

// ExerciseRepository implements repository.ExerciseRepository on SQLite.
// Dates are stored as YYYY-MM-DD text.
type ExerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository creates an ExerciseRepository over an opened database.
func NewExerciseRepository(db *sql.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// Create inserts an exercise entry and fills in its ID and CreatedAt.
func (r *ExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.UserID == "" || exercise.Description == "" || exercise.Duration < 1 {
		return "", fmt.Errorf("exercise user, description and positive duration are required: %w", repository.ErrInvalidInput)
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO exercises (id, user_id, description, duration, date, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, exercise.UserID, exercise.Description, exercise.Duration, dateColumn(exercise.Date), now.UnixMilli())
	if err != nil {
		return "", err
	}

	exercise.ID = id
	exercise.CreatedAt = now
	return id, nil
}

// GetByUserID returns all entries of a user in insertion order.
func (r *ExerciseRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Exercise, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, description, duration, date, created_at FROM exercises WHERE user_id = ? ORDER BY seq`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []domain.Exercise{}
	for rows.Next() {
		var (
			ex        domain.Exercise
			date      sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Description, &ex.Duration, &date, &createdAt); err != nil {
			return nil, err
		}
		if date.Valid {
			ex.Date = date.String
		}
		ex.CreatedAt = time.UnixMilli(createdAt).UTC()
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}

func dateColumn(v any) any {
	switch d := v.(type) {
	case nil:
		return nil
	case time.Time:
		return d.UTC().Format(isoLayout)
	case string:
		return d
	default:
		return fmt.Sprint(d)
	}
}
