package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/logbook"
	"alcyxob/exercise-tracker/internal/repository" // Import repository package
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// LogRequest carries the raw parameters of a log query. Empty strings
// mean "not supplied".
type LogRequest struct {
	UserID string
	From   string
	To     string
	Limit  string
}

// LoggedExercise is the combined user and exercise view returned after
// logging an exercise. Date is already rendered in the display format.
type LoggedExercise struct {
	UserID      string
	Username    string
	Description string
	Duration    int
	Date        string
}

// --- Service Interface ---
type ExerciseService interface {
	AddExercise(ctx context.Context, userID string, input logbook.NewExerciseInput) (*LoggedExercise, error)
	GetLog(ctx context.Context, req LogRequest) (*logbook.LogResult, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	book         *logbook.Logbook
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(userRepo repository.UserRepository, exerciseRepo repository.ExerciseRepository, book *logbook.Logbook) ExerciseService {
	return &exerciseService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		book:         book,
	}
}

func (s *exerciseService) lookupUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}

// AddExercise validates the input and logs an exercise for an existing user.
// The stored date and the returned display date come from one normalized value.
func (s *exerciseService) AddExercise(ctx context.Context, userID string, input logbook.NewExerciseInput) (*LoggedExercise, error) {
	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	normalized, err := s.book.NormalizeNewExercise(input)
	if err != nil {
		return nil, err
	}

	entry := normalized.Entry(user.ID)
	if _, err := s.exerciseRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}

	log.Debug().
		Str("user_id", user.ID).
		Str("exercise_id", entry.ID).
		Str("date", normalized.DisplayDate).
		Msg("exercise logged")

	return &LoggedExercise{
		UserID:      user.ID,
		Username:    user.Username,
		Description: normalized.Description,
		Duration:    normalized.Duration,
		Date:        normalized.DisplayDate,
	}, nil
}

// GetLog assembles the filtered, limited log of an existing user.
func (s *exerciseService) GetLog(ctx context.Context, req LogRequest) (*logbook.LogResult, error) {
	user, err := s.lookupUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	entries, err := s.exerciseRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list exercises of %s: %w", user.ID, err)
	}

	result, err := s.book.AssembleLog(logbook.LogQuery{
		UserID:   user.ID,
		Username: user.Username,
		From:     req.From,
		To:       req.To,
		Limit:    req.Limit,
	}, entries)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
