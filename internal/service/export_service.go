package service

import (
	"alcyxob/exercise-tracker/internal/logbook"
	"alcyxob/exercise-tracker/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrExportDisabled = errors.New("log export is not configured")

const exportContentType = "application/json"

// LogExport describes an uploaded log snapshot.
type LogExport struct {
	Key       string
	URL       string
	ExpiresAt time.Time
	Count     int
}

// --- Service Interface ---
type ExportService interface {
	ExportLog(ctx context.Context, req LogRequest) (*LogExport, error)
}

// exportService uploads assembled logs to object storage.
type exportService struct {
	exercises ExerciseService
	store     storage.ObjectStorage // nil when exports are disabled
	expiry    time.Duration
	now       logbook.Clock
}

// NewExportService creates an ExportService. A nil store disables exports.
func NewExportService(exercises ExerciseService, store storage.ObjectStorage, expiry time.Duration, now logbook.Clock) ExportService {
	if expiry <= 0 {
		expiry = storage.DefaultPresignedURLExpiry
	}
	if now == nil {
		now = time.Now
	}
	return &exportService{
		exercises: exercises,
		store:     store,
		expiry:    expiry,
		now:       now,
	}
}

// ExportLog assembles the log exactly like GetLog, uploads it as JSON
// and returns a presigned download URL.
func (s *exportService) ExportLog(ctx context.Context, req LogRequest) (*LogExport, error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}

	result, err := s.exercises.GetLog(ctx, req)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode log: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", result.ID, uuid.NewString())
	if err := s.store.PutObject(ctx, key, exportContentType, body); err != nil {
		return nil, err
	}

	url, err := s.store.GeneratePresignedDownloadURL(ctx, key, s.expiry)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", result.ID).Str("key", key).Int("count", result.Count).Msg("log exported")

	return &LogExport{
		Key:       key,
		URL:       url,
		ExpiresAt: s.now().UTC().Add(s.expiry),
		Count:     result.Count,
	}, nil
}
