package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"alcyxob/exercise-tracker/internal/domain"
)

// MockUserRepository mocks the repository.UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockExerciseRepository mocks the repository.ExerciseRepository interface
type MockExerciseRepository struct {
	mock.Mock
}

func (m *MockExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	args := m.Called(ctx, exercise)
	return args.String(0), args.Error(1)
}

func (m *MockExerciseRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Exercise, error) {
	args := m.Called(ctx, userID)
	if e := args.Get(0); e != nil {
		return e.([]domain.Exercise), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockObjectStorage mocks the storage.ObjectStorage interface
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PutObject(ctx context.Context, objectKey, contentType string, body []byte) error {
	args := m.Called(ctx, objectKey, contentType, body)
	return args.Error(0)
}

func (m *MockObjectStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}
