package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/logbook"
	"alcyxob/exercise-tracker/internal/service"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockExerciseService struct {
	mock.Mock
}

func (m *MockExerciseService) AddExercise(ctx context.Context, userID string, input logbook.NewExerciseInput) (*service.LoggedExercise, error) {
	args := m.Called(ctx, userID, input)
	if e := args.Get(0); e != nil {
		return e.(*service.LoggedExercise), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockExerciseService) GetLog(ctx context.Context, req service.LogRequest) (*logbook.LogResult, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*logbook.LogResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportLog(ctx context.Context, req service.LogRequest) (*service.LogExport, error) {
	args := m.Called(ctx, req)
	if e := args.Get(0); e != nil {
		return e.(*service.LogExport), args.Error(1)
	}
	return nil, args.Error(1)
}
