package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/repository"
)

// MockTemplateProgressRepository is a mock implementation of repository.TemplateProgressRepository
type MockTemplateProgressRepository struct {
	mock.Mock
}

func (m *MockTemplateProgressRepository) Get(ctx context.Context, templateType string) (*models.TemplateProgress, error) {
	args := m.Called(ctx, templateType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TemplateProgress), args.Error(1)
}

func (m *MockTemplateProgressRepository) List(ctx context.Context) ([]models.TemplateProgress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TemplateProgress), args.Error(1)
}

func (m *MockTemplateProgressRepository) DueTemplateTypes(ctx context.Context, templateTypes []string, now time.Time) ([]string, error) {
	args := m.Called(ctx, templateTypes, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTemplateProgressRepository) AttemptedTemplateTypes(ctx context.Context, templateTypes []string) ([]string, error) {
	args := m.Called(ctx, templateTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTemplateProgressRepository) AdvanceSchedule(ctx context.Context, templateType string, correct bool, now time.Time, advance repository.AdvanceFunc) (*models.TemplateProgress, error) {
	args := m.Called(ctx, templateType, correct, now, advance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TemplateProgress), args.Error(1)
}
